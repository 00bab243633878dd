package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/iPelino/ur-missions/models"

	"gorm.io/gorm"
)

// TransportationDraft is the optional nested transportation sub-record of a
// mission-order draft.
type TransportationDraft struct {
	TransportationMeans   string
	VehicleIdentification *string
	DriverName            *string
}

// AttachmentDraft describes one already-stored attachment file to associate
// with the new order.
type AttachmentDraft struct {
	OriginalFilename string
	StoredFilename   string
	FileType         string
}

// MissionOrderDraft is the validated-at-the-boundary input for creating a
// mission order. StaffID is always the authenticated caller's own staff id;
// the API layer overwrites anything the client supplied.
type MissionOrderDraft struct {
	StaffID             int
	UnitID              int
	Role                string
	PurposeOfMission    string
	ExpectedResults     string
	Destination         string
	DistanceKM          *int
	DepartureDate       time.Time
	ReturningDate       time.Time
	SupervisorName      string
	SupervisorSignature string
	Transportation      *TransportationDraft
	Attachments         []AttachmentDraft
}

// MissionOrderService validates and persists mission orders and initiates the
// approval chain. The whole create operation runs in one transaction: either
// the order, its nested records and the pending approval all commit, or none
// do.
type MissionOrderService struct {
	db *gorm.DB
}

func NewMissionOrderService(db *gorm.DB) *MissionOrderService {
	return &MissionOrderService{db: db}
}

// computeDurations derives the duration fields from the travel dates.
// duration_days is the whole-day difference; duration_nights is one less,
// floored at zero for same-day trips.
func computeDurations(departure, returning time.Time) (days, nights int) {
	days = int(returning.Sub(departure).Hours() / 24)
	nights = days - 1
	if nights < 0 {
		nights = 0
	}
	return days, nights
}

func validateDraft(draft *MissionOrderDraft) error {
	fields := map[string]string{}

	if !models.ValidMissionRole(draft.Role) {
		fields["role"] = "The role is not a recognized mission role."
	}
	if !models.ValidDestination(draft.Destination) {
		fields["destination"] = "The destination is not a recognized district."
	}
	if draft.PurposeOfMission == "" {
		fields["purpose_of_mission"] = "The purpose_of_mission field cannot be blank."
	}
	if draft.ExpectedResults == "" {
		fields["expected_results"] = "The expected_results field cannot be blank."
	}
	if draft.ReturningDate.Before(draft.DepartureDate) {
		fields["returning_date"] = "The returning date cannot be earlier than the departure date."
	}
	if draft.Transportation != nil && !models.ValidTransportationMeans(draft.Transportation.TransportationMeans) {
		fields["transportation_means"] = "The transportation means must be PROVIDED, PERSONAL or PUBLIC."
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// Create persists a new mission order with its nested records, then routes it
// to the next approver and creates exactly one PENDING approval when an
// approver resolves. A requester the router cannot place in the org hierarchy
// does not fail the order: the approval step is skipped and logged.
func (s *MissionOrderService) Create(draft *MissionOrderDraft) (*models.MissionOrder, error) {
	if err := validateDraft(draft); err != nil {
		return nil, err
	}

	var order models.MissionOrder

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var staff models.Staff
		if err := tx.Where("staff_id = ?", draft.StaffID).First(&staff).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return newValidationError("staff", "The specified staff does not exist.")
			}
			return err
		}

		var unit models.Unit
		if err := tx.Where("unit_id = ?", draft.UnitID).First(&unit).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return newValidationError("unit", "The specified unit does not exist.")
			}
			return err
		}

		days, nights := computeDurations(draft.DepartureDate, draft.ReturningDate)

		order = models.MissionOrder{
			StaffID:             staff.StaffID,
			UnitID:              unit.UnitID,
			Role:                draft.Role,
			PurposeOfMission:    draft.PurposeOfMission,
			ExpectedResults:     draft.ExpectedResults,
			Destination:         draft.Destination,
			DistanceKM:          draft.DistanceKM,
			DepartureDate:       draft.DepartureDate,
			ReturningDate:       draft.ReturningDate,
			DurationDays:        days,
			DurationNights:      nights,
			SupervisorName:      draft.SupervisorName,
			SupervisorSignature: draft.SupervisorSignature,
		}

		var transportation *models.Transportation
		if draft.Transportation != nil {
			transportation = &models.Transportation{
				TransportationMeans:   draft.Transportation.TransportationMeans,
				VehicleIdentification: draft.Transportation.VehicleIdentification,
				DriverName:            draft.Transportation.DriverName,
			}
			if err := tx.Create(transportation).Error; err != nil {
				return fmt.Errorf("failed to save transportation: %w", err)
			}
			order.TransportationID = &transportation.TransportationID
		}

		if err := tx.Create(&order).Error; err != nil {
			return fmt.Errorf("failed to save mission order: %w", err)
		}
		order.Transportation = transportation

		for _, draftAttachment := range draft.Attachments {
			attachment := models.MissionAttachment{
				MissionOrderID:   order.MissionOrderID,
				OriginalFilename: draftAttachment.OriginalFilename,
				StoredFilename:   draftAttachment.StoredFilename,
				FileType:         draftAttachment.FileType,
			}
			if err := tx.Create(&attachment).Error; err != nil {
				return fmt.Errorf("failed to save attachment: %w", err)
			}
			order.Attachments = append(order.Attachments, attachment)
		}

		router := NewApprovalRouterService(tx)
		approver, err := router.NextApprover(&staff)
		if err != nil {
			if errors.Is(err, ErrMissingOrganizationContext) {
				log.Printf("mission order %d: approval skipped, staff %d has no organization context",
					order.MissionOrderID, staff.StaffID)
				return nil
			}
			return err
		}
		if approver == nil {
			return nil
		}

		approval := models.Approval{
			MissionOrderID: order.MissionOrderID,
			ApproverID:     approver.StaffID,
			Status:         models.ApprovalStatusPending,
		}
		if err := tx.Create(&approval).Error; err != nil {
			return fmt.Errorf("failed to create approval: %w", err)
		}
		approval.Approver = approver
		order.Approvals = append(order.Approvals, approval)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &order, nil
}

// UpdateDates revalidates the date ordering and recomputes the derived
// duration fields for an existing order. Client-supplied duration values are
// never accepted.
func (s *MissionOrderService) UpdateDates(order *models.MissionOrder, departure, returning time.Time) error {
	if returning.Before(departure) {
		return newValidationError("returning_date", "The returning date cannot be earlier than the departure date.")
	}

	days, nights := computeDurations(departure, returning)
	order.DepartureDate = departure
	order.ReturningDate = returning
	order.DurationDays = days
	order.DurationNights = nights
	return nil
}
