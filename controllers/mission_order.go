package controllers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/iPelino/ur-missions/config"
	"github.com/iPelino/ur-missions/middleware"
	"github.com/iPelino/ur-missions/models"
	"github.com/iPelino/ur-missions/services"
	"github.com/iPelino/ur-missions/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type TransportationRequest struct {
	TransportationMeans   string  `json:"transportation_means" binding:"required"`
	VehicleIdentification *string `json:"vehicle_identification"`
	DriverName            *string `json:"driver_name"`
}

// MissionOrderRequest is the flat write shape. Any client-supplied staff id
// is ignored: the server always uses the authenticated caller's own staff
// identity.
type MissionOrderRequest struct {
	UnitID              int                    `json:"unit" binding:"required"`
	Role                string                 `json:"role" binding:"required"`
	PurposeOfMission    string                 `json:"purpose_of_mission" binding:"required"`
	ExpectedResults     string                 `json:"expected_results" binding:"required"`
	Destination         string                 `json:"destination" binding:"required"`
	DistanceKM          *int                   `json:"distance_km"`
	DepartureDate       string                 `json:"departure_date" binding:"required"`
	ReturningDate       string                 `json:"returning_date" binding:"required"`
	SupervisorName      string                 `json:"supervisor_name" binding:"required"`
	SupervisorSignature string                 `json:"supervisor_signature" binding:"required"`
	Transportation      *TransportationRequest `json:"transportation"`
}

// missionOrderPreloads applies the nested read view.
func missionOrderPreloads(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Staff").Preload("Staff.User").Preload("Staff.Campus").
		Preload("Unit").Preload("Unit.College").
		Preload("Transportation").
		Preload("ApprovalDetails").
		Preload("Attachments").
		Preload("Approvals").Preload("Approvals.Approver")
}

// canActOnAnyOrder reports whether the caller may read or change orders
// belonging to other staff.
func canActOnAnyOrder(c *gin.Context) bool {
	return middleware.HasGroup(c, models.GroupAdmin) ||
		middleware.HasGroup(c, models.GroupSuperuser) ||
		middleware.HasGroup(c, models.GroupCampusManager) ||
		middleware.HasGroup(c, models.GroupUnitManager)
}

// CreateMissionOrder files a new mission order for the authenticated staff
// member. Accepts plain JSON, or multipart/form-data with the draft JSON in
// the "data" field and files in "attachments".
func CreateMissionOrder(c *gin.Context) {
	staff, err := callerStaff(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, map[string]string{"staff": "The caller has no staff profile."})
		return
	}

	var req MissionOrderRequest
	var stored []services.AttachmentDraft

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		if err := json.Unmarshal([]byte(c.PostForm("data")), &req); err != nil {
			respondError(c, http.StatusBadRequest, map[string]string{"data": "The data field must hold the mission order JSON."})
			return
		}
		form, err := c.MultipartForm()
		if err != nil {
			respondError(c, http.StatusBadRequest, map[string]string{"detail": err.Error()})
			return
		}
		for _, file := range form.File["attachments"] {
			draft, err := storeAttachmentFile(c, file)
			if err != nil {
				discardStoredAttachments(stored)
				respondError(c, http.StatusInternalServerError, nil)
				return
			}
			stored = append(stored, *draft)
		}
	} else if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, map[string]string{"detail": err.Error()})
		return
	}

	departure, err := parseDate(req.DepartureDate)
	if err != nil {
		discardStoredAttachments(stored)
		respondError(c, http.StatusBadRequest, map[string]string{"departure_date": "Date must be in YYYY-MM-DD format."})
		return
	}
	returning, err := parseDate(req.ReturningDate)
	if err != nil {
		discardStoredAttachments(stored)
		respondError(c, http.StatusBadRequest, map[string]string{"returning_date": "Date must be in YYYY-MM-DD format."})
		return
	}

	draft := services.MissionOrderDraft{
		StaffID:             staff.StaffID,
		UnitID:              req.UnitID,
		Role:                req.Role,
		PurposeOfMission:    utils.SanitizeInput(req.PurposeOfMission),
		ExpectedResults:     utils.SanitizeInput(req.ExpectedResults),
		Destination:         req.Destination,
		DistanceKM:          req.DistanceKM,
		DepartureDate:       departure,
		ReturningDate:       returning,
		SupervisorName:      req.SupervisorName,
		SupervisorSignature: req.SupervisorSignature,
		Attachments:         stored,
	}
	if req.Transportation != nil {
		draft.Transportation = &services.TransportationDraft{
			TransportationMeans:   req.Transportation.TransportationMeans,
			VehicleIdentification: req.Transportation.VehicleIdentification,
			DriverName:            req.Transportation.DriverName,
		}
	}

	order, err := services.NewMissionOrderService(config.DB).Create(&draft)
	if err != nil {
		discardStoredAttachments(stored)
		respondServiceError(c, err)
		return
	}

	if len(order.Approvals) > 0 {
		notifyApprover(&order.Approvals[0], order)
	}

	var full models.MissionOrder
	if err := missionOrderPreloads(config.DB).
		Where("mission_order_id = ?", order.MissionOrderID).
		First(&full).Error; err == nil {
		c.JSON(http.StatusCreated, gin.H{"mission_order": shape(c, full)})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"mission_order": shape(c, order)})
}

// GetMissionOrders lists the caller's own orders; privileged callers see all.
func GetMissionOrders(c *gin.Context) {
	query := missionOrderPreloads(config.DB)

	if !canActOnAnyOrder(c) {
		staff, err := callerStaff(c)
		if err != nil {
			c.JSON(http.StatusOK, gin.H{"mission_orders": []models.MissionOrder{}, "total": 0})
			return
		}
		query = query.Where("staff_id = ?", staff.StaffID)
	}

	var orders []models.MissionOrder
	if err := query.Order("mission_order_id DESC").Find(&orders).Error; err != nil {
		respondError(c, http.StatusInternalServerError, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mission_orders": shape(c, orders), "total": len(orders)})
}

// GetMissionOrder returns one order in the nested read view.
func GetMissionOrder(c *gin.Context) {
	order, ok := loadOrderForCaller(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"mission_order": shape(c, order)})
}

// UpdateMissionOrder applies the flat write shape to an existing order. The
// duration fields are recomputed from the dates, never taken from the client.
func UpdateMissionOrder(c *gin.Context) {
	order, ok := loadOrderForCaller(c)
	if !ok {
		return
	}

	var req struct {
		UnitID              *int    `json:"unit"`
		Role                *string `json:"role"`
		PurposeOfMission    *string `json:"purpose_of_mission"`
		ExpectedResults     *string `json:"expected_results"`
		Destination         *string `json:"destination"`
		DistanceKM          *int    `json:"distance_km"`
		DepartureDate       *string `json:"departure_date"`
		ReturningDate       *string `json:"returning_date"`
		SupervisorName      *string `json:"supervisor_name"`
		SupervisorSignature *string `json:"supervisor_signature"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, map[string]string{"detail": err.Error()})
		return
	}

	fields := map[string]string{}
	if req.UnitID != nil {
		var count int64
		config.DB.Model(&models.Unit{}).Where("unit_id = ?", *req.UnitID).Count(&count)
		if count == 0 {
			fields["unit"] = "The specified unit does not exist."
		} else {
			order.UnitID = *req.UnitID
		}
	}
	if req.Role != nil {
		if !models.ValidMissionRole(*req.Role) {
			fields["role"] = "The role is not a recognized mission role."
		} else {
			order.Role = *req.Role
		}
	}
	if req.Destination != nil {
		if !models.ValidDestination(*req.Destination) {
			fields["destination"] = "The destination is not a recognized district."
		} else {
			order.Destination = *req.Destination
		}
	}
	if req.PurposeOfMission != nil {
		order.PurposeOfMission = *req.PurposeOfMission
	}
	if req.ExpectedResults != nil {
		order.ExpectedResults = *req.ExpectedResults
	}
	if req.DistanceKM != nil {
		order.DistanceKM = req.DistanceKM
	}
	if req.SupervisorName != nil {
		order.SupervisorName = *req.SupervisorName
	}
	if req.SupervisorSignature != nil {
		order.SupervisorSignature = *req.SupervisorSignature
	}

	departure := order.DepartureDate
	returning := order.ReturningDate
	if req.DepartureDate != nil {
		parsed, err := parseDate(*req.DepartureDate)
		if err != nil {
			fields["departure_date"] = "Date must be in YYYY-MM-DD format."
		} else {
			departure = parsed
		}
	}
	if req.ReturningDate != nil {
		parsed, err := parseDate(*req.ReturningDate)
		if err != nil {
			fields["returning_date"] = "Date must be in YYYY-MM-DD format."
		} else {
			returning = parsed
		}
	}

	if len(fields) > 0 {
		respondError(c, http.StatusBadRequest, fields)
		return
	}

	if err := services.NewMissionOrderService(config.DB).UpdateDates(order, departure, returning); err != nil {
		respondServiceError(c, err)
		return
	}

	if err := config.DB.Save(order).Error; err != nil {
		respondError(c, http.StatusInternalServerError, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mission_order": shape(c, order)})
}

// DeleteMissionOrder removes an order and everything it owns: transportation,
// approval details, approvals, and attachment records with their stored files.
func DeleteMissionOrder(c *gin.Context) {
	order, ok := loadOrderForCaller(c)
	if !ok {
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("mission_order_id = ?", order.MissionOrderID).Delete(&models.Approval{}).Error; err != nil {
			return err
		}
		if err := tx.Where("mission_order_id = ?", order.MissionOrderID).Delete(&models.MissionAttachment{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.MissionOrder{}, order.MissionOrderID).Error; err != nil {
			return err
		}
		if order.TransportationID != nil {
			if err := tx.Delete(&models.Transportation{}, *order.TransportationID).Error; err != nil {
				return err
			}
		}
		if order.ApprovalDetailsID != nil {
			if err := tx.Delete(&models.ApprovalDetails{}, *order.ApprovalDetailsID).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		respondError(c, http.StatusInternalServerError, nil)
		return
	}

	for _, attachment := range order.Attachments {
		if err := os.Remove(attachment.StoredFilename); err != nil && !os.IsNotExist(err) {
			log.Printf("failed to remove attachment file %s: %v", attachment.StoredFilename, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Mission order deleted successfully"})
}

// loadOrderForCaller fetches the order in the nested view and enforces the
// owner-or-privileged access rule. Writes the error response on failure.
func loadOrderForCaller(c *gin.Context) (*models.MissionOrder, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, map[string]string{"id": "Invalid mission order ID."})
		return nil, false
	}

	var order models.MissionOrder
	if err := missionOrderPreloads(config.DB).
		Where("mission_order_id = ?", id).
		First(&order).Error; err != nil {
		respondError(c, http.StatusNotFound, nil)
		return nil, false
	}

	if !canActOnAnyOrder(c) {
		staff, err := callerStaff(c)
		if err != nil || staff.StaffID != order.StaffID {
			respondError(c, http.StatusForbidden, map[string]string{"detail": "You do not have permission to perform this action."})
			return nil, false
		}
	}
	return &order, true
}

// notifyApprover emails the designated approver about a new pending approval.
// Best effort: failures are logged, never surfaced to the requester.
func notifyApprover(approval *models.Approval, order *models.MissionOrder) {
	go func() {
		var approver models.Staff
		if err := config.DB.Preload("User").
			Where("staff_id = ?", approval.ApproverID).
			First(&approver).Error; err != nil || approver.User == nil {
			log.Printf("approval %d: could not resolve approver email", approval.ApprovalID)
			return
		}

		subject := "Mission order awaiting your approval"
		body := fmt.Sprintf(
			"<p>Dear %s,</p><p>A mission order to %s (departing %s) is awaiting your approval.</p>",
			approver.FullName(),
			order.Destination,
			order.DepartureDate.Format("2006-01-02"),
		)
		if err := config.SendMail([]string{approver.User.Email}, subject, body); err != nil {
			log.Printf("approval %d: failed to notify approver: %v", approval.ApprovalID, err)
		}
	}()
}
