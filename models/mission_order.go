package models

import (
	"time"
)

// Transportation means catalog
const (
	TransportProvided = "PROVIDED"
	TransportPersonal = "PERSONAL"
	TransportPublic   = "PUBLIC"
)

// Transportation is owned by exactly one mission order and removed with it.
type Transportation struct {
	TransportationID      int       `gorm:"primaryKey;column:transportation_id" json:"transportation_id"`
	TransportationMeans   string    `gorm:"column:transportation_means" json:"transportation_means"`
	VehicleIdentification *string   `gorm:"column:vehicle_identification" json:"vehicle_identification,omitempty"`
	DriverName            *string   `gorm:"column:driver_name" json:"driver_name,omitempty"`
	Created               time.Time `gorm:"column:created;autoCreateTime" json:"created"`
	Modified              time.Time `gorm:"column:modified;autoUpdateTime" json:"modified"`
}

// ApprovalDetails holds the administrative block filled in after final
// approval (authorisation, HR acknowledgement, visa and actual travel dates).
type ApprovalDetails struct {
	ApprovalDetailsID    int        `gorm:"primaryKey;column:approval_details_id" json:"approval_details_id"`
	DoneAt               string     `gorm:"column:done_at" json:"done_at"`
	DoneOn               time.Time  `gorm:"column:done_on;type:date" json:"done_on"`
	AuthorizedBy         string     `gorm:"column:authorized_by" json:"authorized_by"`
	AuthorizedSignature  string     `gorm:"column:authorized_signature" json:"authorized_signature"`
	AcknowledgedByHR     string     `gorm:"column:acknowledged_by_hr" json:"acknowledged_by_hr"`
	VisaForDestination   *string    `gorm:"column:visa_for_destination" json:"visa_for_destination,omitempty"`
	ArrivalDate          *time.Time `gorm:"column:arrival_date;type:date" json:"arrival_date,omitempty"`
	ActualDepartureDate  *time.Time `gorm:"column:departure_date;type:date" json:"departure_date,omitempty"`
	Created              time.Time  `gorm:"column:created;autoCreateTime" json:"created"`
	Modified             time.Time  `gorm:"column:modified;autoUpdateTime" json:"modified"`
}

// Role-at-time-of-travel catalog
var missionRoles = map[string]bool{
	"STAFF":               true,
	"TUTORIAL_ASSISTANT":  true,
	"ASSISTANT_LECTURER":  true,
	"LECTURER":            true,
	"SENIOR_LECTURER":     true,
	"ASSOCIATE_PROFESSOR": true,
	"PROFESSOR":           true,
}

// Destination catalog: district names.
var missionDestinations = map[string]bool{
	"KIGALI":     true,
	"HUYE":       true,
	"MUSANZE":    true,
	"RUBAVU":     true,
	"NYAGATARE":  true,
	"RUSIZI":     true,
	"KARONGI":    true,
	"NYANZA":     true,
	"GAKENKE":    true,
	"NGORORERO":  true,
	"KAMONYI":    true,
	"RULINDO":    true,
	"BUGESERA":   true,
	"NYAMASHEKE": true,
	"NYARUGURU":  true,
	"GICUMBI":    true,
	"KIREHE":     true,
	"RWAMAGANA":  true,
	"KAYONZA":    true,
	"GATSIBO":    true,
	"NGOMA":      true,
	"BURERA":     true,
	"NYAMAGABE":  true,
	"RUHAANGO":   true,
	"RUTSIRO":    true,
}

func ValidMissionRole(value string) bool {
	return missionRoles[value]
}

func ValidDestination(value string) bool {
	return missionDestinations[value]
}

func ValidTransportationMeans(value string) bool {
	return value == TransportProvided || value == TransportPersonal || value == TransportPublic
}

// MissionOrder is the travel-request record. DurationDays and DurationNights
// are derived from the travel dates at the write boundary and are never
// client-settable.
type MissionOrder struct {
	MissionOrderID      int       `gorm:"primaryKey;column:mission_order_id" json:"mission_order_id"`
	StaffID             int       `gorm:"column:staff_id" json:"staff_id"`
	UnitID              int       `gorm:"column:unit_id" json:"unit_id"`
	Role                string    `gorm:"column:role" json:"role"`
	PurposeOfMission    string    `gorm:"column:purpose_of_mission" json:"purpose_of_mission"`
	ExpectedResults     string    `gorm:"column:expected_results" json:"expected_results"`
	Destination         string    `gorm:"column:destination" json:"destination"`
	DistanceKM          *int      `gorm:"column:distance_km" json:"distance_km,omitempty"`
	DepartureDate       time.Time `gorm:"column:departure_date;type:date" json:"departure_date"`
	ReturningDate       time.Time `gorm:"column:returning_date;type:date" json:"returning_date"`
	DurationDays        int       `gorm:"column:duration_days" json:"duration_days"`
	DurationNights      int       `gorm:"column:duration_nights" json:"duration_nights"`
	TransportationID    *int      `gorm:"column:transportation_id;unique" json:"transportation_id,omitempty"`
	SupervisorName      string    `gorm:"column:supervisor_name" json:"supervisor_name"`
	SupervisorSignature string    `gorm:"column:supervisor_signature" json:"supervisor_signature"`
	ApprovalDetailsID   *int      `gorm:"column:approval_details_id;unique" json:"approval_details_id,omitempty"`
	Created             time.Time `gorm:"column:created;autoCreateTime" json:"created"`
	Modified            time.Time `gorm:"column:modified;autoUpdateTime" json:"modified"`

	// Relations
	Staff           *Staff              `gorm:"foreignKey:StaffID" json:"staff,omitempty"`
	Unit            *Unit               `gorm:"foreignKey:UnitID" json:"unit,omitempty"`
	Transportation  *Transportation     `gorm:"foreignKey:TransportationID" json:"transportation,omitempty"`
	ApprovalDetails *ApprovalDetails    `gorm:"foreignKey:ApprovalDetailsID" json:"approval_details,omitempty"`
	Attachments     []MissionAttachment `gorm:"foreignKey:MissionOrderID" json:"attachments,omitempty"`
	Approvals       []Approval          `gorm:"foreignKey:MissionOrderID" json:"approvals,omitempty"`
}

// MissionAttachment records one uploaded file belonging to a mission order.
// The stored filename is a uuid under UPLOAD_PATH; the file is removed
// together with the order.
type MissionAttachment struct {
	AttachmentID     int       `gorm:"primaryKey;column:attachment_id" json:"attachment_id"`
	MissionOrderID   int       `gorm:"column:mission_order_id" json:"mission_order_id"`
	OriginalFilename string    `gorm:"column:original_filename" json:"original_filename"`
	StoredFilename   string    `gorm:"column:stored_filename" json:"-"`
	FileType         string    `gorm:"column:file_type" json:"file_type"`
	UploadedAt       time.Time `gorm:"column:uploaded_at;autoCreateTime" json:"uploaded_at"`
}

// TableName overrides
func (Transportation) TableName() string {
	return "transportations"
}

func (ApprovalDetails) TableName() string {
	return "approval_details"
}

func (MissionOrder) TableName() string {
	return "mission_orders"
}

func (MissionAttachment) TableName() string {
	return "mission_attachments"
}
