package models

import (
	"time"
)

// Gender catalog
const (
	GenderMale   = "MALE"
	GenderFemale = "FEMALE"
)

// Employment type catalog
const (
	TypeAcademic    = "ACADEMIC"
	TypeNonAcademic = "NON_ACADEMIC"
)

// Staff is a staff member's institutional profile, linked one-to-one to the
// account that holds role-group memberships. UnitID is null for top-level and
// campus-level staff; such a staff member cannot resolve as a unit-level
// approver.
type Staff struct {
	StaffID     int       `gorm:"primaryKey;column:staff_id" json:"staff_id"`
	UserID      int       `gorm:"column:user_id;unique" json:"user_id"`
	FirstName   string    `gorm:"column:first_name" json:"first_name"`
	LastName    string    `gorm:"column:last_name" json:"last_name"`
	Gender      string    `gorm:"column:gender" json:"gender"`
	Type        string    `gorm:"column:type" json:"type"`
	UnitID      *int      `gorm:"column:unit_id" json:"unit_id,omitempty"`
	CampusID    int       `gorm:"column:campus_id" json:"campus_id"`
	PhoneNumber *string   `gorm:"column:phone_number;unique" json:"phone_number,omitempty"`
	Created     time.Time `gorm:"column:created;autoCreateTime" json:"created"`
	Modified    time.Time `gorm:"column:modified;autoUpdateTime" json:"modified"`

	// Relations
	User   *User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Unit   *Unit   `gorm:"foreignKey:UnitID" json:"unit,omitempty"`
	Campus *Campus `gorm:"foreignKey:CampusID" json:"campus,omitempty"`
}

// FullName joins first and last name for display and notifications.
func (s *Staff) FullName() string {
	return s.FirstName + " " + s.LastName
}

func ValidGender(value string) bool {
	return value == GenderMale || value == GenderFemale
}

func ValidStaffType(value string) bool {
	return value == TypeAcademic || value == TypeNonAcademic
}

// TableName overrides
func (Staff) TableName() string {
	return "staff"
}
