package models

import (
	"time"
)

type College struct {
	CollegeID int       `gorm:"primaryKey;column:college_id" json:"college_id"`
	Name      string    `gorm:"column:name;unique" json:"name"`
	ShortName string    `gorm:"column:short_name;unique" json:"short_name"`
	Created   time.Time `gorm:"column:created;autoCreateTime" json:"created"`
	Modified  time.Time `gorm:"column:modified;autoUpdateTime" json:"modified"`
}

// Unit is a school or unit under a college. ManagerID points at the staff
// member acting as unit manager; the column is unique so a staff member can
// manage at most one unit.
type Unit struct {
	UnitID      int       `gorm:"primaryKey;column:unit_id" json:"unit_id"`
	Name        string    `gorm:"column:name;unique" json:"name"`
	ShortName   string    `gorm:"column:short_name;unique" json:"short_name"`
	Description string    `gorm:"column:description" json:"description"`
	CollegeID   int       `gorm:"column:college_id" json:"college_id"`
	ManagerID   *int      `gorm:"column:manager_id;unique" json:"manager_id,omitempty"`
	Created     time.Time `gorm:"column:created;autoCreateTime" json:"created"`
	Modified    time.Time `gorm:"column:modified;autoUpdateTime" json:"modified"`

	// Relations
	College *College `gorm:"foreignKey:CollegeID" json:"college,omitempty"`
	Manager *Staff   `gorm:"foreignKey:ManagerID" json:"manager,omitempty"`
}

type Department struct {
	DepartmentID int       `gorm:"primaryKey;column:department_id" json:"department_id"`
	Name         string    `gorm:"column:name;unique" json:"name"`
	ShortName    string    `gorm:"column:short_name;unique" json:"short_name"`
	Description  string    `gorm:"column:description" json:"description"`
	UnitID       int       `gorm:"column:unit_id" json:"unit_id"`
	Created      time.Time `gorm:"column:created;autoCreateTime" json:"created"`
	Modified     time.Time `gorm:"column:modified;autoUpdateTime" json:"modified"`

	// Relations
	Unit *Unit `gorm:"foreignKey:UnitID" json:"unit,omitempty"`
}

// Campus scopes staff only. The approval router never filters by campus:
// campus-manager candidates are selected by college, not campus.
type Campus struct {
	CampusID    int       `gorm:"primaryKey;column:campus_id" json:"campus_id"`
	Name        string    `gorm:"column:name;unique" json:"name"`
	Description *string   `gorm:"column:description" json:"description,omitempty"`
	Created     time.Time `gorm:"column:created;autoCreateTime" json:"created"`
	Modified    time.Time `gorm:"column:modified;autoUpdateTime" json:"modified"`
}

// TableName overrides
func (College) TableName() string {
	return "colleges"
}

func (Unit) TableName() string {
	return "units"
}

func (Department) TableName() string {
	return "departments"
}

func (Campus) TableName() string {
	return "campuses"
}
