package models

import (
	"time"
)

type User struct {
	UserID     int        `gorm:"primaryKey;column:user_id" json:"user_id"`
	Email      string     `gorm:"column:email;unique" json:"email"`
	Password   string     `gorm:"column:password" json:"-"`
	IsActive   bool       `gorm:"column:is_active" json:"is_active"`
	IsStaff    bool       `gorm:"column:is_staff" json:"is_staff"`
	DateJoined time.Time  `gorm:"column:date_joined;autoCreateTime" json:"date_joined"`
	LastLogin  *time.Time `gorm:"column:last_login" json:"last_login,omitempty"`

	// Relations
	Groups []Group `gorm:"many2many:user_groups;foreignKey:UserID;joinForeignKey:UserID;references:GroupID;joinReferences:GroupID" json:"groups,omitempty"`
}

// Group is one entry of the fixed role-group catalog. Membership is
// many-to-many: an account can hold several groups at once.
type Group struct {
	GroupID int    `gorm:"primaryKey;column:group_id" json:"group_id"`
	Name    string `gorm:"column:name;unique" json:"name"`
}

// Role-group catalog. Seeded by cmd/seed-groups; names are stable and
// referenced by the approval router and the permission middleware.
const (
	GroupStaff         = "Staff"
	GroupUnitManager   = "Unit Manager"
	GroupCampusManager = "Campus Manager"
	GroupDVC           = "DVC"
	GroupVC            = "VC"
	GroupAdmin         = "Admin"
	GroupSuperuser     = "Superuser"
	GroupCampusAdmin   = "Campus Admin"
)

// AllGroups lists every group in the catalog, in seed order.
func AllGroups() []string {
	return []string{
		GroupStaff,
		GroupUnitManager,
		GroupCampusManager,
		GroupDVC,
		GroupVC,
		GroupAdmin,
		GroupSuperuser,
		GroupCampusAdmin,
	}
}

// RoutingRole is the closed set of roles the approval router recognises.
// An account can hold several groups at once; RoutingRoleOf collapses a
// membership set to a single role using the fixed hierarchy priority.
type RoutingRole int

const (
	RoleNone RoutingRole = iota
	RoleStaffMember
	RoleUnitManager
	RoleCampusManager
	RoleSeniorExecutive
)

// RoutingRoleOf resolves group names to a routing role. Priority order is
// Staff, then Unit Manager, then Campus Manager, then VC/DVC: the groups form
// an implied hierarchy and membership is not exclusive, so the lowest tier
// wins.
func RoutingRoleOf(groupNames []string) RoutingRole {
	member := make(map[string]bool, len(groupNames))
	for _, name := range groupNames {
		member[name] = true
	}

	switch {
	case member[GroupStaff]:
		return RoleStaffMember
	case member[GroupUnitManager]:
		return RoleUnitManager
	case member[GroupCampusManager]:
		return RoleCampusManager
	case member[GroupVC], member[GroupDVC]:
		return RoleSeniorExecutive
	default:
		return RoleNone
	}
}

// GroupNames returns the names of all preloaded groups.
func (u *User) GroupNames() []string {
	names := make([]string, 0, len(u.Groups))
	for _, g := range u.Groups {
		names = append(names, g.Name)
	}
	return names
}

// TableName overrides
func (User) TableName() string {
	return "users"
}

func (Group) TableName() string {
	return "groups"
}
