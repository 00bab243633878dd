package services

import (
	"errors"
	"fmt"

	"github.com/iPelino/ur-missions/models"

	"gorm.io/gorm"
)

// ApprovalRouterService resolves the next approver for a staff member from
// their role-group membership and their place in the org hierarchy. The
// chain is a fixed three-tier hierarchy: staff report to their unit manager,
// unit managers to a campus manager of the same college, campus managers to
// the VC/DVC level. Anything outside those roles needs no approval.
type ApprovalRouterService struct {
	db *gorm.DB
}

func NewApprovalRouterService(db *gorm.DB) *ApprovalRouterService {
	return &ApprovalRouterService{db: db}
}

// NextApprover returns the staff member who must act on a request from the
// given staff member, or nil when no approver is required. A nil result with
// a nil error is a valid terminal outcome, not a failure.
//
// Returns ErrMissingOrganizationContext when the requester's role needs a
// unit lookup but the requester has no unit assigned.
func (s *ApprovalRouterService) NextApprover(requester *models.Staff) (*models.Staff, error) {
	groupNames, err := s.groupNames(requester.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load group membership: %w", err)
	}

	switch models.RoutingRoleOf(groupNames) {
	case models.RoleStaffMember:
		return s.unitManagerOf(requester)
	case models.RoleUnitManager:
		return s.campusManagerFor(requester)
	case models.RoleCampusManager:
		return s.seniorExecutive()
	case models.RoleSeniorExecutive, models.RoleNone:
		return nil, nil
	default:
		return nil, nil
	}
}

func (s *ApprovalRouterService) groupNames(userID int) ([]string, error) {
	var names []string
	err := s.db.Table("`groups`").
		Joins("JOIN user_groups ON user_groups.group_id = `groups`.group_id").
		Where("user_groups.user_id = ?", userID).
		Order("`groups`.group_id ASC").
		Pluck("`groups`.name", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}

// unitManagerOf resolves the manager of the requester's unit. A unit with no
// assigned manager yields no approver rather than an error.
func (s *ApprovalRouterService) unitManagerOf(requester *models.Staff) (*models.Staff, error) {
	unit, err := s.unitOf(requester)
	if err != nil {
		return nil, err
	}
	if unit.ManagerID == nil {
		return nil, nil
	}

	var manager models.Staff
	if err := s.db.Where("staff_id = ?", *unit.ManagerID).First(&manager).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &manager, nil
}

// campusManagerFor picks the first campus-manager staff member whose unit
// belongs to the same college as the requester's unit. Candidates are
// selected by college, not campus; ties break by staff id ascending.
func (s *ApprovalRouterService) campusManagerFor(requester *models.Staff) (*models.Staff, error) {
	unit, err := s.unitOf(requester)
	if err != nil {
		return nil, err
	}

	var candidate models.Staff
	err = s.db.
		Joins("JOIN units candidate_unit ON candidate_unit.unit_id = staff.unit_id").
		Joins("JOIN user_groups ON user_groups.user_id = staff.user_id").
		Joins("JOIN `groups` ON `groups`.group_id = user_groups.group_id").
		Where("`groups`.name = ?", models.GroupCampusManager).
		Where("candidate_unit.college_id = ?", unit.CollegeID).
		Order("staff.staff_id ASC").
		First(&candidate).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &candidate, nil
}

// seniorExecutive picks the first staff member holding VC or DVC membership,
// staff id ascending.
func (s *ApprovalRouterService) seniorExecutive() (*models.Staff, error) {
	var candidate models.Staff
	err := s.db.
		Joins("JOIN user_groups ON user_groups.user_id = staff.user_id").
		Joins("JOIN `groups` ON `groups`.group_id = user_groups.group_id").
		Where("`groups`.name IN ?", []string{models.GroupVC, models.GroupDVC}).
		Order("staff.staff_id ASC").
		First(&candidate).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &candidate, nil
}

func (s *ApprovalRouterService) unitOf(requester *models.Staff) (*models.Unit, error) {
	if requester.UnitID == nil {
		return nil, ErrMissingOrganizationContext
	}

	var unit models.Unit
	if err := s.db.Where("unit_id = ?", *requester.UnitID).First(&unit).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMissingOrganizationContext
		}
		return nil, err
	}
	return &unit, nil
}
