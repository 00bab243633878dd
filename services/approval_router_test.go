package services

import (
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"

	"github.com/iPelino/ur-missions/models"
)

var (
	groupNamesPattern    = regexp.MustCompile("SELECT `groups`.name FROM `groups` JOIN user_groups")
	unitByIDPattern      = regexp.MustCompile("SELECT \\* FROM `units` WHERE unit_id = ")
	staffByIDPattern     = regexp.MustCompile("SELECT \\* FROM `staff` WHERE staff_id = ")
	campusManagerPattern = regexp.MustCompile("SELECT .* FROM `staff` JOIN units candidate_unit")
	seniorExecPattern    = regexp.MustCompile("SELECT .* FROM `staff` JOIN user_groups")
)

func TestNextApproverRoutesStaffToUnitManager(t *testing.T) {
	steps := []*queryStep{
		{
			pattern: groupNamesPattern,
			args:    []driver.Value{int64(10)},
			columns: []string{"name"},
			rows:    [][]driver.Value{{"Staff"}},
		},
		{
			pattern: unitByIDPattern,
			args:    []driver.Value{int64(2)},
			columns: []string{"unit_id", "college_id", "manager_id"},
			rows:    [][]driver.Value{{int64(2), int64(4), int64(7)}},
		},
		{
			pattern: staffByIDPattern,
			args:    []driver.Value{int64(7)},
			columns: []string{"staff_id", "user_id", "first_name", "last_name"},
			rows:    [][]driver.Value{{int64(7), int64(70), "Jean", "Mugisha"}},
		},
	}

	gormDB, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	service := NewApprovalRouterService(gormDB)
	requester := &models.Staff{StaffID: 1, UserID: 10, UnitID: intPtr(2)}

	approver, err := service.NextApprover(requester)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if approver == nil {
		t.Fatal("expected an approver, got nil")
	}
	if approver.StaffID != 7 {
		t.Fatalf("expected unit manager staff_id 7, got %d", approver.StaffID)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestNextApproverNoManagerAssigned(t *testing.T) {
	steps := []*queryStep{
		{
			pattern: groupNamesPattern,
			args:    []driver.Value{int64(10)},
			columns: []string{"name"},
			rows:    [][]driver.Value{{"Staff"}},
		},
		{
			pattern: unitByIDPattern,
			args:    []driver.Value{int64(2)},
			columns: []string{"unit_id", "college_id", "manager_id"},
			rows:    [][]driver.Value{{int64(2), int64(4), nil}},
		},
	}

	gormDB, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	service := NewApprovalRouterService(gormDB)
	requester := &models.Staff{StaffID: 1, UserID: 10, UnitID: intPtr(2)}

	approver, err := service.NextApprover(requester)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if approver != nil {
		t.Fatalf("expected no approver, got staff_id %d", approver.StaffID)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestNextApproverRoutesUnitManagerByCollege(t *testing.T) {
	steps := []*queryStep{
		{
			pattern: groupNamesPattern,
			args:    []driver.Value{int64(20)},
			columns: []string{"name"},
			rows:    [][]driver.Value{{"Unit Manager"}},
		},
		{
			pattern: unitByIDPattern,
			args:    []driver.Value{int64(2)},
			columns: []string{"unit_id", "college_id", "manager_id"},
			rows:    [][]driver.Value{{int64(2), int64(4), int64(5)}},
		},
		{
			pattern: campusManagerPattern,
			args:    []driver.Value{"Campus Manager", int64(4)},
			columns: []string{"staff_id", "user_id"},
			rows:    [][]driver.Value{{int64(9), int64(90)}},
		},
	}

	gormDB, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	service := NewApprovalRouterService(gormDB)
	requester := &models.Staff{StaffID: 5, UserID: 20, UnitID: intPtr(2)}

	approver, err := service.NextApprover(requester)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if approver == nil || approver.StaffID != 9 {
		t.Fatalf("expected campus manager staff_id 9, got %+v", approver)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestNextApproverNoCampusManagerInCollege(t *testing.T) {
	steps := []*queryStep{
		{
			pattern: groupNamesPattern,
			args:    []driver.Value{int64(20)},
			columns: []string{"name"},
			rows:    [][]driver.Value{{"Unit Manager"}},
		},
		{
			pattern: unitByIDPattern,
			args:    []driver.Value{int64(2)},
			columns: []string{"unit_id", "college_id", "manager_id"},
			rows:    [][]driver.Value{{int64(2), int64(4), int64(5)}},
		},
		{
			pattern: campusManagerPattern,
			args:    []driver.Value{"Campus Manager", int64(4)},
			columns: []string{"staff_id", "user_id"},
			rows:    [][]driver.Value{},
		},
	}

	gormDB, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	service := NewApprovalRouterService(gormDB)
	requester := &models.Staff{StaffID: 5, UserID: 20, UnitID: intPtr(2)}

	approver, err := service.NextApprover(requester)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if approver != nil {
		t.Fatalf("expected no approver, got staff_id %d", approver.StaffID)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestNextApproverRoutesCampusManagerToSeniorExecutive(t *testing.T) {
	steps := []*queryStep{
		{
			pattern: groupNamesPattern,
			args:    []driver.Value{int64(90)},
			columns: []string{"name"},
			rows:    [][]driver.Value{{"Campus Manager"}},
		},
		{
			pattern: seniorExecPattern,
			args:    []driver.Value{"VC", "DVC"},
			columns: []string{"staff_id", "user_id"},
			rows:    [][]driver.Value{{int64(3), int64(30)}},
		},
	}

	gormDB, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	service := NewApprovalRouterService(gormDB)
	requester := &models.Staff{StaffID: 9, UserID: 90, UnitID: intPtr(8)}

	approver, err := service.NextApprover(requester)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if approver == nil || approver.StaffID != 3 {
		t.Fatalf("expected senior executive staff_id 3, got %+v", approver)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestNextApproverSeniorExecutiveNeedsNoApprover(t *testing.T) {
	steps := []*queryStep{
		{
			pattern: groupNamesPattern,
			args:    []driver.Value{int64(30)},
			columns: []string{"name"},
			rows:    [][]driver.Value{{"VC"}},
		},
	}

	gormDB, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	service := NewApprovalRouterService(gormDB)
	requester := &models.Staff{StaffID: 3, UserID: 30}

	approver, err := service.NextApprover(requester)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if approver != nil {
		t.Fatalf("expected no approver, got staff_id %d", approver.StaffID)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestNextApproverUnrecognizedGroups(t *testing.T) {
	steps := []*queryStep{
		{
			pattern: groupNamesPattern,
			args:    []driver.Value{int64(40)},
			columns: []string{"name"},
			rows:    [][]driver.Value{{"Admin"}},
		},
	}

	gormDB, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	service := NewApprovalRouterService(gormDB)
	requester := &models.Staff{StaffID: 4, UserID: 40, UnitID: intPtr(2)}

	approver, err := service.NextApprover(requester)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if approver != nil {
		t.Fatalf("expected no approver, got staff_id %d", approver.StaffID)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestNextApproverMissingUnitContext(t *testing.T) {
	steps := []*queryStep{
		{
			pattern: groupNamesPattern,
			args:    []driver.Value{int64(10)},
			columns: []string{"name"},
			rows:    [][]driver.Value{{"Staff"}},
		},
	}

	gormDB, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	service := NewApprovalRouterService(gormDB)
	requester := &models.Staff{StaffID: 1, UserID: 10, UnitID: nil}

	_, err := service.NextApprover(requester)
	if !errors.Is(err, ErrMissingOrganizationContext) {
		t.Fatalf("expected ErrMissingOrganizationContext, got %v", err)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}
