package services

import (
	"database/sql/driver"
	"regexp"
	"testing"
	"time"

	"github.com/iPelino/ur-missions/models"
)

func date(value string) time.Time {
	parsed, err := time.Parse(time.DateOnly, value)
	if err != nil {
		panic(err)
	}
	return parsed
}

func TestComputeDurations(t *testing.T) {
	cases := []struct {
		name       string
		departure  string
		returning  string
		wantDays   int
		wantNights int
	}{
		{"two day trip", "2024-05-01", "2024-05-03", 2, 1},
		{"overnight trip", "2024-05-01", "2024-05-02", 1, 0},
		{"same day trip", "2024-05-01", "2024-05-01", 0, 0},
		{"week long trip", "2024-05-01", "2024-05-08", 7, 6},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			days, nights := computeDurations(date(tc.departure), date(tc.returning))
			if days != tc.wantDays {
				t.Errorf("days: got %d want %d", days, tc.wantDays)
			}
			if nights != tc.wantNights {
				t.Errorf("nights: got %d want %d", nights, tc.wantNights)
			}
		})
	}
}

func validTestDraft() *MissionOrderDraft {
	return &MissionOrderDraft{
		StaffID:          1,
		UnitID:           2,
		Role:             "LECTURER",
		PurposeOfMission: "Field supervision of student internships",
		ExpectedResults:  "Supervision report",
		Destination:      "HUYE",
		DepartureDate:    date("2024-05-01"),
		ReturningDate:    date("2024-05-03"),
	}
}

func TestCreateRejectsInvalidDraft(t *testing.T) {
	cases := []struct {
		name      string
		mutate    func(*MissionOrderDraft)
		wantField string
	}{
		{
			name:      "unknown role",
			mutate:    func(d *MissionOrderDraft) { d.Role = "VISITING_SCHOLAR" },
			wantField: "role",
		},
		{
			name:      "unknown destination",
			mutate:    func(d *MissionOrderDraft) { d.Destination = "NAIROBI" },
			wantField: "destination",
		},
		{
			name:      "blank purpose",
			mutate:    func(d *MissionOrderDraft) { d.PurposeOfMission = "" },
			wantField: "purpose_of_mission",
		},
		{
			name:      "blank expected results",
			mutate:    func(d *MissionOrderDraft) { d.ExpectedResults = "" },
			wantField: "expected_results",
		},
		{
			name: "returning before departure",
			mutate: func(d *MissionOrderDraft) {
				d.DepartureDate = date("2024-05-03")
				d.ReturningDate = date("2024-05-01")
			},
			wantField: "returning_date",
		},
		{
			name: "bad transportation means",
			mutate: func(d *MissionOrderDraft) {
				d.Transportation = &TransportationDraft{TransportationMeans: "BICYCLE"}
			},
			wantField: "transportation_means",
		},
	}

	gormDB, state, cleanup := newScriptedGormDB(t, nil)
	defer cleanup()

	service := NewMissionOrderService(gormDB)

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			draft := validTestDraft()
			tc.mutate(draft)

			_, err := service.Create(draft)
			validationErr, ok := AsValidationError(err)
			if !ok {
				t.Fatalf("expected validation error, got %v", err)
			}
			if _, present := validationErr.Fields[tc.wantField]; !present {
				t.Fatalf("expected field %q in %v", tc.wantField, validationErr.Fields)
			}
		})
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestCreateMissionOrderCreatesPendingApproval(t *testing.T) {
	steps := []*queryStep{
		{
			pattern: staffByIDPattern,
			args:    []driver.Value{int64(1)},
			columns: []string{"staff_id", "user_id", "unit_id", "campus_id"},
			rows:    [][]driver.Value{{int64(1), int64(10), int64(2), int64(1)}},
		},
		{
			pattern: unitByIDPattern,
			args:    []driver.Value{int64(2)},
			columns: []string{"unit_id", "college_id", "manager_id"},
			rows:    [][]driver.Value{{int64(2), int64(4), int64(7)}},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("INSERT INTO `transportations`"),
			result:  scriptedResult{lastInsertID: 5, rowsAffected: 1},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("INSERT INTO `mission_orders`"),
			result:  scriptedResult{lastInsertID: 42, rowsAffected: 1},
		},
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
			columns: []string{"staff_id", "user_id", "unit_id", "campus_id"},
			rows:    [][]driver.Value{{int64(7), int64(70), int64(2), int64(1)}},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("INSERT INTO `approvals`"),
			result:  scriptedResult{lastInsertID: 99, rowsAffected: 1},
		},
	}

	gormDB, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	service := NewMissionOrderService(gormDB)
	draft := validTestDraft()
	draft.Transportation = &TransportationDraft{TransportationMeans: models.TransportPublic}

	order, err := service.Create(draft)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if order.MissionOrderID != 42 {
		t.Fatalf("expected mission_order_id 42, got %d", order.MissionOrderID)
	}
	if order.DurationDays != 2 || order.DurationNights != 1 {
		t.Fatalf("expected durations 2/1, got %d/%d", order.DurationDays, order.DurationNights)
	}
	if order.TransportationID == nil || *order.TransportationID != 5 {
		t.Fatalf("expected transportation_id 5, got %v", order.TransportationID)
	}
	if len(order.Approvals) != 1 {
		t.Fatalf("expected exactly one approval, got %d", len(order.Approvals))
	}
	approval := order.Approvals[0]
	if approval.Status != models.ApprovalStatusPending {
		t.Fatalf("expected PENDING approval, got %s", approval.Status)
	}
	if approval.ApproverID != 7 {
		t.Fatalf("expected approver staff_id 7, got %d", approval.ApproverID)
	}
	if approval.Approver == nil {
		t.Fatal("expected approver relation to be populated")
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestCreateSkipsApprovalWithoutOrganizationContext(t *testing.T) {
	steps := []*queryStep{
		{
			pattern: staffByIDPattern,
			args:    []driver.Value{int64(1)},
			columns: []string{"staff_id", "user_id", "unit_id", "campus_id"},
			rows:    [][]driver.Value{{int64(1), int64(10), nil, int64(1)}},
		},
		{
			pattern: unitByIDPattern,
			args:    []driver.Value{int64(2)},
			columns: []string{"unit_id", "college_id", "manager_id"},
			rows:    [][]driver.Value{{int64(2), int64(4), int64(7)}},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("INSERT INTO `mission_orders`"),
			result:  scriptedResult{lastInsertID: 43, rowsAffected: 1},
		},
		{
			pattern: groupNamesPattern,
			args:    []driver.Value{int64(10)},
			columns: []string{"name"},
			rows:    [][]driver.Value{{"Staff"}},
		},
	}

	gormDB, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	service := NewMissionOrderService(gormDB)
	order, err := service.Create(validTestDraft())
	if err != nil {
		t.Fatalf("expected order to succeed without an approval, got %v", err)
	}

	if order.MissionOrderID != 43 {
		t.Fatalf("expected mission_order_id 43, got %d", order.MissionOrderID)
	}
	if len(order.Approvals) != 0 {
		t.Fatalf("expected no approvals, got %d", len(order.Approvals))
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestCreateRejectsUnknownStaff(t *testing.T) {
	steps := []*queryStep{
		{
			pattern: staffByIDPattern,
			args:    []driver.Value{int64(1)},
			columns: []string{"staff_id", "user_id", "unit_id", "campus_id"},
			rows:    [][]driver.Value{},
		},
	}

	gormDB, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	service := NewMissionOrderService(gormDB)
	_, err := service.Create(validTestDraft())
	validationErr, ok := AsValidationError(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, present := validationErr.Fields["staff"]; !present {
		t.Fatalf("expected staff field error, got %v", validationErr.Fields)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestUpdateDatesRecomputesDurations(t *testing.T) {
	service := NewMissionOrderService(nil)
	order := &models.MissionOrder{
		DepartureDate:  date("2024-05-01"),
		ReturningDate:  date("2024-05-03"),
		DurationDays:   2,
		DurationNights: 1,
	}

	if err := service.UpdateDates(order, date("2024-06-10"), date("2024-06-15")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.DurationDays != 5 || order.DurationNights != 4 {
		t.Fatalf("expected durations 5/4, got %d/%d", order.DurationDays, order.DurationNights)
	}

	err := service.UpdateDates(order, date("2024-06-15"), date("2024-06-10"))
	if _, ok := AsValidationError(err); !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
}
