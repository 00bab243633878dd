package services

import (
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"

	"github.com/iPelino/ur-missions/models"
)

var (
	approvalByIDPattern   = regexp.MustCompile("SELECT \\* FROM `approvals` WHERE approval_id = ")
	approvalUpdatePattern = regexp.MustCompile("UPDATE `approvals` SET .* WHERE approval_id = \\? AND status = ")
)

func pendingApprovalStep(approvalID int64) *queryStep {
	return &queryStep{
		pattern: approvalByIDPattern,
		args:    []driver.Value{approvalID},
		columns: []string{"approval_id", "mission_order_id", "approver_id", "status", "rejected"},
		rows:    [][]driver.Value{{approvalID, int64(42), int64(7), "PENDING", int64(0)}},
	}
}

func TestApproveStampsApprovalDate(t *testing.T) {
	steps := []*queryStep{
		pendingApprovalStep(11),
		{
			kind:    kindExec,
			pattern: approvalUpdatePattern,
			result:  scriptedResult{rowsAffected: 1},
		},
	}

	gormDB, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	service := NewApprovalService(gormDB)
	approval, err := service.Approve(11, "Travel justified")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if approval.Status != models.ApprovalStatusApproved {
		t.Fatalf("expected status APPROVED, got %s", approval.Status)
	}
	if approval.ApprovalDate == nil {
		t.Fatal("expected approval date to be stamped")
	}
	if approval.Comments == nil || *approval.Comments != "Travel justified" {
		t.Fatalf("expected comments to be recorded, got %v", approval.Comments)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestApproveAlreadyResolved(t *testing.T) {
	steps := []*queryStep{
		{
			pattern: approvalByIDPattern,
			args:    []driver.Value{int64(11)},
			columns: []string{"approval_id", "mission_order_id", "approver_id", "status", "rejected"},
			rows:    [][]driver.Value{{int64(11), int64(42), int64(7), "APPROVED", int64(0)}},
		},
		{
			kind:    kindExec,
			pattern: approvalUpdatePattern,
			result:  scriptedResult{rowsAffected: 0},
		},
	}

	gormDB, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	service := NewApprovalService(gormDB)
	if _, err := service.Approve(11, ""); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestRejectRecordsReason(t *testing.T) {
	steps := []*queryStep{
		pendingApprovalStep(12),
		{
			kind:    kindExec,
			pattern: approvalUpdatePattern,
			result:  scriptedResult{rowsAffected: 1},
		},
	}

	gormDB, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	service := NewApprovalService(gormDB)
	approval, err := service.Reject(12, "Budget exhausted for this quarter")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if approval.Status != models.ApprovalStatusRejected {
		t.Fatalf("expected status REJECTED, got %s", approval.Status)
	}
	if !approval.Rejected {
		t.Fatal("expected rejected flag to be set")
	}
	if approval.RejectionReason == nil || *approval.RejectionReason != "Budget exhausted for this quarter" {
		t.Fatalf("expected rejection reason to be recorded, got %v", approval.RejectionReason)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestRejectConcurrentLoser(t *testing.T) {
	steps := []*queryStep{
		pendingApprovalStep(12),
		{
			kind:    kindExec,
			pattern: approvalUpdatePattern,
			result:  scriptedResult{rowsAffected: 0},
		},
	}

	gormDB, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	service := NewApprovalService(gormDB)
	if _, err := service.Reject(12, "duplicate decision"); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestApproveNotFound(t *testing.T) {
	steps := []*queryStep{
		{
			pattern: approvalByIDPattern,
			args:    []driver.Value{int64(99)},
			columns: []string{"approval_id", "mission_order_id", "approver_id", "status", "rejected"},
			rows:    [][]driver.Value{},
		},
	}

	gormDB, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	service := NewApprovalService(gormDB)
	if _, err := service.Approve(99, ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}
