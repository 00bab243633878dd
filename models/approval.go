package models

import (
	"time"
)

// Approval status state machine: PENDING is initial, APPROVED and REJECTED
// are terminal. Transitions happen only through a conditional update guarded
// on the PENDING status.
const (
	ApprovalStatusPending  = "PENDING"
	ApprovalStatusApproved = "APPROVED"
	ApprovalStatusRejected = "REJECTED"
)

// Approval binds a mission order to its designated approver for one routing
// hop. Created exactly once, right after the order is first persisted, when
// the router resolves an approver.
type Approval struct {
	ApprovalID      int        `gorm:"primaryKey;column:approval_id" json:"approval_id"`
	MissionOrderID  int        `gorm:"column:mission_order_id" json:"mission_order_id"`
	ApproverID      int        `gorm:"column:approver_id" json:"approver_id"`
	Status          string     `gorm:"column:status;default:PENDING" json:"status"`
	ApprovalDate    *time.Time `gorm:"column:approval_date" json:"approval_date,omitempty"`
	Comments        *string    `gorm:"column:comments" json:"comments,omitempty"`
	Rejected        bool       `gorm:"column:rejected" json:"rejected"`
	RejectionReason *string    `gorm:"column:rejection_reason" json:"rejection_reason,omitempty"`
	Created         time.Time  `gorm:"column:created;autoCreateTime" json:"created"`
	Modified        time.Time  `gorm:"column:modified;autoUpdateTime" json:"modified"`

	// Relations
	MissionOrder *MissionOrder `gorm:"foreignKey:MissionOrderID" json:"mission_order,omitempty"`
	Approver     *Staff        `gorm:"foreignKey:ApproverID" json:"approver,omitempty"`
}

// IsTerminal reports whether the approval has reached a final state.
func (a *Approval) IsTerminal() bool {
	return a.Status == ApprovalStatusApproved || a.Status == ApprovalStatusRejected
}

// TableName overrides
func (Approval) TableName() string {
	return "approvals"
}
