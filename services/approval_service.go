package services

import (
	"errors"
	"time"

	"github.com/iPelino/ur-missions/models"

	"gorm.io/gorm"
)

// ApprovalService owns the approval state machine. Transitions are guarded by
// a conditional update on the PENDING status so that only one of two racing
// calls wins; the loser observes ErrInvalidTransition.
type ApprovalService struct {
	db *gorm.DB

	// chainNext, when set, runs inside the transition after a successful
	// approve and may create the next hop of the chain. Routing beyond the
	// first hop is not enabled: the hook stays nil by default.
	chainNext func(tx *gorm.DB, approval *models.Approval) error
}

func NewApprovalService(db *gorm.DB) *ApprovalService {
	return &ApprovalService{db: db}
}

// Approve transitions a PENDING approval to APPROVED and stamps the approval
// date. Calling it on an already-terminal approval fails with
// ErrInvalidTransition and leaves the record unchanged.
func (s *ApprovalService) Approve(approvalID int, comments string) (*models.Approval, error) {
	approval, err := s.load(approvalID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":        models.ApprovalStatusApproved,
		"approval_date": now,
		"modified":      now,
	}
	if comments != "" {
		updates["comments"] = comments
	}

	if err := s.transition(approvalID, updates); err != nil {
		return nil, err
	}

	approval.Status = models.ApprovalStatusApproved
	approval.ApprovalDate = &now
	approval.Modified = now
	if comments != "" {
		approval.Comments = &comments
	}

	if s.chainNext != nil {
		if err := s.chainNext(s.db, approval); err != nil {
			return nil, err
		}
	}
	return approval, nil
}

// Reject transitions a PENDING approval to REJECTED, recording the reason.
func (s *ApprovalService) Reject(approvalID int, reason string) (*models.Approval, error) {
	approval, err := s.load(approvalID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":           models.ApprovalStatusRejected,
		"rejected":         true,
		"rejection_reason": reason,
		"modified":         now,
	}

	if err := s.transition(approvalID, updates); err != nil {
		return nil, err
	}

	approval.Status = models.ApprovalStatusRejected
	approval.Rejected = true
	approval.RejectionReason = &reason
	approval.Modified = now
	return approval, nil
}

func (s *ApprovalService) load(approvalID int) (*models.Approval, error) {
	var approval models.Approval
	if err := s.db.Where("approval_id = ?", approvalID).First(&approval).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &approval, nil
}

// transition applies the updates only while the row is still PENDING. A zero
// rows-affected result means another caller already resolved the approval.
func (s *ApprovalService) transition(approvalID int, updates map[string]interface{}) error {
	result := s.db.Model(&models.Approval{}).
		Where("approval_id = ? AND status = ?", approvalID, models.ApprovalStatusPending).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInvalidTransition
	}
	return nil
}
