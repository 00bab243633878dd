package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/iPelino/ur-missions/config"
	"github.com/iPelino/ur-missions/models"
	"github.com/iPelino/ur-missions/services"

	"github.com/gin-gonic/gin"
)

type ApprovalCreateRequest struct {
	MissionOrderID int `json:"mission_order" binding:"required"`
	ApproverID     int `json:"approver" binding:"required"`
}

// ApprovalUpdateRequest invokes a state-machine transition. Action is either
// "approve" or "reject"; reason is required when rejecting.
type ApprovalUpdateRequest struct {
	Action   string `json:"action" binding:"required"`
	Comments string `json:"comments"`
	Reason   string `json:"reason"`
}

// GetApprovals lists approvals. Non-privileged callers only see approvals
// designated to them.
func GetApprovals(c *gin.Context) {
	query := config.DB.
		Preload("Approver").
		Preload("MissionOrder").Preload("MissionOrder.Staff")

	if !canActOnAnyOrder(c) {
		staff, err := callerStaff(c)
		if err != nil {
			c.JSON(http.StatusOK, gin.H{"approvals": []models.Approval{}, "total": 0})
			return
		}
		query = query.Where("approver_id = ?", staff.StaffID)
	}

	if status := strings.ToUpper(strings.TrimSpace(c.Query("status"))); status != "" {
		query = query.Where("status = ?", status)
	}

	var approvals []models.Approval
	if err := query.Order("approval_id DESC").Find(&approvals).Error; err != nil {
		respondError(c, http.StatusInternalServerError, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"approvals": shape(c, approvals), "total": len(approvals)})
}

// GetApproval returns one approval with the order and approver expanded.
func GetApproval(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, map[string]string{"id": "Invalid approval ID."})
		return
	}

	var approval models.Approval
	if err := config.DB.
		Preload("Approver").
		Preload("MissionOrder").Preload("MissionOrder.Staff").
		Where("approval_id = ?", id).First(&approval).Error; err != nil {
		respondError(c, http.StatusNotFound, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"approval": shape(c, approval)})
}

// CreateApproval is the administrative override path: it binds a PENDING
// approval to an explicit approver, bypassing the router.
func CreateApproval(c *gin.Context) {
	var req ApprovalCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, map[string]string{"detail": err.Error()})
		return
	}

	fields := map[string]string{}
	var count int64
	config.DB.Model(&models.MissionOrder{}).Where("mission_order_id = ?", req.MissionOrderID).Count(&count)
	if count == 0 {
		fields["mission_order"] = "The specified mission order does not exist."
	}
	count = 0
	config.DB.Model(&models.Staff{}).Where("staff_id = ?", req.ApproverID).Count(&count)
	if count == 0 {
		fields["approver"] = "The specified staff does not exist."
	}

	var existing []models.Approval
	config.DB.Where("mission_order_id = ?", req.MissionOrderID).Find(&existing)
	for _, open := range existing {
		if !open.IsTerminal() {
			fields["mission_order"] = "The mission order already has an open approval."
			break
		}
	}

	if len(fields) > 0 {
		respondError(c, http.StatusBadRequest, fields)
		return
	}

	approval := models.Approval{
		MissionOrderID: req.MissionOrderID,
		ApproverID:     req.ApproverID,
		Status:         models.ApprovalStatusPending,
	}
	if err := config.DB.Create(&approval).Error; err != nil {
		respondError(c, http.StatusInternalServerError, nil)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"approval": shape(c, approval)})
}

// UpdateApproval invokes the approve/reject transition on a pending approval.
// The route gate admits any manager-level or admin caller, which is broader
// than the designated approver alone.
func UpdateApproval(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, map[string]string{"id": "Invalid approval ID."})
		return
	}

	var req ApprovalUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, map[string]string{"detail": err.Error()})
		return
	}

	svc := services.NewApprovalService(config.DB)

	var approval *models.Approval
	switch strings.ToLower(strings.TrimSpace(req.Action)) {
	case "approve":
		approval, err = svc.Approve(id, req.Comments)
	case "reject":
		if strings.TrimSpace(req.Reason) == "" {
			respondError(c, http.StatusBadRequest, map[string]string{"reason": "A rejection reason is required."})
			return
		}
		approval, err = svc.Reject(id, req.Reason)
	default:
		respondError(c, http.StatusBadRequest, map[string]string{"action": "Action must be either 'approve' or 'reject'."})
		return
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"approval": shape(c, approval)})
}

// SetApprovalDetails records the administrative approval block on an order
// after the final approval is granted.
func SetApprovalDetails(c *gin.Context) {
	order, ok := loadOrderForCaller(c)
	if !ok {
		return
	}

	var req struct {
		DoneAt              string  `json:"done_at" binding:"required"`
		DoneOn              string  `json:"done_on" binding:"required"`
		AuthorizedBy        string  `json:"authorized_by" binding:"required"`
		AuthorizedSignature string  `json:"authorized_signature" binding:"required"`
		AcknowledgedByHR    string  `json:"acknowledged_by_hr" binding:"required"`
		VisaForDestination  *string `json:"visa_for_destination"`
		ArrivalDate         *string `json:"arrival_date"`
		DepartureDate       *string `json:"departure_date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, map[string]string{"detail": err.Error()})
		return
	}

	doneOn, err := parseDate(req.DoneOn)
	if err != nil {
		respondError(c, http.StatusBadRequest, map[string]string{"done_on": "Date must be in YYYY-MM-DD format."})
		return
	}

	details := models.ApprovalDetails{
		DoneAt:              req.DoneAt,
		DoneOn:              doneOn,
		AuthorizedBy:        req.AuthorizedBy,
		AuthorizedSignature: req.AuthorizedSignature,
		AcknowledgedByHR:    req.AcknowledgedByHR,
		VisaForDestination:  req.VisaForDestination,
	}
	if req.ArrivalDate != nil {
		parsed, err := parseDate(*req.ArrivalDate)
		if err != nil {
			respondError(c, http.StatusBadRequest, map[string]string{"arrival_date": "Date must be in YYYY-MM-DD format."})
			return
		}
		details.ArrivalDate = &parsed
	}
	if req.DepartureDate != nil {
		parsed, err := parseDate(*req.DepartureDate)
		if err != nil {
			respondError(c, http.StatusBadRequest, map[string]string{"departure_date": "Date must be in YYYY-MM-DD format."})
			return
		}
		details.ActualDepartureDate = &parsed
	}

	if order.ApprovalDetailsID != nil {
		details.ApprovalDetailsID = *order.ApprovalDetailsID
		if err := config.DB.Save(&details).Error; err != nil {
			respondError(c, http.StatusInternalServerError, nil)
			return
		}
	} else {
		if err := config.DB.Create(&details).Error; err != nil {
			respondError(c, http.StatusInternalServerError, nil)
			return
		}
		if err := config.DB.Model(&models.MissionOrder{}).
			Where("mission_order_id = ?", order.MissionOrderID).
			Update("approval_details_id", details.ApprovalDetailsID).Error; err != nil {
			respondError(c, http.StatusInternalServerError, nil)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"approval_details": shape(c, details)})
}
