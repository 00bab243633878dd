package controllers

import (
	"net/http"
	"strconv"

	"github.com/iPelino/ur-missions/config"
	"github.com/iPelino/ur-missions/models"
	"github.com/iPelino/ur-missions/utils"

	"github.com/gin-gonic/gin"
)

type StaffRequest struct {
	UserID      int     `json:"user" binding:"required"`
	FirstName   string  `json:"first_name" binding:"required"`
	LastName    string  `json:"last_name" binding:"required"`
	Gender      string  `json:"gender" binding:"required"`
	Type        string  `json:"type" binding:"required"`
	UnitID      *int    `json:"unit"`
	CampusID    int     `json:"campus" binding:"required"`
	PhoneNumber *string `json:"phone_number"`
}

func validateStaffRequest(req *StaffRequest, excludeID int) map[string]string {
	fields := map[string]string{}

	var count int64
	config.DB.Model(&models.User{}).Where("user_id = ?", req.UserID).Count(&count)
	if count == 0 {
		fields["user"] = "The specified user does not exist."
	} else {
		count = 0
		q := config.DB.Model(&models.Staff{}).Where("user_id = ?", req.UserID)
		if excludeID > 0 {
			q = q.Where("staff_id <> ?", excludeID)
		}
		q.Count(&count)
		if count > 0 {
			fields["user"] = "The specified user is already a staff."
		}
	}

	if !models.ValidGender(req.Gender) {
		fields["gender"] = "The gender must be either 'MALE' or 'FEMALE'."
	}
	if !models.ValidStaffType(req.Type) {
		fields["type"] = "The type must be either 'ACADEMIC' or 'NON_ACADEMIC'."
	}

	if req.UnitID != nil {
		count = 0
		config.DB.Model(&models.Unit{}).Where("unit_id = ?", *req.UnitID).Count(&count)
		if count == 0 {
			fields["unit"] = "The specified unit does not exist."
		}
	}

	count = 0
	config.DB.Model(&models.Campus{}).Where("campus_id = ?", req.CampusID).Count(&count)
	if count == 0 {
		fields["campus"] = "The specified campus does not exist."
	}

	if req.PhoneNumber != nil && !utils.ValidatePhoneNumber(*req.PhoneNumber) {
		fields["phone_number"] = "The phone number must start with country code (without '+') and the total length should be 12 characters."
	}

	return fields
}

// GetStaffList lists staff members with user, unit and campus expanded.
func GetStaffList(c *gin.Context) {
	var staff []models.Staff
	if err := config.DB.
		Preload("User").Preload("User.Groups").
		Preload("Unit").Preload("Unit.College").
		Preload("Campus").
		Order("staff_id ASC").Find(&staff).Error; err != nil {
		respondError(c, http.StatusInternalServerError, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"staff": shape(c, staff), "total": len(staff)})
}

// GetStaff returns one staff member in the nested read view.
func GetStaff(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, map[string]string{"id": "Invalid staff ID."})
		return
	}

	var staff models.Staff
	if err := config.DB.
		Preload("User").Preload("User.Groups").
		Preload("Unit").Preload("Unit.College").
		Preload("Campus").
		Where("staff_id = ?", id).First(&staff).Error; err != nil {
		respondError(c, http.StatusNotFound, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"staff": shape(c, staff)})
}

// CreateStaff registers a staff profile for an existing account.
func CreateStaff(c *gin.Context) {
	var req StaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, map[string]string{"detail": err.Error()})
		return
	}

	if fields := validateStaffRequest(&req, 0); len(fields) > 0 {
		respondError(c, http.StatusBadRequest, fields)
		return
	}

	staff := models.Staff{
		UserID:      req.UserID,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Gender:      req.Gender,
		Type:        req.Type,
		UnitID:      req.UnitID,
		CampusID:    req.CampusID,
		PhoneNumber: req.PhoneNumber,
	}
	if err := config.DB.Create(&staff).Error; err != nil {
		respondError(c, http.StatusInternalServerError, nil)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"staff": shape(c, staff)})
}

// UpdateStaff changes a staff profile.
func UpdateStaff(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, map[string]string{"id": "Invalid staff ID."})
		return
	}

	var staff models.Staff
	if err := config.DB.Where("staff_id = ?", id).First(&staff).Error; err != nil {
		respondError(c, http.StatusNotFound, nil)
		return
	}

	var req StaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, map[string]string{"detail": err.Error()})
		return
	}

	if fields := validateStaffRequest(&req, staff.StaffID); len(fields) > 0 {
		respondError(c, http.StatusBadRequest, fields)
		return
	}

	staff.UserID = req.UserID
	staff.FirstName = req.FirstName
	staff.LastName = req.LastName
	staff.Gender = req.Gender
	staff.Type = req.Type
	staff.UnitID = req.UnitID
	staff.CampusID = req.CampusID
	staff.PhoneNumber = req.PhoneNumber
	if err := config.DB.Save(&staff).Error; err != nil {
		respondError(c, http.StatusInternalServerError, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"staff": shape(c, staff)})
}

// DeleteStaff removes a staff profile.
func DeleteStaff(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, map[string]string{"id": "Invalid staff ID."})
		return
	}

	result := config.DB.Where("staff_id = ?", id).Delete(&models.Staff{})
	if result.Error != nil {
		respondError(c, http.StatusInternalServerError, nil)
		return
	}
	if result.RowsAffected == 0 {
		respondError(c, http.StatusNotFound, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Staff deleted successfully"})
}
