package controllers

import (
	"net/http"
	"strconv"

	"github.com/iPelino/ur-missions/config"
	"github.com/iPelino/ur-missions/models"

	"github.com/gin-gonic/gin"
)

type UnitRequest struct {
	Name        string `json:"name" binding:"required"`
	ShortName   string `json:"short_name" binding:"required"`
	Description string `json:"description"`
	CollegeID   int    `json:"college" binding:"required"`
	ManagerID   *int   `json:"manager"`
}

func validateUnitRequest(req *UnitRequest, excludeID int) map[string]string {
	fields := checkNamePair(models.Unit{}.TableName(), req.Name, req.ShortName, excludeID, "unit")

	if len(req.Description) > 500 {
		fields["description"] = "The description is too long."
	}

	var count int64
	config.DB.Model(&models.College{}).Where("college_id = ?", req.CollegeID).Count(&count)
	if count == 0 {
		fields["college"] = "The specified college does not exist."
	}

	if req.ManagerID != nil {
		count = 0
		config.DB.Model(&models.Staff{}).Where("staff_id = ?", *req.ManagerID).Count(&count)
		if count == 0 {
			fields["manager"] = "The specified staff does not exist."
		} else {
			// At most one unit can name a given staff member as manager.
			count = 0
			q := config.DB.Model(&models.Unit{}).Where("manager_id = ?", *req.ManagerID)
			if excludeID > 0 {
				q = q.Where("unit_id <> ?", excludeID)
			}
			q.Count(&count)
			if count > 0 {
				fields["manager"] = "The specified staff already manages another unit."
			}
		}
	}

	return fields
}

// GetUnits lists all units with their colleges expanded.
func GetUnits(c *gin.Context) {
	var units []models.Unit
	if err := config.DB.Preload("College").Order("unit_id ASC").Find(&units).Error; err != nil {
		respondError(c, http.StatusInternalServerError, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"units": shape(c, units), "total": len(units)})
}

// GetUnit returns one unit in the nested read view.
func GetUnit(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, map[string]string{"id": "Invalid unit ID."})
		return
	}

	var unit models.Unit
	if err := config.DB.Preload("College").Preload("Manager").
		Where("unit_id = ?", id).First(&unit).Error; err != nil {
		respondError(c, http.StatusNotFound, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unit": shape(c, unit)})
}

// CreateUnit adds a school/unit under a college.
func CreateUnit(c *gin.Context) {
	var req UnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, map[string]string{"detail": err.Error()})
		return
	}

	if fields := validateUnitRequest(&req, 0); len(fields) > 0 {
		respondError(c, http.StatusBadRequest, fields)
		return
	}

	unit := models.Unit{
		Name:        req.Name,
		ShortName:   req.ShortName,
		Description: req.Description,
		CollegeID:   req.CollegeID,
		ManagerID:   req.ManagerID,
	}
	if err := config.DB.Create(&unit).Error; err != nil {
		respondError(c, http.StatusInternalServerError, nil)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"unit": shape(c, unit)})
}

// UpdateUnit changes a unit, including its manager designation.
func UpdateUnit(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, map[string]string{"id": "Invalid unit ID."})
		return
	}

	var unit models.Unit
	if err := config.DB.Where("unit_id = ?", id).First(&unit).Error; err != nil {
		respondError(c, http.StatusNotFound, nil)
		return
	}

	var req UnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, map[string]string{"detail": err.Error()})
		return
	}

	if fields := validateUnitRequest(&req, unit.UnitID); len(fields) > 0 {
		respondError(c, http.StatusBadRequest, fields)
		return
	}

	unit.Name = req.Name
	unit.ShortName = req.ShortName
	unit.Description = req.Description
	unit.CollegeID = req.CollegeID
	unit.ManagerID = req.ManagerID
	if err := config.DB.Save(&unit).Error; err != nil {
		respondError(c, http.StatusInternalServerError, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unit": shape(c, unit)})
}

// DeleteUnit removes a unit; departments cascade at the database level.
func DeleteUnit(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, map[string]string{"id": "Invalid unit ID."})
		return
	}

	result := config.DB.Where("unit_id = ?", id).Delete(&models.Unit{})
	if result.Error != nil {
		respondError(c, http.StatusInternalServerError, nil)
		return
	}
	if result.RowsAffected == 0 {
		respondError(c, http.StatusNotFound, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Unit deleted successfully"})
}
