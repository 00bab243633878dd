package controllers

import (
	"net/http"
	"strconv"

	"github.com/iPelino/ur-missions/config"
	"github.com/iPelino/ur-missions/models"

	"github.com/gin-gonic/gin"
)

type DepartmentRequest struct {
	Name        string `json:"name" binding:"required"`
	ShortName   string `json:"short_name" binding:"required"`
	Description string `json:"description"`
	UnitID      int    `json:"unit" binding:"required"`
}

func validateDepartmentRequest(req *DepartmentRequest, excludeID int) map[string]string {
	fields := checkNamePair(models.Department{}.TableName(), req.Name, req.ShortName, excludeID, "department")

	var count int64
	config.DB.Model(&models.Unit{}).Where("unit_id = ?", req.UnitID).Count(&count)
	if count == 0 {
		fields["unit"] = "The specified unit does not exist."
	}

	return fields
}

// GetDepartments lists all departments with their units expanded.
func GetDepartments(c *gin.Context) {
	var departments []models.Department
	if err := config.DB.Preload("Unit").Preload("Unit.College").
		Order("department_id ASC").Find(&departments).Error; err != nil {
		respondError(c, http.StatusInternalServerError, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"departments": shape(c, departments), "total": len(departments)})
}

// GetDepartment returns one department in the nested read view.
func GetDepartment(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, map[string]string{"id": "Invalid department ID."})
		return
	}

	var department models.Department
	if err := config.DB.Preload("Unit").Preload("Unit.College").
		Where("department_id = ?", id).First(&department).Error; err != nil {
		respondError(c, http.StatusNotFound, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"department": shape(c, department)})
}

// CreateDepartment adds a department under a unit.
func CreateDepartment(c *gin.Context) {
	var req DepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, map[string]string{"detail": err.Error()})
		return
	}

	if fields := validateDepartmentRequest(&req, 0); len(fields) > 0 {
		respondError(c, http.StatusBadRequest, fields)
		return
	}

	department := models.Department{
		Name:        req.Name,
		ShortName:   req.ShortName,
		Description: req.Description,
		UnitID:      req.UnitID,
	}
	if err := config.DB.Create(&department).Error; err != nil {
		respondError(c, http.StatusInternalServerError, nil)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"department": shape(c, department)})
}

// UpdateDepartment changes a department.
func UpdateDepartment(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, map[string]string{"id": "Invalid department ID."})
		return
	}

	var department models.Department
	if err := config.DB.Where("department_id = ?", id).First(&department).Error; err != nil {
		respondError(c, http.StatusNotFound, nil)
		return
	}

	var req DepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, map[string]string{"detail": err.Error()})
		return
	}

	if fields := validateDepartmentRequest(&req, department.DepartmentID); len(fields) > 0 {
		respondError(c, http.StatusBadRequest, fields)
		return
	}

	department.Name = req.Name
	department.ShortName = req.ShortName
	department.Description = req.Description
	department.UnitID = req.UnitID
	if err := config.DB.Save(&department).Error; err != nil {
		respondError(c, http.StatusInternalServerError, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"department": shape(c, department)})
}

// DeleteDepartment removes a department.
func DeleteDepartment(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, map[string]string{"id": "Invalid department ID."})
		return
	}

	result := config.DB.Where("department_id = ?", id).Delete(&models.Department{})
	if result.Error != nil {
		respondError(c, http.StatusInternalServerError, nil)
		return
	}
	if result.RowsAffected == 0 {
		respondError(c, http.StatusNotFound, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Department deleted successfully"})
}
