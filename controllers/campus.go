package controllers

import (
	"net/http"
	"strconv"

	"github.com/iPelino/ur-missions/config"
	"github.com/iPelino/ur-missions/models"

	"github.com/gin-gonic/gin"
)

type CampusRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
}

// GetCampuses lists all campuses.
func GetCampuses(c *gin.Context) {
	var campuses []models.Campus
	if err := config.DB.Order("campus_id ASC").Find(&campuses).Error; err != nil {
		respondError(c, http.StatusInternalServerError, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"campuses": shape(c, campuses), "total": len(campuses)})
}

// GetCampus returns one campus.
func GetCampus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, map[string]string{"id": "Invalid campus ID."})
		return
	}

	var campus models.Campus
	if err := config.DB.Where("campus_id = ?", id).First(&campus).Error; err != nil {
		respondError(c, http.StatusNotFound, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"campus": shape(c, campus)})
}

// CreateCampus adds a campus with a unique name.
func CreateCampus(c *gin.Context) {
	var req CampusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, map[string]string{"detail": err.Error()})
		return
	}

	var count int64
	config.DB.Model(&models.Campus{}).Where("name = ?", req.Name).Count(&count)
	if count > 0 {
		respondError(c, http.StatusBadRequest, map[string]string{"name": "A campus with this name already exists."})
		return
	}

	campus := models.Campus{Name: req.Name, Description: req.Description}
	if err := config.DB.Create(&campus).Error; err != nil {
		respondError(c, http.StatusInternalServerError, nil)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"campus": shape(c, campus)})
}

// UpdateCampus renames a campus or changes its description.
func UpdateCampus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, map[string]string{"id": "Invalid campus ID."})
		return
	}

	var campus models.Campus
	if err := config.DB.Where("campus_id = ?", id).First(&campus).Error; err != nil {
		respondError(c, http.StatusNotFound, nil)
		return
	}

	var req CampusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, map[string]string{"detail": err.Error()})
		return
	}

	var count int64
	config.DB.Model(&models.Campus{}).
		Where("name = ? AND campus_id <> ?", req.Name, campus.CampusID).
		Count(&count)
	if count > 0 {
		respondError(c, http.StatusBadRequest, map[string]string{"name": "A campus with this name already exists."})
		return
	}

	campus.Name = req.Name
	campus.Description = req.Description
	if err := config.DB.Save(&campus).Error; err != nil {
		respondError(c, http.StatusInternalServerError, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"campus": shape(c, campus)})
}

// DeleteCampus removes a campus.
func DeleteCampus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, map[string]string{"id": "Invalid campus ID."})
		return
	}

	result := config.DB.Where("campus_id = ?", id).Delete(&models.Campus{})
	if result.Error != nil {
		respondError(c, http.StatusInternalServerError, nil)
		return
	}
	if result.RowsAffected == 0 {
		respondError(c, http.StatusNotFound, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Campus deleted successfully"})
}
