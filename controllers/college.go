package controllers

import (
	"net/http"
	"strconv"

	"github.com/iPelino/ur-missions/config"
	"github.com/iPelino/ur-missions/models"

	"github.com/gin-gonic/gin"
)

type CollegeRequest struct {
	Name      string `json:"name" binding:"required"`
	ShortName string `json:"short_name" binding:"required"`
}

// GetColleges lists all colleges.
func GetColleges(c *gin.Context) {
	var colleges []models.College
	if err := config.DB.Order("college_id ASC").Find(&colleges).Error; err != nil {
		respondError(c, http.StatusInternalServerError, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"colleges": shape(c, colleges), "total": len(colleges)})
}

// GetCollege returns one college.
func GetCollege(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, map[string]string{"id": "Invalid college ID."})
		return
	}

	var college models.College
	if err := config.DB.Where("college_id = ?", id).First(&college).Error; err != nil {
		respondError(c, http.StatusNotFound, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"college": shape(c, college)})
}

// CreateCollege adds a college with unique name and short name.
func CreateCollege(c *gin.Context) {
	var req CollegeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, map[string]string{"detail": err.Error()})
		return
	}

	if fields := checkNamePair(models.College{}.TableName(), req.Name, req.ShortName, 0, "college"); len(fields) > 0 {
		respondError(c, http.StatusBadRequest, fields)
		return
	}

	college := models.College{Name: req.Name, ShortName: req.ShortName}
	if err := config.DB.Create(&college).Error; err != nil {
		respondError(c, http.StatusInternalServerError, nil)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"college": shape(c, college)})
}

// UpdateCollege renames a college.
func UpdateCollege(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, map[string]string{"id": "Invalid college ID."})
		return
	}

	var college models.College
	if err := config.DB.Where("college_id = ?", id).First(&college).Error; err != nil {
		respondError(c, http.StatusNotFound, nil)
		return
	}

	var req CollegeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, map[string]string{"detail": err.Error()})
		return
	}

	if fields := checkNamePair(models.College{}.TableName(), req.Name, req.ShortName, college.CollegeID, "college"); len(fields) > 0 {
		respondError(c, http.StatusBadRequest, fields)
		return
	}

	college.Name = req.Name
	college.ShortName = req.ShortName
	if err := config.DB.Save(&college).Error; err != nil {
		respondError(c, http.StatusInternalServerError, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"college": shape(c, college)})
}

// DeleteCollege removes a college; its units cascade at the database level.
func DeleteCollege(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, map[string]string{"id": "Invalid college ID."})
		return
	}

	result := config.DB.Where("college_id = ?", id).Delete(&models.College{})
	if result.Error != nil {
		respondError(c, http.StatusInternalServerError, nil)
		return
	}
	if result.RowsAffected == 0 {
		respondError(c, http.StatusNotFound, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "College deleted successfully"})
}

// checkNamePair validates the blank/uniqueness rules shared by the org
// entities that carry a name and short_name. excludeID skips the record being
// updated; label names the entity in messages.
func checkNamePair(table, name, shortName string, excludeID int, label string) map[string]string {
	fields := map[string]string{}

	idColumn := label + "_id"

	if name == "" {
		fields["name"] = "The name field cannot be blank."
	} else {
		var count int64
		q := config.DB.Table(table).Where("name = ?", name)
		if excludeID > 0 {
			q = q.Where(idColumn+" <> ?", excludeID)
		}
		q.Count(&count)
		if count > 0 {
			fields["name"] = "A " + label + " with this name already exists."
		}
	}

	if shortName == "" {
		fields["short_name"] = "The short_name field cannot be blank."
	} else {
		var count int64
		q := config.DB.Table(table).Where("short_name = ?", shortName)
		if excludeID > 0 {
			q = q.Where(idColumn+" <> ?", excludeID)
		}
		q.Count(&count)
		if count > 0 {
			fields["short_name"] = "A " + label + " with this short name already exists."
		}
	}

	return fields
}
