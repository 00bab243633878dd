package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/iPelino/ur-missions/config"
	"github.com/iPelino/ur-missions/models"
	"github.com/iPelino/ur-missions/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// statusMessage maps a status class to the fixed envelope message.
func statusMessage(status int) string {
	switch status {
	case http.StatusNotFound:
		return "The requested resource was not found."
	case http.StatusBadRequest:
		return "There was an error with your request. Please check your input and try again."
	default:
		return "An unexpected error occurred."
	}
}

// respondError writes the error envelope {status_code, message, ...fields}.
func respondError(c *gin.Context, status int, fields map[string]string) {
	payload := gin.H{
		"status_code": status,
		"message":     statusMessage(status),
	}
	for key, value := range fields {
		payload[key] = value
	}
	c.JSON(status, payload)
}

// respondServiceError maps service-layer errors onto the envelope.
func respondServiceError(c *gin.Context, err error) {
	if ve, ok := services.AsValidationError(err); ok {
		respondError(c, http.StatusBadRequest, ve.Fields)
		return
	}
	switch {
	case errors.Is(err, services.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		respondError(c, http.StatusNotFound, nil)
	case errors.Is(err, services.ErrInvalidTransition):
		respondError(c, http.StatusConflict, map[string]string{"detail": err.Error()})
	default:
		respondError(c, http.StatusInternalServerError, nil)
	}
}

// callerUserID returns the authenticated account id set by AuthMiddleware.
func callerUserID(c *gin.Context) (int, bool) {
	value, exists := c.Get("userID")
	if !exists {
		return 0, false
	}
	id, ok := value.(int)
	return id, ok
}

// callerStaff loads the staff profile of the authenticated account.
func callerStaff(c *gin.Context) (*models.Staff, error) {
	userID, ok := callerUserID(c)
	if !ok {
		return nil, errors.New("user context missing")
	}

	var staff models.Staff
	if err := config.DB.Where("user_id = ?", userID).First(&staff).Error; err != nil {
		return nil, err
	}
	return &staff, nil
}

// isPrivileged reports whether the caller's account carries the staff flag,
// which gates serialization of record timestamps.
func isPrivileged(c *gin.Context) bool {
	value, exists := c.Get("isStaff")
	if !exists {
		return false
	}
	flag, ok := value.(bool)
	return ok && flag
}

// shape renders v through JSON and, for non-privileged callers, strips the
// created/modified timestamps at every nesting level.
func shape(c *gin.Context, v interface{}) interface{} {
	raw, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var decoded interface{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return v
	}
	if !isPrivileged(c) {
		stripTimestamps(decoded)
	}
	return decoded
}

func stripTimestamps(v interface{}) {
	switch value := v.(type) {
	case map[string]interface{}:
		delete(value, "created")
		delete(value, "modified")
		for _, nested := range value {
			stripTimestamps(nested)
		}
	case []interface{}:
		for _, item := range value {
			stripTimestamps(item)
		}
	}
}

// parseDate parses a calendar date in 2006-01-02 form.
func parseDate(value string) (time.Time, error) {
	return time.Parse(time.DateOnly, value)
}
