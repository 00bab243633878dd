package controllers

import (
	"net/http"
	"strconv"

	"github.com/iPelino/ur-missions/config"
	"github.com/iPelino/ur-missions/models"
	"github.com/iPelino/ur-missions/utils"

	"github.com/gin-gonic/gin"
)

type UserCreateRequest struct {
	Email    string   `json:"email" binding:"required,email"`
	Password string   `json:"password" binding:"required"`
	IsStaff  bool     `json:"is_staff"`
	Groups   []string `json:"groups"`
}

type UserUpdateRequest struct {
	IsActive *bool     `json:"is_active"`
	IsStaff  *bool     `json:"is_staff"`
	Groups   *[]string `json:"groups"`
}

// GetUsers lists all accounts with their group memberships.
func GetUsers(c *gin.Context) {
	var users []models.User
	if err := config.DB.Preload("Groups").Order("user_id ASC").Find(&users).Error; err != nil {
		respondError(c, http.StatusInternalServerError, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users, "total": len(users)})
}

// GetUser returns one account.
func GetUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, map[string]string{"id": "Invalid user ID."})
		return
	}

	var user models.User
	if err := config.DB.Preload("Groups").Where("user_id = ?", id).First(&user).Error; err != nil {
		respondError(c, http.StatusNotFound, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// CreateUser registers an account. Only university addresses are accepted and
// the password is stored bcrypt-hashed.
func CreateUser(c *gin.Context) {
	var req UserCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, map[string]string{"detail": err.Error()})
		return
	}

	if !utils.ValidateInstitutionalEmail(req.Email) {
		respondError(c, http.StatusBadRequest, map[string]string{"email": "Only UR email addresses are allowed."})
		return
	}
	if ok, msg := utils.ValidatePassword(req.Password); !ok {
		respondError(c, http.StatusBadRequest, map[string]string{"password": msg})
		return
	}

	var existing int64
	config.DB.Model(&models.User{}).Where("email = ?", req.Email).Count(&existing)
	if existing > 0 {
		respondError(c, http.StatusBadRequest, map[string]string{"email": "A user with this email already exists."})
		return
	}

	groups, err := resolveGroups(req.Groups)
	if err != nil {
		respondError(c, http.StatusBadRequest, map[string]string{"groups": err.Error()})
		return
	}

	hashed, err := HashPassword(req.Password)
	if err != nil {
		respondError(c, http.StatusInternalServerError, nil)
		return
	}

	user := models.User{
		Email:    req.Email,
		Password: hashed,
		IsActive: true,
		IsStaff:  req.IsStaff,
		Groups:   groups,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		respondError(c, http.StatusInternalServerError, nil)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user})
}

// UpdateUser changes the active/staff flags or replaces group memberships.
func UpdateUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, map[string]string{"id": "Invalid user ID."})
		return
	}

	var user models.User
	if err := config.DB.Preload("Groups").Where("user_id = ?", id).First(&user).Error; err != nil {
		respondError(c, http.StatusNotFound, nil)
		return
	}

	var req UserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, map[string]string{"detail": err.Error()})
		return
	}

	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if req.IsStaff != nil {
		user.IsStaff = *req.IsStaff
	}
	if err := config.DB.Save(&user).Error; err != nil {
		respondError(c, http.StatusInternalServerError, nil)
		return
	}

	if req.Groups != nil {
		groups, err := resolveGroups(*req.Groups)
		if err != nil {
			respondError(c, http.StatusBadRequest, map[string]string{"groups": err.Error()})
			return
		}
		if err := config.DB.Model(&user).Association("Groups").Replace(groups); err != nil {
			respondError(c, http.StatusInternalServerError, nil)
			return
		}
		user.Groups = groups
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// DeleteUser removes an account together with its group links.
func DeleteUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, map[string]string{"id": "Invalid user ID."})
		return
	}

	var user models.User
	if err := config.DB.Where("user_id = ?", id).First(&user).Error; err != nil {
		respondError(c, http.StatusNotFound, nil)
		return
	}

	if err := config.DB.Model(&user).Association("Groups").Clear(); err != nil {
		respondError(c, http.StatusInternalServerError, nil)
		return
	}
	if err := config.DB.Delete(&user).Error; err != nil {
		respondError(c, http.StatusInternalServerError, nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

// resolveGroups maps group names onto catalog records, rejecting unknown names.
func resolveGroups(names []string) ([]models.Group, error) {
	if len(names) == 0 {
		return nil, nil
	}

	var groups []models.Group
	if err := config.DB.Where("name IN ?", names).Find(&groups).Error; err != nil {
		return nil, err
	}

	found := make(map[string]bool, len(groups))
	for _, g := range groups {
		found[g.Name] = true
	}
	for _, name := range names {
		if !found[name] {
			return nil, &unknownGroupError{name: name}
		}
	}
	return groups, nil
}

type unknownGroupError struct {
	name string
}

func (e *unknownGroupError) Error() string {
	return "Unknown group: " + e.name
}
