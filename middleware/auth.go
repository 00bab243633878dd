package middleware

import (
	"net/http"
	"os"
	"strings"

	"github.com/iPelino/ur-missions/config"
	"github.com/iPelino/ur-missions/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	UserID  int      `json:"user_id"`
	Email   string   `json:"email"`
	IsStaff bool     `json:"is_staff"`
	Groups  []string `json:"groups"`
	jwt.RegisteredClaims
}

// AuthMiddleware validates JWT token
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Get token from header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			c.Abort()
			return
		}

		// Check Bearer prefix
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		// Parse token
		token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
			return []byte(os.Getenv("JWT_SECRET")), nil
		})

		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		// Get claims
		claims, ok := token.Claims.(*Claims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			c.Abort()
			return
		}

		// Check if user still exists and is active
		var user models.User
		if err := config.DB.Where("user_id = ? AND is_active = ?", claims.UserID, true).First(&user).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			c.Abort()
			return
		}

		// Set user info in context
		c.Set("userID", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("isStaff", claims.IsStaff)
		c.Set("groups", claims.Groups)

		c.Next()
	}
}

// RequireGroup passes callers holding at least one of the named role groups.
// Chain several RequireGroup calls to demand membership in every set.
func RequireGroup(names ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		groupsValue, exists := c.Get("groups")
		if !exists {
			c.JSON(http.StatusForbidden, gin.H{"error": "Role groups not found"})
			c.Abort()
			return
		}

		groups, ok := groupsValue.([]string)
		if !ok {
			c.JSON(http.StatusForbidden, gin.H{"error": "Role groups not found"})
			c.Abort()
			return
		}

		member := make(map[string]bool, len(groups))
		for _, g := range groups {
			member[g] = true
		}

		allowed := false
		for _, name := range names {
			if member[name] {
				allowed = true
				break
			}
		}

		if !allowed {
			c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// HasGroup reports whether the authenticated caller holds the named group.
func HasGroup(c *gin.Context, name string) bool {
	groupsValue, exists := c.Get("groups")
	if !exists {
		return false
	}
	groups, ok := groupsValue.([]string)
	if !ok {
		return false
	}
	for _, g := range groups {
		if g == name {
			return true
		}
	}
	return false
}
