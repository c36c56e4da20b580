package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	UserIDKey   = "user_id"
	UserNameKey = "user_name"
)

// Identity resolves the caller from the session headers set by the auth
// layer in front of this service. Auth itself is an external collaborator.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader("X-User-ID")
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}
		c.Set(UserIDKey, userID)
		c.Set(UserNameKey, c.GetHeader("X-User-Name"))
		c.Next()
	}
}

// GetUserID returns the resolved user id for the request.
func GetUserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}

// GetUserName returns the display name, if the auth layer supplied one.
func GetUserName(c *gin.Context) string {
	return c.GetString(UserNameKey)
}
