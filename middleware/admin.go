package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

// AdminOnly guards the management surface with the shared passkey.
func AdminOnly(passkey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		supplied := c.GetHeader("X-Admin-Passkey")
		if passkey == "" || subtle.ConstantTimeCompare([]byte(supplied), []byte(passkey)) != 1 {
			c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			c.Abort()
			return
		}
		c.Next()
	}
}
