package httpserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// userHeader carries the caller's identity; the mobile gateway attaches it
// after verifying the session token.
const userHeader = "X-User-ID"

const userIDKey = "userID"

func userMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := strings.TrimSpace(c.GetHeader(userHeader))
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "missing " + userHeader + " header"})
			return
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

func currentUser(c *gin.Context) string {
	return c.GetString(userIDKey)
}
