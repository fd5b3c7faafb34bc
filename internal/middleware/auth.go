package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"aodai_back_end/internal/apperr"
	"aodai_back_end/internal/utils"
)

// AuthRequired validates the Bearer token and puts the caller's
// identity in the gin context.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Missing token"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid Authorization header"})
			return
		}

		userID, isAdmin, err := utils.ParseToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
			return
		}

		c.Set("user_id", userID)
		c.Set("is_admin", isAdmin)
		c.Next()
	}
}

// RequireAdmin restricts a route to admin accounts; AuthRequired must
// run first.
func RequireAdmin(c *gin.Context) {
	if !c.GetBool("is_admin") {
		apperr.Abort(c, apperr.Authorization("Admin access required"))
		return
	}
	c.Next()
}
