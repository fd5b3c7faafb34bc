package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"aodai_back_end/internal/cache"
)

const (
	loginMaxAttempts = 5
	loginCooldown    = 15 * time.Minute
)

// LoginRateLimit blocks an email after repeated failed logins. Without
// a cache the limiter is inert.
func LoginRateLimit(c *cache.Cache) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if c == nil {
			ctx.Next()
			return
		}

		// Peek at the body without consuming it for the handler.
		bodyBytes, _ := io.ReadAll(ctx.Request.Body)
		ctx.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

		var input struct {
			Email string `json:"email"`
		}
		if err := json.Unmarshal(bodyBytes, &input); err != nil || input.Email == "" {
			ctx.Next()
			return
		}

		key := "login_attempts:" + input.Email
		if attempts := c.Count(ctx.Request.Context(), key); attempts >= loginMaxAttempts {
			ctx.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"message":     fmt.Sprintf("Too many failed attempts, try again in %d minutes", int(loginCooldown.Minutes())),
				"retry_after": int(loginCooldown.Seconds()),
			})
			return
		}

		ctx.Next()

		switch ctx.Writer.Status() {
		case http.StatusUnauthorized:
			c.Incr(ctx.Request.Context(), key, loginCooldown)
		case http.StatusOK:
			c.Delete(ctx.Request.Context(), key)
		}
	}
}
