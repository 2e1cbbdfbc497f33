package middleware

import (
	"fmt"
	"time"

	"github.com/carepulse/carepulse-api/util"
	"github.com/gin-gonic/gin"
)

// EndpointCallLogger logs each HTTP request as a security/endpoint event.
// It relies on DatabaseMiddleware having set the DB in context and
// util.SetSecurityLoggerDB having been called during startup so events
// are persisted to the security_logs table.
func EndpointCallLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)
		status := c.Writer.Status()

		accountID, _ := GetAccountID(c)
		role, _ := GetRole(c)

		details := map[string]interface{}{
			"method":      c.Request.Method,
			"path":        c.FullPath(),
			"raw_path":    c.Request.URL.Path,
			"status":      status,
			"duration_ms": duration.Milliseconds(),
			"query":       c.Request.URL.RawQuery,
		}

		userID := ""
		email := ""
		if accountID != 0 {
			details["account_id"] = accountID
			details["role"] = role
			userID = fmt.Sprintf("%s:%d", role, accountID)
			email = util.GetAccountEmail(GetDB(c), role, accountID)
		}

		util.LogSecurityEvent(util.SecurityEvent{
			EventType: util.EventEndpointCall,
			UserID:    userID,
			Email:     email,
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
			Message:   fmt.Sprintf("%s %s -> %d", c.Request.Method, c.Request.URL.Path, status),
			Details:   details,
		})
	}
}
