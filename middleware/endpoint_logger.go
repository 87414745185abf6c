package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dentalops/clinic-api/util"
)

// EndpointCallLogger logs each HTTP request as a security/endpoint event.
// Role and email come from the auth context when AuthMiddleware ran earlier
// in the chain.
func EndpointCallLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)
		status := c.Writer.Status()

		details := map[string]interface{}{
			"method":      c.Request.Method,
			"path":        c.FullPath(),
			"raw_path":    c.Request.URL.Path,
			"status":      status,
			"duration_ms": duration.Milliseconds(),
			"query":       c.Request.URL.RawQuery,
		}
		if pid := GetPatientID(c); pid != "" {
			details["patient_id"] = pid
		}

		util.LogSecurityEvent(util.SecurityEvent{
			EventType: util.EventEndpointCall,
			Role:      GetRole(c),
			Email:     GetEmail(c),
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
			Message:   fmt.Sprintf("%s %s -> %d", c.Request.Method, c.Request.URL.Path, status),
			Details:   details,
		})
	}
}
