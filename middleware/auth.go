package middleware

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dentalops/clinic-api/model"
	"github.com/dentalops/clinic-api/util"
)

const (
	roleKey      = "role"
	patientIDKey = "patientId"
	emailKey     = "email"
)

// AuthMiddleware validates the Bearer token and stores the caller's role
// scope in the request context. The scope is trusted as supplied; there is
// no further authorization model behind it.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			util.CallUserNotAuthorized(c, util.APIErrorParams{
				Msg: "Missing or malformed Authorization header",
				Err: fmt.Errorf("bearer token required"),
			})
			c.Abort()
			return
		}

		claims, err := util.ParseToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			util.LogSecurityEvent(util.SecurityEvent{
				EventType: util.EventUnauthorizedAccess,
				IP:        c.ClientIP(),
				UserAgent: c.Request.UserAgent(),
				Message:   fmt.Sprintf("token rejected: %v", err),
			})
			util.CallUserNotAuthorized(c, util.APIErrorParams{
				Msg: "Invalid or expired token",
				Err: err,
			})
			c.Abort()
			return
		}

		c.Set(roleKey, claims.Role)
		c.Set(patientIDKey, claims.PatientID)
		c.Set(emailKey, claims.Email)
		c.Next()
	}
}

// RequireAdmin aborts requests whose token does not carry the Admin role.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetRole(c) != model.RoleAdmin {
			util.LogSecurityEvent(util.SecurityEvent{
				EventType: util.EventUnauthorizedAccess,
				Role:      GetRole(c),
				IP:        c.ClientIP(),
				Message:   fmt.Sprintf("admin-only endpoint %s", c.Request.URL.Path),
			})
			util.CallUserNotAuthorized(c, util.APIErrorParams{
				Msg: "Admin role required",
				Err: fmt.Errorf("forbidden"),
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetRole returns the caller role set by AuthMiddleware, empty when absent.
func GetRole(c *gin.Context) string {
	return c.GetString(roleKey)
}

// GetPatientID returns the caller's patient id, empty for admins.
func GetPatientID(c *gin.Context) string {
	return c.GetString(patientIDKey)
}

// GetEmail returns the caller's email claim.
func GetEmail(c *gin.Context) string {
	return c.GetString(emailKey)
}
