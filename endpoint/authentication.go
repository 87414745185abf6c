package endpoint

import (
	"crypto/hmac"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/dentalops/clinic-api/model"
	"github.com/dentalops/clinic-api/util"
)

// credentialList is the fixed login list. Authentication is deliberately a
// stub: no user storage and no registration, only these two accounts.
var credentialList = []model.Credential{
	{ID: "1", Role: model.RoleAdmin, Email: "admin@clinic.local", Password: "admin123"},
	{ID: "2", Role: model.RolePatient, Email: "john@clinic.local", Password: "patient123", PatientID: "D1"},
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"admin@clinic.local"`
	Password string `json:"password" binding:"required" example:"admin123"`
}

type LoginResponse struct {
	Token     string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	Role      string `json:"role" example:"Admin"`
	PatientID string `json:"patientId,omitempty" example:"D1"`
}

// Login godoc
// @Summary      User login
// @Description  Authenticate against the fixed credential list and issue a token
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login credentials"
// @Success      200 {object} util.APIResponse{data=LoginResponse} "Login successful"
// @Failure      400 {object} util.APIResponse "Invalid request payload"
// @Failure      401 {object} util.APIResponse "Invalid email or password"
// @Router       /login [post]
func Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}

	ip := c.ClientIP()
	agent := c.Request.UserAgent()

	for _, cred := range credentialList {
		if cred.Email != req.Email {
			continue
		}
		// Digest comparison keeps the check constant-time.
		if !hmac.Equal([]byte(util.HashPassword(req.Password)), []byte(util.HashPassword(cred.Password))) {
			break
		}

		token, err := util.SignToken(cred.Role, cred.PatientID, cred.Email)
		if err != nil {
			util.CallServerError(c, util.APIErrorParams{Msg: "Failed to issue token", Err: err})
			return
		}

		util.LogLoginSuccess(cred.Email, ip, agent, cred.Role)
		util.CallSuccessOK(c, util.APISuccessParams{
			Msg:  "Login successful",
			Data: LoginResponse{Token: token, Role: cred.Role, PatientID: cred.PatientID},
		})
		return
	}

	util.LogLoginFailure(req.Email, ip, agent, "credentials did not match")
	util.CallUserNotAuthorized(c, util.APIErrorParams{
		Msg: "Invalid email or password",
		Err: fmt.Errorf("credentials did not match"),
	})
}
