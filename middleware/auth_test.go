package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/dentalops/clinic-api/model"
	"github.com/dentalops/clinic-api/util"
)

func TestMain(m *testing.M) {
	os.Setenv("APPENV", "test")
	util.SetJWTSecret("test-secret-123")
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func setupAuthTest(t *testing.T, extra ...gin.HandlerFunc) *gin.Engine {
	t.Helper()
	router := gin.New()
	handlers := append([]gin.HandlerFunc{AuthMiddleware()}, extra...)
	router.GET("/protected", append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"role":      GetRole(c),
			"patientId": GetPatientID(c),
			"email":     GetEmail(c),
		})
	})...)
	return router
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	router := setupAuthTest(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Basic abc")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	router := setupAuthTest(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_ValidTokenSetsScope(t *testing.T) {
	router := setupAuthTest(t)

	token, err := util.SignToken(model.RolePatient, "D1", "john@clinic.local")
	assert.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"role":"Patient"`)
	assert.Contains(t, w.Body.String(), `"patientId":"D1"`)
	assert.Contains(t, w.Body.String(), `"email":"john@clinic.local"`)
}

func TestRequireAdmin(t *testing.T) {
	router := setupAuthTest(t, RequireAdmin())

	patientToken, err := util.SignToken(model.RolePatient, "D1", "john@clinic.local")
	assert.NoError(t, err)
	adminToken, err := util.SignToken(model.RoleAdmin, "", "admin@clinic.local")
	assert.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+patientToken)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
