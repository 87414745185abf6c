package endpoint

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/dentalops/clinic-api/middleware"
	"github.com/dentalops/clinic-api/model"
	"github.com/dentalops/clinic-api/repository"
	"github.com/dentalops/clinic-api/store"
	"github.com/dentalops/clinic-api/util"
)

// apiEnvelope mirrors util.APIResponse with the payload kept raw so tests can
// decode it into the shape they expect.
type apiEnvelope struct {
	Success bool            `json:"success"`
	Error   string          `json:"error"`
	Msg     string          `json:"msg"`
	Data    json.RawMessage `json:"data"`
}

// setupEndpointTest builds a bare engine with a fresh in-memory repository
// injected, the way main wires it.
func setupEndpointTest(t *testing.T) (*gin.Engine, *repository.Repository) {
	t.Helper()
	repo := repository.New(store.NewMemoryStore())
	r := gin.New()
	r.Use(middleware.RepositoryMiddleware(repo))
	return r, repo
}

// requestParams groups HTTP request parameters to reduce function arguments.
type requestParams struct {
	method  string
	path    string
	body    interface{}
	headers map[string]string
}

// doRequest executes an HTTP request against the engine and decodes the
// response envelope.
func doRequest(t *testing.T, r http.Handler, params requestParams) (*httptest.ResponseRecorder, apiEnvelope) {
	t.Helper()
	var buf bytes.Buffer
	if params.body != nil {
		assert.NoError(t, json.NewEncoder(&buf).Encode(params.body))
	}
	req := httptest.NewRequest(params.method, params.path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range params.headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var envelope apiEnvelope
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return w, envelope
}

// bearerHeader issues a token for the role scope and wraps it as an
// Authorization header.
func bearerHeader(t *testing.T, role, patientID, email string) map[string]string {
	t.Helper()
	token, err := util.SignToken(role, patientID, email)
	assert.NoError(t, err)
	return map[string]string{"Authorization": "Bearer " + token}
}

func seedTestPatient(t *testing.T, repo *repository.Repository, p model.Patient) {
	t.Helper()
	ctx := context.Background()
	patients, err := repo.Patients(ctx)
	assert.NoError(t, err)
	assert.NoError(t, repo.SavePatients(ctx, append(patients, p)))
}

func seedTestAppointment(t *testing.T, repo *repository.Repository, a model.Appointment) {
	t.Helper()
	ctx := context.Background()
	appointments, err := repo.Appointments(ctx)
	assert.NoError(t, err)
	assert.NoError(t, repo.SaveAppointments(ctx, append(appointments, a)))
}

func seedTestTreatment(t *testing.T, repo *repository.Repository, tr model.Treatment) {
	t.Helper()
	ctx := context.Background()
	treatments, err := repo.Treatments(ctx)
	assert.NoError(t, err)
	assert.NoError(t, repo.SaveTreatments(ctx, append(treatments, tr)))
}
