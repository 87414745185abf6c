package endpoint

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dentalops/clinic-api/clinic"
	"github.com/dentalops/clinic-api/middleware"
	"github.com/dentalops/clinic-api/model"
)

func TestCreateAppointment_CopiesPatientName(t *testing.T) {
	r, repo := setupEndpointTest(t)
	r.POST("/appointment", CreateAppointment)

	seedTestPatient(t, repo, model.Patient{ID: "D1", Name: "John Doe"})

	w, envelope := doRequest(t, r, requestParams{
		method: http.MethodPost,
		path:   "/appointment",
		body:   model.AppointmentRequest{PatientID: "D1", AppointmentDate: "2025-06-10T09:00"},
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var created model.Appointment
	assert.NoError(t, json.Unmarshal(envelope.Data, &created))
	assert.Equal(t, "John Doe", created.Title)
	assert.Equal(t, model.StatusPending, created.Status)
	assert.Zero(t, created.Cost)
}

func TestCreateAppointment_UnknownPatient(t *testing.T) {
	r, _ := setupEndpointTest(t)
	r.POST("/appointment", CreateAppointment)

	w, _ := doRequest(t, r, requestParams{
		method: http.MethodPost,
		path:   "/appointment",
		body:   model.AppointmentRequest{PatientID: "D99", AppointmentDate: "2025-06-10T09:00"},
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateAppointment_MissingFields(t *testing.T) {
	r, _ := setupEndpointTest(t)
	r.POST("/appointment", CreateAppointment)

	w, _ := doRequest(t, r, requestParams{
		method: http.MethodPost,
		path:   "/appointment",
		body:   model.AppointmentRequest{PatientID: "D1"},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListAppointments_FiltersAndPaginates(t *testing.T) {
	r, repo := setupEndpointTest(t)
	r.GET("/appointment", ListAppointments)

	for i := 1; i <= 6; i++ {
		seedTestAppointment(t, repo, model.Appointment{
			ID:              fmt.Sprintf("a%d", i),
			PatientID:       "D1",
			AppointmentDate: fmt.Sprintf("2025-06-%02dT09:00:00Z", i),
			Status:          model.StatusPending,
		})
	}

	w, envelope := doRequest(t, r, requestParams{
		method: http.MethodGet,
		path:   "/appointment?patient_id=D1&page=2",
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var table clinic.AppointmentTable
	assert.NoError(t, json.Unmarshal(envelope.Data, &table))
	assert.Equal(t, 6, table.Total)
	assert.Equal(t, 2, table.TotalPages)
	assert.Equal(t, 2, table.Page)
	assert.Len(t, table.Appointments, 1)

	// Date prefix narrows the table to one day.
	_, envelope = doRequest(t, r, requestParams{
		method: http.MethodGet,
		path:   "/appointment?date=2025-06-03",
	})
	assert.NoError(t, json.Unmarshal(envelope.Data, &table))
	assert.Equal(t, 1, table.Total)
	assert.Equal(t, "a3", table.Appointments[0].ID)
}

func TestUpdateAppointmentField_CostClamps(t *testing.T) {
	r, repo := setupEndpointTest(t)
	r.PATCH("/appointment/:id/field", UpdateAppointmentField)

	seedTestAppointment(t, repo, model.Appointment{ID: "a1", PatientID: "D1", Status: model.StatusPending})

	w, envelope := doRequest(t, r, requestParams{
		method: http.MethodPatch,
		path:   "/appointment/a1/field",
		body:   model.FieldEditRequest{Field: "cost", Value: "-50"},
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var updated model.Appointment
	assert.NoError(t, json.Unmarshal(envelope.Data, &updated))
	assert.Zero(t, updated.Cost)
}

func TestUpdateAppointmentField_RejectsUnknownField(t *testing.T) {
	r, repo := setupEndpointTest(t)
	r.PATCH("/appointment/:id/field", UpdateAppointmentField)

	seedTestAppointment(t, repo, model.Appointment{ID: "a1", PatientID: "D1", Status: model.StatusPending})

	w, _ := doRequest(t, r, requestParams{
		method: http.MethodPatch,
		path:   "/appointment/a1/field",
		body:   model.FieldEditRequest{Field: "status", Value: "Completed"},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateAppointmentStatus(t *testing.T) {
	r, repo := setupEndpointTest(t)
	r.PATCH("/appointment/:id/status", UpdateAppointmentStatus)

	seedTestAppointment(t, repo, model.Appointment{ID: "a1", PatientID: "D1", Status: model.StatusPending})

	w, envelope := doRequest(t, r, requestParams{
		method: http.MethodPatch,
		path:   "/appointment/a1/status",
		body:   model.StatusRequest{Status: model.StatusCompleted},
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var updated model.Appointment
	assert.NoError(t, json.Unmarshal(envelope.Data, &updated))
	assert.Equal(t, model.StatusCompleted, updated.Status)

	// Cancelled is recognized but unreachable.
	w, _ = doRequest(t, r, requestParams{
		method: http.MethodPatch,
		path:   "/appointment/a1/status",
		body:   model.StatusRequest{Status: model.StatusCancelled},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = doRequest(t, r, requestParams{
		method: http.MethodPatch,
		path:   "/appointment/missing/status",
		body:   model.StatusRequest{Status: model.StatusCompleted},
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteAppointment(t *testing.T) {
	r, repo := setupEndpointTest(t)
	r.DELETE("/appointment/:id", DeleteAppointment)

	seedTestAppointment(t, repo, model.Appointment{ID: "a1", PatientID: "D1", Status: model.StatusPending})

	w, _ := doRequest(t, r, requestParams{method: http.MethodDelete, path: "/appointment/a1"})
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = doRequest(t, r, requestParams{method: http.MethodDelete, path: "/appointment/a1"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMyAppointments_ScopedByToken(t *testing.T) {
	r, repo := setupEndpointTest(t)
	r.GET("/appointment/mine", middleware.AuthMiddleware(), MyAppointments)

	seedTestAppointment(t, repo, model.Appointment{ID: "a1", PatientID: "D1", Status: model.StatusPending})
	seedTestAppointment(t, repo, model.Appointment{ID: "a2", PatientID: "D2", Status: model.StatusPending})

	w, envelope := doRequest(t, r, requestParams{
		method:  http.MethodGet,
		path:    "/appointment/mine",
		headers: bearerHeader(t, model.RolePatient, "D1", "john@clinic.local"),
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var data struct {
		Total        int                 `json:"total"`
		Appointments []model.Appointment `json:"appointments"`
	}
	assert.NoError(t, json.Unmarshal(envelope.Data, &data))
	assert.Equal(t, 1, data.Total)
	assert.Equal(t, "a1", data.Appointments[0].ID)
}

func TestMyAppointments_AdminHasNoPatientID(t *testing.T) {
	r, _ := setupEndpointTest(t)
	r.GET("/appointment/mine", middleware.AuthMiddleware(), MyAppointments)

	w, _ := doRequest(t, r, requestParams{
		method:  http.MethodGet,
		path:    "/appointment/mine",
		headers: bearerHeader(t, model.RoleAdmin, "", "admin@clinic.local"),
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
