package endpoint

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dentalops/clinic-api/clinic"
	"github.com/dentalops/clinic-api/middleware"
	"github.com/dentalops/clinic-api/model"
)

func TestDashboard_PatientSeesOnlyOwnRecords(t *testing.T) {
	r, repo := setupEndpointTest(t)
	r.GET("/dashboard", middleware.AuthMiddleware(), Dashboard)

	future := time.Now().Add(48 * time.Hour).Format(time.RFC3339)
	seedTestAppointment(t, repo, model.Appointment{ID: "a1", PatientID: "D1", AppointmentDate: future, Status: model.StatusPending})
	seedTestAppointment(t, repo, model.Appointment{ID: "a2", PatientID: "D2", AppointmentDate: future, Status: model.StatusPending})
	seedTestTreatment(t, repo, model.Treatment{ID: "t1", AppointmentID: "a2", Description: "Theirs", Date: future})

	w, envelope := doRequest(t, r, requestParams{
		method:  http.MethodGet,
		path:    "/dashboard",
		headers: bearerHeader(t, model.RolePatient, "D1", "john@clinic.local"),
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var view clinic.DashboardView
	assert.NoError(t, json.Unmarshal(envelope.Data, &view))
	assert.Equal(t, 1, view.TotalAppointments)
	assert.Equal(t, "a1", view.Appointments[0].ID)
	assert.Zero(t, view.TotalTreatments)
}

func TestDashboard_AdminSeesEverything(t *testing.T) {
	r, repo := setupEndpointTest(t)
	r.GET("/dashboard", middleware.AuthMiddleware(), Dashboard)

	future := time.Now().Add(48 * time.Hour).Format(time.RFC3339)
	seedTestAppointment(t, repo, model.Appointment{ID: "a1", PatientID: "D1", AppointmentDate: future, Status: model.StatusPending})
	seedTestAppointment(t, repo, model.Appointment{ID: "a2", PatientID: "D2", AppointmentDate: future, Status: model.StatusPending})

	w, envelope := doRequest(t, r, requestParams{
		method:  http.MethodGet,
		path:    "/dashboard",
		headers: bearerHeader(t, model.RoleAdmin, "", "admin@clinic.local"),
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var view clinic.DashboardView
	assert.NoError(t, json.Unmarshal(envelope.Data, &view))
	assert.Equal(t, 2, view.TotalAppointments)
}

func TestDashboard_PageClamped(t *testing.T) {
	r, repo := setupEndpointTest(t)
	r.GET("/dashboard", middleware.AuthMiddleware(), Dashboard)

	future := time.Now().Add(48 * time.Hour).Format(time.RFC3339)
	seedTestAppointment(t, repo, model.Appointment{ID: "a1", PatientID: "D1", AppointmentDate: future, Status: model.StatusPending})

	w, envelope := doRequest(t, r, requestParams{
		method:  http.MethodGet,
		path:    "/dashboard?page=99",
		headers: bearerHeader(t, model.RoleAdmin, "", "admin@clinic.local"),
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var view clinic.DashboardView
	assert.NoError(t, json.Unmarshal(envelope.Data, &view))
	assert.Equal(t, 1, view.Page)
	assert.Len(t, view.Appointments, 1)
}

func TestCalendarEvents_Endpoint(t *testing.T) {
	r, repo := setupEndpointTest(t)
	r.GET("/calendar", CalendarEvents)

	seedTestAppointment(t, repo, model.Appointment{
		ID: "a1", PatientID: "D1", Title: "Checkup",
		AppointmentDate: "2025-06-10T09:00:00Z", Status: model.StatusPending,
	})

	w, envelope := doRequest(t, r, requestParams{method: http.MethodGet, path: "/calendar"})
	assert.Equal(t, http.StatusOK, w.Code)

	var data struct {
		Total  int                   `json:"total"`
		Events []model.CalendarEvent `json:"events"`
	}
	assert.NoError(t, json.Unmarshal(envelope.Data, &data))
	assert.Equal(t, 1, data.Total)
	assert.Equal(t, "Checkup (PID: D1)", data.Events[0].Title)
	assert.Equal(t, "2025-06-10T09:30:00Z", data.Events[0].End)
}
