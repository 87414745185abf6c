package clinic

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/dentalops/clinic-api/model"
	"github.com/dentalops/clinic-api/repository"
	"github.com/dentalops/clinic-api/scheduling"
)

// PageSize is the fixed page size of the paginated views.
const PageSize = 5

// UnknownPatient is rendered when a reference no longer resolves.
const UnknownPatient = "Unknown"

// calendarEventSpan is the display length of an appointment on the calendar.
const calendarEventSpan = 30 * time.Minute

// Views builds role-scoped read models. Admin sees everything; a patient
// only records linked, directly or through an appointment, to their own id.
type Views struct {
	repo *repository.Repository
}

// NewViews returns a view builder over the repository.
func NewViews(repo *repository.Repository) *Views {
	return &Views{repo: repo}
}

// DashboardView is the landing view: upcoming appointments and most recent
// treatments, both paginated with the same page number, plus scoped totals.
type DashboardView struct {
	Appointments      []model.Appointment `json:"appointments"`
	Treatments        []model.Treatment   `json:"treatments"`
	AppointmentPages  int                 `json:"appointment_pages"`
	TreatmentPages    int                 `json:"treatment_pages"`
	Page              int                 `json:"page"`
	TotalAppointments int                 `json:"total_appointments"`
	TotalTreatments   int                 `json:"total_treatments"`
}

// AppointmentTable is the admin management view over all appointments.
type AppointmentTable struct {
	Appointments []model.Appointment `json:"appointments"`
	Page         int                 `json:"page"`
	TotalPages   int                 `json:"total_pages"`
	Total        int                 `json:"total"`
}

// paginate slices items to the requested 1-indexed page. Pages outside the
// valid range clamp to the nearest valid page instead of failing.
func paginate[T any](items []T, page int) ([]T, int, int) {
	totalPages := (len(items) + PageSize - 1) / PageSize
	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}
	start := (page - 1) * PageSize
	if start >= len(items) {
		return []T{}, page, totalPages
	}
	end := start + PageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end:end], page, totalPages
}

// Dashboard builds the dashboard for the caller. For the patient role only
// the caller's own appointments, and treatments reached through them, are
// considered.
func (v *Views) Dashboard(ctx context.Context, role, patientID string, page int) (DashboardView, error) {
	appointments, err := v.repo.Appointments(ctx)
	if err != nil {
		return DashboardView{}, err
	}
	treatments, err := v.repo.Treatments(ctx)
	if err != nil {
		return DashboardView{}, err
	}

	if role != model.RoleAdmin {
		appointments = filterByPatient(appointments, patientID)
		mine := make(map[string]bool, len(appointments))
		for _, app := range appointments {
			mine[app.ID] = true
		}
		scoped := make([]model.Treatment, 0, len(treatments))
		for _, treatment := range treatments {
			if mine[treatment.AppointmentID] {
				scoped = append(scoped, treatment)
			}
		}
		treatments = scoped
	}

	now := time.Now()
	upcoming := make([]model.Appointment, 0, len(appointments))
	for _, app := range appointments {
		at, err := scheduling.ParseAppointmentTime(app.AppointmentDate)
		if err != nil {
			continue
		}
		if !at.Before(now) {
			upcoming = append(upcoming, app)
		}
	}

	recent := append([]model.Treatment(nil), treatments...)
	sort.SliceStable(recent, func(i, j int) bool {
		return treatmentTime(recent[i]).After(treatmentTime(recent[j]))
	})

	pagedApps, clamped, appPages := paginate(upcoming, page)
	pagedTreatments, _, treatmentPages := paginate(recent, page)

	return DashboardView{
		Appointments:      pagedApps,
		Treatments:        pagedTreatments,
		AppointmentPages:  appPages,
		TreatmentPages:    treatmentPages,
		Page:              clamped,
		TotalAppointments: len(appointments),
		TotalTreatments:   len(treatments),
	}, nil
}

// AppointmentTable builds the admin management table: the full appointment
// list filtered by patient-id substring and by date prefix on the stored
// timestamp string, paginated.
func (v *Views) AppointmentTable(ctx context.Context, patientIDFilter, datePrefix string, page int) (AppointmentTable, error) {
	appointments, err := v.repo.Appointments(ctx)
	if err != nil {
		return AppointmentTable{}, err
	}

	filtered := make([]model.Appointment, 0, len(appointments))
	for _, app := range appointments {
		if !strings.Contains(app.PatientID, patientIDFilter) {
			continue
		}
		if datePrefix != "" && !strings.HasPrefix(app.AppointmentDate, datePrefix) {
			continue
		}
		filtered = append(filtered, app)
	}

	paged, clamped, totalPages := paginate(filtered, page)
	return AppointmentTable{
		Appointments: paged,
		Page:         clamped,
		TotalPages:   totalPages,
		Total:        len(filtered),
	}, nil
}

// TreatmentRegistry builds the admin registry: every treatment with its
// owning appointment's patient id resolved through the join, filterable by
// case-insensitive substring on both ids. Dangling appointment references
// resolve to the Unknown placeholder, never to an error.
func (v *Views) TreatmentRegistry(ctx context.Context, appointmentFilter, patientFilter string) ([]model.TreatmentRow, error) {
	treatments, err := v.repo.Treatments(ctx)
	if err != nil {
		return nil, err
	}
	appointments, err := v.repo.Appointments(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]model.Appointment, len(appointments))
	for _, app := range appointments {
		byID[app.ID] = app
	}

	rows := make([]model.TreatmentRow, 0, len(treatments))
	for _, treatment := range treatments {
		patientID := UnknownPatient
		if app, ok := byID[treatment.AppointmentID]; ok {
			patientID = app.PatientID
		}
		if !containsFold(treatment.AppointmentID, appointmentFilter) {
			continue
		}
		if !containsFold(patientID, patientFilter) {
			continue
		}
		rows = append(rows, model.TreatmentRow{Treatment: treatment, PatientID: patientID})
	}
	return rows, nil
}

// PatientAppointments returns every appointment belonging to the patient, in
// insertion order.
func (v *Views) PatientAppointments(ctx context.Context, patientID string) ([]model.Appointment, error) {
	appointments, err := v.repo.Appointments(ctx)
	if err != nil {
		return nil, err
	}
	return filterByPatient(appointments, patientID), nil
}

// CalendarEvents projects every appointment as a half-hour calendar event.
// Unparseable timestamps are skipped; a missing status renders as Pending.
func (v *Views) CalendarEvents(ctx context.Context) ([]model.CalendarEvent, error) {
	appointments, err := v.repo.Appointments(ctx)
	if err != nil {
		return nil, err
	}

	events := make([]model.CalendarEvent, 0, len(appointments))
	for _, app := range appointments {
		start, err := scheduling.ParseAppointmentTime(app.AppointmentDate)
		if err != nil {
			continue
		}
		status := app.Status
		if status == "" {
			status = model.StatusPending
		}
		pid := app.PatientID
		if pid == "" {
			pid = "N/A"
		}
		events = append(events, model.CalendarEvent{
			Title:  app.Title + " (PID: " + pid + ")",
			Start:  start.Format(time.RFC3339),
			End:    start.Add(calendarEventSpan).Format(time.RFC3339),
			Status: status,
		})
	}
	return events, nil
}

// PatientSummaries builds the patient management rows, each with the most
// recently recorded treatment reached through the patient's appointments.
func (v *Views) PatientSummaries(ctx context.Context) ([]model.PatientSummary, error) {
	patients, err := v.repo.Patients(ctx)
	if err != nil {
		return nil, err
	}
	appointments, err := v.repo.Appointments(ctx)
	if err != nil {
		return nil, err
	}
	treatments, err := v.repo.Treatments(ctx)
	if err != nil {
		return nil, err
	}

	appointmentPatient := make(map[string]string, len(appointments))
	for _, app := range appointments {
		appointmentPatient[app.ID] = app.PatientID
	}

	summaries := make([]model.PatientSummary, 0, len(patients))
	for _, patient := range patients {
		summary := model.PatientSummary{Patient: patient, TreatmentFiles: []model.FileRef{}}
		// Last matching treatment in insertion order wins.
		for _, treatment := range treatments {
			if appointmentPatient[treatment.AppointmentID] == patient.ID {
				summary.LatestTreatment = treatment.Description
				summary.TreatmentFiles = treatment.Files
			}
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func filterByPatient(appointments []model.Appointment, patientID string) []model.Appointment {
	out := make([]model.Appointment, 0, len(appointments))
	for _, app := range appointments {
		if app.PatientID == patientID {
			out = append(out, app)
		}
	}
	return out
}

func treatmentTime(t model.Treatment) time.Time {
	at, err := time.Parse(time.RFC3339, t.Date)
	if err != nil {
		return time.Time{}
	}
	return at
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
