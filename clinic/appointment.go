package clinic

import (
	"context"
	"strconv"
	"time"

	"github.com/dentalops/clinic-api/model"
	"github.com/dentalops/clinic-api/repository"
	"github.com/dentalops/clinic-api/scheduling"
)

// Appointments manages the appointment lifecycle. Every mutation reads the
// full collection, transforms it, and writes it back through the repository.
type Appointments struct {
	repo *repository.Repository
}

// NewAppointments returns a lifecycle manager over the repository.
func NewAppointments(repo *repository.Repository) *Appointments {
	return &Appointments{repo: repo}
}

// editableFields are the appointment fields EditField accepts.
var editableFields = map[string]bool{
	"nextDate":    true,
	"cost":        true,
	"title":       true,
	"description": true,
	"comments":    true,
}

// CreateDirect synthesizes an appointment from a patient id and a timestamp.
// The title is copied from the patient's name, status starts Pending, cost
// and next date stay empty. The slot grid is not consulted.
func (a *Appointments) CreateDirect(ctx context.Context, req model.AppointmentRequest) (model.Appointment, error) {
	if req.PatientID == "" || req.AppointmentDate == "" {
		return model.Appointment{}, validationErrorf("patient and appointment date are required")
	}

	patients, err := a.repo.Patients(ctx)
	if err != nil {
		return model.Appointment{}, err
	}
	var patient *model.Patient
	for i := range patients {
		if patients[i].ID == req.PatientID {
			patient = &patients[i]
			break
		}
	}
	if patient == nil {
		return model.Appointment{}, &NotFoundError{Entity: "patient", ID: req.PatientID}
	}

	appointments, err := a.repo.Appointments(ctx)
	if err != nil {
		return model.Appointment{}, err
	}

	appointment := model.Appointment{
		ID:              repository.NewID(),
		PatientID:       patient.ID,
		Title:           patient.Name,
		AppointmentDate: req.AppointmentDate,
		Status:          model.StatusPending,
		Files:           []model.FileRef{},
	}
	appointments = append(appointments, appointment)
	if err := a.repo.SaveAppointments(ctx, appointments); err != nil {
		return model.Appointment{}, err
	}
	return appointment, nil
}

// Book creates an appointment for the caller's own patient id at the chosen
// date and slot. The slot must belong to the daily grid and be free on that
// date; the check is advisory in the sense that direct entry bypasses it.
func (a *Appointments) Book(ctx context.Context, patientID string, req model.BookingRequest) (model.Appointment, error) {
	if patientID == "" {
		return model.Appointment{}, validationErrorf("patient id is required")
	}
	if req.Slot == "" {
		return model.Appointment{}, validationErrorf("please select a time slot")
	}
	if !scheduling.IsSlot(req.Slot) {
		return model.Appointment{}, validationErrorf("slot %s is not available for booking", req.Slot)
	}
	day, err := scheduling.ParseDay(req.Date)
	if err != nil {
		return model.Appointment{}, validationErrorf("invalid booking date %q", req.Date)
	}

	appointments, err := a.repo.Appointments(ctx)
	if err != nil {
		return model.Appointment{}, err
	}
	if scheduling.TakenSlots(day, appointments)[req.Slot] {
		return model.Appointment{}, &SlotConflictError{Date: req.Date, Slot: req.Slot}
	}

	at, err := scheduling.Combine(day, req.Slot)
	if err != nil {
		return model.Appointment{}, validationErrorf("invalid slot %q", req.Slot)
	}

	appointment := model.Appointment{
		ID:              repository.NewID(),
		PatientID:       patientID,
		Title:           req.Title,
		Description:     req.Description,
		Comments:        req.Comments,
		AppointmentDate: at.Format(time.RFC3339),
		Status:          model.StatusPending,
		Files:           []model.FileRef{},
	}
	appointments = append(appointments, appointment)
	if err := a.repo.SaveAppointments(ctx, appointments); err != nil {
		return model.Appointment{}, err
	}
	return appointment, nil
}

// EditField updates one mutable field in place. Cost is clamped to a
// non-negative integer; unparseable numbers coerce to zero.
func (a *Appointments) EditField(ctx context.Context, id, field, value string) (model.Appointment, error) {
	if id == "" {
		return model.Appointment{}, validationErrorf("appointment id is required")
	}
	if !editableFields[field] {
		return model.Appointment{}, validationErrorf("field %q is not editable", field)
	}

	appointments, err := a.repo.Appointments(ctx)
	if err != nil {
		return model.Appointment{}, err
	}
	idx := findAppointment(appointments, id)
	if idx < 0 {
		return model.Appointment{}, &NotFoundError{Entity: "appointment", ID: id}
	}

	app := &appointments[idx]
	switch field {
	case "cost":
		cost, err := strconv.Atoi(value)
		if err != nil || cost < 0 {
			cost = 0
		}
		app.Cost = cost
	case "nextDate":
		app.NextDate = value
	case "title":
		app.Title = value
	case "description":
		app.Description = value
	case "comments":
		app.Comments = value
	}

	if err := a.repo.SaveAppointments(ctx, appointments); err != nil {
		return model.Appointment{}, err
	}
	return *app, nil
}

// SetStatus writes an appointment status. Rewriting the current status is
// idempotent; only the Pending/Completed pair is reachable, anything else is
// rejected. Whether a treatment exists is not consulted.
func (a *Appointments) SetStatus(ctx context.Context, id string, status model.Status) (model.Appointment, error) {
	if id == "" {
		return model.Appointment{}, validationErrorf("appointment id is required")
	}
	if !status.Valid() {
		return model.Appointment{}, validationErrorf("unknown status %q", status)
	}

	appointments, err := a.repo.Appointments(ctx)
	if err != nil {
		return model.Appointment{}, err
	}
	idx := findAppointment(appointments, id)
	if idx < 0 {
		return model.Appointment{}, &NotFoundError{Entity: "appointment", ID: id}
	}

	current := appointments[idx].Status
	if current == "" {
		current = model.StatusPending
	}
	if !current.CanTransitionTo(status) {
		return model.Appointment{}, validationErrorf("cannot change status from %s to %s", current, status)
	}

	appointments[idx].Status = status
	if err := a.repo.SaveAppointments(ctx, appointments); err != nil {
		return model.Appointment{}, err
	}
	return appointments[idx], nil
}

// Delete removes the appointment from the collection. Treatments referencing
// it are left untouched and become unreachable through the normal join.
func (a *Appointments) Delete(ctx context.Context, id string) error {
	if id == "" {
		return validationErrorf("appointment id is required")
	}

	appointments, err := a.repo.Appointments(ctx)
	if err != nil {
		return err
	}
	idx := findAppointment(appointments, id)
	if idx < 0 {
		return &NotFoundError{Entity: "appointment", ID: id}
	}

	appointments = append(appointments[:idx], appointments[idx+1:]...)
	return a.repo.SaveAppointments(ctx, appointments)
}

func findAppointment(appointments []model.Appointment, id string) int {
	for i := range appointments {
		if appointments[i].ID == id {
			return i
		}
	}
	return -1
}
