package clinic

import (
	"context"
	"log"
	"time"

	"github.com/dentalops/clinic-api/model"
	"github.com/dentalops/clinic-api/repository"
)

// Treatments records clinical outcomes against appointments.
type Treatments struct {
	repo *repository.Repository
}

// NewTreatments returns a treatment recorder over the repository.
func NewTreatments(repo *repository.Repository) *Treatments {
	return &Treatments{repo: repo}
}

// Candidates returns the appointments a treatment may still be recorded
// against, i.e. those not yet Completed.
func (t *Treatments) Candidates(ctx context.Context) ([]model.Appointment, error) {
	appointments, err := t.repo.Appointments(ctx)
	if err != nil {
		return nil, err
	}
	open := make([]model.Appointment, 0, len(appointments))
	for _, app := range appointments {
		if app.Status != model.StatusCompleted {
			open = append(open, app)
		}
	}
	return open, nil
}

// Record appends a treatment for the appointment and marks the appointment
// Completed, duplicating the treatment's files onto it. The two collection
// writes are sequential with no rollback: if the second fails the treatment
// stays written and a PartialWriteError reports the inconsistency. The
// reconciler repairs such gaps later.
func (t *Treatments) Record(ctx context.Context, req model.TreatmentRequest) (model.Treatment, error) {
	if req.AppointmentID == "" || req.Description == "" {
		return model.Treatment{}, validationErrorf("appointment and description are required")
	}

	appointments, err := t.repo.Appointments(ctx)
	if err != nil {
		return model.Treatment{}, err
	}
	idx := findAppointment(appointments, req.AppointmentID)
	if idx < 0 {
		return model.Treatment{}, &NotFoundError{Entity: "appointment", ID: req.AppointmentID}
	}
	if appointments[idx].Status == model.StatusCompleted {
		return model.Treatment{}, validationErrorf("appointment %s is already completed", req.AppointmentID)
	}

	files := req.Files
	if files == nil {
		files = []model.FileRef{}
	}
	treatment := model.Treatment{
		ID:            repository.NewID(),
		AppointmentID: req.AppointmentID,
		Description:   req.Description,
		Date:          time.Now().UTC().Format(time.RFC3339),
		Files:         files,
	}

	treatments, err := t.repo.Treatments(ctx)
	if err != nil {
		return model.Treatment{}, err
	}
	treatments = append(treatments, treatment)
	if err := t.repo.SaveTreatments(ctx, treatments); err != nil {
		return model.Treatment{}, err
	}

	appointments[idx].Status = model.StatusCompleted
	appointments[idx].Files = append(appointments[idx].Files, files...)
	if err := t.repo.SaveAppointments(ctx, appointments); err != nil {
		return treatment, &PartialWriteError{
			Applied: "treatment record",
			Failed:  "appointment completion",
			Err:     err,
		}
	}
	return treatment, nil
}

// Reconcile repairs appointments that have a recorded treatment but never
// received their Completed write: the status is set and any treatment files
// missing from the appointment are appended. Returns the number of
// appointments repaired. Safe to run repeatedly.
func (t *Treatments) Reconcile(ctx context.Context) (int, error) {
	treatments, err := t.repo.Treatments(ctx)
	if err != nil {
		return 0, err
	}
	appointments, err := t.repo.Appointments(ctx)
	if err != nil {
		return 0, err
	}

	repaired := 0
	for _, treatment := range treatments {
		idx := findAppointment(appointments, treatment.AppointmentID)
		if idx < 0 {
			// Orphaned treatment; deletion does not cascade, so leave it.
			continue
		}
		if appointments[idx].Status == model.StatusCompleted {
			continue
		}
		appointments[idx].Status = model.StatusCompleted
		appointments[idx].Files = appendMissingFiles(appointments[idx].Files, treatment.Files)
		repaired++
	}

	if repaired == 0 {
		return 0, nil
	}
	if err := t.repo.SaveAppointments(ctx, appointments); err != nil {
		return 0, err
	}
	log.Printf("reconcile: repaired %d appointment(s) with recorded treatments", repaired)
	return repaired, nil
}

func appendMissingFiles(existing, incoming []model.FileRef) []model.FileRef {
	for _, f := range incoming {
		present := false
		for _, e := range existing {
			if e.Name == f.Name && e.URL == f.URL {
				present = true
				break
			}
		}
		if !present {
			existing = append(existing, f)
		}
	}
	return existing
}
