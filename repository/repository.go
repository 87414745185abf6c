package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/dentalops/clinic-api/model"
	"github.com/dentalops/clinic-api/store"
)

// Repository is the only gate to the Store. Every mutation is a full
// read-collection / transform / write-collection cycle; two uncoordinated
// writers to the same collection are last-write-wins.
type Repository struct {
	store store.Store
}

// New returns a Repository over the given store.
func New(s store.Store) *Repository {
	return &Repository{store: s}
}

func list[T any](ctx context.Context, s store.Store, key string) ([]T, error) {
	raw, found, err := s.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !found {
		return []T{}, nil
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode collection %s: %w", key, err)
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func save[T any](ctx context.Context, s store.Store, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode collection %s: %w", key, err)
	}
	return s.Set(ctx, key, raw)
}

// Patients returns the patient collection in insertion order, empty when the
// store holds no value yet.
func (r *Repository) Patients(ctx context.Context) ([]model.Patient, error) {
	return list[model.Patient](ctx, r.store, store.KeyPatients)
}

// SavePatients replaces the whole patient collection.
func (r *Repository) SavePatients(ctx context.Context, patients []model.Patient) error {
	return save(ctx, r.store, store.KeyPatients, patients)
}

// Appointments returns the appointment collection in insertion order.
func (r *Repository) Appointments(ctx context.Context) ([]model.Appointment, error) {
	return list[model.Appointment](ctx, r.store, store.KeyIncidents)
}

// SaveAppointments replaces the whole appointment collection.
func (r *Repository) SaveAppointments(ctx context.Context, appointments []model.Appointment) error {
	return save(ctx, r.store, store.KeyIncidents, appointments)
}

// Treatments returns the treatment collection in insertion order.
func (r *Repository) Treatments(ctx context.Context) ([]model.Treatment, error) {
	return list[model.Treatment](ctx, r.store, store.KeyTreatments)
}

// SaveTreatments replaces the whole treatment collection.
func (r *Repository) SaveTreatments(ctx context.Context, treatments []model.Treatment) error {
	return save(ctx, r.store, store.KeyTreatments, treatments)
}

// NextPatientID derives the next positional patient id, "D" followed by the
// collection length plus one. Ids are not reclaimed on deletion, so deleting
// then adding patients can reissue an id already in use; that case is logged
// and the id returned unchanged.
func NextPatientID(existing []model.Patient) string {
	id := fmt.Sprintf("D%d", len(existing)+1)
	for _, p := range existing {
		if p.ID == id {
			log.Printf("patient id %s already in use, reissuing anyway", id)
			break
		}
	}
	return id
}

// NewID returns a fresh universally unique id for appointments and
// treatments.
func NewID() string {
	return uuid.NewString()
}
