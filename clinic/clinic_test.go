package clinic

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dentalops/clinic-api/model"
	"github.com/dentalops/clinic-api/repository"
	"github.com/dentalops/clinic-api/store"
)

func setupClinicTest(t *testing.T) *repository.Repository {
	t.Helper()
	return repository.New(store.NewMemoryStore())
}

func seedPatient(t *testing.T, repo *repository.Repository, p model.Patient) {
	t.Helper()
	ctx := context.Background()
	patients, err := repo.Patients(ctx)
	assert.NoError(t, err)
	assert.NoError(t, repo.SavePatients(ctx, append(patients, p)))
}

func seedAppointment(t *testing.T, repo *repository.Repository, a model.Appointment) {
	t.Helper()
	ctx := context.Background()
	appointments, err := repo.Appointments(ctx)
	assert.NoError(t, err)
	assert.NoError(t, repo.SaveAppointments(ctx, append(appointments, a)))
}

func seedTreatment(t *testing.T, repo *repository.Repository, tr model.Treatment) {
	t.Helper()
	ctx := context.Background()
	treatments, err := repo.Treatments(ctx)
	assert.NoError(t, err)
	assert.NoError(t, repo.SaveTreatments(ctx, append(treatments, tr)))
}

// failingStore wraps a working store and fails writes to one key. Used to
// observe what happens when the second of two sequential collection writes
// breaks.
type failingStore struct {
	inner   store.Store
	failKey string
}

func (s *failingStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return s.inner.Get(ctx, key)
}

func (s *failingStore) Set(ctx context.Context, key string, value []byte) error {
	if key == s.failKey {
		return assert.AnError
	}
	return s.inner.Set(ctx, key, value)
}
