package store

import "context"

// Collection keys persisted in the store. Each key holds the full JSON-encoded
// sequence for that collection; writers always replace the whole value.
const (
	KeyPatients   = "patients"
	KeyIncidents  = "incidents"
	KeyTreatments = "treatments"
)

// Store is the key-value persistence surface. Get returns the raw value and
// whether the key exists. Set replaces the value for a key atomically at
// single-key granularity; there is no cross-key transaction.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}
