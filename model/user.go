package model

// Role names accepted by the API. The engine trusts these as supplied by the
// authentication layer.
const (
	RoleAdmin   = "Admin"
	RolePatient = "Patient"
)

// Credential is one entry of the fixed login list. Authentication here is a
// stub: no user storage, no registration, passwords compared as HMAC digests.
type Credential struct {
	ID        string `json:"id" example:"1"`
	Role      string `json:"role" example:"Admin"`
	Email     string `json:"email" example:"admin@clinic.local"`
	Password  string `json:"-"`
	PatientID string `json:"patientId,omitempty" example:"D1"`
}
