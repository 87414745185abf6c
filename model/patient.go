package model

// Patient represents a registered clinic patient.
// @Description Patient information
type Patient struct {
	ID         string `json:"id" example:"D1"`
	Name       string `json:"name" example:"Jane Doe"`
	DOB        string `json:"dob" example:"1990-04-12"`
	Contact    string `json:"contact" example:"+62811111111"`
	HealthInfo string `json:"healthInfo" example:"No known allergies"`
}

// PatientRequest represents the payload for creating or updating a patient.
type PatientRequest struct {
	Name       string `json:"name" example:"Jane Doe"`
	DOB        string `json:"dob" example:"1990-04-12"`
	Contact    string `json:"contact" example:"+62811111111"`
	HealthInfo string `json:"healthInfo,omitempty" example:"No known allergies"`
}

// PatientSummary is a patient row with its most recent treatment resolved
// through the patient's appointments.
type PatientSummary struct {
	Patient
	LatestTreatment string    `json:"latest_treatment"`
	TreatmentFiles  []FileRef `json:"treatment_files"`
}
