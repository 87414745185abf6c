package model

// Treatment is the clinical outcome record created once an appointment has
// been serviced. Date is an RFC 3339 timestamp set at recording time.
// @Description Treatment information
type Treatment struct {
	ID            string    `json:"id" example:"c2b3a4d5-6e7f-4a8b-9c0d-1e2f3a4b5c6d"`
	AppointmentID string    `json:"appointmentId" example:"9f1c7a2e-3f6d-4a4e-9c1b-2f8e5d6a7b8c"`
	Description   string    `json:"description" example:"Cleaning"`
	Date          string    `json:"date" example:"2025-06-10T09:45:00Z"`
	Files         []FileRef `json:"files"`
}

// TreatmentRequest represents a treatment recording request.
// @Description Treatment recording request
type TreatmentRequest struct {
	AppointmentID string    `json:"appointmentId" example:"9f1c7a2e-3f6d-4a4e-9c1b-2f8e5d6a7b8c"`
	Description   string    `json:"description" example:"Cleaning"`
	Files         []FileRef `json:"files,omitempty"`
}

// TreatmentRow is a registry row with the owning appointment's patient id
// resolved. PatientID is "Unknown" when the appointment no longer exists.
type TreatmentRow struct {
	Treatment
	PatientID string `json:"patient_id" example:"D1"`
}
