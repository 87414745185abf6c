package model

// FileRef is an opaque attachment handle. The engine never inspects or
// transforms file contents.
type FileRef struct {
	Name string `json:"name" example:"xray.png"`
	URL  string `json:"url" example:"https://files.example.com/xray.png"`
}

// Appointment represents a scheduled clinical visit. AppointmentDate is an
// RFC 3339 timestamp; NextDate is a plain date and may be empty.
// @Description Appointment information
type Appointment struct {
	ID              string    `json:"id" example:"9f1c7a2e-3f6d-4a4e-9c1b-2f8e5d6a7b8c"`
	PatientID       string    `json:"patientId" example:"D1"`
	Title           string    `json:"title" example:"Jane Doe"`
	Description     string    `json:"description,omitempty" example:"Toothache, upper left"`
	Comments        string    `json:"comments,omitempty" example:"Prefers morning visits"`
	AppointmentDate string    `json:"appointmentDate" example:"2025-06-10T09:00:00Z"`
	Status          Status    `json:"status" example:"Pending"`
	NextDate        string    `json:"nextDate,omitempty" example:"2025-06-24"`
	Cost            int       `json:"cost,omitempty" example:"150"`
	Files           []FileRef `json:"files"`
}

// AppointmentRequest is the payload for direct appointment entry.
type AppointmentRequest struct {
	PatientID       string `json:"patientId" example:"D1"`
	AppointmentDate string `json:"appointmentDate" example:"2025-06-10T09:00:00Z"`
}

// BookingRequest is the payload for patient self-booking. Date is the chosen
// calendar day, Slot one of the fixed daily times.
type BookingRequest struct {
	Date        string `json:"date" example:"2025-06-10"`
	Slot        string `json:"slot" example:"09:00"`
	Title       string `json:"title" example:"Jane Doe"`
	Description string `json:"description" example:"Toothache, upper left"`
	Comments    string `json:"comments,omitempty" example:"First visit"`
}

// FieldEditRequest updates a single mutable appointment field.
type FieldEditRequest struct {
	Field string `json:"field" example:"cost"`
	Value string `json:"value" example:"150"`
}

// StatusRequest writes an appointment status.
type StatusRequest struct {
	Status Status `json:"status" example:"Completed"`
}

// CalendarEvent is an appointment projected for the calendar view.
type CalendarEvent struct {
	Title  string `json:"title" example:"Jane Doe (PID: D1)"`
	Start  string `json:"start" example:"2025-06-10T09:00:00Z"`
	End    string `json:"end" example:"2025-06-10T09:30:00Z"`
	Status Status `json:"status" example:"Pending"`
}
