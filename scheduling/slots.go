package scheduling

import (
	"fmt"
	"time"

	"github.com/dentalops/clinic-api/model"
)

// DailySlots is the fixed daily booking grid. The gap between 12:00 and
// 14:00 is the lunch break.
var DailySlots = []string{"09:00", "10:00", "11:00", "12:00", "14:00", "15:00", "16:00", "17:00"}

// appointmentTimeLayouts are the accepted appointment timestamp formats:
// RFC 3339 from bookings, and the shorter datetime-local shapes direct admin
// entry submits.
var appointmentTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// SlotStatus pairs one grid entry with its availability on a given day.
type SlotStatus struct {
	Slot  string `json:"slot" example:"09:00"`
	Taken bool   `json:"taken"`
}

// ParseAppointmentTime parses a stored appointment timestamp.
func ParseAppointmentTime(s string) (time.Time, error) {
	for _, layout := range appointmentTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized appointment time %q", s)
}

// ParseDay parses a plain calendar date (2006-01-02).
func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("unrecognized date %q", s)
	}
	return t, nil
}

// SameDay reports whether two instants fall on the same calendar day,
// ignoring time of day.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// IsSlot reports whether slot is part of the daily grid.
func IsSlot(slot string) bool {
	for _, s := range DailySlots {
		if s == slot {
			return true
		}
	}
	return false
}

// TakenSlots returns the set of hour:minute slots already occupied on the
// given day. Appointments with unparseable timestamps are skipped.
func TakenSlots(day time.Time, appointments []model.Appointment) map[string]bool {
	taken := make(map[string]bool)
	for _, app := range appointments {
		at, err := ParseAppointmentTime(app.AppointmentDate)
		if err != nil {
			continue
		}
		if SameDay(at, day) {
			taken[at.Format("15:04")] = true
		}
	}
	return taken
}

// Statuses projects the full grid against the taken set for a day.
func Statuses(day time.Time, appointments []model.Appointment) []SlotStatus {
	taken := TakenSlots(day, appointments)
	statuses := make([]SlotStatus, 0, len(DailySlots))
	for _, slot := range DailySlots {
		statuses = append(statuses, SlotStatus{Slot: slot, Taken: taken[slot]})
	}
	return statuses
}

// Combine merges a calendar day with a grid slot into a single instant.
func Combine(day time.Time, slot string) (time.Time, error) {
	t, err := time.Parse("15:04", slot)
	if err != nil {
		return time.Time{}, fmt.Errorf("unrecognized slot %q", slot)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, day.Location()), nil
}
