package model

// Status is the appointment lifecycle state. Cancelled is recognized when
// read back from storage but no operation produces it; only the
// Pending/Completed pair is reachable.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusCompleted Status = "Completed"
	StatusCancelled Status = "Cancelled"
)

var statusTransitions = map[Status][]Status{
	StatusPending:   {StatusCompleted},
	StatusCompleted: {StatusPending},
}

// Valid reports whether s is one of the recognized status values.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether the move from s to next is allowed.
// Rewriting the current status is always allowed, which makes status writes
// idempotent.
func (s Status) CanTransitionTo(next Status) bool {
	if s == next {
		return true
	}
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
