package clinic

import (
	"errors"
	"fmt"
)

// ValidationError signals a missing or malformed caller input. The operation
// is aborted with no partial write.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func validationErrorf(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// SlotConflictError signals that the chosen booking slot is already taken on
// that date. Direct admin entry never raises it.
type SlotConflictError struct {
	Date string
	Slot string
}

func (e *SlotConflictError) Error() string {
	return fmt.Sprintf("slot %s on %s is already taken", e.Slot, e.Date)
}

// NotFoundError signals that an id did not resolve to an entity at mutation
// time. Reads never raise it; dangling references render as "Unknown".
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// PartialWriteError reports that the first of two collection writes was
// applied but the second failed, leaving the store inconsistent until the
// reconciler repairs it. Non-fatal.
type PartialWriteError struct {
	Applied string
	Failed  string
	Err     error
}

func (e *PartialWriteError) Error() string {
	return fmt.Sprintf("%s written but %s failed: %v", e.Applied, e.Failed, e.Err)
}

func (e *PartialWriteError) Unwrap() error { return e.Err }

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsSlotConflict reports whether err is a SlotConflictError.
func IsSlotConflict(err error) bool {
	var sc *SlotConflictError
	return errors.As(err, &sc)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsPartialWrite reports whether err is a PartialWriteError.
func IsPartialWrite(err error) bool {
	var pw *PartialWriteError
	return errors.As(err, &pw)
}
