package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by repositories and constructors.
var (
	// ErrNotFound is returned when a requested document does not exist.
	ErrNotFound = errors.New("not found")

	// ErrBarcodeOverflow is returned when the identity segments alone
	// exceed the fixed barcode length.
	ErrBarcodeOverflow = errors.New("barcode segments exceed 16 digits")

	// ErrUserExists is returned when registering an already-taken username.
	ErrUserExists = errors.New("username already taken")

	// ErrOrderExists is returned when submitting a duplicate order number.
	ErrOrderExists = errors.New("order number already registered")
)

// ValidationError reports invalid input to a domain operation.
type ValidationError struct {
	Reason string
}

// NewValidationError creates a ValidationError with a formatted reason.
func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// AlreadyInStageError reports that a unit already has a record for a stage.
// The exclusivity invariant allows at most one record per (barcode, stage).
type AlreadyInStageError struct {
	BarcodeNumber string
	Stage         Stage
}

func (e *AlreadyInStageError) Error() string {
	return fmt.Sprintf("unit %s already recorded in %s", e.BarcodeNumber, e.Stage)
}

// PredecessorMissingError reports an attempt to enter a stage whose
// predecessor has not been recorded for the unit.
type PredecessorMissingError struct {
	BarcodeNumber string
	Stage         Stage
}

func (e *PredecessorMissingError) Error() string {
	if pred, ok := e.Stage.Predecessor(); ok {
		return fmt.Sprintf("unit %s cannot enter %s before completing %s", e.BarcodeNumber, e.Stage, pred)
	}
	return fmt.Sprintf("unit %s cannot enter %s", e.BarcodeNumber, e.Stage)
}
