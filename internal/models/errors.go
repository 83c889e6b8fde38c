package models

import (
	"errors"
	"fmt"
)

// Sentinel errors for the engine's failure taxonomy. Callers branch with
// errors.Is; the typed errors below add reproduction context.
var (
	// ErrInvalidInput aborts a call immediately with no partial result.
	ErrInvalidInput = errors.New("invalid schedule input")

	// ErrDetectionDegraded marks a per-unit failure inside a batch; the
	// batch itself still completes.
	ErrDetectionDegraded = errors.New("detection degraded")

	// ErrResolutionInfeasible means no strategy could safely fix a
	// conflict. It is reported through the result, never thrown.
	ErrResolutionInfeasible = errors.New("resolution infeasible")

	// ErrStatisticsUnavailable is non-fatal; statistics default to empty.
	ErrStatisticsUnavailable = errors.New("statistics unavailable")
)

// InputValidationError reports malformed input: missing schedule data,
// out-of-range dates, or unknown employee/shift references.
type InputValidationError struct {
	Field  string
	Reason string
}

func (e *InputValidationError) Error() string {
	return fmt.Sprintf("invalid schedule input: %s: %s", e.Field, e.Reason)
}

func (e *InputValidationError) Unwrap() error { return ErrInvalidInput }

// DetectionError reports an algorithmic failure scoped to one employee or
// shift/date cell, with enough context to reproduce it.
type DetectionError struct {
	EmployeeID string
	ShiftID    string
	Date       string
	Cause      error
}

func (e *DetectionError) Error() string {
	return fmt.Sprintf("detection failed (employee=%s shift=%s date=%s): %v",
		e.EmployeeID, e.ShiftID, e.Date, e.Cause)
}

func (e *DetectionError) Unwrap() error { return ErrDetectionDegraded }
