package lead

import "errors"

var (
	// ErrNotReady means a required field is missing, so submission is inert.
	ErrNotReady = errors.New("lead form incomplete")
	// ErrSubmissionPending means the visitor already has a submission in flight.
	ErrSubmissionPending = errors.New("lead submission already pending")
	// ErrDelivery wraps any failure reported by the email-delivery service.
	ErrDelivery = errors.New("lead delivery failed")
	// ErrUnknownOption is returned for labels or values outside the catalog.
	ErrUnknownOption = errors.New("unknown option")
	// ErrUnknownField is returned when a toggle names no multi-select field.
	ErrUnknownField = errors.New("unknown field")
)
