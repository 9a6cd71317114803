package workflow

import (
	"errors"

	"boxoffice/internal/inventory"
)

// Local validation failures. Their messages are shown to the operator as-is.
var (
	ErrInvalidQuantity     = errors.New("Please enter a valid quantity.")
	ErrInvalidPhone        = errors.New("Please enter a valid 10-digit phone number.")
	ErrEmptyTicketHash     = errors.New("Please enter a ticket hash.")
	ErrSponsorNameRequired = errors.New("Sponsor name is required")
	ErrUnknownTier         = errors.New("Please select a ticket tier.")
)

var (
	// ErrInFlight is returned when a primary control is pressed while its
	// previous call is still running. Nothing is sent.
	ErrInFlight = errors.New("workflow: request already in flight")
	// ErrStaleDialog is returned for a dialog that is no longer on screen.
	ErrStaleDialog = errors.New("workflow: dialog is no longer open")
	// ErrWrongDialog is returned when a dialog is submitted to a flow that
	// did not open it.
	ErrWrongDialog = errors.New("workflow: dialog belongs to another flow")

	ErrFormClosed   = errors.New("workflow: create-event form is not open")
	ErrUnknownEvent = errors.New("workflow: event is not in the current view")
)

// ValidationError is a create-event form problem found before submission.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(msg string) error {
	return &ValidationError{Message: msg}
}

// IsLocal reports whether err was raised by local validation and therefore
// never reached the remote service.
func IsLocal(err error) bool {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr),
		errors.Is(err, ErrInvalidQuantity),
		errors.Is(err, ErrInvalidPhone),
		errors.Is(err, ErrEmptyTicketHash),
		errors.Is(err, ErrSponsorNameRequired),
		errors.Is(err, ErrUnknownTier),
		errors.Is(err, inventory.ErrSeatSumMismatch),
		errors.Is(err, inventory.ErrNothingToAllocate),
		errors.Is(err, inventory.ErrTooManySeats):
		return true
	}
	return false
}
