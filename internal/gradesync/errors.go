package gradesync

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/gradewise/internal/api"
	"github.com/abhisek/gradewise/internal/weights"
)

var (
	// ErrBusy is returned when a save or distribute is already in flight.
	ErrBusy = errors.New("a save is already in progress")

	// ErrDeclined is returned when the user does not confirm auto-distribute.
	ErrDeclined = errors.New("auto-distribute cancelled")

	// ErrNotLoaded is returned for actions that need a loaded tree.
	ErrNotLoaded = errors.New("grading structure not loaded")

	// ErrClosed is returned once the adapter has been closed.
	ErrClosed = errors.New("adapter closed")

	// ErrStale marks a response that arrived after a newer load or after
	// Close. Its result was discarded.
	ErrStale = errors.New("response superseded")
)

// RangeError is a passing threshold outside 0-100.
type RangeError struct {
	Value float64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("passing threshold %s%% is outside 0-100", weights.FormatPercent(e.Value))
}

// NeedsSignIn reports whether err means the user must (re)authenticate.
func NeedsSignIn(err error) bool {
	return errors.Is(err, api.ErrNoCredential) || errors.Is(err, api.ErrUnauthorized)
}

// Describe maps an error to the message shown to the user.
func Describe(err error) string {
	if err == nil {
		return ""
	}

	var gate *weights.GateError
	var validation *api.ValidationError
	var rangeErr *RangeError

	switch {
	case errors.As(err, &gate):
		return fmt.Sprintf("Cannot save: weights total %s%% (%s%%)",
			weights.FormatPercent(gate.Total), signedPercent(gate.Delta()))
	case errors.Is(err, api.ErrNoCredential):
		return "Please sign in to edit grading weights."
	case errors.Is(err, api.ErrUnauthorized):
		return "Your session has expired. Please sign in again."
	case errors.As(err, &validation):
		if validation.Message != "" {
			return validation.Message
		}
		return "The server rejected the change."
	case errors.Is(err, api.ErrForbidden):
		return "You do not have permission to change grading weights."
	case errors.Is(err, api.ErrNotFound):
		return "Subject not found."
	case errors.As(err, &rangeErr):
		return "Passing threshold must be between 0 and 100."
	case errors.Is(err, ErrBusy):
		return "A save is already in progress."
	case errors.Is(err, ErrDeclined):
		return "Auto-distribute cancelled."
	case errors.Is(err, weights.ErrFixedNode):
		return "This weight is fixed and cannot be changed."
	case errors.Is(err, weights.ErrNodeNotFound):
		return "That item no longer exists. Reload and try again."
	case errors.Is(err, ErrNotLoaded):
		return "Grading structure is not loaded yet."
	case errors.Is(err, context.DeadlineExceeded):
		return "The request timed out. Please try again."
	default:
		return "Request failed. Please try again."
	}
}

func signedPercent(d float64) string {
	if d > 0 {
		return "+" + weights.FormatPercent(d)
	}
	if d < 0 {
		return "-" + weights.FormatPercent(-d)
	}
	return "0"
}
