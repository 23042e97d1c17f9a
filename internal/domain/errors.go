package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrConfigurationMissing is returned when a credential or service is not configured.
	ErrConfigurationMissing = errors.New("configuration missing")
	// ErrValidationFailed indicates an empty or invalid required input.
	ErrValidationFailed = errors.New("validation failed")
	// ErrKeywordMissing is the validation failure for a blank idea keyword.
	ErrKeywordMissing = fmt.Errorf("%w: keyword is empty", ErrValidationFailed)
	// ErrTransportFailure wraps network errors and non-success HTTP statuses.
	ErrTransportFailure = errors.New("transport failure")
	// ErrMalformedResponse indicates a response body with an unexpected shape.
	ErrMalformedResponse = errors.New("malformed response")
	// ErrNotReady is returned when identity or the store has not been initialized.
	ErrNotReady = errors.New("service not ready")
	// ErrRequestPending rejects a request while an identical one is outstanding.
	ErrRequestPending = errors.New("request already pending")
	// ErrInvalidTransition is returned for operations not valid in the current phase.
	ErrInvalidTransition = errors.New("invalid transition")
	// ErrUnknownActivity indicates an unsupported widget name.
	ErrUnknownActivity = errors.New("unknown activity")
)

// UserMessage renders err as the short message shown next to the triggering control.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrConfigurationMissing):
		return "Google API key not configured. Please check your environment variables."
	case errors.Is(err, ErrKeywordMissing):
		return "Please enter a keyword to generate an idea!"
	case errors.Is(err, ErrValidationFailed):
		return "Please check your input and try again."
	case errors.Is(err, ErrMalformedResponse):
		return "Could not generate a response. Please try again!"
	case errors.Is(err, ErrTransportFailure):
		return "Error contacting the service. Please check your connection or try again later."
	case errors.Is(err, ErrNotReady):
		return "App is not ready to submit score. Please try again."
	case errors.Is(err, ErrRequestPending):
		return "Please wait for the current request to finish."
	case errors.Is(err, ErrInvalidTransition):
		return "That action is not available right now."
	case errors.Is(err, ErrUnknownActivity):
		return "Unknown activity."
	}
	return "Something went wrong. Please try again."
}
