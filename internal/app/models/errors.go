package models

import (
	"errors"
	"fmt"
)

// Domain specific errors for the planning session lifecycle.
var (
	ErrNotFound           = errors.New("requested item not found")
	ErrBadRequest         = errors.New("bad request")
	ErrValidation         = errors.New("validation failed")
	ErrSessionNotFound    = errors.New("planning session not found or expired")
	ErrGenerationInFlight = errors.New("itinerary generation already in progress for this session")
	ErrRemoteCallFailure  = errors.New("remote service call failed")
	ErrEmptyTripText      = errors.New("trip description cannot be empty")
	ErrWheelSpinning      = errors.New("wheel is already spinning")
)

// ValidationError names the first field that failed pre-flight validation.
// It blocks the request locally; nothing is sent to the itinerary service.
type ValidationError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
