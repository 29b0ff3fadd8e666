package monitor

import "errors"

// Domain-specific errors for sensor ingestion and command relay.
// Use errors.Is() to check for these errors in calling code.
var (
	// ErrMalformedPayload is returned when a sensor message cannot be decoded.
	// The ingestor skips the update; no state changes.
	ErrMalformedPayload = errors.New("monitor: malformed sensor payload")

	// ErrUnknownCommand is returned when the relay is asked to send a token
	// outside the control vocabulary.
	ErrUnknownCommand = errors.New("monitor: unknown control command")
)
