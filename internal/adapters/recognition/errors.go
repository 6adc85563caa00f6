package recognition

import "errors"

// Sentinel kinds for recognition errors.
var (
	// ErrMissingCredential means no API key is configured. It is raised
	// before any network I/O and fails the whole batch, not one image.
	ErrMissingCredential = errors.New("recognition api key is not configured")

	// ErrTransport covers network failures and non-success statuses.
	ErrTransport = errors.New("oracle request failed")

	// ErrMalformedAnswer means the response envelope lacked the expected
	// first-choice message shape.
	ErrMalformedAnswer = errors.New("oracle response malformed")
)
