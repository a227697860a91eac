package domain

import "errors"

// Pre-flight errors. They are reported together and block the request.
var (
	ErrEmptyRepoIdentifier = errors.New("Please enter a valid owner/repo.")                      //nolint:staticcheck // user-facing message
	ErrInvalidCommitCount  = errors.New("Please enter a number between 1 and 10000 for commits.") //nolint:staticcheck // user-facing message
)

// Post-flight errors.
var (
	// ErrCancelled is returned when the popup was torn down while a request was in flight.
	// It is never shown to the user.
	ErrCancelled = errors.New("request cancelled")

	// ErrNetwork covers transport failures and non-2xx responses.
	ErrNetwork = errors.New("network error")

	// ErrInvalidResponseShape is returned when the payload is not decodable
	// or lacks a required field.
	ErrInvalidResponseShape = errors.New("invalid response shape")
)

// Commit count bounds accepted by the backend.
const (
	MinCommitCount = 1
	MaxCommitCount = 10000
)
