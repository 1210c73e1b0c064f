// Package errs holds the error categories shared by all pipeline stages.
// Stages wrap these sentinels with fmt.Errorf("...: %w", ...) so callers can
// classify failures with errors.Is without depending on provider packages.
package errs

import "errors"

var (
	// ErrValidation means bad or missing input, detected before any network call.
	ErrValidation = errors.New("invalid input")

	// ErrNotFound means the query resolved to nothing (e.g. unknown place name).
	ErrNotFound = errors.New("not found")

	// ErrTransport means a network or provider failure after the transport
	// layer's own retries were exhausted.
	ErrTransport = errors.New("transport failure")

	// ErrAuth means a missing or rejected delivery credential.
	ErrAuth = errors.New("authentication failure")

	// ErrRecipientNotFound means the recipient id could not be resolved.
	ErrRecipientNotFound = errors.New("recipient not found")

	// ErrPermissionDenied means the recipient cannot be messaged.
	ErrPermissionDenied = errors.New("permission denied")
)
