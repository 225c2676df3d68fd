package gateway

import "errors"

// Classification of gateway failures. Every call maps to exactly one of
// these (or a plain error for unclassified server statuses); callers branch
// with errors.Is. The wrapped text carries the server's own message when the
// body had one.
var (
	// ErrAuth: missing, expired or rejected bearer token.
	ErrAuth = errors.New("authentication failed")

	// ErrNotFound: the referenced order or note does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation: the server rejected the payload.
	ErrValidation = errors.New("validation failed")

	// ErrNetwork: the request never produced an HTTP response.
	ErrNetwork = errors.New("network failure")

	// ErrUnexpectedResponse: the body was not JSON or did not match the
	// documented shape. Surfaced loudly instead of defaulting fields.
	ErrUnexpectedResponse = errors.New("unexpected server response")
)
