// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

var (
	// ErrInvalidArgument indicates malformed caller input. Fatal to the single
	// call; surfaced synchronously, never retried.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound indicates the requested document does not exist.
	ErrNotFound = errors.New("not found")

	// ErrStoreUnavailable indicates a store read or write failed. Retry policy
	// is a caller concern.
	ErrStoreUnavailable = errors.New("store unavailable")
)
