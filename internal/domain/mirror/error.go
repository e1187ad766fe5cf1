package mirror

import "errors"

var (
	// ErrNotFound is an authoritative answer: the mirror has no such key.
	ErrNotFound = errors.New("license not found in mirror")
	// ErrUnavailable is transient and worth retrying.
	ErrUnavailable  = errors.New("mirror unavailable")
	ErrInvalidInput = errors.New("invalid input")
)
