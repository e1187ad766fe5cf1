package admin

import "errors"

var (
	ErrNotConfigured = errors.New("master password is not configured")
	ErrInvalidAuth   = errors.New("invalid master password")
	ErrInvalidInput  = errors.New("invalid input")
	ErrUnsupported   = errors.New("unsupported kdf")
)
