package password

import "errors"

// Public, stable errors for callers.
var (
	ErrPasswordEmpty    = errors.New("password empty")
	ErrPasswordTooShort = errors.New("password too short")
	ErrPasswordTooLong  = errors.New("password too long")
	ErrWeakPassword     = errors.New("password too weak")
	ErrInvalidHash      = errors.New("invalid password hash")
)
