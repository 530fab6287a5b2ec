package strategy

import "errors"

var (
	// ErrInvalidCredentials is returned by Login when no candidate principal
	// verifies against the supplied secret. Unknown email and wrong password
	// are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnknownPrincipal is returned when a reset is requested for an email
	// with no matching record.
	ErrUnknownPrincipal = errors.New("unknown principal")

	// ErrUnknownMode is returned when configuration names an authentication
	// mode this build does not provide.
	ErrUnknownMode = errors.New("unknown auth mode")
)
