package authapi

import "gatehouse/cmd/security/password"

// Config carries the HTTP-surface knobs for the auth endpoints.
type Config struct {
	// MaxBodyBytes caps every decoded request body.
	MaxBodyBytes int64

	// CookiePath scopes the session cookie; "/" when empty.
	CookiePath string

	// CookieSecure marks the session cookie Secure. Keep true anywhere TLS
	// terminates in front of the process.
	CookieSecure bool

	// PasswordPolicy is applied to the plain secret at registration, before
	// it reaches the KDF.
	PasswordPolicy password.Policy
}

// DefaultConfig returns the production baseline.
func DefaultConfig() Config {
	return Config{
		MaxBodyBytes:   1 << 16, // 64 KiB; credential payloads are tiny
		CookiePath:     "/",
		CookieSecure:   true,
		PasswordPolicy: password.DefaultPolicy(),
	}
}
