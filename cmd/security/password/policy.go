package password

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Policy controls what secrets are accepted at registration. Hashing itself
// only enforces the anti-DoS length cap; the policy is the user-facing rule
// set applied before a secret ever reaches the KDF.
type Policy struct {
	MinLength int
	MaxLength int
	// If true, enable an extra, minimal weak-pattern rejection.
	RejectVeryWeak bool
}

// DefaultPolicy returns the baseline registration policy.
func DefaultPolicy() Policy {
	return Policy{
		MinLength:      8,
		MaxLength:      maxPasswordRunes,
		RejectVeryWeak: false,
	}
}

// Validate checks secret against the policy. It does not mutate input.
func (p Policy) Validate(secret string) error {
	// Count characters (runes), not bytes, to be user-friendly.
	n := utf8.RuneCountInString(secret)

	if n == 0 {
		return ErrPasswordEmpty
	}
	if n < p.MinLength {
		return ErrPasswordTooShort
	}
	if p.MaxLength > 0 && n > p.MaxLength {
		return ErrPasswordTooLong
	}

	if p.RejectVeryWeak && looksVeryWeak(secret) {
		return ErrWeakPassword
	}

	return nil
}

// looksVeryWeak is intentionally minimal and conservative; it is not a
// zxcvbn-style strength estimator.
func looksVeryWeak(pw string) bool {
	s := strings.TrimSpace(pw)
	if s == "" {
		return true
	}

	// Reject if all same char.
	allSame := true
	var first rune
	for i, r := range s {
		if i == 0 {
			first = r
			continue
		}
		if r != first {
			allSame = false
			break
		}
	}
	if allSame {
		return true
	}

	// Reject if it's only digits and short-ish (common PIN-like).
	onlyDigits := true
	for _, r := range s {
		if !unicode.IsDigit(r) {
			onlyDigits = false
			break
		}
	}
	if onlyDigits && utf8.RuneCountInString(s) < 12 {
		return true
	}

	// Reject common trivial patterns.
	switch strings.ToLower(s) {
	case "password", "password123", "123456", "123456789", "qwerty", "qwerty123", "11111111":
		return true
	}

	return false
}
