package token

import "errors"

// ErrTooShort is returned when a caller requests fewer random bytes than the
// enforced minimum.
var ErrTooShort = errors.New("token entropy below minimum")
