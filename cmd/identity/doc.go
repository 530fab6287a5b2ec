// Package identity is the principal boundary of gatehouse.
//
// The authentication core never owns user records; it references principals
// by id through the Store interface defined here. The package also ships an
// in-memory Store so the binary and the test suite run without external
// state.
//
// This package is intentionally dependency-light and security-first.
package identity
