// Package strategy implements gatehouse's pluggable request-authentication
// policies.
//
// A Strategy answers two questions for a request: does this path need
// authentication at all (path-exclusion matching), and if so, which principal
// does the request carry. The three variants (NoAuth, Basic, and Session) are
// selected once at construction from configuration, never by runtime type
// inspection.
//
// Resolution failures (malformed header, bad base64, unknown session) are
// never faults: they resolve to "no principal" and the request fails closed.
package strategy
