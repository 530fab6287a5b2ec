// Package authapi exposes the gatehouse account and session endpoints over
// HTTP: registration, session login/logout, profile lookup, and the
// password-reset pair.
//
// The package only marshals requests and maps strategy errors onto status
// codes; all authentication decisions live in the strategy and session
// packages.
package authapi
