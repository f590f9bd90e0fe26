// Package api talks to the Wekip HTTP API.
//
// Gateway is the low level surface with two entry points. Public sends a
// request without credentials. Private attaches a bearer token and, when the
// server answers 401, invokes the caller's onAuthFailure callback before the
// error is returned. That callback is the only place a session is ended
// automatically.
//
// Client layers the typed endpoints on top of a Gateway.
//
// Requests are never retried. Non-2xx answers surface as *Error, which also
// matches ErrUnauthorized for 401. Transport failures wrap ErrUnavailable.
package api
