// Package client is a typed HTTP client for the task manager REST API.
//
// Every call that needs authentication takes an explicit Session obtained
// from Register or Login; the client itself holds no credentials and is
// safe for concurrent use.
//
// Non-2xx responses are returned as *APIError, which unwraps to the
// matching domain error kind so callers can write
//
//	if errors.Is(err, domain.ErrNotFound) { ... }
package client
