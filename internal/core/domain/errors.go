package domain

import "errors"

// Error kinds. Every error the core returns to the transport layer unwraps to
// exactly one of these, so callers classify with errors.Is.
var (
	ErrValidation     = errors.New("validation failed")
	ErrConflict       = errors.New("conflict")
	ErrAuthentication = errors.New("authentication failed")
	ErrNotFound       = errors.New("not found")
)

// Error is a client-facing error carrying one of the kinds above.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return e.Kind }

var (
	ErrUsernameTaken      = &Error{Kind: ErrConflict, Msg: "username already exists"}
	ErrInvalidCredentials = &Error{Kind: ErrAuthentication, Msg: "invalid credentials"}
	ErrMissingCredential  = &Error{Kind: ErrAuthentication, Msg: "missing credential"}
	ErrInvalidToken       = &Error{Kind: ErrAuthentication, Msg: "invalid or expired token"}
	ErrUserNotFound       = &Error{Kind: ErrNotFound, Msg: "user not found"}
	ErrTaskNotFound       = &Error{Kind: ErrNotFound, Msg: "task not found"}
)

// Validation returns a ValidationError with the given message.
func Validation(msg string) error {
	return &Error{Kind: ErrValidation, Msg: msg}
}
