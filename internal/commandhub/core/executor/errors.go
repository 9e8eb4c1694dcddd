package executor

import "errors"

// PublicError carries a message that is safe to show to the operator as is,
// e.g. "User not found". Other errors are reported with the action's generic
// failure text and only logged in full.
type PublicError struct {
	Message string
	Err     error
}

// Public returns a PublicError with msg.
func Public(msg string) error {
	return &PublicError{Message: msg}
}

// WrapPublic returns a PublicError with msg that wraps err.
func WrapPublic(msg string, err error) error {
	return &PublicError{Message: msg, Err: err}
}

func (e *PublicError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *PublicError) Unwrap() error {
	return e.Err
}

func publicMessage(err error) (string, bool) {
	var pe *PublicError
	if errors.As(err, &pe) {
		return pe.Message, true
	}
	return "", false
}
