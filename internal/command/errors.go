package command

import (
	"errors"
	"fmt"
)

// UserError is a failure caused by the request itself. Message is ready to
// show; Err is the roster error it was translated from.
type UserError struct {
	Err     error
	Message string
}

func (e *UserError) Error() string { return e.Message }

func (e *UserError) Unwrap() error { return e.Err }

// IsUserError reports whether err, or anything it wraps, is a *UserError.
func IsUserError(err error) bool {
	var ue *UserError
	return errors.As(err, &ue)
}

// Command layer errors not produced by the coordinator.
var (
	ErrNothingToEdit = errors.New("no field to edit")
	ErrNoKeywords    = errors.New("no search keywords")
)

func fail(err error, key string, args ...any) error {
	return &UserError{Err: err, Message: text(key, args...)}
}

// wrapSystem marks err as a failure the user cannot fix by changing the request.
func wrapSystem(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
