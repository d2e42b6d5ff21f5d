// Package errs holds the two recoverable error kinds returned by the
// repositories. Any other error coming out of a repository is a store or
// connectivity failure and should be treated as a server error.
package errs

import (
	"errors"
	"fmt"
)

// BadRequestError is returned when the caller supplied input the store cannot
// act on: an empty update, an unknown filter key, or a create that collides
// with an existing row.
type BadRequestError struct {
	Message string
}

func (e *BadRequestError) Error() string {
	return e.Message
}

// NotFoundError is returned when a get, update or remove targets a key that
// does not exist.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func BadRequest(format string, args ...interface{}) error {
	return &BadRequestError{Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...interface{}) error {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

func IsBadRequest(err error) bool {
	var e *BadRequestError
	return errors.As(err, &e)
}

func IsNotFound(err error) bool {
	var e *NotFoundError
	return errors.As(err, &e)
}
