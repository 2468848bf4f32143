// Package apperr carries the error taxonomy services return to the HTTP
// layer. Controllers translate the kind to a status code; services never
// touch status codes themselves.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrValidation = errors.New("validation failed")
	ErrForbidden  = errors.New("forbidden")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrTx         = errors.New("transaction failed")
)

func Validationf(format string, args ...any) error {
	return wrap(ErrValidation, format, args...)
}

func Forbiddenf(format string, args ...any) error {
	return wrap(ErrForbidden, format, args...)
}

func NotFoundf(format string, args ...any) error {
	return wrap(ErrNotFound, format, args...)
}

func Conflictf(format string, args ...any) error {
	return wrap(ErrConflict, format, args...)
}

func Txf(format string, args ...any) error {
	return wrap(ErrTx, format, args...)
}

func wrap(kind error, format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), kind)
}
