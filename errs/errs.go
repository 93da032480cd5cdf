// Package errs defines the error taxonomy shared by services and
// controllers: validation, not-found, authorization and conflict failures.
// None of them are retried; unexpected errors pass through untyped and map
// to a generic 500.
package errs

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// ValidationError reports missing or malformed required input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NotFoundError reports a referenced id that does not resolve.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// AuthorizationError reports a caller role or ownership mismatch.
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string { return e.Message }

// ConflictError reports a state clash such as a duplicate active booking.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

func Validation(msg string) error    { return &ValidationError{Message: msg} }
func NotFound(msg string) error      { return &NotFoundError{Message: msg} }
func Authorization(msg string) error { return &AuthorizationError{Message: msg} }
func Conflict(msg string) error      { return &ConflictError{Message: msg} }

func IsValidation(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}

func IsNotFound(err error) bool {
	var e *NotFoundError
	return errors.As(err, &e)
}

func IsAuthorization(err error) bool {
	var e *AuthorizationError
	return errors.As(err, &e)
}

func IsConflict(err error) bool {
	var e *ConflictError
	return errors.As(err, &e)
}

// HTTPStatus maps a taxonomy error to the HTTP status controllers respond
// with. Anything outside the taxonomy is a 500.
func HTTPStatus(err error) int {
	switch {
	case IsValidation(err):
		return fiber.StatusBadRequest
	case IsNotFound(err):
		return fiber.StatusNotFound
	case IsAuthorization(err):
		return fiber.StatusForbidden
	case IsConflict(err):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}
