// Package apperr defines the error taxonomy shared by services and
// handlers: validation, not-found, invalid-state, conflict and
// external-service failures, each carrying a user-facing message.
package apperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type ValidationError struct{ Msg string }

func (e *ValidationError) Error() string { return e.Msg }

func Validation(msg string) error { return &ValidationError{Msg: msg} }

type NotFoundError struct{ Msg string }

func (e *NotFoundError) Error() string { return e.Msg }

func NotFound(msg string) error { return &NotFoundError{Msg: msg} }

// InvalidStateError names the precondition that failed, e.g.
// "bill cannot be approved in its current status".
type InvalidStateError struct{ Msg string }

func (e *InvalidStateError) Error() string { return e.Msg }

func InvalidState(msg string) error { return &InvalidStateError{Msg: msg} }

// ConflictError marks a lost race, e.g. two concurrent reservations of
// the same bill.
type ConflictError struct{ Msg string }

func (e *ConflictError) Error() string { return e.Msg }

func Conflict(msg string) error { return &ConflictError{Msg: msg} }

// ExternalServiceError wraps a Lightning or storage failure with a
// sanitized user-facing message; the raw provider error stays in Err
// for logs only.
type ExternalServiceError struct {
	Msg string
	Err error
}

func (e *ExternalServiceError) Error() string { return e.Msg }
func (e *ExternalServiceError) Unwrap() error { return e.Err }

func External(msg string, err error) error {
	return &ExternalServiceError{Msg: msg, Err: err}
}

// WriteJSON converts err to an HTTP status and JSON body. Anything
// outside the taxonomy becomes a generic 500 so provider internals never
// reach the client.
func WriteJSON(c *gin.Context, err error) {
	var (
		validation *ValidationError
		notFound   *NotFoundError
		state      *InvalidStateError
		conflict   *ConflictError
		external   *ExternalServiceError
	)
	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Msg})
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFound.Msg})
	case errors.As(err, &state):
		c.JSON(http.StatusBadRequest, gin.H{"error": state.Msg})
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, gin.H{"error": conflict.Msg})
	case errors.As(err, &external):
		c.JSON(http.StatusBadGateway, gin.H{"error": external.Msg})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
