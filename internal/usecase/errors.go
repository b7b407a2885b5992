package usecase

import (
	"errors"
	"fmt"
	"net/http"

	"restaurant/internal/repository"
)

// Error with the HTTP status the handler should answer with.
type HTTPError struct {
	Status  int
	Message string
	// request field at fault, validation errors only
	Field string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func NewFieldError(field string, message string) error {
	return &HTTPError{
		Status:  http.StatusBadRequest,
		Message: message,
		Field:   field,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// repository errors -> 404/409, anything else is passed through as a 500
func repoError(err error, notFound string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return NewHTTPError(http.StatusNotFound, notFound)
	case errors.Is(err, repository.ErrConflict):
		return NewHTTPError(http.StatusConflict, "already exists")
	default:
		return err
	}
}
