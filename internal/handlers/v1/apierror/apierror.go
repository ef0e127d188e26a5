// Package apierror maps service errors onto HTTP responses.
package apierror

import (
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/spendwise/internal/service"
)

// From picks the status for err and wraps it with message.
func From(err error, message string) huma.StatusError {
	return huma.NewError(Status(err), message, err)
}

func Status(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrDuplicateBudget):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
