package httperr

import (
	"errors"
	"net/http"

	"github.com/corray333/pos-core/internal/service/errs"
)

// Write maps service error kinds onto HTTP status codes.
func Write(w http.ResponseWriter, err error) {
	http.Error(w, err.Error(), Status(err))
}

// Status returns the HTTP status code for a service error.
func Status(err error) int {
	switch {
	case errors.Is(err, errs.ErrValidation), errors.Is(err, errs.ErrEmptyOrder):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrConflict), errors.Is(err, errs.ErrNoOrders):
		return http.StatusConflict
	case errors.Is(err, errs.ErrUnavailable):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
