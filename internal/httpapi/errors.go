package httpapi

import (
	"errors"
	"net/http"

	"github.com/bricknote/ledger/internal/errs"
)

// errorResponse is the standard error payload for the API.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeErr(w http.ResponseWriter, status int, msg, code string) {
	toJSON(w, status, errorResponse{Error: msg, Code: code})
}

func badRequest(w http.ResponseWriter, msg string) { writeErr(w, http.StatusBadRequest, msg, "") }
func notFound(w http.ResponseWriter)               { writeErr(w, http.StatusNotFound, "not_found", "not_found") }

// writeDomainErr maps sentinel errors to status codes and stable codes.
func writeDomainErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errs.ErrValidation):
		writeErr(w, http.StatusBadRequest, err.Error(), "validation_error")
	case errors.Is(err, errs.ErrInvalidPeriod):
		writeErr(w, http.StatusBadRequest, err.Error(), "invalid_period")
	case errors.Is(err, errs.ErrNotFound):
		notFound(w)
	default:
		writeErr(w, http.StatusInternalServerError, "internal error", "internal")
	}
}
