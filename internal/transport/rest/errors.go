package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/coaching-backend/internal/domain"
)

// Error codes returned in the "code" field of error bodies.
const (
	codeValidation       = "VALIDATION"
	codeInvalidProvenance = "INVALID_PROVENANCE"
	codeNotFound         = "NOT_FOUND"
	codeUnauthorized     = "UNAUTHORIZED"
	codeForbidden        = "FORBIDDEN"
	codeConflict         = "CONFLICT"
	codeUnavailable      = "UNAVAILABLE"
	codeGeneratorFailed  = "GENERATOR_FAILED"
	codeInternal         = "INTERNAL"
)

type fieldErrorResponse struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error  string               `json:"error"`
	Code   string               `json:"code"`
	Fields []fieldErrorResponse `json:"fields,omitempty"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: message, Code: code})
}

// handleError maps domain errors onto HTTP responses. Only unexpected
// errors are logged; they never leak their message to the caller.
func handleError(log *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	var (
		ve *domain.ValidationError
		pe *domain.ProvenanceError
	)

	switch {
	case errors.As(err, &ve):
		fields := make([]fieldErrorResponse, len(ve.Errors))
		for i, fe := range ve.Errors {
			fields[i] = fieldErrorResponse{Field: fe.Field, Message: fe.Message}
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: ve.Error(), Code: codeValidation, Fields: fields})
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, codeValidation, err.Error())
	case errors.As(err, &pe):
		writeError(w, http.StatusUnprocessableEntity, codeInvalidProvenance, pe.Error())
	case errors.Is(err, domain.ErrInvalidProvenance):
		writeError(w, http.StatusUnprocessableEntity, codeInvalidProvenance, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, codeNotFound, "not found")
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, codeUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, codeForbidden, "forbidden")
	case errors.Is(err, domain.ErrAlreadyExists), errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, codeConflict, err.Error())
	case errors.Is(err, domain.ErrGeneratorFailed):
		log.WarnContext(r.Context(), "generator failed", slog.String("error", err.Error()))
		writeError(w, http.StatusBadGateway, codeGeneratorFailed, "generator failed")
	case errors.Is(err, domain.ErrUnavailable),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		log.WarnContext(r.Context(), "store unavailable", slog.String("error", err.Error()))
		w.Header().Set("Retry-After", "1")
		writeError(w, http.StatusServiceUnavailable, codeUnavailable, "temporarily unavailable, retry later")
	default:
		log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, codeInternal, "internal server error")
	}
}
