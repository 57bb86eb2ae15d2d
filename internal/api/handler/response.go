package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"bank-records/internal/api/handler/dto"
	"bank-records/internal/pkg/apperrors"
)

const (
	MessageOK             = "Request processed successfully"
	MessageUpdateFailed   = "Update operation failed. Please try again or contact Dev team"
	MessageDeleteFailed   = "Delete operation failed. Please try again or contact Dev team"
	messageInternalServer = "An unexpected error occurred."
)

func decodeJSON(r *http.Request, v any) error {
	if r.Body == nil || r.Body == http.NoBody {
		return fmt.Errorf("%w: request body is required", apperrors.ErrInvalidArgument)
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("%w: malformed request body: %v", apperrors.ErrInvalidArgument, err)
	}
	return nil
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Default().Error("Failed to marshal JSON response", "error", err)
		http.Error(w, `{"errorCode":"INTERNAL_SERVER_ERROR","errorMessage":"Internal server error"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(response)
}

// respondError maps err onto a status and writes it in the error response shape. A
// duplicate customer is a client error, like a failed validation.
func respondError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	status, message := http.StatusInternalServerError, messageInternalServer
	var validationError *apperrors.ValidationError

	switch {
	case errors.As(err, &validationError):
		status, message = http.StatusBadRequest, validationError.Message
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrInvalidArgument):
		status, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, apperrors.ErrInternalConsistency):
		logger.ErrorContext(r.Context(), "Internal consistency failure", slog.Any("error", err), slog.String("path", r.URL.Path))
		message = err.Error()
	case errors.Is(err, apperrors.ErrAlreadyExists):
		status, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, apperrors.ErrNotFound):
		status, message = http.StatusNotFound, err.Error()
	case errors.Is(err, apperrors.ErrIdentityExhausted):
		logger.ErrorContext(r.Context(), "Could not issue a product identifier", slog.Any("error", err))
		status, message = http.StatusServiceUnavailable, err.Error()
	default:
		logger.ErrorContext(r.Context(), "Unhandled internal error", slog.Any("error", err), slog.String("path", r.URL.Path))
	}

	respondJSON(w, status, dto.NewErrorResponse(r.URL.Path, status, message))
}
