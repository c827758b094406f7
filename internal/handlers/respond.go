package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/AnshRaj112/natpac-travel-backend/internal/errs"
	"github.com/AnshRaj112/natpac-travel-backend/pkg/utils"
)

const maxBodyBytes = 1 << 20

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// decodeJSON reads one JSON object from the body. Any decode failure is a
// client error.
func decodeJSON(r *http.Request, w http.ResponseWriter, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return utils.Missing("body", "Request body is required")
		}
		return utils.Invalid("body", "Invalid request body")
	}
	return nil
}

// fail maps service errors to a status code and body. Unexpected errors are
// logged and answered with a generic 500.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	var ve *utils.ValidationError
	switch {
	case errors.As(err, &ve):
		writeError(w, http.StatusBadRequest, ve.Message)
	case errors.Is(err, errs.ErrMissingField), errors.Is(err, errs.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, errs.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, errs.ErrInvalidToken), errors.Is(err, errs.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "Invalid or expired token")
	case errors.Is(err, errs.ErrNotFound):
		writeError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, errs.ErrDuplicateEmail):
		writeError(w, http.StatusConflict, "User already exists with this email")
	case errors.Is(err, errs.ErrDuplicateReference):
		writeError(w, http.StatusConflict, "Booking reference already exists, please retry")
	case errors.Is(err, errs.ErrUnavailable):
		h.log.Warn("dependency unavailable", zap.String("path", r.URL.Path), zap.Error(err))
		writeJSON(w, http.StatusServiceUnavailable, ErrorResponse{
			Error:   "Service temporarily unavailable",
			Message: "The database cannot be reached right now, please try again later",
		})
	default:
		h.log.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
