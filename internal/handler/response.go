package handler

// Response helpers. Every handler sends JSON through writeJSON and every
// error through writeError — this is the single point where the error
// taxonomy becomes HTTP status codes, and the only shape a client ever sees
// for a failure is {"error":"<message>"}.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sakif/jobtracker/internal/apperror"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeJSON sends a JSON response with the given status code. Headers and
// status must be written before the body; once Encode writes, they're gone.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Headers already sent — nothing left to do but log it.
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeError maps a domain error to an HTTP status and sends it.
//
//	ErrUnauthenticated → 401
//	ErrNotFound        → 404
//	ErrValidation      → 400
//	ErrDuplicate       → 400
//	anything else      → 500, generic body
//
// For known kinds the AppError's message is the body — it was written for
// the client. Anything unrecognized is logged server-side with full detail
// and answered with a fixed generic message: raw errors can carry SQL text
// or file paths and must never reach the client.
func writeError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		status := 0

		switch {
		case errors.Is(err, apperror.ErrUnauthenticated):
			status = http.StatusUnauthorized
		case errors.Is(err, apperror.ErrNotFound):
			status = http.StatusNotFound
		case errors.Is(err, apperror.ErrValidation):
			status = http.StatusBadRequest
		case errors.Is(err, apperror.ErrDuplicate):
			status = http.StatusBadRequest
		}

		if status != 0 {
			writeJSON(w, status, ErrorResponse{Error: appErr.Message})
			return
		}
	}

	logger.Error("internal error", slog.String("error", err.Error()))
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error: "Something went wrong, try again later",
	})
}
