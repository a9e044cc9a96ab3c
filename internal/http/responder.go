package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/example/group-scheduler/internal/application"
)

type errorResponse struct {
	ErrorCode string            `json:"error_code"`
	Message   string            `json:"message"`
	Errors    map[string]string `json:"errors,omitempty"`
}

type responder struct {
	logger *slog.Logger
}

func (r responder) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil && r.logger != nil {
		r.logger.Error("failed to encode response", slog.String("error", err.Error()))
	}
}

func (r responder) writeError(w http.ResponseWriter, status int, code, message string) {
	r.writeJSON(w, status, errorResponse{ErrorCode: code, Message: message})
}

func (r responder) writeValidationError(w http.ResponseWriter, verr *application.ValidationError) {
	r.writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
		ErrorCode: "validation_failed",
		Message:   "one or more fields are invalid",
		Errors:    verr.FieldErrors,
	})
}

// handleServiceError translates application errors into HTTP responses.
func (r responder) handleServiceError(w http.ResponseWriter, err error) {
	var verr *application.ValidationError
	switch {
	case errors.As(err, &verr):
		r.writeValidationError(w, verr)
	case errors.Is(err, application.ErrInvalidCredentials):
		r.writeError(w, http.StatusUnauthorized, "invalid_credentials", "email or password is incorrect")
	case errors.Is(err, application.ErrUnauthorized):
		r.writeError(w, http.StatusForbidden, "forbidden", "you do not have permission to perform this action")
	case errors.Is(err, application.ErrNotFound):
		r.writeError(w, http.StatusNotFound, "not_found", "the requested resource was not found")
	case errors.Is(err, application.ErrAlreadyExists):
		r.writeError(w, http.StatusConflict, "already_exists", "the resource already exists")
	case errors.Is(err, application.ErrInviteExpired):
		r.writeError(w, http.StatusGone, "invite_expired", "the invite link has expired")
	case errors.Is(err, application.ErrInviteRevoked):
		r.writeError(w, http.StatusGone, "invite_revoked", "the invite link is no longer active")
	default:
		if r.logger != nil {
			r.logger.Error("unexpected service error", slog.String("error", err.Error()))
		}
		r.writeError(w, http.StatusInternalServerError, "internal_error", "an unexpected error occurred")
	}
}

func (r responder) badRequest(w http.ResponseWriter, message string) {
	r.writeError(w, http.StatusBadRequest, "bad_request", message)
}

func decodeJSONBody(req *http.Request, dst any) error {
	return json.NewDecoder(req.Body).Decode(dst)
}
