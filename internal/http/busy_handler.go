package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/example/group-scheduler/internal/application"
)

type busyService interface {
	DeclareBusy(ctx context.Context, params application.DeclareBusyParams) (application.BusyInterval, error)
	DeleteBusy(ctx context.Context, principal application.Principal, intervalID string) error
	ListBusy(ctx context.Context, params application.ListBusyParams) ([]application.BusyInterval, error)
}

// BusyHandler serves unavailability endpoints.
type BusyHandler struct {
	service busyService
	logger  *slog.Logger
	respond responder
}

// NewBusyHandler constructs a BusyHandler backed by the given service.
func NewBusyHandler(service busyService, logger *slog.Logger) *BusyHandler {
	base := defaultLogger(logger)
	return &BusyHandler{service: service, logger: base, respond: responder{logger: base}}
}

type busyRequest struct {
	GroupID   string `json:"group_id"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type busyResponse struct {
	ID        string    `json:"id"`
	GroupID   string    `json:"group_id"`
	UserID    string    `json:"user_id"`
	Date      string    `json:"date"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	CreatedAt time.Time `json:"created_at"`
}

func toBusyResponse(interval application.BusyInterval) busyResponse {
	return busyResponse{
		ID:        interval.ID,
		GroupID:   interval.GroupID,
		UserID:    interval.UserID,
		Date:      interval.Date,
		StartTime: interval.StartTime,
		EndTime:   interval.EndTime,
		CreatedAt: interval.CreatedAt,
	}
}

// Declare handles POST /busy.
func (h *BusyHandler) Declare(w http.ResponseWriter, req *http.Request) {
	principal, ok := PrincipalFromContext(req.Context())
	if !ok {
		h.respond.writeError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
		return
	}

	var body busyRequest
	if err := decodeJSONBody(req, &body); err != nil {
		h.respond.badRequest(w, "request body must be valid JSON")
		return
	}

	interval, err := h.service.DeclareBusy(req.Context(), application.DeclareBusyParams{
		Principal: principal,
		Input: application.BusyInput{
			GroupID:   body.GroupID,
			Date:      body.Date,
			StartTime: body.StartTime,
			EndTime:   body.EndTime,
		},
	})
	if err != nil {
		h.respond.handleServiceError(w, err)
		return
	}

	logger := handlerLogger(req.Context(), h.logger, "busy", "declare")
	logger.Info("busy interval declared",
		slog.String("group_id", interval.GroupID),
		slog.String("date", interval.Date),
	)
	h.respond.writeJSON(w, http.StatusCreated, toBusyResponse(interval))
}

// List handles GET /busy?group_id=...&date_from=...&date_until=...
func (h *BusyHandler) List(w http.ResponseWriter, req *http.Request) {
	principal, ok := PrincipalFromContext(req.Context())
	if !ok {
		h.respond.writeError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
		return
	}

	query := req.URL.Query()
	intervals, err := h.service.ListBusy(req.Context(), application.ListBusyParams{
		Principal: principal,
		GroupID:   query.Get("group_id"),
		DateFrom:  query.Get("date_from"),
		DateUntil: query.Get("date_until"),
	})
	if err != nil {
		h.respond.handleServiceError(w, err)
		return
	}

	payload := make([]busyResponse, 0, len(intervals))
	for _, interval := range intervals {
		payload = append(payload, toBusyResponse(interval))
	}
	h.respond.writeJSON(w, http.StatusOK, payload)
}

// Delete handles DELETE /busy/{id}.
func (h *BusyHandler) Delete(w http.ResponseWriter, req *http.Request) {
	principal, ok := PrincipalFromContext(req.Context())
	if !ok {
		h.respond.writeError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
		return
	}
	intervalID, ok := busyIDFromContext(req.Context())
	if !ok {
		h.respond.badRequest(w, "missing busy interval id")
		return
	}

	if err := h.service.DeleteBusy(req.Context(), principal, intervalID); err != nil {
		h.respond.handleServiceError(w, err)
		return
	}
	h.respond.writeJSON(w, http.StatusNoContent, nil)
}
