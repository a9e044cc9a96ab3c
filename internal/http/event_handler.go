package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/example/group-scheduler/internal/application"
)

type eventService interface {
	CreateEvent(ctx context.Context, params application.CreateEventParams) (application.Event, error)
	UpdateEvent(ctx context.Context, params application.UpdateEventParams) (application.Event, error)
	DeleteEvent(ctx context.Context, principal application.Principal, eventID string) error
	GetEvent(ctx context.Context, principal application.Principal, eventID string) (application.Event, error)
	ListEvents(ctx context.Context, params application.ListEventsParams) ([]application.Event, error)
}

// EventHandler serves event CRUD endpoints.
type EventHandler struct {
	service eventService
	logger  *slog.Logger
	respond responder
}

// NewEventHandler constructs an EventHandler backed by the given service.
func NewEventHandler(service eventService, logger *slog.Logger) *EventHandler {
	base := defaultLogger(logger)
	return &EventHandler{service: service, logger: base, respond: responder{logger: base}}
}

type eventRequest struct {
	GroupID     string    `json:"group_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
}

type eventResponse struct {
	ID          string    `json:"id"`
	GroupID     string    `json:"group_id"`
	CreatorID   string    `json:"creator_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toEventResponse(event application.Event) eventResponse {
	return eventResponse{
		ID:          event.ID,
		GroupID:     event.GroupID,
		CreatorID:   event.CreatorID,
		Title:       event.Title,
		Description: event.Description,
		Start:       event.Start,
		End:         event.End,
		CreatedAt:   event.CreatedAt,
		UpdatedAt:   event.UpdatedAt,
	}
}

func (h *EventHandler) principal(w http.ResponseWriter, req *http.Request) (application.Principal, bool) {
	principal, ok := PrincipalFromContext(req.Context())
	if !ok {
		h.respond.writeError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
	}
	return principal, ok
}

// Create handles POST /events.
func (h *EventHandler) Create(w http.ResponseWriter, req *http.Request) {
	principal, ok := h.principal(w, req)
	if !ok {
		return
	}

	var body eventRequest
	if err := decodeJSONBody(req, &body); err != nil {
		h.respond.badRequest(w, "request body must be valid JSON")
		return
	}

	event, err := h.service.CreateEvent(req.Context(), application.CreateEventParams{
		Principal: principal,
		Input: application.EventInput{
			GroupID:     body.GroupID,
			Title:       body.Title,
			Description: body.Description,
			Start:       body.Start,
			End:         body.End,
		},
	})
	if err != nil {
		h.respond.handleServiceError(w, err)
		return
	}

	logger := handlerLogger(req.Context(), h.logger, "event", "create")
	logger.Info("event created",
		slog.String("event_id", event.ID),
		slog.String("group_id", event.GroupID),
	)
	h.respond.writeJSON(w, http.StatusCreated, toEventResponse(event))
}

// List handles GET /events?group_id=...&starts_after=...&starts_until=...
func (h *EventHandler) List(w http.ResponseWriter, req *http.Request) {
	principal, ok := h.principal(w, req)
	if !ok {
		return
	}

	query := req.URL.Query()
	params := application.ListEventsParams{
		Principal: principal,
		GroupID:   query.Get("group_id"),
	}
	if value := query.Get("starts_after"); value != "" {
		parsed, err := time.Parse(time.RFC3339, value)
		if err != nil {
			h.respond.badRequest(w, "starts_after must be an RFC 3339 timestamp")
			return
		}
		params.StartsAfter = &parsed
	}
	if value := query.Get("starts_until"); value != "" {
		parsed, err := time.Parse(time.RFC3339, value)
		if err != nil {
			h.respond.badRequest(w, "starts_until must be an RFC 3339 timestamp")
			return
		}
		params.StartsUntil = &parsed
	}

	events, err := h.service.ListEvents(req.Context(), params)
	if err != nil {
		h.respond.handleServiceError(w, err)
		return
	}

	payload := make([]eventResponse, 0, len(events))
	for _, event := range events {
		payload = append(payload, toEventResponse(event))
	}
	h.respond.writeJSON(w, http.StatusOK, payload)
}

// Get handles GET /events/{id}.
func (h *EventHandler) Get(w http.ResponseWriter, req *http.Request) {
	principal, ok := h.principal(w, req)
	if !ok {
		return
	}
	eventID, ok := eventIDFromContext(req.Context())
	if !ok {
		h.respond.badRequest(w, "missing event id")
		return
	}

	event, err := h.service.GetEvent(req.Context(), principal, eventID)
	if err != nil {
		h.respond.handleServiceError(w, err)
		return
	}
	h.respond.writeJSON(w, http.StatusOK, toEventResponse(event))
}

// Update handles PUT /events/{id}.
func (h *EventHandler) Update(w http.ResponseWriter, req *http.Request) {
	principal, ok := h.principal(w, req)
	if !ok {
		return
	}
	eventID, ok := eventIDFromContext(req.Context())
	if !ok {
		h.respond.badRequest(w, "missing event id")
		return
	}

	var body eventRequest
	if err := decodeJSONBody(req, &body); err != nil {
		h.respond.badRequest(w, "request body must be valid JSON")
		return
	}

	event, err := h.service.UpdateEvent(req.Context(), application.UpdateEventParams{
		Principal: principal,
		EventID:   eventID,
		Input: application.EventInput{
			GroupID:     body.GroupID,
			Title:       body.Title,
			Description: body.Description,
			Start:       body.Start,
			End:         body.End,
		},
	})
	if err != nil {
		h.respond.handleServiceError(w, err)
		return
	}
	h.respond.writeJSON(w, http.StatusOK, toEventResponse(event))
}

// Delete handles DELETE /events/{id}.
func (h *EventHandler) Delete(w http.ResponseWriter, req *http.Request) {
	principal, ok := h.principal(w, req)
	if !ok {
		return
	}
	eventID, ok := eventIDFromContext(req.Context())
	if !ok {
		h.respond.badRequest(w, "missing event id")
		return
	}

	if err := h.service.DeleteEvent(req.Context(), principal, eventID); err != nil {
		h.respond.handleServiceError(w, err)
		return
	}
	h.respond.writeJSON(w, http.StatusNoContent, nil)
}
