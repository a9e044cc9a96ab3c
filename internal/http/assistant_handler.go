package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/example/group-scheduler/internal/application"
	"github.com/example/group-scheduler/internal/availability"
	"github.com/example/group-scheduler/internal/metrics"
)

type assistantService interface {
	Query(ctx context.Context, params application.AssistantQueryParams) (application.AssistantResponse, error)
	ConfirmSuggestion(ctx context.Context, params application.ConfirmSuggestionParams) (application.Event, error)
}

// AssistantHandler serves the natural language scheduling endpoints.
type AssistantHandler struct {
	service assistantService
	metrics *metrics.Registry
	logger  *slog.Logger
	respond responder
}

// NewAssistantHandler constructs an AssistantHandler. registry may be nil
// when metrics are not collected.
func NewAssistantHandler(service assistantService, registry *metrics.Registry, logger *slog.Logger) *AssistantHandler {
	base := defaultLogger(logger)
	return &AssistantHandler{
		service: service,
		metrics: registry,
		logger:  base,
		respond: responder{logger: base},
	}
}

type assistantQueryRequest struct {
	Text string `json:"text"`
}

type suggestionResponse struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	GroupID          string    `json:"group_id"`
	GroupName        string    `json:"group_name"`
	Start            time.Time `json:"start"`
	End              time.Time `json:"end"`
	DurationMinutes  int       `json:"duration_minutes"`
	Confidence       int       `json:"confidence"`
	AvailableMembers []string  `json:"available_members"`
	ConflictSummary  []string  `json:"conflict_summary,omitempty"`
}

type dayReportResponse struct {
	Date             string   `json:"date"`
	TimeSlots        []string `json:"time_slots"`
	AvailableMembers []string `json:"available_members"`
}

type groupReportResponse struct {
	GroupID   string              `json:"group_id"`
	GroupName string              `json:"group_name"`
	Days      []dayReportResponse `json:"days"`
}

type assistantQueryResponse struct {
	Intent      string                `json:"intent"`
	Message     string                `json:"message"`
	Suggestions []suggestionResponse  `json:"suggestions"`
	Reports     []groupReportResponse `json:"reports"`
}

type confirmRequest struct {
	GroupID string    `json:"group_id"`
	Title   string    `json:"title"`
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
}

func toSuggestionResponse(suggestion availability.Suggestion) suggestionResponse {
	return suggestionResponse{
		ID:               suggestion.ID,
		Title:            suggestion.Title,
		GroupID:          suggestion.GroupID,
		GroupName:        suggestion.GroupName,
		Start:            suggestion.Start,
		End:              suggestion.End,
		DurationMinutes:  suggestion.DurationMinutes,
		Confidence:       suggestion.Confidence,
		AvailableMembers: suggestion.AvailableMembers,
		ConflictSummary:  suggestion.ConflictSummary,
	}
}

func toAssistantQueryResponse(response application.AssistantResponse) assistantQueryResponse {
	payload := assistantQueryResponse{
		Intent:      response.Intent,
		Message:     response.Message,
		Suggestions: make([]suggestionResponse, 0, len(response.Suggestions)),
		Reports:     make([]groupReportResponse, 0, len(response.Reports)),
	}
	for _, suggestion := range response.Suggestions {
		payload.Suggestions = append(payload.Suggestions, toSuggestionResponse(suggestion))
	}
	for _, report := range response.Reports {
		days := make([]dayReportResponse, 0, len(report.Days))
		for _, day := range report.Days {
			days = append(days, dayReportResponse{
				Date:             day.Date.String(),
				TimeSlots:        day.TimeSlots,
				AvailableMembers: day.AvailableMembers,
			})
		}
		payload.Reports = append(payload.Reports, groupReportResponse{
			GroupID:   report.GroupID,
			GroupName: report.GroupName,
			Days:      days,
		})
	}
	return payload
}

// Query handles POST /assistant/query.
func (h *AssistantHandler) Query(w http.ResponseWriter, req *http.Request) {
	principal, ok := PrincipalFromContext(req.Context())
	if !ok {
		h.respond.writeError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
		return
	}

	var body assistantQueryRequest
	if err := decodeJSONBody(req, &body); err != nil {
		h.respond.badRequest(w, "request body must be valid JSON")
		return
	}

	response, err := h.service.Query(req.Context(), application.AssistantQueryParams{
		Principal: principal,
		Text:      body.Text,
	})
	if err != nil {
		h.respond.handleServiceError(w, err)
		return
	}

	if h.metrics != nil && len(response.Suggestions) > 0 {
		h.metrics.SuggestionsMade.Add(float64(len(response.Suggestions)))
	}

	logger := handlerLogger(req.Context(), h.logger, "assistant", "query")
	logger.Info("assistant query answered",
		slog.String("intent", response.Intent),
		slog.Int("suggestions", len(response.Suggestions)),
		slog.Int("reports", len(response.Reports)),
	)
	h.respond.writeJSON(w, http.StatusOK, toAssistantQueryResponse(response))
}

// Confirm handles POST /assistant/confirm.
func (h *AssistantHandler) Confirm(w http.ResponseWriter, req *http.Request) {
	principal, ok := PrincipalFromContext(req.Context())
	if !ok {
		h.respond.writeError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
		return
	}

	var body confirmRequest
	if err := decodeJSONBody(req, &body); err != nil {
		h.respond.badRequest(w, "request body must be valid JSON")
		return
	}

	event, err := h.service.ConfirmSuggestion(req.Context(), application.ConfirmSuggestionParams{
		Principal: principal,
		GroupID:   body.GroupID,
		Title:     body.Title,
		Start:     body.Start,
		End:       body.End,
	})
	if err != nil {
		h.respond.handleServiceError(w, err)
		return
	}

	logger := handlerLogger(req.Context(), h.logger, "assistant", "confirm")
	logger.Info("suggestion confirmed",
		slog.String("event_id", event.ID),
		slog.String("group_id", event.GroupID),
	)
	h.respond.writeJSON(w, http.StatusCreated, toEventResponse(event))
}
