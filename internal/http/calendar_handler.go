package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/emersion/go-ical"

	"github.com/example/group-scheduler/internal/application"
)

type calendarEventService interface {
	ListEvents(ctx context.Context, params application.ListEventsParams) ([]application.Event, error)
}

type calendarGroupService interface {
	GetGroup(ctx context.Context, principal application.Principal, groupID string) (application.Group, error)
}

// CalendarHandler serves group events as an iCalendar feed.
type CalendarHandler struct {
	groups  calendarGroupService
	events  calendarEventService
	now     func() time.Time
	logger  *slog.Logger
	respond responder
}

// NewCalendarHandler constructs a CalendarHandler backed by the given services.
func NewCalendarHandler(groups calendarGroupService, events calendarEventService, logger *slog.Logger) *CalendarHandler {
	base := defaultLogger(logger)
	return &CalendarHandler{
		groups:  groups,
		events:  events,
		now:     time.Now,
		logger:  base,
		respond: responder{logger: base},
	}
}

// Feed handles GET /groups/{id}/calendar.ics.
func (h *CalendarHandler) Feed(w http.ResponseWriter, req *http.Request) {
	principal, ok := PrincipalFromContext(req.Context())
	if !ok {
		h.respond.writeError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
		return
	}
	groupID, ok := groupIDFromContext(req.Context())
	if !ok {
		h.respond.badRequest(w, "missing group id")
		return
	}

	group, err := h.groups.GetGroup(req.Context(), principal, groupID)
	if err != nil {
		h.respond.handleServiceError(w, err)
		return
	}

	events, err := h.events.ListEvents(req.Context(), application.ListEventsParams{
		Principal: principal,
		GroupID:   groupID,
	})
	if err != nil {
		h.respond.handleServiceError(w, err)
		return
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, "-//group-scheduler//EN")
	cal.Props.SetText("X-WR-CALNAME", group.Name)

	stamp := h.now().UTC()
	for _, event := range events {
		cal.Children = append(cal.Children, h.toVEvent(event, stamp))
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		logger := handlerLogger(req.Context(), h.logger, "calendar", "feed")
		logger.Error("failed to encode calendar", slog.String("error", err.Error()))
	}
}

func (h *CalendarHandler) toVEvent(event application.Event, stamp time.Time) *ical.Component {
	ve := ical.NewComponent(ical.CompEvent)
	ve.Props.SetText(ical.PropUID, event.ID)
	ve.Props.SetText(ical.PropSummary, event.Title)
	ve.Props.SetDateTime(ical.PropDateTimeStamp, stamp)
	ve.Props.SetDateTime(ical.PropDateTimeStart, event.Start)
	ve.Props.SetDateTime(ical.PropDateTimeEnd, event.End)
	if event.Description != "" {
		ve.Props.SetText(ical.PropDescription, event.Description)
	}
	return ve
}
