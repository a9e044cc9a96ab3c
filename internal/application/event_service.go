package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/example/group-scheduler/internal/persistence"
)

// EventStore exposes the event persistence operations needed by the event service.
type EventStore interface {
	CreateEvent(ctx context.Context, event persistence.Event) error
	UpdateEvent(ctx context.Context, event persistence.Event) error
	GetEvent(ctx context.Context, id string) (persistence.Event, error)
	ListEvents(ctx context.Context, filter persistence.EventFilter) ([]persistence.Event, error)
	DeleteEvent(ctx context.Context, id string) error
}

// EventService orchestrates validation, authorization, and persistence for events.
type EventService struct {
	events      EventStore
	groups      MembershipStore
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewEventService wires dependencies for the event service.
func NewEventService(events EventStore, groups MembershipStore, idGenerator func() string, now func() time.Time) *EventService {
	return NewEventServiceWithLogger(events, groups, idGenerator, now, nil)
}

// NewEventServiceWithLogger wires dependencies with a specified logger.
func NewEventServiceWithLogger(events EventStore, groups MembershipStore, idGenerator func() string, now func() time.Time, logger *slog.Logger) *EventService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &EventService{events: events, groups: groups, idGenerator: idGenerator, now: now, logger: defaultLogger(logger)}
}

func (s *EventService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "EventService", operation, attrs...)
}

// CreateEvent validates input and persists an event in a group the
// principal belongs to.
func (s *EventService) CreateEvent(ctx context.Context, params CreateEventParams) (Event, error) {
	if s == nil {
		return Event{}, fmt.Errorf("EventService is nil")
	}
	if s.events == nil || s.groups == nil {
		return Event{}, fmt.Errorf("event service not configured")
	}

	normalized := normalizeEventInput(params.Input)
	if vErr := validateEventInput(normalized); vErr.HasErrors() {
		return Event{}, vErr
	}
	if err := requireMember(ctx, s.groups, normalized.GroupID, params.Principal.UserID); err != nil {
		return Event{}, err
	}

	now := s.now()
	event := persistence.Event{
		ID:          s.idGenerator(),
		GroupID:     normalized.GroupID,
		CreatorID:   params.Principal.UserID,
		Title:       normalized.Title,
		Description: normalized.Description,
		Start:       normalized.Start,
		End:         normalized.End,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := mapStoreError(s.events.CreateEvent(ctx, event)); err != nil {
		s.loggerWith(ctx, "CreateEvent").ErrorContext(ctx, "failed to create event", "error", err, "error_kind", ErrorKind(err))
		return Event{}, err
	}

	s.loggerWith(ctx, "CreateEvent", "event_id", event.ID, "group_id", event.GroupID).InfoContext(ctx, "event created")
	return toApplicationEvent(event), nil
}

// UpdateEvent applies new fields to an event. Only the creator or a
// group admin may update it.
func (s *EventService) UpdateEvent(ctx context.Context, params UpdateEventParams) (Event, error) {
	if s == nil {
		return Event{}, fmt.Errorf("EventService is nil")
	}
	if s.events == nil || s.groups == nil {
		return Event{}, fmt.Errorf("event service not configured")
	}

	existing, err := s.events.GetEvent(ctx, params.EventID)
	if err != nil {
		return Event{}, mapStoreError(err)
	}
	if err := s.requireOwnerOrAdmin(ctx, existing, params.Principal); err != nil {
		return Event{}, err
	}

	normalized := normalizeEventInput(params.Input)
	normalized.GroupID = existing.GroupID
	if vErr := validateEventInput(normalized); vErr.HasErrors() {
		return Event{}, vErr
	}

	existing.Title = normalized.Title
	existing.Description = normalized.Description
	existing.Start = normalized.Start
	existing.End = normalized.End
	existing.UpdatedAt = s.now()
	if err := mapStoreError(s.events.UpdateEvent(ctx, existing)); err != nil {
		return Event{}, err
	}

	s.loggerWith(ctx, "UpdateEvent", "event_id", existing.ID).InfoContext(ctx, "event updated")
	return toApplicationEvent(existing), nil
}

// DeleteEvent removes an event when requested by its creator or a group admin.
func (s *EventService) DeleteEvent(ctx context.Context, principal Principal, eventID string) error {
	if s == nil {
		return fmt.Errorf("EventService is nil")
	}
	if s.events == nil || s.groups == nil {
		return fmt.Errorf("event service not configured")
	}

	existing, err := s.events.GetEvent(ctx, eventID)
	if err != nil {
		return mapStoreError(err)
	}
	if err := s.requireOwnerOrAdmin(ctx, existing, principal); err != nil {
		return err
	}

	if err := mapStoreError(s.events.DeleteEvent(ctx, eventID)); err != nil {
		return err
	}
	s.loggerWith(ctx, "DeleteEvent", "event_id", eventID).InfoContext(ctx, "event deleted")
	return nil
}

// GetEvent returns an event visible to the principal.
func (s *EventService) GetEvent(ctx context.Context, principal Principal, eventID string) (Event, error) {
	if s == nil {
		return Event{}, fmt.Errorf("EventService is nil")
	}
	if s.events == nil || s.groups == nil {
		return Event{}, fmt.Errorf("event service not configured")
	}

	event, err := s.events.GetEvent(ctx, eventID)
	if err != nil {
		return Event{}, mapStoreError(err)
	}
	if err := requireMember(ctx, s.groups, event.GroupID, principal.UserID); err != nil {
		return Event{}, err
	}
	return toApplicationEvent(event), nil
}

// ListEvents returns a group's events visible to the principal, ordered
// by start time, optionally bounded.
func (s *EventService) ListEvents(ctx context.Context, params ListEventsParams) ([]Event, error) {
	if s == nil {
		return nil, fmt.Errorf("EventService is nil")
	}
	if s.events == nil || s.groups == nil {
		return nil, fmt.Errorf("event service not configured")
	}

	if err := requireMember(ctx, s.groups, params.GroupID, params.Principal.UserID); err != nil {
		return nil, err
	}

	events, err := s.events.ListEvents(ctx, persistence.EventFilter{
		GroupID:     params.GroupID,
		StartsAfter: params.StartsAfter,
		StartsUntil: params.StartsUntil,
	})
	if err != nil {
		return nil, mapStoreError(err)
	}

	out := make([]Event, 0, len(events))
	for _, event := range events {
		out = append(out, toApplicationEvent(event))
	}
	return out, nil
}

func (s *EventService) requireOwnerOrAdmin(ctx context.Context, event persistence.Event, principal Principal) error {
	if event.CreatorID == principal.UserID {
		return requireMember(ctx, s.groups, event.GroupID, principal.UserID)
	}
	return requireAdmin(ctx, s.groups, event.GroupID, principal.UserID)
}

func normalizeEventInput(input EventInput) EventInput {
	input.Title = strings.TrimSpace(input.Title)
	input.Description = strings.TrimSpace(input.Description)
	return input
}

func validateEventInput(input EventInput) *ValidationError {
	vErr := &ValidationError{}
	if input.GroupID == "" {
		vErr.add("group_id", "group is required")
	}
	if input.Title == "" {
		vErr.add("title", "title is required")
	} else if len(input.Title) > 200 {
		vErr.add("title", "title must be at most 200 characters")
	}
	if input.Start.IsZero() {
		vErr.add("start", "start is required")
	}
	if input.End.IsZero() {
		vErr.add("end", "end is required")
	}
	if !input.Start.IsZero() && !input.End.IsZero() && !input.End.After(input.Start) {
		vErr.add("end", "end must be after start")
	}
	return vErr
}
