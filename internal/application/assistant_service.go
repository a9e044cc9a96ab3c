package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/example/group-scheduler/internal/assistant"
	"github.com/example/group-scheduler/internal/availability"
	"github.com/example/group-scheduler/internal/persistence"
)

// MaxGroupsPerQuery bounds how many groups a single free-text query is
// scanned against.
const MaxGroupsPerQuery = 3

// AssistantService turns free-text requests into scheduling suggestions
// or availability reports by orchestrating the classifier and the
// availability core over persisted group data.
type AssistantService struct {
	classifier  assistant.Classifier
	groups      GroupStore
	users       UserDirectory
	busy        BusyStore
	events      EventStore
	idGenerator func() string
	now         func() time.Time
	location    *time.Location
	logger      *slog.Logger
}

// NewAssistantService wires dependencies for the assistant service.
func NewAssistantService(classifier assistant.Classifier, groups GroupStore, users UserDirectory, busy BusyStore, events EventStore, idGenerator func() string, now func() time.Time, location *time.Location) *AssistantService {
	return NewAssistantServiceWithLogger(classifier, groups, users, busy, events, idGenerator, now, location, nil)
}

// NewAssistantServiceWithLogger wires dependencies with a specified logger.
func NewAssistantServiceWithLogger(classifier assistant.Classifier, groups GroupStore, users UserDirectory, busy BusyStore, events EventStore, idGenerator func() string, now func() time.Time, location *time.Location, logger *slog.Logger) *AssistantService {
	if classifier == nil {
		classifier = assistant.NewKeywordClassifier()
	}
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	if location == nil {
		location = time.Local
	}
	return &AssistantService{
		classifier:  classifier,
		groups:      groups,
		users:       users,
		busy:        busy,
		events:      events,
		idGenerator: idGenerator,
		now:         now,
		location:    location,
		logger:      defaultLogger(logger),
	}
}

func (s *AssistantService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "AssistantService", operation, attrs...)
}

// Query interprets a free-text request and answers with either event
// suggestions or per-group availability reports.
func (s *AssistantService) Query(ctx context.Context, params AssistantQueryParams) (response AssistantResponse, err error) {
	if s == nil {
		err = fmt.Errorf("AssistantService is nil")
		return
	}
	if s.groups == nil || s.busy == nil || s.events == nil {
		err = fmt.Errorf("assistant service not configured")
		return
	}

	text := strings.TrimSpace(params.Text)

	logger := s.loggerWith(ctx, "Query")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "assistant query failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With(
			"intent", response.Intent,
			"suggestions", len(response.Suggestions),
			"reports", len(response.Reports),
		).InfoContext(ctx, "assistant query answered")
	}()

	if text == "" {
		vErr := &ValidationError{}
		vErr.add("text", "query text is required")
		err = vErr
		return
	}

	memberships, err := s.groups.ListGroupsForUser(ctx, params.Principal.UserID)
	if err != nil {
		err = mapStoreError(err)
		return
	}

	intent := s.classifier.DetectIntent(text)

	if len(memberships) == 0 {
		response = emptyResponse(intent)
		return
	}

	names := make([]string, 0, len(memberships))
	summaries := make([]assistant.GroupSummary, 0, len(memberships))
	byID := make(map[string]persistence.Group, len(memberships))
	for _, group := range memberships {
		names = append(names, group.Name)
		summaries = append(summaries, assistant.GroupSummary{
			ID:          group.ID,
			Name:        group.Name,
			Description: group.Description,
		})
		byID[group.ID] = group
	}

	request := s.classifier.ParseRequest(text, names)
	if request.DurationMinutes <= 0 || request.DurationMinutes%availability.BucketMinutes != 0 {
		vErr := &ValidationError{}
		vErr.add("duration", "duration must be a positive multiple of 30 minutes")
		err = vErr
		return
	}

	resolved := assistant.ResolveGroups(request.GroupHints, summaries)
	if len(resolved) > MaxGroupsPerQuery {
		resolved = resolved[:MaxGroupsPerQuery]
	}

	now := s.now()
	rangeStart, rangeEnd := assistant.DateRange(request.DatePreference, now, s.location)

	if intent == assistant.IntentAvailability {
		response, err = s.availabilityResponse(ctx, resolved, byID, request, rangeStart, rangeEnd)
		return
	}
	response, err = s.schedulingResponse(ctx, resolved, byID, request, rangeStart, rangeEnd, now)
	return
}

func (s *AssistantService) schedulingResponse(ctx context.Context, resolved []assistant.GroupSummary, byID map[string]persistence.Group, request assistant.Request, rangeStart, rangeEnd availability.Date, now time.Time) (AssistantResponse, error) {
	var perGroup [][]availability.Suggestion
	for _, summary := range resolved {
		group, ok := byID[summary.ID]
		if !ok {
			continue
		}

		snapshot, err := s.snapshotGroup(ctx, group, rangeStart, rangeEnd)
		if err != nil {
			return AssistantResponse{}, err
		}
		if len(snapshot.members) == 0 {
			continue
		}

		slots := availability.ScanRange(rangeStart, rangeEnd, snapshot.busy, snapshot.events, snapshot.members, request.DurationMinutes, s.location)
		suggestions := availability.SelectSuggestions(slots, len(snapshot.members), availability.SelectParams{
			GroupID:    group.ID,
			GroupName:  group.Name,
			EventType:  request.EventType,
			Preference: request.TimePreference,
			Now:        now,
			Location:   s.location,
		})
		if len(suggestions) > 0 {
			perGroup = append(perGroup, suggestions)
		}
	}

	merged := availability.MergeSuggestions(perGroup...)
	return AssistantResponse{
		Intent:      string(assistant.IntentScheduling),
		Message:     schedulingMessage(len(merged)),
		Suggestions: merged,
	}, nil
}

func (s *AssistantService) availabilityResponse(ctx context.Context, resolved []assistant.GroupSummary, byID map[string]persistence.Group, request assistant.Request, rangeStart, rangeEnd availability.Date) (AssistantResponse, error) {
	var reports []GroupReport
	withSlots := 0
	for _, summary := range resolved {
		group, ok := byID[summary.ID]
		if !ok {
			continue
		}

		snapshot, err := s.snapshotGroup(ctx, group, rangeStart, rangeEnd)
		if err != nil {
			return AssistantResponse{}, err
		}
		if len(snapshot.members) == 0 {
			continue
		}

		slots := availability.ScanRange(rangeStart, rangeEnd, snapshot.busy, snapshot.events, snapshot.members, availability.ReportDurationMinutes, s.location)
		days := availability.BuildDayReports(slots, request.TimePreference)
		if len(days) > 0 {
			withSlots++
		}
		reports = append(reports, GroupReport{
			GroupID:   group.ID,
			GroupName: group.Name,
			Days:      days,
		})
	}

	return AssistantResponse{
		Intent:  string(assistant.IntentAvailability),
		Message: availabilityMessage(len(reports), withSlots),
		Reports: reports,
	}, nil
}

// ConfirmSuggestion persists a previously suggested time as a group event.
func (s *AssistantService) ConfirmSuggestion(ctx context.Context, params ConfirmSuggestionParams) (Event, error) {
	if s == nil {
		return Event{}, fmt.Errorf("AssistantService is nil")
	}
	if s.groups == nil || s.events == nil {
		return Event{}, fmt.Errorf("assistant service not configured")
	}

	vErr := &ValidationError{}
	if params.GroupID == "" {
		vErr.add("group_id", "group is required")
	}
	if strings.TrimSpace(params.Title) == "" {
		vErr.add("title", "title is required")
	}
	if params.Start.IsZero() || params.End.IsZero() || !params.End.After(params.Start) {
		vErr.add("end", "end must be after start")
	}
	if vErr.HasErrors() {
		return Event{}, vErr
	}

	if err := requireMember(ctx, s.groups, params.GroupID, params.Principal.UserID); err != nil {
		return Event{}, err
	}

	now := s.now()
	event := persistence.Event{
		ID:        s.idGenerator(),
		GroupID:   params.GroupID,
		CreatorID: params.Principal.UserID,
		Title:     strings.TrimSpace(params.Title),
		Start:     params.Start,
		End:       params.End,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := mapStoreError(s.events.CreateEvent(ctx, event)); err != nil {
		s.loggerWith(ctx, "ConfirmSuggestion").ErrorContext(ctx, "failed to confirm suggestion", "error", err, "error_kind", ErrorKind(err))
		return Event{}, err
	}

	s.loggerWith(ctx, "ConfirmSuggestion", "event_id", event.ID, "group_id", event.GroupID).InfoContext(ctx, "suggestion confirmed")
	return toApplicationEvent(event), nil
}

// groupSnapshot is the availability input gathered for one group.
type groupSnapshot struct {
	members []availability.Member
	busy    []availability.BusyInterval
	events  []availability.Event
}

func (s *AssistantService) snapshotGroup(ctx context.Context, group persistence.Group, rangeStart, rangeEnd availability.Date) (groupSnapshot, error) {
	memberships, err := s.groups.ListMembers(ctx, group.ID)
	if err != nil {
		return groupSnapshot{}, mapStoreError(err)
	}

	ids := make([]string, 0, len(memberships))
	for _, membership := range memberships {
		ids = append(ids, membership.UserID)
	}

	names := map[string]string{}
	if s.users != nil && len(ids) > 0 {
		users, err := s.users.ListUsersByID(ctx, ids)
		if err != nil {
			return groupSnapshot{}, mapStoreError(err)
		}
		for _, user := range users {
			names[user.ID] = user.DisplayName
		}
	}

	members := make([]availability.Member, 0, len(memberships))
	for _, membership := range memberships {
		name := names[membership.UserID]
		if name == "" {
			name = membership.UserID
		}
		members = append(members, availability.Member{UserID: membership.UserID, DisplayName: name})
	}

	stored, err := s.busy.ListBusyIntervals(ctx, persistence.BusyFilter{
		GroupID:   group.ID,
		DateFrom:  rangeStart.String(),
		DateUntil: rangeEnd.String(),
	})
	if err != nil {
		return groupSnapshot{}, mapStoreError(err)
	}
	busy := make([]availability.BusyInterval, 0, len(stored))
	for _, interval := range stored {
		date, err := availability.ParseDate(interval.Date)
		if err != nil {
			continue
		}
		busy = append(busy, availability.BusyInterval{
			UserID: interval.UserID,
			Date:   date,
			Start:  interval.StartTime,
			End:    interval.EndTime,
		})
	}

	windowStart := rangeStart.At(0, s.location)
	windowEnd := rangeEnd.Next().At(0, s.location)
	persisted, err := s.events.ListEvents(ctx, persistence.EventFilter{
		GroupID:     group.ID,
		StartsAfter: &windowStart,
		StartsUntil: &windowEnd,
	})
	if err != nil {
		return groupSnapshot{}, mapStoreError(err)
	}
	events := make([]availability.Event, 0, len(persisted))
	for _, event := range persisted {
		events = append(events, availability.Event{
			ID:      event.ID,
			GroupID: event.GroupID,
			Start:   event.Start,
			End:     event.End,
		})
	}

	return groupSnapshot{members: members, busy: busy, events: events}, nil
}

func emptyResponse(intent assistant.Intent) AssistantResponse {
	if intent == assistant.IntentAvailability {
		return AssistantResponse{
			Intent:  string(assistant.IntentAvailability),
			Message: "I couldn't find any availability information for your groups. Try creating a group and having members set their availability first.",
		}
	}
	return AssistantResponse{
		Intent:  string(assistant.IntentScheduling),
		Message: "I couldn't find any suitable times that work for everyone in your groups. Try creating a group and having members set their availability first, or try a different time frame.",
	}
}

func schedulingMessage(count int) string {
	switch count {
	case 0:
		return "I couldn't find any suitable times that work for everyone in your groups. Try creating a group and having members set their availability first, or try a different time frame."
	case 1:
		return "I found 1 great scheduling option for you! Here is the best time based on everyone's availability:"
	default:
		return fmt.Sprintf("I found %d great scheduling options for you! Here are my top suggestions based on everyone's availability:", count)
	}
}

func availabilityMessage(total, withSlots int) string {
	if total == 0 {
		return "I couldn't find any availability information for your groups. Try creating a group and having members set their availability first."
	}
	if withSlots == 0 {
		return "I found your groups but no common availability for the requested time period. Try a different time frame or check if members have set their availability."
	}
	if withSlots == 1 {
		return "Here's when everyone is available in 1 group (showing only free time slots):"
	}
	return fmt.Sprintf("Here's when everyone is available in %d groups (showing only free time slots):", withSlots)
}
