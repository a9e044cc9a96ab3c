package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/example/group-scheduler/internal/availability"
	"github.com/example/group-scheduler/internal/persistence"
)

// BusyStore exposes the unavailability persistence operations needed by the busy service.
type BusyStore interface {
	CreateBusyInterval(ctx context.Context, interval persistence.BusyInterval) error
	DeleteBusyInterval(ctx context.Context, id string) error
	GetBusyInterval(ctx context.Context, id string) (persistence.BusyInterval, error)
	ListBusyIntervals(ctx context.Context, filter persistence.BusyFilter) ([]persistence.BusyInterval, error)
}

// BusyService records and lists member unavailability.
type BusyService struct {
	busy        BusyStore
	groups      MembershipStore
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewBusyService wires dependencies for the busy service.
func NewBusyService(busy BusyStore, groups MembershipStore, idGenerator func() string, now func() time.Time) *BusyService {
	return NewBusyServiceWithLogger(busy, groups, idGenerator, now, nil)
}

// NewBusyServiceWithLogger wires dependencies with a specified logger.
func NewBusyServiceWithLogger(busy BusyStore, groups MembershipStore, idGenerator func() string, now func() time.Time, logger *slog.Logger) *BusyService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &BusyService{busy: busy, groups: groups, idGenerator: idGenerator, now: now, logger: defaultLogger(logger)}
}

func (s *BusyService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "BusyService", operation, attrs...)
}

// DeclareBusy validates and records an unavailability interval for the principal.
func (s *BusyService) DeclareBusy(ctx context.Context, params DeclareBusyParams) (BusyInterval, error) {
	if s == nil {
		return BusyInterval{}, fmt.Errorf("BusyService is nil")
	}
	if s.busy == nil || s.groups == nil {
		return BusyInterval{}, fmt.Errorf("busy service not configured")
	}

	if vErr := validateBusyInput(params.Input); vErr.HasErrors() {
		return BusyInterval{}, vErr
	}
	if err := requireMember(ctx, s.groups, params.Input.GroupID, params.Principal.UserID); err != nil {
		return BusyInterval{}, err
	}

	interval := persistence.BusyInterval{
		ID:        s.idGenerator(),
		GroupID:   params.Input.GroupID,
		UserID:    params.Principal.UserID,
		Date:      params.Input.Date,
		StartTime: params.Input.StartTime,
		EndTime:   params.Input.EndTime,
		CreatedAt: s.now(),
	}
	if err := mapStoreError(s.busy.CreateBusyInterval(ctx, interval)); err != nil {
		s.loggerWith(ctx, "DeclareBusy").ErrorContext(ctx, "failed to record unavailability", "error", err, "error_kind", ErrorKind(err))
		return BusyInterval{}, err
	}

	s.loggerWith(ctx, "DeclareBusy", "group_id", interval.GroupID, "date", interval.Date).InfoContext(ctx, "unavailability recorded")
	return toApplicationBusyInterval(interval), nil
}

// DeleteBusy removes an interval. Only the declaring member may delete it.
func (s *BusyService) DeleteBusy(ctx context.Context, principal Principal, intervalID string) error {
	if s == nil {
		return fmt.Errorf("BusyService is nil")
	}
	if s.busy == nil {
		return fmt.Errorf("busy store not configured")
	}

	interval, err := s.busy.GetBusyInterval(ctx, intervalID)
	if err != nil {
		return mapStoreError(err)
	}
	if interval.UserID != principal.UserID {
		return ErrUnauthorized
	}

	if err := mapStoreError(s.busy.DeleteBusyInterval(ctx, intervalID)); err != nil {
		return err
	}
	s.loggerWith(ctx, "DeleteBusy", "interval_id", intervalID).InfoContext(ctx, "unavailability removed")
	return nil
}

// ListBusy returns a group's unavailability visible to its members,
// optionally bounded by inclusive dates.
func (s *BusyService) ListBusy(ctx context.Context, params ListBusyParams) ([]BusyInterval, error) {
	if s == nil {
		return nil, fmt.Errorf("BusyService is nil")
	}
	if s.busy == nil || s.groups == nil {
		return nil, fmt.Errorf("busy service not configured")
	}

	vErr := &ValidationError{}
	if params.DateFrom != "" {
		if _, err := availability.ParseDate(params.DateFrom); err != nil {
			vErr.add("date_from", "date must be formatted YYYY-MM-DD")
		}
	}
	if params.DateUntil != "" {
		if _, err := availability.ParseDate(params.DateUntil); err != nil {
			vErr.add("date_until", "date must be formatted YYYY-MM-DD")
		}
	}
	if vErr.HasErrors() {
		return nil, vErr
	}

	if err := requireMember(ctx, s.groups, params.GroupID, params.Principal.UserID); err != nil {
		return nil, err
	}

	intervals, err := s.busy.ListBusyIntervals(ctx, persistence.BusyFilter{
		GroupID:   params.GroupID,
		DateFrom:  params.DateFrom,
		DateUntil: params.DateUntil,
	})
	if err != nil {
		return nil, mapStoreError(err)
	}

	out := make([]BusyInterval, 0, len(intervals))
	for _, interval := range intervals {
		out = append(out, toApplicationBusyInterval(interval))
	}
	return out, nil
}

func validateBusyInput(input BusyInput) *ValidationError {
	vErr := &ValidationError{}

	if input.GroupID == "" {
		vErr.add("group_id", "group is required")
	}
	if _, err := availability.ParseDate(input.Date); err != nil {
		vErr.add("date", "date must be formatted YYYY-MM-DD")
	}

	start, startErr := availability.TimeToMinutes(input.StartTime)
	if startErr != nil {
		vErr.add("start_time", "start time must be formatted HH:MM")
	}
	end, endErr := availability.TimeToMinutes(input.EndTime)
	if endErr != nil {
		vErr.add("end_time", "end time must be formatted HH:MM")
	}
	if startErr == nil && endErr == nil && start >= end {
		vErr.add("end_time", "end time must be after start time")
	}

	return vErr
}
