package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/group-scheduler/internal/persistence"
)

func testEventService(store *fakeStore) *EventService {
	now := time.Date(2024, time.March, 14, 9, 0, 0, 0, time.UTC)
	return NewEventService(store, store, sequenceIDs("event"), fixedNow(now))
}

func seedEventGroup(store *fakeStore) string {
	seedAccount(store, "user-1", "alice@example.com", "Alice")
	seedAccount(store, "user-2", "bob@example.com", "Bob")
	seedAccount(store, "user-3", "carol@example.com", "Carol")
	store.groups["group-1"] = persistence.Group{ID: "group-1", Name: "Book Club", CreatorID: "user-1"}
	seedMembership(store, "group-1", "user-1", "admin")
	seedMembership(store, "group-1", "user-2", "member")
	return "group-1"
}

func eventInput(groupID string) EventInput {
	start := time.Date(2024, time.March, 15, 18, 0, 0, 0, time.UTC)
	return EventInput{
		GroupID: groupID,
		Title:   "Dinner",
		Start:   start,
		End:     start.Add(2 * time.Hour),
	}
}

func TestCreateEvent(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	groupID := seedEventGroup(store)
	service := testEventService(store)

	event, err := service.CreateEvent(context.Background(), CreateEventParams{
		Principal: Principal{UserID: "user-2"},
		Input:     eventInput(groupID),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if event.CreatorID != "user-2" || event.Title != "Dinner" {
		t.Errorf("unexpected event: %+v", event)
	}
	if _, ok := store.events[event.ID]; !ok {
		t.Error("event not persisted")
	}
}

func TestCreateEventValidation(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	groupID := seedEventGroup(store)
	service := testEventService(store)

	input := eventInput(groupID)
	input.Title = "   "
	input.End = input.Start.Add(-time.Hour)

	_, err := service.CreateEvent(context.Background(), CreateEventParams{
		Principal: Principal{UserID: "user-1"},
		Input:     input,
	})
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("err = %v, want validation error", err)
	}
	for _, field := range []string{"title", "end"} {
		if _, ok := vErr.FieldErrors[field]; !ok {
			t.Errorf("missing field error %q in %v", field, vErr.FieldErrors)
		}
	}
}

func TestCreateEventRequiresMembership(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	groupID := seedEventGroup(store)
	service := testEventService(store)

	_, err := service.CreateEvent(context.Background(), CreateEventParams{
		Principal: Principal{UserID: "user-3"},
		Input:     eventInput(groupID),
	})
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
}

func TestUpdateEventAuthorization(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	groupID := seedEventGroup(store)
	service := testEventService(store)
	ctx := context.Background()

	created, err := service.CreateEvent(ctx, CreateEventParams{
		Principal: Principal{UserID: "user-2"},
		Input:     eventInput(groupID),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	input := eventInput(groupID)
	input.Title = "Late Dinner"

	// The creator may update their own event.
	updated, err := service.UpdateEvent(ctx, UpdateEventParams{
		Principal: Principal{UserID: "user-2"},
		EventID:   created.ID,
		Input:     input,
	})
	if err != nil {
		t.Fatalf("creator update: %v", err)
	}
	if updated.Title != "Late Dinner" {
		t.Errorf("title = %q", updated.Title)
	}

	// A group admin may update any event.
	input.Title = "Admin Edit"
	if _, err := service.UpdateEvent(ctx, UpdateEventParams{
		Principal: Principal{UserID: "user-1"},
		EventID:   created.ID,
		Input:     input,
	}); err != nil {
		t.Fatalf("admin update: %v", err)
	}

	// An unrelated user may not.
	if _, err := service.UpdateEvent(ctx, UpdateEventParams{
		Principal: Principal{UserID: "user-3"},
		EventID:   created.ID,
		Input:     input,
	}); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("outsider update: err = %v, want ErrUnauthorized", err)
	}
}

func TestDeleteEvent(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	groupID := seedEventGroup(store)
	service := testEventService(store)
	ctx := context.Background()

	created, err := service.CreateEvent(ctx, CreateEventParams{
		Principal: Principal{UserID: "user-2"},
		Input:     eventInput(groupID),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := service.DeleteEvent(ctx, Principal{UserID: "user-3"}, created.ID); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("outsider delete: err = %v, want ErrUnauthorized", err)
	}
	if err := service.DeleteEvent(ctx, Principal{UserID: "user-1"}, created.ID); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
	if err := service.DeleteEvent(ctx, Principal{UserID: "user-1"}, created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("repeat delete: err = %v, want ErrNotFound", err)
	}
}

func TestListEventsBoundsAndMembership(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	groupID := seedEventGroup(store)
	service := testEventService(store)
	ctx := context.Background()

	base := time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		input := eventInput(groupID)
		input.Start = base.AddDate(0, 0, i)
		input.End = input.Start.Add(time.Hour)
		if _, err := service.CreateEvent(ctx, CreateEventParams{
			Principal: Principal{UserID: "user-1"},
			Input:     input,
		}); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	from := base.AddDate(0, 0, 1)
	events, err := service.ListEvents(ctx, ListEventsParams{
		Principal:   Principal{UserID: "user-2"},
		GroupID:     groupID,
		StartsAfter: &from,
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(events) != 2 || !events[0].Start.Equal(from) {
		t.Fatalf("unexpected events: %+v", events)
	}

	if _, err := service.ListEvents(ctx, ListEventsParams{
		Principal: Principal{UserID: "user-3"},
		GroupID:   groupID,
	}); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("outsider list: err = %v, want ErrUnauthorized", err)
	}
}
