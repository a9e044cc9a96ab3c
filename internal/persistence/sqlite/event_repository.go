package sqlite

import (
	"context"
	"time"

	"github.com/example/group-scheduler/internal/persistence"
)

// EventRepository implements persistence.EventRepository on SQLite.
type EventRepository struct {
	store *Store
}

// NewEventRepository returns a repository backed by the store.
func NewEventRepository(store *Store) *EventRepository {
	return &EventRepository{store: store}
}

// CreateEvent inserts a new event.
func (r *EventRepository) CreateEvent(ctx context.Context, event persistence.Event) error {
	if event.ID == "" {
		return persistence.ErrConstraintViolation
	}

	_, err := r.store.db.ExecContext(ctx, `
		INSERT INTO events (id, group_id, creator_id, title, description, start_time, end_time, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		event.ID,
		event.GroupID,
		event.CreatorID,
		event.Title,
		event.Description,
		event.Start.UTC().Format(time.RFC3339),
		event.End.UTC().Format(time.RFC3339),
		event.CreatedAt.UTC().Format(time.RFC3339),
		event.UpdatedAt.UTC().Format(time.RFC3339),
	)
	return mapError(err)
}

// UpdateEvent updates an existing event's mutable fields.
func (r *EventRepository) UpdateEvent(ctx context.Context, event persistence.Event) error {
	result, err := r.store.db.ExecContext(ctx, `
		UPDATE events SET title = ?, description = ?, start_time = ?, end_time = ?, updated_at = ?
		WHERE id = ?`,
		event.Title,
		event.Description,
		event.Start.UTC().Format(time.RFC3339),
		event.End.UTC().Format(time.RFC3339),
		event.UpdatedAt.UTC().Format(time.RFC3339),
		event.ID,
	)
	if err != nil {
		return mapError(err)
	}
	return requireRowAffected(result)
}

// GetEvent retrieves an event by ID.
func (r *EventRepository) GetEvent(ctx context.Context, id string) (persistence.Event, error) {
	row := r.store.db.QueryRowContext(ctx, `
		SELECT id, group_id, creator_id, title, description, start_time, end_time, created_at, updated_at
		FROM events WHERE id = ?`, id)
	return scanEvent(row)
}

// ListEvents lists a group's events with optional start-time bounds,
// ordered by start.
func (r *EventRepository) ListEvents(ctx context.Context, filter persistence.EventFilter) ([]persistence.Event, error) {
	query := `
		SELECT id, group_id, creator_id, title, description, start_time, end_time, created_at, updated_at
		FROM events WHERE group_id = ?`
	args := []any{filter.GroupID}

	if filter.StartsAfter != nil {
		query += " AND start_time >= ?"
		args = append(args, filter.StartsAfter.UTC().Format(time.RFC3339))
	}
	if filter.StartsUntil != nil {
		query += " AND start_time <= ?"
		args = append(args, filter.StartsUntil.UTC().Format(time.RFC3339))
	}
	query += " ORDER BY start_time"

	rows, err := r.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var events []persistence.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

// DeleteEvent removes an event by ID.
func (r *EventRepository) DeleteEvent(ctx context.Context, id string) error {
	result, err := r.store.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return mapError(err)
	}
	return requireRowAffected(result)
}

func scanEvent(row rowScanner) (persistence.Event, error) {
	var event persistence.Event
	var start, end, createdAt, updatedAt string
	if err := row.Scan(&event.ID, &event.GroupID, &event.CreatorID, &event.Title,
		&event.Description, &start, &end, &createdAt, &updatedAt); err != nil {
		return persistence.Event{}, mapError(err)
	}

	var err error
	if event.Start, err = parseTimestamp(start); err != nil {
		return persistence.Event{}, err
	}
	if event.End, err = parseTimestamp(end); err != nil {
		return persistence.Event{}, err
	}
	if event.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return persistence.Event{}, err
	}
	if event.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return persistence.Event{}, err
	}
	return event, nil
}
