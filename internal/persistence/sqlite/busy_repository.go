package sqlite

import (
	"context"
	"time"

	"github.com/example/group-scheduler/internal/persistence"
)

// BusyRepository implements persistence.BusyRepository on SQLite.
type BusyRepository struct {
	store *Store
}

// NewBusyRepository returns a repository backed by the store.
func NewBusyRepository(store *Store) *BusyRepository {
	return &BusyRepository{store: store}
}

// CreateBusyInterval inserts an unavailability record.
func (r *BusyRepository) CreateBusyInterval(ctx context.Context, interval persistence.BusyInterval) error {
	if interval.ID == "" {
		return persistence.ErrConstraintViolation
	}

	_, err := r.store.db.ExecContext(ctx, `
		INSERT INTO busy_intervals (id, group_id, user_id, date, start_time, end_time, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		interval.ID,
		interval.GroupID,
		interval.UserID,
		interval.Date,
		interval.StartTime,
		interval.EndTime,
		interval.CreatedAt.UTC().Format(time.RFC3339),
	)
	return mapError(err)
}

// DeleteBusyInterval removes an unavailability record.
func (r *BusyRepository) DeleteBusyInterval(ctx context.Context, id string) error {
	result, err := r.store.db.ExecContext(ctx, `DELETE FROM busy_intervals WHERE id = ?`, id)
	if err != nil {
		return mapError(err)
	}
	return requireRowAffected(result)
}

// GetBusyInterval retrieves a single record by ID.
func (r *BusyRepository) GetBusyInterval(ctx context.Context, id string) (persistence.BusyInterval, error) {
	row := r.store.db.QueryRowContext(ctx, `
		SELECT id, group_id, user_id, date, start_time, end_time, created_at
		FROM busy_intervals WHERE id = ?`, id)
	return scanBusyInterval(row)
}

// ListBusyIntervals lists records for a group with optional inclusive date
// bounds, ordered by date then start time.
func (r *BusyRepository) ListBusyIntervals(ctx context.Context, filter persistence.BusyFilter) ([]persistence.BusyInterval, error) {
	query := `
		SELECT id, group_id, user_id, date, start_time, end_time, created_at
		FROM busy_intervals WHERE group_id = ?`
	args := []any{filter.GroupID}

	if filter.DateFrom != "" {
		query += " AND date >= ?"
		args = append(args, filter.DateFrom)
	}
	if filter.DateUntil != "" {
		query += " AND date <= ?"
		args = append(args, filter.DateUntil)
	}
	query += " ORDER BY date, start_time"

	rows, err := r.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var intervals []persistence.BusyInterval
	for rows.Next() {
		interval, err := scanBusyInterval(rows)
		if err != nil {
			return nil, err
		}
		intervals = append(intervals, interval)
	}
	return intervals, rows.Err()
}

func scanBusyInterval(row rowScanner) (persistence.BusyInterval, error) {
	var interval persistence.BusyInterval
	var createdAt string
	if err := row.Scan(&interval.ID, &interval.GroupID, &interval.UserID,
		&interval.Date, &interval.StartTime, &interval.EndTime, &createdAt); err != nil {
		return persistence.BusyInterval{}, mapError(err)
	}

	var err error
	if interval.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return persistence.BusyInterval{}, err
	}
	return interval, nil
}
