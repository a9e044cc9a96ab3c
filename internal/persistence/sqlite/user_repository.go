package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/example/group-scheduler/internal/persistence"
)

// UserRepository implements persistence.UserRepository on SQLite.
type UserRepository struct {
	store *Store
}

// NewUserRepository returns a repository backed by the store.
func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

// CreateUser inserts a new user.
func (r *UserRepository) CreateUser(ctx context.Context, user persistence.User) error {
	if user.ID == "" || user.PasswordHash == "" {
		return persistence.ErrConstraintViolation
	}

	_, err := r.store.db.ExecContext(ctx, `
		INSERT INTO users (id, email, display_name, password_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		user.ID,
		normalizeEmail(user.Email),
		user.DisplayName,
		user.PasswordHash,
		user.CreatedAt.UTC().Format(time.RFC3339),
		user.UpdatedAt.UTC().Format(time.RFC3339),
	)
	return mapError(err)
}

// UpdateUser updates an existing user.
func (r *UserRepository) UpdateUser(ctx context.Context, user persistence.User) error {
	result, err := r.store.db.ExecContext(ctx, `
		UPDATE users SET email = ?, display_name = ?, password_hash = ?, updated_at = ?
		WHERE id = ?`,
		normalizeEmail(user.Email),
		user.DisplayName,
		user.PasswordHash,
		user.UpdatedAt.UTC().Format(time.RFC3339),
		user.ID,
	)
	if err != nil {
		return mapError(err)
	}
	return requireRowAffected(result)
}

// GetUser retrieves a user by ID.
func (r *UserRepository) GetUser(ctx context.Context, id string) (persistence.User, error) {
	row := r.store.db.QueryRowContext(ctx, `
		SELECT id, email, display_name, password_hash, created_at, updated_at
		FROM users WHERE id = ?`, id)
	return scanUser(row)
}

// GetUserByEmail retrieves a user by normalized email.
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (persistence.User, error) {
	row := r.store.db.QueryRowContext(ctx, `
		SELECT id, email, display_name, password_hash, created_at, updated_at
		FROM users WHERE email = ?`, normalizeEmail(email))
	return scanUser(row)
}

// ListUsersByID fetches the users with the given IDs. Unknown IDs are
// silently absent from the result.
func (r *UserRepository) ListUsersByID(ctx context.Context, ids []string) ([]persistence.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := r.store.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT id, email, display_name, password_hash, created_at, updated_at
		FROM users WHERE id IN (%s) ORDER BY display_name`, placeholders), args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var users []persistence.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// DeleteUser removes a user by ID.
func (r *UserRepository) DeleteUser(ctx context.Context, id string) error {
	result, err := r.store.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return mapError(err)
	}
	return requireRowAffected(result)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (persistence.User, error) {
	var user persistence.User
	var createdAt, updatedAt string
	if err := row.Scan(&user.ID, &user.Email, &user.DisplayName, &user.PasswordHash, &createdAt, &updatedAt); err != nil {
		return persistence.User{}, mapError(err)
	}

	var err error
	if user.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return persistence.User{}, err
	}
	if user.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return persistence.User{}, err
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func parseTimestamp(value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("sqlite: parse timestamp %q: %w", value, err)
	}
	return t, nil
}

func requireRowAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: rows affected: %w", err)
	}
	if affected == 0 {
		return persistence.ErrNotFound
	}
	return nil
}
