package sqlite

import (
	"context"
	"time"

	"github.com/example/group-scheduler/internal/persistence"
)

// InviteRepository implements persistence.InviteRepository on SQLite.
type InviteRepository struct {
	store *Store
}

// NewInviteRepository returns a repository backed by the store.
func NewInviteRepository(store *Store) *InviteRepository {
	return &InviteRepository{store: store}
}

// CreateInviteLink inserts a new invite link.
func (r *InviteRepository) CreateInviteLink(ctx context.Context, link persistence.InviteLink) error {
	if link.ID == "" {
		return persistence.ErrConstraintViolation
	}

	var expiresAt any
	if link.ExpiresAt != nil {
		expiresAt = link.ExpiresAt.UTC().Format(time.RFC3339)
	}
	active := 0
	if link.IsActive {
		active = 1
	}

	_, err := r.store.db.ExecContext(ctx, `
		INSERT INTO invite_links (id, group_id, code, created_by, created_at, expires_at, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		link.ID,
		link.GroupID,
		link.Code,
		link.CreatedBy,
		link.CreatedAt.UTC().Format(time.RFC3339),
		expiresAt,
		active,
	)
	return mapError(err)
}

// GetInviteLinkByCode retrieves an invite link by its join code.
func (r *InviteRepository) GetInviteLinkByCode(ctx context.Context, code string) (persistence.InviteLink, error) {
	row := r.store.db.QueryRowContext(ctx, `
		SELECT id, group_id, code, created_by, created_at, expires_at, is_active
		FROM invite_links WHERE code = ?`, code)
	return scanInviteLink(row)
}

// GetActiveInviteLink retrieves the newest active invite link for a group.
func (r *InviteRepository) GetActiveInviteLink(ctx context.Context, groupID string) (persistence.InviteLink, error) {
	row := r.store.db.QueryRowContext(ctx, `
		SELECT id, group_id, code, created_by, created_at, expires_at, is_active
		FROM invite_links WHERE group_id = ? AND is_active = 1
		ORDER BY created_at DESC LIMIT 1`, groupID)
	return scanInviteLink(row)
}

// DeactivateInviteLink marks a link as no longer joinable.
func (r *InviteRepository) DeactivateInviteLink(ctx context.Context, id string) error {
	result, err := r.store.db.ExecContext(ctx,
		`UPDATE invite_links SET is_active = 0 WHERE id = ?`, id)
	if err != nil {
		return mapError(err)
	}
	return requireRowAffected(result)
}

func scanInviteLink(row rowScanner) (persistence.InviteLink, error) {
	var link persistence.InviteLink
	var createdAt string
	var expiresAt *string
	var active int
	if err := row.Scan(&link.ID, &link.GroupID, &link.Code, &link.CreatedBy,
		&createdAt, &expiresAt, &active); err != nil {
		return persistence.InviteLink{}, mapError(err)
	}

	var err error
	if link.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return persistence.InviteLink{}, err
	}
	if expiresAt != nil {
		expiry, err := parseTimestamp(*expiresAt)
		if err != nil {
			return persistence.InviteLink{}, err
		}
		link.ExpiresAt = &expiry
	}
	link.IsActive = active == 1
	return link, nil
}
