package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/example/group-scheduler/internal/persistence"
)

// GroupRepository implements persistence.GroupRepository on SQLite.
type GroupRepository struct {
	store *Store
}

// NewGroupRepository returns a repository backed by the store.
func NewGroupRepository(store *Store) *GroupRepository {
	return &GroupRepository{store: store}
}

// CreateGroup inserts the group and enrolls the creator as its admin in
// one transaction.
func (r *GroupRepository) CreateGroup(ctx context.Context, group persistence.Group) error {
	if group.ID == "" {
		return persistence.ErrConstraintViolation
	}

	return r.store.WithTransaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`
			INSERT INTO groups (id, name, description, creator_id, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?)`,
			group.ID,
			group.Name,
			group.Description,
			group.CreatorID,
			group.CreatedAt.UTC().Format(time.RFC3339),
			group.UpdatedAt.UTC().Format(time.RFC3339),
		); err != nil {
			return mapError(err)
		}

		if _, err := tx.Exec(`
			INSERT INTO group_members (group_id, user_id, role, joined_at)
			VALUES (?, ?, 'admin', ?)`,
			group.ID,
			group.CreatorID,
			group.CreatedAt.UTC().Format(time.RFC3339),
		); err != nil {
			return mapError(err)
		}
		return nil
	})
}

// UpdateGroup updates name and description.
func (r *GroupRepository) UpdateGroup(ctx context.Context, group persistence.Group) error {
	result, err := r.store.db.ExecContext(ctx, `
		UPDATE groups SET name = ?, description = ?, updated_at = ? WHERE id = ?`,
		group.Name,
		group.Description,
		group.UpdatedAt.UTC().Format(time.RFC3339),
		group.ID,
	)
	if err != nil {
		return mapError(err)
	}
	return requireRowAffected(result)
}

// GetGroup retrieves a group by ID.
func (r *GroupRepository) GetGroup(ctx context.Context, id string) (persistence.Group, error) {
	row := r.store.db.QueryRowContext(ctx, `
		SELECT id, name, description, creator_id, created_at, updated_at
		FROM groups WHERE id = ?`, id)
	return scanGroup(row)
}

// ListGroupsForUser lists the groups the user belongs to, by name.
func (r *GroupRepository) ListGroupsForUser(ctx context.Context, userID string) ([]persistence.Group, error) {
	rows, err := r.store.db.QueryContext(ctx, `
		SELECT g.id, g.name, g.description, g.creator_id, g.created_at, g.updated_at
		FROM groups g
		JOIN group_members m ON m.group_id = g.id
		WHERE m.user_id = ?
		ORDER BY g.name`, userID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var groups []persistence.Group
	for rows.Next() {
		group, err := scanGroup(rows)
		if err != nil {
			return nil, err
		}
		groups = append(groups, group)
	}
	return groups, rows.Err()
}

// DeleteGroup removes a group; memberships, busy intervals, events and
// invites cascade.
func (r *GroupRepository) DeleteGroup(ctx context.Context, id string) error {
	result, err := r.store.db.ExecContext(ctx, `DELETE FROM groups WHERE id = ?`, id)
	if err != nil {
		return mapError(err)
	}
	return requireRowAffected(result)
}

// AddMember enrolls a user into a group.
func (r *GroupRepository) AddMember(ctx context.Context, member persistence.GroupMember) error {
	role := member.Role
	if role == "" {
		role = "member"
	}
	_, err := r.store.db.ExecContext(ctx, `
		INSERT INTO group_members (group_id, user_id, role, joined_at)
		VALUES (?, ?, ?, ?)`,
		member.GroupID,
		member.UserID,
		role,
		member.JoinedAt.UTC().Format(time.RFC3339),
	)
	return mapError(err)
}

// RemoveMember removes a user from a group.
func (r *GroupRepository) RemoveMember(ctx context.Context, groupID, userID string) error {
	result, err := r.store.db.ExecContext(ctx, `
		DELETE FROM group_members WHERE group_id = ? AND user_id = ?`, groupID, userID)
	if err != nil {
		return mapError(err)
	}
	return requireRowAffected(result)
}

// ListMembers lists a group's memberships in join order.
func (r *GroupRepository) ListMembers(ctx context.Context, groupID string) ([]persistence.GroupMember, error) {
	rows, err := r.store.db.QueryContext(ctx, `
		SELECT group_id, user_id, role, joined_at
		FROM group_members WHERE group_id = ?
		ORDER BY joined_at, user_id`, groupID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var members []persistence.GroupMember
	for rows.Next() {
		var member persistence.GroupMember
		var joinedAt string
		if err := rows.Scan(&member.GroupID, &member.UserID, &member.Role, &joinedAt); err != nil {
			return nil, mapError(err)
		}
		if member.JoinedAt, err = parseTimestamp(joinedAt); err != nil {
			return nil, err
		}
		members = append(members, member)
	}
	return members, rows.Err()
}

func scanGroup(row rowScanner) (persistence.Group, error) {
	var group persistence.Group
	var createdAt, updatedAt string
	if err := row.Scan(&group.ID, &group.Name, &group.Description, &group.CreatorID, &createdAt, &updatedAt); err != nil {
		return persistence.Group{}, mapError(err)
	}

	var err error
	if group.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return persistence.Group{}, err
	}
	if group.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return persistence.Group{}, err
	}
	return group, nil
}
