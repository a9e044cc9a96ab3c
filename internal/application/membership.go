package application

import (
	"context"

	"github.com/example/group-scheduler/internal/persistence"
)

// MembershipStore exposes the group lookups shared by member-gated services.
type MembershipStore interface {
	GetGroup(ctx context.Context, id string) (persistence.Group, error)
	ListMembers(ctx context.Context, groupID string) ([]persistence.GroupMember, error)
}

const (
	roleAdmin  = "admin"
	roleMember = "member"
)

// memberRole returns the principal's role in the group, or "" when the
// principal is not a member.
func memberRole(ctx context.Context, store MembershipStore, groupID, userID string) (string, error) {
	members, err := store.ListMembers(ctx, groupID)
	if err != nil {
		return "", mapStoreError(err)
	}
	for _, member := range members {
		if member.UserID == userID {
			return member.Role, nil
		}
	}
	return "", nil
}

// requireMember confirms the group exists and the principal belongs to it.
func requireMember(ctx context.Context, store MembershipStore, groupID, userID string) error {
	if _, err := store.GetGroup(ctx, groupID); err != nil {
		return mapStoreError(err)
	}
	role, err := memberRole(ctx, store, groupID, userID)
	if err != nil {
		return err
	}
	if role == "" {
		return ErrUnauthorized
	}
	return nil
}

// requireAdmin confirms the group exists and the principal administers it.
func requireAdmin(ctx context.Context, store MembershipStore, groupID, userID string) error {
	if _, err := store.GetGroup(ctx, groupID); err != nil {
		return mapStoreError(err)
	}
	role, err := memberRole(ctx, store, groupID, userID)
	if err != nil {
		return err
	}
	if role != roleAdmin {
		return ErrUnauthorized
	}
	return nil
}
