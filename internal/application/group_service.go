package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/example/group-scheduler/internal/persistence"
)

// GroupStore exposes the group persistence operations needed by the group service.
type GroupStore interface {
	MembershipStore
	CreateGroup(ctx context.Context, group persistence.Group) error
	UpdateGroup(ctx context.Context, group persistence.Group) error
	ListGroupsForUser(ctx context.Context, userID string) ([]persistence.Group, error)
	DeleteGroup(ctx context.Context, id string) error
	AddMember(ctx context.Context, member persistence.GroupMember) error
	RemoveMember(ctx context.Context, groupID, userID string) error
}

// UserDirectory resolves user IDs to directory entries.
type UserDirectory interface {
	ListUsersByID(ctx context.Context, ids []string) ([]persistence.User, error)
}

// GroupService orchestrates validation, authorization, and persistence for groups.
type GroupService struct {
	groups      GroupStore
	users       UserDirectory
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewGroupService wires dependencies for the group service.
func NewGroupService(groups GroupStore, users UserDirectory, idGenerator func() string, now func() time.Time) *GroupService {
	return NewGroupServiceWithLogger(groups, users, idGenerator, now, nil)
}

// NewGroupServiceWithLogger wires dependencies with a specified logger.
func NewGroupServiceWithLogger(groups GroupStore, users UserDirectory, idGenerator func() string, now func() time.Time, logger *slog.Logger) *GroupService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &GroupService{groups: groups, users: users, idGenerator: idGenerator, now: now, logger: defaultLogger(logger)}
}

func (s *GroupService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "GroupService", operation, attrs...)
}

// CreateGroup validates input and persists a new group with the
// principal as its admin member.
func (s *GroupService) CreateGroup(ctx context.Context, params CreateGroupParams) (Group, error) {
	if s == nil {
		return Group{}, fmt.Errorf("GroupService is nil")
	}
	if s.groups == nil {
		return Group{}, fmt.Errorf("group store not configured")
	}

	normalized := normalizeGroupInput(params.Input)
	if vErr := validateGroupInput(normalized); vErr.HasErrors() {
		return Group{}, vErr
	}

	now := s.now()
	group := persistence.Group{
		ID:          s.idGenerator(),
		Name:        normalized.Name,
		Description: normalized.Description,
		CreatorID:   params.Principal.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := mapStoreError(s.groups.CreateGroup(ctx, group)); err != nil {
		s.loggerWith(ctx, "CreateGroup").ErrorContext(ctx, "failed to create group", "error", err, "error_kind", ErrorKind(err))
		return Group{}, err
	}

	s.loggerWith(ctx, "CreateGroup", "group_id", group.ID).InfoContext(ctx, "group created")
	result := toApplicationGroup(group)
	result.MemberCount = 1
	return result, nil
}

// UpdateGroup applies new fields to a group the principal administers.
func (s *GroupService) UpdateGroup(ctx context.Context, params UpdateGroupParams) (Group, error) {
	if s == nil {
		return Group{}, fmt.Errorf("GroupService is nil")
	}
	if s.groups == nil {
		return Group{}, fmt.Errorf("group store not configured")
	}

	if err := requireAdmin(ctx, s.groups, params.GroupID, params.Principal.UserID); err != nil {
		return Group{}, err
	}

	normalized := normalizeGroupInput(params.Input)
	if vErr := validateGroupInput(normalized); vErr.HasErrors() {
		return Group{}, vErr
	}

	existing, err := s.groups.GetGroup(ctx, params.GroupID)
	if err != nil {
		return Group{}, mapStoreError(err)
	}

	existing.Name = normalized.Name
	existing.Description = normalized.Description
	existing.UpdatedAt = s.now()
	if err := mapStoreError(s.groups.UpdateGroup(ctx, existing)); err != nil {
		return Group{}, err
	}

	s.loggerWith(ctx, "UpdateGroup", "group_id", existing.ID).InfoContext(ctx, "group updated")
	return s.withMemberCount(ctx, toApplicationGroup(existing))
}

// DeleteGroup removes a group the principal administers, along with its
// memberships, unavailability, events, and invite links.
func (s *GroupService) DeleteGroup(ctx context.Context, principal Principal, groupID string) error {
	if s == nil {
		return fmt.Errorf("GroupService is nil")
	}
	if s.groups == nil {
		return fmt.Errorf("group store not configured")
	}

	if err := requireAdmin(ctx, s.groups, groupID, principal.UserID); err != nil {
		return err
	}
	if err := mapStoreError(s.groups.DeleteGroup(ctx, groupID)); err != nil {
		return err
	}

	s.loggerWith(ctx, "DeleteGroup", "group_id", groupID).InfoContext(ctx, "group deleted")
	return nil
}

// GetGroup returns a group the principal belongs to.
func (s *GroupService) GetGroup(ctx context.Context, principal Principal, groupID string) (Group, error) {
	if s == nil {
		return Group{}, fmt.Errorf("GroupService is nil")
	}
	if s.groups == nil {
		return Group{}, fmt.Errorf("group store not configured")
	}

	if err := requireMember(ctx, s.groups, groupID, principal.UserID); err != nil {
		return Group{}, err
	}

	group, err := s.groups.GetGroup(ctx, groupID)
	if err != nil {
		return Group{}, mapStoreError(err)
	}
	return s.withMemberCount(ctx, toApplicationGroup(group))
}

// ListGroups returns the groups the principal belongs to, name-sorted.
func (s *GroupService) ListGroups(ctx context.Context, principal Principal) ([]Group, error) {
	if s == nil {
		return nil, fmt.Errorf("GroupService is nil")
	}
	if s.groups == nil {
		return nil, nil
	}

	groups, err := s.groups.ListGroupsForUser(ctx, principal.UserID)
	if err != nil {
		return nil, mapStoreError(err)
	}

	out := make([]Group, 0, len(groups))
	for _, group := range groups {
		enriched, err := s.withMemberCount(ctx, toApplicationGroup(group))
		if err != nil {
			return nil, err
		}
		out = append(out, enriched)
	}
	return out, nil
}

// ListMembers returns a group's membership roster with directory details.
func (s *GroupService) ListMembers(ctx context.Context, principal Principal, groupID string) ([]Member, error) {
	if s == nil {
		return nil, fmt.Errorf("GroupService is nil")
	}
	if s.groups == nil {
		return nil, fmt.Errorf("group store not configured")
	}

	if err := requireMember(ctx, s.groups, groupID, principal.UserID); err != nil {
		return nil, err
	}

	members, err := s.groups.ListMembers(ctx, groupID)
	if err != nil {
		return nil, mapStoreError(err)
	}

	ids := make([]string, 0, len(members))
	for _, member := range members {
		ids = append(ids, member.UserID)
	}

	directory := map[string]persistence.User{}
	if s.users != nil && len(ids) > 0 {
		users, err := s.users.ListUsersByID(ctx, ids)
		if err != nil {
			return nil, mapStoreError(err)
		}
		for _, user := range users {
			directory[user.ID] = user
		}
	}

	out := make([]Member, 0, len(members))
	for _, member := range members {
		entry := Member{
			UserID:   member.UserID,
			Role:     member.Role,
			JoinedAt: member.JoinedAt,
		}
		if user, ok := directory[member.UserID]; ok {
			entry.DisplayName = user.DisplayName
			entry.Email = user.Email
		}
		out = append(out, entry)
	}
	return out, nil
}

// RemoveMember removes a member from a group. Admins may remove anyone
// except the creator; any member may remove themselves.
func (s *GroupService) RemoveMember(ctx context.Context, principal Principal, groupID, userID string) error {
	if s == nil {
		return fmt.Errorf("GroupService is nil")
	}
	if s.groups == nil {
		return fmt.Errorf("group store not configured")
	}

	group, err := s.groups.GetGroup(ctx, groupID)
	if err != nil {
		return mapStoreError(err)
	}
	if userID == group.CreatorID {
		return ErrUnauthorized
	}

	if principal.UserID != userID {
		if err := requireAdmin(ctx, s.groups, groupID, principal.UserID); err != nil {
			return err
		}
	} else {
		if err := requireMember(ctx, s.groups, groupID, principal.UserID); err != nil {
			return err
		}
	}

	if err := mapStoreError(s.groups.RemoveMember(ctx, groupID, userID)); err != nil {
		return err
	}

	s.loggerWith(ctx, "RemoveMember", "group_id", groupID, "member_id", userID).InfoContext(ctx, "member removed")
	return nil
}

func (s *GroupService) withMemberCount(ctx context.Context, group Group) (Group, error) {
	members, err := s.groups.ListMembers(ctx, group.ID)
	if err != nil {
		return Group{}, mapStoreError(err)
	}
	group.MemberCount = len(members)
	return group, nil
}

func normalizeGroupInput(input GroupInput) GroupInput {
	return GroupInput{
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
	}
}

func validateGroupInput(input GroupInput) *ValidationError {
	vErr := &ValidationError{}
	if input.Name == "" {
		vErr.add("name", "name is required")
	} else if len(input.Name) > 100 {
		vErr.add("name", "name must be at most 100 characters")
	}
	if len(input.Description) > 500 {
		vErr.add("description", "description must be at most 500 characters")
	}
	return vErr
}
