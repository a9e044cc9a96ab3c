package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/example/group-scheduler/internal/persistence"
)

// InviteStore exposes the invite link persistence operations needed by the invite service.
type InviteStore interface {
	CreateInviteLink(ctx context.Context, link persistence.InviteLink) error
	GetInviteLinkByCode(ctx context.Context, code string) (persistence.InviteLink, error)
	GetActiveInviteLink(ctx context.Context, groupID string) (persistence.InviteLink, error)
	DeactivateInviteLink(ctx context.Context, id string) error
}

// InviteService mints and redeems group join codes.
type InviteService struct {
	invites     InviteStore
	groups      GroupStore
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewInviteService wires dependencies for the invite service.
func NewInviteService(invites InviteStore, groups GroupStore, idGenerator func() string, now func() time.Time) *InviteService {
	return NewInviteServiceWithLogger(invites, groups, idGenerator, now, nil)
}

// NewInviteServiceWithLogger wires dependencies with a specified logger.
func NewInviteServiceWithLogger(invites InviteStore, groups GroupStore, idGenerator func() string, now func() time.Time, logger *slog.Logger) *InviteService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &InviteService{invites: invites, groups: groups, idGenerator: idGenerator, now: now, logger: defaultLogger(logger)}
}

func (s *InviteService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "InviteService", operation, attrs...)
}

// CreateInvite mints a join code for a group the principal administers.
// Any previously active link for the group is deactivated first so a
// single code is live at a time.
func (s *InviteService) CreateInvite(ctx context.Context, params CreateInviteParams) (InviteLink, error) {
	if s == nil {
		return InviteLink{}, fmt.Errorf("InviteService is nil")
	}
	if s.invites == nil || s.groups == nil {
		return InviteLink{}, fmt.Errorf("invite service not configured")
	}

	if err := requireAdmin(ctx, s.groups, params.GroupID, params.Principal.UserID); err != nil {
		return InviteLink{}, err
	}

	if current, err := s.invites.GetActiveInviteLink(ctx, params.GroupID); err == nil {
		if err := mapStoreError(s.invites.DeactivateInviteLink(ctx, current.ID)); err != nil {
			return InviteLink{}, err
		}
	} else if !errors.Is(err, persistence.ErrNotFound) {
		return InviteLink{}, mapStoreError(err)
	}

	now := s.now()
	link := persistence.InviteLink{
		ID:        s.idGenerator(),
		GroupID:   params.GroupID,
		Code:      s.idGenerator(),
		CreatedBy: params.Principal.UserID,
		CreatedAt: now,
		IsActive:  true,
	}
	if params.TTL > 0 {
		expiresAt := now.Add(params.TTL)
		link.ExpiresAt = &expiresAt
	}
	if err := mapStoreError(s.invites.CreateInviteLink(ctx, link)); err != nil {
		s.loggerWith(ctx, "CreateInvite").ErrorContext(ctx, "failed to create invite link", "error", err, "error_kind", ErrorKind(err))
		return InviteLink{}, err
	}

	s.loggerWith(ctx, "CreateInvite", "group_id", params.GroupID, "invite_id", link.ID).InfoContext(ctx, "invite link created")
	return toApplicationInviteLink(link), nil
}

// RevokeInvite deactivates a group's active join code.
func (s *InviteService) RevokeInvite(ctx context.Context, principal Principal, groupID string) error {
	if s == nil {
		return fmt.Errorf("InviteService is nil")
	}
	if s.invites == nil || s.groups == nil {
		return fmt.Errorf("invite service not configured")
	}

	if err := requireAdmin(ctx, s.groups, groupID, principal.UserID); err != nil {
		return err
	}

	link, err := s.invites.GetActiveInviteLink(ctx, groupID)
	if err != nil {
		return mapStoreError(err)
	}
	if err := mapStoreError(s.invites.DeactivateInviteLink(ctx, link.ID)); err != nil {
		return err
	}

	s.loggerWith(ctx, "RevokeInvite", "group_id", groupID, "invite_id", link.ID).InfoContext(ctx, "invite link revoked")
	return nil
}

// JoinGroup redeems a join code, adding the principal as a member.
// Expired and revoked codes are rejected; joining twice is reported as
// ErrAlreadyExists.
func (s *InviteService) JoinGroup(ctx context.Context, principal Principal, code string) (Group, error) {
	if s == nil {
		return Group{}, fmt.Errorf("InviteService is nil")
	}
	if s.invites == nil || s.groups == nil {
		return Group{}, fmt.Errorf("invite service not configured")
	}

	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		vErr := &ValidationError{}
		vErr.add("code", "join code is required")
		return Group{}, vErr
	}

	logger := s.loggerWith(ctx, "JoinGroup")

	link, err := s.invites.GetInviteLinkByCode(ctx, trimmed)
	if err != nil {
		return Group{}, mapStoreError(err)
	}
	if !link.IsActive {
		return Group{}, ErrInviteRevoked
	}
	if link.ExpiresAt != nil && !link.ExpiresAt.After(s.now()) {
		return Group{}, ErrInviteExpired
	}

	role, err := memberRole(ctx, s.groups, link.GroupID, principal.UserID)
	if err != nil {
		return Group{}, err
	}
	if role != "" {
		return Group{}, ErrAlreadyExists
	}

	member := persistence.GroupMember{
		GroupID:  link.GroupID,
		UserID:   principal.UserID,
		Role:     roleMember,
		JoinedAt: s.now(),
	}
	if err := mapStoreError(s.groups.AddMember(ctx, member)); err != nil {
		logger.ErrorContext(ctx, "failed to join group", "error", err, "error_kind", ErrorKind(err))
		return Group{}, err
	}

	group, err := s.groups.GetGroup(ctx, link.GroupID)
	if err != nil {
		return Group{}, mapStoreError(err)
	}

	logger.With("group_id", group.ID, "user_id", principal.UserID).InfoContext(ctx, "member joined via invite")
	members, err := s.groups.ListMembers(ctx, group.ID)
	if err != nil {
		return Group{}, mapStoreError(err)
	}
	result := toApplicationGroup(group)
	result.MemberCount = len(members)
	return result, nil
}
