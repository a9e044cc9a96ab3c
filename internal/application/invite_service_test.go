package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/group-scheduler/internal/persistence"
)

var inviteNow = time.Date(2024, time.March, 14, 9, 0, 0, 0, time.UTC)

func testInviteService(store *fakeStore) *InviteService {
	return NewInviteService(store, store, sequenceIDs("invite"), fixedNow(inviteNow))
}

func seedInviteGroup(store *fakeStore) string {
	seedAccount(store, "user-1", "alice@example.com", "Alice")
	seedAccount(store, "user-2", "bob@example.com", "Bob")
	store.groups["group-1"] = persistence.Group{ID: "group-1", Name: "Book Club", CreatorID: "user-1"}
	seedMembership(store, "group-1", "user-1", "admin")
	return "group-1"
}

func TestCreateInviteAdminOnly(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	groupID := seedInviteGroup(store)
	seedMembership(store, groupID, "user-2", "member")
	service := testInviteService(store)

	if _, err := service.CreateInvite(context.Background(), CreateInviteParams{
		Principal: Principal{UserID: "user-2"},
		GroupID:   groupID,
	}); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("member create: err = %v, want ErrUnauthorized", err)
	}

	link, err := service.CreateInvite(context.Background(), CreateInviteParams{
		Principal: Principal{UserID: "user-1"},
		GroupID:   groupID,
		TTL:       7 * 24 * time.Hour,
	})
	if err != nil {
		t.Fatalf("admin create: %v", err)
	}
	if !link.IsActive || link.Code == "" {
		t.Errorf("unexpected link: %+v", link)
	}
	if link.ExpiresAt == nil || !link.ExpiresAt.Equal(inviteNow.Add(7*24*time.Hour)) {
		t.Errorf("expires at = %v", link.ExpiresAt)
	}
}

func TestCreateInviteReplacesActiveLink(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	groupID := seedInviteGroup(store)
	service := testInviteService(store)
	ctx := context.Background()

	first, err := service.CreateInvite(ctx, CreateInviteParams{
		Principal: Principal{UserID: "user-1"},
		GroupID:   groupID,
	})
	if err != nil {
		t.Fatalf("first create: %v", err)
	}
	second, err := service.CreateInvite(ctx, CreateInviteParams{
		Principal: Principal{UserID: "user-1"},
		GroupID:   groupID,
	})
	if err != nil {
		t.Fatalf("second create: %v", err)
	}

	if store.invites[first.ID].IsActive {
		t.Error("first link still active")
	}
	if !store.invites[second.ID].IsActive {
		t.Error("second link not active")
	}
}

func TestJoinGroupViaCode(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	groupID := seedInviteGroup(store)
	service := testInviteService(store)
	ctx := context.Background()

	link, err := service.CreateInvite(ctx, CreateInviteParams{
		Principal: Principal{UserID: "user-1"},
		GroupID:   groupID,
	})
	if err != nil {
		t.Fatalf("create invite: %v", err)
	}

	group, err := service.JoinGroup(ctx, Principal{UserID: "user-2"}, link.Code)
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	if group.ID != groupID || group.MemberCount != 2 {
		t.Errorf("unexpected group: %+v", group)
	}

	if _, err := service.JoinGroup(ctx, Principal{UserID: "user-2"}, link.Code); !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("repeat join: err = %v, want ErrAlreadyExists", err)
	}
}

func TestJoinGroupRejectsBadCodes(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	groupID := seedInviteGroup(store)
	service := testInviteService(store)
	ctx := context.Background()

	expired := inviteNow.Add(-time.Hour)
	store.invites["expired"] = persistence.InviteLink{
		ID: "expired", GroupID: groupID, Code: "EXPIRED",
		CreatedBy: "user-1", ExpiresAt: &expired, IsActive: true,
	}
	store.invites["revoked"] = persistence.InviteLink{
		ID: "revoked", GroupID: groupID, Code: "REVOKED",
		CreatedBy: "user-1", IsActive: false,
	}

	if _, err := service.JoinGroup(ctx, Principal{UserID: "user-2"}, "EXPIRED"); !errors.Is(err, ErrInviteExpired) {
		t.Errorf("expired: err = %v, want ErrInviteExpired", err)
	}
	if _, err := service.JoinGroup(ctx, Principal{UserID: "user-2"}, "REVOKED"); !errors.Is(err, ErrInviteRevoked) {
		t.Errorf("revoked: err = %v, want ErrInviteRevoked", err)
	}
	if _, err := service.JoinGroup(ctx, Principal{UserID: "user-2"}, "NOPE"); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown: err = %v, want ErrNotFound", err)
	}

	var vErr *ValidationError
	if _, err := service.JoinGroup(ctx, Principal{UserID: "user-2"}, "  "); !errors.As(err, &vErr) {
		t.Errorf("blank: err = %v, want validation error", err)
	}
}

func TestRevokeInvite(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	groupID := seedInviteGroup(store)
	service := testInviteService(store)
	ctx := context.Background()

	link, err := service.CreateInvite(ctx, CreateInviteParams{
		Principal: Principal{UserID: "user-1"},
		GroupID:   groupID,
	})
	if err != nil {
		t.Fatalf("create invite: %v", err)
	}

	if err := service.RevokeInvite(ctx, Principal{UserID: "user-1"}, groupID); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if store.invites[link.ID].IsActive {
		t.Error("link still active after revoke")
	}
	if err := service.RevokeInvite(ctx, Principal{UserID: "user-1"}, groupID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("repeat revoke: err = %v, want ErrNotFound", err)
	}
}
