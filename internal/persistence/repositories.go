package persistence

import (
	"context"
	"time"
)

// UserRepository exposes CRUD operations for users.
type UserRepository interface {
	CreateUser(ctx context.Context, user User) error
	UpdateUser(ctx context.Context, user User) error
	GetUser(ctx context.Context, id string) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	ListUsersByID(ctx context.Context, ids []string) ([]User, error)
	DeleteUser(ctx context.Context, id string) error
}

// GroupRepository stores groups and their memberships.
type GroupRepository interface {
	CreateGroup(ctx context.Context, group Group) error
	UpdateGroup(ctx context.Context, group Group) error
	GetGroup(ctx context.Context, id string) (Group, error)
	ListGroupsForUser(ctx context.Context, userID string) ([]Group, error)
	DeleteGroup(ctx context.Context, id string) error

	AddMember(ctx context.Context, member GroupMember) error
	RemoveMember(ctx context.Context, groupID, userID string) error
	ListMembers(ctx context.Context, groupID string) ([]GroupMember, error)
}

// BusyFilter narrows busy interval queries to a group and date window.
// Dates are inclusive "YYYY-MM-DD" bounds; empty bounds are unbounded.
type BusyFilter struct {
	GroupID   string
	DateFrom  string
	DateUntil string
}

// BusyRepository stores user unavailability records.
type BusyRepository interface {
	CreateBusyInterval(ctx context.Context, interval BusyInterval) error
	DeleteBusyInterval(ctx context.Context, id string) error
	GetBusyInterval(ctx context.Context, id string) (BusyInterval, error)
	ListBusyIntervals(ctx context.Context, filter BusyFilter) ([]BusyInterval, error)
}

// EventFilter narrows event queries to a group and start-time window.
type EventFilter struct {
	GroupID     string
	StartsAfter *time.Time
	StartsUntil *time.Time
}

// EventRepository stores scheduled group events.
type EventRepository interface {
	CreateEvent(ctx context.Context, event Event) error
	UpdateEvent(ctx context.Context, event Event) error
	GetEvent(ctx context.Context, id string) (Event, error)
	ListEvents(ctx context.Context, filter EventFilter) ([]Event, error)
	DeleteEvent(ctx context.Context, id string) error
}

// InviteRepository stores group invite links.
type InviteRepository interface {
	CreateInviteLink(ctx context.Context, link InviteLink) error
	GetInviteLinkByCode(ctx context.Context, code string) (InviteLink, error)
	GetActiveInviteLink(ctx context.Context, groupID string) (InviteLink, error)
	DeactivateInviteLink(ctx context.Context, id string) error
}
