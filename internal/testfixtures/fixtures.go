// Package testfixtures provides deterministic builders for tests that
// exercise the application services and repositories together.
package testfixtures

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/example/group-scheduler/internal/persistence"
)

var (
	userCounter   uint64
	groupCounter  uint64
	busyCounter   uint64
	eventCounter  uint64
	inviteCounter uint64
)

var referenceTime = time.Date(2024, time.March, 14, 9, 0, 0, 0, time.UTC)

// ReferenceTime returns the canonical baseline timestamp used by fixtures.
func ReferenceTime() time.Time {
	return referenceTime
}

// UserFixture represents a deterministic user record.
type UserFixture struct {
	ID           string
	Email        string
	DisplayName  string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUserFixture builds a user with unique identifier and email. Overrides
// mutate the fixture before it is returned.
func NewUserFixture(overrides ...func(*UserFixture)) UserFixture {
	n := atomic.AddUint64(&userCounter, 1)
	fixture := UserFixture{
		ID:           fmt.Sprintf("user-%d", n),
		Email:        fmt.Sprintf("user%d@example.com", n),
		DisplayName:  fmt.Sprintf("User %d", n),
		PasswordHash: "argon2id-placeholder",
		CreatedAt:    referenceTime,
		UpdatedAt:    referenceTime,
	}
	for _, override := range overrides {
		override(&fixture)
	}
	return fixture
}

// Persistence converts the fixture into its storage model.
func (f UserFixture) Persistence() persistence.User {
	return persistence.User{
		ID:           f.ID,
		Email:        f.Email,
		DisplayName:  f.DisplayName,
		PasswordHash: f.PasswordHash,
		CreatedAt:    f.CreatedAt,
		UpdatedAt:    f.UpdatedAt,
	}
}

// GroupFixture represents a deterministic group record.
type GroupFixture struct {
	ID          string
	Name        string
	Description string
	CreatorID   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewGroupFixture builds a group owned by the given creator.
func NewGroupFixture(creatorID string, overrides ...func(*GroupFixture)) GroupFixture {
	n := atomic.AddUint64(&groupCounter, 1)
	fixture := GroupFixture{
		ID:          fmt.Sprintf("group-%d", n),
		Name:        fmt.Sprintf("Group %d", n),
		Description: "a scheduling circle",
		CreatorID:   creatorID,
		CreatedAt:   referenceTime,
		UpdatedAt:   referenceTime,
	}
	for _, override := range overrides {
		override(&fixture)
	}
	return fixture
}

// Persistence converts the fixture into its storage model.
func (f GroupFixture) Persistence() persistence.Group {
	return persistence.Group{
		ID:          f.ID,
		Name:        f.Name,
		Description: f.Description,
		CreatorID:   f.CreatorID,
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
}

// BusyFixture represents a deterministic unavailability record.
type BusyFixture struct {
	ID        string
	GroupID   string
	UserID    string
	Date      string
	StartTime string
	EndTime   string
	CreatedAt time.Time
}

// NewBusyFixture builds a busy interval for the given member.
func NewBusyFixture(groupID, userID string, overrides ...func(*BusyFixture)) BusyFixture {
	n := atomic.AddUint64(&busyCounter, 1)
	fixture := BusyFixture{
		ID:        fmt.Sprintf("busy-%d", n),
		GroupID:   groupID,
		UserID:    userID,
		Date:      "2024-03-15",
		StartTime: "09:00",
		EndTime:   "10:00",
		CreatedAt: referenceTime,
	}
	for _, override := range overrides {
		override(&fixture)
	}
	return fixture
}

// Persistence converts the fixture into its storage model.
func (f BusyFixture) Persistence() persistence.BusyInterval {
	return persistence.BusyInterval{
		ID:        f.ID,
		GroupID:   f.GroupID,
		UserID:    f.UserID,
		Date:      f.Date,
		StartTime: f.StartTime,
		EndTime:   f.EndTime,
		CreatedAt: f.CreatedAt,
	}
}

// EventFixture represents a deterministic event record.
type EventFixture struct {
	ID          string
	GroupID     string
	CreatorID   string
	Title       string
	Description string
	StartTime   time.Time
	EndTime     time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewEventFixture builds an hour-long event one day after ReferenceTime.
func NewEventFixture(groupID, creatorID string, overrides ...func(*EventFixture)) EventFixture {
	n := atomic.AddUint64(&eventCounter, 1)
	start := referenceTime.Add(24 * time.Hour)
	fixture := EventFixture{
		ID:        fmt.Sprintf("event-%d", n),
		GroupID:   groupID,
		CreatorID: creatorID,
		Title:     fmt.Sprintf("Event %d", n),
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		CreatedAt: referenceTime,
		UpdatedAt: referenceTime,
	}
	for _, override := range overrides {
		override(&fixture)
	}
	return fixture
}

// Persistence converts the fixture into its storage model.
func (f EventFixture) Persistence() persistence.Event {
	return persistence.Event{
		ID:          f.ID,
		GroupID:     f.GroupID,
		CreatorID:   f.CreatorID,
		Title:       f.Title,
		Description: f.Description,
		Start:       f.StartTime,
		End:         f.EndTime,
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
}

// InviteFixture represents a deterministic invite link record.
type InviteFixture struct {
	ID        string
	GroupID   string
	Code      string
	CreatedBy string
	CreatedAt time.Time
	ExpiresAt *time.Time
	IsActive  bool
}

// NewInviteFixture builds an active invite link without expiry.
func NewInviteFixture(groupID, createdBy string, overrides ...func(*InviteFixture)) InviteFixture {
	n := atomic.AddUint64(&inviteCounter, 1)
	fixture := InviteFixture{
		ID:        fmt.Sprintf("invite-%d", n),
		GroupID:   groupID,
		Code:      fmt.Sprintf("code-%d", n),
		CreatedBy: createdBy,
		CreatedAt: referenceTime,
		IsActive:  true,
	}
	for _, override := range overrides {
		override(&fixture)
	}
	return fixture
}

// Persistence converts the fixture into its storage model.
func (f InviteFixture) Persistence() persistence.InviteLink {
	return persistence.InviteLink{
		ID:        f.ID,
		GroupID:   f.GroupID,
		Code:      f.Code,
		CreatedBy: f.CreatedBy,
		CreatedAt: f.CreatedAt,
		ExpiresAt: f.ExpiresAt,
		IsActive:  f.IsActive,
	}
}
