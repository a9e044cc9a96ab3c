package persistence

import "time"

// User represents an account in the group scheduler domain.
type User struct {
	ID           string
	Email        string
	DisplayName  string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Group represents a scheduling circle owned by its creator.
type Group struct {
	ID          string
	Name        string
	Description string
	CreatorID   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// GroupMember links a user to a group with a membership role.
type GroupMember struct {
	GroupID  string
	UserID   string
	Role     string
	JoinedAt time.Time
}

// BusyInterval is a user-declared period of unavailability on a single
// calendar day. Date is "YYYY-MM-DD"; StartTime and EndTime are "HH:MM".
type BusyInterval struct {
	ID        string
	GroupID   string
	UserID    string
	Date      string
	StartTime string
	EndTime   string
	CreatedAt time.Time
}

// Event represents a scheduled group commitment with absolute bounds.
type Event struct {
	ID          string
	GroupID     string
	CreatorID   string
	Title       string
	Description string
	Start       time.Time
	End         time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// InviteLink is a shareable code that admits new members to a group.
type InviteLink struct {
	ID        string
	GroupID   string
	Code      string
	CreatedBy string
	CreatedAt time.Time
	ExpiresAt *time.Time
	IsActive  bool
}
