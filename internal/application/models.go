package application

import (
	"time"

	"github.com/example/group-scheduler/internal/availability"
)

// Principal represents the authenticated user invoking a service method.
type Principal struct {
	UserID string
	Email  string
}

// User represents an account exposed by the application services.
type User struct {
	ID          string
	Email       string
	DisplayName string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RegisterParams captures the data required to create an account.
type RegisterParams struct {
	Email       string
	DisplayName string
	Password    string
}

// AuthenticateParams captures the data required to authenticate a user.
type AuthenticateParams struct {
	Email    string
	Password string
}

// AuthResult captures the outcome of a successful registration or login.
type AuthResult struct {
	User      User
	Token     string
	ExpiresAt time.Time
}

// GroupInput captures caller provided group fields.
type GroupInput struct {
	Name        string
	Description string
}

// Group represents a scheduling circle exposed by the application services.
type Group struct {
	ID          string
	Name        string
	Description string
	CreatorID   string
	MemberCount int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Member is a group membership joined with the user's directory entry.
type Member struct {
	UserID      string
	DisplayName string
	Email       string
	Role        string
	JoinedAt    time.Time
}

// CreateGroupParams wraps the data required to create a group.
type CreateGroupParams struct {
	Principal Principal
	Input     GroupInput
}

// UpdateGroupParams wraps the data required to update an existing group.
type UpdateGroupParams struct {
	Principal Principal
	GroupID   string
	Input     GroupInput
}

// BusyInput captures caller provided unavailability fields.
type BusyInput struct {
	GroupID   string
	Date      string
	StartTime string
	EndTime   string
}

// BusyInterval represents a declared period of unavailability.
type BusyInterval struct {
	ID        string
	GroupID   string
	UserID    string
	Date      string
	StartTime string
	EndTime   string
	CreatedAt time.Time
}

// DeclareBusyParams wraps the data required to record unavailability.
type DeclareBusyParams struct {
	Principal Principal
	Input     BusyInput
}

// ListBusyParams wraps the data required to list a group's unavailability.
type ListBusyParams struct {
	Principal Principal
	GroupID   string
	DateFrom  string
	DateUntil string
}

// EventInput captures caller provided event fields.
type EventInput struct {
	GroupID     string
	Title       string
	Description string
	Start       time.Time
	End         time.Time
}

// Event represents a scheduled group commitment.
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

// CreateEventParams wraps the data required to create an event.
type CreateEventParams struct {
	Principal Principal
	Input     EventInput
}

// UpdateEventParams wraps the data required to update an existing event.
type UpdateEventParams struct {
	Principal Principal
	EventID   string
	Input     EventInput
}

// ListEventsParams wraps the data required to list a group's events.
type ListEventsParams struct {
	Principal   Principal
	GroupID     string
	StartsAfter *time.Time
	StartsUntil *time.Time
}

// InviteLink represents a shareable join code for a group.
type InviteLink struct {
	ID        string
	GroupID   string
	Code      string
	CreatedBy string
	CreatedAt time.Time
	ExpiresAt *time.Time
	IsActive  bool
}

// CreateInviteParams wraps the data required to mint a join code.
type CreateInviteParams struct {
	Principal Principal
	GroupID   string
	TTL       time.Duration
}

// AssistantQueryParams wraps a free-text scheduling request.
type AssistantQueryParams struct {
	Principal Principal
	Text      string
}

// GroupReport is a per-group availability summary.
type GroupReport struct {
	GroupID   string
	GroupName string
	Days      []availability.DayAvailability
}

// AssistantResponse is the rendered answer to a free-text query.
type AssistantResponse struct {
	Intent      string
	Message     string
	Suggestions []availability.Suggestion
	Reports     []GroupReport
}

// ConfirmSuggestionParams wraps the data required to turn a suggestion
// into a persisted event.
type ConfirmSuggestionParams struct {
	Principal Principal
	GroupID   string
	Title     string
	Start     time.Time
	End       time.Time
}
