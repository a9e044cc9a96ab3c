package testfixtures

import (
	"time"

	"github.com/example/group-scheduler/internal/application"
	"github.com/example/group-scheduler/internal/assistant"
)

// ServiceFactory assists tests with constructing application services
// using deterministic identifiers and clocks.
type ServiceFactory struct {
	Clock       *Clock
	IDGenerator *IDGenerator
}

// ServiceFactoryOption configures a ServiceFactory instance.
type ServiceFactoryOption func(*ServiceFactory)

// NewServiceFactory constructs a ServiceFactory with defaults.
func NewServiceFactory(opts ...ServiceFactoryOption) *ServiceFactory {
	factory := &ServiceFactory{
		Clock:       NewClock(time.Time{}),
		IDGenerator: NewIDGenerator(""),
	}
	for _, opt := range opts {
		opt(factory)
	}
	if factory.Clock == nil {
		factory.Clock = NewClock(time.Time{})
	}
	if factory.IDGenerator == nil {
		factory.IDGenerator = NewIDGenerator("")
	}
	return factory
}

// WithClock overrides the clock used by the factory.
func WithClock(clock *Clock) ServiceFactoryOption {
	return func(factory *ServiceFactory) {
		factory.Clock = clock
	}
}

// WithIDGenerator overrides the identifier generator used by the factory.
func WithIDGenerator(gen *IDGenerator) ServiceFactoryOption {
	return func(factory *ServiceFactory) {
		factory.IDGenerator = gen
	}
}

// AuthService constructs an AuthService over the given store and issuer.
func (f *ServiceFactory) AuthService(users application.UserStore, tokens application.TokenIssuer) *application.AuthService {
	return application.NewAuthService(users, tokens, f.IDGenerator.NextFunc(), f.Clock.NowFunc())
}

// GroupService constructs a GroupService over the given stores.
func (f *ServiceFactory) GroupService(groups application.GroupStore, users application.UserDirectory) *application.GroupService {
	return application.NewGroupService(groups, users, f.IDGenerator.NextFunc(), f.Clock.NowFunc())
}

// BusyService constructs a BusyService over the given stores.
func (f *ServiceFactory) BusyService(busy application.BusyStore, groups application.MembershipStore) *application.BusyService {
	return application.NewBusyService(busy, groups, f.IDGenerator.NextFunc(), f.Clock.NowFunc())
}

// EventService constructs an EventService over the given stores.
func (f *ServiceFactory) EventService(events application.EventStore, groups application.MembershipStore) *application.EventService {
	return application.NewEventService(events, groups, f.IDGenerator.NextFunc(), f.Clock.NowFunc())
}

// InviteService constructs an InviteService over the given stores.
func (f *ServiceFactory) InviteService(invites application.InviteStore, groups application.GroupStore) *application.InviteService {
	return application.NewInviteService(invites, groups, f.IDGenerator.NextFunc(), f.Clock.NowFunc())
}

// AssistantService constructs an AssistantService over the given stores.
// The classifier may be nil to use the keyword classifier; location nil
// defaults to UTC for reproducible bucket boundaries.
func (f *ServiceFactory) AssistantService(classifier assistant.Classifier, groups application.GroupStore, users application.UserDirectory, busy application.BusyStore, events application.EventStore, location *time.Location) *application.AssistantService {
	if location == nil {
		location = time.UTC
	}
	return application.NewAssistantService(classifier, groups, users, busy, events, f.IDGenerator.NextFunc(), f.Clock.NowFunc(), location)
}
