package application

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/example/group-scheduler/internal/persistence"
)

// fakeStore is an in-memory implementation of the store interfaces the
// services depend on.
type fakeStore struct {
	users   map[string]persistence.User
	groups  map[string]persistence.Group
	members map[string][]persistence.GroupMember
	busy    map[string]persistence.BusyInterval
	events  map[string]persistence.Event
	invites map[string]persistence.InviteLink

	failWith error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:   map[string]persistence.User{},
		groups:  map[string]persistence.Group{},
		members: map[string][]persistence.GroupMember{},
		busy:    map[string]persistence.BusyInterval{},
		events:  map[string]persistence.Event{},
		invites: map[string]persistence.InviteLink{},
	}
}

func (f *fakeStore) CreateUser(_ context.Context, user persistence.User) error {
	if f.failWith != nil {
		return f.failWith
	}
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return persistence.ErrDuplicate
		}
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeStore) GetUser(_ context.Context, id string) (persistence.User, error) {
	if f.failWith != nil {
		return persistence.User{}, f.failWith
	}
	user, ok := f.users[id]
	if !ok {
		return persistence.User{}, persistence.ErrNotFound
	}
	return user, nil
}

func (f *fakeStore) GetUserByEmail(_ context.Context, email string) (persistence.User, error) {
	if f.failWith != nil {
		return persistence.User{}, f.failWith
	}
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return persistence.User{}, persistence.ErrNotFound
}

func (f *fakeStore) ListUsersByID(_ context.Context, ids []string) ([]persistence.User, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	var users []persistence.User
	for _, id := range ids {
		if user, ok := f.users[id]; ok {
			users = append(users, user)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].DisplayName < users[j].DisplayName })
	return users, nil
}

func (f *fakeStore) CreateGroup(_ context.Context, group persistence.Group) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.groups[group.ID] = group
	f.members[group.ID] = append(f.members[group.ID], persistence.GroupMember{
		GroupID:  group.ID,
		UserID:   group.CreatorID,
		Role:     "admin",
		JoinedAt: group.CreatedAt,
	})
	return nil
}

func (f *fakeStore) UpdateGroup(_ context.Context, group persistence.Group) error {
	if f.failWith != nil {
		return f.failWith
	}
	if _, ok := f.groups[group.ID]; !ok {
		return persistence.ErrNotFound
	}
	f.groups[group.ID] = group
	return nil
}

func (f *fakeStore) GetGroup(_ context.Context, id string) (persistence.Group, error) {
	if f.failWith != nil {
		return persistence.Group{}, f.failWith
	}
	group, ok := f.groups[id]
	if !ok {
		return persistence.Group{}, persistence.ErrNotFound
	}
	return group, nil
}

func (f *fakeStore) ListGroupsForUser(_ context.Context, userID string) ([]persistence.Group, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	var groups []persistence.Group
	for groupID, members := range f.members {
		for _, member := range members {
			if member.UserID == userID {
				groups = append(groups, f.groups[groupID])
				break
			}
		}
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Name < groups[j].Name })
	return groups, nil
}

func (f *fakeStore) DeleteGroup(_ context.Context, id string) error {
	if f.failWith != nil {
		return f.failWith
	}
	if _, ok := f.groups[id]; !ok {
		return persistence.ErrNotFound
	}
	delete(f.groups, id)
	delete(f.members, id)
	for busyID, interval := range f.busy {
		if interval.GroupID == id {
			delete(f.busy, busyID)
		}
	}
	for eventID, event := range f.events {
		if event.GroupID == id {
			delete(f.events, eventID)
		}
	}
	return nil
}

func (f *fakeStore) AddMember(_ context.Context, member persistence.GroupMember) error {
	if f.failWith != nil {
		return f.failWith
	}
	for _, existing := range f.members[member.GroupID] {
		if existing.UserID == member.UserID {
			return persistence.ErrDuplicate
		}
	}
	f.members[member.GroupID] = append(f.members[member.GroupID], member)
	return nil
}

func (f *fakeStore) RemoveMember(_ context.Context, groupID, userID string) error {
	if f.failWith != nil {
		return f.failWith
	}
	members := f.members[groupID]
	for i, member := range members {
		if member.UserID == userID {
			f.members[groupID] = append(members[:i:i], members[i+1:]...)
			return nil
		}
	}
	return persistence.ErrNotFound
}

func (f *fakeStore) ListMembers(_ context.Context, groupID string) ([]persistence.GroupMember, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	return append([]persistence.GroupMember(nil), f.members[groupID]...), nil
}

func (f *fakeStore) CreateBusyInterval(_ context.Context, interval persistence.BusyInterval) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.busy[interval.ID] = interval
	return nil
}

func (f *fakeStore) DeleteBusyInterval(_ context.Context, id string) error {
	if f.failWith != nil {
		return f.failWith
	}
	if _, ok := f.busy[id]; !ok {
		return persistence.ErrNotFound
	}
	delete(f.busy, id)
	return nil
}

func (f *fakeStore) GetBusyInterval(_ context.Context, id string) (persistence.BusyInterval, error) {
	if f.failWith != nil {
		return persistence.BusyInterval{}, f.failWith
	}
	interval, ok := f.busy[id]
	if !ok {
		return persistence.BusyInterval{}, persistence.ErrNotFound
	}
	return interval, nil
}

func (f *fakeStore) ListBusyIntervals(_ context.Context, filter persistence.BusyFilter) ([]persistence.BusyInterval, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	var intervals []persistence.BusyInterval
	for _, interval := range f.busy {
		if interval.GroupID != filter.GroupID {
			continue
		}
		if filter.DateFrom != "" && interval.Date < filter.DateFrom {
			continue
		}
		if filter.DateUntil != "" && interval.Date > filter.DateUntil {
			continue
		}
		intervals = append(intervals, interval)
	}
	sort.Slice(intervals, func(i, j int) bool {
		if intervals[i].Date != intervals[j].Date {
			return intervals[i].Date < intervals[j].Date
		}
		return intervals[i].StartTime < intervals[j].StartTime
	})
	return intervals, nil
}

func (f *fakeStore) CreateEvent(_ context.Context, event persistence.Event) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.events[event.ID] = event
	return nil
}

func (f *fakeStore) UpdateEvent(_ context.Context, event persistence.Event) error {
	if f.failWith != nil {
		return f.failWith
	}
	if _, ok := f.events[event.ID]; !ok {
		return persistence.ErrNotFound
	}
	f.events[event.ID] = event
	return nil
}

func (f *fakeStore) GetEvent(_ context.Context, id string) (persistence.Event, error) {
	if f.failWith != nil {
		return persistence.Event{}, f.failWith
	}
	event, ok := f.events[id]
	if !ok {
		return persistence.Event{}, persistence.ErrNotFound
	}
	return event, nil
}

func (f *fakeStore) ListEvents(_ context.Context, filter persistence.EventFilter) ([]persistence.Event, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	var events []persistence.Event
	for _, event := range f.events {
		if event.GroupID != filter.GroupID {
			continue
		}
		if filter.StartsAfter != nil && event.Start.Before(*filter.StartsAfter) {
			continue
		}
		if filter.StartsUntil != nil && event.Start.After(*filter.StartsUntil) {
			continue
		}
		events = append(events, event)
	}
	sort.Slice(events, func(i, j int) bool { return events[i].Start.Before(events[j].Start) })
	return events, nil
}

func (f *fakeStore) DeleteEvent(_ context.Context, id string) error {
	if f.failWith != nil {
		return f.failWith
	}
	if _, ok := f.events[id]; !ok {
		return persistence.ErrNotFound
	}
	delete(f.events, id)
	return nil
}

func (f *fakeStore) CreateInviteLink(_ context.Context, link persistence.InviteLink) error {
	if f.failWith != nil {
		return f.failWith
	}
	for _, existing := range f.invites {
		if existing.Code == link.Code {
			return persistence.ErrDuplicate
		}
	}
	f.invites[link.ID] = link
	return nil
}

func (f *fakeStore) GetInviteLinkByCode(_ context.Context, code string) (persistence.InviteLink, error) {
	if f.failWith != nil {
		return persistence.InviteLink{}, f.failWith
	}
	for _, link := range f.invites {
		if link.Code == code {
			return link, nil
		}
	}
	return persistence.InviteLink{}, persistence.ErrNotFound
}

func (f *fakeStore) GetActiveInviteLink(_ context.Context, groupID string) (persistence.InviteLink, error) {
	if f.failWith != nil {
		return persistence.InviteLink{}, f.failWith
	}
	for _, link := range f.invites {
		if link.GroupID == groupID && link.IsActive {
			return link, nil
		}
	}
	return persistence.InviteLink{}, persistence.ErrNotFound
}

func (f *fakeStore) DeactivateInviteLink(_ context.Context, id string) error {
	if f.failWith != nil {
		return f.failWith
	}
	link, ok := f.invites[id]
	if !ok {
		return persistence.ErrNotFound
	}
	link.IsActive = false
	f.invites[id] = link
	return nil
}

// sequenceIDs returns a generator yielding id-1, id-2, ...
func sequenceIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

func fixedNow(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// stubTokenIssuer returns a deterministic token.
type stubTokenIssuer struct {
	token     string
	expiresAt time.Time
	err       error
}

func (s stubTokenIssuer) Issue(userID, email string) (string, time.Time, error) {
	if s.err != nil {
		return "", time.Time{}, s.err
	}
	return s.token + ":" + userID, s.expiresAt, nil
}

func seedAccount(f *fakeStore, id, email, displayName string) {
	f.users[id] = persistence.User{
		ID:           id,
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: "hash",
	}
}

func seedMembership(f *fakeStore, groupID, userID, role string) {
	f.members[groupID] = append(f.members[groupID], persistence.GroupMember{
		GroupID: groupID,
		UserID:  userID,
		Role:    role,
	})
}
