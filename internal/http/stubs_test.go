package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/example/group-scheduler/internal/application"
	"github.com/example/group-scheduler/internal/auth"
)

type stubValidator struct {
	claims *auth.Claims
	err    error
}

func (v stubValidator) Validate(token string) (*auth.Claims, error) {
	if v.err != nil {
		return nil, v.err
	}
	return v.claims, nil
}

type stubAuthService struct {
	registerFn     func(ctx context.Context, params application.RegisterParams) (application.AuthResult, error)
	authenticateFn func(ctx context.Context, params application.AuthenticateParams) (application.AuthResult, error)
	profileFn      func(ctx context.Context, principal application.Principal) (application.User, error)
}

func (s stubAuthService) Register(ctx context.Context, params application.RegisterParams) (application.AuthResult, error) {
	return s.registerFn(ctx, params)
}

func (s stubAuthService) Authenticate(ctx context.Context, params application.AuthenticateParams) (application.AuthResult, error) {
	return s.authenticateFn(ctx, params)
}

func (s stubAuthService) GetProfile(ctx context.Context, principal application.Principal) (application.User, error) {
	return s.profileFn(ctx, principal)
}

type stubGroupService struct {
	createFn       func(ctx context.Context, params application.CreateGroupParams) (application.Group, error)
	updateFn       func(ctx context.Context, params application.UpdateGroupParams) (application.Group, error)
	deleteFn       func(ctx context.Context, principal application.Principal, groupID string) error
	getFn          func(ctx context.Context, principal application.Principal, groupID string) (application.Group, error)
	listFn         func(ctx context.Context, principal application.Principal) ([]application.Group, error)
	listMembersFn  func(ctx context.Context, principal application.Principal, groupID string) ([]application.Member, error)
	removeMemberFn func(ctx context.Context, principal application.Principal, groupID, userID string) error
}

func (s stubGroupService) CreateGroup(ctx context.Context, params application.CreateGroupParams) (application.Group, error) {
	return s.createFn(ctx, params)
}

func (s stubGroupService) UpdateGroup(ctx context.Context, params application.UpdateGroupParams) (application.Group, error) {
	return s.updateFn(ctx, params)
}

func (s stubGroupService) DeleteGroup(ctx context.Context, principal application.Principal, groupID string) error {
	return s.deleteFn(ctx, principal, groupID)
}

func (s stubGroupService) GetGroup(ctx context.Context, principal application.Principal, groupID string) (application.Group, error) {
	return s.getFn(ctx, principal, groupID)
}

func (s stubGroupService) ListGroups(ctx context.Context, principal application.Principal) ([]application.Group, error) {
	return s.listFn(ctx, principal)
}

func (s stubGroupService) ListMembers(ctx context.Context, principal application.Principal, groupID string) ([]application.Member, error) {
	return s.listMembersFn(ctx, principal, groupID)
}

func (s stubGroupService) RemoveMember(ctx context.Context, principal application.Principal, groupID, userID string) error {
	return s.removeMemberFn(ctx, principal, groupID, userID)
}

type stubInviteService struct {
	createFn func(ctx context.Context, params application.CreateInviteParams) (application.InviteLink, error)
	revokeFn func(ctx context.Context, principal application.Principal, groupID string) error
	joinFn   func(ctx context.Context, principal application.Principal, code string) (application.Group, error)
}

func (s stubInviteService) CreateInvite(ctx context.Context, params application.CreateInviteParams) (application.InviteLink, error) {
	return s.createFn(ctx, params)
}

func (s stubInviteService) RevokeInvite(ctx context.Context, principal application.Principal, groupID string) error {
	return s.revokeFn(ctx, principal, groupID)
}

func (s stubInviteService) JoinGroup(ctx context.Context, principal application.Principal, code string) (application.Group, error) {
	return s.joinFn(ctx, principal, code)
}

type stubBusyService struct {
	declareFn func(ctx context.Context, params application.DeclareBusyParams) (application.BusyInterval, error)
	deleteFn  func(ctx context.Context, principal application.Principal, intervalID string) error
	listFn    func(ctx context.Context, params application.ListBusyParams) ([]application.BusyInterval, error)
}

func (s stubBusyService) DeclareBusy(ctx context.Context, params application.DeclareBusyParams) (application.BusyInterval, error) {
	return s.declareFn(ctx, params)
}

func (s stubBusyService) DeleteBusy(ctx context.Context, principal application.Principal, intervalID string) error {
	return s.deleteFn(ctx, principal, intervalID)
}

func (s stubBusyService) ListBusy(ctx context.Context, params application.ListBusyParams) ([]application.BusyInterval, error) {
	return s.listFn(ctx, params)
}

type stubEventService struct {
	createFn func(ctx context.Context, params application.CreateEventParams) (application.Event, error)
	updateFn func(ctx context.Context, params application.UpdateEventParams) (application.Event, error)
	deleteFn func(ctx context.Context, principal application.Principal, eventID string) error
	getFn    func(ctx context.Context, principal application.Principal, eventID string) (application.Event, error)
	listFn   func(ctx context.Context, params application.ListEventsParams) ([]application.Event, error)
}

func (s stubEventService) CreateEvent(ctx context.Context, params application.CreateEventParams) (application.Event, error) {
	return s.createFn(ctx, params)
}

func (s stubEventService) UpdateEvent(ctx context.Context, params application.UpdateEventParams) (application.Event, error) {
	return s.updateFn(ctx, params)
}

func (s stubEventService) DeleteEvent(ctx context.Context, principal application.Principal, eventID string) error {
	return s.deleteFn(ctx, principal, eventID)
}

func (s stubEventService) GetEvent(ctx context.Context, principal application.Principal, eventID string) (application.Event, error) {
	return s.getFn(ctx, principal, eventID)
}

func (s stubEventService) ListEvents(ctx context.Context, params application.ListEventsParams) ([]application.Event, error) {
	return s.listFn(ctx, params)
}

type stubAssistantService struct {
	queryFn   func(ctx context.Context, params application.AssistantQueryParams) (application.AssistantResponse, error)
	confirmFn func(ctx context.Context, params application.ConfirmSuggestionParams) (application.Event, error)
}

func (s stubAssistantService) Query(ctx context.Context, params application.AssistantQueryParams) (application.AssistantResponse, error) {
	return s.queryFn(ctx, params)
}

func (s stubAssistantService) ConfirmSuggestion(ctx context.Context, params application.ConfirmSuggestionParams) (application.Event, error) {
	return s.confirmFn(ctx, params)
}

var testPrincipal = application.Principal{UserID: "user-1", Email: "alice@example.com"}

// authedRequest builds a request carrying the test principal, bypassing
// the session middleware.
func authedRequest(t *testing.T, method, target, body string) *http.Request {
	t.Helper()
	req := newRequest(t, method, target, body)
	return req.WithContext(ContextWithPrincipal(req.Context(), testPrincipal))
}

func newRequest(t *testing.T, method, target, body string) *http.Request {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	return req
}
