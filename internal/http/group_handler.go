package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/example/group-scheduler/internal/application"
)

type groupService interface {
	CreateGroup(ctx context.Context, params application.CreateGroupParams) (application.Group, error)
	UpdateGroup(ctx context.Context, params application.UpdateGroupParams) (application.Group, error)
	DeleteGroup(ctx context.Context, principal application.Principal, groupID string) error
	GetGroup(ctx context.Context, principal application.Principal, groupID string) (application.Group, error)
	ListGroups(ctx context.Context, principal application.Principal) ([]application.Group, error)
	ListMembers(ctx context.Context, principal application.Principal, groupID string) ([]application.Member, error)
	RemoveMember(ctx context.Context, principal application.Principal, groupID, userID string) error
}

type inviteService interface {
	CreateInvite(ctx context.Context, params application.CreateInviteParams) (application.InviteLink, error)
	RevokeInvite(ctx context.Context, principal application.Principal, groupID string) error
	JoinGroup(ctx context.Context, principal application.Principal, code string) (application.Group, error)
}

// GroupHandler serves group, membership and invite endpoints.
type GroupHandler struct {
	groups    groupService
	invites   inviteService
	inviteTTL time.Duration
	logger    *slog.Logger
	respond   responder
}

// NewGroupHandler constructs a GroupHandler. inviteTTL is the default
// lifetime for minted invite links; zero means links never expire.
func NewGroupHandler(groups groupService, invites inviteService, inviteTTL time.Duration, logger *slog.Logger) *GroupHandler {
	base := defaultLogger(logger)
	return &GroupHandler{
		groups:    groups,
		invites:   invites,
		inviteTTL: inviteTTL,
		logger:    base,
		respond:   responder{logger: base},
	}
}

type groupRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type groupResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatorID   string    `json:"creator_id"`
	MemberCount int       `json:"member_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type memberResponse struct {
	UserID      string    `json:"user_id"`
	DisplayName string    `json:"display_name"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	JoinedAt    time.Time `json:"joined_at"`
}

type inviteResponse struct {
	Code      string     `json:"code"`
	GroupID   string     `json:"group_id"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

type joinRequest struct {
	Code string `json:"code"`
}

func toGroupResponse(group application.Group) groupResponse {
	return groupResponse{
		ID:          group.ID,
		Name:        group.Name,
		Description: group.Description,
		CreatorID:   group.CreatorID,
		MemberCount: group.MemberCount,
		CreatedAt:   group.CreatedAt,
		UpdatedAt:   group.UpdatedAt,
	}
}

func toMemberResponse(member application.Member) memberResponse {
	return memberResponse{
		UserID:      member.UserID,
		DisplayName: member.DisplayName,
		Email:       member.Email,
		Role:        member.Role,
		JoinedAt:    member.JoinedAt,
	}
}

func toInviteResponse(invite application.InviteLink) inviteResponse {
	return inviteResponse{
		Code:      invite.Code,
		GroupID:   invite.GroupID,
		CreatedAt: invite.CreatedAt,
		ExpiresAt: invite.ExpiresAt,
	}
}

func (h *GroupHandler) principal(w http.ResponseWriter, req *http.Request) (application.Principal, bool) {
	principal, ok := PrincipalFromContext(req.Context())
	if !ok {
		h.respond.writeError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
	}
	return principal, ok
}

// List handles GET /groups.
func (h *GroupHandler) List(w http.ResponseWriter, req *http.Request) {
	principal, ok := h.principal(w, req)
	if !ok {
		return
	}

	groups, err := h.groups.ListGroups(req.Context(), principal)
	if err != nil {
		h.respond.handleServiceError(w, err)
		return
	}

	payload := make([]groupResponse, 0, len(groups))
	for _, group := range groups {
		payload = append(payload, toGroupResponse(group))
	}
	h.respond.writeJSON(w, http.StatusOK, payload)
}

// Create handles POST /groups.
func (h *GroupHandler) Create(w http.ResponseWriter, req *http.Request) {
	principal, ok := h.principal(w, req)
	if !ok {
		return
	}

	var body groupRequest
	if err := decodeJSONBody(req, &body); err != nil {
		h.respond.badRequest(w, "request body must be valid JSON")
		return
	}

	group, err := h.groups.CreateGroup(req.Context(), application.CreateGroupParams{
		Principal: principal,
		Input:     application.GroupInput{Name: body.Name, Description: body.Description},
	})
	if err != nil {
		h.respond.handleServiceError(w, err)
		return
	}

	logger := handlerLogger(req.Context(), h.logger, "group", "create")
	logger.Info("group created", slog.String("group_id", group.ID))
	h.respond.writeJSON(w, http.StatusCreated, toGroupResponse(group))
}

// Get handles GET /groups/{id}.
func (h *GroupHandler) Get(w http.ResponseWriter, req *http.Request) {
	principal, ok := h.principal(w, req)
	if !ok {
		return
	}
	groupID, ok := groupIDFromContext(req.Context())
	if !ok {
		h.respond.badRequest(w, "missing group id")
		return
	}

	group, err := h.groups.GetGroup(req.Context(), principal, groupID)
	if err != nil {
		h.respond.handleServiceError(w, err)
		return
	}
	h.respond.writeJSON(w, http.StatusOK, toGroupResponse(group))
}

// Update handles PUT /groups/{id}.
func (h *GroupHandler) Update(w http.ResponseWriter, req *http.Request) {
	principal, ok := h.principal(w, req)
	if !ok {
		return
	}
	groupID, ok := groupIDFromContext(req.Context())
	if !ok {
		h.respond.badRequest(w, "missing group id")
		return
	}

	var body groupRequest
	if err := decodeJSONBody(req, &body); err != nil {
		h.respond.badRequest(w, "request body must be valid JSON")
		return
	}

	group, err := h.groups.UpdateGroup(req.Context(), application.UpdateGroupParams{
		Principal: principal,
		GroupID:   groupID,
		Input:     application.GroupInput{Name: body.Name, Description: body.Description},
	})
	if err != nil {
		h.respond.handleServiceError(w, err)
		return
	}
	h.respond.writeJSON(w, http.StatusOK, toGroupResponse(group))
}

// Delete handles DELETE /groups/{id}.
func (h *GroupHandler) Delete(w http.ResponseWriter, req *http.Request) {
	principal, ok := h.principal(w, req)
	if !ok {
		return
	}
	groupID, ok := groupIDFromContext(req.Context())
	if !ok {
		h.respond.badRequest(w, "missing group id")
		return
	}

	if err := h.groups.DeleteGroup(req.Context(), principal, groupID); err != nil {
		h.respond.handleServiceError(w, err)
		return
	}
	h.respond.writeJSON(w, http.StatusNoContent, nil)
}

// ListMembers handles GET /groups/{id}/members.
func (h *GroupHandler) ListMembers(w http.ResponseWriter, req *http.Request) {
	principal, ok := h.principal(w, req)
	if !ok {
		return
	}
	groupID, ok := groupIDFromContext(req.Context())
	if !ok {
		h.respond.badRequest(w, "missing group id")
		return
	}

	members, err := h.groups.ListMembers(req.Context(), principal, groupID)
	if err != nil {
		h.respond.handleServiceError(w, err)
		return
	}

	payload := make([]memberResponse, 0, len(members))
	for _, member := range members {
		payload = append(payload, toMemberResponse(member))
	}
	h.respond.writeJSON(w, http.StatusOK, payload)
}

// RemoveMember handles DELETE /groups/{id}/members/{uid}.
func (h *GroupHandler) RemoveMember(w http.ResponseWriter, req *http.Request) {
	principal, ok := h.principal(w, req)
	if !ok {
		return
	}
	groupID, ok := groupIDFromContext(req.Context())
	if !ok {
		h.respond.badRequest(w, "missing group id")
		return
	}
	memberID, ok := memberIDFromContext(req.Context())
	if !ok {
		h.respond.badRequest(w, "missing member id")
		return
	}

	if err := h.groups.RemoveMember(req.Context(), principal, groupID, memberID); err != nil {
		h.respond.handleServiceError(w, err)
		return
	}
	h.respond.writeJSON(w, http.StatusNoContent, nil)
}

// CreateInvite handles POST /groups/{id}/invites.
func (h *GroupHandler) CreateInvite(w http.ResponseWriter, req *http.Request) {
	principal, ok := h.principal(w, req)
	if !ok {
		return
	}
	groupID, ok := groupIDFromContext(req.Context())
	if !ok {
		h.respond.badRequest(w, "missing group id")
		return
	}

	invite, err := h.invites.CreateInvite(req.Context(), application.CreateInviteParams{
		Principal: principal,
		GroupID:   groupID,
		TTL:       h.inviteTTL,
	})
	if err != nil {
		h.respond.handleServiceError(w, err)
		return
	}

	logger := handlerLogger(req.Context(), h.logger, "group", "create_invite")
	logger.Info("invite created", slog.String("group_id", groupID))
	h.respond.writeJSON(w, http.StatusCreated, toInviteResponse(invite))
}

// RevokeInvite handles DELETE /groups/{id}/invites.
func (h *GroupHandler) RevokeInvite(w http.ResponseWriter, req *http.Request) {
	principal, ok := h.principal(w, req)
	if !ok {
		return
	}
	groupID, ok := groupIDFromContext(req.Context())
	if !ok {
		h.respond.badRequest(w, "missing group id")
		return
	}

	if err := h.invites.RevokeInvite(req.Context(), principal, groupID); err != nil {
		h.respond.handleServiceError(w, err)
		return
	}
	h.respond.writeJSON(w, http.StatusNoContent, nil)
}

// Join handles POST /groups/join.
func (h *GroupHandler) Join(w http.ResponseWriter, req *http.Request) {
	principal, ok := h.principal(w, req)
	if !ok {
		return
	}

	var body joinRequest
	if err := decodeJSONBody(req, &body); err != nil {
		h.respond.badRequest(w, "request body must be valid JSON")
		return
	}

	group, err := h.invites.JoinGroup(req.Context(), principal, body.Code)
	if err != nil {
		h.respond.handleServiceError(w, err)
		return
	}

	logger := handlerLogger(req.Context(), h.logger, "group", "join")
	logger.Info("member joined via invite", slog.String("group_id", group.ID))
	h.respond.writeJSON(w, http.StatusOK, toGroupResponse(group))
}
