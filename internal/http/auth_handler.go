package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/example/group-scheduler/internal/application"
)

type authService interface {
	Register(ctx context.Context, params application.RegisterParams) (application.AuthResult, error)
	Authenticate(ctx context.Context, params application.AuthenticateParams) (application.AuthResult, error)
	GetProfile(ctx context.Context, principal application.Principal) (application.User, error)
}

// AuthHandler serves registration, login and profile endpoints.
type AuthHandler struct {
	service authService
	logger  *slog.Logger
	respond responder
}

// NewAuthHandler constructs an AuthHandler backed by the given service.
func NewAuthHandler(service authService, logger *slog.Logger) *AuthHandler {
	base := defaultLogger(logger)
	return &AuthHandler{service: service, logger: base, respond: responder{logger: base}}
}

type registerRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Password    string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
}

type authResponse struct {
	User      userResponse `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
}

func toUserResponse(user application.User) userResponse {
	return userResponse{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		CreatedAt:   user.CreatedAt,
	}
}

func toAuthResponse(result application.AuthResult) authResponse {
	return authResponse{
		User:      toUserResponse(result.User),
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
	}
}

// Register handles POST /users.
func (h *AuthHandler) Register(w http.ResponseWriter, req *http.Request) {
	logger := handlerLogger(req.Context(), h.logger, "auth", "register")

	var body registerRequest
	if err := decodeJSONBody(req, &body); err != nil {
		h.respond.badRequest(w, "request body must be valid JSON")
		return
	}

	result, err := h.service.Register(req.Context(), application.RegisterParams{
		Email:       body.Email,
		DisplayName: body.DisplayName,
		Password:    body.Password,
	})
	if err != nil {
		h.respond.handleServiceError(w, err)
		return
	}

	logger.Info("user registered", slog.String("user_id", result.User.ID))
	setSessionCookie(w, result.Token, result.ExpiresAt)
	h.respond.writeJSON(w, http.StatusCreated, toAuthResponse(result))
}

// Login handles POST /sessions.
func (h *AuthHandler) Login(w http.ResponseWriter, req *http.Request) {
	logger := handlerLogger(req.Context(), h.logger, "auth", "login")

	var body loginRequest
	if err := decodeJSONBody(req, &body); err != nil {
		h.respond.badRequest(w, "request body must be valid JSON")
		return
	}

	result, err := h.service.Authenticate(req.Context(), application.AuthenticateParams{
		Email:    body.Email,
		Password: body.Password,
	})
	if err != nil {
		h.respond.handleServiceError(w, err)
		return
	}

	logger.Info("user logged in", slog.String("user_id", result.User.ID))
	setSessionCookie(w, result.Token, result.ExpiresAt)
	h.respond.writeJSON(w, http.StatusOK, toAuthResponse(result))
}

// Logout handles DELETE /sessions. Tokens stay valid until expiry; the
// endpoint only clears the browser cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, req *http.Request) {
	clearSessionCookie(w)
	h.respond.writeJSON(w, http.StatusNoContent, nil)
}

// Profile handles GET /users/me.
func (h *AuthHandler) Profile(w http.ResponseWriter, req *http.Request) {
	principal, ok := PrincipalFromContext(req.Context())
	if !ok {
		h.respond.writeError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
		return
	}

	user, err := h.service.GetProfile(req.Context(), principal)
	if err != nil {
		h.respond.handleServiceError(w, err)
		return
	}

	h.respond.writeJSON(w, http.StatusOK, toUserResponse(user))
}

func setSessionCookie(w http.ResponseWriter, token string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
}
