package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/example/group-scheduler/internal/persistence"
)

// UserStore exposes the account persistence operations needed by the auth service.
type UserStore interface {
	CreateUser(ctx context.Context, user persistence.User) error
	GetUser(ctx context.Context, id string) (persistence.User, error)
	GetUserByEmail(ctx context.Context, email string) (persistence.User, error)
}

// TokenIssuer signs session tokens for authenticated users.
type TokenIssuer interface {
	Issue(userID, email string) (token string, expiresAt time.Time, err error)
}

// PasswordHasher derives a storable hash from a plain password.
type PasswordHasher func(password string) (string, error)

// PasswordVerifier compares a stored hash with a candidate password.
type PasswordVerifier func(hashedPassword, password string) error

// AuthService coordinates registration and login flows.
type AuthService struct {
	users          UserStore
	tokens         TokenIssuer
	hashPassword   PasswordHasher
	verifyPassword PasswordVerifier
	idGenerator    func() string
	now            func() time.Time
	logger         *slog.Logger
}

// NewAuthService constructs an AuthService with the provided dependencies.
func NewAuthService(users UserStore, tokens TokenIssuer, idGenerator func() string, now func() time.Time) *AuthService {
	return NewAuthServiceWithLogger(users, tokens, idGenerator, now, nil)
}

// NewAuthServiceWithLogger constructs an AuthService with a specified logger.
func NewAuthServiceWithLogger(users UserStore, tokens TokenIssuer, idGenerator func() string, now func() time.Time, logger *slog.Logger) *AuthService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &AuthService{
		users:  users,
		tokens: tokens,
		hashPassword: func(password string) (string, error) {
			return CreatePasswordHash(password, DefaultArgon2idParams)
		},
		verifyPassword: VerifyPassword,
		idGenerator:    idGenerator,
		now:            now,
		logger:         defaultLogger(logger),
	}
}

func (s *AuthService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "AuthService", operation, attrs...)
}

// Register validates input, hashes the password, and persists a new account.
func (s *AuthService) Register(ctx context.Context, params RegisterParams) (result AuthResult, err error) {
	if s == nil {
		err = fmt.Errorf("AuthService is nil")
		return
	}
	if s.users == nil {
		err = fmt.Errorf("user store not configured")
		return
	}

	email := strings.TrimSpace(strings.ToLower(params.Email))
	displayName := strings.TrimSpace(params.DisplayName)

	logger := s.loggerWith(ctx, "Register", "email", email)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "registration failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("user_id", result.User.ID).InfoContext(ctx, "account registered")
	}()

	vErr := &ValidationError{}
	if email == "" {
		vErr.add("email", "email is required")
	} else if _, mailErr := mail.ParseAddress(email); mailErr != nil {
		vErr.add("email", "email is invalid")
	}
	if displayName == "" {
		vErr.add("display_name", "display name is required")
	}
	if len(params.Password) < 8 {
		vErr.add("password", "password must be at least 8 characters")
	}
	if vErr.HasErrors() {
		err = vErr
		return
	}

	var hash string
	hash, err = s.hashPassword(params.Password)
	if err != nil {
		return
	}

	now := s.now()
	user := persistence.User{
		ID:           s.idGenerator(),
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err = mapStoreError(s.users.CreateUser(ctx, user)); err != nil {
		return
	}

	result, err = s.issue(user)
	return
}

// Authenticate validates credentials and issues a session token.
func (s *AuthService) Authenticate(ctx context.Context, params AuthenticateParams) (result AuthResult, err error) {
	if s == nil {
		err = fmt.Errorf("AuthService is nil")
		return
	}
	if s.users == nil {
		err = fmt.Errorf("user store not configured")
		return
	}

	email := strings.TrimSpace(strings.ToLower(params.Email))

	logger := s.loggerWith(ctx, "Authenticate", "email", email)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "authentication failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("user_id", result.User.ID).InfoContext(ctx, "authentication succeeded")
	}()

	if email == "" || params.Password == "" {
		err = ErrInvalidCredentials
		return
	}

	var user persistence.User
	user, err = s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			err = ErrInvalidCredentials
			return
		}
		return
	}

	if err = s.verifyPassword(user.PasswordHash, params.Password); err != nil {
		err = ErrInvalidCredentials
		return
	}

	result, err = s.issue(user)
	return
}

// GetProfile returns the account behind a principal.
func (s *AuthService) GetProfile(ctx context.Context, principal Principal) (User, error) {
	if s == nil {
		return User{}, fmt.Errorf("AuthService is nil")
	}
	if s.users == nil {
		return User{}, fmt.Errorf("user store not configured")
	}

	user, err := s.users.GetUser(ctx, principal.UserID)
	if err != nil {
		return User{}, mapStoreError(err)
	}
	return toApplicationUser(user), nil
}

func (s *AuthService) issue(user persistence.User) (AuthResult, error) {
	if s.tokens == nil {
		return AuthResult{}, fmt.Errorf("token issuer not configured")
	}
	token, expiresAt, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{
		User:      toApplicationUser(user),
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}
