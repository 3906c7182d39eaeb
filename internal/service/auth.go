package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/NiteshMarwaha/vibetrader/internal/crypto"
	"github.com/NiteshMarwaha/vibetrader/internal/model"
	"github.com/NiteshMarwaha/vibetrader/internal/repository"
)

var (
	ErrEmailRequired    = errors.New("email is required")
	ErrPasswordRequired = errors.New("password is required")
	ErrEmailTaken       = errors.New("email is already registered")

	// ErrInvalidCredentials covers both unknown email and wrong password.
	// Callers must not distinguish the two, to avoid account enumeration.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrSessionInvalid = errors.New("invalid or expired session")
)

// AuthService handles signup, login, and session verification.
type AuthService struct {
	users      UserStore
	jwtSecret  string
	sessionTTL time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserStore, secret string, sessionTTL time.Duration) *AuthService {
	return &AuthService{
		users:      users,
		jwtSecret:  secret,
		sessionTTL: sessionTTL,
	}
}

// Signup creates a user with a linked password credential and issues a
// session token. The user and credential rows are written atomically.
func (s *AuthService) Signup(ctx context.Context, req model.SignupRequest) (model.Session, error) {
	if strings.TrimSpace(req.Email) == "" {
		return model.Session{}, ErrEmailRequired
	}
	if req.Password == "" {
		return model.Session{}, ErrPasswordRequired
	}

	email := normalizeEmail(req.Email)

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return model.Session{}, err
	}

	user := &model.User{
		ID:    uuid.NewString(),
		Email: email,
	}
	if name := strings.TrimSpace(req.Name); name != "" {
		user.Name = &name
	}

	cred := &model.Credential{
		UserID:       user.ID,
		Kind:         model.CredentialPassword,
		Identifier:   email,
		PasswordHash: &hash,
	}

	if err := s.users.CreateWithCredential(ctx, user, cred); err != nil {
		if errors.Is(err, repository.ErrDuplicateCredential) {
			return model.Session{}, ErrEmailTaken
		}
		return model.Session{}, err
	}

	return s.issueSession(user)
}

// Login verifies a password credential and issues a session token.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.Session, error) {
	if strings.TrimSpace(req.Email) == "" {
		return model.Session{}, ErrEmailRequired
	}
	if req.Password == "" {
		return model.Session{}, ErrPasswordRequired
	}

	email := normalizeEmail(req.Email)

	cred, err := s.users.GetCredential(ctx, model.CredentialPassword, email)
	if err != nil {
		if errors.Is(err, repository.ErrCredentialNotFound) {
			return model.Session{}, ErrInvalidCredentials
		}
		return model.Session{}, err
	}

	if cred.PasswordHash == nil || !crypto.VerifyPassword(req.Password, *cred.PasswordHash) {
		return model.Session{}, ErrInvalidCredentials
	}

	user, err := s.users.GetByID(ctx, cred.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.Session{}, ErrInvalidCredentials
		}
		return model.Session{}, err
	}

	return s.issueSession(user)
}

// CurrentUser verifies a session token and loads the user it names from the
// store, so a deleted account is rejected even while its token is unexpired.
func (s *AuthService) CurrentUser(ctx context.Context, token string) (model.UserResponse, error) {
	claims, err := crypto.ValidateToken(token, s.jwtSecret)
	if err != nil {
		return model.UserResponse{}, ErrSessionInvalid
	}

	user, err := s.users.GetByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.UserResponse{}, ErrSessionInvalid
		}
		return model.UserResponse{}, err
	}

	return user.PublicUser(), nil
}

func (s *AuthService) issueSession(user *model.User) (model.Session, error) {
	token, err := crypto.GenerateToken(user.ID, user.Email, s.jwtSecret, s.sessionTTL)
	if err != nil {
		return model.Session{}, err
	}

	return model.Session{
		Token: token,
		User:  user.PublicUser(),
	}, nil
}

// normalizeEmail lower-cases and trims an email; the result is the uniqueness
// key for password credentials.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
