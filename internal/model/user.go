package model

import "time"

// Credential kinds. Only password credentials are implemented; the kind
// column keeps the door open for OAuth-style providers.
const (
	CredentialPassword = "PASSWORD"
)

// User represents an identity record in the database.
type User struct {
	ID        string
	Email     string // normalized: trimmed and lower-cased
	Name      *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Credential is an authentication method linked to exactly one user.
// The (Kind, Identifier) pair is globally unique; for password credentials
// the identifier is the normalized email.
type Credential struct {
	ID           int64
	UserID       string
	Kind         string
	Identifier   string
	PasswordHash *string
	CreatedAt    time.Time
}

// SignupRequest represents a user registration request.
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse represents user data safe for API responses (no credential rows).
type UserResponse struct {
	ID    string  `json:"id"`
	Email string  `json:"email"`
	Name  *string `json:"name"`
}

// Session pairs a freshly issued token with the public user fields.
// The token travels in the session cookie, not the response body.
type Session struct {
	Token string
	User  UserResponse
}

// UserEnvelope wraps the public user fields the way the API serializes them.
type UserEnvelope struct {
	User UserResponse `json:"user"`
}

// PublicUser returns the API-safe representation of a user.
func (u *User) PublicUser() UserResponse {
	return UserResponse{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
	}
}
