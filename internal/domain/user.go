package domain

import (
	"context"
	"time"
)

type contextKey string

// UserContextKey holds the authenticated *AuthClaims on a request context.
const UserContextKey contextKey = "user"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID               int64      `json:"id"`
	Email            string     `json:"email"`
	Name             string     `json:"name"`
	PasswordHash     string     `json:"-"`
	Role             string     `json:"role"`
	ResetToken       *string    `json:"-"`
	ResetTokenExpiry *time.Time `json:"-"`
	CreatedAt        time.Time  `json:"createdAt"`
}

// AuthClaims is the identity extracted from a verified access token.
type AuthClaims struct {
	UserID int64
	Email  string
	Role   string
}

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	// SetResetToken stores a one-time password reset token with its expiry.
	SetResetToken(ctx context.Context, userID int64, token string, expiry time.Time) error
	// GetByResetToken resolves an unexpired token; expired or unknown
	// tokens yield ErrNotFound.
	GetByResetToken(ctx context.Context, token string) (*User, error)
	// UpdatePassword replaces the password hash and clears any pending
	// reset token.
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
}
