package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"stylefeed-backend/internal/domain"
	"stylefeed-backend/pkg/utils"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const resetTokenTTL = 24 * time.Hour

// Mailer sends transactional mail. Implemented by infrastructure/mailer.
type Mailer interface {
	SendPasswordReset(ctx context.Context, to, name, token string) error
}

type AuthUsecase struct {
	users       domain.UserRepository
	mailer      Mailer
	tokenExpiry time.Duration
}

func NewAuthUsecase(users domain.UserRepository, mailer Mailer, tokenExpiry time.Duration) *AuthUsecase {
	return &AuthUsecase{
		users:       users,
		mailer:      mailer,
		tokenExpiry: tokenExpiry,
	}
}

// AuthResponse is the payload returned on successful register/login.
type AuthResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Token string `json:"token"`
}

func (uc *AuthUsecase) Register(ctx context.Context, email, name, password string) (*AuthResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	name = strings.TrimSpace(name)
	if email == "" || !strings.Contains(email, "@") {
		return nil, errors.New("a valid email is required")
	}
	if name == "" {
		return nil, errors.New("name is required")
	}
	if len(password) < 8 {
		return nil, errors.New("password must be at least 8 characters")
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		Role:         domain.RoleUser,
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}

	log.Info().Int64("user_id", user.ID).Str("email", email).Msg("user registered")
	return uc.respond(user)
}

func (uc *AuthUsecase) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	user, err := uc.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if !utils.CheckPassword(user.PasswordHash, password) {
		return nil, domain.ErrInvalidCredentials
	}
	return uc.respond(user)
}

// ForgotPassword issues a reset token and mails it. It deliberately reports
// nothing about whether the email exists.
func (uc *AuthUsecase) ForgotPassword(ctx context.Context, email string) error {
	user, err := uc.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return err
	}

	token := uuid.NewString()
	if err := uc.users.SetResetToken(ctx, user.ID, token, time.Now().Add(resetTokenTTL)); err != nil {
		return err
	}

	if err := uc.mailer.SendPasswordReset(ctx, user.Email, user.Name, token); err != nil {
		// The token is already stored; a mail hiccup should not leak
		// account existence either.
		log.Error().Err(err).Str("email", user.Email).Msg("failed to send password reset mail")
	}
	return nil
}

func (uc *AuthUsecase) ResetPassword(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < 8 {
		return errors.New("password must be at least 8 characters")
	}

	user, err := uc.users.GetByResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrInvalidCredentials
		}
		return err
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return uc.users.UpdatePassword(ctx, user.ID, hash)
}

// Verify resolves a bearer token back to its user.
func (uc *AuthUsecase) Verify(ctx context.Context, claims *domain.AuthClaims) (*domain.User, error) {
	return uc.users.GetByID(ctx, claims.UserID)
}

func (uc *AuthUsecase) respond(user *domain.User) (*AuthResponse, error) {
	token, err := utils.GenerateJWT(user.ID, user.Email, user.Role, uc.tokenExpiry)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
		Token: token,
	}, nil
}
