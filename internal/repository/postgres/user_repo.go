package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"stylefeed-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type userRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) domain.UserRepository {
	return &userRepository{db: db}
}

const uniqueViolation = "23505"

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	var createdAt pgtype.Timestamptz
	err := r.db.QueryRow(ctx,
		"INSERT INTO users (email, name, password_hash, role) VALUES ($1, $2, $3, $4) RETURNING id, created_at",
		u.Email, u.Name, u.PasswordHash, u.Role,
	).Scan(&u.ID, &createdAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.ErrEmailTaken
		}
		return fmt.Errorf("create user: %w", err)
	}
	u.CreatedAt = pgtimeToTime(createdAt)
	return nil
}

func (r *userRepository) scanUser(row pgx.Row) (*domain.User, error) {
	var (
		u           domain.User
		resetToken  pgtype.Text
		resetExpiry pgtype.Timestamptz
		createdAt   pgtype.Timestamptz
	)
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Role, &resetToken, &resetExpiry, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	u.ResetToken = textToStrPtr(resetToken)
	u.ResetTokenExpiry = pgtimeToTimePtr(resetExpiry)
	u.CreatedAt = pgtimeToTime(createdAt)
	return &u, nil
}

const userColumns = "id, email, name, password_hash, role, reset_token, reset_token_expiry, created_at"

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.scanUser(r.db.QueryRow(ctx,
		"SELECT "+userColumns+" FROM users WHERE LOWER(email) = LOWER($1)", email))
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.scanUser(r.db.QueryRow(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = $1", id))
}

func (r *userRepository) SetResetToken(ctx context.Context, userID int64, token string, expiry time.Time) error {
	tag, err := r.db.Exec(ctx,
		"UPDATE users SET reset_token = $1, reset_token_expiry = $2 WHERE id = $3",
		token, expiry, userID)
	if err != nil {
		return fmt.Errorf("set reset token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *userRepository) GetByResetToken(ctx context.Context, token string) (*domain.User, error) {
	return r.scanUser(r.db.QueryRow(ctx,
		"SELECT "+userColumns+" FROM users WHERE reset_token = $1 AND reset_token_expiry > now()", token))
}

func (r *userRepository) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	tag, err := r.db.Exec(ctx,
		"UPDATE users SET password_hash = $1, reset_token = NULL, reset_token_expiry = NULL WHERE id = $2",
		passwordHash, userID)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
