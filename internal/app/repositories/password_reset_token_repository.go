package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/dheeraj5988/sustainable-cities/internal/db"
	"github.com/dheeraj5988/sustainable-cities/internal/pkg/apperrors"
	"github.com/dheeraj5988/sustainable-cities/internal/pkg/logger"
)

// IPasswordResetTokenRepository defines the interface for password reset
// token database operations
type IPasswordResetTokenRepository interface {
	CreateToken(ctx context.Context, userID, token string, expiresAt time.Time) error
	GetUserIDByToken(ctx context.Context, token string) (string, error)
	MarkTokenUsed(ctx context.Context, token string) error
	CleanupExpiredTokens(ctx context.Context) (int64, error)
}

// PasswordResetTokenRepository handles password reset token database
// operations
type PasswordResetTokenRepository struct {
	database *db.PostgresDB
}

// NewPasswordResetTokenRepository creates a new PasswordResetTokenRepository
func NewPasswordResetTokenRepository(database *db.PostgresDB) *PasswordResetTokenRepository {
	return &PasswordResetTokenRepository{database: database}
}

// CreateToken stores a new password reset token
func (r *PasswordResetTokenRepository) CreateToken(ctx context.Context, userID, token string, expiresAt time.Time) error {
	_, err := r.database.Pool.Exec(ctx,
		`INSERT INTO password_reset_tokens (user_id, token, expires_at) VALUES ($1, $2, $3)`,
		userID, token, expiresAt)
	if err != nil {
		logger.Error().Err(err).Str("userID", userID).Msg("Error creating password reset token")
		return fmt.Errorf("error creating password reset token: %w", err)
	}
	return nil
}

// GetUserIDByToken validates a reset token and returns the owning user ID
func (r *PasswordResetTokenRepository) GetUserIDByToken(ctx context.Context, token string) (string, error) {
	var userID string
	var expiresAt time.Time
	var used bool

	err := r.database.Pool.QueryRow(ctx,
		`SELECT user_id, expires_at, used FROM password_reset_tokens WHERE token = $1`,
		token).Scan(&userID, &expiresAt, &used)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.ErrInvalidPasswordResetToken
		}
		logger.Error().Err(err).Msg("Error scanning password reset token row")
		return "", fmt.Errorf("error retrieving password reset token: %w", err)
	}

	if used {
		return "", apperrors.ErrPasswordResetTokenUsed
	}
	if expiresAt.Before(time.Now()) {
		return "", apperrors.ErrInvalidPasswordResetToken
	}

	return userID, nil
}

// MarkTokenUsed invalidates a reset token after a successful reset
func (r *PasswordResetTokenRepository) MarkTokenUsed(ctx context.Context, token string) error {
	cmdTag, err := r.database.Pool.Exec(ctx,
		`UPDATE password_reset_tokens SET used = TRUE WHERE token = $1`, token)
	if err != nil {
		logger.Error().Err(err).Msg("Error marking password reset token used")
		return fmt.Errorf("error marking password reset token used: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrInvalidPasswordResetToken
	}
	return nil
}

// CleanupExpiredTokens removes expired and used reset tokens
func (r *PasswordResetTokenRepository) CleanupExpiredTokens(ctx context.Context) (int64, error) {
	cmdTag, err := r.database.Pool.Exec(ctx,
		`DELETE FROM password_reset_tokens WHERE expires_at < NOW() OR used = TRUE`)
	if err != nil {
		logger.Error().Err(err).Msg("Error cleaning up password reset tokens")
		return 0, fmt.Errorf("error cleaning up password reset tokens: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}
