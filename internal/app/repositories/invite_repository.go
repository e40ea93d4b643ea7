package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dheeraj5988/sustainable-cities/internal/app/models"
	"github.com/dheeraj5988/sustainable-cities/internal/db"
	"github.com/dheeraj5988/sustainable-cities/internal/pkg/apperrors"
	"github.com/dheeraj5988/sustainable-cities/internal/pkg/dberrors"
	"github.com/dheeraj5988/sustainable-cities/internal/pkg/logger"
)

// IInviteRepository defines the interface for worker invite database operations
type IInviteRepository interface {
	Create(ctx context.Context, invite *models.WorkerInvite) error
	GetByCode(ctx context.Context, code string) (*models.WorkerInvite, error)
	GetAll(ctx context.Context) ([]models.WorkerInvite, error)
	Delete(ctx context.Context, id string) error
	CountUnused(ctx context.Context) (int64, error)
	DeleteExpired(ctx context.Context) (int64, error)
}

// InviteRepository handles database operations for the worker_invites table
type InviteRepository struct {
	database *db.PostgresDB
}

// NewInviteRepository creates a new InviteRepository
func NewInviteRepository(database *db.PostgresDB) *InviteRepository {
	return &InviteRepository{database: database}
}

const inviteColumns = `id, code, email, created_by, is_used, used_by, created_at, expires_at`

// Create inserts a new invite and fills in the generated fields
func (r *InviteRepository) Create(ctx context.Context, invite *models.WorkerInvite) error {
	query := `
		INSERT INTO worker_invites (code, email, created_by, expires_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := r.database.Pool.QueryRow(ctx, query,
		invite.Code, invite.Email, invite.CreatedBy, invite.ExpiresAt,
	).Scan(&invite.ID, &invite.CreatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "worker_invites_code_key") {
			return apperrors.ErrResourceAlreadyExists
		}
		logger.Error().Err(err).Msg("Error creating invite")
		return fmt.Errorf("error creating invite: %w", err)
	}
	return nil
}

// GetByCode retrieves an invite by its code. A missing code returns
// (nil, nil); the validation layer treats a nil invite as an invalid code.
func (r *InviteRepository) GetByCode(ctx context.Context, code string) (*models.WorkerInvite, error) {
	query := `SELECT ` + inviteColumns + ` FROM worker_invites WHERE code = $1`

	var invite models.WorkerInvite
	err := r.database.Pool.QueryRow(ctx, query, code).Scan(
		&invite.ID, &invite.Code, &invite.Email, &invite.CreatedBy,
		&invite.IsUsed, &invite.UsedBy, &invite.CreatedAt, &invite.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		logger.Error().Err(err).Msg("Error retrieving invite")
		return nil, fmt.Errorf("error retrieving invite: %w", err)
	}
	return &invite, nil
}

// GetAll retrieves all invites, newest first
func (r *InviteRepository) GetAll(ctx context.Context) ([]models.WorkerInvite, error) {
	query := `SELECT ` + inviteColumns + ` FROM worker_invites ORDER BY created_at DESC`

	rows, err := r.database.Pool.Query(ctx, query)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing invites")
		return nil, fmt.Errorf("error listing invites: %w", err)
	}
	defer rows.Close()

	var invites []models.WorkerInvite
	for rows.Next() {
		var invite models.WorkerInvite
		err := rows.Scan(
			&invite.ID, &invite.Code, &invite.Email, &invite.CreatedBy,
			&invite.IsUsed, &invite.UsedBy, &invite.CreatedAt, &invite.ExpiresAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning invite row: %w", err)
		}
		invites = append(invites, invite)
	}
	return invites, rows.Err()
}

// Delete removes an invite
func (r *InviteRepository) Delete(ctx context.Context, id string) error {
	cmdTag, err := r.database.Pool.Exec(ctx, `DELETE FROM worker_invites WHERE id = $1`, id)
	if err != nil {
		logger.Error().Err(err).Str("inviteID", id).Msg("Error deleting invite")
		return fmt.Errorf("error deleting invite: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewResourceNotFoundError("invite not found")
	}
	return nil
}

// CountUnused returns the number of unused, unexpired invites
func (r *InviteRepository) CountUnused(ctx context.Context) (int64, error) {
	var count int64
	err := r.database.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM worker_invites WHERE is_used = FALSE AND expires_at > NOW()`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting unused invites: %w", err)
	}
	return count, nil
}

// DeleteExpired removes spent invites and unused invites past their expiry
func (r *InviteRepository) DeleteExpired(ctx context.Context) (int64, error) {
	cmdTag, err := r.database.Pool.Exec(ctx,
		`DELETE FROM worker_invites WHERE is_used = TRUE OR expires_at < NOW()`)
	if err != nil {
		logger.Error().Err(err).Msg("Error deleting expired invites")
		return 0, fmt.Errorf("error deleting expired invites: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}
