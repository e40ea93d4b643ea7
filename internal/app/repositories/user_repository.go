package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/dheeraj5988/sustainable-cities/internal/app/models"
	"github.com/dheeraj5988/sustainable-cities/internal/db"
	"github.com/dheeraj5988/sustainable-cities/internal/pkg/apperrors"
	"github.com/dheeraj5988/sustainable-cities/internal/pkg/dberrors"
	"github.com/dheeraj5988/sustainable-cities/internal/pkg/helpers"
	"github.com/dheeraj5988/sustainable-cities/internal/pkg/logger"
)

// IUserRepository defines the interface for profile database operations
type IUserRepository interface {
	Create(ctx context.Context, user *models.User) error
	CreateWorkerWithInvite(ctx context.Context, user *models.User, inviteID string) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UpdateProfile(ctx context.Context, userID, name, email string) error
	UpdatePassword(ctx context.Context, userID, hashedPassword string) error
	UpdateRole(ctx context.Context, userID string, role models.RoleType) error
	UpdateActive(ctx context.Context, userID string, active bool) error
	UpdateLastLogin(ctx context.Context, userID string) error
	GetAll(ctx context.Context, role *string, search *string, page, pageSize int) ([]models.User, int64, error)
	CountByRole(ctx context.Context) (map[string]int64, error)
}

// UserRepository handles database operations for the profiles table
type UserRepository struct {
	database *db.PostgresDB
	sb       squirrel.StatementBuilderType
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(database *db.PostgresDB) *UserRepository {
	return &UserRepository{
		database: database,
		sb:       squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const userColumns = `id, email, password, name, role, is_active, last_login_at, created_at, updated_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Password,
		&user.Name,
		&user.RoleType,
		&user.IsActive,
		&user.LastLoginAt,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create inserts a new profile and fills in the generated fields
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO profiles (email, password, name, role, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`

	err := r.database.Pool.QueryRow(ctx, query,
		user.Email, user.Password, user.Name, user.RoleType, user.IsActive,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "profiles_email_key") {
			return apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Str("email", user.Email).Msg("Error creating user")
		return fmt.Errorf("error creating user: %w", err)
	}
	return nil
}

// CreateWorkerWithInvite creates a worker account and consumes the invite in
// one transaction. If the invite was consumed by a concurrent signup the
// whole transaction rolls back and no account is created.
func (r *UserRepository) CreateWorkerWithInvite(ctx context.Context, user *models.User, inviteID string) error {
	return r.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		query := `
			INSERT INTO profiles (email, password, name, role, is_active)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, created_at, updated_at`

		err := tx.QueryRow(ctx, query,
			user.Email, user.Password, user.Name, user.RoleType, user.IsActive,
		).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
		if err != nil {
			if dberrors.IsDuplicateConstraintError(err, "profiles_email_key") {
				return apperrors.ErrEmailAlreadyExists
			}
			return fmt.Errorf("error creating worker account: %w", err)
		}

		cmdTag, err := tx.Exec(ctx,
			`UPDATE worker_invites SET is_used = TRUE, used_by = $1 WHERE id = $2 AND is_used = FALSE`,
			user.ID, inviteID)
		if err != nil {
			return fmt.Errorf("error consuming invite: %w", err)
		}
		if cmdTag.RowsAffected() == 0 {
			// Lost the race against another signup with the same code
			return apperrors.ErrInviteAlreadyUsed
		}
		return nil
	})
}

// GetByID retrieves a profile by ID
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM profiles WHERE id = $1`

	user, err := scanUser(r.database.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Str("userID", id).Msg("Error retrieving user")
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}
	return user, nil
}

// GetByEmail retrieves a profile by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM profiles WHERE email = $1`

	user, err := scanUser(r.database.Pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Str("email", email).Msg("Error retrieving user by email")
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}
	return user, nil
}

// EmailExists checks if an email already exists
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.database.Pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM profiles WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking email existence: %w", err)
	}
	return exists, nil
}

// UpdateProfile updates a user's basic profile information
func (r *UserRepository) UpdateProfile(ctx context.Context, userID, name, email string) error {
	sql, args, err := r.sb.Update("profiles").
		Set("name", name).
		Set("email", email).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update profile query: %w", err)
	}

	cmdTag, err := r.database.Pool.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "profiles_email_key") {
			return apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Str("userID", userID).Msg("Error updating profile")
		return fmt.Errorf("error updating profile: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// UpdatePassword replaces the stored password hash
func (r *UserRepository) UpdatePassword(ctx context.Context, userID, hashedPassword string) error {
	cmdTag, err := r.database.Pool.Exec(ctx,
		`UPDATE profiles SET password = $1, updated_at = NOW() WHERE id = $2`,
		hashedPassword, userID)
	if err != nil {
		logger.Error().Err(err).Str("userID", userID).Msg("Error updating password")
		return fmt.Errorf("error updating password: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// UpdateRole changes a user's role
func (r *UserRepository) UpdateRole(ctx context.Context, userID string, role models.RoleType) error {
	cmdTag, err := r.database.Pool.Exec(ctx,
		`UPDATE profiles SET role = $1, updated_at = NOW() WHERE id = $2`,
		role, userID)
	if err != nil {
		logger.Error().Err(err).Str("userID", userID).Msg("Error updating role")
		return fmt.Errorf("error updating role: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// UpdateActive enables or disables an account
func (r *UserRepository) UpdateActive(ctx context.Context, userID string, active bool) error {
	cmdTag, err := r.database.Pool.Exec(ctx,
		`UPDATE profiles SET is_active = $1, updated_at = NOW() WHERE id = $2`,
		active, userID)
	if err != nil {
		logger.Error().Err(err).Str("userID", userID).Msg("Error updating active flag")
		return fmt.Errorf("error updating active flag: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// UpdateLastLogin updates the last login time
func (r *UserRepository) UpdateLastLogin(ctx context.Context, userID string) error {
	_, err := r.database.Pool.Exec(ctx,
		`UPDATE profiles SET last_login_at = NOW() WHERE id = $1`, userID)
	if err != nil {
		logger.Error().Err(err).Str("userID", userID).Msg("Error updating last login")
		return fmt.Errorf("error updating last login: %w", err)
	}
	return nil
}

// GetAll retrieves profiles with filtering and pagination
func (r *UserRepository) GetAll(ctx context.Context, role *string, search *string, page, pageSize int) ([]models.User, int64, error) {
	builder := r.sb.Select(userColumns + ", COUNT(*) OVER() AS total_count").
		From("profiles")

	if role != nil && *role != "" {
		builder = builder.Where(squirrel.Eq{"role": *role})
	}
	if search != nil && *search != "" {
		pattern := "%" + *search + "%"
		builder = builder.Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"email": pattern},
		})
	}

	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)
	builder = builder.OrderBy("created_at DESC").
		Limit(uint64(limit)).
		Offset(offset)

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list users query: %w", err)
	}

	rows, err := r.database.Pool.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing users")
		return nil, 0, fmt.Errorf("error listing users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	var total int64
	for rows.Next() {
		var user models.User
		err := rows.Scan(
			&user.ID,
			&user.Email,
			&user.Password,
			&user.Name,
			&user.RoleType,
			&user.IsActive,
			&user.LastLoginAt,
			&user.CreatedAt,
			&user.UpdatedAt,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning user row: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating user rows: %w", err)
	}

	return users, total, nil
}

// CountByRole returns the number of profiles per role
func (r *UserRepository) CountByRole(ctx context.Context) (map[string]int64, error) {
	rows, err := r.database.Pool.Query(ctx,
		`SELECT role, COUNT(*) FROM profiles GROUP BY role`)
	if err != nil {
		return nil, fmt.Errorf("error counting users by role: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var role string
		var count int64
		if err := rows.Scan(&role, &count); err != nil {
			return nil, fmt.Errorf("error scanning role count: %w", err)
		}
		counts[role] = count
	}
	return counts, rows.Err()
}
