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
	"github.com/dheeraj5988/sustainable-cities/internal/pkg/helpers"
	"github.com/dheeraj5988/sustainable-cities/internal/pkg/logger"
)

// IThreadRepository defines the interface for forum thread database operations
type IThreadRepository interface {
	Create(ctx context.Context, thread *models.ForumThread) error
	GetByID(ctx context.Context, id string) (*models.ForumThread, error)
	GetAll(ctx context.Context, status, tag *string, viewerID string, viewerIsAdmin bool, page, pageSize int) ([]models.ForumThread, int64, error)
	ApplyModeration(ctx context.Context, threadID string, status models.ThreadStatus, comment *string) error
	Delete(ctx context.Context, id string) error
	CountPending(ctx context.Context) (int64, error)
}

// ThreadRepository handles database operations for the forum_threads table
type ThreadRepository struct {
	database *db.PostgresDB
	sb       squirrel.StatementBuilderType
}

// NewThreadRepository creates a new ThreadRepository
func NewThreadRepository(database *db.PostgresDB) *ThreadRepository {
	return &ThreadRepository{
		database: database,
		sb:       squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new thread and fills in the generated fields
func (r *ThreadRepository) Create(ctx context.Context, thread *models.ForumThread) error {
	query := `
		INSERT INTO forum_threads (title, body, tags, status, created_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`

	err := r.database.Pool.QueryRow(ctx, query,
		thread.Title, thread.Body, thread.Tags, thread.Status, thread.CreatedBy,
	).Scan(&thread.ID, &thread.CreatedAt, &thread.UpdatedAt)
	if err != nil {
		logger.Error().Err(err).Str("createdBy", thread.CreatedBy).Msg("Error creating thread")
		return fmt.Errorf("error creating thread: %w", err)
	}
	return nil
}

// GetByID retrieves a thread with its author profile
func (r *ThreadRepository) GetByID(ctx context.Context, id string) (*models.ForumThread, error) {
	query := `
		SELECT
			t.id, t.title, t.body, t.tags, t.status, t.comment, t.comment_count,
			t.created_by, t.created_at, t.updated_at,
			a.name, a.email, a.role
		FROM forum_threads t
		JOIN profiles a ON a.id = t.created_by
		WHERE t.id = $1`

	var thread models.ForumThread
	var authorName, authorEmail string
	var authorRole models.RoleType

	err := r.database.Pool.QueryRow(ctx, query, id).Scan(
		&thread.ID, &thread.Title, &thread.Body, &thread.Tags,
		&thread.Status, &thread.Comment, &thread.CommentCount,
		&thread.CreatedBy, &thread.CreatedAt, &thread.UpdatedAt,
		&authorName, &authorEmail, &authorRole,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewResourceNotFoundError("thread not found")
		}
		logger.Error().Err(err).Str("threadID", id).Msg("Error retrieving thread")
		return nil, fmt.Errorf("error retrieving thread: %w", err)
	}

	thread.Author = &models.User{
		ID:       thread.CreatedBy,
		Name:     authorName,
		Email:    authorEmail,
		RoleType: authorRole,
	}

	return &thread, nil
}

// GetAll retrieves threads visible to the viewer, filtered and paginated.
// Non-admin viewers see Approved threads plus their own in any state.
func (r *ThreadRepository) GetAll(ctx context.Context, status, tag *string, viewerID string, viewerIsAdmin bool, page, pageSize int) ([]models.ForumThread, int64, error) {
	builder := r.sb.Select(
		"t.id", "t.title", "t.body", "t.tags", "t.status", "t.comment",
		"t.comment_count", "t.created_by", "t.created_at", "t.updated_at",
		"COUNT(*) OVER() AS total_count",
	).From("forum_threads t")

	if !viewerIsAdmin {
		builder = builder.Where(squirrel.Or{
			squirrel.Eq{"t.status": models.ThreadStatusApproved},
			squirrel.Eq{"t.created_by": viewerID},
		})
	}
	if status != nil && *status != "" {
		builder = builder.Where(squirrel.Eq{"t.status": *status})
	}
	if tag != nil && *tag != "" {
		builder = builder.Where(squirrel.Expr("? = ANY(t.tags)", *tag))
	}

	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)
	builder = builder.OrderBy("t.created_at DESC").
		Limit(uint64(limit)).
		Offset(offset)

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list threads query: %w", err)
	}

	rows, err := r.database.Pool.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing threads")
		return nil, 0, fmt.Errorf("error listing threads: %w", err)
	}
	defer rows.Close()

	var threads []models.ForumThread
	var total int64
	for rows.Next() {
		var thread models.ForumThread
		err := rows.Scan(
			&thread.ID, &thread.Title, &thread.Body, &thread.Tags,
			&thread.Status, &thread.Comment, &thread.CommentCount,
			&thread.CreatedBy, &thread.CreatedAt, &thread.UpdatedAt,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning thread row: %w", err)
		}
		threads = append(threads, thread)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating thread rows: %w", err)
	}

	return threads, total, nil
}

// ApplyModeration writes a moderation decision to the thread
func (r *ThreadRepository) ApplyModeration(ctx context.Context, threadID string, status models.ThreadStatus, comment *string) error {
	builder := r.sb.Update("forum_threads").
		Set("status", status).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": threadID})

	if comment != nil {
		builder = builder.Set("comment", *comment)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build moderation query: %w", err)
	}

	cmdTag, err := r.database.Pool.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("threadID", threadID).Msg("Error applying moderation")
		return fmt.Errorf("error applying moderation: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewResourceNotFoundError("thread not found")
	}
	return nil
}

// Delete removes a thread and, via cascade, its comments
func (r *ThreadRepository) Delete(ctx context.Context, id string) error {
	cmdTag, err := r.database.Pool.Exec(ctx, `DELETE FROM forum_threads WHERE id = $1`, id)
	if err != nil {
		logger.Error().Err(err).Str("threadID", id).Msg("Error deleting thread")
		return fmt.Errorf("error deleting thread: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewResourceNotFoundError("thread not found")
	}
	return nil
}

// CountPending returns the number of threads awaiting moderation
func (r *ThreadRepository) CountPending(ctx context.Context) (int64, error) {
	var count int64
	err := r.database.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM forum_threads WHERE status = $1`,
		models.ThreadStatusPending).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting pending threads: %w", err)
	}
	return count, nil
}
