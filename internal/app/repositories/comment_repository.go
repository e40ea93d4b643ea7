package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dheeraj5988/sustainable-cities/internal/app/models"
	"github.com/dheeraj5988/sustainable-cities/internal/db"
	"github.com/dheeraj5988/sustainable-cities/internal/pkg/apperrors"
	"github.com/dheeraj5988/sustainable-cities/internal/pkg/logger"
)

// ICommentRepository defines the interface for forum comment database operations
type ICommentRepository interface {
	Create(ctx context.Context, comment *models.ForumComment) error
	GetByID(ctx context.Context, id string) (*models.ForumComment, error)
	GetByThread(ctx context.Context, threadID string, page, pageSize int) ([]models.ForumComment, int64, error)
	Delete(ctx context.Context, id string) error
}

// CommentRepository handles database operations for the forum_comments table.
// The thread's comment_count is maintained in the same transaction as the
// comment write so the counter never drifts.
type CommentRepository struct {
	database *db.PostgresDB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(database *db.PostgresDB) *CommentRepository {
	return &CommentRepository{database: database}
}

// Create inserts a comment and increments the thread's comment_count
// atomically
func (r *CommentRepository) Create(ctx context.Context, comment *models.ForumComment) error {
	return r.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		query := `
			INSERT INTO forum_comments (thread_id, content, created_by)
			VALUES ($1, $2, $3)
			RETURNING id, created_at, updated_at`

		err := tx.QueryRow(ctx, query,
			comment.ThreadID, comment.Content, comment.CreatedBy,
		).Scan(&comment.ID, &comment.CreatedAt, &comment.UpdatedAt)
		if err != nil {
			logger.Error().Err(err).Str("threadID", comment.ThreadID).Msg("Error creating comment")
			return fmt.Errorf("error creating comment: %w", err)
		}

		cmdTag, err := tx.Exec(ctx,
			`UPDATE forum_threads SET comment_count = comment_count + 1, updated_at = NOW() WHERE id = $1`,
			comment.ThreadID)
		if err != nil {
			return fmt.Errorf("error incrementing comment count: %w", err)
		}
		if cmdTag.RowsAffected() == 0 {
			return apperrors.NewResourceNotFoundError("thread not found")
		}
		return nil
	})
}

// GetByID retrieves a comment
func (r *CommentRepository) GetByID(ctx context.Context, id string) (*models.ForumComment, error) {
	query := `
		SELECT id, thread_id, content, created_by, created_at, updated_at
		FROM forum_comments
		WHERE id = $1`

	var comment models.ForumComment
	err := r.database.Pool.QueryRow(ctx, query, id).Scan(
		&comment.ID, &comment.ThreadID, &comment.Content,
		&comment.CreatedBy, &comment.CreatedAt, &comment.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewResourceNotFoundError("comment not found")
		}
		logger.Error().Err(err).Str("commentID", id).Msg("Error retrieving comment")
		return nil, fmt.Errorf("error retrieving comment: %w", err)
	}
	return &comment, nil
}

// GetByThread retrieves a thread's comments with their author profiles,
// oldest first
func (r *CommentRepository) GetByThread(ctx context.Context, threadID string, page, pageSize int) ([]models.ForumComment, int64, error) {
	query := `
		SELECT
			c.id, c.thread_id, c.content, c.created_by, c.created_at, c.updated_at,
			a.name, a.email, a.role,
			COUNT(*) OVER() AS total_count
		FROM forum_comments c
		JOIN profiles a ON a.id = c.created_by
		WHERE c.thread_id = $1
		ORDER BY c.created_at ASC
		LIMIT $2 OFFSET $3`

	offset := (page - 1) * pageSize
	rows, err := r.database.Pool.Query(ctx, query, threadID, pageSize, offset)
	if err != nil {
		logger.Error().Err(err).Str("threadID", threadID).Msg("Error listing comments")
		return nil, 0, fmt.Errorf("error listing comments: %w", err)
	}
	defer rows.Close()

	var comments []models.ForumComment
	var total int64
	for rows.Next() {
		var comment models.ForumComment
		var authorName, authorEmail string
		var authorRole models.RoleType
		err := rows.Scan(
			&comment.ID, &comment.ThreadID, &comment.Content,
			&comment.CreatedBy, &comment.CreatedAt, &comment.UpdatedAt,
			&authorName, &authorEmail, &authorRole,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning comment row: %w", err)
		}
		comment.Author = &models.User{
			ID:       comment.CreatedBy,
			Name:     authorName,
			Email:    authorEmail,
			RoleType: authorRole,
		}
		comments = append(comments, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating comment rows: %w", err)
	}

	return comments, total, nil
}

// Delete removes a comment and decrements the thread's comment_count,
// floored at zero
func (r *CommentRepository) Delete(ctx context.Context, id string) error {
	return r.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var threadID string
		err := tx.QueryRow(ctx,
			`DELETE FROM forum_comments WHERE id = $1 RETURNING thread_id`, id).Scan(&threadID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewResourceNotFoundError("comment not found")
			}
			logger.Error().Err(err).Str("commentID", id).Msg("Error deleting comment")
			return fmt.Errorf("error deleting comment: %w", err)
		}

		_, err = tx.Exec(ctx,
			`UPDATE forum_threads SET comment_count = GREATEST(comment_count - 1, 0), updated_at = NOW() WHERE id = $1`,
			threadID)
		if err != nil {
			return fmt.Errorf("error decrementing comment count: %w", err)
		}
		return nil
	})
}
