package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/dheeraj5988/sustainable-cities/internal/app/lifecycle"
	"github.com/dheeraj5988/sustainable-cities/internal/app/models"
	"github.com/dheeraj5988/sustainable-cities/internal/db"
	"github.com/dheeraj5988/sustainable-cities/internal/pkg/apperrors"
	"github.com/dheeraj5988/sustainable-cities/internal/pkg/helpers"
	"github.com/dheeraj5988/sustainable-cities/internal/pkg/logger"
)

// IReportRepository defines the interface for report database operations
type IReportRepository interface {
	Create(ctx context.Context, report *models.Report) error
	GetByID(ctx context.Context, id string) (*models.Report, error)
	GetAll(ctx context.Context, scope lifecycle.ReportScope, status, reportType *string, page, pageSize int) ([]models.Report, int64, error)
	Claim(ctx context.Context, reportID, workerID string) error
	ApplyOutcome(ctx context.Context, reportID string, outcome lifecycle.ReportOutcome) error
	Delete(ctx context.Context, id string) error
	CountByStatus(ctx context.Context) (map[string]int64, error)
}

// ReportRepository handles database operations for the reports table
type ReportRepository struct {
	database *db.PostgresDB
	sb       squirrel.StatementBuilderType
}

// NewReportRepository creates a new ReportRepository
func NewReportRepository(database *db.PostgresDB) *ReportRepository {
	return &ReportRepository{
		database: database,
		sb:       squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new report and fills in the generated fields
func (r *ReportRepository) Create(ctx context.Context, report *models.Report) error {
	query := `
		INSERT INTO reports (title, description, location, latitude, longitude, type, status, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`

	err := r.database.Pool.QueryRow(ctx, query,
		report.Title, report.Description, report.Location,
		report.Latitude, report.Longitude,
		report.Type, report.Status, report.CreatedBy,
	).Scan(&report.ID, &report.CreatedAt, &report.UpdatedAt)
	if err != nil {
		logger.Error().Err(err).Str("createdBy", report.CreatedBy).Msg("Error creating report")
		return fmt.Errorf("error creating report: %w", err)
	}
	return nil
}

// GetByID retrieves a report with its creator and assignee profiles
func (r *ReportRepository) GetByID(ctx context.Context, id string) (*models.Report, error) {
	query := `
		SELECT
			r.id, r.title, r.description, r.location, r.latitude, r.longitude,
			r.type, r.status, r.created_by, r.assigned_to,
			r.resolution_details, r.resolution_images, r.comment,
			r.created_at, r.updated_at,
			c.name, c.email, c.role,
			w.name, w.email, w.role
		FROM reports r
		JOIN profiles c ON c.id = r.created_by
		LEFT JOIN profiles w ON w.id = r.assigned_to
		WHERE r.id = $1`

	var report models.Report
	var creatorName, creatorEmail string
	var creatorRole models.RoleType
	var workerName, workerEmail *string
	var workerRole *models.RoleType

	err := r.database.Pool.QueryRow(ctx, query, id).Scan(
		&report.ID, &report.Title, &report.Description, &report.Location,
		&report.Latitude, &report.Longitude,
		&report.Type, &report.Status, &report.CreatedBy, &report.AssignedTo,
		&report.ResolutionDetails, &report.ResolutionImages, &report.Comment,
		&report.CreatedAt, &report.UpdatedAt,
		&creatorName, &creatorEmail, &creatorRole,
		&workerName, &workerEmail, &workerRole,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewResourceNotFoundError("report not found")
		}
		logger.Error().Err(err).Str("reportID", id).Msg("Error retrieving report")
		return nil, fmt.Errorf("error retrieving report: %w", err)
	}

	report.CreatedByProfile = &models.User{
		ID:       report.CreatedBy,
		Name:     creatorName,
		Email:    creatorEmail,
		RoleType: creatorRole,
	}
	if report.AssignedTo != nil && workerName != nil {
		report.AssignedToProfile = &models.User{
			ID:       *report.AssignedTo,
			Name:     *workerName,
			Email:    *workerEmail,
			RoleType: *workerRole,
		}
	}

	return &report, nil
}

// scopeConditions translates a read scope into list query predicates.
func scopeConditions(scope lifecycle.ReportScope) squirrel.Sqlizer {
	if scope.All {
		return nil
	}
	if scope.CreatedBy != "" {
		return squirrel.Eq{"r.created_by": scope.CreatedBy}
	}
	if scope.WorkerID != "" {
		return squirrel.Or{
			squirrel.Eq{"r.assigned_to": scope.WorkerID},
			squirrel.Eq{"r.status": models.ReportStatusApproved},
		}
	}
	// An empty scope matches nothing
	return squirrel.Expr("FALSE")
}

// GetAll retrieves reports visible within the scope, filtered and paginated
func (r *ReportRepository) GetAll(ctx context.Context, scope lifecycle.ReportScope, status, reportType *string, page, pageSize int) ([]models.Report, int64, error) {
	builder := r.sb.Select(
		"r.id", "r.title", "r.description", "r.location", "r.latitude", "r.longitude",
		"r.type", "r.status", "r.created_by", "r.assigned_to",
		"r.resolution_details", "r.resolution_images", "r.comment",
		"r.created_at", "r.updated_at",
		"COUNT(*) OVER() AS total_count",
	).From("reports r")

	if cond := scopeConditions(scope); cond != nil {
		builder = builder.Where(cond)
	}
	if status != nil && *status != "" {
		builder = builder.Where(squirrel.Eq{"r.status": *status})
	}
	if reportType != nil && *reportType != "" {
		builder = builder.Where(squirrel.Eq{"r.type": *reportType})
	}

	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)
	builder = builder.OrderBy("r.created_at DESC").
		Limit(uint64(limit)).
		Offset(offset)

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list reports query: %w", err)
	}

	rows, err := r.database.Pool.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing reports")
		return nil, 0, fmt.Errorf("error listing reports: %w", err)
	}
	defer rows.Close()

	var reports []models.Report
	var total int64
	for rows.Next() {
		var report models.Report
		err := rows.Scan(
			&report.ID, &report.Title, &report.Description, &report.Location,
			&report.Latitude, &report.Longitude,
			&report.Type, &report.Status, &report.CreatedBy, &report.AssignedTo,
			&report.ResolutionDetails, &report.ResolutionImages, &report.Comment,
			&report.CreatedAt, &report.UpdatedAt,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning report row: %w", err)
		}
		reports = append(reports, report)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating report rows: %w", err)
	}

	return reports, total, nil
}

// Claim assigns a report to a worker with a conditional write. Of two
// concurrent claims exactly one matches the WHERE clause; the other gets
// ErrConflict.
func (r *ReportRepository) Claim(ctx context.Context, reportID, workerID string) error {
	cmdTag, err := r.database.Pool.Exec(ctx, `
		UPDATE reports
		SET status = $1, assigned_to = $2, updated_at = NOW()
		WHERE id = $3 AND status = $4 AND assigned_to IS NULL`,
		models.ReportStatusInProgress, workerID,
		reportID, models.ReportStatusApproved)
	if err != nil {
		logger.Error().Err(err).Str("reportID", reportID).Str("workerID", workerID).Msg("Error claiming report")
		return fmt.Errorf("error claiming report: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewConflictError("report is already assigned to another worker")
	}
	return nil
}

// ApplyOutcome writes a decided transition outcome to the report
func (r *ReportRepository) ApplyOutcome(ctx context.Context, reportID string, outcome lifecycle.ReportOutcome) error {
	builder := r.sb.Update("reports").
		Set("status", outcome.Status).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": reportID})

	if outcome.AssignTo != nil {
		builder = builder.Set("assigned_to", *outcome.AssignTo)
	}
	if outcome.ResolutionDetails != nil {
		builder = builder.Set("resolution_details", *outcome.ResolutionDetails)
		builder = builder.Set("resolution_images", outcome.ResolutionImages)
	}
	if outcome.Comment != nil {
		builder = builder.Set("comment", *outcome.Comment)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build apply outcome query: %w", err)
	}

	cmdTag, err := r.database.Pool.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("reportID", reportID).Msg("Error applying report outcome")
		return fmt.Errorf("error applying report outcome: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewResourceNotFoundError("report not found")
	}
	return nil
}

// Delete removes a report
func (r *ReportRepository) Delete(ctx context.Context, id string) error {
	cmdTag, err := r.database.Pool.Exec(ctx, `DELETE FROM reports WHERE id = $1`, id)
	if err != nil {
		logger.Error().Err(err).Str("reportID", id).Msg("Error deleting report")
		return fmt.Errorf("error deleting report: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewResourceNotFoundError("report not found")
	}
	return nil
}

// CountByStatus returns the number of reports per status
func (r *ReportRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	rows, err := r.database.Pool.Query(ctx,
		`SELECT status, COUNT(*) FROM reports GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("error counting reports by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var status string
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("error scanning status count: %w", err)
		}
		counts[status] = count
	}
	return counts, rows.Err()
}
