package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/dheeraj5988/sustainable-cities/internal/app/lifecycle"
	"github.com/dheeraj5988/sustainable-cities/internal/app/models"
	"github.com/dheeraj5988/sustainable-cities/internal/app/models/dto"
	"github.com/dheeraj5988/sustainable-cities/internal/app/repositories"
	"github.com/dheeraj5988/sustainable-cities/internal/pkg/apperrors"
	"github.com/dheeraj5988/sustainable-cities/internal/pkg/email"
	"github.com/dheeraj5988/sustainable-cities/internal/pkg/helpers"
)

// ReportService handles report operations. Transition decisions are made by
// the lifecycle engine; this service fetches state, applies outcomes and
// fires notifications.
type ReportService struct {
	reportRepo  repositories.IReportRepository
	emailSender email.Sender
	logger      zerolog.Logger
}

// NewReportService creates a new ReportService
func NewReportService(
	reportRepo repositories.IReportRepository,
	emailSender email.Sender,
	logger zerolog.Logger,
) *ReportService {
	return &ReportService{
		reportRepo:  reportRepo,
		emailSender: emailSender,
		logger:      logger,
	}
}

// CreateReport submits a new report; it always starts Pending
func (s *ReportService) CreateReport(ctx context.Context, actor lifecycle.Actor, req *dto.CreateReportRequest) (*dto.ReportResponse, error) {
	reportType := models.ReportType(req.Type)
	if !reportType.Valid() {
		return nil, apperrors.NewValidationError("unknown report type: " + req.Type)
	}

	report := &models.Report{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Type:        reportType,
		Status:      models.ReportStatusPending,
		CreatedBy:   actor.ID,
	}
	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, err
	}

	s.logger.Info().Str("reportID", report.ID).Str("createdBy", actor.ID).Msg("Report created")
	return toReportResponse(report), nil
}

// GetReports lists reports within the caller's read scope
func (s *ReportService) GetReports(ctx context.Context, actor lifecycle.Actor, filter *dto.ReportFilterRequest) (*dto.ReportListResponse, error) {
	scope := lifecycle.ScopeFor(actor)

	page, pageSize := filter.Page, filter.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 || pageSize > helpers.MaxPageSize {
		pageSize = helpers.DefaultPageSize
	}

	reports, total, err := s.reportRepo.GetAll(ctx, scope, filter.Status, filter.Type, page, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ReportResponse, 0, len(reports))
	for i := range reports {
		responses = append(responses, *toReportResponse(&reports[i]))
	}

	return &dto.ReportListResponse{
		Reports:        responses,
		PaginationInfo: helpers.NewPaginationInfo(total, page, pageSize),
	}, nil
}

// GetReportByID retrieves a single report. A report outside the caller's
// read scope is indistinguishable from a missing one.
func (s *ReportService) GetReportByID(ctx context.Context, actor lifecycle.Actor, id string) (*dto.ReportResponse, error) {
	report, err := s.reportRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !lifecycle.ScopeFor(actor).Allows(report) {
		return nil, apperrors.NewResourceNotFoundError("report not found")
	}

	return toReportResponse(report), nil
}

// Transition applies a lifecycle action to a report
func (s *ReportService) Transition(ctx context.Context, actor lifecycle.Actor, reportID string, action lifecycle.Action, payload lifecycle.ReportPayload) (*dto.ReportResponse, error) {
	report, err := s.reportRepo.GetByID(ctx, reportID)
	if err != nil {
		return nil, err
	}

	if !lifecycle.ScopeFor(actor).Allows(report) {
		// A claim that lost the race still reads as a conflict. Every other
		// transition on a report outside the caller's read scope is
		// indistinguishable from one on a missing report.
		if action != lifecycle.ActionStartWork || report.AssignedTo == nil {
			return nil, apperrors.NewResourceNotFoundError("report not found")
		}
	}

	outcome, err := lifecycle.DecideReport(report, action, actor, payload)
	if err != nil {
		return nil, err
	}

	if action == lifecycle.ActionStartWork {
		// The conditional write settles concurrent claims; the engine's
		// decision alone is not enough because it ran on a possibly stale
		// read.
		if err := s.reportRepo.Claim(ctx, reportID, actor.ID); err != nil {
			return nil, err
		}
	} else {
		if err := s.reportRepo.ApplyOutcome(ctx, reportID, outcome); err != nil {
			return nil, err
		}
	}

	updated, err := s.reportRepo.GetByID(ctx, reportID)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("reportID", reportID).
		Str("action", string(action)).
		Str("actorID", actor.ID).
		Str("newStatus", string(updated.Status)).
		Msg("Report transition applied")

	if outcome.NotifyCreator {
		s.notifyCreator(updated)
	}

	return toReportResponse(updated), nil
}

// DeleteReport removes a report: the owner while it is Pending, or an admin
func (s *ReportService) DeleteReport(ctx context.Context, actor lifecycle.Actor, id string) error {
	report, err := s.reportRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !lifecycle.ScopeFor(actor).Allows(report) {
		return apperrors.NewResourceNotFoundError("report not found")
	}
	if err := lifecycle.CanDeleteReport(report, actor); err != nil {
		return err
	}

	if err := s.reportRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("reportID", id).Str("actorID", actor.ID).Msg("Report deleted")
	return nil
}

// notifyCreator sends a best-effort status notification to the report
// creator. Failures are logged and never surface to the caller.
func (s *ReportService) notifyCreator(report *models.Report) {
	profile := report.CreatedByProfile
	if profile == nil {
		return
	}

	note := ""
	if report.Status == models.ReportStatusRejected && report.Comment != nil {
		note = *report.Comment
	}
	if report.Status == models.ReportStatusResolved && report.ResolutionDetails != nil {
		note = *report.ResolutionDetails
	}

	if err := s.emailSender.SendReportStatusEmail(profile.Email, profile.Name, report.Title, string(report.Status), note); err != nil {
		s.logger.Warn().Err(err).Str("reportID", report.ID).Msg("Failed to send report status email")
	}
}

func toReportResponse(report *models.Report) *dto.ReportResponse {
	resp := &dto.ReportResponse{
		ID:                report.ID,
		Title:             report.Title,
		Description:       report.Description,
		Location:          report.Location,
		Latitude:          report.Latitude,
		Longitude:         report.Longitude,
		Type:              string(report.Type),
		Status:            string(report.Status),
		CreatedBy:         report.CreatedBy,
		AssignedTo:        report.AssignedTo,
		ResolutionDetails: report.ResolutionDetails,
		ResolutionImages:  report.ResolutionImages,
		Comment:           report.Comment,
		CreatedAt:         report.CreatedAt,
		UpdatedAt:         report.UpdatedAt,
	}
	if report.CreatedByProfile != nil {
		resp.CreatedByProfile = toUserResponse(report.CreatedByProfile)
	}
	if report.AssignedToProfile != nil {
		resp.AssignedToProfile = toUserResponse(report.AssignedToProfile)
	}
	return resp
}
