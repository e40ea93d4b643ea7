package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/dheeraj5988/sustainable-cities/internal/app/models"
	"github.com/dheeraj5988/sustainable-cities/internal/app/models/dto"
	"github.com/dheeraj5988/sustainable-cities/internal/app/repositories"
	"github.com/dheeraj5988/sustainable-cities/internal/pkg/apperrors"
	"github.com/dheeraj5988/sustainable-cities/internal/pkg/helpers"
	"github.com/dheeraj5988/sustainable-cities/internal/pkg/validation"
)

// UserService handles profile and admin user management operations
type UserService struct {
	userRepo   repositories.IUserRepository
	reportRepo repositories.IReportRepository
	threadRepo repositories.IThreadRepository
	inviteRepo repositories.IInviteRepository
	logger     zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(
	userRepo repositories.IUserRepository,
	reportRepo repositories.IReportRepository,
	threadRepo repositories.IThreadRepository,
	inviteRepo repositories.IInviteRepository,
	logger zerolog.Logger,
) *UserService {
	return &UserService{
		userRepo:   userRepo,
		reportRepo: reportRepo,
		threadRepo: threadRepo,
		inviteRepo: inviteRepo,
		logger:     logger,
	}
}

// GetProfile retrieves a user's profile
func (s *UserService) GetProfile(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// UpdateProfile updates the caller's own name and email
func (s *UserService) UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	if !validation.IsValidEmail(req.Email) {
		return nil, apperrors.ErrInvalidEmail
	}

	if err := s.userRepo.UpdateProfile(ctx, userID, req.Name, req.Email); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// GetUsers lists profiles with filtering and pagination (admin only)
func (s *UserService) GetUsers(ctx context.Context, role, search *string, page, pageSize int) (*dto.UserListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 || pageSize > helpers.MaxPageSize {
		pageSize = helpers.DefaultPageSize
	}

	users, total, err := s.userRepo.GetAll(ctx, role, search, page, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, *toUserResponse(&users[i]))
	}

	return &dto.UserListResponse{
		Users:          responses,
		PaginationInfo: helpers.NewPaginationInfo(total, page, pageSize),
	}, nil
}

// UpdateUserRole changes a user's role (admin only). Admins cannot change
// their own role, which keeps at least one admin in the system.
func (s *UserService) UpdateUserRole(ctx context.Context, adminID, targetID string, req *dto.UpdateRoleRequest) (*dto.UserResponse, error) {
	role := models.RoleType(req.RoleType)
	if !role.Valid() {
		return nil, apperrors.NewValidationError("unknown role: " + req.RoleType)
	}
	if adminID == targetID {
		return nil, apperrors.NewBadRequestError("admins cannot change their own role")
	}

	if err := s.userRepo.UpdateRole(ctx, targetID, role); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("targetID", targetID).
		Str("adminID", adminID).
		Str("role", string(role)).
		Msg("User role changed")

	user, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// SetUserActive enables or disables an account (admin only)
func (s *UserService) SetUserActive(ctx context.Context, adminID, targetID string, active bool) (*dto.UserResponse, error) {
	if adminID == targetID {
		return nil, apperrors.NewBadRequestError("admins cannot disable their own account")
	}

	if err := s.userRepo.UpdateActive(ctx, targetID, active); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("targetID", targetID).
		Str("adminID", adminID).
		Bool("active", active).
		Msg("User active flag changed")

	user, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// GetAdminStats collects the admin dashboard counters
func (s *UserService) GetAdminStats(ctx context.Context) (*dto.AdminStatsResponse, error) {
	reportsByStatus, err := s.reportRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	usersByRole, err := s.userRepo.CountByRole(ctx)
	if err != nil {
		return nil, err
	}
	pendingThreads, err := s.threadRepo.CountPending(ctx)
	if err != nil {
		return nil, err
	}
	unusedInvites, err := s.inviteRepo.CountUnused(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.AdminStatsResponse{
		ReportsByStatus: reportsByStatus,
		UsersByRole:     usersByRole,
		PendingThreads:  pendingThreads,
		UnusedInvites:   unusedInvites,
	}, nil
}
