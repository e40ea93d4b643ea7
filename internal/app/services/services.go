package services

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/dheeraj5988/sustainable-cities/internal/app/models"
	"github.com/dheeraj5988/sustainable-cities/internal/app/models/dto"
	"github.com/dheeraj5988/sustainable-cities/internal/app/repositories"
	"github.com/dheeraj5988/sustainable-cities/internal/pkg/auth"
	"github.com/dheeraj5988/sustainable-cities/internal/pkg/email"
)

// Services holds all the service instances
type Services struct {
	AuthService    *AuthService
	ReportService  *ReportService
	ForumService   *ForumService
	InviteService  *InviteService
	UserService    *UserService
	CleanupService *CleanupService
}

// NewServices initializes all services
func NewServices(
	repos *repositories.Repositories,
	jwtService *auth.JWTService,
	emailSender email.Sender,
	inviteExpiry time.Duration,
	resetTokenLifetime time.Duration,
	logger zerolog.Logger,
) *Services {
	return &Services{
		AuthService: NewAuthService(
			repos.UserRepository,
			repos.TokenRepository,
			repos.PasswordResetTokenRepository,
			repos.InviteRepository,
			jwtService,
			emailSender,
			resetTokenLifetime,
			logger.With().Str("service", "auth").Logger(),
		),
		ReportService: NewReportService(
			repos.ReportRepository,
			emailSender,
			logger.With().Str("service", "report").Logger(),
		),
		ForumService: NewForumService(
			repos.ThreadRepository,
			repos.CommentRepository,
			emailSender,
			logger.With().Str("service", "forum").Logger(),
		),
		InviteService: NewInviteService(
			repos.InviteRepository,
			emailSender,
			inviteExpiry,
			logger.With().Str("service", "invite").Logger(),
		),
		UserService: NewUserService(
			repos.UserRepository,
			repos.ReportRepository,
			repos.ThreadRepository,
			repos.InviteRepository,
			logger.With().Str("service", "user").Logger(),
		),
		CleanupService: NewCleanupService(
			repos.TokenRepository,
			repos.PasswordResetTokenRepository,
			repos.InviteRepository,
			logger.With().Str("service", "cleanup").Logger(),
		),
	}
}

func toUserResponse(user *models.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:          user.ID,
		Name:        user.Name,
		Email:       user.Email,
		RoleType:    string(user.RoleType),
		IsActive:    user.IsActive,
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
	}
}
