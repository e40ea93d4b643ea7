package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/dheeraj5988/sustainable-cities/internal/app/repositories"
)

// CleanupService removes expired refresh tokens, password reset tokens and
// worker invites. It runs on a cron schedule from the server.
type CleanupService struct {
	tokenRepo  repositories.ITokenRepository
	resetRepo  repositories.IPasswordResetTokenRepository
	inviteRepo repositories.IInviteRepository
	logger     zerolog.Logger
}

// NewCleanupService creates a new CleanupService
func NewCleanupService(
	tokenRepo repositories.ITokenRepository,
	resetRepo repositories.IPasswordResetTokenRepository,
	inviteRepo repositories.IInviteRepository,
	logger zerolog.Logger,
) *CleanupService {
	return &CleanupService{
		tokenRepo:  tokenRepo,
		resetRepo:  resetRepo,
		inviteRepo: inviteRepo,
		logger:     logger,
	}
}

// Run performs one cleanup pass. Each step is independent; a failure in one
// does not stop the others.
func (s *CleanupService) Run(ctx context.Context) {
	if n, err := s.tokenRepo.CleanupExpiredTokens(ctx); err != nil {
		s.logger.Error().Err(err).Msg("Refresh token cleanup failed")
	} else if n > 0 {
		s.logger.Info().Int64("deleted", n).Msg("Cleaned up refresh tokens")
	}

	if n, err := s.resetRepo.CleanupExpiredTokens(ctx); err != nil {
		s.logger.Error().Err(err).Msg("Password reset token cleanup failed")
	} else if n > 0 {
		s.logger.Info().Int64("deleted", n).Msg("Cleaned up password reset tokens")
	}

	if n, err := s.inviteRepo.DeleteExpired(ctx); err != nil {
		s.logger.Error().Err(err).Msg("Expired invite cleanup failed")
	} else if n > 0 {
		s.logger.Info().Int64("deleted", n).Msg("Cleaned up expired invites")
	}
}
