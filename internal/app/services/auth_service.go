package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dheeraj5988/sustainable-cities/internal/app/lifecycle"
	"github.com/dheeraj5988/sustainable-cities/internal/app/models"
	"github.com/dheeraj5988/sustainable-cities/internal/app/models/dto"
	"github.com/dheeraj5988/sustainable-cities/internal/app/repositories"
	"github.com/dheeraj5988/sustainable-cities/internal/pkg/apperrors"
	"github.com/dheeraj5988/sustainable-cities/internal/pkg/auth"
	"github.com/dheeraj5988/sustainable-cities/internal/pkg/email"
	"github.com/dheeraj5988/sustainable-cities/internal/pkg/validation"
)

// AuthService handles authentication operations
type AuthService struct {
	userRepo           repositories.IUserRepository
	tokenRepo          repositories.ITokenRepository
	resetRepo          repositories.IPasswordResetTokenRepository
	inviteRepo         repositories.IInviteRepository
	jwtService         *auth.JWTService
	emailSender        email.Sender
	resetTokenLifetime time.Duration
	logger             zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo repositories.IUserRepository,
	tokenRepo repositories.ITokenRepository,
	resetRepo repositories.IPasswordResetTokenRepository,
	inviteRepo repositories.IInviteRepository,
	jwtService *auth.JWTService,
	emailSender email.Sender,
	resetTokenLifetime time.Duration,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		userRepo:           userRepo,
		tokenRepo:          tokenRepo,
		resetRepo:          resetRepo,
		inviteRepo:         inviteRepo,
		jwtService:         jwtService,
		emailSender:        emailSender,
		resetTokenLifetime: resetTokenLifetime,
		logger:             logger,
	}
}

func (s *AuthService) validateSignup(email, password string) error {
	if !validation.IsValidEmail(email) {
		return apperrors.ErrInvalidEmail
	}
	if !validation.IsValidPassword(password) {
		return apperrors.ErrInvalidPassword
	}
	return nil
}

// Register creates a citizen account and logs it in
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenResponse, error) {
	if err := s.validateSignup(req.Email, req.Password); err != nil {
		return nil, err
	}

	exists, err := s.userRepo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:    req.Email,
		Password: hashed,
		Name:     req.Name,
		RoleType: models.RoleCitizen,
		IsActive: true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Str("userID", user.ID).Msg("Citizen account created")

	if err := s.emailSender.SendWelcomeEmail(user.Email, user.Name); err != nil {
		s.logger.Warn().Err(err).Str("userID", user.ID).Msg("Failed to send welcome email")
	}

	return s.issueTokens(ctx, user)
}

// RegisterWorker creates a worker account from an invite code. The invite is
// consumed in the same transaction as the account insert, so a code can never
// be spent without an account existing and vice versa.
func (s *AuthService) RegisterWorker(ctx context.Context, req *dto.WorkerRegisterRequest) (*dto.TokenResponse, error) {
	if err := s.validateSignup(req.Email, req.Password); err != nil {
		return nil, err
	}

	invite, err := s.inviteRepo.GetByCode(ctx, req.InviteCode)
	if err != nil {
		return nil, err
	}
	if err := lifecycle.ValidateInvite(invite, req.Email, time.Now()); err != nil {
		return nil, err
	}

	exists, err := s.userRepo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:    req.Email,
		Password: hashed,
		Name:     req.Name,
		RoleType: models.RoleWorker,
		IsActive: true,
	}
	if err := s.userRepo.CreateWorkerWithInvite(ctx, user, invite.ID); err != nil {
		return nil, err
	}

	s.logger.Info().Str("userID", user.ID).Str("inviteID", invite.ID).Msg("Worker account created from invite")

	if err := s.emailSender.SendWelcomeEmail(user.Email, user.Name); err != nil {
		s.logger.Warn().Err(err).Str("userID", user.ID).Msg("Failed to send welcome email")
	}

	return s.issueTokens(ctx, user)
}

// Login authenticates a user by email and password
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		// Do not reveal whether the email exists
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := auth.CheckPassword(user.Password, req.Password); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		s.logger.Warn().Err(err).Str("userID", user.ID).Msg("Failed to update last login")
	}

	return s.issueTokens(ctx, user)
}

// RefreshToken exchanges a valid refresh token for a new token pair. The old
// refresh token is revoked so each one is single-use.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	userID, err := s.tokenRepo.GetTokenByValue(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	if err := s.tokenRepo.RevokeToken(ctx, refreshToken); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, user)
}

// Logout revokes the presented refresh token
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	return s.tokenRepo.RevokeToken(ctx, refreshToken)
}

// ForgotPassword starts the reset flow. It succeeds regardless of whether
// the email exists so the endpoint cannot be used to probe for accounts.
func (s *AuthService) ForgotPassword(ctx context.Context, emailAddr string) error {
	user, err := s.userRepo.GetByEmail(ctx, emailAddr)
	if err != nil {
		s.logger.Debug().Str("email", emailAddr).Msg("Password reset requested for unknown email")
		return nil
	}

	token := uuid.New().String()
	if err := s.resetRepo.CreateToken(ctx, user.ID, token, time.Now().Add(s.resetTokenLifetime)); err != nil {
		return err
	}

	if err := s.emailSender.SendPasswordResetEmail(user.Email, user.Name, token); err != nil {
		s.logger.Warn().Err(err).Str("userID", user.ID).Msg("Failed to send password reset email")
	}

	return nil
}

// ResetPassword completes the reset flow. All refresh tokens of the user are
// revoked so stolen sessions die with the old password.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if !validation.IsValidPassword(newPassword) {
		return apperrors.ErrInvalidPassword
	}

	userID, err := s.resetRepo.GetUserIDByToken(ctx, token)
	if err != nil {
		return err
	}

	hashed, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}

	if err := s.userRepo.UpdatePassword(ctx, userID, hashed); err != nil {
		return err
	}
	if err := s.resetRepo.MarkTokenUsed(ctx, token); err != nil {
		return err
	}
	if err := s.tokenRepo.RevokeAllUserTokens(ctx, userID); err != nil {
		s.logger.Warn().Err(err).Str("userID", userID).Msg("Failed to revoke refresh tokens after password reset")
	}

	s.logger.Info().Str("userID", userID).Msg("Password reset completed")
	return nil
}

func (s *AuthService) issueTokens(ctx context.Context, user *models.User) (*dto.TokenResponse, error) {
	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, err
	}

	if err := s.tokenRepo.CreateToken(ctx, refreshToken, user.ID, s.jwtService.GetRefreshTokenExpiry()); err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		ExpiresIn:        expiresIn,
		RefreshExpiresIn: refreshExpiresIn,
		User:             toUserResponse(user),
	}, nil
}
