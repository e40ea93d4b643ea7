package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/rs/zerolog"

	"github.com/dheeraj5988/sustainable-cities/internal/app/lifecycle"
	"github.com/dheeraj5988/sustainable-cities/internal/app/models"
	"github.com/dheeraj5988/sustainable-cities/internal/app/models/dto"
	"github.com/dheeraj5988/sustainable-cities/internal/app/repositories"
	"github.com/dheeraj5988/sustainable-cities/internal/pkg/email"
)

// Invite codes are 8 characters from an unambiguous alphabet (no 0/O, 1/I).
const inviteCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
const inviteCodeLength = 8

// InviteService handles worker invite operations
type InviteService struct {
	inviteRepo    repositories.IInviteRepository
	emailSender   email.Sender
	defaultExpiry time.Duration
	logger        zerolog.Logger
}

// NewInviteService creates a new InviteService
func NewInviteService(
	inviteRepo repositories.IInviteRepository,
	emailSender email.Sender,
	defaultExpiry time.Duration,
	logger zerolog.Logger,
) *InviteService {
	return &InviteService{
		inviteRepo:    inviteRepo,
		emailSender:   emailSender,
		defaultExpiry: defaultExpiry,
		logger:        logger,
	}
}

// CreateInvite generates a new single-use invite code
func (s *InviteService) CreateInvite(ctx context.Context, actor lifecycle.Actor, req *dto.CreateInviteRequest) (*dto.InviteResponse, error) {
	code, err := generateInviteCode()
	if err != nil {
		return nil, err
	}

	expiry := s.defaultExpiry
	if req.ExpiresInDays != nil {
		expiry = time.Duration(*req.ExpiresInDays) * 24 * time.Hour
	}

	invite := &models.WorkerInvite{
		Code:      code,
		Email:     req.Email,
		CreatedBy: actor.ID,
		ExpiresAt: time.Now().Add(expiry),
	}
	if err := s.inviteRepo.Create(ctx, invite); err != nil {
		return nil, err
	}

	s.logger.Info().Str("inviteID", invite.ID).Str("createdBy", actor.ID).Msg("Worker invite created")

	if invite.Email != nil {
		if err := s.emailSender.SendInviteEmail(*invite.Email, invite.Code); err != nil {
			s.logger.Warn().Err(err).Str("inviteID", invite.ID).Msg("Failed to send invite email")
		}
	}

	return toInviteResponse(invite), nil
}

// GetInvites lists all invites, newest first
func (s *InviteService) GetInvites(ctx context.Context) (*dto.InviteListResponse, error) {
	invites, err := s.inviteRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.InviteResponse, 0, len(invites))
	for i := range invites {
		responses = append(responses, *toInviteResponse(&invites[i]))
	}

	return &dto.InviteListResponse{Invites: responses}, nil
}

// DeleteInvite revokes an invite code
func (s *InviteService) DeleteInvite(ctx context.Context, id string) error {
	return s.inviteRepo.Delete(ctx, id)
}

func generateInviteCode() (string, error) {
	code := make([]byte, inviteCodeLength)
	max := big.NewInt(int64(len(inviteCodeAlphabet)))
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate invite code: %w", err)
		}
		code[i] = inviteCodeAlphabet[n.Int64()]
	}
	return string(code), nil
}

func toInviteResponse(invite *models.WorkerInvite) *dto.InviteResponse {
	return &dto.InviteResponse{
		ID:        invite.ID,
		Code:      invite.Code,
		Email:     invite.Email,
		IsUsed:    invite.IsUsed,
		UsedBy:    invite.UsedBy,
		CreatedAt: invite.CreatedAt,
		ExpiresAt: invite.ExpiresAt,
	}
}
