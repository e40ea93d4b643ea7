package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dheeraj5988/sustainable-cities/internal/app/models"
)

func TestCleanupRemovesExpiredArtifacts(t *testing.T) {
	ctx := context.Background()
	tokens := newFakeTokenRepo()
	resets := newFakeResetRepo()
	invites := newFakeInviteRepo()

	require.NoError(t, tokens.CreateToken(ctx, "live-token", "user-1", time.Now().Add(time.Hour)))
	require.NoError(t, tokens.CreateToken(ctx, "dead-token", "user-1", time.Now().Add(-time.Hour)))
	require.NoError(t, resets.CreateToken(ctx, "user-1", "live-reset", time.Now().Add(time.Hour)))
	require.NoError(t, resets.CreateToken(ctx, "user-1", "dead-reset", time.Now().Add(-time.Hour)))
	require.NoError(t, invites.Create(ctx, &models.WorkerInvite{Code: "FRESHONE", CreatedBy: "admin-1", ExpiresAt: time.Now().Add(time.Hour)}))
	require.NoError(t, invites.Create(ctx, &models.WorkerInvite{Code: "STALEONE", CreatedBy: "admin-1", ExpiresAt: time.Now().Add(-time.Hour)}))
	require.NoError(t, invites.Create(ctx, &models.WorkerInvite{Code: "SPENTONE", CreatedBy: "admin-1", IsUsed: true, ExpiresAt: time.Now().Add(time.Hour)}))

	service := NewCleanupService(tokens, resets, invites, testLogger())
	service.Run(ctx)

	_, err := tokens.GetTokenByValue(ctx, "live-token")
	assert.NoError(t, err)
	assert.Len(t, tokens.tokens, 1)
	assert.Len(t, resets.tokens, 1)

	remaining, err := invites.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "FRESHONE", remaining[0].Code)
}
