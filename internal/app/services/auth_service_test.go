package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dheeraj5988/sustainable-cities/internal/app/models"
	"github.com/dheeraj5988/sustainable-cities/internal/app/models/dto"
	"github.com/dheeraj5988/sustainable-cities/internal/pkg/apperrors"
)

type authFixture struct {
	service *AuthService
	users   *fakeUserRepo
	tokens  *fakeTokenRepo
	resets  *fakeResetRepo
	invites *fakeInviteRepo
	emails  *fakeEmailSender
}

func newAuthFixture() *authFixture {
	invites := newFakeInviteRepo()
	users := newFakeUserRepo(invites)
	tokens := newFakeTokenRepo()
	resets := newFakeResetRepo()
	emails := &fakeEmailSender{}

	service := NewAuthService(users, tokens, resets, invites, testJWTService(), emails, time.Hour, testLogger())
	return &authFixture{service: service, users: users, tokens: tokens, resets: resets, invites: invites, emails: emails}
}

func TestRegisterAndLogin(t *testing.T) {
	fx := newAuthFixture()
	ctx := context.Background()

	tokens, err := fx.service.Register(ctx, &dto.RegisterRequest{
		Name:     "Jane",
		Email:    "jane@example.com",
		Password: "password1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.Equal(t, "citizen", tokens.User.RoleType)
	assert.Equal(t, []string{"jane@example.com"}, fx.emails.welcomeSent)

	login, err := fx.service.Login(ctx, &dto.LoginRequest{Email: "jane@example.com", Password: "password1"})
	require.NoError(t, err)
	assert.Equal(t, tokens.User.ID, login.User.ID)

	_, err = fx.service.Login(ctx, &dto.LoginRequest{Email: "jane@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = fx.service.Login(ctx, &dto.LoginRequest{Email: "nobody@example.com", Password: "password1"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestRegisterValidation(t *testing.T) {
	fx := newAuthFixture()
	ctx := context.Background()

	_, err := fx.service.Register(ctx, &dto.RegisterRequest{Name: "X", Email: "not-an-email", Password: "password1"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidEmail)

	_, err = fx.service.Register(ctx, &dto.RegisterRequest{Name: "X", Email: "x@example.com", Password: "short1"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidPassword)

	_, err = fx.service.Register(ctx, &dto.RegisterRequest{Name: "X", Email: "x@example.com", Password: "allletters"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidPassword)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	fx := newAuthFixture()
	ctx := context.Background()

	_, err := fx.service.Register(ctx, &dto.RegisterRequest{Name: "Jane", Email: "jane@example.com", Password: "password1"})
	require.NoError(t, err)

	_, err = fx.service.Register(ctx, &dto.RegisterRequest{Name: "Jane II", Email: "jane@example.com", Password: "password2"})
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestRegisterWorkerConsumesInvite(t *testing.T) {
	fx := newAuthFixture()
	ctx := context.Background()

	invite := &models.WorkerInvite{Code: "GOODCODE", CreatedBy: "admin-1", ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, fx.invites.Create(ctx, invite))

	tokens, err := fx.service.RegisterWorker(ctx, &dto.WorkerRegisterRequest{
		Name:       "Sam",
		Email:      "sam@example.com",
		Password:   "password1",
		InviteCode: "GOODCODE",
	})
	require.NoError(t, err)
	assert.Equal(t, "worker", tokens.User.RoleType)

	stored, err := fx.invites.GetByCode(ctx, "GOODCODE")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.True(t, stored.IsUsed)
	require.NotNil(t, stored.UsedBy)
	assert.Equal(t, tokens.User.ID, *stored.UsedBy)

	// A spent code is indistinguishable from an unknown one
	_, err = fx.service.RegisterWorker(ctx, &dto.WorkerRegisterRequest{
		Name:       "Eve",
		Email:      "eve@example.com",
		Password:   "password1",
		InviteCode: "GOODCODE",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInviteCode)
}

// Two signups racing on the same code must produce exactly one worker
// account; the loser fails on the invite, not with a half-created profile.
func TestRegisterWorkerRaceHasOneWinner(t *testing.T) {
	fx := newAuthFixture()
	ctx := context.Background()

	invite := &models.WorkerInvite{Code: "RACECODE", CreatedBy: "admin-1", ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, fx.invites.Create(ctx, invite))

	emails := []string{"sam@example.com", "pat@example.com"}
	errs := make([]error, len(emails))
	var wg sync.WaitGroup
	for i, addr := range emails {
		wg.Add(1)
		go func(i int, addr string) {
			defer wg.Done()
			_, errs[i] = fx.service.RegisterWorker(ctx, &dto.WorkerRegisterRequest{
				Name:       "Racer",
				Email:      addr,
				Password:   "password1",
				InviteCode: "RACECODE",
			})
		}(i, addr)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
			continue
		}
		// Depending on when the loser read the code it fails validation or
		// the conditional consume inside the signup transaction
		losing := errors.Is(err, apperrors.ErrInvalidInviteCode) || errors.Is(err, apperrors.ErrInviteAlreadyUsed)
		assert.True(t, losing, "unexpected error: %v", err)
	}
	assert.Equal(t, 1, winners)

	workers := 0
	for _, u := range fx.users.users {
		if u.RoleType == models.RoleWorker {
			workers++
		}
	}
	assert.Equal(t, 1, workers)
}

func TestRegisterWorkerInviteCheckOrder(t *testing.T) {
	fx := newAuthFixture()
	ctx := context.Background()
	restricted := "sam@example.com"

	// Used beats expired beats email mismatch
	used := &models.WorkerInvite{Code: "USEDCODE", Email: &restricted, CreatedBy: "admin-1", IsUsed: true, ExpiresAt: time.Now().Add(-time.Hour)}
	expired := &models.WorkerInvite{Code: "OLDCODE2", Email: &restricted, CreatedBy: "admin-1", ExpiresAt: time.Now().Add(-time.Hour)}
	mismatched := &models.WorkerInvite{Code: "SAMSCODE", Email: &restricted, CreatedBy: "admin-1", ExpiresAt: time.Now().Add(time.Hour)}
	for _, invite := range []*models.WorkerInvite{used, expired, mismatched} {
		require.NoError(t, fx.invites.Create(ctx, invite))
	}

	req := func(code string) *dto.WorkerRegisterRequest {
		return &dto.WorkerRegisterRequest{Name: "Eve", Email: "eve@example.com", Password: "password1", InviteCode: code}
	}

	_, err := fx.service.RegisterWorker(ctx, req("NOSUCHCO"))
	assert.ErrorIs(t, err, apperrors.ErrInvalidInviteCode)

	_, err = fx.service.RegisterWorker(ctx, req("USEDCODE"))
	assert.ErrorIs(t, err, apperrors.ErrInvalidInviteCode)

	_, err = fx.service.RegisterWorker(ctx, req("OLDCODE2"))
	assert.ErrorIs(t, err, apperrors.ErrInviteExpired)

	_, err = fx.service.RegisterWorker(ctx, req("SAMSCODE"))
	assert.ErrorIs(t, err, apperrors.ErrInviteEmailMismatch)

	// The restricted email itself passes
	_, err = fx.service.RegisterWorker(ctx, &dto.WorkerRegisterRequest{
		Name: "Sam", Email: restricted, Password: "password1", InviteCode: "SAMSCODE",
	})
	assert.NoError(t, err)
}

func TestLoginDisabledAccount(t *testing.T) {
	fx := newAuthFixture()
	ctx := context.Background()

	tokens, err := fx.service.Register(ctx, &dto.RegisterRequest{Name: "Jane", Email: "jane@example.com", Password: "password1"})
	require.NoError(t, err)
	require.NoError(t, fx.users.UpdateActive(ctx, tokens.User.ID, false))

	_, err = fx.service.Login(ctx, &dto.LoginRequest{Email: "jane@example.com", Password: "password1"})
	assert.ErrorIs(t, err, apperrors.ErrAccountDisabled)

	// An already issued refresh token dies with the account too
	_, err = fx.service.RefreshToken(ctx, tokens.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrAccountDisabled)
}

func TestRefreshTokenIsSingleUse(t *testing.T) {
	fx := newAuthFixture()
	ctx := context.Background()

	tokens, err := fx.service.Register(ctx, &dto.RegisterRequest{Name: "Jane", Email: "jane@example.com", Password: "password1"})
	require.NoError(t, err)

	refreshed, err := fx.service.RefreshToken(ctx, tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, tokens.RefreshToken, refreshed.RefreshToken)

	_, err = fx.service.RefreshToken(ctx, tokens.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)

	_, err = fx.service.RefreshToken(ctx, refreshed.RefreshToken)
	assert.NoError(t, err)
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	fx := newAuthFixture()
	ctx := context.Background()

	tokens, err := fx.service.Register(ctx, &dto.RegisterRequest{Name: "Jane", Email: "jane@example.com", Password: "password1"})
	require.NoError(t, err)

	require.NoError(t, fx.service.Logout(ctx, tokens.RefreshToken))

	_, err = fx.service.RefreshToken(ctx, tokens.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)
}

func TestForgotPasswordUnknownEmailIsSilent(t *testing.T) {
	fx := newAuthFixture()
	ctx := context.Background()

	err := fx.service.ForgotPassword(ctx, "nobody@example.com")
	assert.NoError(t, err)
	assert.Empty(t, fx.emails.resetSent)
	assert.Empty(t, fx.resets.tokens)
}

func TestResetPasswordRevokesSessions(t *testing.T) {
	fx := newAuthFixture()
	ctx := context.Background()

	tokens, err := fx.service.Register(ctx, &dto.RegisterRequest{Name: "Jane", Email: "jane@example.com", Password: "password1"})
	require.NoError(t, err)

	require.NoError(t, fx.service.ForgotPassword(ctx, "jane@example.com"))
	require.Len(t, fx.emails.resetSent, 1)

	var resetToken string
	for token := range fx.resets.tokens {
		resetToken = token
	}
	require.NotEmpty(t, resetToken)

	require.NoError(t, fx.service.ResetPassword(ctx, resetToken, "newpassword1"))

	// Old password is gone, new one works
	_, err = fx.service.Login(ctx, &dto.LoginRequest{Email: "jane@example.com", Password: "password1"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	_, err = fx.service.Login(ctx, &dto.LoginRequest{Email: "jane@example.com", Password: "newpassword1"})
	assert.NoError(t, err)

	// Pre-reset sessions are dead
	_, err = fx.service.RefreshToken(ctx, tokens.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)

	// The reset token is single-use
	err = fx.service.ResetPassword(ctx, resetToken, "anotherpass1")
	assert.ErrorIs(t, err, apperrors.ErrPasswordResetTokenUsed)
}
