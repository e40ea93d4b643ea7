package lifecycle

import (
	"time"

	"github.com/dheeraj5988/sustainable-cities/internal/app/models"
	"github.com/dheeraj5988/sustainable-cities/internal/pkg/apperrors"
)

// ValidateInvite checks an invite code presented at worker signup. The
// checks run in a fixed order: the code must exist and be unused, it must not
// have expired, and when the invite carries a restricting email the signup
// email must match it exactly. A nil return means the signup may proceed;
// marking the code used happens afterwards, atomically with account
// creation.
func ValidateInvite(invite *models.WorkerInvite, email string, now time.Time) error {
	if invite == nil || invite.IsUsed {
		return apperrors.ErrInvalidInviteCode
	}
	if !invite.ExpiresAt.After(now) {
		return apperrors.ErrInviteExpired
	}
	if invite.Email != nil && *invite.Email != email {
		return apperrors.ErrInviteEmailMismatch
	}
	return nil
}
