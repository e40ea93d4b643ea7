package lifecycle

import (
	"strings"

	"github.com/dheeraj5988/sustainable-cities/internal/app/models"
	"github.com/dheeraj5988/sustainable-cities/internal/pkg/apperrors"
)

// ThreadOutcome describes the resulting moderation state of a permitted
// thread transition.
type ThreadOutcome struct {
	Status models.ThreadStatus

	// Comment is the moderator rejection reason; populated if and only if
	// Status is Rejected.
	Comment *string

	// NotifyAuthor indicates the thread author should receive a best-effort
	// moderation notification.
	NotifyAuthor bool
}

// InitialThreadStatus returns the moderation state a newly created thread
// starts in: threads by admins bypass moderation, everyone else waits in the
// queue.
func InitialThreadStatus(role models.RoleType) models.ThreadStatus {
	if role == models.RoleAdmin {
		return models.ThreadStatusApproved
	}
	return models.ThreadStatusPending
}

// DecideThread evaluates a requested thread moderation transition. Only
// admins moderate, only Pending threads can be moderated, and a rejection
// requires a non-empty comment.
func DecideThread(thread *models.ForumThread, action Action, actor Actor, comment string) (ThreadOutcome, error) {
	if action != ActionApprove && action != ActionReject {
		return ThreadOutcome{}, apperrors.NewInvalidStateError(
			"action " + string(action) + " is not defined for forum threads")
	}
	if thread.Status != models.ThreadStatusPending {
		return ThreadOutcome{}, apperrors.NewInvalidStateError(
			"thread is already " + string(thread.Status))
	}
	if actor.Role != models.RoleAdmin {
		return ThreadOutcome{}, apperrors.NewForbiddenError("only admins moderate forum threads")
	}

	if action == ActionApprove {
		return ThreadOutcome{Status: models.ThreadStatusApproved, NotifyAuthor: true}, nil
	}

	if strings.TrimSpace(comment) == "" {
		return ThreadOutcome{}, apperrors.NewValidationError("a rejection comment is required")
	}
	reason := comment
	return ThreadOutcome{Status: models.ThreadStatusRejected, Comment: &reason, NotifyAuthor: true}, nil
}

// CanViewThread decides whether the actor may read a thread: Approved
// threads are public, Pending and Rejected ones are visible only to their
// author and to admins.
func CanViewThread(thread *models.ForumThread, actor Actor) bool {
	if thread.Status == models.ThreadStatusApproved {
		return true
	}
	return actor.Role == models.RoleAdmin || thread.CreatedBy == actor.ID
}

// CanDeleteThread decides whether the actor may delete a thread: its author
// or an admin.
func CanDeleteThread(thread *models.ForumThread, actor Actor) error {
	if actor.Role == models.RoleAdmin || thread.CreatedBy == actor.ID {
		return nil
	}
	return apperrors.NewForbiddenError("only the thread author or an admin may delete it")
}

// CanDeleteComment decides whether the actor may delete a forum comment: its
// author or an admin.
func CanDeleteComment(comment *models.ForumComment, actor Actor) error {
	if actor.Role == models.RoleAdmin || comment.CreatedBy == actor.ID {
		return nil
	}
	return apperrors.NewForbiddenError("only the comment author or an admin may delete it")
}
