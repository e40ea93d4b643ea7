package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dheeraj5988/sustainable-cities/internal/app/lifecycle"
	"github.com/dheeraj5988/sustainable-cities/internal/app/models"
	"github.com/dheeraj5988/sustainable-cities/internal/app/models/dto"
	"github.com/dheeraj5988/sustainable-cities/internal/pkg/apperrors"
)

type forumFixture struct {
	service  *ForumService
	threads  *fakeThreadRepo
	comments *fakeCommentRepo
	emails   *fakeEmailSender
}

func newForumFixture() *forumFixture {
	threads := newFakeThreadRepo()
	threads.users["citizen-1"] = &models.User{ID: "citizen-1", Email: "citizen@example.com", Name: "Jane", RoleType: models.RoleCitizen}
	comments := newFakeCommentRepo(threads)
	emails := &fakeEmailSender{}

	service := NewForumService(threads, comments, emails, testLogger())
	return &forumFixture{service: service, threads: threads, comments: comments, emails: emails}
}

func (fx *forumFixture) mustCreate(t *testing.T, actor lifecycle.Actor) *dto.ThreadResponse {
	t.Helper()
	thread, err := fx.service.CreateThread(context.Background(), actor, &dto.CreateThreadRequest{
		Title: "Community composting",
		Body:  "Who wants to share a composting site?",
		Tags:  []string{"Composting", " waste ", "composting"},
	})
	require.NoError(t, err)
	return thread
}

func TestCreateThreadModerationQueue(t *testing.T) {
	fx := newForumFixture()

	thread := fx.mustCreate(t, citizenActor)
	assert.Equal(t, string(models.ThreadStatusPending), thread.Status)
	assert.Equal(t, []string{"composting", "waste"}, thread.Tags)

	workerThread := fx.mustCreate(t, workerActor)
	assert.Equal(t, string(models.ThreadStatusPending), workerThread.Status)

	// Admin threads bypass the queue
	adminThread := fx.mustCreate(t, adminActor)
	assert.Equal(t, string(models.ThreadStatusApproved), adminThread.Status)
}

func TestModerateThread(t *testing.T) {
	fx := newForumFixture()
	ctx := context.Background()
	thread := fx.mustCreate(t, citizenActor)

	// Only admins moderate
	_, err := fx.service.ModerateThread(ctx, workerActor, thread.ID, lifecycle.ActionApprove, "")
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	// A rejection needs a reason
	_, err = fx.service.ModerateThread(ctx, adminActor, thread.ID, lifecycle.ActionReject, "  ")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	approved, err := fx.service.ModerateThread(ctx, adminActor, thread.ID, lifecycle.ActionApprove, "")
	require.NoError(t, err)
	assert.Equal(t, string(models.ThreadStatusApproved), approved.Status)
	assert.Equal(t, []string{"citizen@example.com:Approved"}, fx.emails.modSent)

	// Moderation is single-shot
	_, err = fx.service.ModerateThread(ctx, adminActor, thread.ID, lifecycle.ActionReject, "late")
	assert.ErrorIs(t, err, apperrors.ErrInvalidState)
}

func TestRejectedThreadKeepsReason(t *testing.T) {
	fx := newForumFixture()
	ctx := context.Background()
	thread := fx.mustCreate(t, citizenActor)

	rejected, err := fx.service.ModerateThread(ctx, adminActor, thread.ID, lifecycle.ActionReject, "needs more detail")
	require.NoError(t, err)
	assert.Equal(t, string(models.ThreadStatusRejected), rejected.Status)
	require.NotNil(t, rejected.Comment)
	assert.Equal(t, "needs more detail", *rejected.Comment)
	assert.Equal(t, []string{"citizen@example.com:Rejected"}, fx.emails.modSent)
}

func TestThreadVisibility(t *testing.T) {
	fx := newForumFixture()
	ctx := context.Background()
	thread := fx.mustCreate(t, citizenActor)

	// Pending: author and admin only, others get not found
	_, err := fx.service.GetThreadByID(ctx, citizenActor, thread.ID)
	assert.NoError(t, err)
	_, err = fx.service.GetThreadByID(ctx, adminActor, thread.ID)
	assert.NoError(t, err)
	_, err = fx.service.GetThreadByID(ctx, citizen2Actor, thread.ID)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)

	list, err := fx.service.GetThreads(ctx, citizen2Actor, &dto.ThreadFilterRequest{})
	require.NoError(t, err)
	assert.Empty(t, list.Threads)

	// Approved: public
	_, err = fx.service.ModerateThread(ctx, adminActor, thread.ID, lifecycle.ActionApprove, "")
	require.NoError(t, err)
	_, err = fx.service.GetThreadByID(ctx, citizen2Actor, thread.ID)
	assert.NoError(t, err)

	list, err = fx.service.GetThreads(ctx, citizen2Actor, &dto.ThreadFilterRequest{})
	require.NoError(t, err)
	assert.Len(t, list.Threads, 1)
}

func TestCommentsOnlyOnApprovedThreads(t *testing.T) {
	fx := newForumFixture()
	ctx := context.Background()
	thread := fx.mustCreate(t, citizenActor)

	// The author can see the pending thread but still cannot comment
	_, err := fx.service.CreateComment(ctx, citizenActor, thread.ID, &dto.CreateCommentRequest{Content: "bump"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidState)

	// A stranger cannot tell the thread exists
	_, err = fx.service.CreateComment(ctx, citizen2Actor, thread.ID, &dto.CreateCommentRequest{Content: "hi"})
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)

	_, err = fx.service.ModerateThread(ctx, adminActor, thread.ID, lifecycle.ActionApprove, "")
	require.NoError(t, err)

	comment, err := fx.service.CreateComment(ctx, citizen2Actor, thread.ID, &dto.CreateCommentRequest{Content: "Count me in."})
	require.NoError(t, err)
	assert.Equal(t, thread.ID, comment.ThreadID)
	assert.Equal(t, citizen2Actor.ID, comment.CreatedBy)
}

func TestCommentCountNeverGoesNegative(t *testing.T) {
	fx := newForumFixture()
	ctx := context.Background()
	thread := fx.mustCreate(t, adminActor)

	first, err := fx.service.CreateComment(ctx, citizenActor, thread.ID, &dto.CreateCommentRequest{Content: "one"})
	require.NoError(t, err)
	second, err := fx.service.CreateComment(ctx, citizen2Actor, thread.ID, &dto.CreateCommentRequest{Content: "two"})
	require.NoError(t, err)

	updated, err := fx.service.GetThreadByID(ctx, adminActor, thread.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, updated.CommentCount)

	require.NoError(t, fx.service.DeleteComment(ctx, citizenActor, first.ID))
	require.NoError(t, fx.service.DeleteComment(ctx, adminActor, second.ID))

	updated, err = fx.service.GetThreadByID(ctx, adminActor, thread.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, updated.CommentCount)

	// Deleting an already removed comment changes nothing
	err = fx.service.DeleteComment(ctx, adminActor, second.ID)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)

	updated, err = fx.service.GetThreadByID(ctx, adminActor, thread.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, updated.CommentCount)
}

func TestDeleteCommentAuthorization(t *testing.T) {
	fx := newForumFixture()
	ctx := context.Background()
	thread := fx.mustCreate(t, adminActor)

	comment, err := fx.service.CreateComment(ctx, citizenActor, thread.ID, &dto.CreateCommentRequest{Content: "mine"})
	require.NoError(t, err)

	err = fx.service.DeleteComment(ctx, citizen2Actor, comment.ID)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	require.NoError(t, fx.service.DeleteComment(ctx, citizenActor, comment.ID))
}

func TestDeleteThreadAuthorization(t *testing.T) {
	fx := newForumFixture()
	ctx := context.Background()
	thread := fx.mustCreate(t, citizenActor)

	_, err := fx.service.ModerateThread(ctx, adminActor, thread.ID, lifecycle.ActionApprove, "")
	require.NoError(t, err)

	err = fx.service.DeleteThread(ctx, citizen2Actor, thread.ID)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	require.NoError(t, fx.service.DeleteThread(ctx, citizenActor, thread.ID))

	err = fx.service.DeleteThread(ctx, adminActor, thread.ID)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}
