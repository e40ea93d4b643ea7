package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/dheeraj5988/sustainable-cities/internal/app/lifecycle"
	"github.com/dheeraj5988/sustainable-cities/internal/app/models"
	"github.com/dheeraj5988/sustainable-cities/internal/app/models/dto"
	"github.com/dheeraj5988/sustainable-cities/internal/app/repositories"
	"github.com/dheeraj5988/sustainable-cities/internal/pkg/apperrors"
	"github.com/dheeraj5988/sustainable-cities/internal/pkg/email"
	"github.com/dheeraj5988/sustainable-cities/internal/pkg/helpers"
	"github.com/dheeraj5988/sustainable-cities/internal/pkg/validation"
)

// ForumService handles forum thread and comment operations
type ForumService struct {
	threadRepo  repositories.IThreadRepository
	commentRepo repositories.ICommentRepository
	emailSender email.Sender
	logger      zerolog.Logger
}

// NewForumService creates a new ForumService
func NewForumService(
	threadRepo repositories.IThreadRepository,
	commentRepo repositories.ICommentRepository,
	emailSender email.Sender,
	logger zerolog.Logger,
) *ForumService {
	return &ForumService{
		threadRepo:  threadRepo,
		commentRepo: commentRepo,
		emailSender: emailSender,
		logger:      logger,
	}
}

// CreateThread opens a new thread. Admin threads bypass the moderation
// queue, everyone else starts Pending.
func (s *ForumService) CreateThread(ctx context.Context, actor lifecycle.Actor, req *dto.CreateThreadRequest) (*dto.ThreadResponse, error) {
	thread := &models.ForumThread{
		Title:     req.Title,
		Body:      req.Body,
		Tags:      validation.NormalizeTags(req.Tags),
		Status:    lifecycle.InitialThreadStatus(actor.Role),
		CreatedBy: actor.ID,
	}
	if err := s.threadRepo.Create(ctx, thread); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("threadID", thread.ID).
		Str("createdBy", actor.ID).
		Str("status", string(thread.Status)).
		Msg("Thread created")
	return toThreadResponse(thread), nil
}

// GetThreads lists threads visible to the caller
func (s *ForumService) GetThreads(ctx context.Context, actor lifecycle.Actor, filter *dto.ThreadFilterRequest) (*dto.ThreadListResponse, error) {
	page, pageSize := filter.Page, filter.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 || pageSize > helpers.MaxPageSize {
		pageSize = helpers.DefaultPageSize
	}

	isAdmin := actor.Role == models.RoleAdmin
	threads, total, err := s.threadRepo.GetAll(ctx, filter.Status, filter.Tag, actor.ID, isAdmin, page, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ThreadResponse, 0, len(threads))
	for i := range threads {
		responses = append(responses, *toThreadResponse(&threads[i]))
	}

	return &dto.ThreadListResponse{
		Threads:        responses,
		PaginationInfo: helpers.NewPaginationInfo(total, page, pageSize),
	}, nil
}

// GetThreadByID retrieves a single thread. A thread the caller may not view
// is indistinguishable from a missing one.
func (s *ForumService) GetThreadByID(ctx context.Context, actor lifecycle.Actor, id string) (*dto.ThreadResponse, error) {
	thread, err := s.threadRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !lifecycle.CanViewThread(thread, actor) {
		return nil, apperrors.NewResourceNotFoundError("thread not found")
	}

	return toThreadResponse(thread), nil
}

// ModerateThread approves or rejects a pending thread
func (s *ForumService) ModerateThread(ctx context.Context, actor lifecycle.Actor, threadID string, action lifecycle.Action, comment string) (*dto.ThreadResponse, error) {
	thread, err := s.threadRepo.GetByID(ctx, threadID)
	if err != nil {
		return nil, err
	}

	outcome, err := lifecycle.DecideThread(thread, action, actor, comment)
	if err != nil {
		return nil, err
	}

	if err := s.threadRepo.ApplyModeration(ctx, threadID, outcome.Status, outcome.Comment); err != nil {
		return nil, err
	}

	updated, err := s.threadRepo.GetByID(ctx, threadID)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("threadID", threadID).
		Str("action", string(action)).
		Str("actorID", actor.ID).
		Msg("Thread moderated")

	if outcome.NotifyAuthor {
		s.notifyAuthor(updated)
	}

	return toThreadResponse(updated), nil
}

// DeleteThread removes a thread and its comments
func (s *ForumService) DeleteThread(ctx context.Context, actor lifecycle.Actor, id string) error {
	thread, err := s.threadRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !lifecycle.CanViewThread(thread, actor) {
		return apperrors.NewResourceNotFoundError("thread not found")
	}
	if err := lifecycle.CanDeleteThread(thread, actor); err != nil {
		return err
	}

	if err := s.threadRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("threadID", id).Str("actorID", actor.ID).Msg("Thread deleted")
	return nil
}

// CreateComment replies on an approved thread. The thread's comment counter
// moves in the same transaction as the comment insert.
func (s *ForumService) CreateComment(ctx context.Context, actor lifecycle.Actor, threadID string, req *dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	thread, err := s.threadRepo.GetByID(ctx, threadID)
	if err != nil {
		return nil, err
	}

	if !lifecycle.CanViewThread(thread, actor) {
		return nil, apperrors.NewResourceNotFoundError("thread not found")
	}
	if thread.Status != models.ThreadStatusApproved {
		return nil, apperrors.NewInvalidStateError("comments are only allowed on approved threads")
	}

	comment := &models.ForumComment{
		ThreadID:  threadID,
		Content:   req.Content,
		CreatedBy: actor.ID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	return toCommentResponse(comment), nil
}

// GetComments lists a thread's comments, oldest first
func (s *ForumService) GetComments(ctx context.Context, actor lifecycle.Actor, threadID string, page, pageSize int) ([]dto.CommentResponse, dto.PaginationInfo, error) {
	thread, err := s.threadRepo.GetByID(ctx, threadID)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	if !lifecycle.CanViewThread(thread, actor) {
		return nil, dto.PaginationInfo{}, apperrors.NewResourceNotFoundError("thread not found")
	}

	comments, total, err := s.commentRepo.GetByThread(ctx, threadID, page, pageSize)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	responses := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		responses = append(responses, *toCommentResponse(&comments[i]))
	}

	return responses, helpers.NewPaginationInfo(total, page, pageSize), nil
}

// DeleteComment removes a comment; the thread's counter is decremented with
// a floor at zero
func (s *ForumService) DeleteComment(ctx context.Context, actor lifecycle.Actor, commentID string) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}

	if err := lifecycle.CanDeleteComment(comment, actor); err != nil {
		return err
	}

	if err := s.commentRepo.Delete(ctx, commentID); err != nil {
		return err
	}

	s.logger.Info().Str("commentID", commentID).Str("actorID", actor.ID).Msg("Comment deleted")
	return nil
}

// notifyAuthor sends a best-effort moderation notification to the thread
// author
func (s *ForumService) notifyAuthor(thread *models.ForumThread) {
	author := thread.Author
	if author == nil {
		return
	}

	reason := ""
	if thread.Comment != nil {
		reason = *thread.Comment
	}

	if err := s.emailSender.SendThreadModerationEmail(author.Email, author.Name, thread.Title, string(thread.Status), reason); err != nil {
		s.logger.Warn().Err(err).Str("threadID", thread.ID).Msg("Failed to send thread moderation email")
	}
}

func toThreadResponse(thread *models.ForumThread) *dto.ThreadResponse {
	resp := &dto.ThreadResponse{
		ID:           thread.ID,
		Title:        thread.Title,
		Body:         thread.Body,
		Tags:         thread.Tags,
		Status:       string(thread.Status),
		CreatedBy:    thread.CreatedBy,
		CommentCount: thread.CommentCount,
		Comment:      thread.Comment,
		CreatedAt:    thread.CreatedAt,
		UpdatedAt:    thread.UpdatedAt,
	}
	if thread.Author != nil {
		resp.Author = toUserResponse(thread.Author)
	}
	return resp
}

func toCommentResponse(comment *models.ForumComment) *dto.CommentResponse {
	resp := &dto.CommentResponse{
		ID:        comment.ID,
		ThreadID:  comment.ThreadID,
		Content:   comment.Content,
		CreatedBy: comment.CreatedBy,
		CreatedAt: comment.CreatedAt,
	}
	if comment.Author != nil {
		resp.Author = toUserResponse(comment.Author)
	}
	return resp
}
