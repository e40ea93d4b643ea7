package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dheeraj5988/sustainable-cities/internal/app/lifecycle"
	"github.com/dheeraj5988/sustainable-cities/internal/app/models/dto"
	"github.com/dheeraj5988/sustainable-cities/internal/app/services"
	"github.com/dheeraj5988/sustainable-cities/internal/middleware"
	"github.com/dheeraj5988/sustainable-cities/internal/pkg/helpers"
)

// ForumController handles forum thread and comment operations
type ForumController struct {
	forumService *services.ForumService
}

// NewForumController creates a new ForumController
func NewForumController(forumService *services.ForumService) *ForumController {
	return &ForumController{forumService: forumService}
}

// CreateThread handles opening a forum thread
// @Summary Create a thread
// @Description Opens a new forum thread. Threads by non-admins start Pending and wait for moderation.
// @Tags forum
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateThreadRequest true "Thread data"
// @Success 201 {object} dto.APIResponse{data=dto.ThreadResponse} "Thread created"
// @Failure 400 {object} dto.ErrorResponse "Invalid thread data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /forum/threads [post]
func (c *ForumController) CreateThread(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	var req dto.CreateThreadRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	thread, err := c.forumService.CreateThread(ctx, actor, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(thread))
}

// GetThreads handles listing forum threads
// @Summary List threads
// @Description Lists threads visible to the caller: Approved threads plus the caller's own; admins see everything
// @Tags forum
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by moderation status"
// @Param tag query string false "Filter by tag"
// @Param page query int false "Page number (1-based)" default(1) minimum(1)
// @Param size query int false "Page size (default: 10, max: 100)" default(10) minimum(1) maximum(100)
// @Success 200 {object} dto.APIResponse{data=dto.ThreadListResponse} "Threads retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /forum/threads [get]
func (c *ForumController) GetThreads(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	var filter dto.ThreadFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid query parameters")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	threads, err := c.forumService.GetThreads(ctx, actor, &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(threads))
}

// GetThreadByID handles retrieving a single thread
// @Summary Get thread by ID
// @Description Retrieves a thread. Pending and Rejected threads are visible only to their author and admins; others get not found.
// @Tags forum
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Thread ID"
// @Success 200 {object} dto.APIResponse{data=dto.ThreadResponse} "Thread retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Thread not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /forum/threads/{id} [get]
func (c *ForumController) GetThreadByID(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	thread, err := c.forumService.GetThreadByID(ctx, actor, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(thread))
}

// ApproveThread handles admin approval of a pending thread
// @Summary Approve a thread
// @Description Moves a Pending thread to Approved, making it publicly visible
// @Tags forum
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Thread ID"
// @Success 200 {object} dto.APIResponse{data=dto.ThreadResponse} "Thread approved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Only admins moderate threads"
// @Failure 404 {object} dto.ErrorResponse "Thread not found"
// @Failure 409 {object} dto.ErrorResponse "Thread is not pending"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /forum/threads/{id}/approve [post]
func (c *ForumController) ApproveThread(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	thread, err := c.forumService.ModerateThread(ctx, actor, ctx.Param("id"), lifecycle.ActionApprove, "")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(thread))
}

// RejectThread handles admin rejection of a pending thread
// @Summary Reject a thread
// @Description Moves a Pending thread to Rejected; a moderation comment is mandatory
// @Tags forum
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Thread ID"
// @Param request body dto.RejectThreadRequest true "Moderation reason"
// @Success 200 {object} dto.APIResponse{data=dto.ThreadResponse} "Thread rejected"
// @Failure 400 {object} dto.ErrorResponse "Missing moderation comment"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Only admins moderate threads"
// @Failure 404 {object} dto.ErrorResponse "Thread not found"
// @Failure 409 {object} dto.ErrorResponse "Thread is not pending"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /forum/threads/{id}/reject [post]
func (c *ForumController) RejectThread(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	var req dto.RejectThreadRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	thread, err := c.forumService.ModerateThread(ctx, actor, ctx.Param("id"), lifecycle.ActionReject, req.Comment)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(thread))
}

// DeleteThread handles thread deletion
// @Summary Delete a thread
// @Description Deletes a thread and all its comments; allowed for the author and admins
// @Tags forum
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Thread ID"
// @Success 200 {object} dto.APIResponse "Thread deleted"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not allowed to delete this thread"
// @Failure 404 {object} dto.ErrorResponse "Thread not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /forum/threads/{id} [delete]
func (c *ForumController) DeleteThread(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	if err := c.forumService.DeleteThread(ctx, actor, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Thread deleted successfully"))
}

// CreateComment handles replying on a thread
// @Summary Comment on a thread
// @Description Adds a comment to an Approved thread; the thread's comment counter moves atomically with the insert
// @Tags forum
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Thread ID"
// @Param request body dto.CreateCommentRequest true "Comment data"
// @Success 201 {object} dto.APIResponse{data=dto.CommentResponse} "Comment created"
// @Failure 400 {object} dto.ErrorResponse "Invalid comment data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Thread not found"
// @Failure 409 {object} dto.ErrorResponse "Thread is not approved"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /forum/threads/{id}/comments [post]
func (c *ForumController) CreateComment(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	comment, err := c.forumService.CreateComment(ctx, actor, ctx.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(comment))
}

// GetComments handles listing a thread's comments
// @Summary List comments
// @Description Lists a thread's comments oldest first
// @Tags forum
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Thread ID"
// @Param page query int false "Page number (1-based)" default(1) minimum(1)
// @Param size query int false "Page size (default: 10, max: 100)" default(10) minimum(1) maximum(100)
// @Success 200 {object} dto.APIResponse "Comments retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Thread not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /forum/threads/{id}/comments [get]
func (c *ForumController) GetComments(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	page, pageSize := helpers.ParsePaginationParams(ctx)
	comments, pagination, err := c.forumService.GetComments(ctx, actor, ctx.Param("id"), page, pageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{
		"comments":   comments,
		"pagination": pagination,
	}))
}

// DeleteComment handles comment deletion
// @Summary Delete a comment
// @Description Deletes a comment; allowed for its author and admins. The thread's counter is decremented with a floor at zero.
// @Tags forum
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Comment ID"
// @Success 200 {object} dto.APIResponse "Comment deleted"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not allowed to delete this comment"
// @Failure 404 {object} dto.ErrorResponse "Comment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /forum/comments/{id} [delete]
func (c *ForumController) DeleteComment(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	if err := c.forumService.DeleteComment(ctx, actor, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Comment deleted successfully"))
}
