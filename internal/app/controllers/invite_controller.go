package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dheeraj5988/sustainable-cities/internal/app/models/dto"
	"github.com/dheeraj5988/sustainable-cities/internal/app/services"
	"github.com/dheeraj5988/sustainable-cities/internal/middleware"
)

// InviteController handles worker invite operations
type InviteController struct {
	inviteService *services.InviteService
}

// NewInviteController creates a new InviteController
func NewInviteController(inviteService *services.InviteService) *InviteController {
	return &InviteController{inviteService: inviteService}
}

// CreateInvite handles generating a worker invite code
// @Summary Create a worker invite
// @Description Generates a single-use invite code, optionally restricted to one email address. Default expiry is 7 days.
// @Tags invites
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateInviteRequest true "Invite options"
// @Success 201 {object} dto.APIResponse{data=dto.InviteResponse} "Invite created"
// @Failure 400 {object} dto.ErrorResponse "Invalid invite options"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Admins only"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/invites [post]
func (c *InviteController) CreateInvite(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	var req dto.CreateInviteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	invite, err := c.inviteService.CreateInvite(ctx, actor, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(invite))
}

// GetInvites handles listing invite codes
// @Summary List invites
// @Description Lists all worker invite codes, newest first
// @Tags invites
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.InviteListResponse} "Invites retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Admins only"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/invites [get]
func (c *InviteController) GetInvites(ctx *gin.Context) {
	invites, err := c.inviteService.GetInvites(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(invites))
}

// DeleteInvite handles revoking an invite code
// @Summary Delete an invite
// @Description Revokes an invite code so it can no longer be used for signup
// @Tags invites
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Invite ID"
// @Success 200 {object} dto.APIResponse "Invite deleted"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Admins only"
// @Failure 404 {object} dto.ErrorResponse "Invite not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/invites/{id} [delete]
func (c *InviteController) DeleteInvite(ctx *gin.Context) {
	if err := c.inviteService.DeleteInvite(ctx, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Invite deleted successfully"))
}
