package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dheeraj5988/sustainable-cities/internal/app/lifecycle"
	"github.com/dheeraj5988/sustainable-cities/internal/app/models/dto"
	"github.com/dheeraj5988/sustainable-cities/internal/app/services"
	"github.com/dheeraj5988/sustainable-cities/internal/middleware"
)

// ReportController handles report related operations
type ReportController struct {
	reportService *services.ReportService
}

// NewReportController creates a new ReportController
func NewReportController(reportService *services.ReportService) *ReportController {
	return &ReportController{reportService: reportService}
}

func requireActor(ctx *gin.Context) (lifecycle.Actor, bool) {
	actor, ok := middleware.ActorFromContext(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return lifecycle.Actor{}, false
	}
	return actor, true
}

// CreateReport handles report submission
// @Summary Submit a report
// @Description Creates a new sustainability issue report; it starts in Pending status
// @Tags reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateReportRequest true "Report data"
// @Success 201 {object} dto.APIResponse{data=dto.ReportResponse} "Report created"
// @Failure 400 {object} dto.ErrorResponse "Invalid report data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /reports [post]
func (c *ReportController) CreateReport(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	var req dto.CreateReportRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	report, err := c.reportService.CreateReport(ctx, actor, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(report))
}

// GetReports handles listing reports
// @Summary List reports
// @Description Lists reports within the caller's read scope: citizens see their own, workers see their assignments plus the Approved pool, admins see everything
// @Tags reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Param type query string false "Filter by report type"
// @Param page query int false "Page number (1-based)" default(1) minimum(1)
// @Param size query int false "Page size (default: 10, max: 100)" default(10) minimum(1) maximum(100)
// @Success 200 {object} dto.APIResponse{data=dto.ReportListResponse} "Reports retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /reports [get]
func (c *ReportController) GetReports(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	var filter dto.ReportFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid query parameters")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	reports, err := c.reportService.GetReports(ctx, actor, &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(reports))
}

// GetReportByID handles retrieving a single report
// @Summary Get report by ID
// @Description Retrieves a report. Reports outside the caller's read scope are reported as not found.
// @Tags reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Report ID"
// @Success 200 {object} dto.APIResponse{data=dto.ReportResponse} "Report retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Report not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /reports/{id} [get]
func (c *ReportController) GetReportByID(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	report, err := c.reportService.GetReportByID(ctx, actor, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(report))
}

// ApproveReport handles admin approval of a pending report
// @Summary Approve a report
// @Description Moves a Pending report to Approved, making it claimable by workers
// @Tags reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Report ID"
// @Success 200 {object} dto.APIResponse{data=dto.ReportResponse} "Report approved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Role may not approve reports"
// @Failure 404 {object} dto.ErrorResponse "Report not found"
// @Failure 409 {object} dto.ErrorResponse "Transition not defined from current status"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /reports/{id}/approve [post]
func (c *ReportController) ApproveReport(ctx *gin.Context) {
	c.transition(ctx, lifecycle.ActionApprove, lifecycle.ReportPayload{})
}

// RejectReport handles admin rejection of a pending report
// @Summary Reject a report
// @Description Moves a Pending report to the terminal Rejected status; a rejection comment is mandatory
// @Tags reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Report ID"
// @Param request body dto.RejectReportRequest true "Rejection reason"
// @Success 200 {object} dto.APIResponse{data=dto.ReportResponse} "Report rejected"
// @Failure 400 {object} dto.ErrorResponse "Missing rejection comment"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Role may not reject reports"
// @Failure 404 {object} dto.ErrorResponse "Report not found"
// @Failure 409 {object} dto.ErrorResponse "Transition not defined from current status"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /reports/{id}/reject [post]
func (c *ReportController) RejectReport(ctx *gin.Context) {
	var req dto.RejectReportRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	c.transition(ctx, lifecycle.ActionReject, lifecycle.ReportPayload{Comment: req.Comment})
}

// ClaimReport handles a worker claiming an approved report
// @Summary Claim a report
// @Description Assigns an Approved report to the calling worker and moves it to In Progress. Of two concurrent claims exactly one succeeds; the other gets a conflict.
// @Tags reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Report ID"
// @Success 200 {object} dto.APIResponse{data=dto.ReportResponse} "Report claimed"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Role may not claim reports"
// @Failure 404 {object} dto.ErrorResponse "Report not found"
// @Failure 409 {object} dto.ErrorResponse "Report already assigned to another worker"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /reports/{id}/claim [post]
func (c *ReportController) ClaimReport(ctx *gin.Context) {
	c.transition(ctx, lifecycle.ActionStartWork, lifecycle.ReportPayload{})
}

// ResolveReport handles the assigned worker resolving a report
// @Summary Resolve a report
// @Description Moves an In Progress report to Resolved; only the assigned worker may do this and resolution details are mandatory
// @Tags reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Report ID"
// @Param request body dto.ResolveReportRequest true "Resolution summary"
// @Success 200 {object} dto.APIResponse{data=dto.ReportResponse} "Report resolved"
// @Failure 400 {object} dto.ErrorResponse "Missing resolution details"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Only the assigned worker may resolve"
// @Failure 404 {object} dto.ErrorResponse "Report not found"
// @Failure 409 {object} dto.ErrorResponse "Transition not defined from current status"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /reports/{id}/resolve [post]
func (c *ReportController) ResolveReport(ctx *gin.Context) {
	var req dto.ResolveReportRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	c.transition(ctx, lifecycle.ActionResolve, lifecycle.ReportPayload{
		ResolutionDetails: req.ResolutionDetails,
		ResolutionImages:  req.ResolutionImages,
	})
}

// CompleteReport handles admin sign-off on a resolved report
// @Summary Complete a report
// @Description Moves a Resolved report to the terminal Completed status
// @Tags reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Report ID"
// @Success 200 {object} dto.APIResponse{data=dto.ReportResponse} "Report completed"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Role may not complete reports"
// @Failure 404 {object} dto.ErrorResponse "Report not found"
// @Failure 409 {object} dto.ErrorResponse "Transition not defined from current status"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /reports/{id}/complete [post]
func (c *ReportController) CompleteReport(ctx *gin.Context) {
	c.transition(ctx, lifecycle.ActionComplete, lifecycle.ReportPayload{})
}

// DeleteReport handles report deletion
// @Summary Delete a report
// @Description Deletes a report; allowed for its owner while it is still Pending, or for an admin at any time
// @Tags reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Report ID"
// @Success 200 {object} dto.APIResponse "Report deleted"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not allowed to delete this report"
// @Failure 404 {object} dto.ErrorResponse "Report not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /reports/{id} [delete]
func (c *ReportController) DeleteReport(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	if err := c.reportService.DeleteReport(ctx, actor, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Report deleted successfully"))
}

func (c *ReportController) transition(ctx *gin.Context, action lifecycle.Action, payload lifecycle.ReportPayload) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	report, err := c.reportService.Transition(ctx, actor, ctx.Param("id"), action, payload)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(report))
}
