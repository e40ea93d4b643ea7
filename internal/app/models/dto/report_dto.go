package dto

import "time"

// CreateReportRequest is the payload for submitting a new report
type CreateReportRequest struct {
	Title       string   `json:"title" binding:"required,max=200" example:"Overflowing bins on Elm Street"`
	Description string   `json:"description" binding:"required" example:"The bins have not been emptied for two weeks"`
	Location    string   `json:"location" binding:"required" example:"Elm Street 12"`
	Latitude    *float64 `json:"latitude,omitempty" example:"52.52"`
	Longitude   *float64 `json:"longitude,omitempty" example:"13.405"`
	Type        string   `json:"type" binding:"required" example:"Waste Management"`
}

// RejectReportRequest carries the mandatory rejection reason
type RejectReportRequest struct {
	Comment string `json:"comment" binding:"required" example:"Duplicate of an existing report"`
}

// ResolveReportRequest carries the mandatory resolution summary
type ResolveReportRequest struct {
	ResolutionDetails string   `json:"resolutionDetails" binding:"required" example:"Bins emptied, pickup schedule fixed"`
	ResolutionImages  []string `json:"resolutionImages,omitempty"`
}

// ReportResponse is the API view of a report
type ReportResponse struct {
	ID                string        `json:"id"`
	Title             string        `json:"title"`
	Description       string        `json:"description"`
	Location          string        `json:"location"`
	Latitude          *float64      `json:"latitude,omitempty"`
	Longitude         *float64      `json:"longitude,omitempty"`
	Type              string        `json:"type" example:"Waste Management"`
	Status            string        `json:"status" example:"Pending"`
	CreatedBy         string        `json:"createdBy"`
	AssignedTo        *string       `json:"assignedTo,omitempty"`
	ResolutionDetails *string       `json:"resolutionDetails,omitempty"`
	ResolutionImages  []string      `json:"resolutionImages,omitempty"`
	Comment           *string       `json:"comment,omitempty"`
	CreatedAt         time.Time     `json:"createdAt"`
	UpdatedAt         time.Time     `json:"updatedAt"`
	CreatedByProfile  *UserResponse `json:"createdByProfile,omitempty"`
	AssignedToProfile *UserResponse `json:"assignedToProfile,omitempty"`
}

// ReportFilterRequest carries list filters and paging
type ReportFilterRequest struct {
	Status   *string `form:"status" example:"Approved"`
	Type     *string `form:"type" example:"Pollution"`
	Page     int     `form:"page,default=1"`
	PageSize int     `form:"size,default=10"`
}

// ReportListResponse is a paginated list of reports
type ReportListResponse struct {
	Reports        []ReportResponse `json:"reports"`
	PaginationInfo PaginationInfo   `json:"pagination"`
}
