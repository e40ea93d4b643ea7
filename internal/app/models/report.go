package models

import "time"

// Report represents a citizen-submitted sustainability issue based on the
// 'reports' table.
//
// AssignedTo is non-null only from the moment a worker claims the report;
// once set it is never cleared by any defined transition. ResolutionDetails
// is set exactly once, on the transition to Resolved.
type Report struct {
	ID                string       `json:"id" db:"id"`
	Title             string       `json:"title" db:"title"`
	Description       string       `json:"description" db:"description"`
	Location          string       `json:"location" db:"location"`
	Latitude          *float64     `json:"latitude,omitempty" db:"latitude"`
	Longitude         *float64     `json:"longitude,omitempty" db:"longitude"`
	Type              ReportType   `json:"type" db:"type"`
	Status            ReportStatus `json:"status" db:"status"`
	CreatedBy         string       `json:"createdBy" db:"created_by"`
	AssignedTo        *string      `json:"assignedTo,omitempty" db:"assigned_to"`
	ResolutionDetails *string      `json:"resolutionDetails,omitempty" db:"resolution_details"`
	ResolutionImages  []string     `json:"resolutionImages,omitempty" db:"resolution_images"`
	Comment           *string      `json:"comment,omitempty" db:"comment"` // admin rejection reason
	CreatedAt         time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt         time.Time    `json:"updatedAt" db:"updated_at"`

	// Related entities
	CreatedByProfile  *User `json:"createdByProfile,omitempty"`
	AssignedToProfile *User `json:"assignedToProfile,omitempty"`
}
