package models

// RoleType defines the user role type. The role is the sole authorization
// key: every lifecycle transition and read scope is gated on it.
type RoleType string

const (
	RoleCitizen RoleType = "citizen"
	RoleWorker  RoleType = "worker"
	RoleAdmin   RoleType = "admin"
)

// Valid reports whether the role is one of the known roles.
func (r RoleType) Valid() bool {
	switch r {
	case RoleCitizen, RoleWorker, RoleAdmin:
		return true
	}
	return false
}

// ReportStatus defines the report lifecycle state.
type ReportStatus string

const (
	ReportStatusPending    ReportStatus = "Pending"
	ReportStatusApproved   ReportStatus = "Approved"
	ReportStatusInProgress ReportStatus = "In Progress"
	ReportStatusResolved   ReportStatus = "Resolved"
	ReportStatusCompleted  ReportStatus = "Completed"
	ReportStatusRejected   ReportStatus = "Rejected"
)

// Terminal reports whether the status accepts no further transitions.
func (s ReportStatus) Terminal() bool {
	return s == ReportStatusCompleted || s == ReportStatusRejected
}

// ReportType categorizes a sustainability issue report.
type ReportType string

const (
	ReportTypePollution      ReportType = "Pollution"
	ReportTypeWaste          ReportType = "Waste Management"
	ReportTypeInfrastructure ReportType = "Broken Infrastructure"
	ReportTypeWaterLeakage   ReportType = "Water Leakage"
	ReportTypeGreenSpace     ReportType = "Green Space Issue"
	ReportTypeOther          ReportType = "Other"
)

// Valid reports whether the type is one of the known report types.
func (t ReportType) Valid() bool {
	switch t {
	case ReportTypePollution, ReportTypeWaste, ReportTypeInfrastructure,
		ReportTypeWaterLeakage, ReportTypeGreenSpace, ReportTypeOther:
		return true
	}
	return false
}

// ThreadStatus defines the forum thread moderation state.
type ThreadStatus string

const (
	ThreadStatusPending  ThreadStatus = "Pending"
	ThreadStatusApproved ThreadStatus = "Approved"
	ThreadStatusRejected ThreadStatus = "Rejected"
)

// Terminal reports whether the moderation state is final.
func (s ThreadStatus) Terminal() bool {
	return s == ThreadStatusApproved || s == ThreadStatusRejected
}
