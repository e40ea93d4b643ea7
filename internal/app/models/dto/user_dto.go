package dto

import "time"

// UserResponse is the public view of a profile
type UserResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name" example:"Jane Doe"`
	Email       string     `json:"email" example:"jane@example.com"`
	RoleType    string     `json:"roleType" example:"citizen" enums:"citizen,worker,admin"`
	IsActive    bool       `json:"isActive"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// UpdateProfileRequest updates the caller's own profile
type UpdateProfileRequest struct {
	Name  string `json:"name" binding:"required" example:"Jane Doe"`
	Email string `json:"email" binding:"required,email" example:"jane@example.com"`
}

// UpdateRoleRequest changes another user's role (admin only)
type UpdateRoleRequest struct {
	RoleType string `json:"roleType" binding:"required" example:"worker" enums:"citizen,worker,admin"`
}

// UserListResponse is a paginated list of profiles
type UserListResponse struct {
	Users          []UserResponse `json:"users"`
	PaginationInfo PaginationInfo `json:"pagination"`
}

// AdminStatsResponse carries the admin dashboard counters
type AdminStatsResponse struct {
	ReportsByStatus map[string]int64 `json:"reportsByStatus"`
	UsersByRole     map[string]int64 `json:"usersByRole"`
	PendingThreads  int64            `json:"pendingThreads"`
	UnusedInvites   int64            `json:"unusedInvites"`
}
