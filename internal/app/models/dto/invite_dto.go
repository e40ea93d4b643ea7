package dto

import "time"

// CreateInviteRequest is the payload for generating a worker invite code
type CreateInviteRequest struct {
	// Email optionally restricts the code to a single signup address
	Email *string `json:"email,omitempty" binding:"omitempty,email" example:"sam@example.com"`
	// ExpiresInDays defaults to 7 when omitted
	ExpiresInDays *int `json:"expiresInDays,omitempty" binding:"omitempty,min=1,max=90" example:"7"`
}

// InviteResponse is the API view of a worker invite
type InviteResponse struct {
	ID        string    `json:"id"`
	Code      string    `json:"code" example:"AB12CD34"`
	Email     *string   `json:"email,omitempty"`
	IsUsed    bool      `json:"isUsed"`
	UsedBy    *string   `json:"usedBy,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// InviteListResponse is the list of invite codes
type InviteListResponse struct {
	Invites []InviteResponse `json:"invites"`
}
