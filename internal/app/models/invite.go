package models

import "time"

// WorkerInvite represents a single-use, time-limited invitation code based on
// the 'worker_invites' table. A code is inert once IsUsed is set.
type WorkerInvite struct {
	ID        string    `json:"id" db:"id"`
	Code      string    `json:"code" db:"code"`
	Email     *string   `json:"email,omitempty" db:"email"` // restricts the code to one signup email when set
	CreatedBy string    `json:"createdBy" db:"created_by"`
	IsUsed    bool      `json:"isUsed" db:"is_used"`
	UsedBy    *string   `json:"usedBy,omitempty" db:"used_by"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	ExpiresAt time.Time `json:"expiresAt" db:"expires_at"`
}
