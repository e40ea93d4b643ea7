package models

import (
	"time"
)

// User defines the user model based on the 'profiles' table
type User struct {
	ID          string     `json:"id" db:"id" example:"4c2c1a2e-8f7a-4f4b-9c2a-1f0e5c3d2b1a"` // Unique identifier for the user
	Email       string     `json:"email" db:"email" example:"user@example.com"`               // User's email address
	Password    string     `json:"-" db:"password"`                                           // User's hashed password (excluded from JSON)
	Name        string     `json:"name" db:"name" example:"Jane Doe"`                         // User's display name
	RoleType    RoleType   `json:"roleType" db:"role" example:"citizen"`                      // User's role (citizen, worker or admin)
	IsActive    bool       `json:"isActive" db:"is_active" example:"true"`                    // Whether the user account is active
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`                  // Timestamp of the last login (nullable)
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`                                 // Timestamp when the user was created
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`                                 // Timestamp when the user was last updated
}
