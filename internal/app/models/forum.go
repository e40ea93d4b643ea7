package models

import "time"

// ForumThread represents a forum post based on the 'forum_threads' table.
//
// Comment holds the moderator rejection reason and is populated if and only
// if Status is Rejected. CommentCount is maintained atomically at the store
// and never goes negative.
type ForumThread struct {
	ID           string       `json:"id" db:"id"`
	Title        string       `json:"title" db:"title"`
	Body         string       `json:"body" db:"body"`
	Tags         []string     `json:"tags" db:"tags"`
	Status       ThreadStatus `json:"status" db:"status"`
	CreatedBy    string       `json:"createdBy" db:"created_by"`
	CommentCount int          `json:"commentCount" db:"comment_count"`
	Comment      *string      `json:"comment,omitempty" db:"comment"`
	CreatedAt    time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time    `json:"updatedAt" db:"updated_at"`

	// Related entities
	Author *User `json:"author,omitempty"`
}

// ForumComment represents a reply on a thread based on the 'forum_comments'
// table.
type ForumComment struct {
	ID        string    `json:"id" db:"id"`
	ThreadID  string    `json:"threadId" db:"thread_id"`
	Content   string    `json:"content" db:"content"`
	CreatedBy string    `json:"createdBy" db:"created_by"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	// Related entities
	Author *User `json:"author,omitempty"`
}
