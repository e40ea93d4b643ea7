package dto

import "time"

// CreateThreadRequest is the payload for opening a forum thread
type CreateThreadRequest struct {
	Title string   `json:"title" binding:"required,max=200" example:"Community composting"`
	Body  string   `json:"body" binding:"required"`
	Tags  []string `json:"tags,omitempty" example:"composting,waste"`
}

// RejectThreadRequest carries the mandatory moderation reason
type RejectThreadRequest struct {
	Comment string `json:"comment" binding:"required" example:"Needs more detail"`
}

// ThreadResponse is the API view of a forum thread
type ThreadResponse struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Body         string        `json:"body"`
	Tags         []string      `json:"tags"`
	Status       string        `json:"status" example:"Approved"`
	CreatedBy    string        `json:"createdBy"`
	CommentCount int           `json:"commentCount"`
	Comment      *string       `json:"comment,omitempty"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
	Author       *UserResponse `json:"author,omitempty"`
}

// ThreadFilterRequest carries list filters and paging
type ThreadFilterRequest struct {
	Status   *string `form:"status" example:"Pending"`
	Tag      *string `form:"tag" example:"composting"`
	Page     int     `form:"page,default=1"`
	PageSize int     `form:"size,default=10"`
}

// ThreadListResponse is a paginated list of threads
type ThreadListResponse struct {
	Threads        []ThreadResponse `json:"threads"`
	PaginationInfo PaginationInfo   `json:"pagination"`
}

// CreateCommentRequest is the payload for replying on a thread
type CreateCommentRequest struct {
	Content string `json:"content" binding:"required" example:"Count me in."`
}

// CommentResponse is the API view of a forum comment
type CommentResponse struct {
	ID        string        `json:"id"`
	ThreadID  string        `json:"threadId"`
	Content   string        `json:"content"`
	CreatedBy string        `json:"createdBy"`
	CreatedAt time.Time     `json:"createdAt"`
	Author    *UserResponse `json:"author,omitempty"`
}
