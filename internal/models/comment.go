package models

import "time"

// Comment is an append-only remark on a post, listed oldest-first
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    string    `json:"post_id" gorm:"index;size:24"` // MongoDB ObjectID as string
	UserID    uint      `json:"user_id" gorm:"index"`
	Text      string    `json:"text" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateCommentRequest defines the request body for commenting on a post
type CreateCommentRequest struct {
	Text string `json:"text" validate:"required,min=1,max=2000"`
}
