package models

import "time"

// Like is a membership edge between a user and a post. The unique index makes
// "create if absent" a single conditional insert under concurrent toggles.
type Like struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_user_post_like"`
	PostID    string    `json:"post_id" gorm:"index;uniqueIndex:idx_user_post_like;size:24"` // MongoDB ObjectID as string
	CreatedAt time.Time `json:"created_at"`
}
