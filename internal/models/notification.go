package models

import "time"

// Notification types
const (
	NotificationTypeLike    = "like"
	NotificationTypeComment = "comment"
	NotificationTypeFollow  = "follow"
)

// Notification is a derived record fanned out from follow/like/comment events
// (PostgreSQL). The unique index collapses repeated identical events into one
// row; PostID is empty for follow notifications.
type Notification struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	RecipientID uint      `json:"recipient_id" gorm:"index;uniqueIndex:idx_notification_event"`
	SenderID    uint      `json:"sender_id" gorm:"uniqueIndex:idx_notification_event"`
	Type        string    `json:"notification_type" gorm:"size:10;uniqueIndex:idx_notification_event"`
	PostID      string    `json:"post_id,omitempty" gorm:"size:24;uniqueIndex:idx_notification_event"` // MongoDB ObjectID as string, "" for follow
	IsRead      bool      `json:"is_read" gorm:"default:false;index"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
}

// Message renders the human-readable notification text shown by clients
func (n *Notification) Message(senderUsername string) string {
	switch n.Type {
	case NotificationTypeLike:
		return senderUsername + " liked your post"
	case NotificationTypeComment:
		return senderUsername + " commented on your post"
	case NotificationTypeFollow:
		return senderUsername + " started following you"
	}
	return "New notification"
}
