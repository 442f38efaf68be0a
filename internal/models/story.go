package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Story is an ephemeral item stored in MongoDB. Expiry is a read-time
// visibility predicate: expired documents stay in the collection and are
// filtered out by every query.
type Story struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID    uint               `json:"user_id" bson:"user_id"`
	ImageURL  string             `json:"image_url" bson:"image_url"`
	Text      string             `json:"text,omitempty" bson:"text,omitempty"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	ExpiresAt time.Time          `json:"expires_at" bson:"expires_at"`
}

// CreateStoryRequest defines the request body for creating a story
type CreateStoryRequest struct {
	ImageURL string `json:"image_url" validate:"required,url"`
	Text     string `json:"text,omitempty" validate:"omitempty,max=200"`
}
