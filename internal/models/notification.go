package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification represents a user-facing alert stored in MongoDB
type Notification struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	RecipientID uint               `json:"recipient_id" bson:"recipient_id"`
	SenderID    uint               `json:"sender_id" bson:"sender_id"`
	Message     string             `json:"message" bson:"message"`         // resolved template key
	Text        string             `json:"text" bson:"text"`               // human-readable body
	TargetID    string             `json:"target_id" bson:"target_id"`     // post ID, comment ID or user ID
	TargetType  string             `json:"target_type" bson:"target_type"` // post, blogPost, user
	IsRead      bool               `json:"is_read" bson:"is_read"`
	IsSeen      bool               `json:"is_seen" bson:"is_seen"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
}
