package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment represents a comment or reply on a post, stored in MongoDB
type Comment struct {
	ID        primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	PostID    primitive.ObjectID  `json:"post_id" bson:"post_id"`
	AuthorID  uint                `json:"author_id" bson:"author_id"`
	Content   string              `json:"content" bson:"content"`
	Tags      []uint              `json:"tags,omitempty" bson:"tags,omitempty"` // user IDs mentioned in the comment
	ParentID  *primitive.ObjectID `json:"parent_id,omitempty" bson:"parent_id,omitempty"`
	CreatedAt time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time           `json:"updated_at" bson:"updated_at"`
}

// CreateCommentRequest defines the request body for creating a new comment.
// ParentID makes the comment a reply to an existing comment on the same post.
type CreateCommentRequest struct {
	Content  string `json:"content" validate:"required,min=1,max=500"`
	Tags     []uint `json:"tags,omitempty"`
	ParentID string `json:"parent_id,omitempty"`
}

// UpdateCommentTagsRequest defines the request body for editing a comment's tag list
type UpdateCommentTagsRequest struct {
	Tags []uint `json:"tags" validate:"required"`
}
