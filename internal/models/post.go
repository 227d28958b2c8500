package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post types accepted by the API.
const (
	PostTypePost     = "post"
	PostTypeBlogPost = "blogPost"
)

// Post represents a social media post stored in MongoDB
type Post struct {
	ID            primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	AuthorID      uint                `json:"author_id" bson:"author_id"`
	Type          string              `json:"type" bson:"type"` // post or blogPost
	Audience      string              `json:"audience" bson:"audience"`
	Content       string              `json:"content" bson:"content"`
	ImageURLs     []string            `json:"image_urls,omitempty" bson:"image_urls,omitempty"`
	Tags          []uint              `json:"tags,omitempty" bson:"tags,omitempty"` // user IDs tagged on the post
	SharedFromID  *primitive.ObjectID `json:"shared_from_id,omitempty" bson:"shared_from_id,omitempty"`
	CommentsCount int                 `json:"comments_count" bson:"comments_count"`
	CreatedAt     time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at" bson:"updated_at"`
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Content   string   `json:"content" validate:"required,min=1,max=2000"`
	Type      string   `json:"type" validate:"required,oneof=post blogPost"`
	Audience  string   `json:"audience" validate:"omitempty,oneof=public friends private"`
	ImageURLs []string `json:"image_urls,omitempty" validate:"omitempty,dive,url"`
	Tags      []uint   `json:"tags,omitempty"`
}

// UpdatePostTagsRequest defines the request body for updating a post's tag list
type UpdatePostTagsRequest struct {
	Tags []uint `json:"tags" validate:"required"`
}

// SharePostRequest defines the request body for sharing an existing post
type SharePostRequest struct {
	Content string `json:"content,omitempty" validate:"omitempty,max=2000"`
	Tags    []uint `json:"tags,omitempty"`
}
