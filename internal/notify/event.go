package notify

import "errors"

// ErrInvalidEventContext is returned when a social event is missing required
// actor ids. The calling handler validates entities before invoking the
// engine, so hitting this means a caller bug.
var ErrInvalidEventContext = errors.New("invalid event context: missing required actor id")

// PostContext carries the post-side inputs of a social event.
type PostContext struct {
	PostID       string
	PostType     string // "post" or "blogPost"
	AuthorID     uint
	Tags         []uint // users currently tagged on the post
	ExistingTags []uint // tags present before this operation, used to diff new tags
}

// CommentContext bundles everything the engine needs to fan out a comment
// mutation. ParentAuthorID is set only when the comment is a reply.
type CommentContext struct {
	Post           PostContext
	CommentID      string
	AuthorID       uint
	Tags           []uint // users mentioned in the comment
	ParentAuthorID *uint
}

// ShareContext describes a post being shared, possibly tagging users.
type ShareContext struct {
	PostID           string
	PostType         string
	OriginalAuthorID uint
	SharerID         uint
	Tags             []uint
}

// Operation is one computed fan-out emission: a message variant delivered to
// a set of recipients about a target entity. A recipient appears in at most
// one operation per event.
type Operation struct {
	Recipients []uint
	Template   TemplateKey
	TargetID   string
	TargetType string
}

func (c CommentContext) validate() error {
	if c.Post.AuthorID == 0 || c.AuthorID == 0 {
		return ErrInvalidEventContext
	}
	if c.ParentAuthorID != nil && *c.ParentAuthorID == 0 {
		return ErrInvalidEventContext
	}
	return nil
}

func (p PostContext) validate() error {
	if p.AuthorID == 0 {
		return ErrInvalidEventContext
	}
	return nil
}

func (s ShareContext) validate() error {
	if s.OriginalAuthorID == 0 || s.SharerID == 0 {
		return ErrInvalidEventContext
	}
	return nil
}
