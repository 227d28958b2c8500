package handlers

import (
	"context"
	"net/http"

	"github.com/anonto42/wavely/backend/internal/models"
	"github.com/anonto42/wavely/backend/internal/notify"
	"github.com/anonto42/wavely/backend/internal/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	commentRepository repositories.CommentRepository
	postRepository    repositories.PostRepository
	fanOut            *notify.FanOut
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentRepo repositories.CommentRepository, postRepo repositories.PostRepository, fanOut *notify.FanOut) *CommentHandler {
	return &CommentHandler{
		commentRepository: commentRepo,
		postRepository:    postRepo,
		fanOut:            fanOut,
	}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/posts/:post_id/comments", h.CreateComment)
	g.GET("/posts/:post_id/comments", h.GetCommentsByPostID)
	g.PUT("/comments/:id/tags", h.UpdateCommentTags)
	g.DELETE("/comments/:id", h.DeleteComment)
}

// CreateComment creates a top-level comment or a reply and fans out the
// resulting notifications
func (h *CommentHandler) CreateComment(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	postID := c.Param("post_id")

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post, err := h.postRepository.GetPostByID(c.Request().Context(), postID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}

	comment := &models.Comment{
		PostID:   post.ID,
		AuthorID: currentUserID,
		Content:  req.Content,
		Tags:     req.Tags,
	}

	// A reply must point at a comment on the same post; its author drives
	// the reply-specific notification variants
	var parentAuthorID *uint
	if req.ParentID != "" {
		parent, err := h.commentRepository.GetCommentByID(c.Request().Context(), req.ParentID)
		if err != nil {
			return echo.NewHTTPError(http.StatusNotFound, "Parent comment not found")
		}
		if parent.PostID != post.ID {
			return echo.NewHTTPError(http.StatusBadRequest, "Parent comment belongs to a different post")
		}
		comment.ParentID = &parent.ID
		parentAuthorID = &parent.AuthorID
	}

	if err := h.commentRepository.CreateComment(c.Request().Context(), comment); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	go h.postRepository.IncrementCommentsCount(context.Background(), postID)

	if err := h.fanOut.OnCommentAdded(c.Request().Context(), notify.CommentContext{
		Post: notify.PostContext{
			PostID:   postID,
			PostType: post.Type,
			AuthorID: post.AuthorID,
			Tags:     post.Tags,
		},
		CommentID:      comment.ID.Hex(),
		AuthorID:       currentUserID,
		Tags:           req.Tags,
		ParentAuthorID: parentAuthorID,
	}); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusCreated, comment)
}

// GetCommentsByPostID retrieves all comments for a specific post
func (h *CommentHandler) GetCommentsByPostID(c echo.Context) error {
	postID := c.Param("post_id")

	if _, err := h.postRepository.GetPostByID(c.Request().Context(), postID); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}

	comments, err := h.commentRepository.GetCommentsByPostID(c.Request().Context(), postID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, comments)
}

// UpdateCommentTags replaces a comment's tag list and notifies only the
// newly added tags
func (h *CommentHandler) UpdateCommentTags(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	commentID := c.Param("id")

	var req models.UpdateCommentTagsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comment, err := h.commentRepository.GetCommentByID(c.Request().Context(), commentID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
	}
	if comment.AuthorID != currentUserID {
		return echo.NewHTTPError(http.StatusForbidden, "You are not authorized to update this comment")
	}

	post, err := h.postRepository.GetPostByID(c.Request().Context(), comment.PostID.Hex())
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}

	newTags := diffTags(req.Tags, comment.Tags)

	if err := h.commentRepository.UpdateTags(c.Request().Context(), commentID, req.Tags); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.fanOut.OnCommentTagsUpdated(c.Request().Context(), notify.CommentContext{
		Post: notify.PostContext{
			PostID:   post.ID.Hex(),
			PostType: post.Type,
			AuthorID: post.AuthorID,
			Tags:     post.Tags,
		},
		CommentID: commentID,
		AuthorID:  currentUserID,
		Tags:      req.Tags,
	}, newTags); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comment.Tags = req.Tags
	return c.JSON(http.StatusOK, comment)
}

// DeleteComment deletes a comment owned by the current user
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	commentID := c.Param("id")

	comment, err := h.commentRepository.GetCommentByID(c.Request().Context(), commentID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
	}
	if comment.AuthorID != currentUserID {
		return echo.NewHTTPError(http.StatusForbidden, "You are not authorized to delete this comment")
	}

	if err := h.commentRepository.DeleteComment(c.Request().Context(), commentID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	go h.postRepository.DecrementCommentsCount(context.Background(), comment.PostID.Hex())

	return c.NoContent(http.StatusNoContent)
}

// diffTags returns the ids present in next but not in prev
func diffTags(next, prev []uint) []uint {
	seen := make(map[uint]struct{}, len(prev))
	for _, id := range prev {
		seen[id] = struct{}{}
	}
	var added []uint
	for _, id := range next {
		if _, ok := seen[id]; !ok {
			added = append(added, id)
		}
	}
	return added
}
