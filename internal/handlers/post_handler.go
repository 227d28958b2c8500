package handlers

import (
	"net/http"

	"github.com/anonto42/wavely/backend/internal/models"
	"github.com/anonto42/wavely/backend/internal/notify"
	"github.com/anonto42/wavely/backend/internal/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	postRepository repositories.PostRepository
	fanOut         *notify.FanOut
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postRepo repositories.PostRepository, fanOut *notify.FanOut) *PostHandler {
	return &PostHandler{
		postRepository: postRepo,
		fanOut:         fanOut,
	}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.GET("/posts/:id", h.GetPost)
	g.GET("/users/:id/posts", h.GetPostsByUser)
	g.PUT("/posts/:id/tags", h.UpdatePostTags)
	g.POST("/posts/:id/share", h.SharePost)
	g.DELETE("/posts/:id", h.DeletePost)
}

// CreatePost creates a new post and notifies tagged users
func (h *PostHandler) CreatePost(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	audience := req.Audience
	if audience == "" {
		audience = "public"
	}

	post := &models.Post{
		AuthorID:  currentUserID,
		Type:      req.Type,
		Audience:  audience,
		Content:   req.Content,
		ImageURLs: req.ImageURLs,
		Tags:      req.Tags,
	}

	if err := h.postRepository.CreatePost(c.Request().Context(), post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// Fan-out failures never fail the create; only context bugs surface
	if err := h.fanOut.OnPostCreated(c.Request().Context(), notify.PostContext{
		PostID:   post.ID.Hex(),
		PostType: post.Type,
		AuthorID: post.AuthorID,
		Tags:     post.Tags,
	}); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusCreated, post)
}

// GetPost retrieves a single post
func (h *PostHandler) GetPost(c echo.Context) error {
	post, err := h.postRepository.GetPostByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}
	return c.JSON(http.StatusOK, post)
}

// GetPostsByUser retrieves posts authored by a specific user
func (h *PostHandler) GetPostsByUser(c echo.Context) error {
	authorID, err := parseUintParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	page, limit := parsePagination(c, 20)
	posts, err := h.postRepository.GetPostsByAuthorID(c.Request().Context(), authorID, int64((page-1)*limit), int64(limit))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"posts": posts}})
}

// UpdatePostTags replaces a post's tag list and notifies newly tagged users
func (h *PostHandler) UpdatePostTags(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	postID := c.Param("id")

	var req models.UpdatePostTagsRequest
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
	if post.AuthorID != currentUserID {
		return echo.NewHTTPError(http.StatusForbidden, "You are not authorized to update this post")
	}

	if err := h.postRepository.UpdateTags(c.Request().Context(), postID, req.Tags); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// Only tags absent from the previous list produce notifications
	if err := h.fanOut.OnPostCreated(c.Request().Context(), notify.PostContext{
		PostID:       postID,
		PostType:     post.Type,
		AuthorID:     post.AuthorID,
		Tags:         req.Tags,
		ExistingTags: post.Tags,
	}); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post.Tags = req.Tags
	return c.JSON(http.StatusOK, post)
}

// SharePost creates a share of an existing post and notifies the original
// author and any tagged users
func (h *PostHandler) SharePost(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	postID := c.Param("id")

	var req models.SharePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	original, err := h.postRepository.GetPostByID(c.Request().Context(), postID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}

	share := &models.Post{
		AuthorID:     currentUserID,
		Type:         original.Type,
		Audience:     original.Audience,
		Content:      req.Content,
		Tags:         req.Tags,
		SharedFromID: &original.ID,
	}

	if err := h.postRepository.CreatePost(c.Request().Context(), share); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.fanOut.OnPostShared(c.Request().Context(), notify.ShareContext{
		PostID:           share.ID.Hex(),
		PostType:         share.Type,
		OriginalAuthorID: original.AuthorID,
		SharerID:         currentUserID,
		Tags:             req.Tags,
	}); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusCreated, share)
}

// DeletePost deletes a post owned by the current user
func (h *PostHandler) DeletePost(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	postID := c.Param("id")

	post, err := h.postRepository.GetPostByID(c.Request().Context(), postID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}
	if post.AuthorID != currentUserID {
		return echo.NewHTTPError(http.StatusForbidden, "You are not authorized to delete this post")
	}

	if err := h.postRepository.DeletePost(c.Request().Context(), postID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
