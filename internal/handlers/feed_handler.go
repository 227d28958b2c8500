package handlers

import (
	"math"
	"net/http"

	"github.com/anonto42/wavely/backend/internal/models"
	"github.com/anonto42/wavely/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// FeedHandler handles feed-related HTTP requests
type FeedHandler struct {
	postRepository       repositories.PostRepository
	userRepository       repositories.UserRepository
	friendshipRepository repositories.FriendshipRepository
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(postRepo repositories.PostRepository, userRepo repositories.UserRepository, friendshipRepo repositories.FriendshipRepository) *FeedHandler {
	return &FeedHandler{
		postRepository:       postRepo,
		userRepository:       userRepo,
		friendshipRepository: friendshipRepo,
	}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.GetFeed)
}

// EnrichedPost is a post with author info attached
type EnrichedPost struct {
	models.Post
	Author models.UserCompact `json:"author"`
}

// GetFeed returns posts authored by the current user and their friends
func (h *FeedHandler) GetFeed(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	page, limit := parsePagination(c, 10)
	skip := int64((page - 1) * limit)

	friends, err := h.friendshipRepository.GetUserFriends(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	authorIDs := make([]uint, 0, len(friends)+1)
	authorIDs = append(authorIDs, currentUserID)
	for _, friend := range friends {
		authorIDs = append(authorIDs, friend.ID)
	}

	posts, total, err := h.postRepository.GetPostsByAuthorIDs(c.Request().Context(), authorIDs, skip, int64(limit))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// Build author map for the page of posts
	userCache := make(map[uint]models.UserCompact)
	enrichedPosts := make([]EnrichedPost, len(posts))
	for i, p := range posts {
		enrichedPosts[i] = EnrichedPost{Post: p}
		if author, ok := userCache[p.AuthorID]; ok {
			enrichedPosts[i].Author = author
		} else if user, err := h.userRepository.GetUserByID(p.AuthorID); err == nil {
			compact := user.ToCompact()
			userCache[p.AuthorID] = compact
			enrichedPosts[i].Author = compact
		}
	}

	totalPages := int(math.Ceil(float64(total) / float64(limit)))

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"posts": enrichedPosts,
		},
		"meta": echo.Map{
			"currentPage":     page,
			"totalPages":      totalPages,
			"totalItems":      total,
			"itemsPerPage":    limit,
			"hasNextPage":     page < totalPages,
			"hasPreviousPage": page > 1,
		},
	})
}
