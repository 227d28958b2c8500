package handlers

import (
	"net/http"

	"github.com/anonto42/wavely/backend/internal/models"
	"github.com/anonto42/wavely/backend/internal/notify"
	"github.com/anonto42/wavely/backend/internal/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// FriendshipHandler handles HTTP requests related to friendships
type FriendshipHandler struct {
	friendshipRepository repositories.FriendshipRepository
	userRepository       repositories.UserRepository
	fanOut               *notify.FanOut
}

// NewFriendshipHandler creates a new FriendshipHandler
func NewFriendshipHandler(friendshipRepo repositories.FriendshipRepository, userRepo repositories.UserRepository, fanOut *notify.FanOut) *FriendshipHandler {
	return &FriendshipHandler{
		friendshipRepository: friendshipRepo,
		userRepository:       userRepo,
		fanOut:               fanOut,
	}
}

// RegisterFriendshipRoutes registers friendship-related routes
func (h *FriendshipHandler) RegisterFriendshipRoutes(g *echo.Group) {
	g.POST("/friends/request", h.SendFriendRequest)
	g.GET("/friends/requests/pending", h.GetPendingFriendRequests)
	g.PUT("/friends/request/:id/status", h.UpdateFriendRequestStatus)
	g.GET("/friends", h.GetFriends)
	g.DELETE("/friends/:id", h.DeleteFriend) // Unfriend
}

// SendFriendRequest handles sending a friend request
func (h *FriendshipHandler) SendFriendRequest(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreateFriendRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	// Check if receiver exists
	if _, err := h.userRepository.GetUserByID(req.ReceiverID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Receiver user not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if currentUserID == req.ReceiverID {
		return echo.NewHTTPError(http.StatusBadRequest, "Cannot send a friend request to yourself")
	}

	friendRequest := &models.FriendRequest{
		SenderID:   currentUserID,
		ReceiverID: req.ReceiverID,
		Status:     "pending",
	}

	if err := h.friendshipRepository.SendFriendRequest(friendRequest); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.fanOut.OnFriendRequest(c.Request().Context(), notify.EventFriendRequestSent, currentUserID, req.ReceiverID); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusCreated, friendRequest)
}

// GetPendingFriendRequests retrieves pending friend requests for the authenticated user
func (h *FriendshipHandler) GetPendingFriendRequests(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	requests, err := h.friendshipRepository.GetUserPendingFriendRequests(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, requests)
}

// UpdateFriendRequestStatus updates the status of a friend request (accept/reject)
func (h *FriendshipHandler) UpdateFriendRequestStatus(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	requestID, err := parseUintParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request ID")
	}

	var req models.UpdateFriendRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	friendRequest, err := h.friendshipRepository.GetFriendRequestByID(requestID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Friend request not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// Ensure the authenticated user is the receiver of the request
	if friendRequest.ReceiverID != currentUserID {
		return echo.NewHTTPError(http.StatusForbidden, "You are not authorized to modify this friend request")
	}

	if err := h.friendshipRepository.UpdateFriendRequestStatus(requestID, req.Status); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// Only an acceptance notifies the original sender
	if req.Status == "accepted" {
		if err := h.fanOut.OnFriendRequest(c.Request().Context(), notify.EventFriendRequestConfirmed, currentUserID, friendRequest.SenderID); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
	}

	friendRequest.Status = req.Status
	return c.JSON(http.StatusOK, friendRequest)
}

// GetFriends retrieves the list of friends for the authenticated user
func (h *FriendshipHandler) GetFriends(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	friends, err := h.friendshipRepository.GetUserFriends(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, friends)
}

// DeleteFriend handles unfriending (deleting an accepted friend request)
func (h *FriendshipHandler) DeleteFriend(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	friendUserID, err := parseUintParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid friend user ID")
	}

	// Find the accepted friend request between current user and friendUserID
	var friendRequest *models.FriendRequest
	friendRequest, err = h.friendshipRepository.GetFriendRequestBySenderReceiver(currentUserID, friendUserID)
	if err != nil {
		friendRequest, err = h.friendshipRepository.GetFriendRequestBySenderReceiver(friendUserID, currentUserID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return echo.NewHTTPError(http.StatusNotFound, "Friendship not found")
			}
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	if friendRequest.Status != "accepted" {
		return echo.NewHTTPError(http.StatusBadRequest, "Users are not friends")
	}

	if err := h.friendshipRepository.DeleteFriendRequest(friendRequest.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}
