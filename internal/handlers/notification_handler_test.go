package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anonto42/wavely/backend/internal/models"
	"github.com/anonto42/wavely/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubNotificationRepo struct {
	notifications []models.Notification
	markedRead    []string
	markedSeen    []string
	markAsReadErr error
	markSeenErr   error
}

func (s *stubNotificationRepo) CreateNotification(_ context.Context, n *models.Notification) error {
	s.notifications = append(s.notifications, *n)
	return nil
}

func (s *stubNotificationRepo) GetByRecipientID(_ context.Context, recipientID uint, _, _ int64) ([]models.Notification, int64, error) {
	var out []models.Notification
	for _, n := range s.notifications {
		if n.RecipientID == recipientID {
			out = append(out, n)
		}
	}
	return out, int64(len(out)), nil
}

func (s *stubNotificationRepo) GetUnseenCount(_ context.Context, recipientID uint) (int64, error) {
	var count int64
	for _, n := range s.notifications {
		if n.RecipientID == recipientID && !n.IsSeen {
			count++
		}
	}
	return count, nil
}

func (s *stubNotificationRepo) MarkAsRead(_ context.Context, _ uint, id string) error {
	if s.markAsReadErr != nil {
		return s.markAsReadErr
	}
	s.markedRead = append(s.markedRead, id)
	return nil
}

func (s *stubNotificationRepo) MarkSeen(_ context.Context, _ uint, id string) error {
	if s.markSeenErr != nil {
		return s.markSeenErr
	}
	s.markedSeen = append(s.markedSeen, id)
	return nil
}

func (s *stubNotificationRepo) MarkAllSeen(context.Context, uint) error { return nil }

func (s *stubNotificationRepo) Delete(context.Context, uint, string) error { return nil }

func (s *stubNotificationRepo) DeleteAllForRecipient(context.Context, uint) (int64, error) {
	return int64(len(s.notifications)), nil
}

type stubUserRepo struct {
	users map[uint]*models.User
}

func (s *stubUserRepo) CreateUser(*models.User) error { return nil }

func (s *stubUserRepo) GetUserByID(id uint) (*models.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, echo.ErrNotFound
}

func (s *stubUserRepo) GetUserByEmail(string) (*models.User, error)       { return nil, echo.ErrNotFound }
func (s *stubUserRepo) GetUserByFirebaseUID(string) (*models.User, error) { return nil, echo.ErrNotFound }
func (s *stubUserRepo) GetUsers() ([]models.User, error)                  { return nil, nil }
func (s *stubUserRepo) UpdateUser(*models.User) error                     { return nil }
func (s *stubUserRepo) DeleteUser(uint) error                             { return nil }
func (s *stubUserRepo) SearchUsers(string) ([]models.User, error)         { return nil, nil }

func newAuthenticatedContext(t *testing.T, method, path string, userID uint) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user", &models.JwtCustomClaims{UserID: userID})
	return c, rec
}

func TestMarkAsReadNotFound(t *testing.T) {
	repo := &stubNotificationRepo{markAsReadErr: repositories.ErrNotificationNotFound}
	h := NewNotificationHandler(repo, &stubUserRepo{})

	c, _ := newAuthenticatedContext(t, http.MethodPut, "/", 1)
	c.SetParamNames("id")
	c.SetParamValues("64f000000000000000000000")

	err := h.MarkAsRead(c)
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, httpErr.Code)
	assert.Empty(t, repo.markedRead)
}

func TestMarkAsReadSuccess(t *testing.T) {
	repo := &stubNotificationRepo{}
	h := NewNotificationHandler(repo, &stubUserRepo{})

	c, rec := newAuthenticatedContext(t, http.MethodPut, "/", 1)
	c.SetParamNames("id")
	c.SetParamValues("64f000000000000000000000")

	require.NoError(t, h.MarkAsRead(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"64f000000000000000000000"}, repo.markedRead)
}

func TestMarkAsReadUnauthenticated(t *testing.T) {
	h := NewNotificationHandler(&stubNotificationRepo{}, &stubUserRepo{})

	e := echo.New()
	req := httptest.NewRequest(http.MethodPut, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	err := h.MarkAsRead(c)
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func TestMarkSeenSuccess(t *testing.T) {
	repo := &stubNotificationRepo{}
	h := NewNotificationHandler(repo, &stubUserRepo{})

	c, rec := newAuthenticatedContext(t, http.MethodPut, "/", 1)
	c.SetParamNames("id")
	c.SetParamValues("64f000000000000000000000")

	require.NoError(t, h.MarkSeen(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"64f000000000000000000000"}, repo.markedSeen)
}

func TestMarkSeenNotFound(t *testing.T) {
	repo := &stubNotificationRepo{markSeenErr: repositories.ErrNotificationNotFound}
	h := NewNotificationHandler(repo, &stubUserRepo{})

	c, _ := newAuthenticatedContext(t, http.MethodPut, "/", 1)
	c.SetParamNames("id")
	c.SetParamValues("64f000000000000000000000")

	err := h.MarkSeen(c)
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, httpErr.Code)
	assert.Empty(t, repo.markedSeen)
}

func TestGetUnseenCount(t *testing.T) {
	repo := &stubNotificationRepo{notifications: []models.Notification{
		{RecipientID: 1, IsSeen: false},
		{RecipientID: 1, IsSeen: true},
		{RecipientID: 2, IsSeen: false},
	}}
	h := NewNotificationHandler(repo, &stubUserRepo{})

	c, rec := newAuthenticatedContext(t, http.MethodGet, "/", 1)
	require.NoError(t, h.GetUnseenCount(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"count":1`)
}

func TestGetNotificationsEnrichesSender(t *testing.T) {
	repo := &stubNotificationRepo{notifications: []models.Notification{
		{RecipientID: 1, SenderID: 2, Message: "tagged_in_post", Text: "tagged you in a post"},
	}}
	users := &stubUserRepo{users: map[uint]*models.User{
		2: {ID: 2, Name: "Maya R"},
	}}
	h := NewNotificationHandler(repo, users)

	c, rec := newAuthenticatedContext(t, http.MethodGet, "/?page=1&limit=10", 1)
	require.NoError(t, h.GetNotifications(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"Maya R"`)
	assert.Contains(t, rec.Body.String(), "tagged you in a post")
}
