package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/anonto42/wavely/backend/internal/models"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, secret string, userID uint) string {
	t.Helper()
	claims := &models.JwtCustomClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestJWTAuthMiddlewareAcceptsConfiguredSecret(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "test-secret", 7))
	c := e.NewContext(req, httptest.NewRecorder())

	var gotUserID uint
	next := func(c echo.Context) error {
		claims, ok := c.Get("user").(*models.JwtCustomClaims)
		require.True(t, ok)
		gotUserID = claims.UserID
		return c.NoContent(http.StatusOK)
	}

	require.NoError(t, JWTAuthMiddleware("test-secret")(next)(c))
	assert.Equal(t, uint(7), gotUserID)
}

func TestJWTAuthMiddlewareRejectsOtherSecret(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "other-secret", 7))
	c := e.NewContext(req, httptest.NewRecorder())

	err := JWTAuthMiddleware("test-secret")(func(echo.Context) error { return nil })(c)
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func TestJWTAuthMiddlewareQueryTokenFallback(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/?token="+signToken(t, "test-secret", 3), nil)
	c := e.NewContext(req, httptest.NewRecorder())

	called := false
	next := func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	}

	require.NoError(t, JWTAuthMiddleware("test-secret")(next)(c))
	assert.True(t, called)
}

func TestJWTAuthMiddlewareMissingToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	err := JWTAuthMiddleware("test-secret")(func(echo.Context) error { return nil })(c)
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}
