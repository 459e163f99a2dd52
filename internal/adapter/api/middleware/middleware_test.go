package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"unisell/internal/domain/entity"
	"unisell/internal/infrastructure/ratelimit"
	"unisell/pkg/errors"
)

type fakeSessions map[string]*entity.User

func (f fakeSessions) ResolveSession(_ context.Context, token string) (*entity.User, error) {
	if user, ok := f[token]; ok {
		return user, nil
	}
	return nil, errors.Unauthorized("Invalid or expired token", nil)
}

func serve(e *echo.Echo, path, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authorization != "" {
		req.Header.Set(echo.HeaderAuthorization, authorization)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func whoAmI(c echo.Context) error {
	if user := CurrentUser(c); user != nil {
		return c.String(http.StatusOK, user.Username)
	}
	return c.String(http.StatusOK, "anonymous")
}

func newTestServer() *echo.Echo {
	sessions := fakeSessions{
		"alice-token": {ID: "a1", Username: "alice"},
		"root-token":  {ID: "r1", Username: "root", IsSuperAdmin: true},
	}
	auth := NewAuthMiddleware(sessions)

	e := echo.New()
	e.GET("/private", whoAmI, auth.Authenticate)
	e.GET("/optional", whoAmI, auth.OptionalAuth)
	e.GET("/admin", whoAmI, auth.Authenticate, AdminOnly)
	return e
}

func TestAuthenticate(t *testing.T) {
	e := newTestServer()

	tests := []struct {
		name   string
		header string
		status int
	}{
		{name: "missing header", status: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic alice-token", status: http.StatusUnauthorized},
		{name: "unknown token", header: "Bearer nope", status: http.StatusUnauthorized},
		{name: "valid token", header: "Bearer alice-token", status: http.StatusOK},
		{name: "lowercase scheme", header: "bearer alice-token", status: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(e, "/private", tt.header)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestOptionalAuthFallsBackToAnonymous(t *testing.T) {
	e := newTestServer()

	assert.Equal(t, "alice", serve(e, "/optional", "Bearer alice-token").Body.String())
	assert.Equal(t, "anonymous", serve(e, "/optional", "Bearer nope").Body.String())
	assert.Equal(t, "anonymous", serve(e, "/optional", "").Body.String())
}

func TestAdminOnly(t *testing.T) {
	e := newTestServer()

	assert.Equal(t, http.StatusForbidden, serve(e, "/admin", "Bearer alice-token").Code)
	assert.Equal(t, http.StatusOK, serve(e, "/admin", "Bearer root-token").Code)
}

func TestRateLimitKeysByUser(t *testing.T) {
	limiter := ratelimit.NewRateLimiter(map[string]ratelimit.Policy{
		ratelimit.ActionBid: {Burst: 1, Every: time.Hour},
	})
	auth := NewAuthMiddleware(fakeSessions{
		"alice-token": {ID: "a1", Username: "alice"},
		"bob-token":   {ID: "b1", Username: "bob"},
	})
	e := echo.New()
	e.GET("/bid", whoAmI, auth.Authenticate, NewRateLimitMiddleware(limiter).Limit(ratelimit.ActionBid))

	assert.Equal(t, http.StatusOK, serve(e, "/bid", "Bearer alice-token").Code)

	rec := serve(e, "/bid", "Bearer alice-token")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusOK, serve(e, "/bid", "Bearer bob-token").Code)
}
