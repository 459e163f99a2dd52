package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	"unisell/internal/domain/entity"
	"unisell/pkg/errors"
	"unisell/pkg/response"
)

const (
	ContextUserID = "uid"
	ContextUser   = "user"
	ContextToken  = "token"
)

// SessionResolver turns a bearer token into the session's user.
type SessionResolver interface {
	ResolveSession(ctx context.Context, token string) (*entity.User, error)
}

type AuthMiddleware struct {
	sessions SessionResolver
}

func NewAuthMiddleware(sessions SessionResolver) *AuthMiddleware {
	return &AuthMiddleware{sessions: sessions}
}

// Authenticate requires a session. A user already attached by OptionalAuth is
// reused; otherwise the token is resolved here so the precise failure is reported.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if CurrentUser(c) != nil {
			return next(c)
		}

		token, err := BearerToken(c)
		if err != nil {
			return response.Error(c, err)
		}

		user, err := m.sessions.ResolveSession(c.Request().Context(), token)
		if err != nil {
			return response.Error(c, err)
		}

		setSession(c, token, user)
		return next(c)
	}
}

// OptionalAuth attaches the session user when a valid token is present and
// otherwise lets the request through anonymously. It runs once per request
// ahead of every route.
func (m *AuthMiddleware) OptionalAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, err := BearerToken(c)
		if err != nil {
			return next(c)
		}
		if user, err := m.sessions.ResolveSession(c.Request().Context(), token); err == nil {
			setSession(c, token, user)
		}
		return next(c)
	}
}

// BearerToken extracts the token from "Authorization: Bearer <token>".
func BearerToken(c echo.Context) (string, error) {
	header := c.Request().Header.Get("Authorization")
	if header == "" {
		return "", errors.Unauthorized("Authorization header is required", nil)
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", errors.Unauthorized("Invalid authorization format", nil)
	}
	return strings.TrimSpace(parts[1]), nil
}

// CurrentUser returns the authenticated user, or nil on anonymous requests.
func CurrentUser(c echo.Context) *entity.User {
	user, _ := c.Get(ContextUser).(*entity.User)
	return user
}

func setSession(c echo.Context, token string, user *entity.User) {
	c.Set(ContextUserID, user.ID)
	c.Set(ContextUser, user)
	c.Set(ContextToken, token)
}
