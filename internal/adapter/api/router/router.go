package router

import (
	"github.com/labstack/echo/v4"

	"unisell/internal/adapter/api/middleware"
	"unisell/internal/infrastructure/metrics"
)

// Setup mounts every route. Handlers must be initialized through handler.Setup first.
func Setup(
	e *echo.Echo,
	authMiddleware *middleware.AuthMiddleware,
	rateLimit *middleware.RateLimitMiddleware,
	m *metrics.Metrics,
) {
	e.Use(authMiddleware.OptionalAuth)

	SetupHealthRouter(e, m)
	SetupAuthRouter(e, authMiddleware, rateLimit)
	SetupAdminRouter(e, authMiddleware)
	SetupUserRouter(e, authMiddleware)
	SetupItemRouter(e, authMiddleware, rateLimit)
	SetupUploadRouter(e, authMiddleware, rateLimit)
	SetupWebSocketRouter(e)
}
