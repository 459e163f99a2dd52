package router

import (
	"github.com/labstack/echo/v4"

	"unisell/internal/adapter/api/handler"
	"unisell/internal/adapter/api/middleware"
	"unisell/internal/infrastructure/ratelimit"
)

func SetupAuthRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, rateLimit *middleware.RateLimitMiddleware) {
	authHandler := handler.GetAuthHandler()

	auth := e.Group("/v1/auth")
	auth.POST("/signup", authHandler.Signup, rateLimit.Limit(ratelimit.ActionSignup))
	auth.POST("/login", authHandler.Login, rateLimit.Limit(ratelimit.ActionLogin))
	auth.POST("/logout", authHandler.Logout, authMiddleware.Authenticate)

	e.GET("/v1/universities", authHandler.ListUniversities)
}
