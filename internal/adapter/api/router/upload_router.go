package router

import (
	"github.com/labstack/echo/v4"

	"unisell/internal/adapter/api/handler"
	"unisell/internal/adapter/api/middleware"
	"unisell/internal/infrastructure/ratelimit"
)

func SetupUploadRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, rateLimit *middleware.RateLimitMiddleware) {
	fileHandler := handler.GetFileHandler()
	e.POST("/v1/uploads", fileHandler.UploadFile, authMiddleware.Authenticate, rateLimit.Limit(ratelimit.ActionUpload))
}
