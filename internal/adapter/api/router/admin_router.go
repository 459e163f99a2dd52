package router

import (
	"github.com/labstack/echo/v4"

	"unisell/internal/adapter/api/handler"
	"unisell/internal/adapter/api/middleware"
)

func SetupAdminRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	adminHandler := handler.GetAdminHandler()

	admin := e.Group("/v1/admin")
	admin.Use(authMiddleware.Authenticate)
	admin.Use(middleware.AdminOnly)

	admin.GET("/universities", adminHandler.ListUniversities)
	admin.POST("/universities", adminHandler.CreateUniversity)
	admin.GET("/universities/:id", adminHandler.GetUniversity)
	admin.PUT("/universities/:id", adminHandler.UpdateUniversity)
	admin.POST("/users/:username/super-admin", adminHandler.PromoteSuperAdmin)
}
