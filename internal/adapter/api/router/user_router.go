package router

import (
	"github.com/labstack/echo/v4"

	"unisell/internal/adapter/api/handler"
	"unisell/internal/adapter/api/middleware"
)

func SetupUserRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	userHandler := handler.GetUserHandler()
	ratingHandler := handler.GetRatingHandler()

	profile := e.Group("/v1/profile")
	profile.Use(authMiddleware.Authenticate)
	profile.GET("", userHandler.GetProfile)
	profile.PUT("", userHandler.UpdateProfile)
	profile.PUT("/password", userHandler.UpdatePassword)
	profile.GET("/accepted-bids", userHandler.ListAcceptedBids)

	users := e.Group("/v1/users")
	users.Use(authMiddleware.Authenticate)
	users.GET("/:id/rating", ratingHandler.GetAverageRating)
	users.POST("/:id/ratings", ratingHandler.CreateRating)
}
