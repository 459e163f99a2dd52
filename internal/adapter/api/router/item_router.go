package router

import (
	"github.com/labstack/echo/v4"

	"unisell/internal/adapter/api/handler"
	"unisell/internal/adapter/api/middleware"
	"unisell/internal/infrastructure/ratelimit"
)

func SetupItemRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, rateLimit *middleware.RateLimitMiddleware) {
	itemHandler := handler.GetItemHandler()
	bidHandler := handler.GetBidHandler()

	items := e.Group("/v1/items")
	items.Use(authMiddleware.Authenticate)

	items.GET("", itemHandler.ListItems)
	items.POST("", itemHandler.CreateItem, rateLimit.Limit(ratelimit.ActionCreateItem))
	items.GET("/:id", itemHandler.GetItem)
	items.PUT("/:id", itemHandler.UpdateItem)

	items.GET("/:id/comments", itemHandler.ListComments)
	items.POST("/:id/comments", itemHandler.AddComment, rateLimit.Limit(ratelimit.ActionComment))

	items.GET("/:id/photos", itemHandler.ListPhotos)
	items.POST("/:id/photos", itemHandler.AddPhoto)
	items.GET("/:id/photos/:photoId", itemHandler.GetPhoto)
	items.PUT("/:id/photos/:photoId", itemHandler.EditPhoto)

	items.GET("/:id/bids", bidHandler.ListBids)
	items.POST("/:id/bids", bidHandler.CreateBid, rateLimit.Limit(ratelimit.ActionBid))
	items.GET("/:id/bids/highest", bidHandler.HighestBid)
	items.GET("/:id/bids/:bidId", bidHandler.GetBid)
	items.POST("/:id/bids/:bidId/accept", bidHandler.AcceptBid)

	items.GET("/:id/rating-eligibility", bidHandler.RatingEligibility)
}
