package handler

import (
	"github.com/labstack/echo/v4"

	"unisell/internal/usecase"
	"unisell/pkg/errors"
	"unisell/pkg/response"
)

type RatingHandler struct {
	ratingUseCase *usecase.RatingUseCase
	bidUseCase    *usecase.BidUseCase
}

func NewRatingHandler(ratingUseCase *usecase.RatingUseCase, bidUseCase *usecase.BidUseCase) *RatingHandler {
	return &RatingHandler{
		ratingUseCase: ratingUseCase,
		bidUseCase:    bidUseCase,
	}
}

type createRatingRequest struct {
	ItemID string `json:"itemId" validate:"required"`
	Rating int    `json:"rating" validate:"required"`
}

func (h *RatingHandler) GetAverageRating(c echo.Context) error {
	average, err := h.ratingUseCase.AverageRating(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]float64{"averageRating": average})
}

// CreateRating lets either side of an accepted bid rate the other. The rater
// is the session user, the ratee is :id and the sale is named by itemId.
func (h *RatingHandler) CreateRating(c echo.Context) error {
	rater, err := sessionUser(c)
	if err != nil {
		return response.Error(c, err)
	}

	var req createRatingRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}
	rateeID := c.Param("id")
	if rateeID == rater.ID {
		return response.Error(c, errors.Forbidden("You cannot rate yourself", nil))
	}

	ctx := c.Request().Context()
	// Buyer rating the owner: the rater holds the accepted bid.
	eligibility, err := h.bidUseCase.HasAcceptedBidFor(ctx, req.ItemID, rater.ID)
	if err != nil {
		return response.Error(c, err)
	}
	allowed := eligibility.Eligible && eligibility.Record.UserGettingRatedID == rateeID
	if !allowed {
		// Owner rating the buyer: the ratee holds the accepted bid on the rater's item.
		eligibility, err = h.bidUseCase.HasAcceptedBidFor(ctx, req.ItemID, rateeID)
		if err != nil {
			return response.Error(c, err)
		}
		allowed = eligibility.Eligible && eligibility.Record.UserGettingRatedID == rater.ID
	}
	if !allowed {
		return response.Error(c, errors.Forbidden("You can only rate the other side of an accepted bid", nil))
	}

	rating, err := h.ratingUseCase.CreateRating(ctx, rater.ID, rateeID, req.Rating)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, rating)
}
