package handler

import (
	"github.com/labstack/echo/v4"

	"unisell/internal/domain/entity"
	"unisell/internal/usecase"
	"unisell/pkg/errors"
	"unisell/pkg/logger"
	"unisell/pkg/response"
)

type BidHandler struct {
	itemUseCase *usecase.ItemUseCase
	bidUseCase  *usecase.BidUseCase
}

func NewBidHandler(itemUseCase *usecase.ItemUseCase, bidUseCase *usecase.BidUseCase) *BidHandler {
	return &BidHandler{
		itemUseCase: itemUseCase,
		bidUseCase:  bidUseCase,
	}
}

type createBidRequest struct {
	Price *int `json:"price" validate:"required"`
}

func (h *BidHandler) CreateBid(c echo.Context) error {
	item, user, err := visibleItem(c, h.itemUseCase)
	if err != nil {
		return response.Error(c, err)
	}

	var req createBidRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	if item.OwnerUserID == user.ID {
		return response.Error(c, errors.Forbidden("You cannot bid on your own item", nil))
	}

	bid, err := h.bidUseCase.CreateBid(c.Request().Context(), item.ID, *req.Price, user.ID)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, bid)
}

// ListBids shows every bid to the owner and only their own bids to anyone else.
func (h *BidHandler) ListBids(c echo.Context) error {
	item, user, err := visibleItem(c, h.itemUseCase)
	if err != nil {
		return response.Error(c, err)
	}
	ctx := c.Request().Context()

	if item.OwnerUserID == user.ID {
		bids, err := h.bidUseCase.ListForSeller(ctx, item.ID)
		if err != nil {
			return response.Error(c, err)
		}
		return response.Success(c, bids)
	}

	bids, err := h.bidUseCase.ListForBuyer(ctx, item.ID, user.ID)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, bids)
}

func (h *BidHandler) HighestBid(c echo.Context) error {
	item, _, err := visibleItem(c, h.itemUseCase)
	if err != nil {
		return response.Error(c, err)
	}
	highest, err := h.bidUseCase.HighestBid(c.Request().Context(), item.ID)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]int{"highestBid": highest})
}

// GetBid is visible to the item owner and to the bidder.
func (h *BidHandler) GetBid(c echo.Context) error {
	item, user, err := visibleItem(c, h.itemUseCase)
	if err != nil {
		return response.Error(c, err)
	}
	bid, err := h.bidUseCase.GetBid(c.Request().Context(), item.ID, c.Param("bidId"))
	if err != nil {
		return response.Error(c, err)
	}
	if item.OwnerUserID != user.ID && bid.BidderUserID != user.ID {
		return response.Error(c, errors.Forbidden("You can only view your own bids", nil))
	}
	return response.Success(c, bid)
}

func (h *BidHandler) AcceptBid(c echo.Context) error {
	item, _, err := ownedItem(c, h.itemUseCase)
	if err != nil {
		return response.Error(c, err)
	}
	bidID := c.Param("bidId")
	if err := h.bidUseCase.AcceptBid(c.Request().Context(), item.ID, bidID); err != nil {
		return response.Error(c, err)
	}
	logger.Info("bid %s accepted on item %s", bidID, item.ID)

	bid, err := h.bidUseCase.GetBid(c.Request().Context(), item.ID, bidID)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, bid)
}

func (h *BidHandler) RatingEligibility(c echo.Context) error {
	item, user, err := visibleItem(c, h.itemUseCase)
	if err != nil {
		return response.Error(c, err)
	}
	eligibility, err := viewerEligibility(c, h.bidUseCase, item, user)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, eligibility)
}

// viewerEligibility reports whether viewer may rate the other side of the item's
// accepted bid. A buyer rates the owner; the owner rates the accepted bidder.
func viewerEligibility(c echo.Context, bids *usecase.BidUseCase, item *entity.Item, viewer *entity.User) (entity.RatingEligibility, error) {
	ctx := c.Request().Context()
	if item.OwnerUserID != viewer.ID {
		return bids.HasAcceptedBidFor(ctx, item.ID, viewer.ID)
	}
	for _, bid := range item.Bids {
		if bid.Accepted {
			return bids.HasAcceptedBidFor(ctx, item.ID, bid.BidderUserID)
		}
	}
	return entity.Ineligible(), nil
}
