package handler

import (
	"strings"

	"github.com/labstack/echo/v4"

	"unisell/internal/domain/entity"
	"unisell/internal/usecase"
	"unisell/pkg/errors"
	"unisell/pkg/response"
	"unisell/pkg/utils"
)

type ItemHandler struct {
	itemUseCase   *usecase.ItemUseCase
	bidUseCase    *usecase.BidUseCase
	userUseCase   *usecase.UserUseCase
	ratingUseCase *usecase.RatingUseCase
}

func NewItemHandler(
	itemUseCase *usecase.ItemUseCase,
	bidUseCase *usecase.BidUseCase,
	userUseCase *usecase.UserUseCase,
	ratingUseCase *usecase.RatingUseCase,
) *ItemHandler {
	return &ItemHandler{
		itemUseCase:   itemUseCase,
		bidUseCase:    bidUseCase,
		userUseCase:   userUseCase,
		ratingUseCase: ratingUseCase,
	}
}

type photoRequest struct {
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}

type createItemRequest struct {
	Title        string         `json:"title" validate:"required"`
	Description  string         `json:"description" validate:"required"`
	Keywords     string         `json:"keywords" validate:"required"`
	Price        string         `json:"price" validate:"required"`
	PickUpMethod string         `json:"pickUpMethod" validate:"required"`
	Photos       []photoRequest `json:"photos"`
}

type updateItemRequest struct {
	createItemRequest
	// Sold must be the string "true" or "false"; anything else, booleans
	// included, is rejected by the use case.
	Sold interface{} `json:"sold"`
}

type commentRequest struct {
	Text string `json:"text" validate:"required"`
}

type ownerView struct {
	ID            string  `json:"id"`
	Username      string  `json:"username"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Photo         string  `json:"photo"`
	AverageRating float64 `json:"averageRating"`
}

// itemDetail is everything the item page needs in one response. Bids holds
// []entity.SellerBidView for the owner and []entity.BuyerBidView otherwise.
type itemDetail struct {
	Item              entity.ItemView          `json:"item"`
	Owner             ownerView                `json:"owner"`
	IsOwner           bool                     `json:"isOwner"`
	Comments          []entity.CommentView     `json:"comments"`
	Bids              interface{}              `json:"bids"`
	HighestBid        int                      `json:"highestBid"`
	RatingEligibility entity.RatingEligibility `json:"ratingEligibility"`
}

func toPhotoInputs(photos []photoRequest) []usecase.PhotoInput {
	if photos == nil {
		return nil
	}
	inputs := make([]usecase.PhotoInput, len(photos))
	for i, p := range photos {
		inputs[i] = usecase.PhotoInput{Description: p.Description, ImageURL: p.ImageURL}
	}
	return inputs
}

// ListItems lists unsold items of the session user's university, optionally
// narrowed by ?keyword.
func (h *ItemHandler) ListItems(c echo.Context) error {
	user, err := sessionUser(c)
	if err != nil {
		return response.Error(c, err)
	}
	ctx := c.Request().Context()

	var items []entity.ItemSummary
	if keyword := c.QueryParam("keyword"); strings.TrimSpace(keyword) != "" {
		items, err = h.itemUseCase.ListByUniversityAndKeyword(ctx, user.UniversityID, keyword)
	} else {
		items, err = h.itemUseCase.ListByUniversity(ctx, user.UniversityID)
	}
	if err != nil {
		return response.Error(c, err)
	}

	params := utils.GetPaginationParams(c)
	return response.Paginated(c, utils.Paginate(items, params), int64(len(items)), params.Page, params.PageSize)
}

func (h *ItemHandler) CreateItem(c echo.Context) error {
	user, err := sessionUser(c)
	if err != nil {
		return response.Error(c, err)
	}

	var req createItemRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	photos := toPhotoInputs(req.Photos)
	if photos == nil {
		photos = []usecase.PhotoInput{}
	}
	item, err := h.itemUseCase.Create(c.Request().Context(), usecase.CreateItemInput{
		Title:        req.Title,
		Description:  req.Description,
		Keywords:     req.Keywords,
		Price:        req.Price,
		Username:     user.Username,
		Photos:       photos,
		PickUpMethod: req.PickUpMethod,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, entity.NewItemView(item))
}

func (h *ItemHandler) GetItem(c echo.Context) error {
	item, viewer, err := visibleItem(c, h.itemUseCase)
	if err != nil {
		return response.Error(c, err)
	}
	ctx := c.Request().Context()

	owner, err := h.userUseCase.GetByID(ctx, item.OwnerUserID)
	if err != nil {
		return response.Error(c, err)
	}
	comments, err := h.itemUseCase.ListComments(ctx, item.ID)
	if err != nil {
		return response.Error(c, err)
	}
	highest, err := h.bidUseCase.HighestBid(ctx, item.ID)
	if err != nil {
		return response.Error(c, err)
	}

	isOwner := owner.ID == viewer.ID
	var bids interface{}
	if isOwner {
		bids, err = h.bidUseCase.ListForSeller(ctx, item.ID)
	} else {
		bids, err = h.bidUseCase.ListForBuyer(ctx, item.ID, viewer.ID)
	}
	if err != nil {
		return response.Error(c, err)
	}

	eligibility, err := viewerEligibility(c, h.bidUseCase, item, viewer)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, itemDetail{
		Item: entity.NewItemView(item),
		Owner: ownerView{
			ID:            owner.ID,
			Username:      owner.Username,
			Name:          owner.Name,
			Email:         owner.Email,
			Photo:         owner.ImageOr(entity.BlankProfileURL),
			AverageRating: owner.AverageRating(),
		},
		IsOwner:           isOwner,
		Comments:          comments,
		Bids:              bids,
		HighestBid:        highest,
		RatingEligibility: eligibility,
	})
}

func (h *ItemHandler) UpdateItem(c echo.Context) error {
	item, _, err := ownedItem(c, h.itemUseCase)
	if err != nil {
		return response.Error(c, err)
	}

	var req updateItemRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	sold, _ := req.Sold.(string)
	updated, err := h.itemUseCase.Update(c.Request().Context(), item.ID, usecase.UpdateItemInput{
		Title:        req.Title,
		Description:  req.Description,
		Keywords:     req.Keywords,
		Price:        req.Price,
		PickUpMethod: req.PickUpMethod,
		Sold:         sold,
		Photos:       toPhotoInputs(req.Photos),
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, entity.NewItemView(updated))
}

func (h *ItemHandler) ListComments(c echo.Context) error {
	item, _, err := visibleItem(c, h.itemUseCase)
	if err != nil {
		return response.Error(c, err)
	}
	comments, err := h.itemUseCase.ListComments(c.Request().Context(), item.ID)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, comments)
}

func (h *ItemHandler) AddComment(c echo.Context) error {
	item, user, err := visibleItem(c, h.itemUseCase)
	if err != nil {
		return response.Error(c, err)
	}

	var req commentRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	comment, err := h.itemUseCase.AddComment(c.Request().Context(), item.ID, user.Username, req.Text)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, comment)
}

func (h *ItemHandler) ListPhotos(c echo.Context) error {
	item, _, err := visibleItem(c, h.itemUseCase)
	if err != nil {
		return response.Error(c, err)
	}
	photos, err := h.itemUseCase.ListPhotos(c.Request().Context(), item.ID)
	if err != nil {
		return response.Error(c, err)
	}
	if len(photos) == 0 {
		photos = []entity.Photo{{ImageURL: entity.NoImageURL}}
	}
	return response.Success(c, photos)
}

func (h *ItemHandler) GetPhoto(c echo.Context) error {
	item, _, err := visibleItem(c, h.itemUseCase)
	if err != nil {
		return response.Error(c, err)
	}
	photo, err := h.itemUseCase.GetPhoto(c.Request().Context(), item.ID, c.Param("photoId"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, photo)
}

func (h *ItemHandler) AddPhoto(c echo.Context) error {
	item, _, err := ownedItem(c, h.itemUseCase)
	if err != nil {
		return response.Error(c, err)
	}

	var req photoRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	photo, err := h.itemUseCase.AddPhoto(c.Request().Context(), item.ID, usecase.PhotoInput{
		Description: req.Description,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, photo)
}

func (h *ItemHandler) EditPhoto(c echo.Context) error {
	item, _, err := ownedItem(c, h.itemUseCase)
	if err != nil {
		return response.Error(c, err)
	}

	var req photoRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	photo, err := h.itemUseCase.EditPhoto(c.Request().Context(), item.ID, c.Param("photoId"), usecase.PhotoInput{
		Description: req.Description,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, photo)
}
