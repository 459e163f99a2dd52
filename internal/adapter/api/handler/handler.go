package handler

import (
	"github.com/labstack/echo/v4"

	"unisell/internal/adapter/api/middleware"
	"unisell/internal/domain/entity"
	"unisell/internal/usecase"
	"unisell/pkg/errors"
)

var (
	authHandler   *AuthHandler
	adminHandler  *AdminHandler
	userHandler   *UserHandler
	itemHandler   *ItemHandler
	bidHandler    *BidHandler
	ratingHandler *RatingHandler
)

func Setup(
	authUseCase *usecase.AuthUseCase,
	universityUseCase *usecase.UniversityUseCase,
	userUseCase *usecase.UserUseCase,
	itemUseCase *usecase.ItemUseCase,
	bidUseCase *usecase.BidUseCase,
	ratingUseCase *usecase.RatingUseCase,
) {
	authHandler = NewAuthHandler(authUseCase, universityUseCase)
	adminHandler = NewAdminHandler(universityUseCase, userUseCase)
	userHandler = NewUserHandler(userUseCase, ratingUseCase)
	itemHandler = NewItemHandler(itemUseCase, bidUseCase, userUseCase, ratingUseCase)
	bidHandler = NewBidHandler(itemUseCase, bidUseCase)
	ratingHandler = NewRatingHandler(ratingUseCase, bidUseCase)
}

func GetAuthHandler() *AuthHandler {
	return authHandler
}

func GetAdminHandler() *AdminHandler {
	return adminHandler
}

func GetUserHandler() *UserHandler {
	return userHandler
}

func GetItemHandler() *ItemHandler {
	return itemHandler
}

func GetBidHandler() *BidHandler {
	return bidHandler
}

func GetRatingHandler() *RatingHandler {
	return ratingHandler
}

// sessionUser returns the authenticated user or an UNAUTHORIZED error.
func sessionUser(c echo.Context) (*entity.User, error) {
	user := middleware.CurrentUser(c)
	if user == nil {
		return nil, errors.Unauthorized("Authentication required", nil)
	}
	return user, nil
}

// visibleItem loads the :id item for the session user, enforcing same-university access.
func visibleItem(c echo.Context, items *usecase.ItemUseCase) (*entity.Item, *entity.User, error) {
	user, err := sessionUser(c)
	if err != nil {
		return nil, nil, err
	}
	item, err := items.GetVisibleItem(c.Request().Context(), c.Param("id"), user)
	if err != nil {
		return nil, nil, err
	}
	return item, user, nil
}

// ownedItem is visibleItem restricted to the item's owner.
func ownedItem(c echo.Context, items *usecase.ItemUseCase) (*entity.Item, *entity.User, error) {
	item, user, err := visibleItem(c, items)
	if err != nil {
		return nil, nil, err
	}
	if item.OwnerUserID != user.ID {
		return nil, nil, errors.Forbidden("Only the item owner can do that", nil)
	}
	return item, user, nil
}
