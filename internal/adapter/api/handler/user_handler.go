package handler

import (
	"github.com/labstack/echo/v4"

	"unisell/internal/domain/entity"
	"unisell/internal/usecase"
	"unisell/pkg/errors"
	"unisell/pkg/response"
)

// UserHandler serves the session user's own profile.
type UserHandler struct {
	userUseCase   *usecase.UserUseCase
	ratingUseCase *usecase.RatingUseCase
}

func NewUserHandler(userUseCase *usecase.UserUseCase, ratingUseCase *usecase.RatingUseCase) *UserHandler {
	return &UserHandler{
		userUseCase:   userUseCase,
		ratingUseCase: ratingUseCase,
	}
}

type profileResponse struct {
	*entity.User
	AverageRating float64 `json:"averageRating"`
}

type updateProfileRequest struct {
	Username string `json:"username" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required"`
	ImageURL string `json:"imageUrl"`
	Bio      string `json:"bio" validate:"required"`
}

type updatePasswordRequest struct {
	CurrentPassword      string `json:"currentPassword" validate:"required"`
	NewPassword          string `json:"newPassword" validate:"required"`
	PasswordConfirmation string `json:"passwordConfirmation" validate:"required"`
}

func (h *UserHandler) GetProfile(c echo.Context) error {
	user, err := sessionUser(c)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, profileResponse{User: user, AverageRating: user.AverageRating()})
}

func (h *UserHandler) UpdateProfile(c echo.Context) error {
	user, err := sessionUser(c)
	if err != nil {
		return response.Error(c, err)
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	updated, err := h.userUseCase.UpdateProfile(c.Request().Context(), user.Username, usecase.UpdateProfileInput{
		Username: req.Username,
		Name:     req.Name,
		Email:    req.Email,
		ImageURL: req.ImageURL,
		Bio:      req.Bio,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, profileResponse{User: updated, AverageRating: updated.AverageRating()})
}

func (h *UserHandler) UpdatePassword(c echo.Context) error {
	user, err := sessionUser(c)
	if err != nil {
		return response.Error(c, err)
	}

	var req updatePasswordRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	err = h.userUseCase.UpdatePassword(c.Request().Context(), user.Username, req.CurrentPassword, req.NewPassword, req.PasswordConfirmation)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"message": "Password updated"})
}

// ListAcceptedBids shows the purchases the session user still has to rate.
func (h *UserHandler) ListAcceptedBids(c echo.Context) error {
	user, err := sessionUser(c)
	if err != nil {
		return response.Error(c, err)
	}
	pending, err := h.userUseCase.HasAcceptedBids(c.Request().Context(), user.ID)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, pending)
}
