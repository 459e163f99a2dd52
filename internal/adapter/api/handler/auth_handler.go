package handler

import (
	"github.com/labstack/echo/v4"

	"unisell/internal/adapter/api/middleware"
	"unisell/internal/usecase"
	"unisell/pkg/errors"
	"unisell/pkg/logger"
	"unisell/pkg/response"
)

type AuthHandler struct {
	authUseCase       *usecase.AuthUseCase
	universityUseCase *usecase.UniversityUseCase
}

func NewAuthHandler(authUseCase *usecase.AuthUseCase, universityUseCase *usecase.UniversityUseCase) *AuthHandler {
	return &AuthHandler{
		authUseCase:       authUseCase,
		universityUseCase: universityUseCase,
	}
}

type signupRequest struct {
	UniversityID         string `json:"universityId" validate:"required"`
	Username             string `json:"username" validate:"required"`
	Password             string `json:"password" validate:"required"`
	PasswordConfirmation string `json:"passwordConfirmation" validate:"required"`
	Name                 string `json:"name" validate:"required"`
	Email                string `json:"email" validate:"required"`
	ImageURL             string `json:"imageUrl"`
	Bio                  string `json:"bio" validate:"required"`
}

type loginRequest struct {
	UniversityID string `json:"universityId" validate:"required"`
	Username     string `json:"username" validate:"required"`
	Password     string `json:"password" validate:"required"`
}

func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	result, err := h.authUseCase.Signup(c.Request().Context(), usecase.CreateUserInput{
		UniversityID:         req.UniversityID,
		Username:             req.Username,
		Password:             req.Password,
		PasswordConfirmation: req.PasswordConfirmation,
		Name:                 req.Name,
		Email:                req.Email,
		ImageURL:             req.ImageURL,
		Bio:                  req.Bio,
	})
	if err != nil {
		return response.Error(c, err)
	}

	logger.Info("user %s signed up", result.User.ID)
	return response.Created(c, result)
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	result, err := h.authUseCase.Login(c.Request().Context(), req.UniversityID, req.Username, req.Password)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, result)
}

func (h *AuthHandler) Logout(c echo.Context) error {
	token, err := middleware.BearerToken(c)
	if err != nil {
		return response.Error(c, err)
	}
	if err := h.authUseCase.Logout(c.Request().Context(), token); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"message": "Logged out"})
}

// ListUniversities is public so the signup form can offer a choice.
func (h *AuthHandler) ListUniversities(c echo.Context) error {
	universities, err := h.universityUseCase.ListAll(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, universities)
}
