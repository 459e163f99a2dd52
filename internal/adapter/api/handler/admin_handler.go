package handler

import (
	"github.com/labstack/echo/v4"

	"unisell/internal/usecase"
	"unisell/pkg/errors"
	"unisell/pkg/logger"
	"unisell/pkg/response"
)

// AdminHandler serves the super admin routes.
type AdminHandler struct {
	universityUseCase *usecase.UniversityUseCase
	userUseCase       *usecase.UserUseCase
}

func NewAdminHandler(universityUseCase *usecase.UniversityUseCase, userUseCase *usecase.UserUseCase) *AdminHandler {
	return &AdminHandler{
		universityUseCase: universityUseCase,
		userUseCase:       userUseCase,
	}
}

type universityRequest struct {
	Name        string `json:"name" validate:"required"`
	EmailDomain string `json:"emailDomain" validate:"required"`
}

func (h *AdminHandler) ListUniversities(c echo.Context) error {
	universities, err := h.universityUseCase.ListAll(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, universities)
}

func (h *AdminHandler) GetUniversity(c echo.Context) error {
	university, err := h.universityUseCase.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, university)
}

func (h *AdminHandler) CreateUniversity(c echo.Context) error {
	var req universityRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	university, err := h.universityUseCase.Create(c.Request().Context(), req.Name, req.EmailDomain)
	if err != nil {
		return response.Error(c, err)
	}
	logger.Info("university %s created (%s)", university.ID, university.EmailDomain)
	return response.Created(c, university)
}

func (h *AdminHandler) UpdateUniversity(c echo.Context) error {
	var req universityRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	university, err := h.universityUseCase.Update(c.Request().Context(), c.Param("id"), req.Name, req.EmailDomain)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, university)
}

func (h *AdminHandler) PromoteSuperAdmin(c echo.Context) error {
	username := c.Param("username")
	if err := h.userUseCase.MakeSuperAdmin(c.Request().Context(), username); err != nil {
		return response.Error(c, err)
	}
	logger.Info("user %s promoted to super admin", username)
	return response.Success(c, map[string]string{"message": "User is now a super admin"})
}
