package middleware

import (
	"github.com/labstack/echo/v4"

	"unisell/pkg/errors"
	"unisell/pkg/response"
)

// AdminOnly admits super admins. It must run after Authenticate.
func AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user := CurrentUser(c)
		if user == nil {
			return response.Error(c, errors.Unauthorized("Authentication required", nil))
		}
		if !user.IsSuperAdmin {
			return response.Error(c, errors.Forbidden("Super admin privileges required", nil))
		}
		return next(c)
	}
}
