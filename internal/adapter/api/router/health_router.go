package router

import (
	"github.com/labstack/echo/v4"

	"unisell/internal/adapter/api/handler"
	"unisell/internal/infrastructure/metrics"
)

func SetupHealthRouter(e *echo.Echo, m *metrics.Metrics) {
	healthHandler := handler.GetHealthHandler()
	e.GET("/health", healthHandler.CheckHealth)
	if m != nil {
		e.GET("/metrics", echo.WrapHandler(m.Handler()))
	}
}
