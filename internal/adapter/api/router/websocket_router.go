package router

import (
	"github.com/labstack/echo/v4"

	"unisell/internal/adapter/api/handler"
)

// SetupWebSocketRouter mounts /ws. The handler authenticates the handshake itself.
func SetupWebSocketRouter(e *echo.Echo) {
	wsHandler := handler.GetWebSocketHandler()
	if wsHandler == nil {
		return
	}
	e.GET("/ws", wsHandler.HandleWebSocket)
}
