package handler

import (
	"net/http"

	gorillaws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"unisell/internal/adapter/api/middleware"
	ws "unisell/internal/infrastructure/websocket"
	"unisell/pkg/errors"
	"unisell/pkg/response"
)

// WebSocketHandler upgrades a session to a bid notification stream. Browsers
// cannot set headers on the handshake, so ?token is accepted as well.
type WebSocketHandler struct {
	wsManager *ws.Manager
	sessions  middleware.SessionResolver
	upgrader  gorillaws.Upgrader
}

var websocketHandler *WebSocketHandler

func NewWebSocketHandler(wsManager *ws.Manager, sessions middleware.SessionResolver, allowedOrigins []string) *WebSocketHandler {
	return &WebSocketHandler{
		wsManager: wsManager,
		sessions:  sessions,
		upgrader: gorillaws.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
	}
}

func SetupWebSocketHandler(wsManager *ws.Manager, sessions middleware.SessionResolver, allowedOrigins []string) {
	websocketHandler = NewWebSocketHandler(wsManager, sessions, allowedOrigins)
}

func GetWebSocketHandler() *WebSocketHandler {
	return websocketHandler
}

func originChecker(allowed []string) func(*http.Request) bool {
	set := make(map[string]bool, len(allowed))
	for _, o := range allowed {
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		set[o] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || set[origin]
	}
}

func (h *WebSocketHandler) HandleWebSocket(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		token := c.QueryParam("token")
		if token == "" {
			return response.Error(c, errors.Unauthorized("Authentication required", nil))
		}
		var err error
		if user, err = h.sessions.ResolveSession(c.Request().Context(), token); err != nil {
			return response.Error(c, err)
		}
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return errors.Internal("Failed to upgrade connection", err)
	}

	client := ws.NewClient(user.ID, conn)
	if !h.wsManager.Add(client) {
		conn.Close()
		return nil
	}

	go client.ReadPump(h.wsManager)
	go client.WritePump()
	return nil
}
