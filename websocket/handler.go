package websocket

import (
	"errors"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/thesrcielos/BananaRealm/internal/logger"
	"github.com/thesrcielos/BananaRealm/internal/user"
	"github.com/thesrcielos/BananaRealm/websocket/session"
)

var (
	upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     func(r *http.Request) bool { return true },
	}
)

// WebSocketHandler opens the notification socket. Browsers cannot set
// headers on the upgrade request, so the JWT travels in the token query param.
func WebSocketHandler(c echo.Context) error {
	id, err := ValidateJWT(c.QueryParam("token"))
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}

	ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		logger.Error("WebSocket upgrade failed: %v", err)
		return err
	}

	logger.Info("Player connected: %s", id.UserID)
	s := session.Register(id.UserID, ws)
	go listenPlayerMessages(id, s)

	return nil
}

func ValidateJWT(tokenString string) (*user.Identity, error) {
	if tokenString == "" {
		return nil, errors.New("empty token")
	}
	claims, err := user.ParseJWT(tokenString)
	if err != nil {
		return nil, err
	}
	return claims.Identity(), nil
}
