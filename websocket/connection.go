package websocket

import (
	"encoding/json"

	"github.com/gorilla/websocket"
	"github.com/thesrcielos/BananaRealm/internal/logger"
	"github.com/thesrcielos/BananaRealm/internal/user"
	"github.com/thesrcielos/BananaRealm/websocket/message"
	"github.com/thesrcielos/BananaRealm/websocket/router"
	"github.com/thesrcielos/BananaRealm/websocket/session"
)

func listenPlayerMessages(id *user.Identity, s *session.Session) {
	defer func() {
		logger.Info("Player disconnected: %s", id.UserID)
		session.Unregister(s)
		s.Conn.Close()
	}()

	for {
		_, data, err := s.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("Error reading message from %s: %v", id.UserID, err)
			}
			break
		}

		var msg message.Message
		if err := json.Unmarshal(data, &msg); err != nil {
			logger.Warn("Error decoding message from %s: %v", id.UserID, err)
			continue
		}

		router.RouteMessage(id, msg)
	}
}
