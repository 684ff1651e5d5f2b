package transport

import (
	"github.com/thesrcielos/BananaRealm/internal/logger"
	"github.com/thesrcielos/BananaRealm/websocket/session"
)

type OutgoingMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// SendToPlayer writes msg to every socket the user has open on this instance.
// Users connected elsewhere are silently skipped.
func SendToPlayer(userID string, msg OutgoingMessage) {
	for _, s := range session.Get(userID) {
		send(s, msg)
	}
}

func send(s *session.Session, msg OutgoingMessage) {
	s.ConnMu.Lock()
	defer s.ConnMu.Unlock()

	if err := s.Conn.WriteJSON(msg); err != nil {
		logger.Warn("Error sending %s to %s: %v", msg.Type, s.UserID, err)
	}
}
