package router

import (
	"github.com/thesrcielos/BananaRealm/internal/logger"
	"github.com/thesrcielos/BananaRealm/internal/user"
	"github.com/thesrcielos/BananaRealm/websocket/actions"
	"github.com/thesrcielos/BananaRealm/websocket/message"
)

var handlers = map[string]func(id *user.Identity, msg message.Message){
	message.TypePing: actions.HandlePing,
	message.TypeRank: actions.HandleRank,
}

func RouteMessage(id *user.Identity, msg message.Message) {
	if handler, ok := handlers[msg.Type]; ok {
		handler(id, msg)
	} else {
		logger.Warn("Unknown message type from %s: %s", id.UserID, msg.Type)
	}
}
