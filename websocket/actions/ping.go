package actions

import (
	"github.com/thesrcielos/BananaRealm/internal/user"
	"github.com/thesrcielos/BananaRealm/websocket/message"
	"github.com/thesrcielos/BananaRealm/websocket/transport"
)

func HandlePing(id *user.Identity, msg message.Message) {
	transport.SendToPlayer(id.UserID, transport.OutgoingMessage{Type: message.TypePong})
}
