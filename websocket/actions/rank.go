package actions

import (
	"context"
	"encoding/json"

	"github.com/thesrcielos/BananaRealm/internal/game"
	"github.com/thesrcielos/BananaRealm/internal/leaderboard"
	"github.com/thesrcielos/BananaRealm/internal/logger"
	"github.com/thesrcielos/BananaRealm/internal/user"
	"github.com/thesrcielos/BananaRealm/websocket/message"
	"github.com/thesrcielos/BananaRealm/websocket/transport"
)

type RankReader interface {
	GetUserRank(ctx context.Context, id *user.Identity, difficulty game.Difficulty) (int, bool)
}

var Ranks RankReader

func HandleRank(id *user.Identity, msg message.Message) {
	var req message.RankRequestPayload
	if err := json.Unmarshal(msg.Payload, &req); err != nil {
		logger.Warn("Error decoding rank request: %v", err)
		return
	}
	difficulty, err := game.ParseDifficulty(req.Difficulty)
	if err != nil {
		transport.SendToPlayer(id.UserID, transport.OutgoingMessage{
			Type:    message.TypeError,
			Payload: message.ErrorPayload{Message: err.Error()},
		})
		return
	}

	rank, ok := Ranks.GetUserRank(context.Background(), id, difficulty)
	transport.SendToPlayer(id.UserID, transport.OutgoingMessage{
		Type:    message.TypeRank,
		Payload: leaderboard.RankResponse{Difficulty: difficulty, Rank: rank, Ranked: ok},
	})
}
