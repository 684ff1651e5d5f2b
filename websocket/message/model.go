package message

import (
	"encoding/json"
)

const (
	TypePing                = "PING"
	TypePong                = "PONG"
	TypeRank                = "RANK"
	TypeError               = "ERROR"
	TypeAchievementUnlocked = "ACHIEVEMENT_UNLOCKED"
)

type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type RankRequestPayload struct {
	Difficulty string `json:"difficulty"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}
