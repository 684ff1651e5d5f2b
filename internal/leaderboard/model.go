package leaderboard

import "github.com/thesrcielos/BananaRealm/internal/game"

// RankWindow is how many entries GetUserRank looks through.
const RankWindow = 1000

type Entry struct {
	UserID     string          `json:"userId"`
	Username   string          `json:"username"`
	Score      int             `json:"score"`
	Timestamp  int64           `json:"timestamp"`
	Date       string          `json:"date"`
	Difficulty game.Difficulty `json:"difficulty"`
}

// Meta carries the submission time of the game that produced a score.
type Meta struct {
	Timestamp int64
	Date      string
}

type Rename struct {
	Difficulty game.Difficulty
	UserID     string
	Username   string
}

type RankResponse struct {
	Difficulty game.Difficulty `json:"difficulty"`
	Rank       int             `json:"rank,omitempty"`
	Ranked     bool            `json:"ranked"`
}
