package achievement

import "github.com/thesrcielos/BananaRealm/internal/game"

// Input names which value a condition is checked against.
type Input string

const (
	InputScore    Input = "score"
	InputProgress Input = "progress"
	InputGame     Input = "game"
	InputStats    Input = "stats"
)

// Condition holds exactly one predicate, the one matching Input.
type Condition struct {
	Input    Input
	Score    func(score int) bool
	Progress func(progress game.ProgressMap) bool
	Game     func(result game.GameResult) bool
	Stats    func(stats game.GlobalStats) bool
}

// Facts is everything a condition may look at after a game.
type Facts struct {
	Result   game.GameResult
	Progress game.ProgressMap
	Stats    game.GlobalStats
}

func (c Condition) Met(f Facts) bool {
	switch c.Input {
	case InputScore:
		return c.Score != nil && c.Score(f.Result.Score)
	case InputProgress:
		return c.Progress != nil && c.Progress(f.Progress)
	case InputGame:
		return c.Game != nil && c.Game(f.Result)
	case InputStats:
		return c.Stats != nil && c.Stats(f.Stats)
	}
	return false
}

type Achievement struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	Points      int       `json:"points"`
	Condition   Condition `json:"-"`
}

func scoreAtLeast(n int) Condition {
	return Condition{Input: InputScore, Score: func(score int) bool { return score >= n }}
}

func completed(d game.Difficulty) Condition {
	return Condition{Input: InputProgress, Progress: func(p game.ProgressMap) bool { return p.Completed(d) }}
}

func gamesAtLeast(n int) Condition {
	return Condition{Input: InputStats, Stats: func(s game.GlobalStats) bool { return s.TotalGames >= n }}
}

var catalog = []Achievement{
	{
		ID: "beginner", Title: "First Steps", Description: "Score your first 100 points",
		Icon: "🥉", Points: 10, Condition: scoreAtLeast(100),
	},
	{
		ID: "advanced", Title: "Advanced Explorer", Description: "Score 500 points in one game",
		Icon: "🥈", Points: 25, Condition: scoreAtLeast(500),
	},
	{
		ID: "master", Title: "Banana Master", Description: "Score 1000 points in one game",
		Icon: "🥇", Points: 50, Condition: scoreAtLeast(1000),
	},
	{
		ID: "easy_completer", Title: "Easy Explorer", Description: "Complete all easy puzzles",
		Icon: "🍌", Points: 15, Condition: completed(game.Easy),
	},
	{
		ID: "medium_completer", Title: "Medium Master", Description: "Complete all medium puzzles",
		Icon: "🍌🍌", Points: 30, Condition: completed(game.Medium),
	},
	{
		ID: "hard_completer", Title: "Hardcore Hero", Description: "Complete all hard puzzles",
		Icon: "🍌🍌🍌", Points: 60, Condition: completed(game.Hard),
	},
	{
		ID: "perfect_game", Title: "Perfect Game", Description: "Complete a level without using hints",
		Icon: "⭐", Points: 20,
		Condition: Condition{Input: InputGame, Game: func(r game.GameResult) bool { return r.HintsUsed == 0 }},
	},
	{
		ID: "speed_runner", Title: "Speed Runner", Description: "Complete a level with more than 30 seconds remaining",
		Icon: "⚡", Points: 25,
		Condition: Condition{Input: InputGame, Game: func(r game.GameResult) bool { return r.TimeLeft >= 30 }},
	},
	{
		ID: "first_blood", Title: "First Blood", Description: "Complete your first puzzle",
		Icon: "🎮", Points: 5, Condition: gamesAtLeast(1),
	},
	{
		ID: "dedicated", Title: "Dedicated Player", Description: "Play 10 games",
		Icon: "🏆", Points: 30, Condition: gamesAtLeast(10),
	},
}

// Catalog returns every achievement in display order.
func Catalog() []Achievement {
	out := make([]Achievement, len(catalog))
	copy(out, catalog)
	return out
}
