package game

import (
	"fmt"
	"math"
	"time"

	"github.com/thesrcielos/BananaRealm/internal/apperrors"
)

type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// Difficulties lists every tier in display order.
var Difficulties = []Difficulty{Easy, Medium, Hard}

type Settings struct {
	Puzzles       int     `json:"puzzles"`
	TimePerPuzzle int     `json:"timePerPuzzle"`
	MinScore      int     `json:"minScore"`
	Multiplier    float64 `json:"multiplier"`
}

var difficultySettings = map[Difficulty]Settings{
	Easy:   {Puzzles: 6, TimePerPuzzle: 60, MinScore: 300, Multiplier: 1},
	Medium: {Puzzles: 6, TimePerPuzzle: 45, MinScore: 500, Multiplier: 1.5},
	Hard:   {Puzzles: 6, TimePerPuzzle: 30, MinScore: 800, Multiplier: 2},
}

func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(s)
	if _, ok := difficultySettings[d]; !ok {
		return "", fmt.Errorf("%w: unknown difficulty %q", apperrors.ErrInvalidGameResult, s)
	}
	return d, nil
}

func (d Difficulty) Valid() bool {
	_, ok := difficultySettings[d]
	return ok
}

func (d Difficulty) Settings() Settings {
	return difficultySettings[d]
}

type GameResult struct {
	Score      int        `json:"score" validate:"min=0"`
	Difficulty Difficulty `json:"difficulty" validate:"required,oneof=easy medium hard"`
	Level      int        `json:"level" validate:"min=1"`
	HintsUsed  int        `json:"hintsUsed" validate:"min=0"`
	TimeLeft   int        `json:"timeLeft" validate:"min=0"`
	Completed  bool       `json:"completed"`
}

func (r GameResult) Validate() error {
	if !r.Difficulty.Valid() {
		return fmt.Errorf("%w: unknown difficulty %q", apperrors.ErrInvalidGameResult, r.Difficulty)
	}
	settings := r.Difficulty.Settings()
	switch {
	case r.Score < 0:
		return fmt.Errorf("%w: score must not be negative", apperrors.ErrInvalidGameResult)
	case r.Level < 1 || r.Level > settings.Puzzles:
		return fmt.Errorf("%w: level must be between 1 and %d", apperrors.ErrInvalidGameResult, settings.Puzzles)
	case r.HintsUsed < 0:
		return fmt.Errorf("%w: hints used must not be negative", apperrors.ErrInvalidGameResult)
	case r.TimeLeft < 0:
		return fmt.Errorf("%w: time left must not be negative", apperrors.ErrInvalidGameResult)
	}
	if r.Completed && (r.Level != settings.Puzzles || r.Score < settings.MinScore) {
		return fmt.Errorf("%w: completed %s requires all %d puzzles and at least %d points",
			apperrors.ErrInvalidGameResult, r.Difficulty, settings.Puzzles, settings.MinScore)
	}
	return nil
}

// ScoreEvent is the append-only record of one submitted game.
type ScoreEvent struct {
	ID         string     `json:"id"`
	UserID     string     `json:"userId"`
	Username   string     `json:"username"`
	Score      int        `json:"score"`
	Difficulty Difficulty `json:"difficulty"`
	Level      int        `json:"level"`
	HintsUsed  int        `json:"hintsUsed"`
	TimeLeft   int        `json:"timeLeft"`
	Completed  bool       `json:"completed"`
	Timestamp  int64      `json:"timestamp"`
	Date       string     `json:"date"`
}

type DifficultyProgress struct {
	HighScore  int        `json:"highScore"`
	Attempts   int        `json:"attempts"`
	TotalScore int        `json:"totalScore"`
	Completed  bool       `json:"completed"`
	LastPlayed *time.Time `json:"lastPlayed"`
}

// Apply folds one result into the progress for its difficulty.
func (p DifficultyProgress) Apply(r GameResult, now time.Time) DifficultyProgress {
	p.Attempts++
	p.TotalScore += r.Score
	if r.Score > p.HighScore {
		p.HighScore = r.Score
	}
	if r.Completed {
		p.Completed = true
	}
	p.LastPlayed = &now
	return p
}

type ProgressMap map[Difficulty]DifficultyProgress

func (m ProgressMap) Completed(d Difficulty) bool {
	return m[d].Completed
}

type GlobalStats struct {
	TotalGames    int        `json:"totalGames"`
	TotalScore    int        `json:"totalScore"`
	TotalPuzzles  int        `json:"totalPuzzles"`
	HintlessGames int        `json:"hintlessGames"`
	AverageScore  int        `json:"averageScore"`
	LastPlayed    *time.Time `json:"lastPlayed"`
}

// Apply folds one result into the lifetime stats and recomputes the average.
func (s GlobalStats) Apply(r GameResult, now time.Time) GlobalStats {
	s.TotalGames++
	s.TotalScore += r.Score
	s.TotalPuzzles += r.Level
	if r.HintsUsed == 0 {
		s.HintlessGames++
	}
	s.AverageScore = AverageScore(s.TotalScore, s.TotalGames)
	s.LastPlayed = &now
	return s
}

func AverageScore(totalScore, totalGames int) int {
	if totalGames <= 0 {
		return 0
	}
	return int(math.Round(float64(totalScore) / float64(totalGames)))
}
