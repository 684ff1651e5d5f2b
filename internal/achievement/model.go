package achievement

import "github.com/thesrcielos/BananaRealm/internal/game"

type Unlocked struct {
	ID             string          `json:"id"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	Icon           string          `json:"icon"`
	Points         int             `json:"points"`
	UnlockedAt     int64           `json:"unlockedAt"`
	UnlockedDate   string          `json:"unlockedDate"`
	UnlockedInGame game.Difficulty `json:"unlockedInGame"`
}

type BoardItem struct {
	Achievement
	Unlocked   bool   `json:"unlocked"`
	UnlockedAt *int64 `json:"unlockedAt,omitempty"`
}

type Board struct {
	Items         []BoardItem `json:"items"`
	UnlockedCount int         `json:"unlockedCount"`
	Total         int         `json:"total"`
	EarnedPoints  int         `json:"earnedPoints"`
	TotalPoints   int         `json:"totalPoints"`
}
