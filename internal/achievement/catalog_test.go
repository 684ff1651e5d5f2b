package achievement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/thesrcielos/BananaRealm/internal/game"
)

func findAchievement(t *testing.T, id string) Achievement {
	t.Helper()
	for _, a := range Catalog() {
		if a.ID == id {
			return a
		}
	}
	t.Fatalf("achievement %s not in catalog", id)
	return Achievement{}
}

func TestCatalog_EveryConditionHasItsPredicate(t *testing.T) {
	ids := map[string]bool{}
	for _, a := range Catalog() {
		assert.False(t, ids[a.ID], "duplicate id %s", a.ID)
		ids[a.ID] = true

		c := a.Condition
		switch c.Input {
		case InputScore:
			assert.NotNil(t, c.Score, a.ID)
		case InputProgress:
			assert.NotNil(t, c.Progress, a.ID)
		case InputGame:
			assert.NotNil(t, c.Game, a.ID)
		case InputStats:
			assert.NotNil(t, c.Stats, a.ID)
		default:
			t.Errorf("%s has unknown input %q", a.ID, c.Input)
		}
	}
	assert.Len(t, ids, 10)
}

func TestCondition_Met(t *testing.T) {
	tests := []struct {
		id    string
		facts Facts
		met   bool
	}{
		{"beginner", Facts{Result: game.GameResult{Score: 100}}, true},
		{"beginner", Facts{Result: game.GameResult{Score: 99}}, false},
		{"advanced", Facts{Result: game.GameResult{Score: 500}}, true},
		{"master", Facts{Result: game.GameResult{Score: 999}}, false},
		{"easy_completer", Facts{Progress: game.ProgressMap{game.Easy: {Completed: true}}}, true},
		{"medium_completer", Facts{Progress: game.ProgressMap{game.Easy: {Completed: true}}}, false},
		{"hard_completer", Facts{}, false},
		{"perfect_game", Facts{Result: game.GameResult{HintsUsed: 0}}, true},
		{"perfect_game", Facts{Result: game.GameResult{HintsUsed: 1}}, false},
		{"speed_runner", Facts{Result: game.GameResult{TimeLeft: 30}}, true},
		{"speed_runner", Facts{Result: game.GameResult{TimeLeft: 29}}, false},
		{"first_blood", Facts{Stats: game.GlobalStats{TotalGames: 1}}, true},
		{"first_blood", Facts{}, false},
		{"dedicated", Facts{Stats: game.GlobalStats{TotalGames: 10}}, true},
		{"dedicated", Facts{Stats: game.GlobalStats{TotalGames: 9}}, false},
	}

	for _, tt := range tests {
		a := findAchievement(t, tt.id)
		assert.Equal(t, tt.met, a.Condition.Met(tt.facts), "%s with %+v", tt.id, tt.facts)
	}
}

func TestCondition_MetIgnoresOtherInputs(t *testing.T) {
	c := Condition{Input: InputScore, Stats: func(game.GlobalStats) bool { return true }}
	assert.False(t, c.Met(Facts{}))
}
