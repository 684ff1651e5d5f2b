package scoring

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/thesrcielos/BananaRealm/internal/achievement"
	"github.com/thesrcielos/BananaRealm/internal/game"
	"github.com/thesrcielos/BananaRealm/internal/leaderboard"
	"github.com/thesrcielos/BananaRealm/internal/user"
)

type MockLeaderboardUpdater struct {
	mock.Mock
}

func (m *MockLeaderboardUpdater) UpdateIfHigher(ctx context.Context, id *user.Identity, difficulty game.Difficulty, score int, meta leaderboard.Meta) error {
	args := m.Called(id, difficulty, score, meta)
	return args.Error(0)
}

type MockAchievementEvaluator struct {
	mock.Mock
}

func (m *MockAchievementEvaluator) Evaluate(ctx context.Context, id *user.Identity, result game.GameResult) ([]achievement.Unlocked, error) {
	args := m.Called(id, result)
	unlocked, _ := args.Get(0).([]achievement.Unlocked)
	return unlocked, args.Error(1)
}
