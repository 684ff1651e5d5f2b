package scoring

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/thesrcielos/BananaRealm/internal/achievement"
	"github.com/thesrcielos/BananaRealm/internal/game"
	"github.com/thesrcielos/BananaRealm/internal/leaderboard"
	"github.com/thesrcielos/BananaRealm/internal/store/storetest"
	"github.com/thesrcielos/BananaRealm/internal/user"
)

var (
	fixedNow     = time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC)
	testIdentity = &user.Identity{UserID: "5", DisplayName: "kong", Email: "kong@jungle.io"}
	firstGame    = game.GameResult{Score: 150, Difficulty: game.Easy, Level: 1, HintsUsed: 0, TimeLeft: 40}
)

func unlockedIDs(unlocked []achievement.Unlocked) []string {
	out := []string{}
	for _, u := range unlocked {
		out = append(out, u.ID)
	}
	return out
}

func TestAggregator_SubmitFirstGameEndToEnd(t *testing.T) {
	gw, _ := storetest.NewGateway(t)
	games := game.NewStoreRepository(gw)
	names := new(leaderboard.MockUsernameResolver)
	names.On("ResolveUsername", "5").Return("kong")
	boards := leaderboard.NewService(leaderboard.NewStoreRepository(gw), names)
	achievements := achievement.NewService(achievement.NewStoreRepository(gw), games, nil)

	agg := NewAggregator(games, boards, achievements, names)
	agg.now = func() time.Time { return fixedNow }
	agg.newID = func() string { return "event-1" }

	outcome := agg.Submit(context.Background(), testIdentity, firstGame)
	require.NotNil(t, outcome)

	assert.Equal(t, "event-1", outcome.Event.ID)
	assert.Equal(t, "kong", outcome.Event.Username)
	assert.Equal(t, fixedNow.UnixMilli(), outcome.Event.Timestamp)

	require.NotNil(t, outcome.Progress)
	assert.Equal(t, 150, outcome.Progress.HighScore)
	assert.Equal(t, 1, outcome.Progress.Attempts)
	assert.Equal(t, 150, outcome.Progress.TotalScore)
	assert.False(t, outcome.Progress.Completed)

	require.NotNil(t, outcome.Stats)
	assert.Equal(t, 1, outcome.Stats.TotalGames)
	assert.Equal(t, 150, outcome.Stats.TotalScore)
	assert.Equal(t, 1, outcome.Stats.HintlessGames)
	assert.Equal(t, 150, outcome.Stats.AverageScore)

	ids := unlockedIDs(outcome.Unlocked)
	assert.Contains(t, ids, "beginner")
	assert.Contains(t, ids, "first_blood")
	assert.Contains(t, ids, "perfect_game")

	top := boards.GetTop(context.Background(), game.Easy, 10)
	require.Len(t, top, 1)
	assert.Equal(t, 150, top[0].Score)
	assert.Equal(t, "5", top[0].UserID)

	history, err := games.ListScoreEvents(context.Background(), "5", 10)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

type mockedPipeline struct {
	agg          *Aggregator
	games        *game.MockRepository
	board        *MockLeaderboardUpdater
	achievements *MockAchievementEvaluator
}

func newMockedPipeline() mockedPipeline {
	games := new(game.MockRepository)
	board := new(MockLeaderboardUpdater)
	achievements := new(MockAchievementEvaluator)
	names := new(leaderboard.MockUsernameResolver)
	names.On("ResolveUsername", mock.Anything).Return(user.AnonymousUsername)

	agg := NewAggregator(games, board, achievements, names)
	agg.now = func() time.Time { return fixedNow }
	agg.newID = func() string { return "event-x" }
	return mockedPipeline{agg: agg, games: games, board: board, achievements: achievements}
}

func TestAggregator_SubmitUnauthenticated(t *testing.T) {
	p := newMockedPipeline()

	assert.Nil(t, p.agg.Submit(context.Background(), nil, firstGame))
	p.games.AssertNotCalled(t, "SaveScoreEvent", mock.Anything)
}

func TestAggregator_SubmitInvalidResult(t *testing.T) {
	p := newMockedPipeline()

	outcome := p.agg.Submit(context.Background(), testIdentity, game.GameResult{Score: 10, Difficulty: "impossible", Level: 1})

	assert.Nil(t, outcome)
	p.games.AssertNotCalled(t, "SaveScoreEvent", mock.Anything)
}

func TestAggregator_SubmitEventFailureStopsEverything(t *testing.T) {
	p := newMockedPipeline()
	p.games.On("SaveScoreEvent", mock.Anything).Return(errors.New("store down"))

	assert.Nil(t, p.agg.Submit(context.Background(), testIdentity, firstGame))
	p.board.AssertNotCalled(t, "UpdateIfHigher", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	p.games.AssertNotCalled(t, "UpdateProgress", mock.Anything, mock.Anything)
	p.achievements.AssertNotCalled(t, "Evaluate", mock.Anything, mock.Anything)
}

func TestAggregator_SubmitLeaderboardFailureContinues(t *testing.T) {
	p := newMockedPipeline()
	p.games.On("SaveScoreEvent", mock.Anything).Return(nil)
	p.board.On("UpdateIfHigher", testIdentity, game.Easy, 150, leaderboard.Meta{
		Timestamp: fixedNow.UnixMilli(),
		Date:      fixedNow.Format(time.RFC3339),
	}).Return(errors.New("cas exhausted"))
	p.games.On("UpdateProgress", "5", firstGame).Return(game.DifficultyProgress{Attempts: 1}, nil)
	p.games.On("UpdateGlobalStats", "5", firstGame).Return(game.GlobalStats{TotalGames: 1}, nil)
	p.achievements.On("Evaluate", testIdentity, firstGame).Return([]achievement.Unlocked{{ID: "beginner"}}, nil)

	outcome := p.agg.Submit(context.Background(), testIdentity, firstGame)

	require.NotNil(t, outcome)
	assert.Equal(t, "kong", outcome.Event.Username, "anonymous profile falls back to the display name")
	assert.NotNil(t, outcome.Progress)
	assert.NotNil(t, outcome.Stats)
	assert.Equal(t, []string{"beginner"}, unlockedIDs(outcome.Unlocked))
	p.board.AssertExpectations(t)
}

func TestAggregator_SubmitProgressFailureSkipsStats(t *testing.T) {
	p := newMockedPipeline()
	p.games.On("SaveScoreEvent", mock.Anything).Return(nil)
	p.board.On("UpdateIfHigher", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	p.games.On("UpdateProgress", "5", firstGame).Return(game.DifficultyProgress{}, errors.New("timeout"))
	p.achievements.On("Evaluate", testIdentity, firstGame).Return([]achievement.Unlocked{}, nil)

	outcome := p.agg.Submit(context.Background(), testIdentity, firstGame)

	require.NotNil(t, outcome)
	assert.Nil(t, outcome.Progress)
	assert.Nil(t, outcome.Stats)
	p.games.AssertNotCalled(t, "UpdateGlobalStats", mock.Anything, mock.Anything)
	p.achievements.AssertCalled(t, "Evaluate", testIdentity, firstGame)
}

func TestAggregator_SubmitAchievementFailureUnlocksNothing(t *testing.T) {
	p := newMockedPipeline()
	p.games.On("SaveScoreEvent", mock.Anything).Return(nil)
	p.board.On("UpdateIfHigher", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	p.games.On("UpdateProgress", "5", firstGame).Return(game.DifficultyProgress{Attempts: 1}, nil)
	p.games.On("UpdateGlobalStats", "5", firstGame).Return(game.GlobalStats{}, errors.New("timeout"))
	p.achievements.On("Evaluate", testIdentity, firstGame).Return(nil, errors.New("timeout"))

	outcome := p.agg.Submit(context.Background(), testIdentity, firstGame)

	require.NotNil(t, outcome)
	assert.NotNil(t, outcome.Progress)
	assert.Nil(t, outcome.Stats)
	assert.NotNil(t, outcome.Unlocked)
	assert.Empty(t, outcome.Unlocked)
}
