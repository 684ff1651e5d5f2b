package game

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thesrcielos/BananaRealm/internal/store/storetest"
)

func newTestRepository(t *testing.T) *StoreRepository {
	gw, _ := storetest.NewGateway(t)
	return NewStoreRepository(gw)
}

func TestStoreRepository_SaveScoreEventNeverOverwrites(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	first := &ScoreEvent{ID: "a", UserID: "1", Score: 10, Difficulty: Easy, Timestamp: 1000}
	second := &ScoreEvent{ID: "b", UserID: "1", Score: 20, Difficulty: Easy, Timestamp: 1000}
	require.NoError(t, repo.SaveScoreEvent(ctx, first))
	require.NoError(t, repo.SaveScoreEvent(ctx, second))
	assert.Equal(t, int64(1001), second.Timestamp)

	events, err := repo.ListScoreEvents(ctx, "1", 10)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "b", events[0].ID)
	assert.Equal(t, "a", events[1].ID)

	limited, err := repo.ListScoreEvents(ctx, "1", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestStoreRepository_UpdateProgress(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	_, err := repo.UpdateProgress(ctx, "1", GameResult{Score: 150, Difficulty: Easy, Level: 1}, testNow)
	require.NoError(t, err)
	p, err := repo.UpdateProgress(ctx, "1", GameResult{Score: 80, Difficulty: Easy, Level: 2}, testNow)
	require.NoError(t, err)
	_, err = repo.UpdateProgress(ctx, "1", GameResult{Score: 900, Difficulty: Hard, Level: 6, Completed: true}, testNow)
	require.NoError(t, err)

	assert.Equal(t, 150, p.HighScore)
	assert.Equal(t, 2, p.Attempts)
	assert.Equal(t, 230, p.TotalScore)

	progress, err := repo.GetProgress(ctx, "1")
	require.NoError(t, err)
	assert.Len(t, progress, 2)
	assert.Equal(t, p.HighScore, progress[Easy].HighScore)
	assert.True(t, progress.Completed(Hard))
	assert.False(t, progress.Completed(Medium))
}

func TestStoreRepository_UpdateGlobalStatsConcurrent(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	const players = 40
	var wg sync.WaitGroup
	for i := 0; i < players; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.UpdateGlobalStats(ctx, "1", GameResult{Score: 10, Difficulty: Easy, Level: 1}, testNow)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	stats, ok, err := repo.GetGlobalStats(ctx, "1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, players, stats.TotalGames, "no increment may be lost")
	assert.Equal(t, players*10, stats.TotalScore)
	assert.Equal(t, 10, stats.AverageScore)
}

func TestStoreRepository_GetGlobalStatsMissing(t *testing.T) {
	repo := newTestRepository(t)

	_, ok, err := repo.GetGlobalStats(context.Background(), "404")
	require.NoError(t, err)
	assert.False(t, ok)
}
