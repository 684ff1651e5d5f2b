package game

import (
	"context"
	"sort"
	"strconv"
	"time"

	"github.com/thesrcielos/BananaRealm/internal/store"
)

const (
	scoresRoot      = "scores"
	progressRoot    = "userProgress"
	globalStatsRoot = "globalStats"

	maxEventKeyCollisions = 5
)

type Repository interface {
	SaveScoreEvent(ctx context.Context, event *ScoreEvent) error
	ListScoreEvents(ctx context.Context, userID string, limit int) ([]ScoreEvent, error)
	UpdateProgress(ctx context.Context, userID string, result GameResult, now time.Time) (DifficultyProgress, error)
	UpdateGlobalStats(ctx context.Context, userID string, result GameResult, now time.Time) (GlobalStats, error)
	GetProgress(ctx context.Context, userID string) (ProgressMap, error)
	GetGlobalStats(ctx context.Context, userID string) (GlobalStats, bool, error)
}

type StoreRepository struct {
	gw store.Gateway
}

func NewStoreRepository(gw store.Gateway) *StoreRepository {
	return &StoreRepository{gw: gw}
}

// SaveScoreEvent appends the event under its timestamp. Events are never
// overwritten; a colliding timestamp is bumped by one millisecond.
func (r *StoreRepository) SaveScoreEvent(ctx context.Context, event *ScoreEvent) error {
	for i := 0; i < maxEventKeyCollisions; i++ {
		path := store.Path(scoresRoot, event.UserID, strconv.FormatInt(event.Timestamp, 10))
		created, err := store.Insert(ctx, r.gw, path, event)
		if err != nil {
			return err
		}
		if created {
			return nil
		}
		event.Timestamp++
	}
	return errTooManyCollisions
}

// ListScoreEvents returns the newest events first.
func (r *StoreRepository) ListScoreEvents(ctx context.Context, userID string, limit int) ([]ScoreEvent, error) {
	items, err := store.Children[ScoreEvent](ctx, r.gw, store.Path(scoresRoot, userID))
	if err != nil {
		return nil, err
	}
	events := make([]ScoreEvent, 0, len(items))
	for _, it := range items {
		events = append(events, it.Value)
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp > events[j].Timestamp
	})
	if limit > 0 && len(events) > limit {
		events = events[:limit]
	}
	return events, nil
}

func (r *StoreRepository) UpdateProgress(ctx context.Context, userID string, result GameResult, now time.Time) (DifficultyProgress, error) {
	path := store.Path(progressRoot, userID, string(result.Difficulty))
	progress, _, err := store.Mutate(ctx, r.gw, path, func(cur DifficultyProgress, _ bool) (DifficultyProgress, bool) {
		return cur.Apply(result, now), true
	})
	return progress, err
}

func (r *StoreRepository) UpdateGlobalStats(ctx context.Context, userID string, result GameResult, now time.Time) (GlobalStats, error) {
	path := store.Path(globalStatsRoot, userID)
	stats, _, err := store.Mutate(ctx, r.gw, path, func(cur GlobalStats, _ bool) (GlobalStats, bool) {
		return cur.Apply(result, now), true
	})
	return stats, err
}

func (r *StoreRepository) GetProgress(ctx context.Context, userID string) (ProgressMap, error) {
	items, err := store.Children[DifficultyProgress](ctx, r.gw, store.Path(progressRoot, userID))
	if err != nil {
		return nil, err
	}
	progress := make(ProgressMap, len(items))
	for _, it := range items {
		d := Difficulty(it.Key)
		if !d.Valid() {
			continue
		}
		progress[d] = it.Value
	}
	return progress, nil
}

func (r *StoreRepository) GetGlobalStats(ctx context.Context, userID string) (GlobalStats, bool, error) {
	return store.Get[GlobalStats](ctx, r.gw, store.Path(globalStatsRoot, userID))
}
