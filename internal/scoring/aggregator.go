package scoring

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/thesrcielos/BananaRealm/internal/achievement"
	"github.com/thesrcielos/BananaRealm/internal/apperrors"
	"github.com/thesrcielos/BananaRealm/internal/game"
	"github.com/thesrcielos/BananaRealm/internal/leaderboard"
	"github.com/thesrcielos/BananaRealm/internal/logger"
	"github.com/thesrcielos/BananaRealm/internal/user"
)

type LeaderboardUpdater interface {
	UpdateIfHigher(ctx context.Context, id *user.Identity, difficulty game.Difficulty, score int, meta leaderboard.Meta) error
}

type AchievementEvaluator interface {
	Evaluate(ctx context.Context, id *user.Identity, result game.GameResult) ([]achievement.Unlocked, error)
}

type UsernameResolver interface {
	ResolveUsername(ctx context.Context, userID string) string
}

// Outcome is what a submission produced. Progress and Stats stay nil when
// their step failed.
type Outcome struct {
	Event    *game.ScoreEvent         `json:"event"`
	Progress *game.DifficultyProgress `json:"progress,omitempty"`
	Stats    *game.GlobalStats        `json:"stats,omitempty"`
	Unlocked []achievement.Unlocked   `json:"unlocked"`
}

type Aggregator struct {
	games        game.Repository
	leaderboard  LeaderboardUpdater
	achievements AchievementEvaluator
	names        UsernameResolver
	now          func() time.Time
	newID        func() string
}

func NewAggregator(games game.Repository, lb LeaderboardUpdater, achievements AchievementEvaluator, names UsernameResolver) *Aggregator {
	return &Aggregator{
		games:        games,
		leaderboard:  lb,
		achievements: achievements,
		names:        names,
		now:          time.Now,
		newID:        uuid.NewString,
	}
}

// Submit records one finished game. The score event is written first and
// nothing else runs if it fails; the leaderboard, progress, stats and
// achievement steps follow in that order and a failure in any of them is
// logged without stopping the rest, except that stats are skipped when
// progress could not be saved. Submit returns nil when the caller is not
// authenticated, the result is invalid or the event could not be stored.
func (a *Aggregator) Submit(ctx context.Context, id *user.Identity, result game.GameResult) *Outcome {
	if id == nil {
		logger.Warn("Game submitted without identity: %v", apperrors.ErrUnauthenticated)
		return nil
	}
	if err := result.Validate(); err != nil {
		logger.Warn("Rejected game result from %s: %v", id.UserID, err)
		return nil
	}

	now := a.now()
	event := &game.ScoreEvent{
		ID:         a.newID(),
		UserID:     id.UserID,
		Username:   a.username(ctx, id),
		Score:      result.Score,
		Difficulty: result.Difficulty,
		Level:      result.Level,
		HintsUsed:  result.HintsUsed,
		TimeLeft:   result.TimeLeft,
		Completed:  result.Completed,
		Timestamp:  now.UnixMilli(),
		Date:       now.UTC().Format(time.RFC3339),
	}
	if err := a.games.SaveScoreEvent(ctx, event); err != nil {
		logger.Error("Error saving score for %s: %v", id.UserID, err)
		return nil
	}
	logger.Debug("Score event %s saved for %s", event.ID, event.Username)
	outcome := &Outcome{Event: event, Unlocked: []achievement.Unlocked{}}

	meta := leaderboard.Meta{Timestamp: event.Timestamp, Date: event.Date}
	if err := a.leaderboard.UpdateIfHigher(ctx, id, result.Difficulty, result.Score, meta); err != nil {
		logger.Error("Error updating leaderboard for %s: %v", id.UserID, err)
	}

	progress, err := a.games.UpdateProgress(ctx, id.UserID, result, now)
	if err != nil {
		logger.Error("Error updating progress for %s: %v", id.UserID, err)
	} else {
		outcome.Progress = &progress
		stats, err := a.games.UpdateGlobalStats(ctx, id.UserID, result, now)
		if err != nil {
			logger.Error("Error updating global stats for %s: %v", id.UserID, err)
		} else {
			outcome.Stats = &stats
		}
	}

	unlocked, err := a.achievements.Evaluate(ctx, id, result)
	if err != nil {
		logger.Error("Error checking achievements for %s: %v", id.UserID, err)
	} else {
		outcome.Unlocked = unlocked
	}
	return outcome
}

func (a *Aggregator) username(ctx context.Context, id *user.Identity) string {
	name := a.names.ResolveUsername(ctx, id.UserID)
	if name == user.AnonymousUsername && id.DisplayName != "" {
		return id.DisplayName
	}
	return name
}
