package game

import (
	"context"
	"errors"

	"github.com/thesrcielos/BananaRealm/internal/apperrors"
	"github.com/thesrcielos/BananaRealm/internal/logger"
	"github.com/thesrcielos/BananaRealm/internal/user"
)

var errTooManyCollisions = errors.New("too many score events with the same timestamp")

const defaultHistoryLimit = 20

// StatsService serves the read side of progress and lifetime stats.
// Failures are logged and answered with empty values.
type StatsService struct {
	repo Repository
}

func NewStatsService(repo Repository) *StatsService {
	return &StatsService{repo: repo}
}

// GlobalStats returns nil when the user has never played or the store fails.
func (s *StatsService) GlobalStats(ctx context.Context, id *user.Identity) *GlobalStats {
	if id == nil {
		logger.Warn("Global stats requested without identity: %v", apperrors.ErrUnauthenticated)
		return nil
	}
	stats, ok, err := s.repo.GetGlobalStats(ctx, id.UserID)
	if err != nil {
		logger.Error("Error getting user stats: %v", err)
		return nil
	}
	if !ok {
		return nil
	}
	return &stats
}

func (s *StatsService) Progress(ctx context.Context, id *user.Identity) ProgressMap {
	if id == nil {
		logger.Warn("Progress requested without identity: %v", apperrors.ErrUnauthenticated)
		return ProgressMap{}
	}
	progress, err := s.repo.GetProgress(ctx, id.UserID)
	if err != nil {
		logger.Error("Error getting difficulty stats: %v", err)
		return ProgressMap{}
	}
	return progress
}

func (s *StatsService) History(ctx context.Context, id *user.Identity, limit int) []ScoreEvent {
	if id == nil {
		logger.Warn("History requested without identity: %v", apperrors.ErrUnauthenticated)
		return []ScoreEvent{}
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	events, err := s.repo.ListScoreEvents(ctx, id.UserID, limit)
	if err != nil {
		logger.Error("Error getting score history: %v", err)
		return []ScoreEvent{}
	}
	return events
}
