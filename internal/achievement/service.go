package achievement

import (
	"context"
	"time"

	"github.com/thesrcielos/BananaRealm/internal/apperrors"
	"github.com/thesrcielos/BananaRealm/internal/game"
	"github.com/thesrcielos/BananaRealm/internal/logger"
	"github.com/thesrcielos/BananaRealm/internal/user"
)

// GameReader is the part of the game repository the evaluator reads.
type GameReader interface {
	GetProgress(ctx context.Context, userID string) (game.ProgressMap, error)
	GetGlobalStats(ctx context.Context, userID string) (game.GlobalStats, bool, error)
}

// Notifier announces a fresh unlock to whoever is listening. It must not block
// on slow consumers.
type Notifier interface {
	NotifyUnlocked(ctx context.Context, userID string, unlocked Unlocked)
}

type Service struct {
	repo     Repository
	games    GameReader
	notifier Notifier
	now      func() time.Time
}

func NewService(repo Repository, games GameReader, notifier Notifier) *Service {
	return &Service{repo: repo, games: games, notifier: notifier, now: time.Now}
}

// Evaluate unlocks every catalog entry the user does not hold yet whose
// condition is met after result. New unlocks are written in one batch; an
// achievement that a concurrent evaluation wrote first is not reported again.
func (s *Service) Evaluate(ctx context.Context, id *user.Identity, result game.GameResult) ([]Unlocked, error) {
	if id == nil {
		return nil, apperrors.ErrUnauthenticated
	}

	held, err := s.repo.ListUnlocked(ctx, id.UserID)
	if err != nil {
		return nil, err
	}
	stats, _, err := s.games.GetGlobalStats(ctx, id.UserID)
	if err != nil {
		return nil, err
	}
	progress, err := s.games.GetProgress(ctx, id.UserID)
	if err != nil {
		return nil, err
	}

	owned := make(map[string]bool, len(held))
	for _, u := range held {
		owned[u.ID] = true
	}

	facts := Facts{Result: result, Progress: progress, Stats: stats}
	now := s.now()
	fresh := []Unlocked{}
	for _, a := range catalog {
		if owned[a.ID] || !a.Condition.Met(facts) {
			continue
		}
		fresh = append(fresh, Unlocked{
			ID:             a.ID,
			Title:          a.Title,
			Description:    a.Description,
			Icon:           a.Icon,
			Points:         a.Points,
			UnlockedAt:     now.UnixMilli(),
			UnlockedDate:   now.UTC().Format(time.RFC3339),
			UnlockedInGame: result.Difficulty,
		})
	}
	if len(fresh) == 0 {
		return fresh, nil
	}

	created, err := s.repo.SaveUnlocked(ctx, id.UserID, fresh)
	if err != nil {
		return nil, err
	}

	titles := make([]string, 0, len(created))
	for _, u := range created {
		titles = append(titles, u.Title)
		if s.notifier != nil {
			s.notifier.NotifyUnlocked(ctx, id.UserID, u)
		}
	}
	logger.Info("Achievements unlocked for %s: %v", id.UserID, titles)
	return created, nil
}

func (s *Service) List(ctx context.Context, id *user.Identity) []Unlocked {
	if id == nil {
		logger.Warn("Achievements requested without identity: %v", apperrors.ErrUnauthenticated)
		return []Unlocked{}
	}
	unlocked, err := s.repo.ListUnlocked(ctx, id.UserID)
	if err != nil {
		logger.Error("Error getting achievements: %v", err)
		return []Unlocked{}
	}
	return unlocked
}

// Board lays the whole catalog out with the user's unlock state.
func (s *Service) Board(ctx context.Context, id *user.Identity) Board {
	unlockedAt := map[string]int64{}
	for _, u := range s.List(ctx, id) {
		unlockedAt[u.ID] = u.UnlockedAt
	}

	board := Board{Items: make([]BoardItem, 0, len(catalog)), Total: len(catalog)}
	for _, a := range catalog {
		item := BoardItem{Achievement: a}
		if at, ok := unlockedAt[a.ID]; ok {
			item.Unlocked = true
			item.UnlockedAt = &at
			board.UnlockedCount++
			board.EarnedPoints += a.Points
		}
		board.TotalPoints += a.Points
		board.Items = append(board.Items, item)
	}
	return board
}
