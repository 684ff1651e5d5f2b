package leaderboard

import (
	"context"
	"sort"
	"time"

	"github.com/thesrcielos/BananaRealm/internal/apperrors"
	"github.com/thesrcielos/BananaRealm/internal/game"
	"github.com/thesrcielos/BananaRealm/internal/logger"
	"github.com/thesrcielos/BananaRealm/internal/user"
)

// UsernameResolver looks up the current display name of a user.
type UsernameResolver interface {
	ResolveUsername(ctx context.Context, userID string) string
}

type Service struct {
	repo  Repository
	names UsernameResolver
	now   func() time.Time
}

func NewService(repo Repository, names UsernameResolver) *Service {
	return &Service{repo: repo, names: names, now: time.Now}
}

// UpdateIfHigher keeps the best score per user and difficulty. Equal scores
// never replace the stored entry, so the first player to reach a score keeps
// the earlier timestamp.
func (s *Service) UpdateIfHigher(ctx context.Context, id *user.Identity, difficulty game.Difficulty, score int, meta Meta) error {
	if id == nil {
		return apperrors.ErrUnauthenticated
	}
	username := s.names.ResolveUsername(ctx, id.UserID)
	if username == user.AnonymousUsername && id.DisplayName != "" {
		username = id.DisplayName
	}

	if meta.Timestamp == 0 {
		meta.Timestamp = s.now().UnixMilli()
	}
	if meta.Date == "" {
		meta.Date = time.UnixMilli(meta.Timestamp).UTC().Format(time.RFC3339)
	}

	entry := Entry{
		UserID:     id.UserID,
		Username:   username,
		Score:      score,
		Timestamp:  meta.Timestamp,
		Date:       meta.Date,
		Difficulty: difficulty,
	}
	_, written, err := s.repo.ReplaceIfHigher(ctx, entry)
	if err != nil {
		return err
	}
	if written {
		logger.Info("Leaderboard %s updated for %s: %d", difficulty, username, score)
	}
	return nil
}

// GetTop returns at most limit entries, best first, each with a freshly
// resolved username. Read failures yield an empty board.
func (s *Service) GetTop(ctx context.Context, difficulty game.Difficulty, limit int) []Entry {
	entries, err := s.repo.ListEntries(ctx, difficulty)
	if err != nil {
		logger.Error("Error getting leaderboard %s: %v", difficulty, err)
		return []Entry{}
	}

	now := s.now()
	for i := range entries {
		entries[i].Username = s.names.ResolveUsername(ctx, entries[i].UserID)
		if entries[i].Timestamp == 0 {
			entries[i].Timestamp = now.UnixMilli()
		}
		if entries[i].Date == "" {
			entries[i].Date = now.UTC().Format(time.RFC3339)
		}
	}

	sortEntries(entries)
	if limit >= 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

// GetUserRank is the 1-based position of the user within the top RankWindow
// entries. ok is false when the user has no entry there.
func (s *Service) GetUserRank(ctx context.Context, id *user.Identity, difficulty game.Difficulty) (int, bool) {
	if id == nil {
		return 0, false
	}
	for i, e := range s.GetTop(ctx, difficulty, RankWindow) {
		if e.UserID == id.UserID {
			return i + 1, true
		}
	}
	return 0, false
}

// BackfillUsernames rewrites stored usernames that differ from the current
// profile name, skipping users that resolve to AnonymousUsername. All renames
// are applied in one batch. It returns how many entries were rewritten.
func (s *Service) BackfillUsernames(ctx context.Context) (int, error) {
	renames := []Rename{}
	for _, d := range game.Difficulties {
		entries, err := s.repo.ListEntries(ctx, d)
		if err != nil {
			logger.Error("Error updating leaderboard usernames: %v", err)
			return 0, err
		}
		for _, e := range entries {
			name := s.names.ResolveUsername(ctx, e.UserID)
			if name == user.AnonymousUsername || name == e.Username {
				continue
			}
			renames = append(renames, Rename{Difficulty: d, UserID: e.UserID, Username: name})
		}
	}
	if len(renames) == 0 {
		return 0, nil
	}

	applied, err := s.repo.RenameEntries(ctx, renames)
	if err != nil {
		logger.Error("Error updating leaderboard usernames: %v", err)
		return 0, err
	}
	if applied < len(renames) {
		logger.Warn("%d of %d leaderboard entries vanished before rename", len(renames)-applied, len(renames))
	}
	logger.Info("Updated %d leaderboard usernames", applied)
	return applied, nil
}

func sortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Timestamp != b.Timestamp {
			return a.Timestamp < b.Timestamp
		}
		return a.UserID < b.UserID
	})
}
