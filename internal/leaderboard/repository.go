package leaderboard

import (
	"context"

	"github.com/thesrcielos/BananaRealm/internal/game"
	"github.com/thesrcielos/BananaRealm/internal/store"
)

const leaderboardRoot = "leaderboard"

type Repository interface {
	// ReplaceIfHigher stores entry when the user has no entry yet or the
	// stored score is strictly lower. It reports whether it wrote.
	ReplaceIfHigher(ctx context.Context, entry Entry) (Entry, bool, error)
	ListEntries(ctx context.Context, difficulty game.Difficulty) ([]Entry, error)
	RenameEntries(ctx context.Context, renames []Rename) (int, error)
}

type StoreRepository struct {
	gw store.Gateway
}

func NewStoreRepository(gw store.Gateway) *StoreRepository {
	return &StoreRepository{gw: gw}
}

func entryPath(difficulty game.Difficulty, userID string) string {
	return store.Path(leaderboardRoot, string(difficulty), userID)
}

func (r *StoreRepository) ReplaceIfHigher(ctx context.Context, entry Entry) (Entry, bool, error) {
	path := entryPath(entry.Difficulty, entry.UserID)
	return store.Mutate(ctx, r.gw, path, func(cur Entry, exists bool) (Entry, bool) {
		if exists && entry.Score <= cur.Score {
			return cur, false
		}
		return entry, true
	})
}

func (r *StoreRepository) ListEntries(ctx context.Context, difficulty game.Difficulty) ([]Entry, error) {
	items, err := store.Children[Entry](ctx, r.gw, store.Path(leaderboardRoot, string(difficulty)))
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(items))
	for _, it := range items {
		e := it.Value
		e.UserID = it.Key
		if e.Difficulty == "" {
			e.Difficulty = difficulty
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// RenameEntries returns how many entries were renamed. Entries removed since
// they were listed are not counted.
func (r *StoreRepository) RenameEntries(ctx context.Context, renames []Rename) (int, error) {
	updates := make([]store.FieldUpdate, 0, len(renames))
	for _, rn := range renames {
		updates = append(updates, store.FieldUpdate{
			Path:  entryPath(rn.Difficulty, rn.UserID),
			Field: "username",
			Value: rn.Username,
		})
	}
	return r.gw.Patch(ctx, updates)
}
