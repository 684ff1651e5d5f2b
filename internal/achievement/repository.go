package achievement

import (
	"context"
	"encoding/json"
	"path"

	"github.com/thesrcielos/BananaRealm/internal/store"
)

const achievementsRoot = "achievements"

type Repository interface {
	ListUnlocked(ctx context.Context, userID string) ([]Unlocked, error)
	// SaveUnlocked creates every record that does not exist yet in one batch
	// and returns only those it created.
	SaveUnlocked(ctx context.Context, userID string, unlocked []Unlocked) ([]Unlocked, error)
}

type StoreRepository struct {
	gw store.Gateway
}

func NewStoreRepository(gw store.Gateway) *StoreRepository {
	return &StoreRepository{gw: gw}
}

func (r *StoreRepository) ListUnlocked(ctx context.Context, userID string) ([]Unlocked, error) {
	items, err := store.Children[Unlocked](ctx, r.gw, store.Path(achievementsRoot, userID))
	if err != nil {
		return nil, err
	}
	unlocked := make([]Unlocked, 0, len(items))
	for _, it := range items {
		u := it.Value
		u.ID = it.Key
		unlocked = append(unlocked, u)
	}
	return unlocked, nil
}

func (r *StoreRepository) SaveUnlocked(ctx context.Context, userID string, unlocked []Unlocked) ([]Unlocked, error) {
	records := make(map[string][]byte, len(unlocked))
	for _, u := range unlocked {
		p := store.Path(achievementsRoot, userID, u.ID)
		data, err := json.Marshal(u)
		if err != nil {
			return nil, err
		}
		records[p] = data
	}

	created, err := r.gw.CreateBatch(ctx, records)
	if err != nil {
		return nil, err
	}
	createdIDs := make(map[string]bool, len(created))
	for _, p := range created {
		createdIDs[path.Base(p)] = true
	}

	out := make([]Unlocked, 0, len(created))
	for _, u := range unlocked {
		if createdIDs[u.ID] {
			out = append(out, u)
		}
	}
	return out, nil
}
