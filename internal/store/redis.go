package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/thesrcielos/BananaRealm/internal/apperrors"
	"github.com/thesrcielos/BananaRealm/internal/logger"
)

const (
	defaultRetryBudget = 5 * time.Second
	minRetryBackoff    = 2 * time.Millisecond
	maxRetryBackoff    = 100 * time.Millisecond
)

// RedisGateway keeps every record as a JSON string under its path and
// indexes children of each parent in a sorted set scored by first write.
type RedisGateway struct {
	rdb         *redis.Client
	prefix      string
	retryBudget time.Duration
	now         func() time.Time
}

func NewRedisGateway(rdb *redis.Client, prefix string) *RedisGateway {
	return &RedisGateway{
		rdb:         rdb,
		prefix:      prefix,
		retryBudget: defaultRetryBudget,
		now:         time.Now,
	}
}

type mutationError struct {
	err error
}

func (e *mutationError) Error() string { return e.err.Error() }

func (g *RedisGateway) key(path string) string {
	return g.prefix + path
}

func (g *RedisGateway) indexKey(parent string) string {
	return g.prefix + parent + ":children"
}

func (g *RedisGateway) index(ctx context.Context, pipe redis.Pipeliner, path string) {
	parent, child := splitPath(path)
	if parent == "" {
		return
	}
	pipe.ZAddNX(ctx, g.indexKey(parent), redis.Z{
		Score:  float64(g.now().UnixMilli()),
		Member: child,
	})
}

func (g *RedisGateway) Read(ctx context.Context, path string) ([]byte, bool, error) {
	val, err := g.rdb.Get(ctx, g.key(path)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	} else if err != nil {
		return nil, false, apperrors.StoreError("Error reading "+path, err)
	}
	return val, true, nil
}

func (g *RedisGateway) List(ctx context.Context, parent string) ([]Child, error) {
	members, err := g.rdb.ZRange(ctx, g.indexKey(parent), 0, -1).Result()
	if err != nil {
		return nil, apperrors.StoreError("Error listing "+parent, err)
	}
	if len(members) == 0 {
		return []Child{}, nil
	}

	keys := make([]string, len(members))
	for i, m := range members {
		keys[i] = g.key(Path(parent, m))
	}
	vals, err := g.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, apperrors.StoreError("Error reading children of "+parent, err)
	}

	children := make([]Child, 0, len(vals))
	for i, v := range vals {
		s, ok := v.(string)
		if !ok {
			continue
		}
		children = append(children, Child{Key: members[i], Raw: []byte(s)})
	}
	return children, nil
}

func (g *RedisGateway) Write(ctx context.Context, path string, value []byte) error {
	_, err := g.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, g.key(path), value, 0)
		g.index(ctx, pipe, path)
		return nil
	})
	if err != nil {
		return apperrors.StoreError("Error writing "+path, err)
	}
	return nil
}

func (g *RedisGateway) Create(ctx context.Context, path string, value []byte) (bool, error) {
	var created *redis.BoolCmd
	_, err := g.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		created = pipe.SetNX(ctx, g.key(path), value, 0)
		g.index(ctx, pipe, path)
		return nil
	})
	if err != nil {
		return false, apperrors.StoreError("Error creating "+path, err)
	}
	return created.Val(), nil
}

func (g *RedisGateway) Update(ctx context.Context, path string, fn Mutation) error {
	key := g.key(path)
	txf := func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, key).Bytes()
		exists := true
		if errors.Is(err, redis.Nil) {
			current, exists = nil, false
		} else if err != nil {
			return err
		}

		next, err := fn(current, exists)
		if err != nil {
			return &mutationError{err: err}
		}
		if next == nil {
			return nil
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, next, 0)
			g.index(ctx, pipe, path)
			return nil
		})
		return err
	}
	return g.watch(ctx, path, txf, key)
}

func (g *RedisGateway) CreateBatch(ctx context.Context, records map[string][]byte) ([]string, error) {
	if len(records) == 0 {
		return []string{}, nil
	}
	paths := make([]string, 0, len(records))
	for p := range records {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	cmds := make([]*redis.BoolCmd, len(paths))
	_, err := g.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, p := range paths {
			cmds[i] = pipe.SetNX(ctx, g.key(p), records[p], 0)
			g.index(ctx, pipe, p)
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.StoreError("Error creating batch", err)
	}

	created := make([]string, 0, len(paths))
	for i, p := range paths {
		if cmds[i].Val() {
			created = append(created, p)
		}
	}
	return created, nil
}

// Patch returns how many records it rewrote. Paths that do not exist are
// skipped.
func (g *RedisGateway) Patch(ctx context.Context, updates []FieldUpdate) (int, error) {
	if len(updates) == 0 {
		return 0, nil
	}

	byPath := make(map[string][]FieldUpdate)
	paths := []string{}
	for _, u := range updates {
		if _, seen := byPath[u.Path]; !seen {
			paths = append(paths, u.Path)
		}
		byPath[u.Path] = append(byPath[u.Path], u)
	}
	keys := make([]string, len(paths))
	for i, p := range paths {
		keys[i] = g.key(p)
	}

	applied := 0
	txf := func(tx *redis.Tx) error {
		applied = 0
		vals, err := tx.MGet(ctx, keys...).Result()
		if err != nil {
			return err
		}

		patched := make(map[string][]byte, len(paths))
		for i, path := range paths {
			raw, ok := vals[i].(string)
			if !ok {
				logger.Warn("Skipping patch of missing record %s", path)
				continue
			}
			doc := map[string]json.RawMessage{}
			if err := json.Unmarshal([]byte(raw), &doc); err != nil {
				return &mutationError{err: fmt.Errorf("%w: %s", apperrors.ErrMalformedRecord, path)}
			}
			for _, u := range byPath[path] {
				enc, err := json.Marshal(u.Value)
				if err != nil {
					return &mutationError{err: err}
				}
				doc[u.Field] = enc
			}
			next, err := json.Marshal(doc)
			if err != nil {
				return &mutationError{err: err}
			}
			patched[g.key(path)] = next
		}
		if len(patched) == 0 {
			return nil
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			for k, v := range patched {
				pipe.Set(ctx, k, v, 0)
			}
			return nil
		})
		if err == nil {
			applied = len(patched)
		}
		return err
	}
	if err := g.watch(ctx, "batch patch", txf, keys...); err != nil {
		return 0, err
	}
	return applied, nil
}

// watch retries txf on optimistic-lock conflicts with jittered exponential
// backoff until it commits, ctx is done or the retry budget is spent.
func (g *RedisGateway) watch(ctx context.Context, what string, txf func(tx *redis.Tx) error, keys ...string) error {
	deadline := time.Now().Add(g.retryBudget)
	for attempt := 0; ; attempt++ {
		err := g.rdb.Watch(ctx, txf, keys...)
		if err == nil {
			return nil
		}

		var mErr *mutationError
		if errors.As(err, &mErr) {
			return mErr.err
		}
		if !errors.Is(err, redis.TxFailedErr) {
			return apperrors.StoreError("Error updating "+what, err)
		}

		wait := retryBackoff(attempt)
		if time.Now().Add(wait).After(deadline) {
			return apperrors.StoreError("Too many concurrent writes on "+what, err)
		}
		logger.Debug("Concurrent write on %s, retrying in %v (attempt %d)", what, wait, attempt+1)
		select {
		case <-ctx.Done():
			return apperrors.StoreError("Gave up updating "+what, ctx.Err())
		case <-time.After(wait):
		}
	}
}

func retryBackoff(attempt int) time.Duration {
	wait := maxRetryBackoff
	if attempt < 6 {
		wait = minRetryBackoff << attempt
		if wait > maxRetryBackoff {
			wait = maxRetryBackoff
		}
	}
	// full jitter
	return minRetryBackoff/2 + rand.N(wait)
}
