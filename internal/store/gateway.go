package store

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/thesrcielos/BananaRealm/internal/logger"
)

// Child is one record listed under a parent path.
type Child struct {
	Key string
	Raw []byte
}

// FieldUpdate sets a single field of the record stored at Path.
type FieldUpdate struct {
	Path  string
	Field string
	Value interface{}
}

// Mutation receives the current encoded record and returns the replacement,
// or nil to leave it untouched. It can run more than once per Update.
type Mutation func(current []byte, exists bool) ([]byte, error)

type Gateway interface {
	Read(ctx context.Context, path string) ([]byte, bool, error)
	List(ctx context.Context, parent string) ([]Child, error)
	Write(ctx context.Context, path string, value []byte) error
	Create(ctx context.Context, path string, value []byte) (bool, error)
	Update(ctx context.Context, path string, fn Mutation) error
	CreateBatch(ctx context.Context, records map[string][]byte) ([]string, error)
	Patch(ctx context.Context, updates []FieldUpdate) (int, error)
}

func Path(parts ...string) string {
	return strings.Join(parts, "/")
}

func splitPath(path string) (string, string) {
	idx := strings.LastIndex(path, "/")
	if idx < 0 {
		return "", path
	}
	return path[:idx], path[idx+1:]
}

type Item[T any] struct {
	Key   string
	Value T
}

// Get decodes the record at path. Undecodable records come back zero-valued.
func Get[T any](ctx context.Context, g Gateway, path string) (T, bool, error) {
	var out T
	raw, ok, err := g.Read(ctx, path)
	if err != nil || !ok {
		return out, ok, err
	}
	return decode[T](path, raw), true, nil
}

func Children[T any](ctx context.Context, g Gateway, parent string) ([]Item[T], error) {
	children, err := g.List(ctx, parent)
	if err != nil {
		return nil, err
	}
	items := make([]Item[T], 0, len(children))
	for _, c := range children {
		items = append(items, Item[T]{
			Key:   c.Key,
			Value: decode[T](Path(parent, c.Key), c.Raw),
		})
	}
	return items, nil
}

func Put[T any](ctx context.Context, g Gateway, path string, value T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return g.Write(ctx, path, data)
}

func Insert[T any](ctx context.Context, g Gateway, path string, value T) (bool, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return false, err
	}
	return g.Create(ctx, path, data)
}

// Mutate runs a typed read-modify-write. fn reports whether the returned value
// must be stored; the result is whatever is stored after the call.
func Mutate[T any](ctx context.Context, g Gateway, path string, fn func(current T, exists bool) (T, bool)) (T, bool, error) {
	var (
		result  T
		written bool
	)
	err := g.Update(ctx, path, func(raw []byte, exists bool) ([]byte, error) {
		var current T
		if exists {
			current = decode[T](path, raw)
		}
		next, write := fn(current, exists)
		if !write {
			result, written = current, false
			return nil, nil
		}
		data, err := json.Marshal(next)
		if err != nil {
			return nil, err
		}
		result, written = next, true
		return data, nil
	})
	if err != nil {
		var zero T
		return zero, false, err
	}
	return result, written, nil
}

func decode[T any](path string, raw []byte) T {
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		logger.Warn("Malformed record at %s, using defaults: %v", path, err)
		var zero T
		return zero
	}
	return out
}
