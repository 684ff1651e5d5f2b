// Package storetest wires a RedisGateway to an in-process miniredis for tests.
package storetest

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/thesrcielos/BananaRealm/internal/store"
)

func NewRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return rdb, mr
}

func NewGateway(t *testing.T) (*store.RedisGateway, *miniredis.Miniredis) {
	t.Helper()
	rdb, mr := NewRedis(t)
	return store.NewRedisGateway(rdb, ""), mr
}
