package db

import (
	"context"
	"crypto/tls"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/thesrcielos/BananaRealm/internal/config"
	"github.com/thesrcielos/BananaRealm/internal/logger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB
var Rdb *redis.Client

func Init(cfg *config.Config) error {
	var err error
	DB, err = gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("error connecting to database: %w", err)
	}
	return redisDBConnection(cfg.Redis)
}

func redisDBConnection(cfg config.RedisConfig) error {
	ctx := context.Background()

	var tlsConfig *tls.Config
	if cfg.TLS {
		tlsConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	Rdb = redis.NewClient(&redis.Options{
		Addr:      cfg.Addr,
		Username:  cfg.Username,
		Password:  cfg.Password,
		DB:        cfg.DB,
		TLSConfig: tlsConfig,
	})

	pong, err := Rdb.Ping(ctx).Result()
	if err != nil {
		return fmt.Errorf("redis connection failed: %w", err)
	}
	logger.Info("Redis connected: %s", pong)
	return nil
}
