package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/thesrcielos/BananaRealm/internal/logger"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Events   EventsConfig
	Admin    AdminConfig
}

type ServerConfig struct {
	Port                string
	SubmitRatePerMinute int
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type RedisConfig struct {
	Addr      string
	Username  string
	Password  string
	DB        int
	TLS       bool
	KeyPrefix string
}

type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

type EventsConfig struct {
	Channel    string
	InstanceID string
}

type AdminConfig struct {
	UserIDs []string
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode,
	)
}

// Load reads .env when present, then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Warn("File .env not found, using system values")
	}
	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.port", "8080")
	v.SetDefault("submit.rate.per.minute", 30)
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.tls", false)
	v.SetDefault("redis.prefix", "")
	v.SetDefault("jwt.ttl.hours", 72)
	v.SetDefault("events.channel", "banana:events")
	v.SetDefault("instance.id", uuid.New().String())
	v.SetDefault("admin.user.ids", "")
	return v
}

func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:                v.GetString("server.port"),
			SubmitRatePerMinute: v.GetInt("submit.rate.per.minute"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("db.host"),
			Port:     v.GetString("db.port"),
			User:     v.GetString("db.user"),
			Password: v.GetString("db.password"),
			Name:     v.GetString("db.name"),
			SSLMode:  v.GetString("db.sslmode"),
		},
		Redis: RedisConfig{
			Addr:      v.GetString("redis.addr"),
			Username:  v.GetString("redis.username"),
			Password:  v.GetString("redis.password"),
			DB:        v.GetInt("redis.db"),
			TLS:       v.GetBool("redis.tls"),
			KeyPrefix: v.GetString("redis.prefix"),
		},
		JWT: JWTConfig{
			Secret: v.GetString("jwt.secret"),
			TTL:    time.Duration(v.GetInt("jwt.ttl.hours")) * time.Hour,
		},
		Events: EventsConfig{
			Channel:    v.GetString("events.channel"),
			InstanceID: v.GetString("instance.id"),
		},
		Admin: AdminConfig{
			UserIDs: splitList(v.GetString("admin.user.ids")),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// splitList parses a comma separated env value, dropping blanks.
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.Database.Name == "" || c.Database.User == "" {
		return errors.New("database configuration (DB_NAME, DB_USER) is incomplete")
	}
	if c.Redis.Addr == "" {
		return errors.New("REDIS_ADDR is required")
	}
	if c.Server.SubmitRatePerMinute <= 0 {
		return errors.New("SUBMIT_RATE_PER_MINUTE must be positive")
	}
	return nil
}
