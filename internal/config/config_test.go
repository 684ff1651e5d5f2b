package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DB_USER", "banana")
	t.Setenv("DB_NAME", "realm")
}

func TestFromViper_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := FromViper(newViper())
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 30, cfg.Server.SubmitRatePerMinute)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 72*time.Hour, cfg.JWT.TTL)
	assert.Equal(t, "banana:events", cfg.Events.Channel)
	assert.NotEmpty(t, cfg.Events.InstanceID)
	assert.Empty(t, cfg.Admin.UserIDs)
}

func TestFromViper_EnvOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("REDIS_PREFIX", "test:")
	t.Setenv("JWT_TTL_HOURS", "1")
	t.Setenv("SUBMIT_RATE_PER_MINUTE", "5")
	t.Setenv("ADMIN_USER_IDS", "1, 42,,")

	cfg, err := FromViper(newViper())
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Equal(t, "test:", cfg.Redis.KeyPrefix)
	assert.Equal(t, time.Hour, cfg.JWT.TTL)
	assert.Equal(t, 5, cfg.Server.SubmitRatePerMinute)
	assert.Equal(t, []string{"1", "42"}, cfg.Admin.UserIDs)
}

func TestFromViper_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DB_USER", "banana")
	t.Setenv("DB_NAME", "realm")

	cfg, err := FromViper(newViper())
	assert.Nil(t, cfg)
	assert.ErrorContains(t, err, "JWT_SECRET")
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: "5432", User: "u", Password: "p", Name: "n", SSLMode: "disable"}
	assert.Equal(t, "host=db user=u password=p dbname=n port=5432 sslmode=disable", d.DSN())
}
