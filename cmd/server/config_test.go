package main

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MaelVB/Drawsyn-sub000/internal/factory"
	"github.com/MaelVB/Drawsyn-sub000/internal/services/identity"
	"github.com/MaelVB/Drawsyn-sub000/internal/services/room"
)

func envFrom(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig(envFrom(nil))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, slog.LevelInfo, cfg.Log.Level)
	assert.Empty(t, cfg.Log.File)
	assert.True(t, cfg.DevJWTSecret)
	assert.Equal(t, identity.DefaultConfig().Secret, cfg.Factory.Identity.Secret)
	assert.Equal(t, room.DefaultConfig(), cfg.Factory.Room)
	assert.Nil(t, cfg.Factory.RedisConfig)
}

func TestLoadConfigOverrides(t *testing.T) {
	cfg, err := loadConfig(envFrom(map[string]string{
		"PORT":              "9090",
		"LOG_LEVEL":         "debug",
		"LOG_FILE":          "/var/log/drawsyn.log",
		"LOG_MAX_SIZE_MB":   "50",
		"JWT_SECRET":        "s3cret",
		"JWT_ISSUER":        "none",
		"IDLE_TIMEOUT":      "30m",
		"SWEEP_INTERVAL":    "30s",
		"ROUND_TICK":        "250ms",
		"GUESS_POINTS":      "50",
		"STORAGE_TYPE":      "redis",
		"REDIS_URL":         "redis://cache:6379/1",
		"ALLOWED_ORIGINS":   "https://a.example,https://b.example",
		"ARCHIVE_MONGO_URI": "mongodb://mongo:27017",
	}))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, slog.LevelDebug, cfg.Log.Level)
	assert.Equal(t, "/var/log/drawsyn.log", cfg.Log.File)
	assert.Equal(t, 50, cfg.Log.MaxSizeMB)
	assert.False(t, cfg.DevJWTSecret)
	assert.Equal(t, []byte("s3cret"), cfg.Factory.Identity.Secret)
	assert.Empty(t, cfg.Factory.Identity.Issuer)
	assert.Equal(t, 30*time.Minute, cfg.Factory.Room.IdleTimeout)
	assert.Equal(t, 30*time.Second, cfg.Factory.Room.SweepInterval)
	assert.Equal(t, 250*time.Millisecond, cfg.Factory.Gateway.RoundTick)
	assert.Equal(t, 50, cfg.Factory.Room.GuessPoints)
	assert.Equal(t, factory.StorageTypeRedis, cfg.Factory.StorageType)
	require.NotNil(t, cfg.Factory.RedisConfig)
	assert.Equal(t, "redis://cache:6379/1", cfg.Factory.RedisConfig.URL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Factory.Gateway.AllowedOrigins)
	assert.Equal(t, "mongodb://mongo:27017", cfg.Factory.MongoURI)
}

func TestLoadConfigRedisRequiresURL(t *testing.T) {
	_, err := loadConfig(envFrom(map[string]string{"STORAGE_TYPE": "redis"}))
	assert.ErrorContains(t, err, "REDIS_URL")
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"PORT", "http"},
		{"PORT", "-1"},
		{"IDLE_TIMEOUT", "ten minutes"},
		{"ROUND_TICK", "0s"},
		{"LOG_LEVEL", "loud"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			_, err := loadConfig(envFrom(map[string]string{tt.key: tt.value}))
			assert.ErrorContains(t, err, tt.key)
		})
	}
}
