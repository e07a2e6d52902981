package main

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/MaelVB/Drawsyn-sub000/internal/api"
	"github.com/MaelVB/Drawsyn-sub000/internal/factory"
	"github.com/MaelVB/Drawsyn-sub000/internal/gateway"
	"github.com/MaelVB/Drawsyn-sub000/internal/services/archive"
	"github.com/MaelVB/Drawsyn-sub000/internal/services/identity"
	"github.com/MaelVB/Drawsyn-sub000/internal/services/room"
	redisstorage "github.com/MaelVB/Drawsyn-sub000/internal/storage/redis"
)

// LogConfig controls where and how much the server logs
type LogConfig struct {
	Level      slog.Level
	File       string // optional rotated log file, in addition to stdout
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// serverConfig is everything the server reads from its environment
type serverConfig struct {
	Factory      factory.Config
	Server       api.ServerConfig
	Log          LogConfig
	DevJWTSecret bool
}

// loadConfig reads the environment through getenv
func loadConfig(getenv func(string) string) (serverConfig, error) {
	env := envReader{getenv: getenv}

	sc := serverConfig{
		Server: api.DefaultServerConfig(),
		Log: LogConfig{
			Level:      slog.LevelInfo,
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 7,
		},
	}

	sc.Server.Port = env.int("PORT", sc.Server.Port)

	// Logging
	if lvl := getenv("LOG_LEVEL"); lvl != "" {
		if err := sc.Log.Level.UnmarshalText([]byte(lvl)); err != nil {
			return sc, fmt.Errorf("LOG_LEVEL: %w", err)
		}
	}
	sc.Log.File = getenv("LOG_FILE")
	sc.Log.MaxSizeMB = env.int("LOG_MAX_SIZE_MB", sc.Log.MaxSizeMB)
	sc.Log.MaxBackups = env.int("LOG_MAX_BACKUPS", sc.Log.MaxBackups)
	sc.Log.MaxAgeDays = env.int("LOG_MAX_AGE_DAYS", sc.Log.MaxAgeDays)

	// Storage
	fc := factory.Config{
		WordsPath:     getenv("WORDS_PATH"),
		StorageType:   getenv("STORAGE_TYPE"),
		MongoURI:      getenv("ARCHIVE_MONGO_URI"),
		MongoDatabase: getenv("ARCHIVE_MONGO_DATABASE"),
	}
	if fc.StorageType == factory.StorageTypeRedis {
		redisURL := getenv("REDIS_URL")
		if redisURL == "" {
			return sc, fmt.Errorf("REDIS_URL required when STORAGE_TYPE=redis")
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = redisURL
		fc.RedisConfig = &redisCfg
	}

	// Identity
	fc.Identity = identity.DefaultConfig()
	if secret := getenv("JWT_SECRET"); secret != "" {
		fc.Identity.Secret = []byte(secret)
	} else {
		sc.DevJWTSecret = true
	}
	if issuer, ok := lookup(getenv, "JWT_ISSUER"); ok {
		fc.Identity.Issuer = issuer
	}

	// Rooms
	fc.Room = room.DefaultConfig()
	fc.Room.IdleTimeout = env.duration("IDLE_TIMEOUT", fc.Room.IdleTimeout)
	fc.Room.SweepInterval = env.duration("SWEEP_INTERVAL", fc.Room.SweepInterval)
	fc.Room.GuessPoints = env.int("GUESS_POINTS", fc.Room.GuessPoints)

	// Sockets
	fc.Gateway = gateway.DefaultConfig()
	fc.Gateway.RoundTick = env.duration("ROUND_TICK", fc.Gateway.RoundTick)
	if origins := getenv("ALLOWED_ORIGINS"); origins != "" {
		fc.Gateway.AllowedOrigins = strings.Split(origins, ",")
	}

	fc.Archive = archive.DefaultDispatcherConfig()

	sc.Factory = fc
	return sc, env.err
}

// lookup distinguishes an unset variable from one set to "none"
func lookup(getenv func(string) string, key string) (string, bool) {
	v := getenv(key)
	if v == "" {
		return "", false
	}
	if v == "none" {
		return "", true
	}
	return v, true
}

// envReader keeps the first parse error so loadConfig can read every key linearly
type envReader struct {
	getenv func(string) string
	err    error
}

func (e *envReader) int(key string, def int) int {
	v := e.getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		e.fail(fmt.Errorf("%s: expected a positive integer, got %q", key, v))
		return def
	}
	return n
}

func (e *envReader) duration(key string, def time.Duration) time.Duration {
	v := e.getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		e.fail(fmt.Errorf("%s: expected a positive duration, got %q", key, v))
		return def
	}
	return d
}

func (e *envReader) fail(err error) {
	if e.err == nil {
		e.err = err
	}
}
