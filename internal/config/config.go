// Package config loads server settings from the environment
package config

import (
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/KirkDiggler/rpg-progression/internal/errors"
)

// Character store backends
const (
	StoreRedis  = "redis"
	StoreSQLite = "sqlite"
)

// Config holds everything the server needs to start
type Config struct {
	GRPCPort int `env:"GRPC_PORT" envDefault:"50051"`

	// Store selects the character repository backend. Level-up and dice
	// sessions always live in Redis.
	Store      string `env:"STORE" envDefault:"redis"`
	SQLitePath string `env:"SQLITE_PATH" envDefault:"progression.db"`

	RedisAddr           string   `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisSentinelMaster string   `env:"REDIS_SENTINEL_MASTER"`
	RedisSentinelAddrs  []string `env:"REDIS_SENTINEL_ADDRS" envSeparator:","`
	RedisPoolSize       int      `env:"REDIS_POOL_SIZE" envDefault:"10"`
	RedisTLS            bool     `env:"REDIS_TLS"`

	LevelUpSessionTTL time.Duration `env:"LEVEL_UP_SESSION_TTL" envDefault:"30m"`
	DiceSessionTTL    time.Duration `env:"DICE_SESSION_TTL" envDefault:"15m"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads the optional .env files, then the environment. Variables are
// read with the PROGRESSION_ prefix.
func Load(envFiles ...string) (*Config, error) {
	if err := loadEnvFiles(envFiles); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: "PROGRESSION_"}); err != nil {
		return nil, errors.InvalidArgumentf("failed to parse environment: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadEnvFiles loads the named files, or .env when none are named. A missing
// default .env is not an error; a missing named file is.
func loadEnvFiles(files []string) error {
	if len(files) == 0 {
		if err := godotenv.Load(); err != nil {
			slog.Debug("no .env file loaded", "error", err)
		}
		return nil
	}

	if err := godotenv.Load(files...); err != nil {
		return errors.InvalidArgumentf("failed to load env files: %v", err)
	}
	return nil
}

// Validate checks ranges and the backend selection
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRange("grpc_port", c.GRPCPort, 1, 65535, vb)
	errors.ValidateEnum("store", c.Store, []string{StoreRedis, StoreSQLite}, vb)
	if c.Store == StoreSQLite {
		errors.ValidateRequired("sqlite_path", c.SQLitePath, vb)
	}

	if c.RedisSentinelMaster != "" {
		if len(c.RedisSentinelAddrs) == 0 {
			vb.RequiredField("redis_sentinel_addrs")
		}
	} else {
		errors.ValidateRequired("redis_addr", c.RedisAddr, vb)
	}
	if c.RedisPoolSize < 0 {
		vb.InvalidField("redis_pool_size", "must not be negative")
	}

	if c.LevelUpSessionTTL <= 0 {
		vb.InvalidField("level_up_session_ttl", "must be positive")
	}
	if c.DiceSessionTTL <= 0 {
		vb.InvalidField("dice_session_ttl", "must be positive")
	}
	if _, ok := parseLevel(c.LogLevel); !ok {
		vb.InvalidField("log_level", "must be debug, info, warn or error")
	}

	return vb.Build()
}

// SlogLevel is the parsed LogLevel; unknown values read as info
func (c *Config) SlogLevel() slog.Level {
	level, _ := parseLevel(c.LogLevel)
	return level
}

func parseLevel(s string) (slog.Level, bool) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, false
	}
	return level, true
}
