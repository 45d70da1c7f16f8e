package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// StorageMode selects where credentials and sessions persist.
const (
	StorageServer = "server" // MongoDB credentials + Redis session record
	StorageLocal  = "local"  // single sqlite database, no backend required
)

type Config struct {
	Port     string `env:"PORT,     default=8080"`
	Env      string `env:"ENV,      default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	JWTSecret string        `env:"JWT_SECRET, required"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=24h"`

	StorageMode string `env:"STORAGE_MODE, default=local"`

	// Optional YAML override for the permission matrix; empty keeps the
	// built-in matrix.
	PermissionMatrixPath string `env:"PERMISSION_MATRIX_FILE"`

	// Optional JSON file with baseline identities loaded at bootstrap.
	SeedFile string `env:"SEED_FILE"`

	// Login throttle per client IP; LOGIN_RPS=0 disables it.
	LoginRPS   float64 `env:"LOGIN_RPS,   default=1"`
	LoginBurst int     `env:"LOGIN_BURST, default=5"`

	Mongo  MongoConfig
	Redis  RedisConfig
	SQLite SQLiteConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=orgboard"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
	// Owner distinguishes this client's session record from other processes
	// sharing the same Redis.
	Owner string `env:"SESSION_OWNER, default=default"`
}

type SQLiteConfig struct {
	Path string `env:"SQLITE_PATH, default=orgboard.db"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if cfg.StorageMode != StorageServer && cfg.StorageMode != StorageLocal {
		return nil, fmt.Errorf("unsupported STORAGE_MODE %q", cfg.StorageMode)
	}
	return &cfg, nil
}
