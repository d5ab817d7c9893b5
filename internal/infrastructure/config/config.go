package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	ServerURL string `env:"SERVER_URL, default=http://localhost:8000"`
	Env       string `env:"ENV,        default=development"`
	LogLevel  string `env:"LOG_LEVEL,  default=info"`
	DiagAddr  string `env:"DIAG_ADDR,  default=127.0.0.1:9091"`

	Storage StorageConfig
	Imaging ImagingConfig
	Push    PushConfig
}

// StorageConfig selects where the session credential is persisted.
// Backend "file" keeps a JSON file under the state dir; "redis" targets a
// box-local redis for kiosk deployments that share one machine.
type StorageConfig struct {
	Backend     string `env:"STORAGE_BACKEND, default=file"`
	SessionFile string `env:"SESSION_FILE,    default=.weathersafe/session.json"`
	// SealKey, when set, encrypts the session file at rest.
	SealKey   string `env:"SESSION_SEAL_KEY"`
	RedisAddr string `env:"REDIS_ADDR, default=localhost:6379"`
	RedisDB   int    `env:"REDIS_DB,   default=0"`
}

type ImagingConfig struct {
	Host         string `env:"IMAGE_HOST,   default=https://api.cloudinary.com"`
	CloudName    string `env:"IMAGE_CLOUD,  default=dkx4tszqm"`
	UploadPreset string `env:"IMAGE_PRESET, default=WeatherSafePreset"`
}

type PushConfig struct {
	Enabled      bool   `env:"PUSH_ENABLED,       default=true"`
	PollInterval string `env:"PUSH_POLL_INTERVAL, default=30s"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.Storage.Backend != "file" && cfg.Storage.Backend != "redis" {
		return nil, fmt.Errorf("config: unknown storage backend %q", cfg.Storage.Backend)
	}
	return &cfg, nil
}
