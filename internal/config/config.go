package config

import (
	"context"
	"time"

	"github.com/mdobak/go-xerrors"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	APIRoot        string        `env:"CONDUIT_API_ROOT, default=https://conduit.productionready.io/api"`
	RequestTimeout time.Duration `env:"CONDUIT_REQUEST_TIMEOUT, default=5s"`
	PageSize       int64         `env:"CONDUIT_PAGE_SIZE, default=10"`
	SessionPath    string        `env:"CONDUIT_SESSION_PATH, default=conduit-session.db"`
	LogPath        string        `env:"CONDUIT_LOG_PATH, default=conduit.log"`
	LogLevel       string        `env:"CONDUIT_LOG_LEVEL, default=info"`
}

// Load reads configuration from environment variables.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, xerrors.New(err)
	}
	return &cfg, nil
}
