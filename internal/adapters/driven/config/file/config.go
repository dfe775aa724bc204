package file

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/trackbot/internal/core/domain"
)

// Load reads the configuration from path (missing file is fine, all
// values can come from the environment), applies environment overrides,
// fills defaults, and validates the result.
func Load(path string) (*domain.Config, error) {
	var cfg domain.Config

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// Environment-only configuration.
	default:
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	applyEnv(&cfg)
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyEnv overrides file values from the environment so secrets can
// stay out of the config file.
func applyEnv(cfg *domain.Config) {
	set := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	set(&cfg.Telegram.Token, "TELEGRAM_BOT_TOKEN")
	set(&cfg.Tracker.URL, "YOUTRACK_URL")
	set(&cfg.Tracker.BacklogQuery, "BACKLOG_QUERY")
	set(&cfg.Auth.HubURL, "YOUTRACK_HUB_URL")
	set(&cfg.Auth.ClientID, "YOUTRACK_CLIENTID")
	set(&cfg.Auth.ClientSecret, "YOUTRACK_CLIENTSECRET")
	set(&cfg.Auth.CallbackURL, "AUTH_CALLBACK_URL")
}
