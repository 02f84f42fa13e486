package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// DBPath is the SQLite database file. Empty means the per-user default.
	DBPath string `envconfig:"WORKTRACK_DB"`
	Debug  bool   `envconfig:"WORKTRACK_DEBUG" default:"false"`
}

// Load reads configuration from the environment. An unset WORKTRACK_DB
// resolves to ~/.config/worktrack/worktrack.db.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if cfg.DBPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve home directory: %w", err)
		}
		cfg.DBPath = filepath.Join(home, ".config", "worktrack", "worktrack.db")
	}

	return &cfg, nil
}
