package cli

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultDBPath is the SQLite database path the persistent store uses
// when neither flag nor config file names one.
const DefaultDBPath = "ticketgrid.db"

// Config is the optional YAML config file. Flags that the user set
// explicitly win over config values; config values win over built-in
// defaults.
type Config struct {
	// Store is the default storage strategy: volatile, session, or
	// persistent.
	Store string `yaml:"store"`

	// DBPath is the SQLite database path for the persistent store.
	DBPath string `yaml:"dbPath"`

	// PageSize is the default grid page size.
	PageSize int `yaml:"pageSize"`
}

// LoadConfig reads a YAML config file. A missing file at the default
// location is not an error; a missing file at an explicitly named
// location is.
func LoadConfig(path string, explicit bool) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) && !explicit {
		return Config{}, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.PageSize < 0 {
		return Config{}, fmt.Errorf("config %s: pageSize must not be negative", path)
	}
	return cfg, nil
}
