package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds the top-level priorities configuration, loaded from
// ~/.config/priorities/config.toml when present.
type Config struct {
	DBPath  string        `toml:"db_path"`
	Display DisplayConfig `toml:"display"`
}

type DisplayConfig struct {
	// TopN is how many available activities the `now` command prints before
	// folding the rest behind a count.
	TopN int `toml:"top_n"`
}

func defaults() Config {
	return Config{
		Display: DisplayConfig{TopN: 3},
	}
}

// Paths returns the standard XDG-compliant locations.
type Paths struct {
	ConfigDir  string
	ConfigFile string
}

func GetPaths() Paths {
	home, _ := os.UserHomeDir()
	configDir := envOr("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	dir := filepath.Join(configDir, "priorities")
	return Paths{
		ConfigDir:  dir,
		ConfigFile: filepath.Join(dir, "config.toml"),
	}
}

// Load reads the config file, returning defaults when it does not exist.
func Load() (Config, error) {
	cfg := defaults()
	path := GetPaths().ConfigFile

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Display.TopN < 1 {
		cfg.Display.TopN = defaults().Display.TopN
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
