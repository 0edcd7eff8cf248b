package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	dc "lari-stats/domain/config"
)

// DefaultPath is used when CONFIG_PATH is unset.
const DefaultPath = "./config.yml"

// Load parses the YAML configuration file at path on top of the defaults.
// A missing file is not an error.
func Load(path string) (*dc.Config, error) {
	c := dc.Defaults()
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &c, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	slog.Info(fmt.Sprintf("Loaded config: %s", path))
	return &c, nil
}

// Resolve loads .env, then the file at $CONFIG_PATH, then applies LARI_* environment overrides.
func Resolve() (*dc.Config, error) {
	// .env is optional
	_ = godotenv.Load()

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = DefaultPath
	}
	c, err := Load(path)
	if err != nil {
		return nil, err
	}
	if err := applyEnv(c); err != nil {
		return nil, err
	}
	return c, nil
}

func applyEnv(c *dc.Config) error {
	str := func(key string, dst *string) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			*dst = v
		}
	}
	str("LARI_HOST", &c.Server.Host)
	str("LARI_FILE", &c.Data.File)
	str("LARI_SHEET", &c.Data.Sheet)
	str("LARI_LOGO", &c.Data.Logo)

	if v := strings.TrimSpace(os.Getenv("LARI_PORT")); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 || port > 65535 {
			return fmt.Errorf("invalid LARI_PORT %q", v)
		}
		c.Server.Port = port
	}
	return nil
}
