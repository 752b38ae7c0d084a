// Package config defines the storefront application configuration.
package config

import (
	"fmt"
	"strings"

	"github.com/abgdnv/storefront/pkg/configloader"
)

var _ configloader.Validator = (*Config)(nil)

type Config struct {
	Catalog struct {
		Path string `koanf:"path"`
	} `koanf:"catalog"`

	State struct {
		Dir string `koanf:"dir"`
	} `koanf:"state"`

	Log struct {
		Level string `koanf:"level"`
	} `koanf:"log"`
}

// String returns a string representation of the configuration.
func (c *Config) String() string {
	var b strings.Builder
	b.WriteString("\n--- Catalog ---\n")
	b.WriteString(fmt.Sprintf("  catalog.path: %s\n", c.Catalog.Path))
	b.WriteString("\n--- State ---\n")
	b.WriteString(fmt.Sprintf("  state.dir: %s\n", c.State.Dir))
	b.WriteString("\n--- Log ---\n")
	b.WriteString(fmt.Sprintf("  log.level: %s\n", c.Log.Level))
	return b.String()
}

// Validate checks if the configuration values are valid.
func (c *Config) Validate() error {
	if c.Catalog.Path == "" {
		return fmt.Errorf("catalog path is not configured")
	}
	if c.State.Dir == "" {
		return fmt.Errorf("state directory is not configured")
	}
	switch c.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}
	return nil
}
