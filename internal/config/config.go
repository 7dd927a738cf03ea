package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	HTTPAddr    string     `env:"HTTP_ADDR" envDefault:":8000"`
	Root        string     `env:"SERVE_ROOT"`
	Index       string     `env:"SPA_INDEX" envDefault:"/index.html"`
	Routes      []string   `env:"SPA_ROUTES" envSeparator:"," envDefault:"/dashboard,/saved,/digest,/settings,/proof,/jt/"`
	HitsDB      string     `env:"HITS_DB"`
	DocsEnabled bool       `env:"DOCS_ENABLED" envDefault:"false"`
	LogLevel    slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	if cfg.Root == "" {
		cfg.Root, err = executableDir()
		if err != nil {
			return nil, fmt.Errorf("resolving serving root: %w", err)
		}
	}
	if cfg.Root, err = filepath.Abs(cfg.Root); err != nil {
		return nil, fmt.Errorf("resolving serving root: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if !strings.HasPrefix(c.Index, "/") || c.Index == "/" {
		return fmt.Errorf("SPA_INDEX %q must be an absolute file path", c.Index)
	}
	for _, r := range c.Routes {
		if !strings.HasPrefix(r, "/") {
			return fmt.Errorf("SPA_ROUTES entry %q must start with /", r)
		}
	}
	return nil
}

// executableDir returns the directory holding the running binary, with
// symlinks resolved.
func executableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}
