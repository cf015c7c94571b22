package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

const envPrefix = "SDKVIEW_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (SDKVIEW_*, with __ separating nested keys).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// SDKVIEW_GITHUB__OWNER -> github.owner, SDKVIEW_GAME -> game.
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if cfg.GitHub.Token == "" {
		cfg.GitHub.Token = os.Getenv(TokenEnvVar)
	}
	return cfg, nil
}

// Save writes the configuration to the given YAML file path. The GitHub
// token is never written.
func (c *Config) Save(path string) error {
	out := *c
	out.GitHub.Token = ""
	data, err := yamlv3.Marshal(&out)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	switch c.Source {
	case SourceGitHub:
		if c.GitHub.Owner == "" || c.GitHub.Repo == "" {
			return fmt.Errorf("github.owner and github.repo are required")
		}
		if c.GitHub.APIURL == "" {
			return fmt.Errorf("github.api_url is required")
		}
	case SourceLocal:
		if c.LocalDir == "" {
			return fmt.Errorf("local_dir is required for the local source")
		}
	case "":
		return fmt.Errorf("source is required")
	default:
		return fmt.Errorf("invalid source %q: must be one of github, local", c.Source)
	}

	for _, p := range c.FilePatterns {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("invalid file pattern %q", p)
		}
	}

	if c.MaxConcurrency < 0 {
		return fmt.Errorf("max_concurrency must be non-negative")
	}
	if c.RequestsPerMinute < 0 {
		return fmt.Errorf("requests_per_minute must be non-negative")
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d", c.Server.Port)
	}
	if c.Server.SearchDebounceMS < 0 {
		return fmt.Errorf("server.search_debounce_ms must be non-negative")
	}
	if c.Server.JumpTimeoutMS < 0 {
		return fmt.Errorf("server.jump_timeout_ms must be non-negative")
	}
	return nil
}
