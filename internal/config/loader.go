package config

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New(ctx))
//  2. file (YAML) if TRIBUTE_CONFIG is set
//  3. env (prefix TRIBUTE_)
func Load(ctx context.Context) (*Config, error) {
	base := New(ctx)

	k := koanf.New(".")

	if path := os.Getenv("TRIBUTE_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	// Environment variables: TRIBUTE_ADDR, TRIBUTE_API_KEY, ...
	// Map env keys like TRIBUTE_API_KEY -> api_key (flat keys), preserving
	// underscores to match the koanf tags on the struct.
	envProvider := env.Provider("TRIBUTE_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "tribute_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	// Basic validation
	if cfg.Addr == "" {
		return nil, errors.New("addr must not be empty")
	}
	if cfg.OracleBaseURL == "" {
		return nil, errors.New("oracle_base_url must not be empty")
	}
	if cfg.MaxImageBytes <= 0 {
		return nil, errors.New("max_image_bytes must be positive")
	}
	for _, tier := range cfg.Tiers {
		if strings.TrimSpace(tier.Label) == "" {
			return nil, errors.New("tier label must not be empty")
		}
		if tier.MinCoins < 0 || tier.MinActivity < 0 {
			return nil, errors.New("tier thresholds must be non-negative")
		}
	}
	return &cfg, nil
}
