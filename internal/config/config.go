// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config reads process-level settings from the environment and
// optional .env files.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paper-digest/internal/secrets"
	"github.com/pdiddy/paper-digest/pkg/types"
)

// Env holds settings that come from the process environment rather than
// the YAML config file.
type Env struct {
	Environment string `envconfig:"ENVIRONMENT" default:"production"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	GeminiAPIKey    string `envconfig:"GEMINI_API_KEY"`
	AnthropicAPIKey string `envconfig:"ANTHROPIC_API_KEY"`
	CrossRefMailto  string `envconfig:"CROSSREF_MAILTO"`

	// SecretsDir holds one file per key (see package secrets).
	SecretsDir string `envconfig:"PAPER_DIGEST_SECRETS_DIR" default:".secrets"`
}

// Load reads a YAML config file over types.DefaultDigestConfig and
// validates the result. An empty path yields the defaults.
func Load(path string) (types.DigestConfig, error) {
	cfg := types.DefaultDigestConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("reading config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadEnv processes the environment into Env.
func LoadEnv() (Env, error) {
	var env Env
	if err := envconfig.Process("", &env); err != nil {
		return Env{}, fmt.Errorf("reading environment: %w", err)
	}
	return env, nil
}

// LoadDotEnv loads the first readable file among paths into the process
// environment without overriding variables that are already set. It
// returns the file loaded, or "" when none was found.
func LoadDotEnv(paths ...string) (string, error) {
	for _, p := range paths {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return "", fmt.Errorf("loading %s: %w", p, err)
		}
		return p, nil
	}
	return "", nil
}

// APIKey returns the key for provider from the environment, falling back to
// the secrets directory.
func (e Env) APIKey(provider types.Provider, s secrets.Secrets) string {
	var key string
	switch provider {
	case types.ProviderClaude:
		key = e.AnthropicAPIKey
	default:
		key = e.GeminiAPIKey
	}
	if key == "" {
		key = s.APIKey(provider)
	}
	return key
}

// Apply fills credentials in cfg that the config file left empty.
func (e Env) Apply(cfg *types.DigestConfig, s secrets.Secrets) {
	if cfg.Enrichment.APIKey == "" {
		cfg.Enrichment.APIKey = e.APIKey(cfg.Enrichment.Provider, s)
	}
	if cfg.Sources.CrossRefMailto == "" {
		cfg.Sources.CrossRefMailto = e.CrossRefMailto
	}
	if cfg.Sources.CrossRefMailto == "" {
		cfg.Sources.CrossRefMailto = s[secrets.CrossRefMailto]
	}
}
