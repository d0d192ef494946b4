// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/viper"

	"github.com/pdiddy/paper-digest/internal/config"
	"github.com/pdiddy/paper-digest/internal/taxonomy"
	"github.com/pdiddy/paper-digest/pkg/types"
)

// digestConfig loads the config file found by viper and applies
// PAPER_DIGEST_* overrides and credentials.
func digestConfig() (types.DigestConfig, error) {
	cfg, err := config.Load(viper.ConfigFileUsed())
	if err != nil {
		return cfg, err
	}

	if viper.IsSet("sources.days_back") {
		cfg.Sources.DaysBack = viper.GetInt("sources.days_back")
	}
	if viper.IsSet("enrichment.provider") {
		cfg.Enrichment.Provider = types.Provider(viper.GetString("enrichment.provider"))
	}
	if viper.IsSet("enrichment.model") {
		cfg.Enrichment.Model = viper.GetString("enrichment.model")
	}
	if viper.IsSet("enrichment.policy") {
		cfg.Enrichment.Policy = types.SelectionPolicy(viper.GetString("enrichment.policy"))
	}
	if viper.IsSet("enrichment.max_ai_papers") {
		cfg.Enrichment.MaxAIPapers = viper.GetInt("enrichment.max_ai_papers")
	}

	env.Apply(&cfg, loadedSecrets)
	return cfg, cfg.Validate()
}

// topicTaxonomy returns the taxonomy named by cfg, or the built-in one.
func topicTaxonomy(cfg types.DigestConfig) (taxonomy.Taxonomy, error) {
	if cfg.TaxonomyFile == "" {
		return taxonomy.Default(), nil
	}
	return taxonomy.Load(cfg.TaxonomyFile)
}
