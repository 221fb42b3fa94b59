package main

import (
	"encoding/json"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/mofa-org/devpage/internal/cache"
	"github.com/mofa-org/devpage/internal/config"
	"github.com/mofa-org/devpage/internal/pipeline"
	"github.com/mofa-org/devpage/internal/sources"
)

// loadSettings loads configuration from the environment and --config.
func loadSettings() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.Verbose = true
	}
	return cfg, nil
}

// newLogger builds the process logger. Debug level follows cfg.Verbose.
func newLogger(debug bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	if debug {
		zc.Level.SetLevel(zap.DebugLevel)
	}
	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}

// newResolver wires the upstream sources and the resolution pipeline.
func newResolver(cfg *config.Config, logger *zap.Logger) (*pipeline.Resolver, *sources.Set) {
	set := sources.FromConfig(cfg, cache.New(&cache.Options{DefaultTTL: cfg.MappingCacheTTL.Std()}), logger)
	resolver := pipeline.NewResolver(cfg.Domains(), pipeline.Dependencies{
		Mapping:      set.Mapping,
		Links:        set.Config,
		Achievements: set.Achievements,
		Stats:        set.GitHub,
	}, logger.Named("pipeline"))
	return resolver, set
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
