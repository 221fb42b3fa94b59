package sources

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/mofa-org/devpage/internal/cache"
	"github.com/mofa-org/devpage/internal/config"
	"github.com/mofa-org/devpage/internal/fetch"
)

// Set bundles every source wired from one configuration.
type Set struct {
	Mapping      *MappingResolver
	Config       *ConfigSource
	Achievements *AchievementsSource
	GitHub       *GitHubSource
	Icons        *IconSource
}

// FromConfig wires all sources against cfg, sharing c and one HTTP client.
func FromConfig(cfg *config.Config, c *cache.Cache, logger *zap.Logger) *Set {
	if logger == nil {
		logger = zap.NewNop()
	}
	if c == nil {
		c = cache.New(&cache.Options{DefaultTTL: cfg.MappingCacheTTL.Std()})
	}
	opts := &fetch.Options{
		Timeout:   cfg.FetchTimeout.Std(),
		UserAgent: fetch.DefaultUserAgent,
		MaxBytes:  fetch.DefaultMaxBytes,
		Client:    &http.Client{},
	}

	return &Set{
		Mapping:      NewMappingResolver(cfg.MappingURL(), c, cfg.MappingCacheTTL.Std(), opts, logger.Named("mapping")),
		Config:       NewConfigSource(opts, logger.Named("config")),
		Achievements: NewAchievementsSource(cfg.AchievementsURL, opts, logger.Named("achievements")),
		GitHub:       NewGitHubSource(cfg.GitHubUserURL, cfg.GitHubToken, opts, logger.Named("github")),
		Icons:        NewIconSource(cfg.IconURL, c, opts, logger.Named("icons")),
	}
}
