// Package sources loads the upstream documents behind a profile page: the
// username mapping, per-user link configs, achievements, GitHub stats and
// icons. Fetch failures are logged and reported as "no data"; they never
// reach the caller as errors.
package sources

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/mofa-org/devpage/internal/cache"
	"github.com/mofa-org/devpage/internal/fetch"
	"github.com/mofa-org/devpage/internal/parsing"
	"github.com/mofa-org/devpage/internal/types"
)

// MappingResolver resolves a username to its config URL using the mapping
// document. Lookups are cached per username, including misses; a failed
// mapping fetch is not cached.
type MappingResolver struct {
	url    string
	cache  *cache.Cache
	ttl    time.Duration
	opts   *fetch.Options
	group  singleflight.Group
	logger *zap.Logger
}

// NewMappingResolver creates a resolver for the mapping document at mappingURL.
func NewMappingResolver(mappingURL string, c *cache.Cache, ttl time.Duration, opts *fetch.Options, logger *zap.Logger) *MappingResolver {
	if c == nil {
		c = cache.New(nil)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MappingResolver{
		url:    mappingURL,
		cache:  c,
		ttl:    ttl,
		opts:   opts,
		logger: logger,
	}
}

func mappingKey(username string) string {
	return "config:" + username
}

// Resolve returns the config URL registered for username.
func (m *MappingResolver) Resolve(ctx context.Context, username string) (string, bool) {
	key := mappingKey(username)
	if value, ok := m.cache.Get(key); ok {
		configURL, _ := value.(string)
		m.logger.Debug("mapping cache hit", zap.String("username", username), zap.Bool("found", configURL != ""))
		return configURL, configURL != ""
	}

	content, err := m.document(ctx)
	if err != nil {
		m.logger.Warn("mapping fetch failed", zap.String("url", m.url), zap.Error(err))
		return "", false
	}

	configURL, found := parsing.ParseMapping(content, username)
	m.cache.Put(key, configURL, m.ttl)
	m.logger.Debug("mapping resolved",
		zap.String("username", username),
		zap.Bool("found", found),
		zap.String("config_url", configURL))

	return configURL, found
}

// document fetches the mapping document. Concurrent misses share one request,
// which is detached from any single caller's cancellation.
func (m *MappingResolver) document(ctx context.Context) (string, error) {
	value, err, shared := m.group.Do(m.url, func() (any, error) {
		return fetch.Text(context.WithoutCancel(ctx), m.url, m.opts)
	})
	if err != nil {
		return "", err
	}
	if shared {
		m.logger.Debug("mapping fetch shared", zap.String("url", m.url))
	}
	return value.(string), nil
}

// Entries fetches the mapping document and returns every entry, bypassing the cache.
func (m *MappingResolver) Entries(ctx context.Context) ([]types.MappingEntry, error) {
	content, err := fetch.Text(ctx, m.url, m.opts)
	if err != nil {
		return nil, err
	}
	return parsing.ParseMappingEntries(content), nil
}
