package fetch

import (
	"context"
	"time"

	"github.com/mofa-org/devpage/internal/cache"
)

// DefaultCacheTTL is how long a cached body stays fresh.
const DefaultCacheTTL = 24 * time.Hour

// CachedFetcher wraps Get with an in-memory TTL cache keyed by URL.
// Only successful fetches are cached.
type CachedFetcher struct {
	cache    *cache.Cache
	options  *Options
	cacheTTL time.Duration
	prefix   string
}

// CachedFetcherConfig holds configuration for the cached fetcher.
type CachedFetcherConfig struct {
	CacheTTL time.Duration
	Options  *Options
	// KeyPrefix namespaces entries when the cache is shared.
	KeyPrefix string
}

// DefaultCachedFetcherConfig returns sensible defaults.
func DefaultCachedFetcherConfig() *CachedFetcherConfig {
	return &CachedFetcherConfig{
		CacheTTL:  DefaultCacheTTL,
		Options:   DefaultOptions(),
		KeyPrefix: "fetch:",
	}
}

// NewCachedFetcher creates a new cached fetcher backed by c.
func NewCachedFetcher(c *cache.Cache, config *CachedFetcherConfig) *CachedFetcher {
	if config == nil {
		config = DefaultCachedFetcherConfig()
	}
	if config.Options == nil {
		config.Options = DefaultOptions()
	}
	if config.CacheTTL <= 0 {
		config.CacheTTL = DefaultCacheTTL
	}
	if c == nil {
		c = cache.New(nil)
	}
	return &CachedFetcher{
		cache:    c,
		options:  config.Options,
		cacheTTL: config.CacheTTL,
		prefix:   config.KeyPrefix,
	}
}

// CachedResult extends Result with cache metadata.
type CachedResult struct {
	*Result
	FromCache bool
}

// Fetch returns the cached result for urlStr while it is fresh and fetches it otherwise.
func (f *CachedFetcher) Fetch(ctx context.Context, urlStr string) (*CachedResult, error) {
	key := f.prefix + urlStr
	if value, ok := f.cache.Get(key); ok {
		if result, ok := value.(*Result); ok {
			return &CachedResult{Result: result, FromCache: true}, nil
		}
	}

	result, err := Get(ctx, urlStr, f.options)
	if err != nil {
		return nil, err
	}
	f.cache.Put(key, result, f.cacheTTL)

	return &CachedResult{Result: result}, nil
}

// Invalidate drops the cached entry for urlStr.
func (f *CachedFetcher) Invalidate(urlStr string) {
	f.cache.Delete(f.prefix + urlStr)
}
