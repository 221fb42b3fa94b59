package sources

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/mofa-org/devpage/internal/cache"
	"github.com/mofa-org/devpage/internal/fetch"
	"github.com/mofa-org/devpage/internal/icons"
)

// IconCacheTTL is how long a proxied icon is kept.
const IconCacheTTL = 24 * time.Hour

// IconSource proxies SVG icons from the asset repository.
type IconSource struct {
	urlFor  func(name string) string
	fetcher *fetch.CachedFetcher
	logger  *zap.Logger
}

// NewIconSource creates an IconSource that caches fetched icons in c.
func NewIconSource(urlFor func(name string) string, c *cache.Cache, opts *fetch.Options, logger *zap.Logger) *IconSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	fetcher := fetch.NewCachedFetcher(c, &fetch.CachedFetcherConfig{
		CacheTTL:  IconCacheTTL,
		Options:   opts,
		KeyPrefix: "icon:",
	})
	return &IconSource{urlFor: urlFor, fetcher: fetcher, logger: logger}
}

// SVG returns the icon called name. When the name is invalid or the icon
// cannot be fetched it returns the placeholder and false.
func (s *IconSource) SVG(ctx context.Context, name string) ([]byte, bool) {
	if !icons.ValidName(name) {
		s.logger.Debug("invalid icon name", zap.String("name", name))
		return []byte(icons.PlaceholderSVG), false
	}

	iconURL := s.urlFor(name)
	result, err := s.fetcher.Fetch(ctx, iconURL)
	if err != nil {
		s.logger.Debug("icon fetch failed, serving placeholder", zap.String("name", name), zap.Error(err))
		return []byte(icons.PlaceholderSVG), false
	}
	s.logger.Debug("icon served", zap.String("name", name), zap.Bool("cached", result.FromCache))
	return result.Body, true
}
