package sources

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/mofa-org/devpage/internal/fetch"
	"github.com/mofa-org/devpage/internal/parsing"
	"github.com/mofa-org/devpage/internal/types"
)

// ConfigSource loads and parses per-user link config documents.
type ConfigSource struct {
	opts   *fetch.Options
	logger *zap.Logger
}

// NewConfigSource creates a ConfigSource.
func NewConfigSource(opts *fetch.Options, logger *zap.Logger) *ConfigSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConfigSource{opts: opts, logger: logger}
}

// Links fetches the config document at configURL and parses its links.
// A failed fetch yields no links.
func (s *ConfigSource) Links(ctx context.Context, configURL string) []types.LinkEntry {
	content, err := fetch.Text(ctx, configURL, s.opts)
	if err != nil {
		s.logger.Warn("config fetch failed", zap.String("url", configURL), zap.Error(err))
		return nil
	}

	links := parsing.ParseLinks(content)
	s.logger.Debug("config parsed", zap.String("url", configURL), zap.Int("links", len(links)))
	return links
}

// AchievementsSource loads per-user achievements documents.
type AchievementsSource struct {
	urlFor func(username string) string
	opts   *fetch.Options
	logger *zap.Logger
}

// NewAchievementsSource creates an AchievementsSource. urlFor maps a username
// to the location of its achievements document.
func NewAchievementsSource(urlFor func(username string) string, opts *fetch.Options, logger *zap.Logger) *AchievementsSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AchievementsSource{urlFor: urlFor, opts: opts, logger: logger}
}

// Fetch returns the parsed achievements of username, or nil when the user has
// no achievements document or it cannot be fetched.
func (s *AchievementsSource) Fetch(ctx context.Context, username string) *types.AchievementsDocument {
	docURL := s.urlFor(username)
	content, err := fetch.Text(ctx, docURL, s.opts)
	if err != nil {
		var fetchErr *fetch.Error
		if errors.As(err, &fetchErr) && fetchErr.NotFound() {
			s.logger.Debug("no achievements document", zap.String("username", username))
		} else {
			s.logger.Warn("achievements fetch failed", zap.String("url", docURL), zap.Error(err))
		}
		return nil
	}

	doc := parsing.ParseAchievements(content)
	s.logger.Debug("achievements parsed",
		zap.String("username", username),
		zap.String("format", string(parsing.DetectAchievementsFormat(content))),
		zap.Int("contributions", len(doc.Contributions)),
		zap.Int("awards", len(doc.Awards)),
		zap.Int("repositories", len(doc.Repositories)),
		zap.Int("activities", len(doc.Activities)))
	return doc
}
