package sources

import (
	"context"
	"errors"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/mofa-org/devpage/internal/fetch"
	"github.com/mofa-org/devpage/internal/types"
)

// GitHubSource reads public profile numbers from the GitHub user API.
type GitHubSource struct {
	urlFor func(login string) string
	opts   *fetch.Options
	logger *zap.Logger
}

// NewGitHubSource creates a GitHubSource. A non-empty token is sent as a
// bearer token.
func NewGitHubSource(urlFor func(login string) string, token string, opts *fetch.Options, logger *zap.Logger) *GitHubSource {
	if logger == nil {
		logger = zap.NewNop()
	}

	var o fetch.Options
	if opts != nil {
		o = *opts
	}
	o.Headers = map[string]string{"Accept": "application/vnd.github+json"}
	if opts != nil {
		for k, v := range opts.Headers {
			o.Headers[k] = v
		}
	}
	if token != "" {
		o.Headers["Authorization"] = "Bearer " + token
	}

	return &GitHubSource{urlFor: urlFor, opts: &o, logger: logger}
}

// Stats returns the user's public stats, or nil when the user does not exist,
// the API fails or the response is not JSON.
func (s *GitHubSource) Stats(ctx context.Context, login string) *types.GithubStats {
	if login == "" {
		return nil
	}

	apiURL := s.urlFor(login)
	result, err := fetch.Get(ctx, apiURL, s.opts)
	if err != nil {
		var fetchErr *fetch.Error
		if errors.As(err, &fetchErr) && fetchErr.NotFound() {
			s.logger.Debug("github user not found", zap.String("login", login))
		} else {
			s.logger.Warn("github stats fetch failed", zap.String("url", apiURL), zap.Error(err))
		}
		return nil
	}

	stats, ok := projectStats(result.Body)
	if !ok {
		s.logger.Warn("github stats response is not a JSON object", zap.String("url", apiURL))
		return nil
	}
	return stats
}

func projectStats(body []byte) (*types.GithubStats, bool) {
	if !gjson.ValidBytes(body) {
		return nil, false
	}
	user := gjson.ParseBytes(body)
	if !user.IsObject() {
		return nil, false
	}

	return &types.GithubStats{
		Followers:   int(user.Get("followers").Int()),
		Following:   int(user.Get("following").Int()),
		PublicRepos: int(user.Get("public_repos").Int()),
		AvatarURL:   user.Get("avatar_url").String(),
		Bio:         user.Get("bio").String(),
		Location:    user.Get("location").String(),
		Company:     user.Get("company").String(),
	}, true
}
