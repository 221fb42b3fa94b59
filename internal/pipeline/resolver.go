// Package pipeline resolves a request host into the render model of a
// developer page: host validation, username extraction, mapping lookup,
// link config, achievements and GitHub stats.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mofa-org/devpage/internal/layout"
	"github.com/mofa-org/devpage/internal/types"
)

// Stage names a step of the resolution pipeline.
type Stage string

const (
	StageFetchDocuments   Stage = "fetch_documents"
	StageFetchGithubStats Stage = "fetch_github_stats"
)

// Kind is the page a resolution ends on.
type Kind int

const (
	// KindProfile is a developer page with at least one link.
	KindProfile Kind = iota
	// KindDefault is the "no page configured" page for an unknown user or an empty config.
	KindDefault
)

func (k Kind) String() string {
	switch k {
	case KindProfile:
		return "profile"
	case KindDefault:
		return "default"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Result is the outcome of a successful resolution.
// Model is always set; on KindDefault it carries only the username and hostname.
type Result struct {
	Kind  Kind
	Model *types.ProfilePage
}

// MappingLookup resolves a username to its config URL.
type MappingLookup interface {
	Resolve(ctx context.Context, username string) (string, bool)
}

// LinkLoader fetches and parses a link config document.
type LinkLoader interface {
	Links(ctx context.Context, configURL string) []types.LinkEntry
}

// AchievementsLoader fetches a user's achievements; nil means none.
type AchievementsLoader interface {
	Fetch(ctx context.Context, username string) *types.AchievementsDocument
}

// StatsLoader fetches GitHub stats; nil means unavailable.
type StatsLoader interface {
	Stats(ctx context.Context, login string) *types.GithubStats
}

// Dependencies are the upstream loaders used by a Resolver.
// Achievements and Stats are optional.
type Dependencies struct {
	Mapping      MappingLookup
	Links        LinkLoader
	Achievements AchievementsLoader
	Stats        StatsLoader
}

// Resolver runs the resolution pipeline.
type Resolver struct {
	domains []string
	deps    Dependencies
	logger  *zap.Logger
}

// NewResolver creates a Resolver serving subdomains of domains.
func NewResolver(domains []string, deps Dependencies, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{domains: domains, deps: deps, logger: logger}
}

// Resolve maps host to a page. It returns *NotFoundError for hosts outside
// the served domains, *BadRequestError when the host carries no username and
// *StageError when ctx ends during a fetch or a fetch panics.
// Upstream failures never surface as errors: a missing mapping or an empty
// link list yields KindDefault, missing achievements or stats are left nil.
func (r *Resolver) Resolve(ctx context.Context, host string) (*Result, error) {
	start := time.Now()
	hostname := NormalizeHost(host)

	if err := ValidateHost(hostname, r.domains); err != nil {
		return nil, err
	}
	username, err := ExtractUsername(hostname)
	if err != nil {
		return nil, err
	}

	logger := r.logger.With(zap.String("username", username), zap.String("host", hostname))
	model := &types.ProfilePage{Username: username, Hostname: hostname, Links: []types.FluidLink{}}

	configURL, ok := r.deps.Mapping.Resolve(ctx, username)
	if !ok {
		logger.Info("no mapping for user", zap.Duration("elapsed", time.Since(start)))
		return &Result{Kind: KindDefault, Model: model}, nil
	}
	model.ConfigURL = configURL

	var links []types.LinkEntry
	if err := runStage(ctx, StageFetchDocuments, func() {
		links = r.deps.Links.Links(ctx, configURL)
	}); err != nil {
		return nil, err
	}
	if len(links) == 0 {
		logger.Info("config has no links", zap.String("config_url", configURL), zap.Duration("elapsed", time.Since(start)))
		return &Result{Kind: KindDefault, Model: model}, nil
	}
	model.Links = layout.AssignFluidLayouts(links)

	var doc *types.AchievementsDocument
	if r.deps.Achievements != nil {
		if err := runStage(ctx, StageFetchDocuments, func() {
			doc = r.deps.Achievements.Fetch(ctx, username)
		}); err != nil {
			return nil, err
		}
	}
	if !doc.IsEmpty() || doc.WantsGithubStats() {
		model.Achievements = doc
	}
	if r.deps.Stats != nil && doc.WantsGithubStats() {
		if err := runStage(ctx, StageFetchGithubStats, func() {
			model.GithubStats = r.deps.Stats.Stats(ctx, doc.GithubUsername)
		}); err != nil {
			return nil, err
		}
	}

	logger.Info("profile resolved",
		zap.Int("links", len(model.Links)),
		zap.Bool("achievements", model.Achievements != nil),
		zap.Bool("github_stats", model.GithubStats != nil),
		zap.Duration("elapsed", time.Since(start)))

	return &Result{Kind: KindProfile, Model: model}, nil
}

// runStage calls fn and reports a panic inside it, or a context that ended
// while it ran, as a *StageError for stage.
func runStage(ctx context.Context, stage Stage, fn func()) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = &StageError{Stage: stage, Cause: fmt.Errorf("panic: %v", rec)}
		}
	}()
	fn()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return &StageError{Stage: stage, Cause: ctxErr}
	}
	return nil
}
