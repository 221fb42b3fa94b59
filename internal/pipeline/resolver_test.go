package pipeline

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mofa-org/devpage/internal/cache"
	"github.com/mofa-org/devpage/internal/fetch"
	"github.com/mofa-org/devpage/internal/sources"
	"github.com/mofa-org/devpage/internal/types"
)

type fakeMapping map[string]string

func (f fakeMapping) Resolve(_ context.Context, username string) (string, bool) {
	u, ok := f[username]
	return u, ok
}

type fakeLinks map[string][]types.LinkEntry

func (f fakeLinks) Links(_ context.Context, configURL string) []types.LinkEntry {
	return f[configURL]
}

type fakeAchievements map[string]*types.AchievementsDocument

func (f fakeAchievements) Fetch(_ context.Context, username string) *types.AchievementsDocument {
	return f[username]
}

type fakeStats struct {
	mu     sync.Mutex
	calls  []string
	result *types.GithubStats
}

func (f *fakeStats) Stats(_ context.Context, login string) *types.GithubStats {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, login)
	return f.result
}

type panickingLinks struct{}

func (panickingLinks) Links(context.Context, string) []types.LinkEntry {
	panic("config loader exploded")
}

type countingAchievements struct {
	mu    sync.Mutex
	calls int
	doc   *types.AchievementsDocument
}

func (f *countingAchievements) Fetch(context.Context, string) *types.AchievementsDocument {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.doc
}

func twoLinks() []types.LinkEntry {
	return []types.LinkEntry{
		{Name: "Twitter", URL: "https://x.com/dev1", Icon: "/icons/x.svg"},
		{Name: "Github", URL: "https://github.com/dev1", Icon: "/icons/github.svg"},
	}
}

func TestResolver_Profile(t *testing.T) {
	stats := &fakeStats{result: &types.GithubStats{Followers: 5}}
	resolver := NewResolver(testDomains, Dependencies{
		Mapping: fakeMapping{"dev1": "http://cfg/dev1"},
		Links:   fakeLinks{"http://cfg/dev1": twoLinks()},
		Achievements: fakeAchievements{"dev1": {
			GithubUsername:    "dev-one",
			EnableGithubStats: true,
			Awards:            []types.Award{{Title: "Hack"}},
		}},
		Stats: stats,
	}, zap.NewNop())

	result, err := resolver.Resolve(context.Background(), "dev1.mofa.ai:443")
	require.NoError(t, err)

	assert.Equal(t, KindProfile, result.Kind)
	assert.Equal(t, "profile", result.Kind.String())
	model := result.Model
	assert.Equal(t, "dev1", model.Username)
	assert.Equal(t, "dev1.mofa.ai", model.Hostname)
	assert.Equal(t, "http://cfg/dev1", model.ConfigURL)
	require.Len(t, model.Links, 2)
	assert.Equal(t, types.HeightCompact, model.Links[0].HeightClass)
	assert.Equal(t, types.ColorCoral, model.Links[0].ColorTheme)
	require.NotNil(t, model.Achievements)
	require.NotNil(t, model.GithubStats)
	assert.Equal(t, 5, model.GithubStats.Followers)
	assert.Equal(t, []string{"dev-one"}, stats.calls)
}

func TestResolver_StatsOnlyWhenEnabled(t *testing.T) {
	stats := &fakeStats{result: &types.GithubStats{}}
	resolver := NewResolver(testDomains, Dependencies{
		Mapping: fakeMapping{"dev1": "http://cfg/dev1"},
		Links:   fakeLinks{"http://cfg/dev1": twoLinks()},
		Achievements: fakeAchievements{"dev1": {
			GithubUsername:    "dev-one",
			EnableGithubStats: false,
			Repositories:      []types.Repository{{Name: "r", Description: "d"}},
		}},
		Stats: stats,
	}, nil)

	result, err := resolver.Resolve(context.Background(), "dev1.mofa.ai")
	require.NoError(t, err)
	assert.NotNil(t, result.Model.Achievements)
	assert.Nil(t, result.Model.GithubStats)
	assert.Empty(t, stats.calls)
}

func TestResolver_NoAchievements(t *testing.T) {
	resolver := NewResolver(testDomains, Dependencies{
		Mapping:      fakeMapping{"dev1": "http://cfg/dev1"},
		Links:        fakeLinks{"http://cfg/dev1": twoLinks()},
		Achievements: fakeAchievements{"dev1": {Awards: []types.Award{}}},
	}, nil)

	result, err := resolver.Resolve(context.Background(), "dev1.mofa.ai")
	require.NoError(t, err)
	assert.Equal(t, KindProfile, result.Kind)
	assert.Nil(t, result.Model.Achievements, "an empty document is not rendered")
	assert.Nil(t, result.Model.GithubStats)
}

func TestResolver_DefaultPage(t *testing.T) {
	resolver := NewResolver(testDomains, Dependencies{
		Mapping: fakeMapping{"empty": "http://cfg/empty"},
		Links:   fakeLinks{},
	}, nil)

	t.Run("unknown user", func(t *testing.T) {
		result, err := resolver.Resolve(context.Background(), "ghost.mofa.ai")
		require.NoError(t, err)
		assert.Equal(t, KindDefault, result.Kind)
		assert.Equal(t, "ghost", result.Model.Username)
		assert.Empty(t, result.Model.ConfigURL)
	})

	t.Run("config without links", func(t *testing.T) {
		result, err := resolver.Resolve(context.Background(), "empty.mofa.ai")
		require.NoError(t, err)
		assert.Equal(t, KindDefault, result.Kind)
		assert.Equal(t, "http://cfg/empty", result.Model.ConfigURL)
		assert.Empty(t, result.Model.Links)
	})
}

func TestResolver_HostErrors(t *testing.T) {
	resolver := NewResolver(testDomains, Dependencies{Mapping: fakeMapping{}, Links: fakeLinks{}}, nil)

	_, err := resolver.Resolve(context.Background(), "dev1.example.com")
	var notFound *NotFoundError
	assert.ErrorAs(t, err, &notFound)

	_, err = NewResolver([]string{"ai"}, Dependencies{}, nil).Resolve(context.Background(), "mofa.ai")
	var badRequest *BadRequestError
	assert.ErrorAs(t, err, &badRequest)
}

func TestResolver_CancelledContext(t *testing.T) {
	resolver := NewResolver(testDomains, Dependencies{
		Mapping: fakeMapping{"dev1": "http://cfg/dev1"},
		Links:   fakeLinks{"http://cfg/dev1": twoLinks()},
	}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := resolver.Resolve(ctx, "dev1.mofa.ai")
	var stageErr *StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, StageFetchDocuments, stageErr.Stage)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestResolver_PanickingLinkLoader(t *testing.T) {
	resolver := NewResolver(testDomains, Dependencies{
		Mapping: fakeMapping{"dev1": "http://cfg/dev1"},
		Links:   panickingLinks{},
	}, nil)

	var (
		result *Result
		err    error
	)
	require.NotPanics(t, func() {
		result, err = resolver.Resolve(context.Background(), "dev1.mofa.ai")
	})
	assert.Nil(t, result)
	var stageErr *StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, StageFetchDocuments, stageErr.Stage)
	assert.Contains(t, err.Error(), "config loader exploded")
}

func TestResolver_AchievementsSkippedWithoutLinks(t *testing.T) {
	achievements := &countingAchievements{doc: &types.AchievementsDocument{Awards: []types.Award{{Title: "Hack"}}}}
	resolver := NewResolver(testDomains, Dependencies{
		Mapping:      fakeMapping{"dev1": "http://cfg/dev1", "dev2": "http://cfg/dev2"},
		Links:        fakeLinks{"http://cfg/dev2": twoLinks()},
		Achievements: achievements,
	}, nil)

	result, err := resolver.Resolve(context.Background(), "dev1.mofa.ai")
	require.NoError(t, err)
	assert.Equal(t, KindDefault, result.Kind)
	assert.Equal(t, 0, achievements.calls)

	result, err = resolver.Resolve(context.Background(), "dev2.mofa.ai")
	require.NoError(t, err)
	assert.Equal(t, KindProfile, result.Kind)
	assert.Equal(t, 1, achievements.calls)
	assert.NotNil(t, result.Model.Achievements)
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "default", KindDefault.String())
	assert.Equal(t, "kind(9)", Kind(9).String())
}

// newEndToEnd wires the real sources against a fake raw-file host. files
// receives the host's base URL so documents can point back at it.
func newEndToEnd(t *testing.T, files func(base string) map[string]string) *Resolver {
	t.Helper()
	var docs map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := docs[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	docs = files(srv.URL)

	opts := &fetch.Options{Timeout: 2 * time.Second}
	logger := zap.NewNop()
	return NewResolver(testDomains, Dependencies{
		Mapping: sources.NewMappingResolver(srv.URL+"/developers.md", cache.New(nil), 10*time.Second, opts, logger),
		Links:   sources.NewConfigSource(opts, logger),
		Achievements: sources.NewAchievementsSource(func(u string) string {
			return srv.URL + "/achievements/" + u + "-achievements.md"
		}, opts, logger),
		Stats: sources.NewGitHubSource(func(login string) string {
			return srv.URL + "/users/" + login
		}, "", opts, logger),
	}, logger)
}

func TestResolver_EndToEnd(t *testing.T) {
	resolver := newEndToEnd(t, func(base string) map[string]string {
		return map[string]string{
			"/developers.md": "[dev1][" + base + "/dev1.yml]\n",
			"/dev1.yml":      "twitter:\n  url: https://x.com/dev1\n",
		}
	})

	result, err := resolver.Resolve(context.Background(), "dev1.mofa.ai")
	require.NoError(t, err)

	require.Equal(t, KindProfile, result.Kind)
	require.Len(t, result.Model.Links, 1)
	link := result.Model.Links[0]
	assert.Equal(t, "Twitter", link.Name)
	assert.Equal(t, "/icons/x.svg", link.Icon)
	assert.Equal(t, types.HeightCompact, link.HeightClass)
	assert.Nil(t, result.Model.Achievements)
	assert.Nil(t, result.Model.GithubStats)
}

func TestResolver_EndToEndWithAchievements(t *testing.T) {
	resolver := newEndToEnd(t, func(base string) map[string]string {
		return map[string]string{
			"/developers.md": "[dev1][" + base + "/dev1.yml]\n",
			"/dev1.yml":      "github:\n  url: https://github.com/dev1\nmail:\n  url: mailto:dev1@example.com\n",
			"/achievements/dev1-achievements.md": "GitHub Username: dev1\nEnable GitHub stats display: true\n\n" +
				"## Hackathon Awards\n\n### Spring Hack\n- **Award**: Winner\n- **Project**: Pages\n- **Date**: 2024-04\n",
			"/users/dev1": `{"followers": 7, "public_repos": 3}`,
		}
	})

	result, err := resolver.Resolve(context.Background(), "dev1.mofa-test.workers.dev")
	require.NoError(t, err)

	require.Len(t, result.Model.Links, 2)
	assert.Equal(t, "/icons/mail.svg", result.Model.Links[1].Icon)
	require.NotNil(t, result.Model.Achievements)
	require.Len(t, result.Model.Achievements.Awards, 1)
	require.NotNil(t, result.Model.GithubStats)
	assert.Equal(t, 7, result.Model.GithubStats.Followers)
}

func TestResolver_EndToEndGhost(t *testing.T) {
	resolver := newEndToEnd(t, func(base string) map[string]string {
		return map[string]string{"/developers.md": "[dev1][" + base + "/dev1.yml]\n"}
	})

	result, err := resolver.Resolve(context.Background(), "ghost.mofa.ai")
	require.NoError(t, err)
	assert.Equal(t, KindDefault, result.Kind)
}
