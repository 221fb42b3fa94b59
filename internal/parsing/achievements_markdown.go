package parsing

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/mofa-org/devpage/internal/types"
)

// contributionOrg marks a bold repository name as an organization contribution.
const contributionOrg = "mofa-org/"

type recordKind int

const (
	recordNone recordKind = iota
	recordContribution
	recordAward
	recordRepository
)

// markdownState is the section-scoped accumulator for the Markdown format.
// At most one record is being built at any time; kind says which.
type markdownState struct {
	doc     *types.AchievementsDocument
	section string

	kind         recordKind
	contribution types.Contribution
	award        types.Award
	repo         types.Repository
}

func (s *markdownState) reset() {
	s.kind = recordNone
	s.contribution = types.Contribution{}
	s.award = types.Award{}
	s.repo = types.Repository{}
}

func (s *markdownState) sectionHas(words ...string) bool {
	for _, word := range words {
		if !strings.Contains(s.section, word) {
			return false
		}
	}
	return true
}

func inHackathonSection(s *markdownState) bool { return s.sectionHas("Hackathon") }
func inShowcaseSection(s *markdownState) bool  { return s.sectionHas("Repository", "Showcase") }
func inActivitySection(s *markdownState) bool  { return s.sectionHas("GitHub", "Activity") }

func isBuilding(kind recordKind) func(*markdownState) bool {
	return func(s *markdownState) bool { return s.kind == kind }
}

func inShowcaseBuilding(s *markdownState) bool {
	return inShowcaseSection(s) && s.kind == recordRepository
}

var markdownRules = []lineRule[markdownState]{
	// Section headers scope every gated rule below and close any open record.
	{
		pattern: regexp.MustCompile(`^## (.*)$`),
		apply: func(s *markdownState, m []string) {
			s.section = strings.TrimSpace(m[1])
			s.reset()
		},
	},

	// Scalars, valid anywhere.
	{
		pattern: regexp.MustCompile(`GitHub Username:\s*([A-Za-z0-9-]+)`),
		apply: func(s *markdownState, m []string) {
			s.doc.GithubUsername = m[1]
		},
	},
	{
		pattern: regexp.MustCompile(`Enable GitHub stats display:(.*)$`),
		apply: func(s *markdownState, m []string) {
			s.doc.EnableGithubStats = strings.Contains(strings.ToLower(m[1]), "true")
		},
	},

	// Contributions: - **mofa-org/repo** / Role: / Contributions: (commits).
	// Field rules match their label at the start of the line only, so a value
	// that mentions another label does not trigger that label's rule.
	{
		pattern: regexp.MustCompile(`^- \*\*(?:.*?\*\*)?(` + regexp.QuoteMeta(contributionOrg) + `[^*]+)\*\*`),
		apply: func(s *markdownState, m []string) {
			s.reset()
			s.kind = recordContribution
			s.contribution.Repo = strings.TrimSpace(m[1])
		},
	},
	{
		pattern: regexp.MustCompile(`^(?:- )?Role:\s*(.+)`),
		when:    isBuilding(recordContribution),
		apply: func(s *markdownState, m []string) {
			s.contribution.Role = strings.TrimSpace(m[1])
		},
	},
	{
		pattern: regexp.MustCompile(`^(?:- )?Contributions:\s*(.+)`),
		when:    isBuilding(recordContribution),
		apply: func(s *markdownState, m []string) {
			s.contribution.Contributions = strings.TrimSpace(m[1])
			s.doc.Contributions = append(s.doc.Contributions, s.contribution)
			s.reset()
		},
	},

	// Hackathon awards: ### Event / **Award** / **Project** / **Date** (commits).
	{
		pattern: regexp.MustCompile(`^### (.+)$`),
		when:    inHackathonSection,
		apply: func(s *markdownState, m []string) {
			s.reset()
			s.kind = recordAward
			s.award.Title = strings.TrimSpace(m[1])
		},
	},
	{
		pattern: regexp.MustCompile(`^- \*\*Award\*\*:\s*(.+)$`),
		when:    isBuilding(recordAward),
		apply: func(s *markdownState, m []string) {
			s.award.Award = strings.TrimSpace(m[1])
		},
	},
	{
		pattern: regexp.MustCompile(`^- \*\*Project\*\*:\s*(.+)$`),
		when:    isBuilding(recordAward),
		apply: func(s *markdownState, m []string) {
			s.award.Project = strings.TrimSpace(m[1])
		},
	},
	{
		pattern: regexp.MustCompile(`^- \*\*Description\*\*:\s*(.+)$`),
		when:    isBuilding(recordAward),
		apply: func(s *markdownState, m []string) {
			s.award.Description = strings.TrimSpace(m[1])
		},
	},
	{
		pattern: regexp.MustCompile(`^- \*\*Image\*\*:\s*(.+)$`),
		when:    isBuilding(recordAward),
		apply: func(s *markdownState, m []string) {
			s.award.Image = strings.TrimSpace(m[1])
		},
	},
	{
		pattern: regexp.MustCompile(`^- \*\*Cert(?:ificate)? ?(?:Number|No\.?)\*\*:\s*(.+)$`),
		when:    isBuilding(recordAward),
		apply: func(s *markdownState, m []string) {
			s.award.CertNumber = strings.TrimSpace(m[1])
		},
	},
	{
		pattern: regexp.MustCompile(`^- \*\*Date\*\*:\s*(.+)$`),
		when:    isBuilding(recordAward),
		apply: func(s *markdownState, m []string) {
			s.award.Date = strings.TrimSpace(m[1])
			if s.award.Title != "" && s.award.Award != "" && s.award.Project != "" {
				s.doc.Awards = append(s.doc.Awards, s.award)
			}
			s.reset()
		},
	},

	// Repository showcase: - **name** / Description: / Language: / URL: / Stars: (commits).
	{
		pattern: regexp.MustCompile(`^- \*\*([^*]+)\*\*`),
		when:    inShowcaseSection,
		apply: func(s *markdownState, m []string) {
			s.reset()
			s.kind = recordRepository
			s.repo.Name = strings.TrimSpace(m[1])
		},
	},
	{
		pattern: regexp.MustCompile(`^(?:- )?Description:\s*(.+)`),
		when:    inShowcaseBuilding,
		apply: func(s *markdownState, m []string) {
			s.repo.Description = strings.TrimSpace(m[1])
		},
	},
	{
		pattern: regexp.MustCompile(`^(?:- )?Language:\s*(.+)`),
		when:    inShowcaseBuilding,
		apply: func(s *markdownState, m []string) {
			s.repo.Language = strings.TrimSpace(m[1])
		},
	},
	{
		pattern: regexp.MustCompile(`^(?:- )?URL:\s*(\S+)`),
		when:    inShowcaseBuilding,
		apply: func(s *markdownState, m []string) {
			s.repo.URL = m[1]
		},
	},
	{
		pattern: regexp.MustCompile(`^(?:- )?Stars:\s*(.*)$`),
		when:    inShowcaseBuilding,
		apply: func(s *markdownState, m []string) {
			s.repo.Stars = parseStars(m[1])
			if s.repo.Name != "" && s.repo.Description != "" {
				s.doc.Repositories = append(s.doc.Repositories, s.repo)
			}
			s.reset()
		},
	},

	// GitHub activity: - {type} in {repo} ({time}), one line per record.
	{
		pattern: regexp.MustCompile(`^- (.+?) in (.+?) \((.+?)\)`),
		when:    inActivitySection,
		apply: func(s *markdownState, m []string) {
			s.doc.Activities = append(s.doc.Activities, types.Activity{Type: m[1], Repo: m[2], Time: m[3]})
		},
	},
}

// ParseMarkdownAchievements parses the heading-sectioned achievements format.
// Hackathon entries only count under a "## ...Hackathon..." section, showcase
// repositories under "## ...Repository...Showcase..." and activity lines under
// "## ...GitHub...Activity...". A record that is missing a required field when
// its terminating line arrives is dropped.
func ParseMarkdownAchievements(content string) *types.AchievementsDocument {
	state := &markdownState{doc: newAchievementsDocument(false)}

	for _, line := range splitLines(content) {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		applyFirst(state, markdownRules, trimmed)
	}

	return state.doc
}

// parseStars reads a leading integer, ignoring separators like "1,024"; anything else is 0.
func parseStars(value string) int {
	value = strings.TrimSpace(value)
	end := 0
	for end < len(value) && (value[end] >= '0' && value[end] <= '9' || value[end] == ',') {
		end++
	}
	stars, err := strconv.Atoi(strings.ReplaceAll(value[:end], ",", ""))
	if err != nil {
		return 0
	}
	return stars
}

func newAchievementsDocument(enableStats bool) *types.AchievementsDocument {
	return &types.AchievementsDocument{
		EnableGithubStats: enableStats,
		Contributions:     make([]types.Contribution, 0),
		Awards:            make([]types.Award, 0),
		Repositories:      make([]types.Repository, 0),
		Activities:        make([]types.Activity, 0),
	}
}
