package parsing

import (
	"regexp"

	"github.com/mofa-org/devpage/internal/types"
)

// AchievementsFormat identifies a serialization of the achievements document.
type AchievementsFormat string

const (
	FormatMarkdown AchievementsFormat = "markdown"
	FormatYAML     AchievementsFormat = "yaml"
)

var (
	markdownHeading = regexp.MustCompile(`(?m)^\s*#{2,3} \S`)
	yamlTopLevelKey = regexp.MustCompile(`(?m)^(awards|repositories|activities|githubUsername|enableGithubStats):`)
)

// DetectAchievementsFormat sniffs the document shape. Markdown section
// headings win; otherwise top-level YAML keys select the YAML format. Anything
// else is read as Markdown, which yields an empty document for unknown text.
func DetectAchievementsFormat(content string) AchievementsFormat {
	content = NormalizeNewlines(content)
	if markdownHeading.MatchString(content) {
		return FormatMarkdown
	}
	if yamlTopLevelKey.MatchString(content) {
		return FormatYAML
	}
	return FormatMarkdown
}

// ParseAchievements parses either achievements format into the canonical document.
func ParseAchievements(content string) *types.AchievementsDocument {
	if DetectAchievementsFormat(content) == FormatYAML {
		return ParseYAMLAchievements(content)
	}
	return ParseMarkdownAchievements(content)
}
