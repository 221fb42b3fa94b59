package parsing

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mofa-org/devpage/internal/types"
)

// scalar accepts any YAML scalar as its literal text, so stars: 12 and
// stars: "12" decode the same way.
type scalar string

func (s *scalar) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a scalar, got %s", node.Line, nodeKind(node))
	}
	*s = scalar(node.Value)
	return nil
}

func (s scalar) String() string { return strings.TrimSpace(string(s)) }

func nodeKind(node *yaml.Node) string {
	switch node.Kind {
	case yaml.MappingNode:
		return "mapping"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.AliasNode:
		return "alias"
	default:
		return "document"
	}
}

type yamlAchievements struct {
	GithubUsername    scalar              `yaml:"githubUsername"`
	EnableGithubStats *scalar             `yaml:"enableGithubStats"`
	Awards            []map[string]scalar `yaml:"awards"`
	Repositories      []map[string]scalar `yaml:"repositories"`
	Activities        []map[string]scalar `yaml:"activities"`
}

// DecodeYAMLAchievements strictly decodes the YAML block format. It fails with
// a *ParseError on anything a YAML decoder rejects.
func DecodeYAMLAchievements(content string) (*types.AchievementsDocument, error) {
	var raw yamlAchievements
	if err := yaml.Unmarshal([]byte(NormalizeNewlines(content)), &raw); err != nil {
		return nil, &ParseError{Format: "yaml", Message: "failed to decode achievements", Cause: err}
	}

	doc := newAchievementsDocument(true)
	doc.GithubUsername = raw.GithubUsername.String()
	if raw.EnableGithubStats != nil {
		doc.EnableGithubStats = parseFlag(raw.EnableGithubStats.String())
	}

	for _, item := range raw.Awards {
		addAward(doc, stringFields(item))
	}
	for _, item := range raw.Repositories {
		addRepository(doc, stringFields(item))
	}
	for _, item := range raw.Activities {
		addActivity(doc, stringFields(item))
	}

	return doc, nil
}

// ParseYAMLAchievements parses the YAML block format, falling back to a
// line-oriented reading when the document is not valid YAML.
func ParseYAMLAchievements(content string) *types.AchievementsDocument {
	if doc, err := DecodeYAMLAchievements(content); err == nil {
		return doc
	}
	return parseYAMLBlocksLeniently(content)
}

var topLevelKey = regexp.MustCompile(`^(\w+):\s*(.*)$`)

// parseYAMLBlocksLeniently reads each top-level list as "  - key: value"
// items with quotes stripped from values. Lines it cannot read are skipped.
func parseYAMLBlocksLeniently(content string) *types.AchievementsDocument {
	doc := newAchievementsDocument(true)
	blocks := make(map[string][]map[string]string)

	var (
		block   string
		current map[string]string
	)
	closeItem := func() {
		if block != "" && len(current) > 0 {
			blocks[block] = append(blocks[block], current)
		}
		current = nil
	}

	for _, line := range splitLines(content) {
		if strings.TrimSpace(line) == "" {
			continue
		}

		if m := topLevelKey.FindStringSubmatch(line); m != nil {
			closeItem()
			block = ""
			switch m[1] {
			case "awards", "repositories", "activities":
				block = m[1]
			case "githubUsername":
				doc.GithubUsername = unquote(m[2])
			case "enableGithubStats":
				doc.EnableGithubStats = parseFlag(unquote(m[2]))
			}
			continue
		}
		if block == "" {
			continue
		}

		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "- ") || trimmed == "-" {
			closeItem()
			current = make(map[string]string)
			trimmed = strings.TrimSpace(strings.TrimPrefix(trimmed, "-"))
		}
		if current == nil {
			continue
		}
		key, value, ok := strings.Cut(trimmed, ":")
		key = strings.TrimSpace(key)
		value = unquote(value)
		if ok && key != "" && value != "" {
			current[key] = value
		}
	}
	closeItem()

	for _, item := range blocks["awards"] {
		addAward(doc, item)
	}
	for _, item := range blocks["repositories"] {
		addRepository(doc, item)
	}
	for _, item := range blocks["activities"] {
		addActivity(doc, item)
	}

	return doc
}

func addAward(doc *types.AchievementsDocument, f map[string]string) {
	if f["title"] == "" {
		return
	}
	doc.Awards = append(doc.Awards, types.Award{
		Title:       f["title"],
		Award:       f["rank"],
		Project:     f["project"],
		Date:        f["date"],
		Description: f["description"],
		Team:        f["team"],
		Image:       f["image"],
		CertNumber:  f["certNumber"],
	})
}

func addRepository(doc *types.AchievementsDocument, f map[string]string) {
	if f["name"] == "" {
		return
	}
	doc.Repositories = append(doc.Repositories, types.Repository{
		Name:        f["name"],
		URL:         f["url"],
		Description: f["description"],
		Language:    f["language"],
		Stars:       parseStars(f["stars"]),
	})
}

func addActivity(doc *types.AchievementsDocument, f map[string]string) {
	if f["type"] == "" || f["repo"] == "" {
		return
	}
	doc.Activities = append(doc.Activities, types.Activity{Type: f["type"], Repo: f["repo"], Time: f["time"]})
}

func stringFields(item map[string]scalar) map[string]string {
	fields := make(map[string]string, len(item))
	for key, value := range item {
		if v := value.String(); v != "" {
			fields[key] = v
		}
	}
	return fields
}

func unquote(value string) string {
	return strings.TrimSpace(strings.NewReplacer(`"`, "", `'`, "").Replace(value))
}

func parseFlag(value string) bool {
	flag, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return strings.Contains(strings.ToLower(value), "true")
	}
	return flag
}
