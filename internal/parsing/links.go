package parsing

import (
	"regexp"
	"strings"

	"github.com/mofa-org/devpage/internal/icons"
	"github.com/mofa-org/devpage/internal/types"
)

// linkState accumulates one link record at a time.
type linkState struct {
	open    bool
	current types.LinkEntry
	links   []types.LinkEntry
}

// flush emits the open record if it has both a name and a URL, and discards it otherwise.
func (s *linkState) flush() {
	if s.open && s.current.Name != "" && s.current.URL != "" {
		s.current.Icon = icons.Resolve(s.current.URL, s.current.IconHint)
		s.links = append(s.links, s.current)
	}
	s.open = false
	s.current = types.LinkEntry{}
}

func (s *linkState) isOpen() bool { return s.open }

// reservedKeys are field names; they never start a record.
var reservedKeys = map[string]bool{"url": true, "icon": true}

var linkRules = []lineRule[linkState]{
	{
		pattern: regexp.MustCompile(`^url:\s*(.+)$`),
		when:    (*linkState).isOpen,
		apply: func(s *linkState, m []string) {
			s.current.URL = strings.TrimSpace(m[1])
		},
	},
	{
		pattern: regexp.MustCompile(`^icon:\s*(.*)$`),
		when:    (*linkState).isOpen,
		apply: func(s *linkState, m []string) {
			s.current.IconHint = strings.TrimSpace(m[1])
		},
	},
	{
		pattern: regexp.MustCompile(`^([a-zA-Z0-9_-]+):\s*$`),
		apply: func(s *linkState, m []string) {
			if reservedKeys[m[1]] {
				return
			}
			s.flush()
			s.open = true
			s.current = types.LinkEntry{Name: displayName(m[1])}
		},
	},
}

// ParseLinks parses a link config document:
//
//	github:
//	  url: https://github.com/dev
//	  icon: github
//
// Each bare "key:" line starts a record named after the key with its first
// letter upper-cased. A record is kept only once it has a URL; records still
// missing one when the next key or the end of input arrives are dropped.
// An empty icon hint means auto-detect.
func ParseLinks(content string) []types.LinkEntry {
	state := &linkState{links: make([]types.LinkEntry, 0)}

	for _, line := range splitLines(content) {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		applyFirst(state, linkRules, trimmed)
	}
	state.flush()

	return state.links
}

func displayName(key string) string {
	if key == "" {
		return key
	}
	return strings.ToUpper(key[:1]) + key[1:]
}
