// Package parsing turns the mapping, link config and achievements text documents into typed values.
// All parsers are best effort: malformed lines and incomplete records are dropped, never reported.
package parsing

import (
	"regexp"
	"strings"
)

// NormalizeNewlines converts CRLF and lone CR line endings to LF.
func NormalizeNewlines(content string) string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	return strings.ReplaceAll(content, "\r", "\n")
}

func splitLines(content string) []string {
	return strings.Split(NormalizeNewlines(content), "\n")
}

// lineRule is one entry of an ordered line classifier. Rules are tried top to
// bottom and the first rule whose guard passes and whose pattern matches wins.
type lineRule[S any] struct {
	pattern *regexp.Regexp
	when    func(*S) bool
	apply   func(*S, []string)
}

// applyFirst runs the first matching rule and reports whether one matched.
func applyFirst[S any](state *S, rules []lineRule[S], line string) bool {
	for _, rule := range rules {
		if rule.when != nil && !rule.when(state) {
			continue
		}
		match := rule.pattern.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		rule.apply(state, match)
		return true
	}
	return false
}
