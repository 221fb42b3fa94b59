package ratelimit

import (
	"net/http"
	"strings"
	"time"
)

// Rule limits requests whose path matches Path. A Path ending in "/" matches
// every path below it; any other Path must match exactly.
type Rule struct {
	Name    string
	Path    string
	Methods []string // empty means GET and HEAD
	Limit   int      // requests per Window; zero or less means unlimited
	Window  time.Duration
	Burst   int // defaults to Limit
}

// Unlimited reports whether the rule never rejects.
func (r *Rule) Unlimited() bool {
	return r.Limit <= 0 || r.Window <= 0
}

func (r *Rule) allowsMethod(method string) bool {
	if len(r.Methods) == 0 {
		return method == http.MethodGet || method == http.MethodHead
	}
	for _, m := range r.Methods {
		if strings.EqualFold(m, method) {
			return true
		}
	}
	return false
}

var healthRule = Rule{Name: "health", Path: "/health"}

// MatchRule returns the rule applying to path and method, or nil.
// The health check is always unlimited. Exact matches win over prefix
// matches, and longer prefixes win over shorter ones.
func MatchRule(path, method string, rules []Rule) *Rule {
	if path == healthRule.Path {
		rule := healthRule
		return &rule
	}

	var best *Rule
	for i := range rules {
		rule := &rules[i]
		if !rule.allowsMethod(method) {
			continue
		}
		if rule.Path == path {
			return rule
		}
		if strings.HasSuffix(rule.Path, "/") && strings.HasPrefix(path, rule.Path) {
			if best == nil || len(rule.Path) > len(best.Path) {
				best = rule
			}
		}
	}
	return best
}
