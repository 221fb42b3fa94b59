// Package icons maps link URLs and optional hints to icon paths.
package icons

import (
	"net/url"
	"strings"
)

// DefaultIcon is returned when nothing else matches.
const DefaultIcon = "home"

// Path returns the local path served for a built-in icon name.
func Path(name string) string {
	return "/icons/" + name + ".svg"
}

// IsKnown reports whether name is a built-in icon.
func IsKnown(name string) bool {
	return builtinIcons[name]
}

// Resolve picks the icon for a link. It never fails:
//  1. an absolute http(s) hint is returned verbatim
//  2. a known built-in hint maps to its local path
//  3. wechat/skype/whatsapp anywhere in the URL win next
//  4. the first domain-table pattern contained in the hostname
//  5. mailto: and tel: schemes
//  6. the home icon
//
// Steps 3 and 4 are skipped when the URL does not parse.
func Resolve(rawURL, hint string) string {
	hint = strings.TrimSpace(hint)
	if hint != "" {
		if strings.HasPrefix(hint, "http") {
			return hint
		}
		if IsKnown(hint) {
			return Path(hint)
		}
	}

	if parsed, err := url.Parse(rawURL); err == nil {
		if icon, ok := matchURL(parsed, rawURL); ok {
			return Path(icon)
		}
	}

	switch {
	case strings.HasPrefix(rawURL, "mailto:"):
		return Path("mail")
	case strings.HasPrefix(rawURL, "tel:"):
		return Path("phone")
	}

	return Path(DefaultIcon)
}

func matchURL(parsed *url.URL, rawURL string) (string, bool) {
	full := strings.ToLower(rawURL)
	for _, keyword := range messagingKeywords {
		if strings.Contains(full, keyword) {
			return keyword, true
		}
	}

	host := strings.ToLower(parsed.Hostname())
	if host == "" {
		return "", false
	}
	for _, entry := range domainIcons {
		if strings.Contains(host, entry.pattern) {
			return entry.icon, true
		}
	}
	return "", false
}
