package icons

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name string
		url  string
		hint string
		want string
	}{
		{name: "absolute hint wins", url: "https://github.com/dev", hint: "https://cdn.example.com/i.svg", want: "https://cdn.example.com/i.svg"},
		{name: "known hint", url: "https://example.com", hint: "github", want: "/icons/github.svg"},
		{name: "known hint keeps its own name", url: "https://x.com/dev", hint: "twitter", want: "/icons/twitter.svg"},
		{name: "unknown hint falls through to domain", url: "https://x.com", hint: "fullicon", want: "/icons/x.svg"},
		{name: "empty hint auto-detects", url: "https://github.com/dev", hint: "", want: "/icons/github.svg"},
		{name: "whatsapp short link", url: "https://wa.me/123", want: "/icons/whatsapp.svg"},
		{name: "whatsapp keyword in path", url: "https://example.com/whatsapp/me", want: "/icons/whatsapp.svg"},
		{name: "wechat keyword is case-insensitive", url: "https://example.com/WeChat?id=1", want: "/icons/wechat.svg"},
		{name: "skype keyword beats domain table", url: "https://github.com/skype-user", want: "/icons/skype.svg"},
		{name: "subdomain substring match", url: "https://space.bilibili.com/123", want: "/icons/bilibili.svg"},
		{name: "hostname is lower-cased", url: "https://WWW.LinkedIn.com/in/dev", want: "/icons/linkedin.svg"},
		{name: "first table entry wins", url: "https://twitter.com/dev", want: "/icons/x.svg"},
		{name: "larksuite", url: "https://acme.larksuite.com/wiki", want: "/icons/lark.svg"},
		{name: "host ending in lark.com is not lark", url: "https://clark.com/me", want: "/icons/home.svg"},
		{name: "host ending in fb.com is not facebook", url: "https://tfb.com/me", want: "/icons/home.svg"},
		{name: "mailto", url: "mailto:dev@example.com", want: "/icons/mail.svg"},
		{name: "tel", url: "tel:+123456", want: "/icons/phone.svg"},
		{name: "unknown domain", url: "https://example.org", want: "/icons/home.svg"},
		{name: "unparseable url", url: "http://[::1", want: "/icons/home.svg"},
		{name: "opaque mailto with odd escapes", url: "mailto:%zz", want: "/icons/mail.svg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.url, tt.hint))
		})
	}
}

func TestResolve_KeywordAndDomainAgree(t *testing.T) {
	// wa.me is in the domain table too; both rules must point at the same icon.
	assert.Equal(t, Path("whatsapp"), Resolve("https://wa.me/4915112345", ""))
	assert.Equal(t, Path("whatsapp"), Resolve("https://web.whatsapp.com/", ""))
}

func TestIsKnown(t *testing.T) {
	assert.True(t, IsKnown("github"))
	assert.True(t, IsKnown("message-square"))
	assert.False(t, IsKnown("fullicon"))
	assert.False(t, IsKnown(""))
}

func TestDomainTableIconsAreKnown(t *testing.T) {
	for _, entry := range domainIcons {
		assert.True(t, IsKnown(entry.icon), "domain %s maps to unknown icon %s", entry.pattern, entry.icon)
	}
}

func TestValidName(t *testing.T) {
	assert.True(t, ValidName("github"))
	assert.True(t, ValidName("message-square"))
	assert.False(t, ValidName(""))
	assert.False(t, ValidName("../secrets"))
	assert.False(t, ValidName("a.b"))
}

func TestPlaceholderSVG(t *testing.T) {
	assert.True(t, strings.HasPrefix(PlaceholderSVG, "<svg "))
	assert.Contains(t, PlaceholderSVG, `viewBox="0 0 24 24"`)
}
