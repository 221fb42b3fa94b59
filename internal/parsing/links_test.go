package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLinks(t *testing.T) {
	content := `github:
  url: https://github.com/dev1
  icon: github

twitter:
  url: https://x.com/dev1

blog:
  url: https://dev1.example.com
  icon: https://cdn.example.com/blog.svg

mail:
  url: mailto:dev1@example.com
  icon:
`
	links := ParseLinks(content)
	require.Len(t, links, 4)

	assert.Equal(t, "Github", links[0].Name)
	assert.Equal(t, "https://github.com/dev1", links[0].URL)
	assert.Equal(t, "github", links[0].IconHint)
	assert.Equal(t, "/icons/github.svg", links[0].Icon)

	assert.Equal(t, "Twitter", links[1].Name)
	assert.Equal(t, "/icons/x.svg", links[1].Icon)

	assert.Equal(t, "https://cdn.example.com/blog.svg", links[2].Icon)

	assert.Equal(t, "Mail", links[3].Name)
	assert.Empty(t, links[3].IconHint)
	assert.Equal(t, "/icons/mail.svg", links[3].Icon)
}

func TestParseLinks_DropsRecordWithoutURL(t *testing.T) {
	links := ParseLinks("foo:\nicon: github\nbar:\nurl: http://b\n")

	require.Len(t, links, 1)
	assert.Equal(t, "Bar", links[0].Name)
	assert.Equal(t, "http://b", links[0].URL)
	assert.Equal(t, "/icons/home.svg", links[0].Icon)
}

func TestParseLinks_Completeness(t *testing.T) {
	inputs := []string{
		"",
		"url: http://orphan\n",
		"a:\nb:\nc:\n",
		"a:\n  url: http://a\nb:\n  icon: x\n",
		"a:\r\n  url: http://a\r\nb:\r\n  url: http://b\r\n",
		"just some text\n- bullet\n",
		"last:\n  icon: github",
	}

	for _, input := range inputs {
		for _, link := range ParseLinks(input) {
			assert.NotEmpty(t, link.Name, "input %q", input)
			assert.NotEmpty(t, link.URL, "input %q", input)
			assert.NotEmpty(t, link.Icon, "input %q", input)
		}
	}
}

func TestParseLinks_IgnoresLinesBeforeFirstKey(t *testing.T) {
	links := ParseLinks("url: http://orphan\nicon: github\nsite:\n  url: http://site\n")

	require.Len(t, links, 1)
	assert.Equal(t, "Site", links[0].Name)
}

func TestParseLinks_ReservedKeysDoNotStartRecords(t *testing.T) {
	links := ParseLinks("linkedin:\n  icon:\n  url: https://www.linkedin.com/in/dev1\n")

	require.Len(t, links, 1)
	assert.Equal(t, "Linkedin", links[0].Name)
	assert.Equal(t, "/icons/linkedin.svg", links[0].Icon)
}

func TestParseLinks_LastValueWins(t *testing.T) {
	links := ParseLinks("site:\n  url: http://one\n  url: http://two\n")

	require.Len(t, links, 1)
	assert.Equal(t, "http://two", links[0].URL)
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Github", displayName("github"))
	assert.Equal(t, "X", displayName("x"))
	assert.Equal(t, "My_blog", displayName("my_blog"))
	assert.Equal(t, "", displayName(""))
}
