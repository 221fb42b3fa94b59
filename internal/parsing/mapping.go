package parsing

import (
	"regexp"

	"github.com/mofa-org/devpage/internal/types"
)

var mappingLine = regexp.MustCompile(`^\[([^\]]+)\]\[([^\]]+)\]$`)

// ParseMapping returns the config URL of the first line mapping exactly
// username (case-sensitive). Lines that are not of the form
// [username][config-url] are ignored.
func ParseMapping(content, username string) (string, bool) {
	for _, line := range splitLines(content) {
		match := mappingLine.FindStringSubmatch(line)
		if match != nil && match[1] == username {
			return match[2], true
		}
	}
	return "", false
}

// ParseMappingEntries returns every mapping line in document order, duplicates included.
func ParseMappingEntries(content string) []types.MappingEntry {
	entries := make([]types.MappingEntry, 0)
	for _, line := range splitLines(content) {
		if match := mappingLine.FindStringSubmatch(line); match != nil {
			entries = append(entries, types.MappingEntry{Username: match[1], ConfigURL: match[2]})
		}
	}
	return entries
}
