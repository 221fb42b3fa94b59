// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/mofa-org/devpage/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// more writes the "... and N more" trailer when a list was cut.
func more(sb *strings.Builder, total, shown int, noun string) {
	if total > shown {
		fmt.Fprintf(sb, "... and %d more %s\n", total-shown, noun)
	}
}

// PrintMapping outputs the registered usernames and their config documents.
func (p *Printer) PrintMapping(entries []types.MappingEntry) {
	if len(entries) == 0 {
		p.printBox("DEVELOPER MAPPING", "No developers registered")
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Registered developers: %d\n\n", len(entries))
	for _, e := range entries {
		fmt.Fprintf(&sb, "%s\n", e.Username)
		fmt.Fprintf(&sb, "  %s\n", e.ConfigURL)
	}

	p.printBox("DEVELOPER MAPPING", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintLinks outputs parsed links with their resolved icons.
func (p *Printer) PrintLinks(links []types.LinkEntry) {
	if len(links) == 0 {
		p.printBox("LINKS", "No complete link entries")
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Parsed %d links:\n\n", len(links))
	for i, l := range links {
		fmt.Fprintf(&sb, "• %s\n", l.Name)
		fmt.Fprintf(&sb, "  %s\n", l.URL)
		fmt.Fprintf(&sb, "  icon: %s", l.Icon)
		if l.IconHint != "" {
			fmt.Fprintf(&sb, " (hint %s)", l.IconHint)
		}
		sb.WriteString("\n")
		if i < len(links)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("LINKS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintAchievements outputs a summary of each achievements section.
func (p *Printer) PrintAchievements(doc *types.AchievementsDocument) {
	if doc == nil {
		return
	}

	var sb strings.Builder
	if doc.GithubUsername != "" {
		fmt.Fprintf(&sb, "GitHub:   %s (stats %s)\n", doc.GithubUsername, onOff(doc.EnableGithubStats))
	} else {
		fmt.Fprintf(&sb, "GitHub:   - (stats %s)\n", onOff(doc.EnableGithubStats))
	}
	sb.WriteString("\n")

	if len(doc.Contributions) > 0 {
		sb.WriteString("Contributions:\n")
		count := min(len(doc.Contributions), maxItemsToShow)
		for _, c := range doc.Contributions[:count] {
			fmt.Fprintf(&sb, "  • %s: %s\n", c.Repo, c.Role)
		}
		more(&sb, len(doc.Contributions), count, "contributions")
		sb.WriteString("\n")
	}

	if len(doc.Awards) > 0 {
		sb.WriteString("Awards:\n")
		count := min(len(doc.Awards), maxItemsToShow)
		for _, a := range doc.Awards[:count] {
			fmt.Fprintf(&sb, "  • %s", a.Title)
			if a.Award != "" {
				fmt.Fprintf(&sb, " (%s)", a.Award)
			}
			sb.WriteString("\n")
		}
		more(&sb, len(doc.Awards), count, "awards")
		sb.WriteString("\n")
	}

	if len(doc.Repositories) > 0 {
		sb.WriteString("Repositories:\n")
		count := min(len(doc.Repositories), maxItemsToShow)
		for _, r := range doc.Repositories[:count] {
			fmt.Fprintf(&sb, "  • %s ★%d\n", r.Name, r.Stars)
		}
		more(&sb, len(doc.Repositories), count, "repositories")
		sb.WriteString("\n")
	}

	if len(doc.Activities) > 0 {
		sb.WriteString("Activity:\n")
		count := min(len(doc.Activities), 3)
		for _, a := range doc.Activities[:count] {
			fmt.Fprintf(&sb, "  • %s %s\n", a.Type, a.Repo)
		}
		more(&sb, len(doc.Activities), count, "events")
	}

	p.printBox("ACHIEVEMENTS", strings.TrimRight(sb.String(), "\n"))
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// PrintGithubStats outputs the GitHub profile projection.
func (p *Printer) PrintGithubStats(stats *types.GithubStats) {
	if stats == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Followers:    %d\n", stats.Followers)
	fmt.Fprintf(&sb, "Following:    %d\n", stats.Following)
	fmt.Fprintf(&sb, "Repositories: %d", stats.PublicRepos)
	for _, field := range []struct{ label, value string }{
		{"Company", stats.Company},
		{"Location", stats.Location},
		{"Bio", stats.Bio},
	} {
		if field.value != "" {
			fmt.Fprintf(&sb, "\n%-13s %s", field.label+":", field.value)
		}
	}

	p.printBox("GITHUB STATS", sb.String())
}

// PrintPage outputs a resolved page: its outcome, then each section present.
func (p *Printer) PrintPage(kind string, page *types.ProfilePage) {
	if page == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Host:     %s\n", page.Hostname)
	fmt.Fprintf(&sb, "User:     %s\n", page.Username)
	fmt.Fprintf(&sb, "Page:     %s", kind)
	if page.ConfigURL != "" {
		fmt.Fprintf(&sb, "\nConfig:   %s", page.ConfigURL)
	}
	for i, l := range page.Links {
		if i == 0 {
			sb.WriteString("\n\nCards:")
		}
		fmt.Fprintf(&sb, "\n  %-16s %-8s %s", truncate(l.Name, 16), l.HeightClass, l.ColorTheme)
	}
	p.printBox("RESOLVED PAGE", sb.String())

	p.PrintAchievements(page.Achievements)
	p.PrintGithubStats(page.GithubStats)
}
