package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mofa-org/devpage/internal/observability"
	"github.com/mofa-org/devpage/internal/parsing"
	"github.com/mofa-org/devpage/internal/types"
)

var (
	parseJSON   bool
	parseFormat string
)

var parseLinksCmd = &cobra.Command{
	Use:   "parse-links <file>",
	Short: "Parse a local link config document",
	Args:  cobra.ExactArgs(1),
	RunE:  runParseLinks,
}

var parseAchievementsCmd = &cobra.Command{
	Use:   "parse-achievements <file>",
	Short: "Parse a local achievements document (Markdown or YAML)",
	Args:  cobra.ExactArgs(1),
	RunE:  runParseAchievements,
}

func init() {
	parseLinksCmd.Flags().BoolVar(&parseJSON, "json", false, "Print JSON instead of a summary")
	parseAchievementsCmd.Flags().BoolVar(&parseJSON, "json", false, "Print JSON instead of a summary")
	parseAchievementsCmd.Flags().StringVar(&parseFormat, "format", "auto", "Document format: auto, markdown or yaml")

	rootCmd.AddCommand(parseLinksCmd)
	rootCmd.AddCommand(parseAchievementsCmd)
}

func readDocument(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(content), nil
}

func runParseLinks(cmd *cobra.Command, args []string) error {
	content, err := readDocument(args[0])
	if err != nil {
		return err
	}

	links := parsing.ParseLinks(content)
	if parseJSON {
		if links == nil {
			links = []types.LinkEntry{}
		}
		return writeJSON(cmd.OutOrStdout(), links)
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintLinks(links)
	return nil
}

func runParseAchievements(cmd *cobra.Command, args []string) error {
	content, err := readDocument(args[0])
	if err != nil {
		return err
	}

	var doc *types.AchievementsDocument
	switch parseFormat {
	case "auto":
		doc = parsing.ParseAchievements(content)
	case "markdown", "md":
		doc = parsing.ParseMarkdownAchievements(content)
	case "yaml", "yml":
		doc = parsing.ParseYAMLAchievements(content)
	default:
		return fmt.Errorf("unknown format %q (want auto, markdown or yaml)", parseFormat)
	}

	if parseJSON {
		return writeJSON(cmd.OutOrStdout(), doc)
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintAchievements(doc)
	return nil
}
