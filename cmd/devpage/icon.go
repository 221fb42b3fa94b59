package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mofa-org/devpage/internal/icons"
)

var iconCmd = &cobra.Command{
	Use:   "icon <url> [hint]",
	Short: "Show the icon path a link would get",
	Example: `  devpage icon https://x.com/dev1
  devpage icon https://example.com/feed rss`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		hint := ""
		if len(args) == 2 {
			hint = args[1]
		}
		_, err := fmt.Fprintln(cmd.OutOrStdout(), icons.Resolve(args[0], hint))
		return err
	},
}

func init() {
	rootCmd.AddCommand(iconCmd)
}
