package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mofa-org/devpage/internal/observability"
	"github.com/mofa-org/devpage/internal/types"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List developers registered in the mapping document",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Print JSON instead of a summary")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}

	_, set := newResolver(cfg, zap.NewNop())
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	entries, err := set.Mapping.Entries(ctx)
	if err != nil {
		return fmt.Errorf("failed to load mapping: %w", err)
	}

	if listJSON {
		if entries == nil {
			entries = []types.MappingEntry{}
		}
		return writeJSON(cmd.OutOrStdout(), entries)
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintMapping(entries)
	return nil
}
