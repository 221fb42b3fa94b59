package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mofa-org/devpage/internal/observability"
)

var resolveJSON bool

var resolveCmd = &cobra.Command{
	Use:   "resolve <host>",
	Short: "Resolve a host against the live documents and print the page model",
	Example: `  devpage resolve dev1.mofa.ai
  devpage resolve dev1.mofa.ai --json`,
	Args: cobra.ExactArgs(1),
	RunE: runResolve,
}

func init() {
	resolveCmd.Flags().BoolVar(&resolveJSON, "json", false, "Print the page model as JSON")
	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}
	logger := zap.NewNop()
	if cfg.Verbose {
		if logger, err = newLogger(true); err != nil {
			return err
		}
	}

	resolver, _ := newResolver(cfg, logger)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	result, err := resolver.Resolve(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", args[0], err)
	}

	out := cmd.OutOrStdout()
	if resolveJSON {
		return writeJSON(out, map[string]any{
			"kind":  result.Kind.String(),
			"model": result.Model,
		})
	}
	observability.NewPrinter(out).PrintPage(result.Kind.String(), result.Model)
	return nil
}
