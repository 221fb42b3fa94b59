package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mofa-org/devpage/internal/server"
	"github.com/mofa-org/devpage/internal/server/ratelimit"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the page server",
	Long:  `Start the HTTP server (and HTTPS when a certificate is configured) that renders developer pages.`,
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	logger, err := newLogger(cfg.Verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	resolver, set := newResolver(cfg, logger)
	srv, err := server.New(server.Config{
		Settings:  cfg,
		Resolver:  resolver,
		Icons:     set.Icons,
		RateLimit: ratelimit.LoadConfig(),
		Logger:    logger.Named("server"),
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
