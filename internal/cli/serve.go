package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/ossinsight/composer/internal/server"
)

// serveCommand runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		maxBody int64
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout API over HTTP",
		Long: `Serve the layout API over HTTP.

Endpoints:
  POST /v1/layouts      compute a JSON document, respond with layout JSON
  POST /v1/layouts/svg  compute a JSON document, respond with an SVG preview
  GET  /healthz         liveness check

The listen address and body limit default to the [server] section of the
config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := server.Config{
				Addr:         c.Config.Server.Addr,
				MaxBodyBytes: c.Config.Server.MaxBodyBytes,
				Logger:       c.Logger,
				Options:      c.pipelineOptions(),
			}
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}
			if cmd.Flags().Changed("max-body") {
				cfg.MaxBodyBytes = maxBody
			}
			return runServer(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().Int64Var(&maxBody, "max-body", server.DefaultMaxBodyBytes, "maximum request body size in bytes")

	return cmd
}

func runServer(ctx context.Context, cfg server.Config) error {
	printInfo("Listening on %s", cfg.Addr)
	err := server.New(cfg).ListenAndServe(ctx)
	if errors.Is(err, context.Canceled) {
		printSuccess("Server stopped")
		return nil
	}
	return err
}
