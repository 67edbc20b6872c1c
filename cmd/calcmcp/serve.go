package main

import (
	"github.com/spf13/cobra"

	"calcmcp/internal/app"
)

func newServeCmd(opts *cliOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculator tools and prompts over MCP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := signalAwareContext(cmd.Context())
			defer cancel()

			application, err := app.InitializeApplication(ctx, serveConfig(cmd, opts))
			if err != nil {
				return err
			}
			return application.Run(ctx)
		},
	}
	cmd.Flags().String("transport", "", "transport: stdio or http (overrides config)")
	cmd.Flags().String("addr", "", "http listen address (overrides config)")
	return cmd
}
