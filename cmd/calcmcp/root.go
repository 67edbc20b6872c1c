package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"calcmcp/internal/app"
	"calcmcp/internal/infra/config"
)

type cliOptions struct {
	configPath string
	logLevel   string
	output     string
	logger     *zap.Logger
}

func newRootCommand() *cobra.Command {
	opts := cliOptions{
		output: outputText,
		logger: zap.NewNop(),
	}

	root := &cobra.Command{
		Use:           "calcmcp",
		Short:         "Calculator MCP server with arithmetic, statistics and guidance prompts",
		Version:       app.VersionString(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if err := validateOutput(opts.output); err != nil {
				return err
			}
			cfg := zap.NewProductionConfig()
			if opts.logLevel != "" {
				level, err := config.ParseLevel(opts.logLevel)
				if err != nil {
					return err
				}
				cfg.Level = zap.NewAtomicLevelAt(level)
			}
			log, err := cfg.Build()
			if err != nil {
				return err
			}
			opts.logger = log
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			_ = opts.logger.Sync()
		},
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to config file (yaml, json or toml, optional)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	root.PersistentFlags().StringVarP(&opts.output, "output", "o", opts.output, "output format: text, json, yaml, toml")

	root.AddCommand(
		newServeCmd(&opts),
		newListCmd(&opts),
		newCallCmd(&opts),
		newPromptCmd(&opts),
		newValidateCmd(&opts),
		newTokenCmd(&opts),
		newVersionCmd(),
	)
	return root
}

func serveConfig(cmd *cobra.Command, opts *cliOptions) app.ServeConfig {
	return app.ServeConfig{
		ConfigPath:      opts.configPath,
		Flags:           cmd.Flags(),
		BootstrapLogger: opts.logger,
	}
}
