package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"calcmcp/internal/app"
)

func newValidateCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration and plugin registration without serving",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			summary, err := app.Validate(cmd.Context(), serveConfig(cmd, opts))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if opts.output != outputText {
				return writeStructured(out, opts.output, summary)
			}
			fmt.Fprintf(out, "ok transport=%s tools=%d prompts=%d etag=%s\n",
				summary.Transport, summary.Tools, summary.Prompts, summary.ETag)
			return nil
		},
	}
}
