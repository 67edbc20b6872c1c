package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"calcmcp/internal/app"
)

func newPromptCmd(opts *cliOptions) *cobra.Command {
	var (
		pairs   []string
		rawJSON string
	)
	cmd := &cobra.Command{
		Use:   "prompt <name>",
		Short: "Render a prompt in-process",
		Example: `  calcmcp prompt multiplication_table --arg size=9
  calcmcp prompt health_metrics --arg height=175 --arg weight=70 --arg language=en`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			arguments, err := parseArguments(pairs, rawJSON)
			if err != nil {
				return err
			}
			server, err := app.InitializeServer(cmd.Context(), serveConfig(cmd, opts))
			if err != nil {
				return err
			}
			res, err := server.Prompts().Get(cmd.Context(), args[0], arguments)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if opts.output == outputText {
				if res.Success {
					fmt.Fprintln(out, res.Content)
				} else {
					fmt.Fprintln(out, "error: "+res.ErrorMessage)
				}
			} else if err := writeStructured(out, opts.output, res); err != nil {
				return err
			}
			if !res.Success {
				return exitSilent(1)
			}
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&pairs, "arg", nil, "argument as key=value (repeatable)")
	cmd.Flags().StringVar(&rawJSON, "args-json", "", "arguments as a JSON object")
	return cmd
}
