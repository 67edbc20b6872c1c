package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"calcmcp/internal/app"
)

func newCallCmd(opts *cliOptions) *cobra.Command {
	var (
		pairs   []string
		rawJSON string
	)
	cmd := &cobra.Command{
		Use:   "call <tool>",
		Short: "Invoke a tool in-process and print its result envelope",
		Example: `  calcmcp call add --arg a=5 --arg b=3
  calcmcp call average --arg values=1,2,3,4,5
  calcmcp call lcm --args-json '{"numbers":[12,18]}'`,
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
			res, err := server.Tools().Call(cmd.Context(), args[0], arguments)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if opts.output == outputText {
				if res.Success {
					fmt.Fprintln(out, formatResult(res.Value()))
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

func formatResult(v float64) string {
	return fmt.Sprintf("%v", v)
}
