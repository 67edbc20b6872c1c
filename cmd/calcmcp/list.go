package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"calcmcp/internal/app"
	"calcmcp/internal/infra/registry"
)

const (
	listTools   = "tools"
	listPrompts = "prompts"
)

type listEntry struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	InputSchema any    `json:"inputSchema"`
}

type listPayload struct {
	ETag    string      `json:"etag"`
	Tools   []listEntry `json:"tools,omitempty"`
	Prompts []listEntry `json:"prompts,omitempty"`
}

func newListCmd(opts *cliOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:       "list [tools|prompts]",
		Short:     "List the published tools and prompts",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{listTools, listPrompts},
		RunE: func(cmd *cobra.Command, args []string) error {
			server, err := app.InitializeServer(cmd.Context(), serveConfig(cmd, opts))
			if err != nil {
				return err
			}
			kind := ""
			if len(args) == 1 {
				kind = args[0]
			}

			payload := listPayload{ETag: server.ETag()}
			if kind == "" || kind == listTools {
				payload.Tools = entries(server.Tools().Schemas())
			}
			if kind == "" || kind == listPrompts {
				payload.Prompts = entries(server.Prompts().Schemas())
			}

			out := cmd.OutOrStdout()
			if opts.output != outputText {
				return writeStructured(out, opts.output, payload)
			}
			fmt.Fprintf(out, "etag=%s tools=%d prompts=%d\n", payload.ETag, len(payload.Tools), len(payload.Prompts))
			for _, entry := range payload.Tools {
				fmt.Fprintf(out, "tool\t%s\t%s\n", entry.Name, entry.Description)
			}
			for _, entry := range payload.Prompts {
				fmt.Fprintf(out, "prompt\t%s\t%s\n", entry.Name, entry.Description)
			}
			return nil
		},
	}
	return cmd
}

func entries(schemas []registry.NamedSchema) []listEntry {
	out := make([]listEntry, 0, len(schemas))
	for _, s := range schemas {
		out = append(out, listEntry{
			Name:        s.Name,
			Description: s.Description,
			InputSchema: s.Schema.JSONSchema(),
		})
	}
	return out
}
