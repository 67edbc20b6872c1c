package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"calcmcp/internal/infra/config"
	"calcmcp/internal/infra/httpauth"
)

func newTokenCmd(opts *cliOptions) *cobra.Command {
	var (
		subject string
		scopes  []string
		ttl     time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for the HTTP transport",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.NewLoader(opts.logger, cmd.Flags()).Load(cmd.Context(), opts.configPath)
			if err != nil {
				return err
			}
			auth := cfg.Transport.HTTP.Auth
			if !auth.Enabled() || len(auth.Secret) == 0 {
				return errors.New("token signing needs the http transport with transport.http.auth.secretEnv configured")
			}
			if len(scopes) == 0 {
				scopes = auth.Scopes
			}
			token, err := httpauth.Sign(auth, subject, scopes, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "calcmcp-cli", "token subject")
	cmd.Flags().StringSliceVar(&scopes, "scope", nil, "granted scopes (defaults to the configured required scopes)")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime")
	return cmd
}
