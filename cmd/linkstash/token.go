package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/listenupapp/linkstash/internal/auth"
)

func newTokenCmd() *cobra.Command {
	var duration time.Duration

	cmd := &cobra.Command{
		Use:   "token SUBJECT",
		Short: "Issue an access token for a user id",
		Long: `Issue a PASETO access token for SUBJECT, signed with the server key.

The key comes from ACCESS_TOKEN_KEY or <data-path>/auth.key, and is
generated on first use exactly as the server does.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			key, err := auth.ResolveKey(cfg.Auth.AccessTokenKey, cfg.Data.BasePath)
			if err != nil {
				return err
			}

			tokens, err := auth.NewTokenServiceFromKey(key, durationOr(duration, cfg.Auth.AccessTokenDuration))
			if err != nil {
				return err
			}

			token, err := tokens.GenerateAccessToken(args[0])
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().DurationVar(&duration, "duration", 0, "Token lifetime (default: ACCESS_TOKEN_DURATION)")

	return cmd
}
