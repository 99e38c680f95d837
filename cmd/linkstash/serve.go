package main

import (
	"github.com/spf13/cobra"

	"github.com/listenupapp/linkstash/internal/di"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve [flags]",
		Short: "Run the HTTP API server",
		Long: `Run the HTTP API server until interrupted.

Flags are handed to the server configuration unchanged, for example:

  linkstash serve -port 9090 -store sqlite -dsn libsql://db.example.turso.io`,
		DisableFlagParsing: true,
		RunE: func(_ *cobra.Command, args []string) error {
			return di.Run(args)
		},
	}
}
