package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/listenupapp/linkstash/internal/di/providers"
)

// statser is implemented by the stores that can count their records.
type statser interface {
	Stats(ctx context.Context) (map[string]int, error)
}

// inspectReport is the output of linkstash inspect.
type inspectReport struct {
	Driver string         `json:"driver" yaml:"driver"`
	DSN    string         `json:"dsn" yaml:"dsn"`
	Counts map[string]int `json:"counts" yaml:"counts"`
}

func newInspectCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print record counts for the configured store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			st, err := providers.OpenStore(cfg.Store, cliLogger(cfg))
			if err != nil {
				return err
			}
			defer st.Close()

			s, ok := st.(statser)
			if !ok {
				return fmt.Errorf("store driver %q does not report stats", cfg.Store.Driver)
			}

			counts, err := s.Stats(cmd.Context())
			if err != nil {
				return err
			}

			return writeOutput(cmd.OutOrStdout(), format, inspectReport{
				Driver: cfg.Store.Driver,
				DSN:    cfg.Store.DSN,
				Counts: counts,
			})
		},
	}

	cmd.Flags().StringVarP(&format, "output", "o", formatYAML, "Output format: yaml or json")

	return cmd
}
