package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/listenupapp/linkstash/internal/logger"
	"github.com/listenupapp/linkstash/internal/metadata"
)

// Output formats.
const (
	formatYAML = "yaml"
	formatJSON = "json"
)

type extractOptions struct {
	format       string
	concurrency  int
	timeout      time.Duration
	allowPrivate bool
	verbose      bool
}

func newExtractCmd() *cobra.Command {
	opts := extractOptions{}

	cmd := &cobra.Command{
		Use:   "extract URL...",
		Short: "Fetch page metadata for one or more URLs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger.Discard()
			if opts.verbose {
				log = logger.New(logger.Config{Writer: cmd.ErrOrStderr(), Level: slog.LevelDebug, Component: "extract"}).Logger
			}

			extractor := metadata.New(metadata.Config{
				Timeout:      opts.timeout,
				AllowPrivate: opts.allowPrivate,
			}, log)

			results, err := extractAll(cmd.Context(), extractor, args, opts.concurrency)
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), opts.format, results)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.format, "output", "o", formatYAML, "Output format: yaml or json")
	f.IntVarP(&opts.concurrency, "concurrency", "c", 4, "Number of pages fetched in parallel")
	f.DurationVar(&opts.timeout, "timeout", metadata.DefaultTimeout, "Per-URL fetch timeout")
	f.BoolVar(&opts.allowPrivate, "allow-private", false, "Allow fetching private addresses")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "Log fetch failures to stderr")

	return cmd
}

// extractAll extracts every URL with at most concurrency fetches in flight.
// Results keep the order of urls. Extraction itself never fails, so the only
// error is cancellation.
func extractAll(ctx context.Context, extractor *metadata.Extractor, urls []string, concurrency int) ([]*metadata.Metadata, error) {
	if concurrency < 1 {
		concurrency = 1
	}

	results := make([]*metadata.Metadata, len(urls))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, u := range urls {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = extractor.Extract(ctx, u)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func writeOutput(w io.Writer, format string, v any) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q (must be yaml or json)", format)
	}
}
