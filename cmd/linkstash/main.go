// Package main is the linkstash command: it runs the API server and offers
// offline tools for extraction, token minting, seeding and inspection.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/listenupapp/linkstash/internal/config"
	"github.com/listenupapp/linkstash/internal/logger"
)

// storeFlags select the configuration used by the offline commands.
type storeFlags struct {
	envFile  string
	dataPath string
	driver   string
	dsn      string
}

var globalFlags storeFlags

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "linkstash",
		Short:         "Personal bookmark manager",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&globalFlags.envFile, "env-file", ".env", "Path to .env file")
	pf.StringVar(&globalFlags.dataPath, "data-path", "", "Base path for data storage")
	pf.StringVar(&globalFlags.driver, "store", "", "Storage driver: badger or sqlite")
	pf.StringVar(&globalFlags.dsn, "dsn", "", "Store location: badger directory, sqlite file, or libsql URL")

	root.AddCommand(
		newServeCmd(),
		newExtractCmd(),
		newTokenCmd(),
		newSeedCmd(),
		newInspectCmd(),
	)

	return root
}

// loadConfig builds the configuration from the persistent flags, the
// environment and the .env file.
func loadConfig() (*config.Config, error) {
	var args []string
	for _, f := range []struct{ name, value string }{
		{"env-file", globalFlags.envFile},
		{"data-path", globalFlags.dataPath},
		{"store", globalFlags.driver},
		{"dsn", globalFlags.dsn},
	} {
		if f.value != "" {
			args = append(args, "-"+f.name, f.value)
		}
	}
	return config.LoadConfig(args)
}

// cliLogger logs to stderr so command output stays parseable.
func cliLogger(cfg *config.Config) *logger.Logger {
	return logger.New(logger.Config{
		Writer:      os.Stderr,
		Level:       logger.ParseLevel(cfg.Logger.Level),
		Environment: cfg.App.Environment,
		Component:   "cli",
	})
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "linkstash: %v\n", err)
		os.Exit(1)
	}
}

// durationOr returns d, or def when d is not positive.
func durationOr(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}
