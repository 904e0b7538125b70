// Package main is the entry point for TheArchives. The default command
// serves the site; the remaining commands inspect the catalog and manage
// the page cache from a shell.
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"thearchives/internal/config"
)

// cfg is loaded once before any subcommand runs.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "thearchives",
	Short: "TheArchives travel and heritage-products site",
	Long: `TheArchives showcases destinations in the Eastern Ghats of Andhra Pradesh,
their famous products and hidden gems, and collects hidden-gem suggestions
from visitors by e-mail.

Run without arguments to start the web server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		setupLogger(cfg)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd, args)
	},
}

func init() {
	cacheCmd.AddCommand(cacheFlushCmd)
	rootCmd.AddCommand(serveCmd, searchCmd, resolveCmd, cacheCmd)
}

// setupLogger installs the default slog logger: text in development,
// JSON everywhere else.
func setupLogger(c *config.Config) {
	opts := &slog.HandlerOptions{Level: c.SlogLevel()}
	var h slog.Handler
	if c.IsDev() {
		h = slog.NewTextHandler(os.Stderr, opts)
	} else {
		h = slog.NewJSONHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(h))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
