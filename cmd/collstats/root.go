package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/contextsubstrate/collstats/internal/config"
	"github.com/contextsubstrate/collstats/internal/logger"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	verbose bool

	cfg *config.Config
	log logger.Logger = logger.Nop()
)

// UsageError reports a command line that is missing required arguments.
type UsageError struct {
	Got int
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("expected <file1> <file2> [outputFile], got %d argument(s)", e.Got)
}

var rootCmd = &cobra.Command{
	Use:   "collstats <file1> <file2> [outputFile]",
	Short: "Compare per-collection storage metrics between two cluster stats reports",
	Long: `collstats reads two cluster statistics HTML reports, extracts the document count,
average document size, data size and storage size of every collection, and writes
one CSV row per collection for each report so growth between the two snapshots can
be tracked. Collections missing from one report get a row with empty metrics.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) < 2 || len(args) > 3 {
			return &UsageError{Got: len(args)}
		}
		return nil
	},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		level := cfg.LogLevel
		if verbose {
			level = "debug"
		}
		log = logger.New(level, cfg.LogFormat)
		return nil
	},
	RunE: runCompare,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose/debug output")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "collstats: %s\n", err)
		var usage *UsageError
		if errors.As(err, &usage) {
			fmt.Fprintf(os.Stderr, "Usage: %s\n", rootCmd.Use)
		}
		os.Exit(1)
	}
}
