package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/contextsubstrate/collstats/internal/delta"
	"github.com/contextsubstrate/collstats/internal/diff"
	"github.com/contextsubstrate/collstats/internal/output"
	"github.com/contextsubstrate/collstats/internal/report"
	"github.com/contextsubstrate/collstats/internal/store"
	"github.com/spf13/cobra"
)

var outputFormat string
var compareHuman bool
var showJSON bool

func runCompare(cmd *cobra.Command, args []string) error {
	formatName := cfg.Format
	if cmd.Flags().Changed("format") {
		formatName = outputFormat
	}
	format, err := output.ParseFormat(formatName)
	if err != nil {
		return err
	}

	outPath := cfg.OutputPath
	if len(args) > 2 {
		outPath = args[2]
	} else if format == output.FormatJSON && outPath == output.DefaultPath {
		outPath = strings.TrimSuffix(outPath, filepath.Ext(outPath)) + ".json"
	}

	// Both inputs are read before anything is written.
	a, err := loadReport(args[0])
	if err != nil {
		return err
	}
	b, err := loadReport(args[1])
	if err != nil {
		return err
	}

	r := diff.Diff(a, b)
	if err := output.WriteFile(outPath, format, r); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	log.WithFields(map[string]interface{}{
		"path":   outPath,
		"format": string(format),
		"rows":   len(r.Rows),
	}).Debugf("output written")

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%s file written to: %s\n", strings.ToUpper(string(format)), outPath)
	fmt.Fprint(w, r.Summary())

	if compareHuman {
		fmt.Fprintln(w)
		fmt.Fprint(w, delta.Compare(a, b).Human())
	}
	return nil
}

func loadReport(path string) (*report.Snapshot, error) {
	s, err := report.Load(path)
	if err != nil {
		return nil, err
	}
	log.WithComponent("report").WithFields(map[string]interface{}{
		"path":        path,
		"fingerprint": store.ShortHash(s.Hash, 12),
		"generated":   s.GeneratedAt,
		"collections": len(s.Collections),
	}).Debugf("parsed report")
	return s, nil
}

var showCmd = &cobra.Command{
	Use:   "show <file>",
	Short: "Inspect a single report",
	Long:  "Parse one cluster statistics report and print its generation date and per-collection metrics.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadReport(args[0])
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		if showJSON {
			data, err := json.MarshalIndent(s, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(w, string(data))
			return nil
		}
		fmt.Fprint(w, report.FormatSnapshot(s))
		return nil
	},
}

func init() {
	rootCmd.Flags().StringVar(&outputFormat, "format", string(output.FormatCSV), "output file format: csv or json")
	rootCmd.Flags().BoolVar(&compareHuman, "human", false, "also print a growth summary of added, removed and changed collections")
	showCmd.Flags().BoolVar(&showJSON, "json", false, "output JSON instead of a human-readable listing")
	rootCmd.AddCommand(showCmd)

	// Shell completion (bash, zsh, fish, powershell) via Cobra's built-in generator
	completionCmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion script",
		Long: `Generate a shell completion script for collstats.

To load completions:

Bash:
  $ source <(collstats completion bash)

Zsh:
  $ collstats completion zsh > "${fpath[1]}/_collstats"

Fish:
  $ collstats completion fish | source

PowerShell:
  PS> collstats completion powershell | Out-String | Invoke-Expression`,
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return rootCmd.GenBashCompletion(os.Stdout)
			case "zsh":
				return rootCmd.GenZshCompletion(os.Stdout)
			case "fish":
				return rootCmd.GenFishCompletion(os.Stdout, true)
			case "powershell":
				return rootCmd.GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}
	rootCmd.AddCommand(completionCmd)
}
