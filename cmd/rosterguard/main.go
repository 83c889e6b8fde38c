package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/rosterguard/internal/cli"
	"github.com/example/rosterguard/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "rosterguard",
		Short:   "rosterguard - shift schedule conflict detection and resolution",
		Version: version.String(),
		Long: `rosterguard detects conflicts in workforce shift schedules and resolves
them automatically. It checks time overlaps, skill mismatches, work hour
limits, staffing bounds, and scheduling rules, then applies the least
disruptive fix that survives re-validation.`,
	}

	// Add subcommands
	rootCmd.AddCommand(cli.DetectCmd())
	rootCmd.AddCommand(cli.ResolveCmd())
	rootCmd.AddCommand(cli.ValidateCmd())
	rootCmd.AddCommand(cli.RecordsCmd())
	rootCmd.AddCommand(cli.StatsCmd())
	rootCmd.AddCommand(cli.ConfigCmd())
	rootCmd.AddCommand(cli.SeedCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
