package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/rosterguard/internal/wire"
)

// StatsCmd returns the stats command
func StatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show statistics over stored detection and resolution runs",
	}

	cmd.AddCommand(statsDetectCmd())
	cmd.AddCommand(statsResolveCmd())

	return cmd
}

func statsDetectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "detect",
		Short: "Summarize stored detection runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.DetectionAdapter().Stats(cmd.Context())
		},
	}
}

func statsResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve",
		Short: "Summarize stored resolution runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.ResolutionAdapter().Stats(cmd.Context())
		},
	}
}
