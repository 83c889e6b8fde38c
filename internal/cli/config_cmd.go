package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/rosterguard/internal/config"
)

// ConfigCmd returns the config command
func ConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage engine configuration",
		Long:  `Inspect and initialize the .rosterguard/config.json engine configuration.`,
	}

	cmd.AddCommand(configShowCmd())
	cmd.AddCommand(configInitCmd())

	return cmd
}

func configShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}

			cfg := config.LoadOrDefault(cwd)
			fmt.Printf("Max daily work hours:  %.1f\n", cfg.MaxDailyWorkHours)
			fmt.Printf("Max weekly work hours: %.1f\n", cfg.MaxWeeklyWorkHours)
			if cfg.Workers > 0 {
				fmt.Printf("Batch workers:         %d\n", cfg.Workers)
			} else {
				fmt.Println("Batch workers:         auto (NumCPU)")
			}
			return nil
		},
	}
}

func configInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}

			if _, err := config.LoadConfig(cwd); err == nil {
				return fmt.Errorf("config already exists in %s/.rosterguard", cwd)
			}

			if err := config.SaveConfig(cwd, config.DefaultConfig()); err != nil {
				return err
			}

			fmt.Printf("✓ Wrote default config to %s/.rosterguard/config.json\n", cwd)
			return nil
		},
	}
}
