package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/rosterguard/internal/db"
)

// SeedCmd returns the seed command
func SeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Populate the database with a demo roster",
		Long: `Populate the database with a demo roster for the current week.

The fixture deliberately contains conflicts so detect and resolve have
something to work with.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := db.GetDB()
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}

			if err := db.SeedFixtures(database); err != nil {
				return fmt.Errorf("failed to seed fixtures: %w", err)
			}

			fmt.Println("✓ Demo roster seeded")
			return nil
		},
	}
}
