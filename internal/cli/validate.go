package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/rosterguard/internal/core/detect"
	"github.com/example/rosterguard/internal/models"
)

// ValidateCmd returns the validate command
func ValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "Validate a schedule input file",
		Long: `Check a JSON input file for structural problems before running
detection: parseable dates, positive durations, unique record IDs, and
employees that belong to the declared scope.

Exits non-zero when the input is invalid.

Examples:
  rosterguard validate week51.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := loadInput(args[0])
			if err != nil {
				return err
			}

			if err := detect.ValidateInput(input.Records, input.Data); err != nil {
				var verr *models.InputValidationError
				if errors.As(err, &verr) {
					return fmt.Errorf("invalid input: %w", verr)
				}
				return err
			}

			fmt.Printf("✓ %d records valid for %s..%s (%d employees)\n",
				len(input.Records), input.Data.StartDate, input.Data.EndDate, len(input.Data.EmployeeIDs))
			return nil
		},
	}

	return cmd
}
