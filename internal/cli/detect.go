package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/rosterguard/internal/wire"
)

// DetectCmd returns the detect command
func DetectCmd() *cobra.Command {
	var (
		inputPath  string
		from       string
		to         string
		employeeID string
		batch      bool
	)

	cmd := &cobra.Command{
		Use:   "detect",
		Short: "Detect schedule conflicts",
		Long: `Run conflict detection over a schedule.

The schedule comes either from an input file (records plus constraint data)
or from stored records for a date range.

Checks cover time overlaps, skill mismatches, daily and weekly work hour
limits, shift staffing bounds, and scheduling rules (consecutive work days,
rest days, double assignments).

Examples:
  rosterguard detect --input week51.json
  rosterguard detect --from 2025-12-15 --to 2025-12-21
  rosterguard detect --input week51.json --employee EMP-001
  rosterguard detect --input week51.json --batch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			input, err := resolveInput(ctx, inputPath, from, to)
			if err != nil {
				return err
			}
			if len(input.Records) == 0 {
				fmt.Println("No schedule records to check.")
				return nil
			}

			adapter := wire.DetectionAdapter()
			switch {
			case employeeID != "":
				return adapter.DetectEmployee(ctx, employeeID, input.Records, input.Data)
			case batch:
				return adapter.DetectBatch(ctx, input.Records, input.Data)
			default:
				return adapter.Detect(ctx, input.Records, input.Data)
			}
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "JSON input file with records and constraint data")
	cmd.Flags().StringVar(&from, "from", "", "range start date (YYYY-MM-DD), used with --to")
	cmd.Flags().StringVar(&to, "to", "", "range end date (YYYY-MM-DD), used with --from")
	cmd.Flags().StringVarP(&employeeID, "employee", "e", "", "scope detection to one employee")
	cmd.Flags().BoolVar(&batch, "batch", false, "fan detection out across employees")

	return cmd
}
