package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/rosterguard/internal/models"
	"github.com/example/rosterguard/internal/wire"
)

// ResolveCmd returns the resolve command
func ResolveCmd() *cobra.Command {
	var (
		inputPath string
		from      string
		to        string
		batch     bool
		apply     bool
	)

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Detect and resolve schedule conflicts",
		Long: `Detect conflicts and resolve them automatically.

Each conflict is fixed by the best applicable strategy (time adjustment,
employee replacement, segmentation, ...). Fixes are re-validated against
the full rule set; a fix that creates new conflicts is rejected and the
conflict is escalated for manual confirmation with ranked alternatives.

With --apply the resolved records are written back to the database.

Examples:
  rosterguard resolve --input week51.json
  rosterguard resolve --from 2025-12-15 --to 2025-12-21 --apply
  rosterguard resolve --input week51.json --batch`,
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

			detection, err := wire.DetectionService().DetectConflicts(ctx, input.Records, input.Data)
			if err != nil {
				return fmt.Errorf("detection failed: %w", err)
			}
			if !detection.HasConflicts {
				fmt.Println("✓ No conflicts detected")
				return nil
			}

			adapter := wire.ResolutionAdapter()
			var resolved []models.ScheduleRecord
			var successful bool
			if batch {
				result, err := adapter.ResolveBatch(ctx, []models.ConflictDetectionResult{detection}, input.Records, input.Data)
				if err != nil {
					return err
				}
				resolved = result.ResolvedRecords
				successful = result.SuccessCount > 0
			} else {
				result, err := adapter.Resolve(ctx, detection, input.Records, input.Data)
				if err != nil {
					return err
				}
				resolved = result.ResolvedRecords
				successful = result.Successful

				if apply && successful {
					if err := wire.ScheduleService().ApplyResolution(ctx, result); err != nil {
						return fmt.Errorf("failed to apply resolution: %w", err)
					}
					fmt.Println("✓ Resolved records written to database")
					return nil
				}
			}

			if apply && !successful {
				return fmt.Errorf("nothing to apply: resolution was not successful")
			}
			if apply && batch {
				if _, err := wire.ScheduleService().ImportRecords(ctx, resolved); err != nil {
					return fmt.Errorf("failed to apply resolved records: %w", err)
				}
				fmt.Println("✓ Resolved records written to database")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "JSON input file with records and constraint data")
	cmd.Flags().StringVar(&from, "from", "", "range start date (YYYY-MM-DD), used with --to")
	cmd.Flags().StringVar(&to, "to", "", "range end date (YYYY-MM-DD), used with --from")
	cmd.Flags().BoolVar(&batch, "batch", false, "serialize resolution per schedule cell")
	cmd.Flags().BoolVar(&apply, "apply", false, "write resolved records back to the database")

	return cmd
}
