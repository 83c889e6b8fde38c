package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/rosterguard/internal/wire"
)

// RecordsCmd returns the records command
func RecordsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "records",
		Short: "Manage stored schedule records",
		Long:  `Import and inspect the schedule records the engine runs against.`,
	}

	cmd.AddCommand(recordsImportCmd())
	cmd.AddCommand(recordsListCmd())

	return cmd
}

func recordsImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import schedule records from a JSON file",
		Long: `Import schedule records from a JSON input file.

The file uses the same format as detect/resolve input: a "records" array
plus optional constraint "data". Records with known IDs are replaced.

Examples:
  rosterguard records import week51.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			input, err := loadInput(args[0])
			if err != nil {
				return err
			}
			if len(input.Records) == 0 {
				return fmt.Errorf("input file contains no records")
			}

			count, err := wire.ScheduleService().ImportRecords(ctx, input.Records)
			if err != nil {
				return fmt.Errorf("failed to import records: %w", err)
			}

			fmt.Printf("✓ Imported %d records\n", count)
			return nil
		},
	}

	return cmd
}

func recordsListCmd() *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored schedule records in a date range",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			if from == "" || to == "" {
				return fmt.Errorf("must specify --from and --to")
			}

			input, err := resolveInput(ctx, "", from, to)
			if err != nil {
				return err
			}
			if len(input.Records) == 0 {
				fmt.Println("No records found.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "RECORD\tEMPLOYEE\tSHIFT\tDATE\tSTART\tEND\tSTATUS")
			for _, r := range input.Records {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
					r.RecordID, r.EmployeeID, r.ShiftID, r.Date,
					r.StartTime.Format("15:04"), r.EndTime.Format("15:04"), r.Status)
			}
			w.Flush()
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "range start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "range end date (YYYY-MM-DD)")

	return cmd
}
