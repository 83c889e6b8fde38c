// Package cli provides thin CLI adapters that translate between CLI concerns
// and application services. Adapters handle output formatting but delegate
// business logic to services.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/example/rosterguard/internal/models"
	"github.com/example/rosterguard/internal/ports/primary"
)

// DetectionAdapter is a thin adapter that translates CLI operations to
// DetectionService calls. It depends only on the service interface,
// enabling easy testing with mocks.
type DetectionAdapter struct {
	service primary.DetectionService
	out     io.Writer
}

// NewDetectionAdapter creates a new DetectionAdapter with the given service.
func NewDetectionAdapter(service primary.DetectionService, out io.Writer) *DetectionAdapter {
	return &DetectionAdapter{
		service: service,
		out:     out,
	}
}

var severityColors = map[int]*color.Color{
	5: color.New(color.FgRed, color.Bold),
	4: color.New(color.FgRed),
	3: color.New(color.FgYellow),
	2: color.New(color.FgCyan),
	1: color.New(color.FgWhite),
}

func severityLabel(severity int) string {
	c, ok := severityColors[severity]
	if !ok {
		c = color.New(color.FgWhite)
	}
	return c.Sprintf("S%d", severity)
}

// Detect runs a full detection pass and renders the result.
func (a *DetectionAdapter) Detect(ctx context.Context, records []models.ScheduleRecord, data models.ScheduleData) error {
	result, err := a.service.DetectConflicts(ctx, records, data)
	if err != nil {
		return err
	}

	a.renderDetection(result)
	return nil
}

// DetectEmployee runs a detection pass scoped to one employee.
func (a *DetectionAdapter) DetectEmployee(ctx context.Context, employeeID string, records []models.ScheduleRecord, data models.ScheduleData) error {
	result, err := a.service.DetectEmployeeConflicts(ctx, employeeID, records, data)
	if err != nil {
		return err
	}

	if !result.HasConflicts {
		fmt.Fprintf(a.out, "✓ No conflicts for %s\n", employeeID)
		return nil
	}

	fmt.Fprintf(a.out, "\nConflicts for %s (%d total, %d severe)\n",
		employeeID, result.TotalConflicts, result.SevereConflicts)
	for _, c := range result.Conflicts {
		a.renderConflict(c)
	}
	fmt.Fprintln(a.out)
	return nil
}

// DetectBatch runs batch detection over every employee in scope.
func (a *DetectionAdapter) DetectBatch(ctx context.Context, records []models.ScheduleRecord, data models.ScheduleData) error {
	batch, err := a.service.DetectBatchConflicts(ctx, records, data)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "\nBatch detection: %d employees, %d with conflicts\n",
		batch.TotalEmployees, batch.EmployeesWithConflicts)
	fmt.Fprintf(a.out, "Scan success rate: %.0f%%\n", batch.SuccessRate*100)
	if batch.Incomplete {
		fmt.Fprintln(a.out, "⚠ Run was cancelled before covering every employee")
	}
	for _, er := range batch.EmployeeResults {
		if er.Degraded {
			fmt.Fprintf(a.out, "  %s: scan failed (%s)\n", er.EmployeeID, er.DegradedCause)
			continue
		}
		if er.HasConflicts {
			fmt.Fprintf(a.out, "  %s: %d conflicts\n", er.EmployeeID, er.TotalConflicts)
		}
	}

	a.renderDetection(batch.Global)
	return nil
}

// Stats renders conflict statistics over stored detection runs.
func (a *DetectionAdapter) Stats(ctx context.Context) error {
	stats, err := a.service.GetConflictStatistics(ctx)
	if err != nil {
		return fmt.Errorf("failed to get conflict statistics: %w", err)
	}

	fmt.Fprintf(a.out, "\nDetection runs: %d\n", stats.TotalDetections)
	fmt.Fprintf(a.out, "Total conflicts: %d (%d severe, %d minor)\n",
		stats.TotalConflicts, stats.SevereConflicts, stats.MinorConflicts)
	if len(stats.SeverityCounts) > 0 {
		fmt.Fprintln(a.out, "By severity:")
		for sev := 5; sev >= 1; sev-- {
			if n := stats.SeverityCounts[sev]; n > 0 {
				fmt.Fprintf(a.out, "  %s %d\n", severityLabel(sev), n)
			}
		}
	}
	if len(stats.CountsByKind) > 0 {
		fmt.Fprintln(a.out, "By dimension:")
		for _, kind := range []models.ConflictKind{models.KindTime, models.KindSkill, models.KindWorkHour, models.KindCapacity, models.KindOther} {
			if n := stats.CountsByKind[kind]; n > 0 {
				fmt.Fprintf(a.out, "  %-10s %d\n", kind, n)
			}
		}
	}
	fmt.Fprintln(a.out)
	return nil
}

func (a *DetectionAdapter) renderDetection(result models.ConflictDetectionResult) {
	if !result.HasConflicts {
		fmt.Fprintln(a.out, "✓ No conflicts detected")
		return
	}

	fmt.Fprintf(a.out, "\n%d conflicts detected (%d severe, severity score %.1f)\n",
		result.TotalConflicts, result.SevereConflicts, result.SeverityScore)
	for _, c := range result.AllConflicts() {
		a.renderConflict(c)
	}
	if len(result.Suggestions) > 0 {
		fmt.Fprintln(a.out, "\nSuggestions:")
		for _, s := range result.Suggestions {
			fmt.Fprintf(a.out, "  - %s\n", s)
		}
	}
	fmt.Fprintln(a.out)
}

func (a *DetectionAdapter) renderConflict(c models.Conflict) {
	subject := c.EmployeeID
	if subject == "" {
		subject = c.ShiftID
	}
	fmt.Fprintf(a.out, "  [%s] %-30s %-10s %s  %s\n",
		severityLabel(c.Severity), c.Type, subject, c.Date, c.Description)
}
