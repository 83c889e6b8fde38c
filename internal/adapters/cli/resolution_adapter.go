package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/example/rosterguard/internal/models"
	"github.com/example/rosterguard/internal/ports/primary"
)

// ResolutionAdapter is a thin adapter that translates CLI operations to
// ResolutionService calls.
type ResolutionAdapter struct {
	service primary.ResolutionService
	out     io.Writer
}

// NewResolutionAdapter creates a new ResolutionAdapter with the given service.
func NewResolutionAdapter(service primary.ResolutionService, out io.Writer) *ResolutionAdapter {
	return &ResolutionAdapter{
		service: service,
		out:     out,
	}
}

// Resolve resolves every conflict in a detection result and renders the outcome.
func (a *ResolutionAdapter) Resolve(ctx context.Context, detection models.ConflictDetectionResult, records []models.ScheduleRecord, data models.ScheduleData) (models.ConflictResolutionResult, error) {
	result, err := a.service.ResolveConflicts(ctx, detection, records, data)
	if err != nil {
		return models.ConflictResolutionResult{}, err
	}

	a.renderResolution(result)
	return result, nil
}

// ResolveBatch resolves conflicts from multiple detection results.
func (a *ResolutionAdapter) ResolveBatch(ctx context.Context, detections []models.ConflictDetectionResult, records []models.ScheduleRecord, data models.ScheduleData) (models.BatchResolutionResult, error) {
	batch, err := a.service.ResolveBatchConflicts(ctx, detections, records, data)
	if err != nil {
		return models.BatchResolutionResult{}, err
	}

	fmt.Fprintf(a.out, "\nBatch resolution: %d conflicts, %d resolved, %d need manual input\n",
		batch.TotalCount, batch.SuccessCount, batch.FailureCount)
	if batch.TotalCount > 0 {
		fmt.Fprintf(a.out, "Success rate: %.0f%%\n", batch.SuccessRate*100)
	}
	if batch.Incomplete {
		fmt.Fprintln(a.out, "⚠ Run was cancelled before covering every conflict")
	}
	for _, r := range batch.Results {
		a.renderResolution(r)
	}
	return batch, nil
}

// Stats renders resolution statistics over stored runs.
func (a *ResolutionAdapter) Stats(ctx context.Context) error {
	stats, err := a.service.GetResolutionStatistics(ctx)
	if err != nil {
		return fmt.Errorf("failed to get resolution statistics: %w", err)
	}

	fmt.Fprintf(a.out, "\nResolution runs: %d (%d successful, %d failed)\n",
		stats.TotalResolutions, stats.SuccessfulResolutions, stats.FailedResolutions)
	if stats.TotalResolutions > 0 {
		fmt.Fprintf(a.out, "Success rate: %.0f%%\n", stats.SuccessRate*100)
		fmt.Fprintf(a.out, "Average quality score: %.1f\n", stats.AverageQualityScore)
	}
	if len(stats.StrategyCounts) > 0 {
		fmt.Fprintln(a.out, "By strategy:")
		for strategy, n := range stats.StrategyCounts {
			fmt.Fprintf(a.out, "  %-22s %d\n", strategy, n)
		}
	}
	fmt.Fprintln(a.out)
	return nil
}

func (a *ResolutionAdapter) renderResolution(result models.ConflictResolutionResult) {
	if result.Successful {
		fmt.Fprintf(a.out, "✓ %s resolved via %s (quality %.0f)\n",
			resolutionSubject(result), result.Strategy, result.QualityScore)
	} else {
		fmt.Fprintf(a.out, "✗ %s unresolved: %s\n", resolutionSubject(result), result.Description)
	}

	for _, m := range result.Modifications {
		fmt.Fprintf(a.out, "    %-6s %-12s %s\n", m.Type, m.RecordID, m.Reason)
	}
	if result.RequiresManualConfirmation && len(result.Alternatives) > 0 {
		fmt.Fprintln(a.out, "  Alternatives:")
		for _, alt := range result.Alternatives {
			fmt.Fprintf(a.out, "    %-22s %.0f  %s\n", alt.Strategy, alt.QualityScore, alt.Description)
		}
	}
}

func resolutionSubject(result models.ConflictResolutionResult) string {
	if result.ConflictID != "" {
		return "conflict " + result.ConflictID
	}
	return "resolution " + result.ResolutionID
}
