package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/example/rosterguard/internal/models"
	"github.com/example/rosterguard/internal/ports/secondary"
)

// RunRepository implements secondary.RunRepository with SQLite.
// Headline counters are stored as columns for querying; the full result
// round-trips through a JSON payload column.
type RunRepository struct {
	db *sql.DB
}

// NewRunRepository creates a new SQLite run repository.
func NewRunRepository(db *sql.DB) *RunRepository {
	return &RunRepository{db: db}
}

var _ secondary.RunRepository = (*RunRepository)(nil)

// SaveDetection persists a detection run.
func (r *RunRepository) SaveDetection(ctx context.Context, result models.ConflictDetectionResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal detection result: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO detection_runs (detection_id, algorithm_version, started_at, finished_at, duration_ms, total_conflicts, severe_conflicts, severity_score, payload)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		result.DetectionID, result.AlgorithmVersion,
		result.StartedAt.Format(time.RFC3339), result.FinishedAt.Format(time.RFC3339),
		result.DurationMS, result.TotalConflicts, result.SevereConflicts,
		result.SeverityScore, string(payload),
	)
	if err != nil {
		return fmt.Errorf("failed to save detection run: %w", err)
	}
	return nil
}

// ListDetections returns detection runs, newest first. A limit <= 0 returns all.
func (r *RunRepository) ListDetections(ctx context.Context, limit int) ([]models.ConflictDetectionResult, error) {
	query := "SELECT payload FROM detection_runs ORDER BY created_at DESC, detection_id"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query detection runs: %w", err)
	}
	defer rows.Close()

	var results []models.ConflictDetectionResult
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan detection run: %w", err)
		}
		var result models.ConflictDetectionResult
		if err := json.Unmarshal([]byte(payload), &result); err != nil {
			return nil, fmt.Errorf("failed to unmarshal detection run: %w", err)
		}
		results = append(results, result)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate detection runs: %w", err)
	}
	return results, nil
}

// SaveResolution persists a resolution run.
func (r *RunRepository) SaveResolution(ctx context.Context, result models.ConflictResolutionResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal resolution result: %w", err)
	}

	var conflictID sql.NullString
	if result.ConflictID != "" {
		conflictID = sql.NullString{String: result.ConflictID, Valid: true}
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO resolution_runs (resolution_id, conflict_id, strategy, successful, requires_manual, quality_score, duration_ms, payload)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		result.ResolutionID, conflictID, string(result.Strategy),
		result.Successful, result.RequiresManualConfirmation,
		result.QualityScore, result.DurationMS, string(payload),
	)
	if err != nil {
		return fmt.Errorf("failed to save resolution run: %w", err)
	}
	return nil
}

// ListResolutions returns resolution runs, newest first. A limit <= 0 returns all.
func (r *RunRepository) ListResolutions(ctx context.Context, limit int) ([]models.ConflictResolutionResult, error) {
	query := "SELECT payload FROM resolution_runs ORDER BY created_at DESC, resolution_id"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query resolution runs: %w", err)
	}
	defer rows.Close()

	var results []models.ConflictResolutionResult
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan resolution run: %w", err)
		}
		var result models.ConflictResolutionResult
		if err := json.Unmarshal([]byte(payload), &result); err != nil {
			return nil, fmt.Errorf("failed to unmarshal resolution run: %w", err)
		}
		results = append(results, result)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate resolution runs: %w", err)
	}
	return results, nil
}
