// Package cli contains the cobra commands for the rosterguard CLI.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/example/rosterguard/internal/models"
	"github.com/example/rosterguard/internal/wire"
)

// ScheduleInput is the JSON document accepted by detect/resolve commands:
// the records under scrutiny plus the constraint set they are checked against.
type ScheduleInput struct {
	Records []models.ScheduleRecord `json:"records"`
	Data    models.ScheduleData     `json:"data"`
}

// loadInput reads a ScheduleInput JSON file.
func loadInput(path string) (*ScheduleInput, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}

	var input ScheduleInput
	if err := json.Unmarshal(raw, &input); err != nil {
		return nil, fmt.Errorf("failed to parse input file: %w", err)
	}
	return &input, nil
}

// resolveInput assembles records and constraint data either from an input
// file or from the database for a date range. With a date range the employee
// scope is derived from the stored records.
func resolveInput(ctx context.Context, inputPath, from, to string) (*ScheduleInput, error) {
	if inputPath != "" {
		return loadInput(inputPath)
	}
	if from == "" || to == "" {
		return nil, fmt.Errorf("must specify either --input or both --from and --to")
	}

	data := models.ScheduleData{StartDate: from, EndDate: to}
	records, history, err := wire.ScheduleService().LoadRange(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}

	data.EmployeeIDs = distinctEmployees(records)
	data.HistoryRecords = history
	return &ScheduleInput{Records: records, Data: data}, nil
}

func distinctEmployees(records []models.ScheduleRecord) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, r := range records {
		if !seen[r.EmployeeID] {
			seen[r.EmployeeID] = true
			ids = append(ids, r.EmployeeID)
		}
	}
	sort.Strings(ids)
	return ids
}
