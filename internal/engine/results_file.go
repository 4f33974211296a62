package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type resultRecord struct {
	Name    string `json:"name"`
	Outcome string `json:"outcome"`
	Reason  string `json:"reason,omitempty"`
}

type resultsDocument struct {
	RunID     string         `json:"run_id"`
	StartedAt string         `json:"started_at,omitempty"`
	Results   []resultRecord `json:"results"`
}

// WriteResultsFile writes a machine-readable summary of all outcomes. The
// reporter's stdout lines stay authoritative; this file exists for tooling.
func WriteResultsFile(path, runID string, results []Result) error {
	doc := resultsDocument{RunID: runID, Results: make([]resultRecord, 0, len(results))}
	if startedAt, _, err := ParseRunID(runID); err == nil {
		doc.StartedAt = startedAt.Format(time.RFC3339)
	}
	for _, result := range results {
		doc.Results = append(doc.Results, resultRecord{
			Name:    result.Name,
			Outcome: result.Outcome.String(),
			Reason:  result.Reason(),
		})
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("could not marshal results: %w", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("could not write results file: %w", err)
	}
	return nil
}
