// Package reporting writes the per-run results file and extracts failure
// details for the summary table.
package reporting

import (
	"fmt"
	"os"

	"github.com/distsys-lab/grade-runner/types"
)

// ResultsFile is the flat results sink: one "<name> <verdict>" line per test
// case, in discovery order. Lines are written and synced as soon as a
// verdict is known, so a run that aborts mid-way leaves every completed case
// on disk.
type ResultsFile struct {
	path string
	f    *os.File
}

// CreateResultsFile creates (or truncates) the results file at path.
func CreateResultsFile(path string) (*ResultsFile, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create results file %s: %w", path, err)
	}
	return &ResultsFile{path: path, f: f}, nil
}

// Path returns the results file path.
func (r *ResultsFile) Path() string {
	return r.path
}

// Record appends one result line and syncs it to disk.
func (r *ResultsFile) Record(name string, verdict types.Verdict) error {
	if _, err := fmt.Fprintf(r.f, "%s %s\n", name, verdict); err != nil {
		return fmt.Errorf("failed to record result for %s: %w", name, err)
	}
	if err := r.f.Sync(); err != nil {
		return fmt.Errorf("failed to sync results file: %w", err)
	}
	return nil
}

// Close closes the underlying file.
func (r *ResultsFile) Close() error {
	return r.f.Close()
}
