// Package store persists experiment results: one JSON record per run plus
// a JSONL trace of per-iteration objective values. The filesystem layout is
// <baseDir>/runs/<runID>/{run.json,trace.jsonl}.
package store

// Store is the persistence interface for run records.
//
// Error conventions:
//   - nil on success
//   - ErrNotFound when the run does not exist (Load/Delete)
//   - wrapped descriptive errors for I/O and serialization failures
type Store interface {
	// SaveRun atomically writes the record for a run, overwriting any
	// previous record with the same ID.
	SaveRun(record *RunRecord) error

	// LoadRun reads a run record back. Returns ErrNotFound if no record
	// exists for this runID.
	LoadRun(runID string) (*RunRecord, error)

	// ListRuns returns metadata for all stored runs, without loading the
	// final iterates.
	ListRuns() ([]RunInfo, error)

	// DeleteRun removes the record and trace for a run. Returns
	// ErrNotFound if the run does not exist.
	DeleteRun(runID string) error
}

// ErrNotFound is returned when a requested run does not exist.
// Use errors.Is(err, ErrNotFound) to check for it.
var ErrNotFound = &NotFoundError{}

// NotFoundError represents a missing run record.
type NotFoundError struct {
	RunID string
}

func (e *NotFoundError) Error() string {
	if e.RunID != "" {
		return "run not found: " + e.RunID
	}
	return "run not found"
}

func (e *NotFoundError) Is(target error) bool {
	_, ok := target.(*NotFoundError)
	return ok
}
