package store

import "time"

// RunRecord is the persisted outcome of driving one optimizer for a fixed
// step budget. It captures the final state only; the per-iteration history
// lives in the run's trace file.
type RunRecord struct {
	// RunID uniquely identifies the run within the store.
	RunID string `json:"runId"`

	// Algorithm is the optimizer name (fw, afw, extrafw, gd, nag).
	Algorithm string `json:"algorithm"`

	// Problem and Constraint describe the collaborators, for display.
	Problem    string `json:"problem"`
	Constraint string `json:"constraint"`

	// Steps is the number of completed iterations.
	Steps int `json:"steps"`

	// FinalObjective is the objective value at the final iterate.
	FinalObjective float64 `json:"finalObjective"`

	// FinalIterate is the iterate after the last step.
	FinalIterate []float64 `json:"finalIterate"`

	// StartedAt and FinishedAt bracket the run wall-clock time.
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
}

// RunInfo is the listing view of a record: everything except the iterate.
type RunInfo struct {
	RunID          string    `json:"runId"`
	Algorithm      string    `json:"algorithm"`
	Problem        string    `json:"problem"`
	Constraint     string    `json:"constraint"`
	Steps          int       `json:"steps"`
	FinalObjective float64   `json:"finalObjective"`
	FinishedAt     time.Time `json:"finishedAt"`
}

// ToInfo strips a record down to its listing view.
func (r *RunRecord) ToInfo() RunInfo {
	return RunInfo{
		RunID:          r.RunID,
		Algorithm:      r.Algorithm,
		Problem:        r.Problem,
		Constraint:     r.Constraint,
		Steps:          r.Steps,
		FinalObjective: r.FinalObjective,
		FinishedAt:     r.FinishedAt,
	}
}

// Validate checks a record before it is written.
func (r *RunRecord) Validate() error {
	if r.RunID == "" {
		return &ValidationError{Field: "RunID", Reason: "cannot be empty"}
	}
	if r.Algorithm == "" {
		return &ValidationError{Field: "Algorithm", Reason: "cannot be empty"}
	}
	if r.Steps < 0 {
		return &ValidationError{Field: "Steps", Reason: "cannot be negative"}
	}
	if len(r.FinalIterate) == 0 {
		return &ValidationError{Field: "FinalIterate", Reason: "cannot be empty"}
	}
	if r.FinishedAt.IsZero() {
		return &ValidationError{Field: "FinishedAt", Reason: "cannot be zero"}
	}
	return nil
}

// ValidationError represents an invalid run record.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation error: " + e.Field + " " + e.Reason
}
