package runner

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/fwopt/internal/config"
	"github.com/cwbudde/fwopt/internal/constraint"
	"github.com/cwbudde/fwopt/internal/loss"
	"github.com/cwbudde/fwopt/internal/opt"
	"github.com/cwbudde/fwopt/internal/store"
)

func baseConfig() *config.Config {
	return &config.Config{
		Problem: config.Problem{
			Kind:   "quadratic",
			Center: []float64{0.8, -0.5},
		},
		Constraint: config.Constraint{
			Kind:   "l1",
			Radius: 1,
		},
		Run: config.Run{
			Algorithms: []string{"fw", "afw", "extrafw"},
			Steps:      30,
			Init:       []float64{1, 0},
		},
	}
}

func TestRunStepsThroughBudget(t *testing.T) {
	lossFn := loss.NewQuadratic(mat.NewVecDense(2, []float64{0.8, -0.5}))
	set := constraint.MustL1Ball(1)
	o := opt.NewFW(mat.NewVecDense(2, []float64{1, 0}), lossFn, set)

	res, err := Run("fw", o, 20, nil)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(res.Objectives) != 20 {
		t.Errorf("recorded %d objectives, want 20", len(res.Objectives))
	}
	if o.NumIter() != 20 {
		t.Errorf("optimizer advanced %d iterations, want 20", o.NumIter())
	}
	if res.Final.Len() != 2 {
		t.Errorf("final iterate has dimension %d, want 2", res.Final.Len())
	}
	// On this problem FW must improve on the initial objective.
	first, last := res.Objectives[0], res.Objectives[len(res.Objectives)-1]
	if last >= first {
		t.Errorf("objective did not improve: first %v, last %v", first, last)
	}
}

func TestRunExperimentAllAlgorithms(t *testing.T) {
	cfg := baseConfig()
	results, err := RunExperiment(cfg)
	if err != nil {
		t.Fatalf("RunExperiment failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}

	// All Frank-Wolfe variants approach the projection of the center onto
	// the unit L1 ball, where the objective is 0.0225.
	for _, res := range results {
		final := res.Objectives[len(res.Objectives)-1]
		if math.Abs(final-0.0225) > 0.05 {
			t.Errorf("%s final objective = %v, want near 0.0225", res.Algorithm, final)
		}
		if res.RunID == "" {
			t.Errorf("%s has empty run ID", res.Algorithm)
		}
	}
}

func TestRunExperimentPersistsRecords(t *testing.T) {
	cfg := baseConfig()
	cfg.Run.Algorithms = []string{"fw", "gd"}
	cfg.Run.OutDir = t.TempDir()

	results, err := RunExperiment(cfg)
	if err != nil {
		t.Fatalf("RunExperiment failed: %v", err)
	}

	st, err := store.NewFSStore(cfg.Run.OutDir)
	if err != nil {
		t.Fatalf("NewFSStore failed: %v", err)
	}
	infos, err := st.ListRuns()
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("stored %d runs, want 2", len(infos))
	}

	for _, res := range results {
		record, err := st.LoadRun(res.RunID)
		if err != nil {
			t.Fatalf("LoadRun(%s) failed: %v", res.RunID, err)
		}
		if record.Steps != cfg.Run.Steps {
			t.Errorf("%s record steps = %d, want %d", res.RunID, record.Steps, cfg.Run.Steps)
		}

		tr, err := store.NewTraceReader(cfg.Run.OutDir, res.RunID)
		if err != nil {
			t.Fatalf("NewTraceReader(%s) failed: %v", res.RunID, err)
		}
		entries, err := tr.ReadAll()
		tr.Close()
		if err != nil {
			t.Fatalf("ReadAll(%s) failed: %v", res.RunID, err)
		}
		if len(entries) != cfg.Run.Steps {
			t.Errorf("%s trace has %d entries, want %d", res.RunID, len(entries), cfg.Run.Steps)
		}
	}
}

func TestRunExperimentUnsupportedPairing(t *testing.T) {
	cfg := baseConfig()
	cfg.Constraint = config.Constraint{Kind: "n_supp", Radius: 1, Support: 1}
	cfg.Run.Algorithms = []string{"gd"}

	_, err := RunExperiment(cfg)
	if err == nil {
		t.Fatal("RunExperiment succeeded, want unsupported-oracle error")
	}
	if !errors.Is(err, opt.ErrUnsupported) {
		t.Errorf("error = %v, want to wrap opt.ErrUnsupported", err)
	}
}

func TestBuildLoss(t *testing.T) {
	tests := []struct {
		name    string
		problem config.Problem
		wantDim int
		wantErr bool
	}{
		{
			name:    "quadratic",
			problem: config.Problem{Kind: "quadratic", Center: []float64{1, 2, 3}},
			wantDim: 3,
		},
		{
			name: "least squares",
			problem: config.Problem{
				Kind:    "least_squares",
				Design:  [][]float64{{1, 2}, {3, 4}},
				Targets: []float64{1, -1},
			},
			wantDim: 2,
		},
		{
			name: "logistic",
			problem: config.Problem{
				Kind:    "logistic",
				Design:  [][]float64{{1, 0}, {0, 1}},
				Targets: []float64{1, -1},
			},
			wantDim: 2,
		},
		{
			name:    "unknown kind",
			problem: config.Problem{Kind: "huber"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := BuildLoss(tt.problem)
			if tt.wantErr {
				if err == nil {
					t.Fatal("BuildLoss succeeded, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("BuildLoss failed: %v", err)
			}
			if l.Dim() != tt.wantDim {
				t.Errorf("Dim() = %d, want %d", l.Dim(), tt.wantDim)
			}
			if l.Lipschitz() <= 0 {
				t.Errorf("Lipschitz() = %v, want positive", l.Lipschitz())
			}
		})
	}
}

func TestBuildConstraint(t *testing.T) {
	for _, kind := range []string{"l1", "l2", "n_supp"} {
		c := config.Constraint{Kind: kind, Radius: 1, Support: 2}
		if _, err := BuildConstraint(c); err != nil {
			t.Errorf("BuildConstraint(%s) failed: %v", kind, err)
		}
	}
	if _, err := BuildConstraint(config.Constraint{Kind: "box", Radius: 1}); err == nil {
		t.Error("BuildConstraint(box) succeeded, want error")
	}
}
