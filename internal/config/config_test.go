package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const validExperiment = `
problem:
  kind: quadratic
  center: [0.8, -0.5]
constraint:
  kind: l1
  radius: 1.0
run:
  algorithms: [fw, afw, extrafw]
  steps: 50
  init: [1.0, 0.0]
  out_dir: ./data
`

func TestParseValidExperiment(t *testing.T) {
	cfg, err := Parse([]byte(validExperiment))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.Problem.Kind != "quadratic" {
		t.Errorf("Problem.Kind = %q, want quadratic", cfg.Problem.Kind)
	}
	if cfg.Constraint.Radius != 1.0 {
		t.Errorf("Constraint.Radius = %v, want 1.0", cfg.Constraint.Radius)
	}
	if len(cfg.Run.Algorithms) != 3 {
		t.Errorf("got %d algorithms, want 3", len(cfg.Run.Algorithms))
	}
	if cfg.Dim() != 2 {
		t.Errorf("Dim() = %d, want 2", cfg.Dim())
	}
	if cfg.Run.OutDir != "./data" {
		t.Errorf("Run.OutDir = %q, want ./data", cfg.Run.OutDir)
	}
}

func TestParseLeastSquaresExperiment(t *testing.T) {
	doc := `
problem:
  kind: least_squares
  design:
    - [1, 2]
    - [3, 4]
    - [5, 6]
  targets: [1, -1, 2]
constraint:
  kind: l2
  radius: 2.0
run:
  algorithms: [gd, nag]
  steps: 10
  init: [0.0, 0.0]
`
	cfg, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.Dim() != 2 {
		t.Errorf("Dim() = %d, want 2", cfg.Dim())
	}
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"missing problem kind", func(c *Config) { c.Problem.Kind = "" }, "problem kind"},
		{"unknown problem kind", func(c *Config) { c.Problem.Kind = "huber" }, "unknown problem kind"},
		{"missing center", func(c *Config) { c.Problem.Center = nil }, "requires a center"},
		{"unknown constraint", func(c *Config) { c.Constraint.Kind = "box" }, "unknown constraint"},
		{"bad radius", func(c *Config) { c.Constraint.Radius = 0 }, "positive radius"},
		{"no algorithms", func(c *Config) { c.Run.Algorithms = nil }, "at least one algorithm"},
		{"unknown algorithm", func(c *Config) { c.Run.Algorithms = []string{"adam"} }, "unknown algorithm"},
		{"duplicate algorithm", func(c *Config) { c.Run.Algorithms = []string{"fw", "fw"} }, "duplicate algorithm"},
		{"zero steps", func(c *Config) { c.Run.Steps = 0 }, "step budget"},
		{"missing init", func(c *Config) { c.Run.Init = nil }, "initial point"},
		{"init dimension mismatch", func(c *Config) { c.Run.Init = []float64{1} }, "dimension"},
		{
			"n_supp needs support size",
			func(c *Config) { c.Constraint.Kind = "n_supp" },
			"support size",
		},
		{
			"ragged design matrix",
			func(c *Config) {
				c.Problem.Kind = "least_squares"
				c.Problem.Design = [][]float64{{1, 2}, {3}}
				c.Problem.Targets = []float64{1, 2}
			},
			"columns",
		},
		{
			"targets length mismatch",
			func(c *Config) {
				c.Problem.Kind = "least_squares"
				c.Problem.Design = [][]float64{{1, 2}, {3, 4}}
				c.Problem.Targets = []float64{1}
			},
			"targets",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte(validExperiment))
			if err != nil {
				t.Fatalf("Parse of valid base failed: %v", err)
			}
			tt.mutate(cfg)
			err = cfg.Validate()
			if err == nil {
				t.Fatal("Validate succeeded, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load of missing file succeeded, want error")
	}
}

func TestLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "experiment.yaml")
	if err := os.WriteFile(path, []byte(validExperiment), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Run.Steps != 50 {
		t.Errorf("Run.Steps = %d, want 50", cfg.Run.Steps)
	}
}

func TestParseInvalidYAML(t *testing.T) {
	if _, err := Parse([]byte("problem: [unclosed")); err == nil {
		t.Error("invalid yaml accepted, want error")
	}
}
