// Package config defines the YAML experiment description consumed by the
// runner and the CLI: which loss to minimize, over which constraint set,
// with which algorithms and step budget.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is a full experiment description.
type Config struct {
	Problem    Problem    `yaml:"problem"`
	Constraint Constraint `yaml:"constraint"`
	Run        Run        `yaml:"run"`
}

// Problem selects and parameterizes the loss collaborator.
type Problem struct {
	// Kind is one of "quadratic", "least_squares", "logistic".
	Kind string `yaml:"kind"`

	// Center is the quadratic's center (also fixes the dimension).
	Center []float64 `yaml:"center,omitempty"`

	// Design holds the rows of the design/feature matrix for
	// least_squares and logistic.
	Design [][]float64 `yaml:"design,omitempty"`

	// Targets are the least-squares right-hand side, or the +-1 labels
	// for logistic.
	Targets []float64 `yaml:"targets,omitempty"`
}

// Constraint selects and parameterizes the feasible set.
type Constraint struct {
	// Kind is one of "l1", "l2", "n_supp".
	Kind string `yaml:"kind"`

	// Radius of the ball (L1 or L2 depending on Kind).
	Radius float64 `yaml:"radius"`

	// Support is the sparsity level K, used only by n_supp.
	Support int `yaml:"support,omitempty"`
}

// Run describes the execution: which algorithms, for how many steps, from
// where, and where results go.
type Run struct {
	Algorithms []string  `yaml:"algorithms"`
	Steps      int       `yaml:"steps"`
	Init       []float64 `yaml:"init"`
	OutDir     string    `yaml:"out_dir,omitempty"`
}

// Load reads and parses an experiment file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read experiment file %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse experiment file %s: %w", path, err)
	}
	return cfg, nil
}

// Parse parses and validates an experiment description.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var validAlgorithms = map[string]bool{
	"fw":      true,
	"afw":     true,
	"extrafw": true,
	"gd":      true,
	"nag":     true,
}

// Validate checks the experiment for structural problems. It does not
// check feasibility of the initial point or oracle support; those surface
// when the run executes.
func (c *Config) Validate() error {
	switch c.Problem.Kind {
	case "quadratic":
		if len(c.Problem.Center) == 0 {
			return fmt.Errorf("quadratic problem requires a center")
		}
	case "least_squares", "logistic":
		if len(c.Problem.Design) == 0 {
			return fmt.Errorf("%s problem requires a design matrix", c.Problem.Kind)
		}
		width := len(c.Problem.Design[0])
		for i, row := range c.Problem.Design {
			if len(row) != width {
				return fmt.Errorf("design row %d has %d columns, want %d", i, len(row), width)
			}
		}
		if len(c.Problem.Targets) != len(c.Problem.Design) {
			return fmt.Errorf("got %d targets for %d design rows", len(c.Problem.Targets), len(c.Problem.Design))
		}
	case "":
		return fmt.Errorf("problem kind must be set")
	default:
		return fmt.Errorf("unknown problem kind: %s", c.Problem.Kind)
	}

	switch c.Constraint.Kind {
	case "l1", "l2":
		if c.Constraint.Radius <= 0 {
			return fmt.Errorf("%s constraint requires a positive radius", c.Constraint.Kind)
		}
	case "n_supp":
		if c.Constraint.Radius <= 0 {
			return fmt.Errorf("n_supp constraint requires a positive radius")
		}
		if c.Constraint.Support <= 0 {
			return fmt.Errorf("n_supp constraint requires a positive support size")
		}
	case "":
		return fmt.Errorf("constraint kind must be set")
	default:
		return fmt.Errorf("unknown constraint kind: %s", c.Constraint.Kind)
	}

	if len(c.Run.Algorithms) == 0 {
		return fmt.Errorf("at least one algorithm must be selected")
	}
	seen := make(map[string]bool)
	for _, alg := range c.Run.Algorithms {
		if !validAlgorithms[alg] {
			return fmt.Errorf("unknown algorithm: %s", alg)
		}
		if seen[alg] {
			return fmt.Errorf("duplicate algorithm: %s", alg)
		}
		seen[alg] = true
	}
	if c.Run.Steps <= 0 {
		return fmt.Errorf("step budget must be positive, got %d", c.Run.Steps)
	}
	if len(c.Run.Init) == 0 {
		return fmt.Errorf("an initial point must be given")
	}
	if dim := c.Dim(); len(c.Run.Init) != dim {
		return fmt.Errorf("initial point has dimension %d, problem has %d", len(c.Run.Init), dim)
	}
	return nil
}

// Dim returns the problem dimension implied by the loss parameters.
func (c *Config) Dim() int {
	if c.Problem.Kind == "quadratic" {
		return len(c.Problem.Center)
	}
	if len(c.Problem.Design) > 0 {
		return len(c.Problem.Design[0])
	}
	return 0
}
