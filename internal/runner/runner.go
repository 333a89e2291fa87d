// Package runner drives optimizers: it builds the loss and constraint
// collaborators from an experiment config, steps each selected algorithm
// through its budget strictly sequentially, and records the objective
// history. Step budgets and stopping policy live here, never in the
// optimizers themselves.
package runner

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/fwopt/internal/config"
	"github.com/cwbudde/fwopt/internal/constraint"
	"github.com/cwbudde/fwopt/internal/loss"
	"github.com/cwbudde/fwopt/internal/opt"
	"github.com/cwbudde/fwopt/internal/store"
)

// Result holds the outcome of driving one optimizer.
type Result struct {
	Algorithm  string
	RunID      string
	Objectives []float64
	Final      *mat.VecDense
	Elapsed    time.Duration
}

// Run steps the optimizer through the given budget, writing one trace
// entry per iteration when tw is non-nil. The loop is strictly sequential;
// iteration k+1 reads the state iteration k produced.
func Run(algorithm string, o opt.Optimizer, steps int, tw *store.TraceWriter) (*Result, error) {
	start := time.Now()
	objectives := make([]float64, 0, steps)

	for k := 0; k < steps; k++ {
		val, err := o.Step()
		if err != nil {
			return nil, errors.Wrapf(err, "%s: step %d failed", algorithm, k)
		}
		objectives = append(objectives, val)

		if tw != nil {
			entry := store.TraceEntry{
				Iteration: o.NumIter(),
				Objective: val,
				Timestamp: time.Now(),
			}
			if err := tw.Write(entry); err != nil {
				return nil, errors.Wrapf(err, "%s: trace write failed", algorithm)
			}
		}
		slog.Debug("step complete", "algorithm", algorithm, "iteration", o.NumIter(), "objective", val)
	}

	return &Result{
		Algorithm:  algorithm,
		Objectives: objectives,
		Final:      o.X(),
		Elapsed:    time.Since(start),
	}, nil
}

// RunExperiment executes every algorithm in the config against the same
// problem, each from its own copy of the initial point. When out_dir is
// set, each run's record and trace are persisted there.
func RunExperiment(cfg *config.Config) ([]*Result, error) {
	lossFn, err := BuildLoss(cfg.Problem)
	if err != nil {
		return nil, err
	}
	set, err := BuildConstraint(cfg.Constraint)
	if err != nil {
		return nil, err
	}

	init := make([]float64, len(cfg.Run.Init))
	copy(init, cfg.Run.Init)
	x0 := mat.NewVecDense(len(init), init)

	var st *store.FSStore
	if cfg.Run.OutDir != "" {
		st, err = store.NewFSStore(cfg.Run.OutDir)
		if err != nil {
			return nil, errors.Wrap(err, "failed to open result store")
		}
	}

	results := make([]*Result, 0, len(cfg.Run.Algorithms))
	for _, alg := range cfg.Run.Algorithms {
		optimizer, err := opt.New(alg, x0, lossFn, set)
		if err != nil {
			return nil, err
		}

		runID := fmt.Sprintf("%s-%d", alg, time.Now().UnixNano())
		var tw *store.TraceWriter
		if st != nil {
			tw, err = store.NewTraceWriter(cfg.Run.OutDir, runID)
			if err != nil {
				return nil, errors.Wrapf(err, "%s: failed to open trace", alg)
			}
		}

		started := time.Now()
		slog.Info("starting run", "algorithm", alg, "steps", cfg.Run.Steps, "dim", lossFn.Dim())
		res, err := Run(alg, optimizer, cfg.Run.Steps, tw)
		if tw != nil {
			if cerr := tw.Close(); cerr != nil && err == nil {
				err = errors.Wrapf(cerr, "%s: failed to close trace", alg)
			}
		}
		if err != nil {
			return nil, err
		}
		res.RunID = runID
		slog.Info("run complete", "algorithm", alg,
			"objective", res.Objectives[len(res.Objectives)-1], "elapsed", res.Elapsed)

		if st != nil {
			record := &store.RunRecord{
				RunID:          runID,
				Algorithm:      alg,
				Problem:        cfg.Problem.Kind,
				Constraint:     cfg.Constraint.Kind,
				Steps:          cfg.Run.Steps,
				FinalObjective: res.Objectives[len(res.Objectives)-1],
				FinalIterate:   res.Final.RawVector().Data,
				StartedAt:      started,
				FinishedAt:     time.Now(),
			}
			if err := st.SaveRun(record); err != nil {
				return nil, errors.Wrapf(err, "%s: failed to save run record", alg)
			}
		}

		results = append(results, res)
	}
	return results, nil
}

// BuildLoss constructs the loss collaborator an experiment asks for.
func BuildLoss(p config.Problem) (opt.Loss, error) {
	switch p.Kind {
	case "quadratic":
		return loss.NewQuadratic(mat.NewVecDense(len(p.Center), append([]float64(nil), p.Center...))), nil
	case "least_squares":
		return loss.NewLeastSquares(designMatrix(p.Design), mat.NewVecDense(len(p.Targets), append([]float64(nil), p.Targets...)))
	case "logistic":
		return loss.NewLogistic(designMatrix(p.Design), p.Targets)
	default:
		return nil, errors.Errorf("unknown problem kind %q", p.Kind)
	}
}

// BuildConstraint constructs the feasible set an experiment asks for.
func BuildConstraint(c config.Constraint) (opt.Constraint, error) {
	switch c.Kind {
	case "l1":
		return constraint.NewL1Ball(c.Radius)
	case "l2":
		return constraint.NewL2Ball(c.Radius)
	case "n_supp":
		return constraint.NewSupportSet(c.Support, c.Radius)
	default:
		return nil, errors.Errorf("unknown constraint kind %q", c.Kind)
	}
}

func designMatrix(rows [][]float64) *mat.Dense {
	n, d := len(rows), len(rows[0])
	a := mat.NewDense(n, d, nil)
	for i, row := range rows {
		a.SetRow(i, row)
	}
	return a
}
