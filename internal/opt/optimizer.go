// Package opt implements first-order iterative algorithms for minimizing a
// smooth convex objective over a constrained feasible set: vanilla
// Frank-Wolfe and two accelerated variants driven by a linear-minimization
// oracle, plus projected gradient descent and Nesterov's accelerated
// gradient driven by a Euclidean projection.
//
// Each optimizer owns its iterate and auxiliary vectors exclusively and
// advances them one iteration per Step call. Iterations of a single
// instance are inherently sequential; distinct instances share no state and
// may be driven concurrently.
package opt

import (
	goerrors "errors"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Algorithm names accepted by New.
const (
	AlgFW      = "fw"
	AlgAFW     = "afw"
	AlgExtraFW = "extrafw"
	AlgGD      = "gd"
	AlgNAG     = "nag"
)

// ErrNotImplemented is returned by the bare optimizer state, which only
// describes the shared shape and cannot step on its own.
var ErrNotImplemented = goerrors.New("opt: step not implemented")

// ErrUnsupported reports that a constraint set does not provide the oracle
// an algorithm asked for. It surfaces on the first Step that needs the
// oracle, never at construction.
var ErrUnsupported = goerrors.New("opt: oracle not supported by constraint set")

// Loss is the objective oracle. Implementations must be deterministic;
// every Step of a gradient-based variant calls Grad at least once.
type Loss interface {
	// Dim returns the problem dimension d.
	Dim() int

	// Lipschitz returns the gradient Lipschitz constant L, used as the
	// fixed step size 1/L by the gradient-based variants.
	Lipschitz() float64

	// Grad returns the gradient of the objective at x as a new vector.
	Grad(x mat.Vector) *mat.VecDense

	// Value returns the objective value at x.
	Value(x mat.Vector) float64
}

// Constraint is the feasible-set oracle. A given set need not support both
// operations; an unsupported oracle returns an error wrapping
// ErrUnsupported.
type Constraint interface {
	// LinMin returns the feasible point minimizing the inner product with
	// grad (the Frank-Wolfe subproblem).
	LinMin(grad mat.Vector) (*mat.VecDense, error)

	// Project returns the nearest feasible point to point under Euclidean
	// distance.
	Project(point mat.Vector) (*mat.VecDense, error)
}

// Optimizer is a stepping algorithm over one exclusively-owned iterate.
type Optimizer interface {
	// Step advances the iterate by exactly one iteration, mutating all
	// instance-owned state, and returns the objective value at the new
	// iterate. There is no termination logic; the caller decides when to
	// stop. Errors from the constraint oracles propagate unmodified.
	Step() (float64, error)

	// NumIter returns the number of completed Step calls.
	NumIter() int

	// X returns a copy of the current iterate.
	X() *mat.VecDense
}

// New constructs the named algorithm. The set of algorithms is closed;
// unknown names are an error.
func New(algorithm string, x0 *mat.VecDense, loss Loss, set Constraint) (Optimizer, error) {
	switch algorithm {
	case AlgFW:
		return NewFW(x0, loss, set), nil
	case AlgAFW:
		return NewAFW(x0, loss, set), nil
	case AlgExtraFW:
		return NewExtraFW(x0, loss, set), nil
	case AlgGD:
		return NewGD(x0, loss, set), nil
	case AlgNAG:
		return NewNAG(x0, loss, set), nil
	default:
		return nil, errors.Errorf("unknown algorithm %q", algorithm)
	}
}

// state is the shape shared by all variants: the iterate, the two
// collaborators and the iteration counter. It is not an algorithm itself.
type state struct {
	x     *mat.VecDense
	loss  Loss
	set   Constraint
	nIter int
}

// newState copies x0 so the instance exclusively owns its iterate. The
// initial point is assumed feasible; it is not validated here.
func newState(x0 *mat.VecDense, loss Loss, set Constraint) state {
	return state{x: mat.VecDenseCopyOf(x0), loss: loss, set: set}
}

func (s *state) Step() (float64, error) {
	return 0, errors.WithStack(ErrNotImplemented)
}

func (s *state) NumIter() int { return s.nIter }

func (s *state) X() *mat.VecDense { return mat.VecDenseCopyOf(s.x) }

// delta is the parameter-free diminishing step size 2/(n+2) shared by the
// Frank-Wolfe variants and NAG's mixing weight. At n = 0 it is exactly 1,
// which is what makes lazy zero-initialization of auxiliary vectors sound:
// any term scaled by (1-delta) vanishes on the first iteration.
func (s *state) delta() float64 {
	return 2 / float64(s.nIter+2)
}
