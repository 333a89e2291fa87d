package opt_test

import (
	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/fwopt/internal/opt"
)

// vecData copies a vector into a plain slice for recording and comparison.
func vecData(v mat.Vector) []float64 {
	out := make([]float64, v.Len())
	for i := range out {
		out[i] = v.AtVec(i)
	}
	return out
}

// anisoLoss is f(x) = 0.5*((x_0-c_0)^2 + 4*(x_1-c_1)^2) with L = 4, used
// where a curvature different from 1 is needed so the 1/L step does not
// cancel the gradient exactly.
type anisoLoss struct {
	c [2]float64
}

func (l anisoLoss) Dim() int           { return 2 }
func (l anisoLoss) Lipschitz() float64 { return 4 }
func (l anisoLoss) Grad(x mat.Vector) *mat.VecDense {
	return mat.NewVecDense(2, []float64{
		x.AtVec(0) - l.c[0],
		4 * (x.AtVec(1) - l.c[1]),
	})
}
func (l anisoLoss) Value(x mat.Vector) float64 {
	d0 := x.AtVec(0) - l.c[0]
	d1 := x.AtVec(1) - l.c[1]
	return 0.5 * (d0*d0 + 4*d1*d1)
}

// spyLoss records every Grad call made through it.
type spyLoss struct {
	inner    opt.Loss
	gradArgs [][]float64
	grads    [][]float64
}

func (s *spyLoss) Dim() int           { return s.inner.Dim() }
func (s *spyLoss) Lipschitz() float64 { return s.inner.Lipschitz() }
func (s *spyLoss) Grad(x mat.Vector) *mat.VecDense {
	g := s.inner.Grad(x)
	s.gradArgs = append(s.gradArgs, vecData(x))
	s.grads = append(s.grads, vecData(g))
	return g
}
func (s *spyLoss) Value(x mat.Vector) float64 { return s.inner.Value(x) }

// spySet records every oracle call made through it.
type spySet struct {
	inner       opt.Constraint
	linMinArgs  [][]float64
	linMins     [][]float64
	projectArgs [][]float64
	projections [][]float64
}

func (s *spySet) LinMin(g mat.Vector) (*mat.VecDense, error) {
	v, err := s.inner.LinMin(g)
	if err != nil {
		return nil, err
	}
	s.linMinArgs = append(s.linMinArgs, vecData(g))
	s.linMins = append(s.linMins, vecData(v))
	return v, nil
}

func (s *spySet) Project(p mat.Vector) (*mat.VecDense, error) {
	v, err := s.inner.Project(p)
	if err != nil {
		return nil, err
	}
	s.projectArgs = append(s.projectArgs, vecData(p))
	s.projections = append(s.projections, vecData(v))
	return v, nil
}

// freeSet projects with the identity, standing in for an unbounded
// feasible region; its linear subproblem has no minimizer.
type freeSet struct{}

func (freeSet) LinMin(g mat.Vector) (*mat.VecDense, error) {
	return nil, opt.ErrUnsupported
}
func (freeSet) Project(p mat.Vector) (*mat.VecDense, error) {
	return mat.VecDenseCopyOf(p), nil
}
