// Package loss implements the objective oracles consumed by the
// optimizers. Each loss exposes its dimension, its gradient Lipschitz
// constant, a gradient, and an objective value; the smoothness constant is
// computed once at construction.
package loss

import (
	"gonum.org/v1/gonum/mat"
)

// Quadratic is f(x) = 0.5*||x - c||^2 with gradient x - c and L = 1.
// It is the simplest smooth objective and the one the end-to-end tests
// use (c = 0 gives grad(x) = x exactly).
type Quadratic struct {
	center *mat.VecDense
}

// NewQuadratic returns the quadratic centered at c.
func NewQuadratic(center mat.Vector) *Quadratic {
	return &Quadratic{center: mat.VecDenseCopyOf(center)}
}

func (l *Quadratic) Dim() int { return l.center.Len() }

func (l *Quadratic) Lipschitz() float64 { return 1 }

func (l *Quadratic) Grad(x mat.Vector) *mat.VecDense {
	g := mat.NewVecDense(l.center.Len(), nil)
	g.AddScaledVec(x, -1, l.center)
	return g
}

func (l *Quadratic) Value(x mat.Vector) float64 {
	var r mat.VecDense
	r.AddScaledVec(x, -1, l.center)
	return 0.5 * mat.Dot(&r, &r)
}
