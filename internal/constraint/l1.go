// Package constraint implements the feasible-set oracles consumed by the
// optimizers: the Frank-Wolfe linear-minimization subproblem and Euclidean
// projection. The families match the ones the experiments use: L1 ball,
// L2 ball, and the K-sparse support set (which has no projection).
package constraint

import (
	"math"
	"sort"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// L1Ball is the set {x : ||x||_1 <= Radius}.
type L1Ball struct {
	radius float64
}

// NewL1Ball returns the L1 ball of the given radius.
func NewL1Ball(radius float64) (*L1Ball, error) {
	if radius <= 0 {
		return nil, errors.Errorf("l1 ball radius must be positive, got %v", radius)
	}
	return &L1Ball{radius: radius}, nil
}

// MustL1Ball is NewL1Ball that panics on invalid radius.
func MustL1Ball(radius float64) *L1Ball {
	set, err := NewL1Ball(radius)
	if err != nil {
		panic(err)
	}
	return set
}

// LinMin returns the ball vertex -R*sign(g_i)*e_i for i = argmax |g_i|.
// Ties go to the lowest index; a zero maximal component keeps the origin,
// which is feasible and makes the oracle total.
func (c *L1Ball) LinMin(grad mat.Vector) (*mat.VecDense, error) {
	n := grad.Len()
	v := mat.NewVecDense(n, nil)

	idx := 0
	best := math.Abs(grad.AtVec(0))
	for i := 1; i < n; i++ {
		if a := math.Abs(grad.AtVec(i)); a > best {
			idx, best = i, a
		}
	}

	switch g := grad.AtVec(idx); {
	case g > 0:
		v.SetVec(idx, -c.radius)
	case g < 0:
		v.SetVec(idx, c.radius)
	}
	return v, nil
}

// Project returns the exact Euclidean projection onto the ball, computed by
// the sort-based soft-threshold construction: find the threshold theta such
// that sum_i max(|p_i|-theta, 0) = R and shrink every coordinate by theta.
func (c *L1Ball) Project(point mat.Vector) (*mat.VecDense, error) {
	n := point.Len()
	w := make([]float64, n)
	for i := 0; i < n; i++ {
		w[i] = point.AtVec(i)
	}
	if floats.Norm(w, 1) <= c.radius {
		return mat.NewVecDense(n, w), nil
	}

	u := make([]float64, n)
	for i, t := range w {
		u[i] = math.Abs(t)
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(u)))

	// The coordinates that stay nonzero form a prefix of the sorted
	// magnitudes; theta from the longest valid prefix is the exact one.
	theta := 0.0
	cum := 0.0
	for j, t := range u {
		cum += t
		if cand := (cum - c.radius) / float64(j+1); t-cand > 0 {
			theta = cand
		}
	}

	for i, t := range w {
		w[i] = math.Copysign(math.Max(math.Abs(t)-theta, 0), t)
	}
	return mat.NewVecDense(n, w), nil
}
