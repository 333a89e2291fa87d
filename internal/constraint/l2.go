package constraint

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// L2Ball is the set {x : ||x||_2 <= Radius}.
type L2Ball struct {
	radius float64
}

// NewL2Ball returns the L2 ball of the given radius.
func NewL2Ball(radius float64) (*L2Ball, error) {
	if radius <= 0 {
		return nil, errors.Errorf("l2 ball radius must be positive, got %v", radius)
	}
	return &L2Ball{radius: radius}, nil
}

// MustL2Ball is NewL2Ball that panics on invalid radius.
func MustL2Ball(radius float64) *L2Ball {
	set, err := NewL2Ball(radius)
	if err != nil {
		panic(err)
	}
	return set
}

// LinMin returns -R*g/||g||_2, the boundary point most anti-aligned with
// the gradient. A zero gradient keeps the origin.
func (c *L2Ball) LinMin(grad mat.Vector) (*mat.VecDense, error) {
	n := grad.Len()
	v := mat.NewVecDense(n, nil)
	nrm := mat.Norm(grad, 2)
	if nrm == 0 {
		return v, nil
	}
	v.ScaleVec(-c.radius/nrm, denseOf(grad))
	return v, nil
}

// Project rescales points outside the ball back onto its boundary; interior
// points are returned unchanged.
func (c *L2Ball) Project(point mat.Vector) (*mat.VecDense, error) {
	p := denseOf(point)
	nrm := mat.Norm(p, 2)
	if nrm <= c.radius {
		return p, nil
	}
	p.ScaleVec(c.radius/nrm, p)
	return p, nil
}

// denseOf copies an arbitrary vector into a fresh VecDense.
func denseOf(v mat.Vector) *mat.VecDense {
	n := v.Len()
	w := make([]float64, n)
	for i := 0; i < n; i++ {
		w[i] = v.AtVec(i)
	}
	return mat.NewVecDense(n, w)
}
