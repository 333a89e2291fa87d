package constraint

import (
	"math"
	"sort"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/fwopt/internal/opt"
)

// SupportSet is the convex hull of the K-sparse points of the L2 ball of
// the given radius: {x : ||x||_0 <= K, ||x||_2 <= Radius} convexified. It
// is the sparsity constraint used by the Frank-Wolfe variants.
//
// Euclidean projection onto this set is not supported; pairing it with GD
// or NAG fails on the first Step with opt.ErrUnsupported.
type SupportSet struct {
	k      int
	radius float64
}

// NewSupportSet returns the K-sparse set of the given L2 radius.
func NewSupportSet(k int, radius float64) (*SupportSet, error) {
	if k <= 0 {
		return nil, errors.Errorf("support size must be positive, got %d", k)
	}
	if radius <= 0 {
		return nil, errors.Errorf("support set radius must be positive, got %v", radius)
	}
	return &SupportSet{k: k, radius: radius}, nil
}

// MustSupportSet is NewSupportSet that panics on invalid arguments.
func MustSupportSet(k int, radius float64) *SupportSet {
	set, err := NewSupportSet(k, radius)
	if err != nil {
		panic(err)
	}
	return set
}

// LinMin returns -R * g_S/||g_S||_2 restricted to S, the K coordinates of
// largest |g|. Ties go to the lowest index so the oracle is deterministic.
func (c *SupportSet) LinMin(grad mat.Vector) (*mat.VecDense, error) {
	n := grad.Len()
	v := mat.NewVecDense(n, nil)

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return math.Abs(grad.AtVec(idx[a])) > math.Abs(grad.AtVec(idx[b]))
	})

	k := c.k
	if k > n {
		k = n
	}
	top := make([]float64, k)
	for j := 0; j < k; j++ {
		top[j] = grad.AtVec(idx[j])
	}
	nrm := floats.Norm(top, 2)
	if nrm == 0 {
		return v, nil
	}
	for j := 0; j < k; j++ {
		v.SetVec(idx[j], -c.radius*top[j]/nrm)
	}
	return v, nil
}

// Project reports the set as unsupported: the sparsity set has no cheap
// exact Euclidean projection, and the gradient-based variants must not be
// paired with it.
func (c *SupportSet) Project(point mat.Vector) (*mat.VecDense, error) {
	return nil, errors.Wrap(opt.ErrUnsupported, "support set has no Euclidean projection")
}
