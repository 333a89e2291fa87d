package loss

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// LeastSquares is f(x) = ||Ax - b||^2 / (2n) for an n-by-d design matrix A
// and target vector b, with gradient A^T(Ax - b)/n. Its gradient Lipschitz
// constant is sigma_max(A)^2 / n, computed once from the singular values of
// A at construction.
type LeastSquares struct {
	a   *mat.Dense
	b   *mat.VecDense
	n   int
	d   int
	lip float64
}

// NewLeastSquares builds the least-squares loss for the given design matrix
// and targets. The matrix is copied; the loss owns its data.
func NewLeastSquares(a *mat.Dense, b *mat.VecDense) (*LeastSquares, error) {
	n, d := a.Dims()
	if b.Len() != n {
		return nil, errors.Errorf("design matrix has %d rows but %d targets given", n, b.Len())
	}

	var svd mat.SVD
	if ok := svd.Factorize(a, mat.SVDNone); !ok {
		return nil, errors.New("svd of design matrix failed to converge")
	}
	s := svd.Values(nil)

	return &LeastSquares{
		a:   mat.DenseCopyOf(a),
		b:   mat.VecDenseCopyOf(b),
		n:   n,
		d:   d,
		lip: s[0] * s[0] / float64(n),
	}, nil
}

func (l *LeastSquares) Dim() int { return l.d }

func (l *LeastSquares) Lipschitz() float64 { return l.lip }

func (l *LeastSquares) Grad(x mat.Vector) *mat.VecDense {
	r := l.residual(x)
	g := mat.NewVecDense(l.d, nil)
	g.MulVec(l.a.T(), r)
	g.ScaleVec(1/float64(l.n), g)
	return g
}

func (l *LeastSquares) Value(x mat.Vector) float64 {
	r := l.residual(x)
	return mat.Dot(r, r) / (2 * float64(l.n))
}

func (l *LeastSquares) residual(x mat.Vector) *mat.VecDense {
	r := mat.NewVecDense(l.n, nil)
	r.MulVec(l.a, x)
	r.SubVec(r, l.b)
	return r
}
