package loss

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Logistic is the averaged logistic-regression loss over an n-by-d feature
// matrix A and labels y_i in {-1, +1}:
//
//	f(x) = (1/n) * sum_i log(1 + exp(-y_i * a_i . x))
//
// Its gradient Lipschitz constant is sigma_max(A)^2 / (4n).
type Logistic struct {
	a      *mat.Dense
	labels []float64
	n      int
	d      int
	lip    float64
}

// NewLogistic builds the logistic loss for the given features and labels.
func NewLogistic(a *mat.Dense, labels []float64) (*Logistic, error) {
	n, d := a.Dims()
	if len(labels) != n {
		return nil, errors.Errorf("feature matrix has %d rows but %d labels given", n, len(labels))
	}
	for i, y := range labels {
		if y != 1 && y != -1 {
			return nil, errors.Errorf("label %d is %v, want -1 or +1", i, y)
		}
	}

	var svd mat.SVD
	if ok := svd.Factorize(a, mat.SVDNone); !ok {
		return nil, errors.New("svd of feature matrix failed to converge")
	}
	s := svd.Values(nil)

	cp := make([]float64, n)
	copy(cp, labels)
	return &Logistic{
		a:      mat.DenseCopyOf(a),
		labels: cp,
		n:      n,
		d:      d,
		lip:    s[0] * s[0] / (4 * float64(n)),
	}, nil
}

func (l *Logistic) Dim() int { return l.d }

func (l *Logistic) Lipschitz() float64 { return l.lip }

func (l *Logistic) Grad(x mat.Vector) *mat.VecDense {
	g := mat.NewVecDense(l.d, nil)
	for i := 0; i < l.n; i++ {
		row := l.a.RowView(i)
		m := -l.labels[i] * mat.Dot(row, x)
		g.AddScaledVec(g, -l.labels[i]*sigmoid(m), row)
	}
	g.ScaleVec(1/float64(l.n), g)
	return g
}

func (l *Logistic) Value(x mat.Vector) float64 {
	sum := 0.0
	for i := 0; i < l.n; i++ {
		m := -l.labels[i] * mat.Dot(l.a.RowView(i), x)
		sum += logOnePlusExp(m)
	}
	return sum / float64(l.n)
}

// sigmoid evaluates 1/(1+exp(-m)) without overflowing for large |m|.
func sigmoid(m float64) float64 {
	if m >= 0 {
		return 1 / (1 + math.Exp(-m))
	}
	e := math.Exp(m)
	return e / (1 + e)
}

// logOnePlusExp evaluates log(1+exp(m)) in its overflow-safe form.
func logOnePlusExp(m float64) float64 {
	if m > 0 {
		return m + math.Log1p(math.Exp(-m))
	}
	return math.Log1p(math.Exp(m))
}
