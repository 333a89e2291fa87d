package opt

import "gonum.org/v1/gonum/mat"

// GD is projected gradient descent with the fixed step size 1/L, where L is
// the loss's gradient Lipschitz constant. It requires the constraint set to
// support Euclidean projection; sets that only provide the
// linear-minimization oracle fail on the first Step.
type GD struct {
	state
	lr float64
}

// NewGD constructs projected gradient descent starting from the feasible
// point x0. The step size is computed once, here, from loss.Lipschitz().
func NewGD(x0 *mat.VecDense, loss Loss, set Constraint) *GD {
	return &GD{state: newState(x0, loss, set), lr: 1 / loss.Lipschitz()}
}

func (o *GD) Step() (float64, error) {
	grad := o.loss.Grad(o.x)

	var p mat.VecDense
	p.AddScaledVec(o.x, -o.lr, grad)
	x, err := o.set.Project(&p)
	if err != nil {
		return 0, err
	}
	o.x.CopyVec(x)

	o.nIter++
	return o.loss.Value(o.x), nil
}
