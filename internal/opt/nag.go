package opt

import "gonum.org/v1/gonum/mat"

// NAG is Nesterov's accelerated gradient method for constrained smooth
// minimization. The gradient is evaluated at the extrapolation point
// y = delta*v + (1-delta)*x; the iterate takes the short step 1/L from y
// while the auxiliary sequence v takes a long step alpha = (k+2)/(2L) that
// grows linearly with the iteration count. Both updates project back onto
// the feasible set, so projection support is required, same as GD.
type NAG struct {
	state
	y  *mat.VecDense
	v  *mat.VecDense
	lr float64
}

// NewNAG constructs Nesterov's accelerated gradient starting from the
// feasible point x0.
func NewNAG(x0 *mat.VecDense, loss Loss, set Constraint) *NAG {
	return &NAG{
		state: newState(x0, loss, set),
		y:     mat.VecDenseCopyOf(x0),
		v:     mat.VecDenseCopyOf(x0),
		lr:    1 / loss.Lipschitz(),
	}
}

func (o *NAG) Step() (float64, error) {
	// delta and alpha both read the counter before it is incremented for
	// this call.
	delta := o.delta()
	o.y.ScaleVec(delta, o.v)
	o.y.AddScaledVec(o.y, 1-delta, o.x)
	grad := o.loss.Grad(o.y)

	var p mat.VecDense
	p.AddScaledVec(o.y, -o.lr, grad)
	x, err := o.set.Project(&p)
	if err != nil {
		return 0, err
	}
	o.x.CopyVec(x)

	alpha := float64(o.nIter+2) / (2 * o.loss.Lipschitz())
	p.AddScaledVec(o.v, -alpha, grad)
	v, err := o.set.Project(&p)
	if err != nil {
		return 0, err
	}
	o.v.CopyVec(v)

	o.nIter++
	return o.loss.Value(o.x), nil
}
