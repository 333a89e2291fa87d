package opt

import "gonum.org/v1/gonum/mat"

// AFW is accelerated Frank-Wolfe. It evaluates the gradient at a lookahead
// point y instead of the iterate and feeds a running weighted average g of
// those gradients to the linear-minimization oracle: extrapolate, then
// evaluate, then commit. One gradient evaluation and one oracle query per
// iteration, same as vanilla FW.
//
// v and g start at zero rather than at x0. The first iteration has
// delta = 1, so their (1-delta)-weighted contribution vanishes exactly and
// the initial values never leak into the trajectory.
type AFW struct {
	state
	y *mat.VecDense
	v *mat.VecDense
	g *mat.VecDense
}

// NewAFW constructs accelerated Frank-Wolfe starting from the feasible
// point x0.
func NewAFW(x0 *mat.VecDense, loss Loss, set Constraint) *AFW {
	d := loss.Dim()
	return &AFW{
		state: newState(x0, loss, set),
		y:     mat.VecDenseCopyOf(x0),
		v:     mat.NewVecDense(d, nil),
		g:     mat.NewVecDense(d, nil),
	}
}

func (o *AFW) Step() (float64, error) {
	delta := o.delta()

	// Lookahead, then evaluate there.
	o.y.ScaleVec(1-delta, o.y)
	o.y.AddScaledVec(o.y, delta, o.v)
	grad := o.loss.Grad(o.y)

	// Average the gradient and solve the subproblem on the average.
	o.g.ScaleVec(1-delta, o.g)
	o.g.AddScaledVec(o.g, delta, grad)
	v, err := o.set.LinMin(o.g)
	if err != nil {
		return 0, err
	}
	o.v.CopyVec(v)

	// Commit.
	o.x.ScaleVec(1-delta, o.x)
	o.x.AddScaledVec(o.x, delta, o.v)

	o.nIter++
	return o.loss.Value(o.x), nil
}
