package opt

import "gonum.org/v1/gonum/mat"

// FW is vanilla Frank-Wolfe with the parameter-free step size 2/(n+2).
// It carries no auxiliary state beyond the iterate and makes one gradient
// evaluation and one linear-minimization query per iteration. The iterate
// stays feasible structurally: each update is a convex combination of the
// previous iterate and a feasible vertex.
type FW struct {
	state
}

// NewFW constructs vanilla Frank-Wolfe starting from the feasible point x0.
func NewFW(x0 *mat.VecDense, loss Loss, set Constraint) *FW {
	return &FW{state: newState(x0, loss, set)}
}

func (o *FW) Step() (float64, error) {
	grad := o.loss.Grad(o.x)

	v, err := o.set.LinMin(grad)
	if err != nil {
		return 0, err
	}

	delta := o.delta()
	o.x.ScaleVec(1-delta, o.x)
	o.x.AddScaledVec(o.x, delta, v)

	o.nIter++
	return o.loss.Value(o.x), nil
}
