package opt

import "gonum.org/v1/gonum/mat"

// ExtraFW is extrapolated Frank-Wolfe. Each iteration makes two gradient
// evaluations: a transient "probe" pass at the lookahead point that only
// produces the vertex used to move x, and a second pass at the new x that
// refreshes the persisted gradient average g and vertex v read by the next
// iteration's lookahead.
//
// The probe quantities (gHat, vHat) must never overwrite the persisted g
// and v; collapsing the two changes the algorithm's convergence behavior.
type ExtraFW struct {
	state
	y *mat.VecDense
	v *mat.VecDense
	g *mat.VecDense
}

// NewExtraFW constructs extrapolated Frank-Wolfe starting from the feasible
// point x0. Unlike AFW, v starts at x0; only g is lazily zero.
func NewExtraFW(x0 *mat.VecDense, loss Loss, set Constraint) *ExtraFW {
	return &ExtraFW{
		state: newState(x0, loss, set),
		y:     mat.VecDenseCopyOf(x0),
		v:     mat.VecDenseCopyOf(x0),
		g:     mat.NewVecDense(loss.Dim(), nil),
	}
}

func (o *ExtraFW) Step() (float64, error) {
	delta := o.delta()

	// Lookahead from the previous x and persisted v; first gradient.
	o.y.ScaleVec(1-delta, o.x)
	o.y.AddScaledVec(o.y, delta, o.v)
	gradY := o.loss.Grad(o.y)

	// Probe subproblem on a transient average; gHat is dropped after this
	// iteration.
	gHat := mat.NewVecDense(o.g.Len(), nil)
	gHat.ScaleVec(1-delta, o.g)
	gHat.AddScaledVec(gHat, delta, gradY)
	vHat, err := o.set.LinMin(gHat)
	if err != nil {
		return 0, err
	}

	// The iterate moves toward the probe vertex, not the persisted one.
	o.x.ScaleVec(1-delta, o.x)
	o.x.AddScaledVec(o.x, delta, vHat)

	// Second gradient, at the new x, refreshes the persisted g and v for
	// the next iteration.
	gradX := o.loss.Grad(o.x)
	o.g.ScaleVec(1-delta, o.g)
	o.g.AddScaledVec(o.g, delta, gradX)
	v, err := o.set.LinMin(o.g)
	if err != nil {
		return 0, err
	}
	o.v.CopyVec(v)

	o.nIter++
	return o.loss.Value(o.x), nil
}
