package escarp

import "math"

// elastic plate constants (gFlex conventions)
const (
	youngsMod = 65.e9 // [Pa]
	poisson   = 0.25
	gravity   = 9.81 // [m/s²]
)

// flexResponse computes the 1-D flexural isostatic deflection of the margin
// to a change in surface load, per across-margin column. The load change
// dh [m of rock, averaged along strike] is converted to a line load and
// convolved with the analytic point-load Green's function of a thin elastic
// plate; erosional unloading (dh < 0) therefore rebounds the surface.
//
// Columns respond in parallel; the returned deflection is positive up.
func flexResponse(dh []float64, cw float64, flx *FlexureConfig) []float64 {
	nc := len(dh)
	w := make([]float64, nc)
	if flx.Thickness <= 0. {
		return w
	}

	d := youngsMod * math.Pow(flx.Thickness, 3.) / (12. * (1. - poisson*poisson))
	alpha := math.Pow(4.*d/((flx.RhoM-flx.RhoC)*gravity), 0.25) // flexural parameter [m]

	// line loads [N/m] from the along-strike averaged rock column change
	q := make([]float64, nc)
	for j, v := range dh {
		q[j] = flx.RhoC * gravity * v * cw
	}

	g8d := math.Pow(alpha, 3.) / (8. * d)
	parChunks(nc, func(j0, j1 int) {
		for j := j0; j < j1; j++ {
			var wj float64
			for k := 0; k < nc; k++ {
				if q[k] == 0. {
					continue
				}
				r := math.Abs(float64(j-k)) * cw / alpha
				if r > 20. { // beyond the flexural bulge, no contribution
					continue
				}
				wj += q[k] * g8d * math.Exp(-r) * (math.Cos(r) + math.Sin(r))
			}
			w[j] = -wj // unloading rebounds upward
		}
	})
	return w
}

// columnLoad averages an elevation change along strike, one value per
// across-margin column.
func columnLoad(m *Mesh, dz []float64) []float64 {
	q := make([]float64, m.Nc)
	for i, v := range dz {
		q[i%m.Nc] += v
	}
	f := 1. / float64(m.Nr)
	for j := range q {
		q[j] *= f
	}
	return q
}
