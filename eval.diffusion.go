package escarp

import "math"

// diffuse applies linear hillslope diffusion over one step, explicit in
// time. The diffusivity is hillslopeKs where regolith is present
// (cumulative deposition positive), hillslopeKa on bare bedrock; submerged
// cells are smoothed down to the smthD wave-base depth and are inert below
// it. Sub-steps are increased beyond the configured count whenever the
// explicit stability limit D dt/cs² <= 1/4 requires it. Base-level cells
// are held fixed.
//
// Returns the elevation change [m] over the step.
func diffuse(m *Mesh, z, erodep []float64, sea, dt float64, dif *DiffusionConfig, bc string) []float64 {
	n := len(z)
	dmax := math.Max(dif.HillslopeKa, dif.HillslopeKs)
	ns := dif.Nsteps
	if dmax > 0. {
		if nmin := int(math.Ceil(4. * dmax * dt / (m.Cw * m.Cw))); nmin > ns {
			ns = nmin
		}
	}
	dts := dt / float64(ns)

	cur := make([]float64, n)
	copy(cur, z)
	nxt := make([]float64, n)

	for s := 0; s < ns; s++ {
		parChunks(n, func(i0, i1 int) {
			for i := i0; i < i1; i++ {
				if isBaseLevel(m, i, bc) {
					nxt[i] = cur[i]
					continue
				}
				d := cellDiffusivity(cur[i], erodep[i], sea, dif)
				if d <= 0. {
					nxt[i] = cur[i]
					continue
				}
				r, c := m.RowCol(i)
				lap := 0.
				for _, nb := range [4]int{m.CellID(r-1, c), m.CellID(r+1, c), m.CellID(r, c-1), m.CellID(r, c+1)} {
					if nb < 0 {
						continue // no-flux borders
					}
					lap += cur[nb] - cur[i]
				}
				nxt[i] = cur[i] + d*dts*lap/(m.Cw*m.Cw)
			}
		})
		cur, nxt = nxt, cur
	}

	dz := nxt // reuse
	for i := range dz {
		dz[i] = cur[i] - z[i]
	}
	return dz
}

func cellDiffusivity(z, erodep, sea float64, dif *DiffusionConfig) float64 {
	if z < sea {
		if sea-z > dif.SmthD {
			return 0. // below wave base
		}
		return dif.HillslopeKs
	}
	if erodep > 0. {
		return dif.HillslopeKs
	}
	return dif.HillslopeKa
}
