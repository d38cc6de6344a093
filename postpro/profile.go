package postpro

import (
	"fmt"

	"github.com/maseology/mmio"

	escarp "github.com/zuccs-eucs-LEM/Escarpment-Habitat-Patch-Implementation"
)

// CrossProfile slices a snapshot along one across-margin transect row,
// returning distance from the seaward edge, elevation (relative to sea
// level), cumulative erosion/deposition and cumulative flexural uplift.
func CrossProfile(m *escarp.Mesh, s *escarp.State, row int) (x, elev, erodep, uplift []float64) {
	x = make([]float64, m.Nc)
	elev = make([]float64, m.Nc)
	erodep = make([]float64, m.Nc)
	uplift = make([]float64, m.Nc)
	for c := 0; c < m.Nc; c++ {
		i := m.CellID(row, c)
		x[c] = m.X(c)
		elev[c] = s.Elev[i] - s.Sea
		erodep[c] = s.EroDep[i]
		uplift[c] = s.Uplift[i]
	}
	return
}

// MeanProfile averages a field along strike, one value per column.
func MeanProfile(m *escarp.Mesh, f []float64) []float64 {
	p := make([]float64, m.Nc)
	for i, v := range f {
		p[i%m.Nc] += v
	}
	for j := range p {
		p[j] /= float64(m.Nr)
	}
	return p
}

// WriteProfiles writes the escarpment cross-profile of a snapshot and its
// along-strike averaged flexural-response curve as CSV.
func WriteProfiles(m *escarp.Mesh, s *escarp.State, row int, outprfx string) error {
	if row < 0 || row >= m.Nr {
		return fmt.Errorf("WriteProfiles: transect row %d outside domain (%d rows)", row, m.Nr)
	}

	x, elev, erodep, uplift := CrossProfile(m, s, row)
	mmio.WriteCSV(fmt.Sprintf("%sprofile.%d.csv", outprfx, s.Step), "x,elev,erodep,uplift", col(x), col(elev), col(erodep), col(uplift))

	wbar := MeanProfile(m, s.Flex)
	ubar := MeanProfile(m, s.Uplift)
	mmio.WriteCSV(fmt.Sprintf("%sflexcurve.%d.csv", outprfx, s.Step), "x,flex,uplift", col(x), col(wbar), col(ubar))
	return nil
}

func col(f []float64) []interface{} {
	o := make([]interface{}, len(f))
	for i, v := range f {
		o[i] = v
	}
	return o
}
