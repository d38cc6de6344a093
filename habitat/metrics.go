package habitat

import (
	"fmt"

	"github.com/maseology/mmio"

	escarp "github.com/zuccs-eucs-LEM/Escarpment-Habitat-Patch-Implementation"
)

// Metrics summarizes the patch mosaic of one snapshot.
type Metrics struct {
	Time        float64 // [yr]
	Npatch      int
	AreaTotal   float64 // [m²]
	AreaMean    float64 // [m²]
	AreaLargest float64 // [m²]
	EdgeDensity float64 // patch perimeter per suitable area [1/m]
	Step        int
}

// Compute classifies, labels and summarizes one snapshot.
func Compute(m *escarp.Mesh, s *escarp.State, crit Criteria) Metrics {
	mask := Suitable(m, s, crit)
	lbl, np := Label(m, mask)

	acell := m.Cw * m.Cw
	areas := make([]float64, np+1)
	edges := 0
	for i, id := range lbl {
		if id == 0 {
			continue
		}
		areas[id] += acell
		r, c := m.RowCol(i)
		for _, nb := range [4]int{m.CellID(r-1, c), m.CellID(r+1, c), m.CellID(r, c-1), m.CellID(r, c+1)} {
			if nb < 0 || !mask[nb] {
				edges++
			}
		}
	}

	mm := Metrics{Time: s.Time, Step: s.Step, Npatch: np}
	for _, a := range areas[1:] {
		mm.AreaTotal += a
		if a > mm.AreaLargest {
			mm.AreaLargest = a
		}
	}
	if np > 0 {
		mm.AreaMean = mm.AreaTotal / float64(np)
	}
	if mm.AreaTotal > 0. {
		mm.EdgeDensity = float64(edges) * m.Cw / mm.AreaTotal
	}
	return mm
}

// Series computes metrics for every snapshot of a completed run.
func Series(m *escarp.Mesh, outdir string, nsnap int, crit Criteria) ([]Metrics, error) {
	out := make([]Metrics, 0, nsnap)
	for k := 0; k < nsnap; k++ {
		s, err := escarp.LoadGobState(escarp.SnapshotFP(outdir, k))
		if err != nil {
			return nil, fmt.Errorf("habitat.Series snapshot %d: %v", k, err)
		}
		out = append(out, Compute(m, s, crit))
	}
	return out, nil
}

// WriteCSV saves a metrics series for plotting.
func WriteCSV(fp string, mm []Metrics) {
	t := make([]interface{}, len(mm))
	np := make([]interface{}, len(mm))
	at := make([]interface{}, len(mm))
	am := make([]interface{}, len(mm))
	al := make([]interface{}, len(mm))
	ed := make([]interface{}, len(mm))
	for i, v := range mm {
		t[i] = v.Time
		np[i] = v.Npatch
		at[i] = v.AreaTotal
		am[i] = v.AreaMean
		al[i] = v.AreaLargest
		ed[i] = v.EdgeDensity
	}
	mmio.WriteCSV(fp, "time,npatch,area_total,area_mean,area_largest,edge_density", t, np, at, am, al, ed)
}
