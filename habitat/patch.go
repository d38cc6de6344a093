// Package habitat derives habitat-patch distributions and their metrics
// from landscape snapshots: suitability classification, contiguous-patch
// labelling and per-snapshot patch statistics tracked over simulated time.
package habitat

import (
	"math"

	escarp "github.com/zuccs-eucs-LEM/Escarpment-Habitat-Patch-Implementation"
)

// Criteria classifies a cell as suitable habitat: an elevation band above
// sea level, a slope ceiling and a precipitation floor.
type Criteria struct {
	Zmin, Zmax float64 // elevation relative to sea level [m]
	SlopeMax   float64 // steepest D8 gradient [m/m]
	RainMin    float64 // [m/yr]
}

// DefaultCriteria describes the mesic lowland habitat tracked in the
// escarpment runs.
func DefaultCriteria() Criteria {
	return Criteria{Zmin: 0., Zmax: 400., SlopeMax: .15, RainMin: .5}
}

// Suitable masks the cells of a snapshot meeting the criteria.
func Suitable(m *escarp.Mesh, s *escarp.State, crit Criteria) []bool {
	n := m.Nr * m.Nc
	mask := make([]bool, n)
	for i := 0; i < n; i++ {
		zrel := s.Elev[i] - s.Sea
		if zrel < crit.Zmin || zrel > crit.Zmax {
			continue
		}
		if s.Rain[i] < crit.RainMin {
			continue
		}
		if slopeD8(m, s.Elev, i) > crit.SlopeMax {
			continue
		}
		mask[i] = true
	}
	return mask
}

func slopeD8(m *escarp.Mesh, z []float64, i int) float64 {
	r, c := m.RowCol(i)
	smax := 0.
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			nb := m.CellID(r+dr, c+dc)
			if nb < 0 {
				continue
			}
			d := m.Cw
			if dr != 0 && dc != 0 {
				d *= math.Sqrt2
			}
			if s := math.Abs(z[i]-z[nb]) / d; s > smax {
				smax = s
			}
		}
	}
	return smax
}

// Label assigns contiguous (8-connected) suitable cells a patch ID
// 1..np, 0 elsewhere, via union-find.
func Label(m *escarp.Mesh, mask []bool) ([]int32, int) {
	n := len(mask)
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}
	union := func(a, b int) {
		ra, rb := find(a), find(b)
		if ra != rb {
			parent[rb] = ra
		}
	}

	for i := 0; i < n; i++ {
		if !mask[i] {
			continue
		}
		r, c := m.RowCol(i)
		// forward half of the 8-neighbourhood suffices
		for _, nb := range [4]int{m.CellID(r, c+1), m.CellID(r+1, c-1), m.CellID(r+1, c), m.CellID(r+1, c+1)} {
			if nb >= 0 && mask[nb] {
				union(i, nb)
			}
		}
	}

	lbl := make([]int32, n)
	next := int32(0)
	roots := make(map[int]int32)
	for i := 0; i < n; i++ {
		if !mask[i] {
			continue
		}
		rt := find(i)
		id, ok := roots[rt]
		if !ok {
			next++
			id = next
			roots[rt] = id
		}
		lbl[i] = id
	}
	return lbl, int(next)
}
