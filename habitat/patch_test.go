package habitat

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	escarp "github.com/zuccs-eucs-LEM/Escarpment-Habitat-Patch-Implementation"
)

func flatState(m *escarp.Mesh, elev, rain float64) *escarp.State {
	n := m.Nr * m.Nc
	s := &escarp.State{
		Elev: make([]float64, n),
		Rain: make([]float64, n),
	}
	for i := 0; i < n; i++ {
		s.Elev[i] = elev
		s.Rain[i] = rain
	}
	return s
}

func TestSuitableCriteria(t *testing.T) {
	m := &escarp.Mesh{Nr: 3, Nc: 5, Cw: 1000.}
	crit := Criteria{Zmin: 0., Zmax: 400., SlopeMax: .15, RainMin: .5}

	s := flatState(m, 100., 1.)
	for i, ok := range Suitable(m, s, crit) {
		assert.Truef(t, ok, "flat mesic lowland cell %d should be suitable", i)
	}

	// below sea level
	s.Sea = 200.
	for _, ok := range Suitable(m, s, crit) {
		assert.False(t, ok)
	}
	s.Sea = 0.

	// too dry
	s = flatState(m, 100., .2)
	for _, ok := range Suitable(m, s, crit) {
		assert.False(t, ok)
	}

	// too steep: a 400 m spike over 1000 m cells
	s = flatState(m, 100., 1.)
	spike := m.CellID(1, 2)
	s.Elev[spike] = 500.
	mask := Suitable(m, s, crit)
	assert.False(t, mask[spike], "spike above elevation band")
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			assert.False(t, mask[m.CellID(1+dr, 2+dc)], "cells adjoining the spike exceed the slope ceiling")
		}
	}
}

func TestLabelConnectsDiagonals(t *testing.T) {
	m := &escarp.Mesh{Nr: 4, Nc: 4, Cw: 1000.}
	mask := make([]bool, m.Nr*m.Nc)
	// a diagonal chain, 8-connected into one patch
	for k := 0; k < 4; k++ {
		mask[m.CellID(k, k)] = true
	}
	lbl, np := Label(m, mask)
	require.Equal(t, 1, np)
	for k := 0; k < 4; k++ {
		assert.Equal(t, int32(1), lbl[m.CellID(k, k)])
	}
}

func TestLabelSeparatesPatches(t *testing.T) {
	m := &escarp.Mesh{Nr: 5, Nc: 5, Cw: 1000.}
	mask := make([]bool, m.Nr*m.Nc)
	mask[m.CellID(0, 0)] = true
	mask[m.CellID(0, 1)] = true
	mask[m.CellID(4, 4)] = true

	lbl, np := Label(m, mask)
	require.Equal(t, 2, np)
	assert.Equal(t, lbl[m.CellID(0, 0)], lbl[m.CellID(0, 1)])
	assert.NotEqual(t, lbl[m.CellID(0, 0)], lbl[m.CellID(4, 4)])
	for i, id := range lbl {
		if !mask[i] {
			assert.Equal(t, int32(0), id)
		}
	}
}

func TestComputeMetrics(t *testing.T) {
	m := &escarp.Mesh{Nr: 5, Nc: 5, Cw: 1000.}
	s := flatState(m, 100., 1.)
	s.Time, s.Step = 2.e6, 2

	// carve the domain down to two patches: a 2x2 block and a single cell
	crit := Criteria{Zmin: 0., Zmax: 400., SlopeMax: 1.e9, RainMin: .5}
	for i := range s.Rain {
		s.Rain[i] = 0.
	}
	for _, id := range []int{m.CellID(0, 0), m.CellID(0, 1), m.CellID(1, 0), m.CellID(1, 1), m.CellID(4, 4)} {
		s.Rain[id] = 1.
	}

	mm := Compute(m, s, crit)
	acell := m.Cw * m.Cw
	assert.Equal(t, 2, mm.Npatch)
	assert.Equal(t, 5.*acell, mm.AreaTotal)
	assert.Equal(t, 2.5*acell, mm.AreaMean)
	assert.Equal(t, 4.*acell, mm.AreaLargest)
	assert.Equal(t, 2.e6, mm.Time)
	assert.Equal(t, 2, mm.Step)
	// 2x2 block: 8 exposed sides; single cell: 4
	assert.InDelta(t, 12.*m.Cw/(5.*acell), mm.EdgeDensity, 1e-12)
}

func TestWriteMetricsCSV(t *testing.T) {
	fp := filepath.Join(t.TempDir(), "habitat.metrics.csv")
	WriteCSV(fp, []Metrics{
		{Time: 0., Step: 0, Npatch: 3, AreaTotal: 3.e6, AreaMean: 1.e6, AreaLargest: 2.e6, EdgeDensity: .004},
		{Time: 1.e6, Step: 1, Npatch: 2, AreaTotal: 5.e6, AreaMean: 2.5e6, AreaLargest: 4.e6, EdgeDensity: .0024},
	})
	fi, err := os.Stat(fp)
	require.NoError(t, err)
	assert.Positive(t, fi.Size())
}

func TestComputeEmptyMask(t *testing.T) {
	m := &escarp.Mesh{Nr: 3, Nc: 3, Cw: 1000.}
	s := flatState(m, -50., 1.) // everything submerged
	mm := Compute(m, s, DefaultCriteria())
	assert.Zero(t, mm.Npatch)
	assert.Zero(t, mm.AreaTotal)
	assert.Zero(t, mm.EdgeDensity)
}
