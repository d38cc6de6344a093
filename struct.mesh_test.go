package escarp

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeshIndexing(t *testing.T) {
	m := testMesh(4, 7, 500.)
	for i := 0; i < m.Nr*m.Nc; i++ {
		r, c := m.RowCol(i)
		assert.Equal(t, i, m.CellID(r, c))
	}
	assert.Equal(t, -1, m.CellID(-1, 0))
	assert.Equal(t, -1, m.CellID(0, -1))
	assert.Equal(t, -1, m.CellID(m.Nr, 0))
	assert.Equal(t, -1, m.CellID(0, m.Nc))
	assert.Equal(t, 250., m.X(0))
	assert.Equal(t, 750., m.X(1))
}

func TestInitialSurfaceShape(t *testing.T) {
	cfg := Default()
	cfg.Domain.Roughness = 0. // deterministic profile
	m := testMesh(cfg.Domain.Nrows, cfg.Domain.Ncols, cfg.Domain.Cellsize)
	z := initialSurface(cfg, m)

	d := cfg.Domain
	for c := 0; c < m.Nc; c++ {
		x, zc := m.X(c), z[m.CellID(0, c)]
		switch {
		case x < d.CoastX:
			assert.Negativef(t, zc, "shelf column %d", c)
		case x >= d.CoastX+d.ScarpX+d.ScarpW:
			assert.InDeltaf(t, d.Zplateau, zc, 1e-9, "plateau column %d", c)
		default:
			assert.GreaterOrEqual(t, zc, 0.)
			assert.LessOrEqual(t, zc, d.Zplateau)
		}
	}
	// monotonic rise seaward edge to plateau
	for c := 1; c < m.Nc; c++ {
		require.GreaterOrEqual(t, z[c]+1e-9, z[c-1], "column %d", c)
	}
	// uniform along strike without roughness
	for r := 1; r < m.Nr; r++ {
		assert.Equal(t, z[m.CellID(0, 10)], z[m.CellID(r, 10)])
	}
}

func TestInitialSurfaceSeeded(t *testing.T) {
	cfg := Default()
	m := testMesh(cfg.Domain.Nrows, cfg.Domain.Ncols, cfg.Domain.Cellsize)
	z1 := initialSurface(cfg, m)
	z2 := initialSurface(cfg, m)
	assert.Equal(t, z1, z2, "same seed reproduces the surface")

	cfg.Domain.Seed++
	z3 := initialSurface(cfg, m)
	assert.NotEqual(t, z1, z3, "different seed perturbs the surface")
}

func TestMeshGobRoundTrip(t *testing.T) {
	m := testMesh(3, 4, 100.)
	m.Z0 = rampSurface(m, .01)
	fp := filepath.Join(t.TempDir(), "mesh.gob")
	require.NoError(t, m.SaveGob(fp))
	m2, err := LoadGobMesh(fp)
	require.NoError(t, err)
	assert.Equal(t, m.Z0, m2.Z0)
	assert.Equal(t, m.Nr, m2.Nr)
	assert.Equal(t, m.Nc, m2.Nc)
	assert.Equal(t, m.Cw, m2.Cw)
}
