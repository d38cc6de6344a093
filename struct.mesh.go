package escarp

import (
	"encoding/gob"
	"fmt"
	"os"

	"github.com/maseology/goHydro/grid"
)

// Mesh is the discretized escarpment domain: a uniform raster definition
// plus the initial surface. Cell IDs are row-major (cid = row*Nc + col),
// column 0 at the seaward edge.
type Mesh struct {
	GD     *grid.Definition
	Z0     []float64 // initial surface elevation [m]
	Nr, Nc int
	Cw     float64 // cell width [m]
}

// X returns the across-margin distance of column j, measured from the
// seaward edge.
func (m *Mesh) X(j int) float64 { return (float64(j) + .5) * m.Cw }

// RowCol splits a row-major cell ID.
func (m *Mesh) RowCol(cid int) (int, int) { return cid / m.Nc, cid % m.Nc }

// CellID returns the row-major cell ID, -1 when off-grid.
func (m *Mesh) CellID(r, c int) int {
	if r < 0 || r >= m.Nr || c < 0 || c >= m.Nc {
		return -1
	}
	return r*m.Nc + c
}

func (m *Mesh) Checkandprint(chkdirprfx string) {
	writeFloats32(m.GD, chkdirprfx+"mesh.z0.bil", m.Z0)
	xx := make([]float64, m.Nr*m.Nc)
	for i := range xx {
		xx[i] = m.X(i % m.Nc)
	}
	writeFloats32(m.GD, chkdirprfx+"mesh.x.bil", xx) // distance from the seaward edge
}

func (m *Mesh) SaveGob(fp string) error {
	f, err := os.Create(fp)
	if err != nil {
		return fmt.Errorf(" mesh.SaveGob %v", err)
	}
	if err := gob.NewEncoder(f).Encode(m); err != nil {
		return fmt.Errorf(" mesh.SaveGob %v", err)
	}
	f.Close()
	return nil
}

func LoadGobMesh(fp string) (*Mesh, error) {
	var m Mesh
	f, err := os.Open(fp)
	if err != nil {
		return nil, err
	}
	if err := gob.NewDecoder(f).Decode(&m); err != nil {
		return nil, err
	}
	f.Close()
	return &m, nil
}
