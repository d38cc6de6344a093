package escarp

import (
	"math"
	"testing"
)

func testMesh(nr, nc int, cw float64) *Mesh {
	return &Mesh{Nr: nr, Nc: nc, Cw: cw}
}

// rampSurface tilts down toward the seaward (column 0) edge.
func rampSurface(m *Mesh, grade float64) []float64 {
	z := make([]float64, m.Nr*m.Nc)
	for i := range z {
		z[i] = m.X(i%m.Nc) * grade
	}
	return z
}

func TestFlownetDrainsEverywhere(t *testing.T) {
	m := testMesh(6, 12, 100.)
	z := rampSurface(m, .01)
	z[m.CellID(3, 6)] = -5. // a pit on the ramp

	net := buildFlownet(m, z, "fixed")

	for i, r := range net.rcv {
		if isBaseLevel(m, i, "fixed") {
			if r != -1 {
				t.Fatalf("base-level cell %d assigned receiver %d", i, r)
			}
			continue
		}
		if r < 0 {
			t.Fatalf("cell %d has no receiver", i)
		}
		if net.fill[r] >= net.fill[i] {
			t.Fatalf("receiver of %d not downslope on the filled surface", i)
		}
	}
}

func TestFlownetFillsPit(t *testing.T) {
	m := testMesh(6, 12, 100.)
	z := rampSurface(m, .01)
	pit := m.CellID(3, 6)
	z[pit] = -5.

	net := buildFlownet(m, z, "fixed")
	if net.fill[pit] <= z[pit] {
		t.Fatal("pit not raised by depression filling")
	}
	for i := range z {
		if net.fill[i] < z[i] {
			t.Fatalf("fill below ground at cell %d", i)
		}
	}
}

func TestFlownetBasinLabelsComplete(t *testing.T) {
	m := testMesh(5, 8, 100.)
	net := buildFlownet(m, rampSurface(m, .01), "fixed")
	for i, b := range net.basin {
		if b < 0 || int(b) >= m.Nr {
			t.Fatalf("cell %d labelled %d, want one of %d seaward outlets", i, b, m.Nr)
		}
	}
}

func TestAccumulateConservesRain(t *testing.T) {
	m := testMesh(6, 12, 100.)
	net := buildFlownet(m, rampSurface(m, .01), "fixed")

	rain, acell := 1.2, m.Cw*m.Cw
	fa := net.accumulate(rain, acell)

	// all discharge must pass through the base-level cells
	exported := 0.
	for i := range fa {
		if net.rcv[i] == -1 {
			exported += fa[i]
		}
	}
	want := rain * acell * float64(m.Nr*m.Nc)
	if math.Abs(exported-want)/want > 1e-12 {
		t.Fatalf("exported discharge %f, want %f", exported, want)
	}
}

func TestOpenBoundaryBaseLevel(t *testing.T) {
	m := testMesh(5, 8, 100.)
	nb := 0
	for i := 0; i < m.Nr*m.Nc; i++ {
		if isBaseLevel(m, i, "open") {
			nb++
		}
	}
	want := 2*m.Nr + 2*(m.Nc-2) // full perimeter
	if nb != want {
		t.Fatalf("open boundary held %d cells at base level, want %d", nb, want)
	}
}
