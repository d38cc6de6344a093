package escarp

import (
	"math"
	"testing"
)

func TestFlexZeroThickness(t *testing.T) {
	dh := []float64{-1., -2., 0., 1.}
	w := flexResponse(dh, 100., &FlexureConfig{Thickness: 0., RhoC: 2700., RhoM: 3300.})
	for j, v := range w {
		if v != 0. {
			t.Fatalf("column %d deflected %g with a rigid (Te=0) plate", j, v)
		}
	}
}

func TestFlexUnloadRebound(t *testing.T) {
	nc := 201
	dh := make([]float64, nc)
	dh[nc/2] = -100. // erosional unload at the centre

	flx := &FlexureConfig{Thickness: 15.e3, RhoC: 2700., RhoM: 3300.}
	w := flexResponse(dh, 20.e3, flx)

	if w[nc/2] <= 0. {
		t.Fatal("unloading did not rebound the surface upward")
	}
	for j := 0; j < nc/2; j++ {
		if math.Abs(w[j]-w[nc-1-j]) > 1e-9 {
			t.Fatalf("response not symmetric about the load at offset %d", j)
		}
	}
	// the peak sits under the load
	for j := range w {
		if w[j] > w[nc/2]+1e-12 {
			t.Fatalf("deflection at column %d exceeds the value under the load", j)
		}
	}
	// far field decays to nothing
	if w[0] != 0. || w[nc-1] != 0. {
		t.Fatal("deflection did not vanish in the far field")
	}
}

func TestFlexLinearity(t *testing.T) {
	nc := 101
	dh := make([]float64, nc)
	dh[nc/2] = -10.
	dh2 := make([]float64, nc)
	dh2[nc/2] = -20.

	flx := &FlexureConfig{Thickness: 15.e3, RhoC: 2700., RhoM: 3300.}
	w := flexResponse(dh, 1000., flx)
	w2 := flexResponse(dh2, 1000., flx)
	for j := range w {
		if math.Abs(w2[j]-2.*w[j]) > 1e-9*math.Abs(w[j])+1e-15 {
			t.Fatalf("doubling the load did not double the deflection at column %d", j)
		}
	}
}

func TestColumnLoadAveragesAlongStrike(t *testing.T) {
	m := testMesh(4, 3, 100.)
	dz := make([]float64, m.Nr*m.Nc)
	for r := 0; r < m.Nr; r++ {
		dz[m.CellID(r, 1)] = -2.
	}
	dz[m.CellID(0, 2)] = 4.

	q := columnLoad(m, dz)
	if q[0] != 0. || q[1] != -2. || q[2] != 1. {
		t.Fatalf("column loads %v, want [0 -2 1]", q)
	}
}
