package escarp

import (
	"container/heap"
	"math"
)

// flownet is the per-step drainage topology, rebuilt on the depression-filled
// surface every dt.
type flownet struct {
	fill  []float64 // filled surface [m]
	basin []int32   // outlet label each cell drains to
	rcv   []int     // D8 receiver; -1 at base level
	ord   []int     // cell IDs in nondecreasing fill order (downstream first)
}

type fillItem struct {
	z   float64
	cid int
}

type fillHeap []fillItem

func (h fillHeap) Len() int            { return len(h) }
func (h fillHeap) Less(i, j int) bool  { return h[i].z < h[j].z }
func (h fillHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *fillHeap) Push(x interface{}) { *h = append(*h, x.(fillItem)) }
func (h *fillHeap) Pop() interface{} {
	o := *h
	n := len(o)
	it := o[n-1]
	*h = o[:n-1]
	return it
}

const fillEps = 1.e-6 // minimal drop imposed across filled flats [m]

// baseLevelCells returns the cells held at base level: the seaward column,
// plus every lateral edge under the open boundary code.
func baseLevelCells(m *Mesh, bc string) []int {
	var seeds []int
	for r := 0; r < m.Nr; r++ {
		seeds = append(seeds, m.CellID(r, 0))
	}
	if bc == "open" {
		for r := 0; r < m.Nr; r++ {
			seeds = append(seeds, m.CellID(r, m.Nc-1))
		}
		for c := 1; c < m.Nc-1; c++ {
			seeds = append(seeds, m.CellID(0, c), m.CellID(m.Nr-1, c))
		}
	}
	return seeds
}

var d8dr = [8]int{-1, -1, -1, 0, 0, 1, 1, 1}
var d8dc = [8]int{-1, 0, 1, -1, 1, -1, 0, 1}

// buildFlownet runs a priority-flood over the surface: depressions are
// filled with a minimal epsilon gradient, every cell is labelled with the
// base-level outlet it drains to, and D8 receivers are assigned on the
// filled surface so that drainage is defined everywhere.
func buildFlownet(m *Mesh, z []float64, bc string) *flownet {
	n := m.Nr * m.Nc
	net := &flownet{
		fill:  make([]float64, n),
		basin: make([]int32, n),
		rcv:   make([]int, n),
		ord:   make([]int, 0, n),
	}
	closed := make([]bool, n)

	h := &fillHeap{}
	heap.Init(h)
	for i, c := range baseLevelCells(m, bc) {
		if !closed[c] {
			closed[c] = true
			net.fill[c] = z[c]
			net.basin[c] = int32(i)
			net.rcv[c] = -1
			heap.Push(h, fillItem{z[c], c})
		}
	}

	for h.Len() > 0 {
		it := heap.Pop(h).(fillItem)
		net.ord = append(net.ord, it.cid)
		r, c := m.RowCol(it.cid)
		for k := 0; k < 8; k++ {
			nb := m.CellID(r+d8dr[k], c+d8dc[k])
			if nb < 0 || closed[nb] {
				continue
			}
			closed[nb] = true
			net.fill[nb] = math.Max(z[nb], net.fill[it.cid]+fillEps)
			net.basin[nb] = net.basin[it.cid]
			heap.Push(h, fillItem{net.fill[nb], nb})
		}
	}

	// steepest-descent receivers on the filled surface
	sq2 := math.Sqrt2
	for i := range net.rcv {
		if isBaseLevel(m, i, bc) {
			net.rcv[i] = -1
			continue
		}
		r, c := m.RowCol(i)
		rc, smax := -1, 0.
		for k := 0; k < 8; k++ {
			nb := m.CellID(r+d8dr[k], c+d8dc[k])
			if nb < 0 {
				continue
			}
			d := m.Cw
			if d8dr[k] != 0 && d8dc[k] != 0 {
				d *= sq2
			}
			if s := (net.fill[i] - net.fill[nb]) / d; s > smax {
				smax, rc = s, nb
			}
		}
		net.rcv[i] = rc
	}
	return net
}

func isBaseLevel(m *Mesh, cid int, bc string) bool {
	r, c := m.RowCol(cid)
	if c == 0 {
		return true
	}
	if bc == "open" {
		return r == 0 || r == m.Nr-1 || c == m.Nc-1
	}
	return false
}

// accumulate integrates discharge down the filled surface:
// FA_i = rain_i*Acell + sum of upstream FA [m³/yr].
func (net *flownet) accumulate(rain float64, acell float64) []float64 {
	fa := make([]float64, len(net.fill))
	for i := range fa {
		fa[i] = rain * acell
	}
	for k := len(net.ord) - 1; k >= 0; k-- { // upstream to downstream
		i := net.ord[k]
		if r := net.rcv[i]; r >= 0 {
			fa[r] += fa[i]
		}
	}
	return fa
}
