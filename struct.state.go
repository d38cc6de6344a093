package escarp

import (
	"encoding/gob"
	"fmt"
	"os"

	"github.com/maseology/goHydro/grid"
)

// State is one output snapshot of the evolving landscape.
type State struct {
	Elev    []float64 // surface elevation [m]
	Fill    []float64 // depression-filled surface [m]
	EroDep  []float64 // cumulative erosion(-)/deposition(+) [m]
	EDRate  []float64 // erosion/deposition rate over the last step [m/yr]
	Rain    []float64 // precipitation applied [m/yr]
	SedLoad []float64 // sediment flux leaving each cell [m³/yr]
	FillAcc []float64 // discharge accumulated on the filled surface [m³/yr]
	Uplift  []float64 // cumulative flexural uplift [m]
	Flex    []float64 // flexural response over the last step [m]
	Basin   []int32   // depression/basin label
	Time    float64   // model time [yr]
	Sea     float64   // sea level at Time [m]
	Step    int       // snapshot index
}

func newState(n int) *State {
	return &State{
		Elev:    make([]float64, n),
		Fill:    make([]float64, n),
		EroDep:  make([]float64, n),
		EDRate:  make([]float64, n),
		Rain:    make([]float64, n),
		SedLoad: make([]float64, n),
		FillAcc: make([]float64, n),
		Uplift:  make([]float64, n),
		Flex:    make([]float64, n),
		Basin:   make([]int32, n),
	}
}

// SnapshotFP returns the conventional snapshot path for output state k.
func SnapshotFP(outdir string, k int) string {
	return fmt.Sprintf("%s/escarp.%d.gob", outdir, k)
}

func (s *State) Checkandprint(gd *grid.Definition, chkdirprfx string) {
	writeFloats32(gd, chkdirprfx+"state.elev.bil", s.Elev)
	writeFloats32(gd, chkdirprfx+"state.erodep.bil", s.EroDep)
	writeFloats32(gd, chkdirprfx+"state.fillacc.bil", s.FillAcc)
	writeInts32(gd, chkdirprfx+"state.basin.bil", s.Basin)
}

func (s *State) SaveGob(fp string) error {
	f, err := os.Create(fp)
	if err != nil {
		return fmt.Errorf(" state.SaveGob %v", err)
	}
	if err := gob.NewEncoder(f).Encode(s); err != nil {
		return fmt.Errorf(" state.SaveGob %v", err)
	}
	f.Close()
	return nil
}

func LoadGobState(fp string) (*State, error) {
	var s State
	f, err := os.Open(fp)
	if err != nil {
		return nil, err
	}
	if err := gob.NewDecoder(f).Decode(&s); err != nil {
		return nil, err
	}
	f.Close()
	return &s, nil
}
