package escarp

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/maseology/goHydro/grid"
	"github.com/stretchr/testify/require"
)

func TestStateCheckRasters(t *testing.T) {
	dir := t.TempDir()
	nr, nc := 3, 4
	gdefFP := filepath.Join(dir, "domain.gdef")
	gdef := fmt.Sprintf("0.0\n%f\n0.0\n%d\n%d\nU%f\n", float64(nr)*100., nr, nc, 100.)
	require.NoError(t, os.WriteFile(gdefFP, []byte(gdef), 0644))

	gd, err := grid.ReadGDEF(gdefFP, false)
	require.NoError(t, err)
	if len(gd.Sactives) == 0 {
		cids := make([]int, nr*nc)
		for i := range cids {
			cids[i] = i
		}
		gd.ResetActives(cids)
	}

	s := newState(nr * nc)
	for i := range s.Elev {
		s.Elev[i] = float64(i)
		s.FillAcc[i] = 1.e4
	}
	s.Basin[3] = 2

	s.Checkandprint(gd, dir+"/")
	for _, fn := range []string{
		"state.elev.bil", "state.elev.hdr",
		"state.erodep.bil", "state.erodep.hdr",
		"state.fillacc.bil", "state.fillacc.hdr",
		"state.basin.bil", "state.basin.hdr",
	} {
		fi, err := os.Stat(filepath.Join(dir, fn))
		require.NoError(t, err, fn)
		require.Positive(t, fi.Size(), fn)
	}
}

func TestStateGobRoundTrip(t *testing.T) {
	s := newState(6)
	for i := range s.Elev {
		s.Elev[i] = float64(i) * 10.
		s.Basin[i] = int32(i % 2)
	}
	s.Time, s.Sea, s.Step = 2.e6, -15., 2

	fp := filepath.Join(t.TempDir(), "escarp.2.gob")
	require.NoError(t, s.SaveGob(fp))
	s2, err := LoadGobState(fp)
	require.NoError(t, err)
	require.Equal(t, s, s2)
}
