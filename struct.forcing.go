package escarp

import (
	"encoding/gob"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/maseology/mmio"
)

// Forcing carries the boundary conditions applied through a run: the
// piecewise climate sequence and the (fixed or time-varying) sea level.
type Forcing struct {
	Climate    []ClimateEntry
	SeaT, SeaZ []float64 // sea-level curve knots; empty when the level is fixed
	Sea0       float64   // fixed level, or offset added to the curve
}

func buildForcing(cfg *Config) (*Forcing, error) {
	frc := &Forcing{Climate: cfg.Climate, Sea0: cfg.Sea.Position}
	if len(cfg.Sea.Curve) == 0 {
		return frc, nil
	}

	t, z, err := readSeaCurve(cfg.Sea.Curve)
	if err != nil {
		return nil, err
	}
	for i := range z {
		z[i] += cfg.Sea.Position
	}
	// clamp the curve to the simulated window
	if t[0] > cfg.Time.Start {
		t = append([]float64{cfg.Time.Start}, t...)
		z = append([]float64{z[0]}, z...)
	}
	if t[len(t)-1] < cfg.Time.End {
		t = append(t, cfg.Time.End)
		z = append(z, z[len(z)-1])
	}
	frc.SeaT, frc.SeaZ = t, z
	return frc, nil
}

// readSeaCurve parses a two-column time,level file, comma or tab separated.
func readSeaCurve(fp string) ([]float64, []float64, error) {
	lns, err := mmio.ReadTextLines(fp)
	if err != nil {
		return nil, nil, fmt.Errorf("sea-level file %s: %v", fp, err)
	}
	var t, z []float64
	for i, ln := range lns {
		ln = strings.TrimSpace(ln)
		if len(ln) == 0 {
			continue
		}
		flds := strings.FieldsFunc(ln, func(r rune) bool { return r == ',' || r == '\t' || r == ' ' })
		if len(flds) < 2 {
			return nil, nil, fmt.Errorf("sea-level file %s line %d is not comma or tab separated", fp, i+1)
		}
		tv, err1 := strconv.ParseFloat(flds[0], 64)
		zv, err2 := strconv.ParseFloat(flds[1], 64)
		if err1 != nil || err2 != nil {
			return nil, nil, fmt.Errorf("sea-level file %s line %d is not well formed", fp, i+1)
		}
		t = append(t, tv)
		z = append(z, zv)
	}
	if len(t) == 0 {
		return nil, nil, fmt.Errorf("sea-level file %s is empty", fp)
	}
	for i := 1; i < len(t); i++ {
		if t[i] < t[i-1] {
			return nil, nil, fmt.Errorf("sea-level file %s must be ordered in time", fp)
		}
	}
	return t, z, nil
}

// SeaAt returns the sea level at model time t, linearly interpolating the
// curve when one was supplied.
func (frc *Forcing) SeaAt(t float64) float64 {
	n := len(frc.SeaT)
	if n == 0 {
		return frc.Sea0
	}
	if t <= frc.SeaT[0] {
		return frc.SeaZ[0]
	}
	if t >= frc.SeaT[n-1] {
		return frc.SeaZ[n-1]
	}
	for i := 1; i < n; i++ {
		if t <= frc.SeaT[i] {
			f := (t - frc.SeaT[i-1]) / (frc.SeaT[i] - frc.SeaT[i-1])
			return frc.SeaZ[i-1] + f*(frc.SeaZ[i]-frc.SeaZ[i-1])
		}
	}
	return frc.SeaZ[n-1]
}

// RainAt returns the uniform precipitation rate at model time t.
func (frc *Forcing) RainAt(t float64) float64 {
	if len(frc.Climate) == 0 {
		return 1.
	}
	r := frc.Climate[0].Uniform
	for _, ce := range frc.Climate {
		if ce.Start > t {
			break
		}
		r = ce.Uniform
	}
	return r
}

func (frc *Forcing) CheckAndPrint() {
	fmt.Println("Forcing summary:")
	fmt.Printf(" %d climate intervals\n", len(frc.Climate))
	for _, ce := range frc.Climate {
		fmt.Printf("  from %10.0f yr: %.3f m/yr\n", ce.Start, ce.Uniform)
	}
	if len(frc.SeaT) > 0 {
		fmt.Printf(" sea-level curve: %d knots, %.1f to %.1f m\n", len(frc.SeaT), minof(frc.SeaZ), maxof(frc.SeaZ))
	} else {
		fmt.Printf(" fixed sea level: %.1f m\n", frc.Sea0)
	}
}

func (frc *Forcing) SaveGob(fp string) error {
	f, err := os.Create(fp)
	if err != nil {
		return fmt.Errorf(" forcing.SaveGob %v", err)
	}
	if err := gob.NewEncoder(f).Encode(frc); err != nil {
		return fmt.Errorf(" forcing.SaveGob %v", err)
	}
	f.Close()
	return nil
}

func LoadGobForcing(fp string) (*Forcing, error) {
	var frc Forcing
	f, err := os.Open(fp)
	if err != nil {
		return nil, err
	}
	if err := gob.NewDecoder(f).Decode(&frc); err != nil {
		return nil, err
	}
	f.Close()
	return &frc, nil
}

func minof(f []float64) float64 {
	m := f[0]
	for _, v := range f {
		if v < m {
			m = v
		}
	}
	return m
}

func maxof(f []float64) float64 {
	m := f[0]
	for _, v := range f {
		if v > m {
			m = v
		}
	}
	return m
}
