package escarp

import (
	"fmt"
	"log"
	"math"
	"math/rand"

	"github.com/maseology/goHydro/grid"
	"github.com/maseology/mmio"
	mrg63k3a "github.com/maseology/goRNG/MRG63k3a"
)

// BuildMesh generates the escarpment domain from the run control: a uniform
// grid definition (saved as <npdata>domain.gdef) and the initial surface
// (<npdata>mesh.gob), with check rasters written beside them.
func BuildMesh(cfg *Config) *Mesh {

	println("building mesh..")
	prfx := cfg.Domain.Npdata
	mmio.MakeDir(mmio.GetFileDir(prfx + "x"))
	chkdir := mmio.GetFileDir(prfx+"x") + "/check/"
	mmio.MakeDir(chkdir)

	println("  writing grid definition..")
	nr, nc, cs := cfg.Domain.Nrows, cfg.Domain.Ncols, cfg.Domain.Cellsize
	gdefFP := prfx + "domain.gdef"
	mmio.WriteLines(gdefFP, []string{
		"0.0",                             // easting origin
		fmt.Sprintf("%f", float64(nr)*cs), // northing origin (top edge)
		"0.0",                             // rotation
		fmt.Sprintf("%d", nr),
		fmt.Sprintf("%d", nc),
		fmt.Sprintf("U%f", cs),
	})
	gd, err := grid.ReadGDEF(gdefFP, false)
	if err != nil {
		log.Fatalf(" BuildMesh grid.ReadGDEF: %v", err)
	}
	if len(gd.Sactives) == 0 {
		cids := make([]int, nr*nc)
		for i := range cids {
			cids[i] = i
		}
		gd.ResetActives(cids)
	}

	println("  generating initial escarpment surface..")
	m := &Mesh{GD: gd, Nr: nr, Nc: nc, Cw: cs}
	m.Z0 = initialSurface(cfg, m)

	m.Checkandprint(chkdir)
	if err := m.SaveGob(prfx + "mesh.gob"); err != nil {
		log.Fatalf(" BuildMesh: %v", err)
	}
	fmt.Printf("  mesh built: %d x %d cells at %.0f m\n", nr, nc, cs)
	return m
}

// initialSurface returns the pre-rift margin profile swept along strike:
// shelf floor, shoreline ramp, coastal plain, escarpment ramp, plateau,
// with a small pseudo-random roughness so that drainage can self-organize.
func initialSurface(cfg *Config, m *Mesh) []float64 {
	rng := rand.New(mrg63k3a.New())
	rng.Seed(cfg.Domain.Seed)

	d := cfg.Domain
	z := make([]float64, m.Nr*m.Nc)
	for i := range z {
		x := m.X(i % m.Nc)
		var zi float64
		switch {
		case x < d.CoastX: // submerged shelf rising to the shoreline
			zi = d.ShelfZ * (1. - x/d.CoastX)
		case x < d.CoastX+d.ScarpX: // low-relief coastal plain
			zi = 0.05 * d.Zplateau * (x - d.CoastX) / d.ScarpX
		case x < d.CoastX+d.ScarpX+d.ScarpW: // escarpment ramp (cosine ramp)
			f := (x - d.CoastX - d.ScarpX) / d.ScarpW
			zi = 0.05*d.Zplateau + 0.95*d.Zplateau*(1.-math.Cos(f*math.Pi))/2.
		default: // inland plateau
			zi = d.Zplateau
		}
		z[i] = zi + d.Roughness*(2.*rng.Float64()-1.)
	}
	return z
}
