package escarp

import (
	"fmt"
	"log"
	"math/rand"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/maseology/glbopt"
	"github.com/maseology/mmio"
	"github.com/maseology/objfunc"
	mrg63k3a "github.com/maseology/goRNG/MRG63k3a"
)

// OptimizeRetreat calibrates {K, Ka, Te} against an observed scarp-retreat
// series (time,scarpx CSV sampled at the snapshot interval) by SCE search,
// minimizing 1-KGE of the simulated series.
func OptimizeRetreat(m *Mesh, frc *Forcing, cfg *Config, obsFP string) (*Config, float64) {

	obs := loadRetreatObs(obsFP, cfg.Snapshots())

	rng := rand.New(mrg63k3a.New())
	rng.Seed(time.Now().UnixNano())

	gen := func(u []float64) float64 {
		ck := SampleU(cfg, u)
		sim := Evaluate(m, frc, ck, "", false)
		return 1. - objfunc.KGE(obs, sim)
	}

	fmt.Println(" optimizing..")
	uFinal, of := glbopt.SCE(runtime.GOMAXPROCS(0), nSmplDim, rng, gen, true)
	fmt.Printf("\nfinal parameters: %v (1-KGE: %.4f)\n", uFinal, of)
	return SampleU(cfg, uFinal), of
}

// loadRetreatObs reads a time,scarpx CSV, header optional.
func loadRetreatObs(fp string, nsnap int) []float64 {
	lns, err := mmio.ReadTextLines(fp)
	if err != nil {
		log.Fatalf(" OptimizeRetreat: %v", err)
	}
	var o []float64
	for _, ln := range lns {
		flds := strings.Split(strings.TrimSpace(ln), ",")
		if len(flds) < 2 {
			continue
		}
		v, err := strconv.ParseFloat(flds[1], 64)
		if err != nil {
			continue // header
		}
		o = append(o, v)
	}
	if len(o) != nsnap {
		log.Fatalf(" OptimizeRetreat: observation series has %d entries, run writes %d snapshots", len(o), nsnap)
	}
	return o
}
