package escarp

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/maseology/mmaths"
	"github.com/maseology/mmio"
	"github.com/maseology/montecarlo/smpln"
	mrg63k3a "github.com/maseology/goRNG/MRG63k3a"
)

// nSmplDim is the sampled parameter count: erodibility K, bedrock
// diffusivity Ka, elastic thickness Te.
const nSmplDim = 3

// SampleU maps a unit hypercube coordinate to a perturbed run control.
func SampleU(cfg *Config, u []float64) *Config {
	c := *cfg
	c.SPL.K = mmaths.LogLinearTransform(1.e-8, 1.e-4, u[0])
	c.Diffusion.HillslopeKa = mmaths.LogLinearTransform(1.e-3, 1., u[1])
	c.Flexure.Thickness = mmaths.LinearTransform(5.e3, 50.e3, u[2])
	return &c
}

// GenerateSamples runs a Latin-hypercube ensemble of n realizations over
// {K, Ka, Te}, writing each realization's snapshots and retreat series
// under a date-stamped batch directory, with the sample space saved
// alongside for post-processing.
func GenerateSamples(m *Mesh, frc *Forcing, cfg *Config, n, nwrkrs int, outdir string) {

	rng := rand.New(mrg63k3a.New())
	rng.Seed(time.Now().UnixNano())
	sp := smpln.NewLHC(rng, n, nSmplDim, false)

	outdirbatch := outdir + time.Now().Format("060102150405") // batch number = date
	mmio.MakeDir(outdirbatch)
	func() { // save sample space
		lns := make([]string, n)
		for k := 0; k < n; k++ {
			lns[k] = fmt.Sprint(k)
			for j := 0; j < nSmplDim; j++ {
				lns[k] += fmt.Sprintf(",%f", sp.U[j][k])
			}
		}
		mmio.WriteLines(outdirbatch+"/samplespace.csv", lns)
	}()

	var wg sync.WaitGroup
	sem := make(chan struct{}, nwrkrs)
	for k := 0; k < n; k++ {
		wg.Add(1)
		go func(k int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			ut := make([]float64, nSmplDim)
			for j := 0; j < nSmplDim; j++ {
				ut[j] = sp.U[j][k]
			}
			ck := SampleU(cfg, ut)
			kdir := fmt.Sprintf("%s/%d", outdirbatch, k)
			mmio.MakeDir(kdir)
			fmt.Printf(" >> releasing sample %d\n", k+1)
			ck.Output.Dir = kdir
			Evaluate(m, frc, ck, kdir, false)
		}(k)
	}
	wg.Wait()
}
