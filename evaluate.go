package escarp

import (
	"fmt"
	"log"

	"github.com/gosuri/uiprogress"
	"github.com/maseology/mmio"
)

// Evaluate steps the landscape from time.start to time.end by dt, writing a
// snapshot gob every tout (snapshot 0 is the initial state). Each step
// applies, in order: forcing lookup, depression filling and drainage
// routing, discharge accumulation, stream-power incision with deposition,
// hillslope diffusion, and the flexural response to the step's unloading.
// Base-level cells take no incision, diffusion or flexural displacement;
// marine deposition may still aggrade them.
//
// When outdir is empty no snapshots are written (sampling/calibration
// mode). The escarpment-crest retreat position per snapshot is returned.
func Evaluate(m *Mesh, frc *Forcing, cfg *Config, outdir string, verbose bool) []float64 {

	n := m.Nr * m.Nc
	acell := m.Cw * m.Cw
	z := make([]float64, n)
	copy(z, m.Z0)
	erodep := make([]float64, n)
	uplift := make([]float64, n)

	if len(outdir) > 0 {
		if cfg.Output.Makedir {
			mmio.MakeDir(outdir)
		}
		if !mmio.DirExists(outdir) {
			log.Fatalf(" Evaluate: output directory %s does not exist", outdir)
		}
	}

	nstep, nsnap := cfg.Steps(), cfg.Snapshots()
	retreat := make([]float64, 0, nsnap)

	var bar *uiprogress.Bar
	if verbose {
		uiprogress.Start()
		bar = uiprogress.AddBar(nstep).AppendCompleted().PrependElapsed()
	}

	snap := func(k int, t, sea, rain float64, net *flownet, fa, sload, flex []float64, edrate []float64) {
		retreat = append(retreat, scarpPosition(m, z, cfg.Domain.Zplateau))
		if len(outdir) == 0 {
			return
		}
		s := newState(n)
		copy(s.Elev, z)
		copy(s.EroDep, erodep)
		copy(s.Uplift, uplift)
		s.Time, s.Sea, s.Step = t, sea, k
		for i := range s.Rain {
			s.Rain[i] = rain
		}
		if net != nil {
			copy(s.Fill, net.fill)
			copy(s.Basin, net.basin)
			copy(s.FillAcc, fa)
			for i := range sload {
				s.SedLoad[i] = sload[i] / cfg.Time.Dt
			}
			for i := range flex {
				s.Flex[i] = flex[i]
			}
			copy(s.EDRate, edrate)
		} else { // initial state still gets its drainage description
			net0 := buildFlownet(m, z, cfg.Domain.Boundary)
			fa0 := net0.accumulate(frc.RainAt(t), acell)
			copy(s.Fill, net0.fill)
			copy(s.Basin, net0.basin)
			copy(s.FillAcc, fa0)
		}
		if err := s.SaveGob(SnapshotFP(outdir, k)); err != nil {
			log.Fatalf(" Evaluate: %v", err)
		}
	}

	snap(0, cfg.Time.Start, frc.SeaAt(cfg.Time.Start), frc.RainAt(cfg.Time.Start), nil, nil, nil, nil, nil)

	ksnap := 1
	edrate := make([]float64, n)
	for j := 0; j < nstep; j++ {
		t := cfg.Time.Start + float64(j)*cfg.Time.Dt
		rain, sea := frc.RainAt(t), frc.SeaAt(t)

		net := buildFlownet(m, z, cfg.Domain.Boundary)
		fa := net.accumulate(rain, acell)
		dz, sload := erodeSPL(m, net, z, fa, sea, cfg.Time.Dt, &cfg.SPL, cfg.Domain.Seadepo)
		for i := range z {
			z[i] += dz[i]
			erodep[i] += dz[i]
		}
		dzd := diffuse(m, z, erodep, sea, cfg.Time.Dt, &cfg.Diffusion, cfg.Domain.Boundary)
		for i := range z {
			z[i] += dzd[i]
			erodep[i] += dzd[i]
		}

		flex := make([]float64, n)
		if cfg.Flexure.Thickness > 0. {
			dh := make([]float64, n)
			for i := range dh {
				dh[i] = dz[i] + dzd[i]
			}
			w := flexResponse(columnLoad(m, dh), m.Cw, &cfg.Flexure)
			for i := range z {
				wi := w[i%m.Nc]
				if isBaseLevel(m, i, cfg.Domain.Boundary) {
					continue
				}
				z[i] += wi
				uplift[i] += wi
				flex[i] = wi
			}
		}

		for i := range edrate {
			edrate[i] = (dz[i] + dzd[i]) / cfg.Time.Dt
		}

		if verbose {
			bar.Incr()
		}

		tnext := t + cfg.Time.Dt
		if ksnap < nsnap && tnext >= cfg.SnapshotTime(ksnap)-1.e-3 {
			ts := cfg.SnapshotTime(ksnap) // nominal snapshot time
			snap(ksnap, ts, frc.SeaAt(ts), rain, net, fa, sload, flex, edrate)
			ksnap++
		}
	}
	if verbose {
		uiprogress.Stop()
	}

	if len(outdir) > 0 {
		times, xs := make([]interface{}, len(retreat)), make([]interface{}, len(retreat))
		for k, v := range retreat {
			times[k] = cfg.SnapshotTime(k)
			xs[k] = v
		}
		mmio.WriteCSV(outdir+"/retreat.csv", "time,scarpx", times, xs)
		fmt.Printf(" %d snapshots written to %s\n", ksnap, outdir)
	}
	return retreat
}

// scarpPosition locates the escarpment along the along-strike averaged
// profile: the farthest-seaward column whose mean elevation first exceeds
// half the plateau height.
func scarpPosition(m *Mesh, z []float64, zplateau float64) float64 {
	zbar := make([]float64, m.Nc)
	for i, v := range z {
		zbar[i%m.Nc] += v
	}
	f := 1. / float64(m.Nr)
	href := zplateau / 2.
	for j := 0; j < m.Nc; j++ {
		zbar[j] *= f
		if zbar[j] >= href {
			if j == 0 {
				return m.X(0)
			}
			// linear interpolation between columns
			f0 := (href - zbar[j-1]) / (zbar[j] - zbar[j-1])
			return m.X(j-1) + f0*m.Cw
		}
	}
	return m.X(m.Nc - 1)
}
