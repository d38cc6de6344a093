package escarp

import (
	"github.com/maseology/mmio"
)

// LoadDomain collects the artifacts the simulation stage needs: the built
// mesh and the run forcing. The forcing is gob-cached next to the mesh and
// rebuilt from the run control when absent.
func LoadDomain(cfg *Config) (*Mesh, *Forcing, error) {
	m, err := LoadGobMesh(cfg.Domain.Npdata + "mesh.gob")
	if err != nil {
		return nil, nil, err
	}

	ffp := cfg.Domain.Npdata + "forcing.gob"
	if _, ok := mmio.FileExists(ffp); ok {
		frc, err := LoadGobForcing(ffp)
		if err != nil {
			return nil, nil, err
		}
		return m, frc, nil
	}
	frc, err := buildForcing(cfg)
	if err != nil {
		return nil, nil, err
	}
	if err := frc.SaveGob(ffp); err != nil {
		return nil, nil, err
	}
	return m, frc, nil
}
