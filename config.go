package escarp

import (
	"fmt"
	"math"
	"os"

	"github.com/maseology/mmio"
	"gopkg.in/yaml.v3"
)

// Config is the run control read once per simulation and held immutable
// thereafter. Section names follow the input file of the escarpment runs.
type Config struct {
	Domain     DomainConfig    `yaml:"domain"`
	Time       TimeConfig      `yaml:"time"`
	SPL        SPLConfig       `yaml:"spl"`
	Diffusion  DiffusionConfig `yaml:"diffusion"`
	Flexure    FlexureConfig   `yaml:"flexure"`
	Sea        SeaConfig       `yaml:"sea"`
	Climate    []ClimateEntry  `yaml:"climate"`
	Output     OutputConfig    `yaml:"output"`
	Orography  map[string]float64 `yaml:"orography,omitempty"`  // parsed, currently inert
	Tectonic   map[string]float64 `yaml:"tectonic,omitempty"`   // parsed, currently inert
	Compaction map[string]float64 `yaml:"compaction,omitempty"` // parsed, currently inert
}

type DomainConfig struct {
	Npdata   string `yaml:"npdata"`   // mesh artifact prefix (built by the mesh stage)
	Flowdir  int    `yaml:"flowdir"`  // 1 = D8 steepest descent
	Seadepo  bool   `yaml:"seadepo"`  // allow marine deposition
	Boundary string `yaml:"bc"`       // "fixed" or "open" lateral boundaries
	UTMzone  int    `yaml:"utmzone,omitempty"` // 0 = local metric coordinates

	// grid geometry consumed by the mesh builder
	Nrows     int     `yaml:"nr"`
	Ncols     int     `yaml:"nc"`
	Cellsize  float64 `yaml:"cs"`        // [m]
	Zplateau  float64 `yaml:"zplateau"`  // inland plateau elevation [m]
	ScarpX    float64 `yaml:"scarpx"`    // escarpment foot distance from the coast [m]
	ScarpW    float64 `yaml:"scarpw"`    // escarpment ramp width [m]
	CoastX    float64 `yaml:"coastx"`    // shoreline distance from the seaward edge [m]
	ShelfZ    float64 `yaml:"shelfz"`    // shelf floor elevation [m], negative below sea level
	Roughness float64 `yaml:"roughness"` // white-noise amplitude added to the surface [m]
	Seed      int64   `yaml:"seed"`
}

type TimeConfig struct {
	Start float64 `yaml:"start"` // [yr]
	End   float64 `yaml:"end"`   // [yr]
	Tout  float64 `yaml:"tout"`  // snapshot interval [yr]
	Dt    float64 `yaml:"dt"`    // integration step [yr]
}

// SPLConfig holds the stream-power incision law parameters
// E = K q^m S^d, with fDa/fDm the continental/marine deposition fractions.
type SPLConfig struct {
	K   float64 `yaml:"K"`
	D   float64 `yaml:"d"`
	M   float64 `yaml:"m"`
	FDa float64 `yaml:"fDa"`
	FDm float64 `yaml:"fDm"`
}

type DiffusionConfig struct {
	HillslopeKa float64 `yaml:"hillslopeKa"` // bedrock diffusivity [m²/yr]
	HillslopeKs float64 `yaml:"hillslopeKs"` // regolith/sediment diffusivity [m²/yr]
	SmthD       float64 `yaml:"smthD"`       // marine smoothing depth [m]
	Nsteps      int     `yaml:"nldep"`       // diffusion sub-steps per dt
}

type FlexureConfig struct {
	Thickness float64 `yaml:"thickness"` // effective elastic thickness Te [m], 0 disables
	RhoC      float64 `yaml:"rhoc"`      // crustal density [kg/m³]
	RhoM      float64 `yaml:"rhom"`      // mantle density [kg/m³]
}

type SeaConfig struct {
	Position float64 `yaml:"position"`        // fixed level, or offset applied to the curve [m]
	Curve    string  `yaml:"curve,omitempty"` // optional time,level file (comma or tab separated)
}

type ClimateEntry struct {
	Start   float64 `yaml:"start"`   // [yr]
	Uniform float64 `yaml:"uniform"` // precipitation rate [m/yr]
}

type OutputConfig struct {
	Dir     string `yaml:"dir"`
	Makedir bool   `yaml:"makedir"`
}

// Default returns a Config matching the reference escarpment run.
func Default() *Config {
	return &Config{
		Domain: DomainConfig{
			Npdata:    "mesh/escarpment.",
			Flowdir:   1,
			Seadepo:   true,
			Boundary:  "fixed",
			Nrows:     100,
			Ncols:     300,
			Cellsize:  1000.,
			Zplateau:  1000.,
			ScarpX:    100.e3,
			ScarpW:    20.e3,
			CoastX:    50.e3,
			ShelfZ:    -500.,
			Roughness: 1.,
			Seed:      1984,
		},
		Time:      TimeConfig{Start: 0., End: 75.e6, Tout: 1.e6, Dt: 1.e5},
		SPL:       SPLConfig{K: 2.e-6, D: 1., M: 0.5, FDa: 0.3, FDm: 1.},
		Diffusion: DiffusionConfig{HillslopeKa: 0.05, HillslopeKs: 0.5, SmthD: 100., Nsteps: 4},
		Flexure:   FlexureConfig{Thickness: 20.e3, RhoC: 2700., RhoM: 3300.},
		Sea:       SeaConfig{Position: 0.},
		Climate:   []ClimateEntry{{Start: 0., Uniform: 1.}},
		Output:    OutputConfig{Dir: "output", Makedir: true},
	}
}

// LoadConfig reads and validates a YAML run control file.
func LoadConfig(fp string) (*Config, error) {
	b, err := os.ReadFile(fp)
	if err != nil {
		return nil, fmt.Errorf("config read: %v", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("config parse %s: %v", fp, err)
	}
	if cfg.Domain.Flowdir == 0 {
		cfg.Domain.Flowdir = 1
	}
	if cfg.Diffusion.Nsteps == 0 {
		cfg.Diffusion.Nsteps = 1
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes the parameter set back to YAML. A saved file re-loads to an
// identical Config.
func (c *Config) Save(fp string) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config save: %v", err)
	}
	return os.WriteFile(fp, b, 0644)
}

// Validate checks parameter ranges and orderings before anything is built.
func (c *Config) Validate() error {
	ff := map[string]float64{
		"time.start": c.Time.Start, "time.end": c.Time.End,
		"time.tout": c.Time.Tout, "time.dt": c.Time.Dt,
		"spl.K": c.SPL.K, "spl.d": c.SPL.D, "spl.m": c.SPL.M,
		"spl.fDa": c.SPL.FDa, "spl.fDm": c.SPL.FDm,
		"diffusion.hillslopeKa": c.Diffusion.HillslopeKa,
		"diffusion.hillslopeKs": c.Diffusion.HillslopeKs,
		"diffusion.smthD":       c.Diffusion.SmthD,
		"flexure.thickness":     c.Flexure.Thickness,
		"flexure.rhoc":          c.Flexure.RhoC, "flexure.rhom": c.Flexure.RhoM,
		"sea.position": c.Sea.Position,
	}
	for k, v := range ff {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("config: %s is not a finite number", k)
		}
	}

	if c.Time.Start >= c.Time.End {
		return fmt.Errorf("config: time.start (%g) must precede time.end (%g)", c.Time.Start, c.Time.End)
	}
	if c.Time.Dt <= 0. {
		return fmt.Errorf("config: time.dt must be positive, got %g", c.Time.Dt)
	}
	if c.Time.Tout < c.Time.Dt || c.Time.Tout > c.Time.End-c.Time.Start {
		return fmt.Errorf("config: require dt <= tout <= end-start, got tout %g", c.Time.Tout)
	}
	if c.SPL.K <= 0. {
		return fmt.Errorf("config: spl.K must be positive, got %g", c.SPL.K)
	}
	if c.SPL.FDa < 0. || c.SPL.FDa > 1. || c.SPL.FDm < 0. || c.SPL.FDm > 1. {
		return fmt.Errorf("config: deposition fractions fDa/fDm must be in [0,1]")
	}
	if c.Diffusion.Nsteps < 1 {
		return fmt.Errorf("config: diffusion.nldep must be >= 1, got %d", c.Diffusion.Nsteps)
	}
	if c.Flexure.Thickness > 0. && c.Flexure.RhoM <= c.Flexure.RhoC {
		return fmt.Errorf("config: flexure.rhom (%g) must exceed flexure.rhoc (%g)", c.Flexure.RhoM, c.Flexure.RhoC)
	}
	if c.Flexure.Thickness > 0. && c.Flexure.RhoC <= 0. {
		return fmt.Errorf("config: flexure.rhoc must be positive, got %g", c.Flexure.RhoC)
	}

	for i, ce := range c.Climate {
		if math.IsNaN(ce.Start) || math.IsNaN(ce.Uniform) {
			return fmt.Errorf("config: climate[%d] is not a finite number", i)
		}
		if ce.Uniform < 0. {
			return fmt.Errorf("config: climate[%d] precipitation must be non-negative, got %g", i, ce.Uniform)
		}
		if i > 0 && ce.Start < c.Climate[i-1].Start {
			return fmt.Errorf("config: climate sequence must be non-decreasing in start (entry %d)", i)
		}
	}

	switch c.Domain.Boundary {
	case "", "fixed", "open":
	default:
		return fmt.Errorf("config: unrecognized boundary code %q (fixed, open)", c.Domain.Boundary)
	}
	if c.Domain.Nrows < 3 || c.Domain.Ncols < 3 {
		return fmt.Errorf("config: domain requires at least a 3x3 grid, got %dx%d", c.Domain.Nrows, c.Domain.Ncols)
	}
	if c.Domain.Cellsize <= 0. {
		return fmt.Errorf("config: domain.cs must be positive, got %g", c.Domain.Cellsize)
	}

	if len(c.Sea.Curve) > 0 {
		if _, ok := mmio.FileExists(c.Sea.Curve); !ok {
			return fmt.Errorf("config: sea.curve file not found: %s", c.Sea.Curve)
		}
	}

	if len(c.Output.Dir) == 0 {
		return fmt.Errorf("config: output.dir must be a non-empty string")
	}
	if !c.Output.Makedir && !mmio.DirExists(c.Output.Dir) {
		return fmt.Errorf("config: output.dir %s does not exist and makedir is false", c.Output.Dir)
	}
	return nil
}

// Steps returns the number of dt increments from start to end.
func (c *Config) Steps() int {
	return int(math.Round((c.Time.End - c.Time.Start) / c.Time.Dt))
}

// Snapshots returns the number of output states written, initial state included.
func (c *Config) Snapshots() int {
	return int(math.Round((c.Time.End-c.Time.Start)/c.Time.Tout)) + 1
}

// SnapshotTime returns the model time of output state k.
func (c *Config) SnapshotTime(k int) float64 {
	return c.Time.Start + float64(k)*c.Time.Tout
}
