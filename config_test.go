package escarp

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultValidates(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestValidateRejects(t *testing.T) {
	mod := func(fn func(c *Config)) *Config {
		c := Default()
		fn(c)
		return c
	}
	tests := []struct {
		name string
		cfg  *Config
	}{
		{"start after end", mod(func(c *Config) { c.Time.Start, c.Time.End = 10., 5. })},
		{"zero dt", mod(func(c *Config) { c.Time.Dt = 0. })},
		{"tout below dt", mod(func(c *Config) { c.Time.Tout = c.Time.Dt / 2. })},
		{"tout beyond window", mod(func(c *Config) { c.Time.Tout = 2. * (c.Time.End - c.Time.Start) })},
		{"negative K", mod(func(c *Config) { c.SPL.K = -1. })},
		{"fDa above one", mod(func(c *Config) { c.SPL.FDa = 1.5 })},
		{"rhom below rhoc", mod(func(c *Config) { c.Flexure.RhoM = c.Flexure.RhoC - 1. })},
		{"unsorted climate", mod(func(c *Config) {
			c.Climate = []ClimateEntry{{Start: 10.e6, Uniform: 1.}, {Start: 0., Uniform: 2.}}
		})},
		{"negative rain", mod(func(c *Config) { c.Climate = []ClimateEntry{{Start: 0., Uniform: -1.}} })},
		{"empty output dir", mod(func(c *Config) { c.Output.Dir = "" })},
		{"missing output dir", mod(func(c *Config) { c.Output.Dir, c.Output.Makedir = "no/such/dir", false })},
		{"bad boundary code", mod(func(c *Config) { c.Domain.Boundary = "periodic" })},
		{"tiny grid", mod(func(c *Config) { c.Domain.Nrows = 2 })},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Error(t, tc.cfg.Validate())
		})
	}
}

func TestConfigRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Climate = []ClimateEntry{{Start: 0., Uniform: 1.}, {Start: 50.e6, Uniform: .6}}

	fp := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, cfg.Save(fp))
	cfg2, err := LoadConfig(fp)
	require.NoError(t, err)
	assert.Equal(t, cfg, cfg2)
}

func TestSnapshotCount(t *testing.T) {
	c := Default()
	c.Time = TimeConfig{Start: 0., End: 75.e6, Tout: 1.e6, Dt: 1.e5}
	assert.Equal(t, 76, c.Snapshots())
	assert.Equal(t, 750, c.Steps())
	assert.Equal(t, 3.e6, c.SnapshotTime(3))
}
