package config

import "sort"

// Preset tweaks the defaults into a named look.
type Preset struct {
	Description string
	Apply       func(*Config)
}

var Presets = map[string]Preset{
	"ambient": {
		Description: "the stock field: 110 particles, 140px links",
		Apply:       func(*Config) {},
	},
	"dense": {
		Description: "busier field with shorter links",
		Apply: func(c *Config) {
			c.Population.Base = 200
			c.Population.Cap = 400
			c.Links.Threshold = 110
		},
	},
	"calm": {
		Description: "half-speed drift, one particle per pointer move",
		Apply: func(c *Config) {
			c.Seeded.VX.Min, c.Seeded.VX.Max = -0.09, 0.09
			c.Seeded.VY.Min, c.Seeded.VY.Max = -0.06, 0.06
			c.Motion.PhaseRate = 0.0012
			c.Population.SpawnPerMove = 1
		},
	},
	"sparse": {
		Description: "few particles, long faint links",
		Apply: func(c *Config) {
			c.Population.Base = 50
			c.Population.Cap = 120
			c.Links.Threshold = 180
			c.Links.Alpha = 0.06
		},
	},
}

// GetPreset returns the defaults with the named preset applied, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	p.Apply(cfg)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
