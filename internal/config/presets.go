package config

// Presets bundle solver settings whose behavior is worth demonstrating on
// each system: the stable and unstable damping windows, Kerker mixing on the
// metals, Anderson acceleration everywhere.
var Presets = map[string]map[string]*Config{
	"helium": {
		"default": {
			Model: "helium", Solver: "damped", Mixer: "simple",
			Alpha: 1.0, Tol: 1e-8, MaxIter: 50,
		},
	},
	"silicon": {
		"default": {
			Model: "silicon", Solver: "damped", Mixer: "simple",
			Alpha: 0.6, Tol: 1e-6, MaxIter: 200,
		},
		"undamped": {
			// alpha = 1 sits outside silicon's stable window; kept as the
			// workshop's divergence demonstration.
			Model: "silicon", Solver: "damped", Mixer: "simple",
			Alpha: 1.0, Tol: 1e-6, MaxIter: 100,
		},
		"anderson": {
			Model: "silicon", Solver: "anderson", Mixer: "simple",
			Alpha: 1.0, Tol: 1e-8, MaxIter: 50,
		},
	},
	"aluminium": {
		"naive": {
			Model: "aluminium", Solver: "damped", Mixer: "simple",
			Alpha: 0.8, Tol: 1e-6, MaxIter: 100,
		},
		"kerker": {
			Model: "aluminium", Solver: "damped", Mixer: "kerker",
			Alpha: 0.8, Tol: 1e-6, MaxIter: 100, Q0: 1.0,
		},
		"anderson": {
			Model: "aluminium", Solver: "anderson", Mixer: "kerker",
			Alpha: 0.8, Tol: 1e-8, MaxIter: 100, Q0: 1.0,
		},
	},
	"iron": {
		"kerker": {
			Model: "iron", Solver: "damped", Mixer: "kerker",
			Alpha: 0.5, Tol: 1e-6, MaxIter: 300, Q0: 2.0,
		},
		"anderson": {
			Model: "iron", Solver: "anderson", Mixer: "kerker",
			Alpha: 0.8, Tol: 1e-8, MaxIter: 100, Q0: 2.0,
		},
	},
	"contraction": {
		"default": {
			Model: "contraction", Solver: "damped", Mixer: "simple",
			Dim: 16, Alpha: 1.0, Tol: 1e-6, MaxIter: 100,
		},
	},
}

func GetPreset(model, preset string) *Config {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	cfg, ok := modelPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(model string) []string {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(modelPresets))
	for name := range modelPresets {
		names = append(names, name)
	}
	return names
}
