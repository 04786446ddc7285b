package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Model != "silicon" {
		t.Errorf("expected model silicon, got %s", cfg.Model)
	}
	if cfg.Alpha <= 0 || cfg.Alpha > 2 {
		t.Errorf("default alpha %g outside (0, 2]", cfg.Alpha)
	}
	if cfg.Tol <= 0 {
		t.Error("tol should be positive")
	}
	if cfg.MaxIter <= 0 {
		t.Error("max_iter should be positive")
	}
}

func TestLoadPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	data := []byte("model: aluminium\nmixer: kerker\nalpha: 0.5\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Model != "aluminium" || cfg.Mixer != "kerker" || cfg.Alpha != 0.5 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	// Unnamed fields keep the defaults.
	if cfg.MaxIter != DefaultMaxIter {
		t.Errorf("expected default max_iter %d, got %d", DefaultMaxIter, cfg.MaxIter)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saved.yaml")
	cfg := DefaultConfig()
	cfg.Model = "iron"
	cfg.Q0 = 2.0

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Model != "iron" || loaded.Q0 != 2.0 {
		t.Errorf("round trip lost data: %+v", loaded)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("aluminium", "kerker")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Mixer != "kerker" || cfg.Q0 != 1.0 {
		t.Errorf("unexpected preset contents: %+v", cfg)
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if GetPreset("aluminium", "nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if GetPreset("nonexistent", "kerker") != nil {
		t.Error("expected nil for nonexistent model")
	}
}

func TestListPresets(t *testing.T) {
	if len(ListPresets("silicon")) == 0 {
		t.Error("expected presets for silicon")
	}
	if ListPresets("nonexistent") != nil {
		t.Error("expected nil for nonexistent model")
	}
}

func TestPresetsNameTheirOwnModel(t *testing.T) {
	for model, presets := range Presets {
		for name, cfg := range presets {
			if cfg.Model != model {
				t.Errorf("preset %s/%s names model %s", model, name, cfg.Model)
			}
		}
	}
}
