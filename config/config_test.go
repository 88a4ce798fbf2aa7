package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load defaults: %v", err)
	}

	if cfg.Phase.PopulationCap != 200 {
		t.Errorf("PopulationCap = %d, want 200", cfg.Phase.PopulationCap)
	}
	if cfg.Phase.ClimaxThreshold != 500 {
		t.Errorf("ClimaxThreshold = %d, want 500", cfg.Phase.ClimaxThreshold)
	}
	if cfg.World.HalfWidth != 20 || cfg.World.IndexCapacity != 4 {
		t.Errorf("unexpected world config: %+v", cfg.World)
	}
	if cfg.Energy.Decay != 0.0003 || cfg.Energy.ClimaxDrain != 0.03 {
		t.Errorf("unexpected energy config: %+v", cfg.Energy)
	}
	if len(cfg.Derived.PaletteHex) != 3 || cfg.Derived.PaletteHex[0] != 0x00FFFF {
		t.Errorf("unexpected derived palette: %x", cfg.Derived.PaletteHex)
	}
}

func TestLoadOverlay(t *testing.T) {
	path := writeFile(t, `
phase:
  population_cap: 50
palette: [magenta]
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Phase.PopulationCap != 50 {
		t.Errorf("PopulationCap = %d, want 50", cfg.Phase.PopulationCap)
	}
	// Fields absent from the file keep their defaults
	if cfg.Phase.ClimaxThreshold != 500 {
		t.Errorf("ClimaxThreshold = %d, want default 500", cfg.Phase.ClimaxThreshold)
	}
	if len(cfg.Derived.PaletteHex) != 1 || cfg.Derived.PaletteHex[0] != 0xFF00FF {
		t.Errorf("PaletteHex = %x, want [ff00ff]", cfg.Derived.PaletteHex)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown palette color", "palette: [teal]\n"},
		{"zero cap", "phase:\n  population_cap: 0\n"},
		{"empty segment range", "creature:\n  min_segments: 8\n  max_segments: 8\n"},
		{"negative extent", "world:\n  half_width: -1\n"},
		{"malformed yaml", "phase: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeFile(t, tt.content)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Phase.PopulationCap = 77

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Phase.PopulationCap != 77 {
		t.Errorf("PopulationCap = %d, want 77", loaded.Phase.PopulationCap)
	}
}

func TestCfgLazyDefaults(t *testing.T) {
	prev := global
	defer func() { global = prev }()

	global = nil
	if Cfg() == nil {
		t.Fatal("Cfg() returned nil")
	}

	custom := Default()
	custom.Phase.PopulationCap = 3
	Set(custom)
	if Cfg().Phase.PopulationCap != 3 {
		t.Error("Set did not replace the global config")
	}
}
