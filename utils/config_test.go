package utils

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
)

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := []byte(`{"width": 12, "height": 7, "boundary": "torus", "frame_rate": 1000000}`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Width != 12 || cfg.Height != 7 {
		t.Fatalf("dimensions = %dx%d, want 12x7", cfg.Width, cfg.Height)
	}
	if cfg.Boundary != BoundaryTorus {
		t.Fatalf("boundary = %q, want %q", cfg.Boundary, BoundaryTorus)
	}
	if cfg.FrameRate != time.Millisecond {
		t.Fatalf("frame rate = %v, want 1ms", cfg.FrameRate)
	}
	if cfg.RandomDensity != DefaultConfig().RandomDensity {
		t.Fatalf("unset density should keep default, got %v", cfg.RandomDensity)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json")); !os.IsNotExist(errors.Cause(err)) {
		t.Fatalf("missing file error = %v, want not-exist", err)
	}

	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected unmarshal error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"zero width", func(c *Config) { c.Width = 0 }, false},
		{"negative height", func(c *Config) { c.Height = -3 }, false},
		{"zero frame rate", func(c *Config) { c.FrameRate = 0 }, false},
		{"unknown boundary", func(c *Config) { c.Boundary = "mirror" }, false},
		{"density above one", func(c *Config) { c.RandomDensity = 1.5 }, false},
		{"negative workers", func(c *Config) { c.Workers = -1 }, false},
		{"torus", func(c *Config) { c.Boundary = BoundaryTorus }, true},
		{"narrow torus", func(c *Config) { c.Boundary, c.Width = BoundaryTorus, 1 }, false},
		{"short torus", func(c *Config) { c.Boundary, c.Height = BoundaryTorus, 2 }, false},
		{"narrow open grid", func(c *Config) { c.Width, c.Height = 1, 2 }, true},
		{"zero stagnation threshold", func(c *Config) { c.StagnationThreshold = 0 }, false},
		{"negative generation limit", func(c *Config) { c.MaxGenerations = -1 }, false},
		{"unlimited generations", func(c *Config) { c.MaxGenerations = 0 }, true},
		{"negative injection count", func(c *Config) { c.InjectionCount = -2 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestBindFlags(t *testing.T) {
	cfg := DefaultConfig()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.Bind(fs)

	if err := fs.Parse([]string{"-width", "40", "-interactive", "-boundary", "torus", "-seed", "9"}); err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 40 || !cfg.Interactive || cfg.Boundary != BoundaryTorus || cfg.Seed != 9 {
		t.Fatalf("flags not applied: %+v", cfg)
	}
	if cfg.Height != DefaultConfig().Height {
		t.Fatalf("height changed without flag: %d", cfg.Height)
	}
}

func TestStatsMovingAverage(t *testing.T) {
	s := NewStats()
	s.Update(1, 100, 0)
	if s.AveragePopulation != 100 {
		t.Fatalf("first sample average = %v, want 100", s.AveragePopulation)
	}
	s.Update(2, 0, 500*time.Millisecond)
	if s.AveragePopulation != 90 {
		t.Fatalf("average = %v, want 90", s.AveragePopulation)
	}
	if s.GenerationsPerSecond != 2 {
		t.Fatalf("gen/sec = %v, want 2", s.GenerationsPerSecond)
	}
	if s.TotalGenerations != 2 || s.Population != 0 {
		t.Fatalf("counters not updated: %+v", s)
	}
}
