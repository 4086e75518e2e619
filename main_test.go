package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/model"
	"github.com/sheikhrachel/go-life/utils"
)

func TestParseConfigFlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "life.json")
	if err := os.WriteFile(path, []byte(`{"width": 20, "height": 10, "seed": 5}`), 0o600); err != nil {
		t.Fatal(err)
	}

	config, err := parseConfig([]string{"-config", path, "-height", "12"})
	if err != nil {
		t.Fatalf("parseConfig: %v", err)
	}
	if config.Width != 20 || config.Height != 12 || config.Seed != 5 {
		t.Fatalf("config = %+v, want width 20 from file and height 12 from flag", config)
	}
}

func TestParseConfigMissingFileUsesDefaults(t *testing.T) {
	config, err := parseConfig([]string{"-config", filepath.Join(t.TempDir(), "nope.json"), "-width", "9"})
	if err != nil {
		t.Fatalf("parseConfig: %v", err)
	}
	if config.Width != 9 || config.Height != utils.DefaultConfig().Height {
		t.Fatalf("config = %+v", config)
	}
}

func TestParseConfigRejectsInvalid(t *testing.T) {
	_, err := parseConfig([]string{"-config", filepath.Join(t.TempDir(), "nope.json"), "-boundary", "mirror"})
	if !errors.Is(err, utils.ErrInvalidConfig) {
		t.Fatalf("error = %v, want ErrInvalidConfig", err)
	}
}

func TestCheckRestartConditions(t *testing.T) {
	config := utils.DefaultConfig()

	if restart, reason := checkRestartConditions(0, 0, 7, config); !restart || reason != "extinction" {
		t.Fatalf("empty world: restart=%v reason=%q", restart, reason)
	}
	if restart, reason := checkRestartConditions(10, config.StagnationThreshold, 7, config); !restart || reason != "stagnation detected" {
		t.Fatalf("stagnant world: restart=%v reason=%q", restart, reason)
	}
	if restart, reason := checkRestartConditions(10, 0, refreshInterval, config); !restart || reason != "periodic refresh" {
		t.Fatalf("refresh generation: restart=%v reason=%q", restart, reason)
	}
	for _, gen := range []int{0, 1, refreshInterval + 1} {
		if restart, _ := checkRestartConditions(10, 1, gen, config); restart {
			t.Fatalf("active world at generation %d should not restart", gen)
		}
	}
}

func TestRestartGameReseedsInPlace(t *testing.T) {
	config := utils.DefaultConfig()
	config.Width, config.Height = 12, 12
	config.Seed = 4

	world, rng, _, err := initializeGame(config)
	if err != nil {
		t.Fatal(err)
	}
	world.Clear()
	emptyHash := world.Hash()
	history := &model.History{}
	history.Observe(emptyHash)

	restartGame(world, history, rng, config)
	if world.Population() == 0 {
		t.Fatal("restart should seed new life")
	}
	if history.Observe(emptyHash) {
		t.Fatal("restart should reset the history")
	}
}
