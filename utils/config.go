package utils

import (
	"encoding/json"
	"flag"
	"os"
	"time"

	"github.com/pkg/errors"
)

const (
	BoundaryOpen  = "open"
	BoundaryTorus = "torus"

	// MinTorusSide is the smallest side a torus can have before wrapped
	// neighbours land back on the cell itself
	MinTorusSide = 3
)

// ErrInvalidConfig is returned by Validate for unusable settings
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the configuration for the simulation
type Config struct {
	Width               int           `json:"width"`
	Height              int           `json:"height"`
	FrameRate           time.Duration `json:"frame_rate"`
	Boundary            string        `json:"boundary"`
	AutoRestart         bool          `json:"auto_restart"`
	StagnationThreshold int           `json:"stagnation_threshold"`
	UseParallel         bool          `json:"use_parallel"`
	Workers             int           `json:"workers"`
	MaxGenerations      int           `json:"max_generations"`
	RandomDensity       float64       `json:"random_density"`
	InjectionCount      int           `json:"injection_count"`
	Seed                int64         `json:"seed"`
	Interactive         bool          `json:"interactive"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Width:               60,
		Height:              30,
		FrameRate:           60 * time.Millisecond,
		Boundary:            BoundaryOpen,
		AutoRestart:         true,
		StagnationThreshold: 5,
		UseParallel:         false,
		MaxGenerations:      1000,
		RandomDensity:       0.3,
		InjectionCount:      3,
		Seed:                time.Now().UnixNano(),
		Interactive:         false,
	}
}

// LoadConfig loads configuration from JSON file
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	if err = json.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	return config, nil
}

// Bind registers command line overrides for the config fields
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Width, "width", c.Width, "grid width in cells")
	fs.IntVar(&c.Height, "height", c.Height, "grid height in cells")
	fs.DurationVar(&c.FrameRate, "frame-rate", c.FrameRate, "interval between generations")
	fs.StringVar(&c.Boundary, "boundary", c.Boundary, "edge policy: open or torus")
	fs.BoolVar(&c.UseParallel, "parallel", c.UseParallel, "split each generation across workers")
	fs.IntVar(&c.Workers, "workers", c.Workers, "worker count for parallel generations (0 = NumCPU)")
	fs.IntVar(&c.MaxGenerations, "max-generations", c.MaxGenerations, "stop after this many generations (0 = unlimited)")
	fs.Float64Var(&c.RandomDensity, "density", c.RandomDensity, "probability a cell starts alive")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "random seed for the initial world")
	fs.BoolVar(&c.Interactive, "interactive", c.Interactive, "run the mouse-driven terminal UI")
}

// Validate reports the first unusable setting
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return errors.Wrapf(ErrInvalidConfig, "[Validate] dimensions must be positive: %dx%d", c.Width, c.Height)
	case c.FrameRate <= 0:
		return errors.Wrapf(ErrInvalidConfig, "[Validate] frame rate must be positive: %v", c.FrameRate)
	case c.Boundary != BoundaryOpen && c.Boundary != BoundaryTorus:
		return errors.Wrapf(ErrInvalidConfig, "[Validate] unknown boundary: %q", c.Boundary)
	case c.Boundary == BoundaryTorus && (c.Width < MinTorusSide || c.Height < MinTorusSide):
		return errors.Wrapf(ErrInvalidConfig, "[Validate] torus needs at least %dx%d cells: %dx%d",
			MinTorusSide, MinTorusSide, c.Width, c.Height)
	case c.StagnationThreshold < 1:
		return errors.Wrapf(ErrInvalidConfig, "[Validate] stagnation threshold must be at least 1: %d", c.StagnationThreshold)
	case c.MaxGenerations < 0:
		return errors.Wrapf(ErrInvalidConfig, "[Validate] negative generation limit: %d", c.MaxGenerations)
	case c.InjectionCount < 0:
		return errors.Wrapf(ErrInvalidConfig, "[Validate] negative injection count: %d", c.InjectionCount)
	case c.RandomDensity < 0 || c.RandomDensity > 1:
		return errors.Wrapf(ErrInvalidConfig, "[Validate] density out of range: %v", c.RandomDensity)
	case c.Workers < 0:
		return errors.Wrapf(ErrInvalidConfig, "[Validate] negative worker count: %d", c.Workers)
	}
	return nil
}
