package main

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/sheikhrachel/go-life/model"
	"github.com/sheikhrachel/go-life/utils"
)

// initializeGame sets up the initial game state
func initializeGame(config utils.Config) (
	*model.World,
	*rand.Rand,
	*utils.Stats,
	error,
) {
	world, err := model.NewWorldFromConfig(config)
	if err != nil {
		return nil, nil, nil, err
	}

	rng := model.NewRand(config.Seed)
	world.Seed(rng, config.RandomDensity)

	return world, rng, utils.NewStats(), nil
}

// displayGameInfo shows the initial game information
func displayGameInfo(config utils.Config, world *model.World) {
	fmt.Printf("Features: Parallel: %v, Boundary: %s, Seed: %d\n",
		config.UseParallel, config.Boundary, config.Seed)
	fmt.Printf("Grid: %dx%d | Initial living cells: %d\n",
		world.Width(), world.Height(), world.Population())
	fmt.Println("Press Ctrl+C to exit gracefully")
	fmt.Println()
}

// updateGameState updates the game state and returns status information
func updateGameState(
	world *model.World,
	history *model.History,
	lastFrameTime time.Time,
	stats *utils.Stats,
) (int, float64, string, bool) {
	livingCells := world.Population()
	density := float64(livingCells) / float64(world.Width()*world.Height()) * 100

	// Update performance stats
	stats.Update(world.Generation(), livingCells, time.Since(lastFrameTime))

	isStagnant := history.Observe(world.Hash())

	status := "Active"
	if isStagnant {
		status = "Stagnant"
	}
	if livingCells == 0 {
		status = "Extinct"
	}

	return livingCells, density, status, isStagnant
}

// displayGameStatus shows the current game status
func displayGameStatus(
	generation, livingCells int,
	density float64,
	status string,
	stats *utils.Stats,
	lastRestartGen int,
) {
	fmt.Printf("Gen: %d | Living: %d | Density: %.1f%% | Status: %s\n",
		generation, livingCells, density, status)
	fmt.Printf("Performance: %.1f gen/sec | Avg Pop: %.1f | Runtime: %.1fs\n",
		stats.GenerationsPerSecond, stats.AveragePopulation, stats.Runtime().Seconds())

	// Show time since last restart
	if generation > lastRestartGen {
		fmt.Printf("Generations since restart: %d\n", generation-lastRestartGen)
	}
	fmt.Println()
}

// refreshInterval is how many generations run before a periodic reseed
const refreshInterval = 200

// checkRestartConditions determines if the game should restart
func checkRestartConditions(
	livingCells, stagnantCount, generation int,
	config utils.Config,
) (bool, string) {
	if livingCells == 0 {
		return true, "extinction"
	}
	if stagnantCount >= config.StagnationThreshold {
		return true, "stagnation detected"
	}
	if generation > 0 && generation%refreshInterval == 0 {
		return true, "periodic refresh"
	}
	return false, ""
}

// restartGame reseeds the existing world in place
func restartGame(world *model.World, history *model.History, rng *rand.Rand, config utils.Config) {
	world.Seed(rng, config.RandomDensity)
	history.Reset()
	fmt.Printf("✨ New patterns loaded! Living cells: %d\n", world.Population())
}
