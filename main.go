package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/go-life/game"
	"github.com/sheikhrachel/go-life/model"
	"github.com/sheikhrachel/go-life/ui"
	"github.com/sheikhrachel/go-life/utils"
)

const defaultConfigPath = "config.json"

// newFlagSet binds every config override plus the config file path
func newFlagSet(config *utils.Config, configPath *string) *flag.FlagSet {
	fs := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	fs.StringVar(configPath, "config", defaultConfigPath, "path to a JSON config file")
	config.Bind(fs)
	return fs
}

// parseConfig loads the config file named by -config, then applies the
// remaining flags on top of it
func parseConfig(args []string) (utils.Config, error) {
	var (
		configPath string
		probe      = utils.DefaultConfig()
	)
	if err := newFlagSet(&probe, &configPath).Parse(args); err != nil {
		return probe, err
	}

	config, err := utils.LoadConfig(configPath)
	if err != nil {
		if !os.IsNotExist(errors.Cause(err)) {
			return config, err
		}
		// Fall back to defaults if the file doesn't exist
		fmt.Printf("Using default configuration (%s not found)\n", configPath)
		config = utils.DefaultConfig()
	}

	if err = newFlagSet(&config, &configPath).Parse(args); err != nil {
		return config, err
	}
	return config, config.Validate()
}

// runInteractive hands the terminal to tcell and lets the session drive the world
func runInteractive(ctx context.Context, config utils.Config, world *model.World) error {
	screen, err := ui.NewTerminal()
	if err != nil {
		return err
	}
	defer screen.Fini()

	canvas := ui.NewCanvas(screen, world.Width(), world.Height())
	session := game.NewSession(world, canvas, config)
	canvas.InstallResponder(session)
	session.Resume()
	defer session.Close()

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		if err := canvas.Run(ctx); err != nil {
			return err
		}
		return ui.ErrQuit
	})
	eg.Go(func() error {
		<-ctx.Done()
		session.Close()
		return nil
	})

	err = eg.Wait()
	if errors.Is(err, ui.ErrQuit) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// runHeadless prints each generation to stdout until the limit or a signal
func runHeadless(ctx context.Context, config utils.Config) error {
	world, rng, stats, err := initializeGame(config)
	if err != nil {
		return err
	}
	displayGameInfo(config, world)

	var (
		renderer       = &model.TerminalRenderer{}
		history        = &model.History{}
		stagnantCount  = 0
		lastRestartGen = 0
		lastFrameTime  = time.Now()
	)

	for {
		frameStart := time.Now()
		if err = renderer.Clear(os.Stdout); err != nil {
			return err
		}

		generation := world.Generation()
		livingCells, density, status, isStagnant := updateGameState(world, history, lastFrameTime, stats)
		lastFrameTime = frameStart

		// Update stagnation counter
		if isStagnant {
			stagnantCount++
		} else {
			stagnantCount = 0
		}

		displayGameStatus(generation, livingCells, density, status, stats, lastRestartGen)
		if err = renderer.Display(os.Stdout, world); err != nil {
			return err
		}

		// Check for max generations limit
		if config.MaxGenerations > 0 && generation >= config.MaxGenerations {
			fmt.Printf("\n🏁 Reached maximum generations limit (%d)\n", config.MaxGenerations)
			return nil
		}

		shouldRestart, restartReason := checkRestartConditions(livingCells, stagnantCount, generation, config)
		if shouldRestart && config.AutoRestart {
			fmt.Printf("🔄 Restarting due to %s...\n", restartReason)
			restartGame(world, history, rng, config)
			lastRestartGen = generation
			stagnantCount = 0
		} else if stagnantCount >= 2 && stagnantCount < config.StagnationThreshold {
			// Inject some life to try to break the stagnation
			world.InjectRandomLife(rng, config.InjectionCount)
		}

		world.Advance()

		select {
		case <-ctx.Done():
			fmt.Println("\n🛑 Shutting down gracefully...")
			fmt.Printf("Final stats: %d generations in %.1f seconds\n",
				world.Generation(), stats.Runtime().Seconds())
			fmt.Printf("Average: %.1f gen/sec, %.1f avg population\n",
				stats.GenerationsPerSecond, stats.AveragePopulation)
			return nil
		case <-time.After(config.FrameRate):
		}
	}
}

func main() {
	config, err := parseConfig(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	// Handle Ctrl+C gracefully
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if !config.Interactive {
		if err = runHeadless(ctx, config); err != nil {
			log.Fatal(err)
		}
		return
	}

	world, _, _, err := initializeGame(config)
	if err != nil {
		log.Fatal(err)
	}
	if err = runInteractive(ctx, config, world); err != nil {
		log.Fatal(err)
	}
}
