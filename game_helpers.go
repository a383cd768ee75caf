package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sheikhrachel/gol-live/model"
	"github.com/sheikhrachel/gol-live/sim"
	"github.com/sheikhrachel/gol-live/utils"
)

// initializeGame sets up a randomized controller that reports each generation on frames
func initializeGame(config utils.Config, logger *log.Logger) (
	*sim.Controller,
	*model.TextRenderer,
	<-chan sim.Snapshot,
) {
	frames := make(chan sim.Snapshot, 1)
	ctrl := sim.New(config,
		sim.WithLogger(logger),
		sim.WithOnUpdate(func(snap sim.Snapshot) {
			// drop frames the terminal can't keep up with
			select {
			case frames <- snap:
			default:
			}
		}),
	)
	ctrl.Randomize()
	<-frames // discard the frame published by Randomize

	renderer := &model.TextRenderer{ClearScreen: true}

	return ctrl, renderer, frames
}

// displayGameInfo shows the initial game information
func displayGameInfo(config utils.Config, grid *model.Grid) {
	fmt.Printf("Grid: %dx%d | Step delay: %v | Initial living cells: %d\n",
		grid.Rows(), grid.Cols(), config.StepDelay(), grid.CountLivingCells())
	fmt.Println("Press Ctrl+C to exit gracefully")
	fmt.Println()
	time.Sleep(2 * time.Second)
}

// displayGameStatus shows the current game status
func displayGameStatus(snap sim.Snapshot) {
	var (
		grid        = snap.Grid
		livingCells = grid.CountLivingCells()
		density     = float64(livingCells) / float64(grid.Rows()*grid.Cols()) * 100
	)
	fmt.Printf("Gen: %d | Living: %d | Density: %.1f%% | Status: %s\n",
		snap.Generation, livingCells, density, snap.Stats.Status())
	fmt.Printf("Performance: %.1f gen/sec | Avg Pop: %.1f | Runtime: %.1fs\n",
		snap.Stats.GenerationsPerSecond, snap.Stats.AveragePopulation, time.Since(snap.Stats.StartTime).Seconds())
}

// runHeadless prints generations to stdout until the limit or Ctrl+C
func runHeadless(config utils.Config, logger *log.Logger, generations int) {
	ctrl, renderer, frames := initializeGame(config, logger)
	displayGameInfo(config, ctrl.Grid())

	// Handle Ctrl+C gracefully
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	ctrl.Start()
	defer ctrl.Stop()

	for {
		select {
		case <-sigChan:
			fmt.Println("\n🛑 Shutting down gracefully...")
			fmt.Printf("Final stats: %d generations\n", ctrl.Generation())
			return
		case snap := <-frames:
			if err := renderer.Render(os.Stdout, snap.Grid); err != nil {
				logger.Printf("%+v", err)
				return
			}
			displayGameStatus(snap)

			if generations > 0 && snap.Generation >= generations {
				fmt.Printf("\n🏁 Reached maximum generations limit (%d)\n", generations)
				return
			}
		}
	}
}
