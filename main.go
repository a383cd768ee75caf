package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"

	"github.com/sheikhrachel/gol-live/sim"
	"github.com/sheikhrachel/gol-live/ui"
	"github.com/sheikhrachel/gol-live/utils"
)

func main() {
	var (
		configPath  = flag.String("config", "config.json", "path to a JSON config file")
		headless    = flag.Bool("headless", false, "print frames to stdout instead of opening the interactive grid")
		generations = flag.Int("generations", 100, "number of generations to run in headless mode")
		seed        = flag.Int64("seed", 0, "seed for random fills, 0 seeds from the clock")
		logPath     = flag.String("log", "", "file to write controller logs to")
	)
	flag.Parse()

	// Load configuration - fallback to defaults if file doesn't exist
	config, err := utils.LoadConfig(*configPath)
	if err != nil {
		if !os.IsNotExist(errors.Cause(err)) {
			log.Fatalf("%+v", err)
		}
		fmt.Printf("Using default configuration (%s not found)\n", *configPath)
		config = utils.DefaultConfig()
	}
	if *seed != 0 {
		config.Seed = *seed
	}

	logger, closeLog, err := openLogger(*logPath)
	if err != nil {
		log.Fatalf("%+v", err)
	}
	defer closeLog()

	if *headless {
		runHeadless(config, logger, *generations)
		return
	}
	if err = runInteractive(config, logger); err != nil {
		log.Fatalf("%+v", err)
	}
}

// openLogger returns a logger writing to path, or discarding when path is empty
func openLogger(path string) (*log.Logger, func(), error) {
	if path == "" {
		return log.New(io.Discard, "", 0), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "[openLogger] failed to open log file: %+v", path)
	}
	return log.New(f, "gol ", log.LstdFlags), func() { f.Close() }, nil
}

// runInteractive opens the terminal grid and blocks until the user quits
func runInteractive(config utils.Config, logger *log.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return errors.Wrap(err, "[runInteractive] failed to create screen")
	}
	if err = screen.Init(); err != nil {
		return errors.Wrap(err, "[runInteractive] failed to initialize screen")
	}
	defer screen.Fini()

	ctrl := sim.New(config,
		sim.WithLogger(logger),
		sim.WithOnUpdate(ui.Notify(screen)),
	)
	defer ctrl.Stop()

	ui.New(screen, ctrl).Run()
	return nil
}
