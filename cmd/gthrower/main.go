package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/gthrower/audio"
	"github.com/lixenwraith/gthrower/config"
	"github.com/lixenwraith/gthrower/core"
	"github.com/lixenwraith/gthrower/engine"
)

var (
	configFlag = flag.String("config", "", "Path to a YAML config file")
	debugFlag  = flag.Bool("debug", false, "Write logs to "+logDir+"/"+logFileName)
	seedFlag   = flag.Int64("seed", 0, "Seed for random peg placement, 0 keeps the config value")
	pegsFlag   = flag.Int("pegs", -1, "Number of random pegs, -1 keeps the config value")
)

func main() {
	flag.Parse()

	if logFile := setupLogging(*debugFlag); logFile != nil {
		defer logFile.Close()
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}
	if *seedFlag != 0 {
		cfg.Pegs.Random.Seed = *seedFlag
	}
	if *pegsFlag >= 0 {
		cfg.Pegs.Random.Count = *pegsFlag
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}
	core.SetCrashReset(screen.Fini)
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()
	defer screen.Fini()

	// Playback silently no-ops when the device is missing
	sound := audio.NewSoundManager(cfg.Audio)
	if err := sound.Initialize(); err != nil {
		log.Printf("[main] continuing without audio: %v", err)
	}
	defer sound.Cleanup()

	app, err := engine.NewApp(cfg, screen, engine.AppDeps{Audio: sound})
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "Failed to start: %v\n", err)
		os.Exit(1)
	}
	if err := app.Run(); err != nil {
		log.Printf("[main] run: %v", err)
	}
}
