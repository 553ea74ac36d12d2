package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/vi-garage/audio"
	"github.com/lixenwraith/vi-garage/config"
	"github.com/lixenwraith/vi-garage/core"
	"github.com/lixenwraith/vi-garage/engine"
	"github.com/lixenwraith/vi-garage/journal"
	"github.com/lixenwraith/vi-garage/logging"
	"github.com/lixenwraith/vi-garage/manifest"
	"github.com/lixenwraith/vi-garage/prototype"
)

const logDir = "logs"

var (
	configFlag = flag.String("config", "", "Config file (json, yaml or toml)")
	debugFlag  = flag.Bool("debug", false, "Write debug log to logs/vehicle-sandbox.log")
)

// setupLogging returns a file-backed logger when debug is set, otherwise a discarding one
func setupLogging(debug bool, level string) (*os.File, zerolog.Logger) {
	if !debug {
		return nil, zerolog.Nop()
	}

	f, err := logging.OpenFile(filepath.Join(logDir, "vehicle-sandbox.log"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
		return nil, zerolog.Nop()
	}
	return f, logging.New(f, level)
}

func main() {
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logFile, logger := setupLogging(*debugFlag, cfg.LogLevel)
	if logFile != nil {
		defer logFile.Close()
	}

	world := engine.NewWorld()
	world.Resources.Log = logger

	if cfg.Prototypes.Path != "" {
		extra, err := prototype.LoadFile(cfg.Prototypes.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load prototypes: %v\n", err)
			os.Exit(1)
		}
		world.Resources.Prototypes.Merge(extra)
	}

	if err := manifest.Install(world); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to install systems: %v\n", err)
		os.Exit(1)
	}

	hub, err := manifest.NewHub()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build services: %v\n", err)
		os.Exit(1)
	}

	audioCfg := &audio.AudioConfig{
		Enabled:      cfg.Audio.Enabled,
		MasterVolume: cfg.Audio.Volume,
		SampleRate:   audio.DefaultAudioConfig().SampleRate,
		Device:       cfg.Audio.Enabled,
	}
	var journalCfg *journal.Config
	if cfg.Journal.Enabled {
		journalCfg = &journal.Config{Driver: cfg.Journal.Driver, DSN: cfg.Journal.DSN}
	}

	if err := hub.InitAll(audioCfg, journalCfg, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init services: %v\n", err)
		os.Exit(1)
	}
	if err := hub.StartAll(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start services: %v\n", err)
		os.Exit(1)
	}
	defer hub.StopAll()
	hub.Contribute(world.Resources.ServiceBridge)

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize screen: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	core.SetCrashCleanup(func() {
		screen.Fini()
	})
	// Panic Recovery: restore the terminal before the stack trace
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	sb, err := NewSandbox(world, screen)
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "Failed to populate sandbox: %v\n", err)
		os.Exit(1)
	}

	sched := engine.NewScheduler(world, engine.NewTimeProvider(), cfg.Tick)
	sched.Start()
	defer sched.Stop()

	sb.Run(sched.TickDone())
}
