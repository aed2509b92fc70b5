package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/lixenwraith/ambient/audio"
	"github.com/lixenwraith/ambient/core"
	"github.com/lixenwraith/ambient/engine"
	"github.com/lixenwraith/ambient/parameter"
	"github.com/lixenwraith/ambient/prefs"
	"github.com/lixenwraith/ambient/snapshot"
	"github.com/lixenwraith/ambient/status"
	"github.com/lixenwraith/ambient/terminal"
	"github.com/lixenwraith/ambient/window"
)

var (
	configFlag = flag.String("config", "", "Path to a JSON tuning file layered over defaults")
	debugFlag  = flag.Bool("debug", false, "Write a debug log to logs/")
	seedFlag   = flag.Uint64("seed", 0, "Random seed, 0 picks one from the clock")
	soundFlag  = flag.Bool("sound", true, "Play a chime for each spark burst")
	prefsFlag  = flag.String("prefs", prefs.DefaultPath(), "Preference file, empty keeps the preference in memory")
	windowFlag = flag.Bool("window", false, "Open a desktop window instead of drawing in the terminal")

	snapshotFlag = flag.String("snapshot", "", "Render headlessly to this PNG file and exit")
	widthFlag    = flag.Int("width", 1280, "Snapshot width in pixels")
	heightFlag   = flag.Int("height", 720, "Snapshot height in pixels")
	framesFlag   = flag.Int("frames", 120, "Snapshot frames simulated before capture")
)

func main() {
	flag.Parse()

	logFile := setupLogging(*debugFlag)
	if logFile != nil {
		defer logFile.Close()
	}

	cfg := parameter.Default()
	if *configFlag != "" {
		loaded, err := parameter.Load(*configFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	if *snapshotFlag != "" {
		if err := runSnapshot(cfg, *snapshotFlag); err != nil {
			fmt.Fprintf(os.Stderr, "Snapshot failed: %v\n", err)
			os.Exit(1)
		}
		return
	}

	store, err := prefs.Open(*prefsFlag)
	if err != nil {
		log.Printf("preferences unavailable, using defaults: %v", err)
	}

	registry := status.NewRegistry()
	defer func() { log.Printf("final metrics: %s", registry.Summary()) }()

	opts := engine.Options{Config: cfg, Status: registry}
	if *seedFlag != 0 {
		opts.Rand = rand.New(rand.NewPCG(*seedFlag, *seedFlag^0x5bd1e995))
	}

	if *soundFlag {
		chime := audio.NewChime()
		if err := chime.Initialize(); err != nil {
			// Non-fatal, the field runs silent
			log.Printf("audio initialization failed: %v", err)
		} else {
			defer chime.Cleanup()
			opts.Chime = chime
		}
	}

	if *windowFlag {
		runWindow(store, opts)
		return
	}
	runTerminal(store, opts)
}

func runSnapshot(cfg *parameter.Config, path string) error {
	opts := snapshot.DefaultOptions()
	opts.Width, opts.Height, opts.Frames = *widthFlag, *heightFlag, *framesFlag
	if *seedFlag != 0 {
		opts.Seed = *seedFlag
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := snapshot.WritePNG(f, cfg, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func runTerminal(store *prefs.Store, opts engine.Options) {
	screen, err := terminal.Open()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}

	core.SetCrashCleanup(screen.Fini)
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()
	defer screen.Fini()

	host := terminal.NewHost(screen, store, opts)
	log.Printf("[%s] terminal host started", host.Field().ID())
	host.Run()
}

func runWindow(store *prefs.Store, opts engine.Options) {
	game := window.NewGame(store, opts)
	ebiten.SetWindowTitle("ambient")
	ebiten.SetWindowSize(1280, 720)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetRunnableOnUnfocused(true)

	log.Printf("[%s] window host started", game.Field().ID())
	if err := ebiten.RunGame(game); err != nil {
		fmt.Fprintf(os.Stderr, "Window failed: %v\n", err)
		os.Exit(1)
	}
}
