package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"chosenoffset.com/tilescreen/internal/config"
	"chosenoffset.com/tilescreen/internal/logger"
	"chosenoffset.com/tilescreen/internal/mapscanner"
	ebitenrender "chosenoffset.com/tilescreen/internal/render/ebiten"
	"chosenoffset.com/tilescreen/internal/screen"
	"chosenoffset.com/tilescreen/internal/world/tilemap"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run returns the process exit code so deferred cleanup, such as flushing
// the logger, happens before the process exits.
func run(args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("tilemapview", flag.ContinueOnError)
	flags.SetOutput(stderr)
	configPath := flags.String("config", "", "YAML config file (defaults are used when empty)")
	mapPath := flags.String("map", "", "TMX map to show (overrides map.path)")
	listDir := flags.String("list", "", "List the maps in a directory and exit")
	dev := flags.Bool("dev", false, "Use development logging (debug level, console output)")
	if err := flags.Parse(args); err != nil {
		return 2
	}

	if *listDir != "" {
		maps, err := mapscanner.ScanMapDirectory(*listDir)
		if err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return 1
		}
		for _, m := range maps {
			fmt.Fprintf(stdout, "%s\t%s\n", m.Name, m.Path)
		}
		return 0
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	if *mapPath != "" {
		cfg.Map.Path = *mapPath
	}
	if *dev {
		cfg.Log = logger.DevelopmentConfig()
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(stderr, "error: failed to build logger: %v\n", err)
		return 1
	}
	defer log.Sync()

	// Initialize the renderer backend (ebiten)
	renderer := ebitenrender.NewRenderer()
	inputMgr := ebitenrender.NewInputManager()
	engine := ebitenrender.NewEngine()

	gameScreen := screen.NewGameScreen(screen.Options{
		Map:        cfg.Map,
		ClearColor: cfg.Render.ClearColor.Color(),
		PanSpeed:   cfg.Camera.PanSpeed,
		Renderer:   renderer,
		Input:      inputMgr,
		Handler:    tilemap.NewLogHandler(log.Named("objects")),
		Logger:     log,
	})

	engine.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	engine.SetWindowTitle(cfg.Window.Title)
	engine.SetWindowResizable(cfg.Window.Resizable)

	log.Info("starting", zap.String("map", cfg.Map.Path))
	if err := engine.RunScreen(gameScreen); err != nil {
		log.Error("screen stopped", zap.Error(err))
		return 1
	}
	return 0
}
