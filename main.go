package main

import (
	"flag"
	"log"
	"log/slog"
	"os"
	"runtime"

	"github.com/tinyrange/gloom/internal/config"
	"github.com/tinyrange/gloom/internal/dispatch"
	"github.com/tinyrange/gloom/internal/input"
	"github.com/tinyrange/gloom/internal/logging"
	"github.com/tinyrange/gloom/internal/render"
	"github.com/tinyrange/gloom/internal/scene"
	"github.com/tinyrange/gloom/internal/supervise"
	"github.com/tinyrange/gloom/internal/window"
)

func init() {
	// The window and its event stream belong to the main thread.
	runtime.LockOSThread()
}

func main() {
	cfg := config.Default()
	fs := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	cfg.Bind(fs)

	if err := fs.Parse(os.Args[1:]); err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	level, _ := cfg.Level()
	logger := logging.New(os.Stderr, level)
	slog.SetDefault(logger)

	win, err := window.New(window.Options{
		Title:  cfg.Title,
		Width:  cfg.Width,
		Height: cfg.Height,
		VSync:  cfg.VSync,
	})
	if err != nil {
		log.Fatalf("init: %v", err)
	}

	width, height := win.Size()
	state := input.NewState(width, height)
	health := &supervise.Health{}
	sc, _ := scene.Lookup(cfg.Scene)

	slog.Info("starting", "scene", sc.Name, "width", width, "height", height)

	// Nothing closes stop: the render thread runs until the process exits.
	stop := make(chan struct{})
	results := supervise.Spawn(render.Thread(win, state, render.Options{
		Scene:          sc,
		VertexShader:   cfg.VertexShader,
		FragmentShader: cfg.FragmentShader,
		Debug:          cfg.GLDebug,
		Engine:         render.Config{Logger: logger},
	}), stop)
	go supervise.Watch(results, health, win.Wake, logger)

	err = dispatch.New(state, health, logger).Run(win)
	win.Close()
	if err != nil {
		os.Exit(1)
	}
}
