package config

import (
	"flag"
	"io"
	"log/slog"
	"testing"
)

func parse(t *testing.T, args ...string) Config {
	t.Helper()
	cfg := Default()
	fs := flag.NewFlagSet("gloom", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cfg.Bind(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("Parse(%v): %v", args, err)
	}
	return cfg
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg != Default() {
		t.Errorf("Validate changed a valid default: %+v", cfg)
	}
}

func TestBindOverrides(t *testing.T) {
	cfg := parse(t,
		"-title", "demo", "-width", "1024", "-height", "768",
		"-scene", "quad", "-vert", "a.vert", "-frag", "b.frag",
		"-vsync=false", "-gl-debug=false", "-log-level", "debug",
	)
	want := Config{
		Title:          "demo",
		Width:          1024,
		Height:         768,
		Scene:          "quad",
		VertexShader:   "a.vert",
		FragmentShader: "b.frag",
		VSync:          false,
		GLDebug:        false,
		LogLevel:       "debug",
	}
	if cfg != want {
		t.Errorf("got %+v, want %+v", cfg, want)
	}
	if l, err := cfg.Level(); err != nil || l != slog.LevelDebug {
		t.Errorf("Level() = %v, %v", l, err)
	}
}

func TestBindKeepsDefaults(t *testing.T) {
	if cfg := parse(t); cfg != Default() {
		t.Errorf("no flags gave %+v, want defaults", cfg)
	}
}

func TestValidateFillsDefaults(t *testing.T) {
	cfg := parse(t, "-width", "0", "-height", "-5", "-title", "")
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.Width != 800 || cfg.Height != 600 || cfg.Title != "Gloom" {
		t.Errorf("got %dx%d %q, want defaults", cfg.Width, cfg.Height, cfg.Title)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown scene", []string{"-scene", "cube"}},
		{"no vertex shader", []string{"-vert", ""}},
		{"no fragment shader", []string{"-frag", ""}},
		{"bad log level", []string{"-log-level", "loud"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := parse(t, tt.args...)
			if err := cfg.Validate(); err == nil {
				t.Errorf("Validate accepted %v", tt.args)
			}
		})
	}
}
