// Package config holds the command-line settings of the gloom binary.
package config

import (
	"flag"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tinyrange/gloom/internal/logging"
	"github.com/tinyrange/gloom/internal/scene"
)

type Config struct {
	Title  string
	Width  int
	Height int
	Scene  string

	VertexShader   string
	FragmentShader string

	VSync   bool
	GLDebug bool

	LogLevel string
}

func Default() Config {
	return Config{
		Title:          "Gloom",
		Width:          800,
		Height:         600,
		Scene:          "triangle",
		VertexShader:   "./shaders/simple.vert",
		FragmentShader: "./shaders/simple.frag",
		VSync:          true,
		GLDebug:        true,
		LogLevel:       "info",
	}
}

// Bind registers a flag for every field on fs, with the current values as
// defaults.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Title, "title", c.Title, "window title")
	fs.IntVar(&c.Width, "width", c.Width, "initial window width in pixels")
	fs.IntVar(&c.Height, "height", c.Height, "initial window height in pixels")
	fs.StringVar(&c.Scene, "scene", c.Scene, "scene to draw: "+strings.Join(scene.Names(), ", "))
	fs.StringVar(&c.VertexShader, "vert", c.VertexShader, "vertex shader path")
	fs.StringVar(&c.FragmentShader, "frag", c.FragmentShader, "fragment shader path")
	fs.BoolVar(&c.VSync, "vsync", c.VSync, "synchronise presentation with the display")
	fs.BoolVar(&c.GLDebug, "gl-debug", c.GLDebug, "log OpenGL debug messages")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level: debug, info, warn or error")
}

// Validate fills unset sizes and the title with defaults and rejects values
// nothing downstream can use.
func (c *Config) Validate() error {
	def := Default()
	if c.Width <= 0 {
		c.Width = def.Width
	}
	if c.Height <= 0 {
		c.Height = def.Height
	}
	if c.Title == "" {
		c.Title = def.Title
	}
	if _, ok := scene.Lookup(c.Scene); !ok {
		return fmt.Errorf("unknown scene %q (have %s)", c.Scene, strings.Join(scene.Names(), ", "))
	}
	if c.VertexShader == "" || c.FragmentShader == "" {
		return fmt.Errorf("both -vert and -frag are required")
	}
	if _, err := c.Level(); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	return nil
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	return logging.ParseLevel(c.LogLevel)
}
