// Package render owns the GPU side of the harness: it runs on a dedicated OS
// thread, drains the shared input state once per frame and draws the scene.
package render

import (
	"log/slog"
	"time"

	"github.com/loov/hrtime"

	"github.com/tinyrange/gloom/internal/camera"
	glpkg "github.com/tinyrange/gloom/internal/gl"
	"github.com/tinyrange/gloom/internal/input"
	"github.com/tinyrange/gloom/internal/logging"
	"github.com/tinyrange/gloom/internal/mesh"
	"github.com/tinyrange/gloom/internal/shader"
	"github.com/tinyrange/gloom/internal/window"
)

// Uniform locations fixed by the shader interface. The shaders declare them
// with explicit layout qualifiers, so they are not configurable.
const (
	ColorUniform     int32 = 2
	TransformUniform int32 = 3
)

// Config tunes an Engine. Zero fields take their defaults in New.
type Config struct {
	ClearColor [4]float32
	Clock      func() time.Duration
	Camera     *camera.Camera
	Bindings   camera.Bindings
	Logger     *slog.Logger
}

// DefaultConfig returns the settings used by the harness.
func DefaultConfig() Config {
	return Config{
		ClearColor: [4]float32{0.035, 0.046, 0.078, 1},
		Clock:      hrtime.Now,
		Camera:     camera.New(),
		Bindings:   camera.DefaultBindings(),
	}
}

func (c *Config) fill() {
	def := DefaultConfig()
	if c.ClearColor == ([4]float32{}) {
		c.ClearColor = def.ClearColor
	}
	if c.Clock == nil {
		c.Clock = def.Clock
	}
	if c.Camera == nil {
		c.Camera = def.Camera
	}
	if c.Bindings == nil {
		c.Bindings = def.Bindings
	}
	c.Logger = logging.OrNop(c.Logger)
}

// Engine draws one vertex array per frame. All methods must be called from
// the thread that owns the current context.
type Engine struct {
	gl    glpkg.OpenGL
	ctx   window.Context
	state *input.State
	va    *mesh.VertexArray
	prog  *shader.Program
	cfg   Config
	log   *slog.Logger

	start  time.Duration
	last   time.Duration
	aspect float32
	frames uint64
}

// New returns an engine drawing va. The viewport is set from the size
// currently held in state.
func New(gl glpkg.OpenGL, ctx window.Context, state *input.State, va *mesh.VertexArray, cfg Config) *Engine {
	cfg.fill()
	e := &Engine{
		gl:     gl,
		ctx:    ctx,
		state:  state,
		va:     va,
		cfg:    cfg,
		log:    cfg.Logger,
		aspect: 1,
	}
	e.start = cfg.Clock()
	e.last = e.start

	_ = state.Size.With(func(s *input.WindowSize) {
		e.viewport(s.Width, s.Height)
	})
	return e
}

// Camera returns the camera driven by the engine.
func (e *Engine) Camera() *camera.Camera { return e.cfg.Camera }

// Frames reports how many frames have been presented.
func (e *Engine) Frames() uint64 { return e.frames }

// Run draws frames until stop is closed. Swap is the only throttle. A
// failure inside a frame is not handled here; it unwinds to the caller.
func (e *Engine) Run(stop <-chan struct{}) error {
	e.log.Info("render loop started")
	for {
		select {
		case <-stop:
			e.log.Info("render loop stopped", "frames", e.frames)
			return nil
		default:
		}
		e.Frame()
	}
}

// Close releases the vertex array and the program, if any. It is only called
// after a normal stop; a failed render thread leaves GPU objects to the
// driver.
func (e *Engine) Close() {
	e.va.Delete()
	if e.prog != nil {
		e.prog.Delete()
		e.prog = nil
	}
}

// Frame applies pending input, draws the scene and presents it. A poisoned
// input cell is skipped for this frame.
func (e *Engine) Frame() {
	now := e.cfg.Clock()
	elapsed := now - e.start
	dt := float32((now - e.last).Seconds())
	e.last = now

	// Only ErrPoisoned can come back from With; that cell is left alone.
	_ = e.state.Size.With(func(s *input.WindowSize) {
		w, h, ok := s.Consume()
		if !ok {
			return
		}
		e.ctx.Resize(w, h)
		e.viewport(w, h)
		e.log.Info("render resize", "width", w, "height", h)
	})

	var held []window.Key
	_ = e.state.Keys.With(func(k *input.KeySet) {
		held = k.Snapshot()
	})
	e.cfg.Bindings.Apply(e.cfg.Camera, held, dt)

	_ = e.state.Mouse.With(func(m *input.MouseDelta) {
		e.cfg.Camera.Look(m.Take())
	})

	color := CycleColor(elapsed)
	transform := e.cfg.Camera.Matrix(e.aspect)

	cc := e.cfg.ClearColor
	e.gl.ClearColor(cc[0], cc[1], cc[2], cc[3])
	e.gl.Clear(glpkg.ColorBufferBit | glpkg.DepthBufferBit)

	e.gl.Uniform4f(ColorUniform, color[0], color[1], color[2], color[3])
	e.gl.UniformMatrix4fv(TransformUniform, 1, false, &transform[0])

	e.va.Draw()
	e.ctx.Swap()
	e.frames++
}

func (e *Engine) viewport(width, height int) {
	e.gl.Viewport(0, 0, int32(width), int32(height))
	if width > 0 && height > 0 {
		e.aspect = float32(width) / float32(height)
	}
}
