package render

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	glpkg "github.com/tinyrange/gloom/internal/gl"
	"github.com/tinyrange/gloom/internal/input"
	"github.com/tinyrange/gloom/internal/logging"
	"github.com/tinyrange/gloom/internal/mesh"
	"github.com/tinyrange/gloom/internal/osthread"
	"github.com/tinyrange/gloom/internal/scene"
	"github.com/tinyrange/gloom/internal/shader"
	"github.com/tinyrange/gloom/internal/window"
)

// Options describes what the render thread draws and how.
type Options struct {
	Scene          scene.Scene
	VertexShader   string
	FragmentShader string
	// Debug routes driver debug messages to the logger.
	Debug bool
	// Rand picks colours for scenes without their own. Nil seeds from the
	// wall clock.
	Rand   *rand.Rand
	Engine Config
}

// Thread returns the body of the render thread, ready for supervise.Spawn.
// It pins itself to an OS thread, claims ctx, loads GL, builds the scene and
// runs the engine until stop is closed.
func Thread(ctx window.Context, state *input.State, opts Options) func(stop <-chan struct{}) error {
	return func(stop <-chan struct{}) error {
		log := logging.OrNop(opts.Engine.Logger)
		tid := osthread.Lock()
		log.Debug("render thread started", "tid", tid)

		if err := ctx.MakeCurrent(); err != nil {
			return fmt.Errorf("render: %w", err)
		}
		gl, err := glpkg.Load(ctx.ProcAddress)
		if err != nil {
			return fmt.Errorf("render: load gl: %w", err)
		}

		e, err := Prepare(gl, ctx, state, opts)
		if err != nil {
			return err
		}
		if err := e.Run(stop); err != nil {
			return err
		}
		e.Close()
		return nil
	}
}

// Prepare sets up pipeline state on the current context, uploads the scene
// and activates the shader program. The colour uniform starts at zero.
func Prepare(gl glpkg.OpenGL, ctx window.Context, state *input.State, opts Options) (*Engine, error) {
	log := logging.OrNop(opts.Engine.Logger)

	var debug *slog.Logger
	if opts.Debug {
		debug = log
	}
	glpkg.Setup(gl, debug)
	log.Info("gl context", glpkg.Describe(gl)...)

	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	sc := opts.Scene.WithColors(rng)
	va := mesh.Build(gl, sc.Vertices, sc.Indices, sc.Colors)
	log.Debug("scene uploaded", "scene", sc.Name, "vertices", sc.VertexCount(), "indices", len(sc.Indices))

	prog, err := shader.NewBuilder(gl).
		AttachFile(opts.VertexShader).
		AttachFile(opts.FragmentShader).
		Link()
	if err != nil {
		va.Delete()
		return nil, fmt.Errorf("render: %w", err)
	}
	prog.Activate()
	gl.Uniform4f(ColorUniform, 0, 0, 0, 0)

	e := New(gl, ctx, state, va, opts.Engine)
	e.prog = prog
	return e, nil
}
