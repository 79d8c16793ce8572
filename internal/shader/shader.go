// Package shader compiles GLSL stages from files and links them into a
// program.
package shader

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	glpkg "github.com/tinyrange/gloom/internal/gl"
)

var stages = map[string]uint32{
	".vert": glpkg.VertexShader,
	".frag": glpkg.FragmentShader,
	".geom": glpkg.GeometryShader,
	".tesc": glpkg.TessControlShader,
	".tese": glpkg.TessEvaluationShader,
	".comp": glpkg.ComputeShader,
}

// Stage returns the shader stage for a source file, chosen by extension.
func Stage(path string) (uint32, error) {
	ext := strings.ToLower(filepath.Ext(path))
	stage, ok := stages[ext]
	if !ok {
		return 0, errors.Errorf("unknown shader extension %q on %s", ext, path)
	}
	return stage, nil
}

// Builder accumulates compiled stages for one program. The first error
// sticks and is returned by Link.
type Builder struct {
	gl      glpkg.OpenGL
	shaders []uint32
	err     error
}

func NewBuilder(gl glpkg.OpenGL) *Builder {
	return &Builder{gl: gl}
}

// AttachFile reads and compiles the stage stored at path.
func (b *Builder) AttachFile(path string) *Builder {
	if b.err != nil {
		return b
	}
	stage, err := Stage(path)
	if err != nil {
		b.err = err
		return b
	}
	src, err := os.ReadFile(path)
	if err != nil {
		b.err = errors.Wrap(err, "read shader")
		return b
	}
	return b.AttachSource(stage, path, string(src))
}

// AttachSource compiles src as the given stage. name labels errors.
func (b *Builder) AttachSource(stage uint32, name, src string) *Builder {
	if b.err != nil {
		return b
	}
	id := b.gl.CreateShader(stage)
	b.gl.ShaderSource(id, src)
	b.gl.CompileShader(id)

	var status int32
	b.gl.GetShaderiv(id, glpkg.CompileStatus, &status)
	if status == 0 {
		log := b.gl.GetShaderInfoLog(id)
		b.gl.DeleteShader(id)
		b.err = errors.Errorf("compile %s: %s", name, strings.TrimSpace(log))
		return b
	}
	b.shaders = append(b.shaders, id)
	return b
}

// Link links every attached stage into a program. The stage objects are
// released whether or not linking succeeds.
func (b *Builder) Link() (*Program, error) {
	defer func() {
		for _, s := range b.shaders {
			b.gl.DeleteShader(s)
		}
		b.shaders = nil
	}()
	if b.err != nil {
		return nil, b.err
	}
	if len(b.shaders) == 0 {
		return nil, errors.New("link: no shader stages attached")
	}

	id := b.gl.CreateProgram()
	for _, s := range b.shaders {
		b.gl.AttachShader(id, s)
	}
	b.gl.LinkProgram(id)
	for _, s := range b.shaders {
		b.gl.DetachShader(id, s)
	}

	var status int32
	b.gl.GetProgramiv(id, glpkg.LinkStatus, &status)
	if status == 0 {
		log := b.gl.GetProgramInfoLog(id)
		b.gl.DeleteProgram(id)
		return nil, errors.Errorf("link: %s", strings.TrimSpace(log))
	}
	return &Program{gl: b.gl, ID: id}, nil
}

// Program is a linked shader program. Uniforms are set by explicit location
// while the program is active.
type Program struct {
	gl glpkg.OpenGL
	ID uint32
}

// Activate binds the program for subsequent draws.
func (p *Program) Activate() {
	p.gl.UseProgram(p.ID)
}

func (p *Program) Delete() {
	if p.ID == 0 {
		return
	}
	p.gl.DeleteProgram(p.ID)
	p.ID = 0
}
