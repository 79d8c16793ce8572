// Package gltest provides a recording implementation of gl.OpenGL for tests
// that run without a display or driver.
package gltest

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/tinyrange/gloom/internal/gl"
)

// Call is one recorded entry point invocation.
type Call struct {
	Name string
	Args []any
}

func (c Call) String() string {
	return fmt.Sprintf("%s%v", c.Name, c.Args)
}

// Buffer is the client data captured by BufferData.
type Buffer struct {
	Target uint32
	Size   int
	Usage  uint32
}

// Recorder implements gl.OpenGL by appending every call to Calls. Object names
// are handed out sequentially starting at 1, as real drivers do.
type Recorder struct {
	mu    sync.Mutex
	Calls []Call

	next    uint32
	Strings map[uint32]string
	// BadShaders and BadPrograms name objects that fail to compile or link.
	BadShaders  map[uint32]bool
	BadPrograms map[uint32]bool
	// Uniforms holds the last value written to each location.
	Uniforms map[int32][]float32
	Debug    gl.DebugFunc
}

var _ gl.OpenGL = (*Recorder)(nil)

// New returns a Recorder whose shaders compile and programs link successfully.
func New() *Recorder {
	return &Recorder{
		Strings:     map[uint32]string{},
		BadShaders:  map[uint32]bool{},
		BadPrograms: map[uint32]bool{},
		Uniforms:    map[int32][]float32{},
	}
}

func (r *Recorder) record(name string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Calls = append(r.Calls, Call{Name: name, Args: args})
}

func (r *Recorder) gen() uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	return r.next
}

// Names returns the entry point names in call order.
func (r *Recorder) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, len(r.Calls))
	for i, c := range r.Calls {
		names[i] = c.Name
	}
	return names
}

// Find returns every recorded call to name.
func (r *Recorder) Find(name string) []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Call
	for _, c := range r.Calls {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Count returns how many times name was called.
func (r *Recorder) Count(name string) int {
	return len(r.Find(name))
}

// Reset forgets recorded calls but keeps object state.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Calls = nil
}

func (r *Recorder) ClearColor(red, green, blue, alpha float32) {
	r.record("ClearColor", red, green, blue, alpha)
}

func (r *Recorder) Clear(mask uint32) { r.record("Clear", mask) }

func (r *Recorder) Viewport(x, y, width, height int32) {
	r.record("Viewport", x, y, width, height)
}

func (r *Recorder) Enable(cap uint32)  { r.record("Enable", cap) }
func (r *Recorder) Disable(cap uint32) { r.record("Disable", cap) }

func (r *Recorder) DepthFunc(fn uint32) { r.record("DepthFunc", fn) }

func (r *Recorder) BlendFunc(sfactor, dfactor uint32) {
	r.record("BlendFunc", sfactor, dfactor)
}

func (r *Recorder) GetString(name uint32) string {
	r.record("GetString", name)
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.Strings[name]
}

func (r *Recorder) DebugMessageCallback(fn gl.DebugFunc) {
	r.record("DebugMessageCallback")
	r.mu.Lock()
	r.Debug = fn
	r.mu.Unlock()
}

func (r *Recorder) GenBuffers(n int32, buffers *uint32) {
	ids := unsafe.Slice(buffers, n)
	for i := range ids {
		ids[i] = r.gen()
	}
	r.record("GenBuffers", n, ids[0])
}

func (r *Recorder) DeleteBuffers(n int32, buffers *uint32) {
	r.record("DeleteBuffers", n, *buffers)
}

func (r *Recorder) BindBuffer(target uint32, buffer uint32) {
	r.record("BindBuffer", target, buffer)
}

func (r *Recorder) BufferData(target uint32, size int, data unsafe.Pointer, usage uint32) {
	r.record("BufferData", Buffer{Target: target, Size: size, Usage: usage})
}

func (r *Recorder) GenVertexArrays(n int32, arrays *uint32) {
	ids := unsafe.Slice(arrays, n)
	for i := range ids {
		ids[i] = r.gen()
	}
	r.record("GenVertexArrays", n, ids[0])
}

func (r *Recorder) DeleteVertexArrays(n int32, arrays *uint32) {
	r.record("DeleteVertexArrays", n, *arrays)
}

func (r *Recorder) BindVertexArray(array uint32) { r.record("BindVertexArray", array) }

func (r *Recorder) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset unsafe.Pointer) {
	r.record("VertexAttribPointer", index, size, xtype, normalized, stride, uintptr(offset))
}

func (r *Recorder) EnableVertexAttribArray(index uint32) {
	r.record("EnableVertexAttribArray", index)
}

func (r *Recorder) CreateShader(xtype uint32) uint32 {
	id := r.gen()
	r.record("CreateShader", xtype)
	return id
}

func (r *Recorder) ShaderSource(shader uint32, source string) {
	r.record("ShaderSource", shader, source)
}

func (r *Recorder) CompileShader(shader uint32) { r.record("CompileShader", shader) }

func (r *Recorder) GetShaderiv(shader uint32, pname uint32, params *int32) {
	r.record("GetShaderiv", shader, pname)
	r.mu.Lock()
	defer r.mu.Unlock()
	switch pname {
	case gl.CompileStatus:
		*params = boolInt(!r.BadShaders[shader])
	case gl.InfoLogLength:
		*params = 0
	}
}

func (r *Recorder) GetShaderInfoLog(shader uint32) string {
	r.record("GetShaderInfoLog", shader)
	return "compile error"
}

func (r *Recorder) DeleteShader(shader uint32) { r.record("DeleteShader", shader) }

func (r *Recorder) CreateProgram() uint32 {
	id := r.gen()
	r.record("CreateProgram")
	return id
}

func (r *Recorder) AttachShader(program uint32, shader uint32) {
	r.record("AttachShader", program, shader)
}

func (r *Recorder) DetachShader(program uint32, shader uint32) {
	r.record("DetachShader", program, shader)
}

func (r *Recorder) LinkProgram(program uint32) { r.record("LinkProgram", program) }

func (r *Recorder) GetProgramiv(program uint32, pname uint32, params *int32) {
	r.record("GetProgramiv", program, pname)
	r.mu.Lock()
	defer r.mu.Unlock()
	switch pname {
	case gl.LinkStatus:
		*params = boolInt(!r.BadPrograms[program])
	case gl.InfoLogLength:
		*params = 0
	}
}

func (r *Recorder) GetProgramInfoLog(program uint32) string {
	r.record("GetProgramInfoLog", program)
	return "link error"
}

func (r *Recorder) UseProgram(program uint32)    { r.record("UseProgram", program) }
func (r *Recorder) DeleteProgram(program uint32) { r.record("DeleteProgram", program) }

func (r *Recorder) Uniform4f(location int32, v0, v1, v2, v3 float32) {
	r.record("Uniform4f", location, v0, v1, v2, v3)
	r.mu.Lock()
	r.Uniforms[location] = []float32{v0, v1, v2, v3}
	r.mu.Unlock()
}

func (r *Recorder) UniformMatrix4fv(location int32, count int32, transpose bool, value *float32) {
	r.record("UniformMatrix4fv", location, count, transpose)
	v := append([]float32(nil), unsafe.Slice(value, 16*int(count))...)
	r.mu.Lock()
	r.Uniforms[location] = v
	r.mu.Unlock()
}

func (r *Recorder) DrawElements(mode uint32, count int32, xtype uint32, indices unsafe.Pointer) {
	r.record("DrawElements", mode, count, xtype, uintptr(indices))
}

func boolInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
