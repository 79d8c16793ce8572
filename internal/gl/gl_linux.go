//go:build linux

package gl

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"
)

// The Linux loader resolves every entry point through the context's
// glXGetProcAddress hook, which covers both core 1.x and 3.x functions.
type openGL struct {
	clearColor func(float32, float32, float32, float32)
	clear      func(uint32)
	viewport   func(int32, int32, int32, int32)
	enable     func(uint32)
	disable    func(uint32)
	depthFunc  func(uint32)
	blendFunc  func(uint32, uint32)
	getString  func(uint32) *byte

	debugMessageCallback func(uintptr, unsafe.Pointer)

	// Buffer operations
	genBuffers    func(int32, *uint32)
	deleteBuffers func(int32, *uint32)
	bindBuffer    func(uint32, uint32)
	bufferData    func(uint32, int, unsafe.Pointer, uint32)

	// VAO operations
	genVertexArrays         func(int32, *uint32)
	deleteVertexArrays      func(int32, *uint32)
	bindVertexArray         func(uint32)
	vertexAttribPointer     func(uint32, int32, uint32, bool, int32, unsafe.Pointer)
	enableVertexAttribArray func(uint32)

	// Shader operations
	createShader     func(uint32) uint32
	shaderSource     func(uint32, int32, **byte, *int32)
	compileShader    func(uint32)
	getShaderiv      func(uint32, uint32, *int32)
	getShaderInfoLog func(uint32, int32, *int32, *byte)
	deleteShader     func(uint32)

	// Program operations
	createProgram     func() uint32
	attachShader      func(uint32, uint32)
	detachShader      func(uint32, uint32)
	linkProgram       func(uint32)
	getProgramiv      func(uint32, uint32, *int32)
	getProgramInfoLog func(uint32, int32, *int32, *byte)
	useProgram        func(uint32)
	deleteProgram     func(uint32)

	// Uniform operations
	uniform4f        func(int32, float32, float32, float32, float32)
	uniformMatrix4fv func(int32, int32, bool, *float32)

	// Drawing
	drawElements func(uint32, int32, uint32, unsafe.Pointer)
}

func (gl *openGL) ClearColor(r, g, b, a float32) {
	gl.clearColor(r, g, b, a)
}

func (gl *openGL) Clear(mask uint32) {
	gl.clear(mask)
}

func (gl *openGL) Viewport(x, y, width, height int32) {
	gl.viewport(x, y, width, height)
}

func (gl *openGL) Enable(cap uint32) {
	gl.enable(cap)
}

func (gl *openGL) Disable(cap uint32) {
	gl.disable(cap)
}

func (gl *openGL) DepthFunc(fn uint32) {
	gl.depthFunc(fn)
}

func (gl *openGL) BlendFunc(sfactor, dfactor uint32) {
	gl.blendFunc(sfactor, dfactor)
}

func (gl *openGL) GetString(name uint32) string {
	return gostring(gl.getString(name))
}

var (
	debugOnce sync.Once
	debugCB   uintptr
	debugMu   sync.Mutex
	debugFn   DebugFunc
)

// purego callbacks are a finite resource, so a single trampoline is created
// and dispatches to whichever DebugFunc was installed last.
func debugTrampoline(source, kind, id, severity uint32, length int32, message *byte, _ unsafe.Pointer) {
	debugMu.Lock()
	fn := debugFn
	debugMu.Unlock()
	if fn == nil || message == nil {
		return
	}
	var msg string
	if length > 0 {
		msg = string(unsafe.Slice(message, length))
	} else {
		msg = gostring(message)
	}
	fn(source, kind, id, severity, msg)
}

func (gl *openGL) DebugMessageCallback(fn DebugFunc) {
	if gl.debugMessageCallback == nil {
		return
	}
	debugOnce.Do(func() {
		debugCB = purego.NewCallback(debugTrampoline)
	})
	debugMu.Lock()
	debugFn = fn
	debugMu.Unlock()
	gl.debugMessageCallback(debugCB, nil)
}

func (gl *openGL) GenBuffers(n int32, buffers *uint32) {
	gl.genBuffers(n, buffers)
}

func (gl *openGL) DeleteBuffers(n int32, buffers *uint32) {
	gl.deleteBuffers(n, buffers)
}

func (gl *openGL) BindBuffer(target uint32, buffer uint32) {
	gl.bindBuffer(target, buffer)
}

func (gl *openGL) BufferData(target uint32, size int, data unsafe.Pointer, usage uint32) {
	gl.bufferData(target, size, data, usage)
}

func (gl *openGL) GenVertexArrays(n int32, arrays *uint32) {
	gl.genVertexArrays(n, arrays)
}

func (gl *openGL) DeleteVertexArrays(n int32, arrays *uint32) {
	gl.deleteVertexArrays(n, arrays)
}

func (gl *openGL) BindVertexArray(array uint32) {
	gl.bindVertexArray(array)
}

func (gl *openGL) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset unsafe.Pointer) {
	gl.vertexAttribPointer(index, size, xtype, normalized, stride, offset)
}

func (gl *openGL) EnableVertexAttribArray(index uint32) {
	gl.enableVertexAttribArray(index)
}

func (gl *openGL) CreateShader(xtype uint32) uint32 {
	return gl.createShader(xtype)
}

func (gl *openGL) ShaderSource(shader uint32, source string) {
	if source == "" {
		source = "\n"
	}
	srcBytes := []byte(source)
	srcPtr := &srcBytes[0]
	length := int32(len(srcBytes))
	gl.shaderSource(shader, 1, &srcPtr, &length)
}

func (gl *openGL) CompileShader(shader uint32) {
	gl.compileShader(shader)
}

func (gl *openGL) GetShaderiv(shader uint32, pname uint32, params *int32) {
	gl.getShaderiv(shader, pname, params)
}

func (gl *openGL) GetShaderInfoLog(shader uint32) string {
	var length int32
	gl.getShaderiv(shader, InfoLogLength, &length)
	if length == 0 {
		return ""
	}
	log := make([]byte, length)
	gl.getShaderInfoLog(shader, length, &length, &log[0])
	return string(log[:length])
}

func (gl *openGL) DeleteShader(shader uint32) {
	gl.deleteShader(shader)
}

func (gl *openGL) CreateProgram() uint32 {
	return gl.createProgram()
}

func (gl *openGL) AttachShader(program uint32, shader uint32) {
	gl.attachShader(program, shader)
}

func (gl *openGL) DetachShader(program uint32, shader uint32) {
	gl.detachShader(program, shader)
}

func (gl *openGL) LinkProgram(program uint32) {
	gl.linkProgram(program)
}

func (gl *openGL) GetProgramiv(program uint32, pname uint32, params *int32) {
	gl.getProgramiv(program, pname, params)
}

func (gl *openGL) GetProgramInfoLog(program uint32) string {
	var length int32
	gl.getProgramiv(program, InfoLogLength, &length)
	if length == 0 {
		return ""
	}
	log := make([]byte, length)
	gl.getProgramInfoLog(program, length, &length, &log[0])
	return string(log[:length])
}

func (gl *openGL) UseProgram(program uint32) {
	gl.useProgram(program)
}

func (gl *openGL) DeleteProgram(program uint32) {
	gl.deleteProgram(program)
}

func (gl *openGL) Uniform4f(location int32, v0, v1, v2, v3 float32) {
	gl.uniform4f(location, v0, v1, v2, v3)
}

func (gl *openGL) UniformMatrix4fv(location int32, count int32, transpose bool, value *float32) {
	gl.uniformMatrix4fv(location, count, transpose, value)
}

func (gl *openGL) DrawElements(mode uint32, count int32, xtype uint32, indices unsafe.Pointer) {
	gl.drawElements(mode, count, xtype, indices)
}

// Load binds the OpenGL entry points through procAddress, the context's
// function-pointer-loading hook. It must run on the thread that owns the
// current context.
func Load(procAddress func(name string) uintptr) (OpenGL, error) {
	var missing []string
	register := func(dst interface{}, name string) {
		addr := procAddress(name)
		if addr == 0 {
			missing = append(missing, name)
			return
		}
		purego.RegisterFunc(dst, addr)
	}

	gl := &openGL{}
	register(&gl.clearColor, "glClearColor")
	register(&gl.clear, "glClear")
	register(&gl.viewport, "glViewport")
	register(&gl.enable, "glEnable")
	register(&gl.disable, "glDisable")
	register(&gl.depthFunc, "glDepthFunc")
	register(&gl.blendFunc, "glBlendFunc")
	register(&gl.getString, "glGetString")

	// GL3 functions
	register(&gl.genBuffers, "glGenBuffers")
	register(&gl.deleteBuffers, "glDeleteBuffers")
	register(&gl.bindBuffer, "glBindBuffer")
	register(&gl.bufferData, "glBufferData")
	register(&gl.genVertexArrays, "glGenVertexArrays")
	register(&gl.deleteVertexArrays, "glDeleteVertexArrays")
	register(&gl.bindVertexArray, "glBindVertexArray")
	register(&gl.vertexAttribPointer, "glVertexAttribPointer")
	register(&gl.enableVertexAttribArray, "glEnableVertexAttribArray")
	register(&gl.createShader, "glCreateShader")
	register(&gl.shaderSource, "glShaderSource")
	register(&gl.compileShader, "glCompileShader")
	register(&gl.getShaderiv, "glGetShaderiv")
	register(&gl.getShaderInfoLog, "glGetShaderInfoLog")
	register(&gl.deleteShader, "glDeleteShader")
	register(&gl.createProgram, "glCreateProgram")
	register(&gl.attachShader, "glAttachShader")
	register(&gl.detachShader, "glDetachShader")
	register(&gl.linkProgram, "glLinkProgram")
	register(&gl.getProgramiv, "glGetProgramiv")
	register(&gl.getProgramInfoLog, "glGetProgramInfoLog")
	register(&gl.useProgram, "glUseProgram")
	register(&gl.deleteProgram, "glDeleteProgram")
	register(&gl.uniform4f, "glUniform4f")
	register(&gl.uniformMatrix4fv, "glUniformMatrix4fv")
	register(&gl.drawElements, "glDrawElements")
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing GL entry points: %v", missing)
	}

	// GL 4.3 / KHR_debug; absent on older drivers.
	if addr := procAddress("glDebugMessageCallback"); addr != 0 {
		purego.RegisterFunc(&gl.debugMessageCallback, addr)
	}
	return gl, nil
}
