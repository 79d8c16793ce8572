package gl

import "unsafe"

const (
	// ColorBufferBit is a mask used with Clear to clear the color buffer.
	ColorBufferBit = 0x00004000
	// DepthBufferBit is a mask used with Clear to clear the depth buffer.
	DepthBufferBit = 0x00000100

	// Capabilities for Enable and Disable.
	DepthTest              = 0x0B71
	CullFace               = 0x0B44
	Multisample            = 0x809D
	Blend                  = 0x0BE2
	DebugOutputSynchronous = 0x8242

	// Less is the depth comparison used with DepthFunc.
	Less = 0x0201

	// Blending factors.
	SrcAlpha         = 0x0302
	OneMinusSrcAlpha = 0x0303

	// Buffer binding targets.
	ArrayBuffer        = 0x8892
	ElementArrayBuffer = 0x8893

	// StaticDraw hints that buffer contents are written once and drawn many times.
	StaticDraw = 0x88E4

	// Data types.
	Float       = 0x1406
	UnsignedInt = 0x1405

	// Triangles is the primitive type for independent triangles.
	Triangles = 0x0004

	// Shader stages.
	VertexShader         = 0x8B31
	FragmentShader       = 0x8B30
	GeometryShader       = 0x8DD9
	TessControlShader    = 0x8E88
	TessEvaluationShader = 0x8E87
	ComputeShader        = 0x91B9

	// Status queries for GetShaderiv and GetProgramiv.
	CompileStatus = 0x8B81
	LinkStatus    = 0x8B82
	InfoLogLength = 0x8B84

	// GetString parameters.
	//
	// Vendor returns the company responsible for the GL implementation.
	Vendor = 0x1F00
	// Renderer names the renderer, usually the GPU model.
	Renderer = 0x1F01
	// Version returns the GL version string of the current context.
	Version = 0x1F02
	// ShadingLanguageVersion returns the GLSL version supported by the context.
	ShadingLanguageVersion = 0x8B8C
)

// DebugFunc receives messages emitted by the driver once debug output is enabled.
type DebugFunc func(source, kind, id, severity uint32, message string)

// OpenGL describes the subset of OpenGL entry points used by the renderer.
//
// Implementations typically wrap platform-specific GL bindings. All methods are
// expected to operate on the current GL context of the calling thread, so an
// OpenGL value must only be used from the thread that made the context current.
type OpenGL interface {
	// ClearColor sets the clear color used by Clear when clearing the color buffer.
	ClearColor(r, g, b, a float32)

	// Clear clears buffers to preset values (e.g., ColorBufferBit|DepthBufferBit).
	Clear(mask uint32)

	// Viewport sets the affine transformation of x and y from normalized device
	// coordinates to window coordinates.
	Viewport(x, y, width, height int32)

	// Enable enables a server-side GL capability (e.g., DepthTest).
	Enable(cap uint32)

	// Disable disables a server-side GL capability.
	Disable(cap uint32)

	// DepthFunc specifies the depth comparison function.
	DepthFunc(fn uint32)

	// BlendFunc specifies the pixel arithmetic for blending (e.g., SrcAlpha and OneMinusSrcAlpha).
	BlendFunc(sfactor, dfactor uint32)

	// GetString returns a string describing a GL property for the current context.
	//
	// If the name is not recognized or no context is current, implementations may
	// return the empty string.
	GetString(name uint32) string

	// DebugMessageCallback installs fn as the receiver of driver debug messages.
	// Only one callback can be installed per process.
	DebugMessageCallback(fn DebugFunc)

	// Buffer objects.
	GenBuffers(n int32, buffers *uint32)
	DeleteBuffers(n int32, buffers *uint32)
	BindBuffer(target uint32, buffer uint32)
	BufferData(target uint32, size int, data unsafe.Pointer, usage uint32)

	// Vertex array objects.
	GenVertexArrays(n int32, arrays *uint32)
	DeleteVertexArrays(n int32, arrays *uint32)
	BindVertexArray(array uint32)
	VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset unsafe.Pointer)
	EnableVertexAttribArray(index uint32)

	// Shaders and programs.
	CreateShader(xtype uint32) uint32
	ShaderSource(shader uint32, source string)
	CompileShader(shader uint32)
	GetShaderiv(shader uint32, pname uint32, params *int32)
	GetShaderInfoLog(shader uint32) string
	DeleteShader(shader uint32)
	CreateProgram() uint32
	AttachShader(program uint32, shader uint32)
	DetachShader(program uint32, shader uint32)
	LinkProgram(program uint32)
	GetProgramiv(program uint32, pname uint32, params *int32)
	GetProgramInfoLog(program uint32) string
	UseProgram(program uint32)
	DeleteProgram(program uint32)

	// Uniforms are addressed by explicit location.
	Uniform4f(location int32, v0, v1, v2, v3 float32)
	UniformMatrix4fv(location int32, count int32, transpose bool, value *float32)

	// DrawElements renders primitives from the bound element array buffer.
	DrawElements(mode uint32, count int32, xtype uint32, indices unsafe.Pointer)
}

func gostring(ptr *byte) string {
	if ptr == nil {
		return ""
	}
	var bytes []byte
	for p := ptr; *p != 0; p = (*byte)(unsafe.Pointer(uintptr(unsafe.Pointer(p)) + 1)) {
		bytes = append(bytes, *p)
	}
	return string(bytes)
}
