// Package mesh uploads indexed, per-vertex coloured geometry into a vertex
// array object.
package mesh

import (
	"fmt"
	"unsafe"

	glpkg "github.com/tinyrange/gloom/internal/gl"
)

// Attribute locations the shaders read per-vertex data from.
const (
	PositionLocation = 0
	ColorLocation    = 4
)

const (
	positionComponents = 3
	colorComponents    = 4
	// Zero stride lets GL derive it from component count and type.
	tightlyPacked = 0
)

// VertexArray is a vertex array object together with the buffers it
// references. It must only be used on the thread owning the context it was
// built with.
type VertexArray struct {
	gl glpkg.OpenGL

	ID       uint32
	Position uint32
	Color    uint32
	Index    uint32
	// Count is the number of indices drawn by Draw.
	Count int32
}

// Build uploads vertices (x,y,z), colors (r,g,b,a) and triangle indices and
// returns the vertex array binding them. The upload order and attribute
// locations are fixed. Inputs are not validated; see CheckLayout for the
// caller's contract.
func Build(gl glpkg.OpenGL, vertices []float32, indices []uint32, colors []float32) *VertexArray {
	va := &VertexArray{gl: gl, Count: int32(len(indices))}

	gl.GenVertexArrays(1, &va.ID)
	gl.BindVertexArray(va.ID)

	gl.GenBuffers(1, &va.Position)
	gl.BindBuffer(glpkg.ArrayBuffer, va.Position)
	gl.BufferData(glpkg.ArrayBuffer, byteSize(vertices), pointer(vertices), glpkg.StaticDraw)
	gl.VertexAttribPointer(PositionLocation, positionComponents, glpkg.Float, false, tightlyPacked, nil)
	gl.EnableVertexAttribArray(PositionLocation)

	gl.GenBuffers(1, &va.Color)
	gl.BindBuffer(glpkg.ArrayBuffer, va.Color)
	gl.BufferData(glpkg.ArrayBuffer, byteSize(colors), pointer(colors), glpkg.StaticDraw)
	gl.VertexAttribPointer(ColorLocation, colorComponents, glpkg.Float, false, tightlyPacked, nil)
	gl.EnableVertexAttribArray(ColorLocation)

	gl.GenBuffers(1, &va.Index)
	gl.BindBuffer(glpkg.ElementArrayBuffer, va.Index)
	gl.BufferData(glpkg.ElementArrayBuffer, byteSize(indices), pointer(indices), glpkg.StaticDraw)

	return va
}

// Bind makes va the current vertex array.
func (va *VertexArray) Bind() {
	va.gl.BindVertexArray(va.ID)
}

// Draw binds va and draws every index as triangles.
func (va *VertexArray) Draw() {
	va.Bind()
	va.gl.DrawElements(glpkg.Triangles, va.Count, glpkg.UnsignedInt, nil)
}

// Delete releases the vertex array and its buffers. Calling it again is a
// no-op.
func (va *VertexArray) Delete() {
	if va.ID == 0 {
		return
	}
	va.gl.BindVertexArray(0)
	va.gl.DeleteVertexArrays(1, &va.ID)
	for _, b := range []*uint32{&va.Position, &va.Color, &va.Index} {
		va.gl.DeleteBuffers(1, b)
		*b = 0
	}
	va.ID = 0
}

// CheckLayout reports whether the inputs satisfy Build's contract: whole
// vertices and colours, one colour per vertex, indices in range.
func CheckLayout(vertices []float32, indices []uint32, colors []float32) error {
	if len(vertices)%positionComponents != 0 {
		return fmt.Errorf("vertex data length %d is not a multiple of %d", len(vertices), positionComponents)
	}
	if len(colors)%colorComponents != 0 {
		return fmt.Errorf("color data length %d is not a multiple of %d", len(colors), colorComponents)
	}
	n := len(vertices) / positionComponents
	if c := len(colors) / colorComponents; c != n {
		return fmt.Errorf("%d colors for %d vertices", c, n)
	}
	for i, idx := range indices {
		if int(idx) >= n {
			return fmt.Errorf("index %d at position %d out of range for %d vertices", idx, i, n)
		}
	}
	return nil
}

func byteSize[T float32 | uint32](s []T) int {
	var zero T
	return len(s) * int(unsafe.Sizeof(zero))
}

func pointer[T float32 | uint32](s []T) unsafe.Pointer {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Pointer(&s[0])
}
