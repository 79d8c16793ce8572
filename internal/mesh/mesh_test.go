package mesh

import (
	"slices"
	"testing"

	glpkg "github.com/tinyrange/gloom/internal/gl"
	"github.com/tinyrange/gloom/internal/gl/gltest"
)

var (
	triVertices = []float32{
		-0.8, -0.8, 1.2,
		0.8, 0.8, -1.2,
		0.0, 0.4, 0.0,
	}
	triIndices = []uint32{0, 1, 2}
	triColors  = []float32{
		1, 0, 0, 1,
		0, 1, 0, 1,
		0, 0, 1, 1,
	}
)

func TestBuildCallOrder(t *testing.T) {
	rec := gltest.New()
	Build(rec, triVertices, triIndices, triColors)

	want := []string{
		"GenVertexArrays", "BindVertexArray",
		"GenBuffers", "BindBuffer", "BufferData", "VertexAttribPointer", "EnableVertexAttribArray",
		"GenBuffers", "BindBuffer", "BufferData", "VertexAttribPointer", "EnableVertexAttribArray",
		"GenBuffers", "BindBuffer", "BufferData",
	}
	if got := rec.Names(); !slices.Equal(got, want) {
		t.Fatalf("calls = %v\nwant  %v", got, want)
	}
}

func TestBuildAttributeLayout(t *testing.T) {
	rec := gltest.New()
	Build(rec, triVertices, triIndices, triColors)

	attribs := rec.Find("VertexAttribPointer")
	if len(attribs) != 2 {
		t.Fatalf("VertexAttribPointer called %d times, want 2", len(attribs))
	}
	tests := []struct {
		loc  uint32
		size int32
	}{
		{PositionLocation, 3},
		{ColorLocation, 4},
	}
	for i, tt := range tests {
		args := attribs[i].Args
		if args[0] != tt.loc || args[1] != tt.size || args[2] != uint32(glpkg.Float) ||
			args[3] != false || args[4] != int32(0) || args[5] != uintptr(0) {
			t.Errorf("attribute %d = %v, want location %d size %d float tight offset 0", i, attribs[i], tt.loc, tt.size)
		}
	}

	enabled := rec.Find("EnableVertexAttribArray")
	if enabled[0].Args[0] != uint32(0) || enabled[1].Args[0] != uint32(4) {
		t.Errorf("enabled locations = %v, want 0 and 4", enabled)
	}
}

func TestBuildUploads(t *testing.T) {
	rec := gltest.New()
	va := Build(rec, triVertices, triIndices, triColors)

	uploads := rec.Find("BufferData")
	want := []gltest.Buffer{
		{Target: glpkg.ArrayBuffer, Size: 9 * 4, Usage: glpkg.StaticDraw},
		{Target: glpkg.ArrayBuffer, Size: 12 * 4, Usage: glpkg.StaticDraw},
		{Target: glpkg.ElementArrayBuffer, Size: 3 * 4, Usage: glpkg.StaticDraw},
	}
	for i, w := range want {
		if got := uploads[i].Args[0].(gltest.Buffer); got != w {
			t.Errorf("upload %d = %+v, want %+v", i, got, w)
		}
	}

	binds := rec.Find("BindBuffer")
	ids := []uint32{va.Position, va.Color, va.Index}
	for i, b := range binds {
		if b.Args[1] != ids[i] {
			t.Errorf("BindBuffer %d bound %v, want %d", i, b.Args[1], ids[i])
		}
	}
}

func TestBuildReturnsNonZeroHandle(t *testing.T) {
	va := Build(gltest.New(), triVertices, triIndices, triColors)
	if va.ID == 0 {
		t.Error("vertex array ID = 0")
	}
	if va.Position == 0 || va.Color == 0 || va.Index == 0 {
		t.Errorf("buffer IDs = %d/%d/%d, want non-zero", va.Position, va.Color, va.Index)
	}
	if va.Count != 3 {
		t.Errorf("Count = %d, want 3", va.Count)
	}
}

func TestDraw(t *testing.T) {
	rec := gltest.New()
	va := Build(rec, triVertices, triIndices, triColors)
	rec.Reset()

	va.Draw()
	want := []string{"BindVertexArray", "DrawElements"}
	if got := rec.Names(); !slices.Equal(got, want) {
		t.Fatalf("calls = %v, want %v", got, want)
	}
	draw := rec.Find("DrawElements")[0]
	if draw.Args[0] != uint32(glpkg.Triangles) || draw.Args[1] != int32(3) || draw.Args[2] != uint32(glpkg.UnsignedInt) {
		t.Errorf("DrawElements args = %v", draw.Args)
	}
}

func TestDelete(t *testing.T) {
	rec := gltest.New()
	va := Build(rec, triVertices, triIndices, triColors)
	rec.Reset()

	va.Delete()
	if rec.Count("DeleteVertexArrays") != 1 || rec.Count("DeleteBuffers") != 3 {
		t.Errorf("calls = %v, want one vertex array and three buffers deleted", rec.Names())
	}
	if va.ID != 0 {
		t.Errorf("ID = %d after Delete, want 0", va.ID)
	}

	rec.Reset()
	va.Delete()
	if len(rec.Calls) != 0 {
		t.Errorf("second Delete issued %v", rec.Names())
	}
}

func TestCheckLayout(t *testing.T) {
	tests := []struct {
		name     string
		vertices []float32
		indices  []uint32
		colors   []float32
		ok       bool
	}{
		{"triangle", triVertices, triIndices, triColors, true},
		{"partial vertex", triVertices[:8], triIndices, triColors, false},
		{"partial color", triVertices, triIndices, triColors[:11], false},
		{"color count mismatch", triVertices, triIndices, triColors[:8], false},
		{"index out of range", triVertices, []uint32{0, 1, 3}, triColors, false},
		{"empty", nil, nil, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckLayout(tt.vertices, tt.indices, tt.colors)
			if (err == nil) != tt.ok {
				t.Errorf("CheckLayout() = %v, want ok=%v", err, tt.ok)
			}
		})
	}
}

// Build does not validate: a mismatched colour count is the caller's
// problem and must not be rejected here.
func TestBuildDoesNotValidate(t *testing.T) {
	colors := triColors[:8]
	if CheckLayout(triVertices, triIndices, colors) == nil {
		t.Fatal("precondition should be violated")
	}
	va := Build(gltest.New(), triVertices, triIndices, colors)
	if va.ID == 0 {
		t.Error("Build refused out-of-contract input")
	}
}
