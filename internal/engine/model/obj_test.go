package model

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

const quadOBJ = `# unit quad
o quad
v 0 0 0
v 1 0 0
v 1 0 1
v 0 0 1
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 1 0
usemtl sand
f 1/1/1 4/4/1 3/3/1 2/2/1
`

func TestLoadOBJQuad(t *testing.T) {
	m, warnings, err := LoadOBJ(strings.NewReader(quadOBJ))
	if err != nil {
		t.Fatalf("LoadOBJ: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}

	// A quad becomes two triangles with their own vertices.
	if len(m.Vertices) != 6 || len(m.Indices) != 6 || m.TriangleCount() != 2 {
		t.Fatalf("got %d vertices, %d indices", len(m.Vertices), len(m.Indices))
	}
	for i, idx := range m.Indices {
		if int(idx) != i {
			t.Errorf("index %d = %d, want sequential", i, idx)
		}
	}

	// Fan: (1,4,3) then (1,3,2).
	wantPos := []mgl32.Vec3{{0, 0, 0}, {0, 0, 1}, {1, 0, 1}, {0, 0, 0}, {1, 0, 1}, {1, 0, 0}}
	for i, want := range wantPos {
		if m.Vertices[i].Position != want {
			t.Errorf("vertex %d at %v, want %v", i, m.Vertices[i].Position, want)
		}
	}
	if m.Vertices[2].TexCoord != (mgl32.Vec2{1, 1}) {
		t.Errorf("texcoord %v", m.Vertices[2].TexCoord)
	}
	for i, v := range m.Vertices {
		if v.Normal != (mgl32.Vec3{0, 1, 0}) || v.Color != (mgl32.Vec3{1, 1, 1}) {
			t.Errorf("vertex %d normal %v colour %v", i, v.Normal, v.Color)
		}
	}

	if m.Bounds.Min != (mgl32.Vec3{0, 0, 0}) || m.Bounds.Max != (mgl32.Vec3{1, 0, 1}) {
		t.Errorf("bounds %+v", m.Bounds)
	}
}

func TestLoadOBJNegativeIndicesAndColours(t *testing.T) {
	src := `v 0 0 0 1 0 0
v 1 0 0 0 1 0
v 0 1 0 0 0 1
f -3 -2 -1
`
	m, _, err := LoadOBJ(strings.NewReader(src))
	if err != nil {
		t.Fatalf("LoadOBJ: %v", err)
	}
	if m.Vertices[0].Color != (mgl32.Vec3{1, 0, 0}) || m.Vertices[2].Color != (mgl32.Vec3{0, 0, 1}) {
		t.Errorf("colours %v %v", m.Vertices[0].Color, m.Vertices[2].Color)
	}
	// No vn: the face normal of a CCW triangle in the XY plane is +Z.
	if !m.Vertices[0].Normal.ApproxEqual(mgl32.Vec3{0, 0, 1}) {
		t.Errorf("computed normal %v", m.Vertices[0].Normal)
	}
}

func TestLoadOBJWarnings(t *testing.T) {
	src := "v 0 0 0\nv 1 0 0\nv 0 1 0\nl 1 2\nf 1 2 3\n"
	_, warnings, err := LoadOBJ(strings.NewReader(src))
	if err != nil {
		t.Fatalf("LoadOBJ: %v", err)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "line 4") {
		t.Errorf("warnings %v", warnings)
	}
}

func TestLoadOBJErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		line int
	}{
		{"out of range", "v 0 0 0\nf 1 2 3\n", 2},
		{"zero index", "v 0 0 0\nv 0 0 0\nv 0 0 0\nf 0 1 2\n", 4},
		{"short face", "v 0 0 0\nf 1 1\n", 2},
		{"bad float", "v 0 x 0\n", 1},
		{"no faces", "v 0 0 0\n", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := LoadOBJ(strings.NewReader(tt.src))
			var le *LoadError
			if !errors.As(err, &le) {
				t.Fatalf("expected *LoadError, got %v", err)
			}
			if le.Line != tt.line {
				t.Errorf("line %d, want %d (%v)", le.Line, tt.line, err)
			}
		})
	}

	_, _, err := LoadOBJ(strings.NewReader("# empty\n"))
	if !errors.Is(err, ErrNoGeometry) {
		t.Errorf("expected ErrNoGeometry, got %v", err)
	}
}

func TestLoadOBJFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "quad.obj")
	if err := os.WriteFile(path, []byte(quadOBJ), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	m, _, err := LoadOBJFile(path)
	if err != nil {
		t.Fatalf("LoadOBJFile: %v", err)
	}
	if m.Name != "quad.obj" {
		t.Errorf("name %q", m.Name)
	}

	_, _, err = LoadOBJFile(filepath.Join(dir, "missing.obj"))
	var le *LoadError
	if !errors.As(err, &le) || le.Path == "" || !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected LoadError wrapping ErrNotExist, got %v", err)
	}
}

func TestGrid(t *testing.T) {
	m := Grid("water", 4, 100)
	if len(m.Vertices) != 4*4*6 || len(m.Indices) != len(m.Vertices) {
		t.Fatalf("got %d vertices", len(m.Vertices))
	}
	if m.Bounds.Min != (mgl32.Vec3{-50, 0, -50}) || m.Bounds.Max != (mgl32.Vec3{50, 0, 50}) {
		t.Errorf("bounds %+v", m.Bounds)
	}
	for i := 0; i < len(m.Vertices); i += 3 {
		n := FaceNormal(m.Vertices[i].Position, m.Vertices[i+1].Position, m.Vertices[i+2].Position)
		if !n.ApproxEqual(mgl32.Vec3{0, 1, 0}) {
			t.Fatalf("triangle %d faces %v", i/3, n)
		}
	}
}

func TestFlatten(t *testing.T) {
	v := Vertex{
		Position: mgl32.Vec3{1, 2, 3},
		Color:    mgl32.Vec3{4, 5, 6},
		TexCoord: mgl32.Vec2{7, 8},
		Normal:   mgl32.Vec3{9, 10, 11},
	}
	got := Flatten(nil, []Vertex{v, v})
	if len(got) != 2*VertexFloats {
		t.Fatalf("len %d", len(got))
	}
	for i := 0; i < VertexFloats; i++ {
		if got[i] != float32(i+1) || got[VertexFloats+i] != float32(i+1) {
			t.Fatalf("float %d = %v", i, got[i])
		}
	}
}
