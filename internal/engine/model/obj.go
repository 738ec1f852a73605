package model

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrNoGeometry is returned for files without a single face.
var ErrNoGeometry = errors.New("no faces")

// LoadError reports a mesh that could not be loaded.
type LoadError struct {
	Path string
	Line int
	Err  error
}

func (e *LoadError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("load %s: line %d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// objDecoder accumulates the attribute pools of an OBJ file and the
// triangles built from its faces.
type objDecoder struct {
	positions []mgl32.Vec3
	colors    []mgl32.Vec3
	uvs       []mgl32.Vec2
	normals   []mgl32.Vec3

	mesh        *Mesh
	missingNorm bool
	line        int
	// Warnings lists statements that were skipped.
	warnings []string
}

// LoadOBJFile loads a Wavefront OBJ file.
func LoadOBJFile(path string) (*Mesh, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close()

	m, warnings, err := LoadOBJ(f)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Path = path
			return nil, warnings, le
		}
		return nil, warnings, &LoadError{Path: path, Err: err}
	}
	m.Name = filepath.Base(path)
	return m, warnings, nil
}

// LoadOBJ decodes OBJ text into a triangle mesh. It understands v (with
// optional vertex colour), vt, vn and f. Polygons are fan triangulated and
// negative indices are resolved relative to the end of each pool. Other
// statements are skipped and reported as warnings.
func LoadOBJ(r io.Reader) (*Mesh, []string, error) {
	dec := &objDecoder{mesh: &Mesh{}}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		dec.line++
		if err := dec.parseLine(scanner.Text()); err != nil {
			return nil, dec.warnings, &LoadError{Line: dec.line, Err: err}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, dec.warnings, &LoadError{Err: err}
	}

	if len(dec.mesh.Indices) == 0 {
		return nil, dec.warnings, &LoadError{Err: ErrNoGeometry}
	}
	if dec.missingNorm {
		SmoothNormals(dec.mesh.Vertices)
	}
	dec.mesh.ComputeBounds()
	return dec.mesh, dec.warnings, nil
}

func (dec *objDecoder) parseLine(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return nil
	}

	switch fields[0] {
	case "v":
		return dec.parseVertex(fields[1:])
	case "vt":
		uv, err := parseFloats(fields[1:], 2)
		if err != nil {
			return fmt.Errorf("vt: %w", err)
		}
		dec.uvs = append(dec.uvs, mgl32.Vec2{uv[0], uv[1]})
	case "vn":
		n, err := parseFloats(fields[1:], 3)
		if err != nil {
			return fmt.Errorf("vn: %w", err)
		}
		dec.normals = append(dec.normals, mgl32.Vec3{n[0], n[1], n[2]})
	case "f":
		return dec.parseFace(fields[1:])
	case "o", "g", "s", "mtllib", "usemtl":
		// Grouping and materials do not affect a single-texture mesh.
	default:
		dec.warnings = append(dec.warnings, fmt.Sprintf("line %d: unsupported statement %q", dec.line, fields[0]))
	}
	return nil
}

func (dec *objDecoder) parseVertex(fields []string) error {
	if len(fields) >= 6 {
		vals, err := parseFloats(fields, 6)
		if err != nil {
			return fmt.Errorf("v: %w", err)
		}
		dec.positions = append(dec.positions, mgl32.Vec3{vals[0], vals[1], vals[2]})
		dec.colors = append(dec.colors, mgl32.Vec3{vals[3], vals[4], vals[5]})
		return nil
	}
	vals, err := parseFloats(fields, 3)
	if err != nil {
		return fmt.Errorf("v: %w", err)
	}
	dec.positions = append(dec.positions, mgl32.Vec3{vals[0], vals[1], vals[2]})
	dec.colors = append(dec.colors, white)
	return nil
}

type faceCorner struct {
	v, vt, vn int // -1 when absent
}

func (dec *objDecoder) parseFace(fields []string) error {
	if len(fields) < 3 {
		return errors.New("face with fewer than 3 vertices")
	}

	corners := make([]faceCorner, len(fields))
	for i, f := range fields {
		c, err := dec.parseCorner(f)
		if err != nil {
			return err
		}
		corners[i] = c
	}

	for i := 1; i+1 < len(corners); i++ {
		dec.addTriangle(corners[0], corners[i], corners[i+1])
	}
	return nil
}

// parseCorner parses "v", "v/vt", "v//vn" or "v/vt/vn".
func (dec *objDecoder) parseCorner(field string) (faceCorner, error) {
	parts := strings.Split(field, "/")
	c := faceCorner{v: -1, vt: -1, vn: -1}

	var err error
	if c.v, err = resolveIndex(parts[0], len(dec.positions)); err != nil {
		return c, fmt.Errorf("face vertex %q: %w", field, err)
	}
	if len(parts) > 1 && parts[1] != "" {
		if c.vt, err = resolveIndex(parts[1], len(dec.uvs)); err != nil {
			return c, fmt.Errorf("face texcoord %q: %w", field, err)
		}
	}
	if len(parts) > 2 && parts[2] != "" {
		if c.vn, err = resolveIndex(parts[2], len(dec.normals)); err != nil {
			return c, fmt.Errorf("face normal %q: %w", field, err)
		}
	}
	return c, nil
}

func (dec *objDecoder) addTriangle(a, b, c faceCorner) {
	corners := [3]faceCorner{a, b, c}
	var verts [3]Vertex
	for i, fc := range corners {
		verts[i] = Vertex{
			Position: dec.positions[fc.v],
			Color:    dec.colors[fc.v],
		}
		if fc.vt >= 0 {
			verts[i].TexCoord = dec.uvs[fc.vt]
		}
	}

	flat := FaceNormal(verts[0].Position, verts[1].Position, verts[2].Position)
	for i, fc := range corners {
		if fc.vn >= 0 {
			verts[i].Normal = dec.normals[fc.vn]
		} else {
			verts[i].Normal = flat
			dec.missingNorm = true
		}
	}

	for _, v := range verts {
		dec.mesh.Indices = append(dec.mesh.Indices, uint32(len(dec.mesh.Vertices)))
		dec.mesh.Vertices = append(dec.mesh.Vertices, v)
	}
}

// resolveIndex converts a 1-based (or negative, relative) OBJ index into a
// 0-based index into a pool of size n.
func resolveIndex(s string, n int) (int, error) {
	val, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	var idx int
	switch {
	case val > 0:
		idx = val - 1
	case val < 0:
		idx = n + val
	default:
		return 0, errors.New("index 0")
	}
	if idx < 0 || idx >= n {
		return 0, fmt.Errorf("index %d out of range (%d defined)", val, n)
	}
	return idx, nil
}

func parseFloats(fields []string, n int) ([]float32, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("want %d values, got %d", n, len(fields))
	}
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		v, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return nil, err
		}
		out[i] = float32(v)
	}
	return out, nil
}
