package model

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

var white = mgl32.Vec3{1, 1, 1}

// ComputeBounds recalculates m.Bounds from its vertices.
func (m *Mesh) ComputeBounds() {
	if len(m.Vertices) == 0 {
		m.Bounds = Bounds{}
		return
	}
	b := Bounds{
		Min: mgl32.Vec3{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32},
		Max: mgl32.Vec3{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32},
	}
	for _, v := range m.Vertices {
		for axis := 0; axis < 3; axis++ {
			b.Min[axis] = min(b.Min[axis], v.Position[axis])
			b.Max[axis] = max(b.Max[axis], v.Position[axis])
		}
	}
	m.Bounds = b
}

// FaceNormal returns the unit normal of triangle (a, b, c) with
// counter-clockwise winding. Degenerate triangles get +Y.
func FaceNormal(a, b, c mgl32.Vec3) mgl32.Vec3 {
	n := b.Sub(a).Cross(c.Sub(a))
	if n.Len() < 1e-6 {
		return mgl32.Vec3{0, 1, 0}
	}
	return n.Normalize()
}

// SmoothNormals averages normals of vertices sharing a position.
// This reduces the faceted look of meshes exported without normals.
func SmoothNormals(vertices []Vertex) {
	const epsilon float32 = 0.001

	posMap := make(map[[3]int32][]int)
	for i := range vertices {
		key := [3]int32{
			int32(vertices[i].Position[0] / epsilon),
			int32(vertices[i].Position[1] / epsilon),
			int32(vertices[i].Position[2] / epsilon),
		}
		posMap[key] = append(posMap[key], i)
	}

	for _, idxs := range posMap {
		if len(idxs) < 2 {
			continue
		}

		var sum mgl32.Vec3
		for _, idx := range idxs {
			sum = sum.Add(vertices[idx].Normal)
		}
		if sum.Len() < 1e-6 {
			continue
		}
		avg := sum.Normalize()

		for _, idx := range idxs {
			vertices[idx].Normal = avg
		}
	}
}

// Flatten returns the vertices as interleaved floats in GPU layout.
// dst is reused when it has enough capacity.
func Flatten(dst []float32, vertices []Vertex) []float32 {
	n := len(vertices) * VertexFloats
	if cap(dst) < n {
		dst = make([]float32, n)
	}
	dst = dst[:n]
	for i, v := range vertices {
		o := dst[i*VertexFloats : (i+1)*VertexFloats]
		copy(o[PositionOffset:], v.Position[:])
		copy(o[ColorOffset:], v.Color[:])
		copy(o[TexCoordOffset:], v.TexCoord[:])
		copy(o[NormalOffset:], v.Normal[:])
	}
	return dst
}

// Grid builds a flat, tessellated square in the XZ plane centered on the
// origin, with cells x cells quads of the given size. Used as a stand-in
// for meshes that fail to load.
func Grid(name string, cells int, size float32) *Mesh {
	if cells < 1 {
		cells = 1
	}
	m := &Mesh{Name: name}
	step := size / float32(cells)
	half := size / 2
	up := mgl32.Vec3{0, 1, 0}

	corner := func(i, j int) Vertex {
		return Vertex{
			Position: mgl32.Vec3{-half + float32(i)*step, 0, -half + float32(j)*step},
			Color:    white,
			TexCoord: mgl32.Vec2{float32(i) / float32(cells), float32(j) / float32(cells)},
			Normal:   up,
		}
	}

	for j := 0; j < cells; j++ {
		for i := 0; i < cells; i++ {
			a, b, c, d := corner(i, j), corner(i+1, j), corner(i+1, j+1), corner(i, j+1)
			for _, v := range []Vertex{a, d, c, a, c, b} {
				m.Indices = append(m.Indices, uint32(len(m.Vertices)))
				m.Vertices = append(m.Vertices, v)
			}
		}
	}
	m.ComputeBounds()
	return m
}
