// Package model holds CPU-side mesh data and the Wavefront OBJ loader.
//
// Meshes are plain Go values; uploading them is the renderer's job.
package model

import "github.com/go-gl/mathgl/mgl32"

// Vertex is one mesh vertex. The field order is the GPU layout.
type Vertex struct {
	Position mgl32.Vec3
	Color    mgl32.Vec3
	TexCoord mgl32.Vec2
	Normal   mgl32.Vec3
}

// Vertex attribute layout in floats.
const (
	PositionOffset = 0
	ColorOffset    = 3
	TexCoordOffset = 6
	NormalOffset   = 8
	VertexFloats   = 11
	VertexStride   = VertexFloats * 4
)

// Mesh holds triangle geometry ready for GPU upload. Every triangle owns its
// three vertices, so Vertices[3k:3k+3] is triangle k.
type Mesh struct {
	Name     string
	Vertices []Vertex
	Indices  []uint32
	Bounds   Bounds
}

// Bounds holds the axis-aligned bounding box of a mesh.
type Bounds struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// Center returns the center of the box.
func (b Bounds) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Size returns the box extent on each axis.
func (b Bounds) Size() mgl32.Vec3 {
	return b.Max.Sub(b.Min)
}

// TriangleCount returns the number of indexed triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Empty reports whether the mesh has nothing to draw.
func (m *Mesh) Empty() bool {
	return m == nil || len(m.Indices) == 0
}
