package renderer

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/aquarium/internal/engine/model"
)

var cubeCorners = [8]mgl32.Vec3{
	{-1, -1, 1},
	{-1, -1, -1},
	{1, -1, -1},
	{1, -1, 1},
	{-1, 1, 1},
	{-1, 1, -1},
	{1, 1, -1},
	{1, 1, 1},
}

var cubeIndices = []uint32{
	0, 1, 2,
	0, 2, 3,
	0, 4, 7,
	0, 7, 3,
	3, 7, 6,
	3, 6, 2,
	2, 6, 5,
	2, 5, 1,
	1, 5, 4,
	1, 4, 0,
	4, 5, 6,
	4, 6, 7,
}

// lightCubeMesh builds the unit cube marking the light position. Only the
// position attribute is read by the light shader.
func lightCubeMesh() *model.Mesh {
	m := &model.Mesh{Name: "light", Indices: append([]uint32(nil), cubeIndices...)}
	for _, p := range cubeCorners {
		m.Vertices = append(m.Vertices, model.Vertex{Position: p, Color: mgl32.Vec3{1, 1, 1}})
	}
	m.ComputeBounds()
	return m
}
