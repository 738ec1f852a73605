// Package water animates the deformable water surface.
package water

import (
	"math"

	"github.com/Faultbox/aquarium/internal/engine/model"
)

// Stride is the vertex step of the deformation. Only the first corner of
// each triangle is displaced.
const Stride = 3

// Wave is a travelling sine wave along the x+z diagonal.
type Wave struct {
	Amplitude float64
	Frequency float64
	Speed     float64
}

// DefaultWave returns the wave the tank surface is tuned for.
func DefaultWave() Wave {
	return Wave{Amplitude: 100, Frequency: 0.5, Speed: 10}
}

// Height returns the wave height at (x, z) and time t (seconds).
func (w Wave) Height(x, z float32, t float64) float32 {
	return float32(w.Amplitude * math.Sin(w.Frequency*(float64(x)+float64(z)+t*w.Speed)))
}

// Deform sets the height of every Stride-th vertex from its own x and z.
// All other vertices and every other attribute are left untouched.
func (w Wave) Deform(vertices []model.Vertex, t float64) {
	for i := 0; i < len(vertices); i += Stride {
		p := &vertices[i].Position
		p[1] = w.Height(p[0], p[2], t)
	}
}

// Uploader receives the full vertex buffer after every deformation.
type Uploader interface {
	Upload(vertices []model.Vertex)
}

// Surface is the water mesh together with the GPU buffer that mirrors it.
type Surface struct {
	Wave   Wave
	Mesh   *model.Mesh
	Buffer Uploader
}

// NewSurface creates a surface animating mesh and pushing it to buf.
func NewSurface(w Wave, mesh *model.Mesh, buf Uploader) *Surface {
	return &Surface{Wave: w, Mesh: mesh, Buffer: buf}
}

// Update deforms the mesh for time t and re-uploads all of it.
func (s *Surface) Update(t float64) {
	if s.Mesh == nil {
		return
	}
	s.Wave.Deform(s.Mesh.Vertices, t)
	if s.Buffer != nil {
		s.Buffer.Upload(s.Mesh.Vertices)
	}
}

// DefaultGridCells and DefaultGridSize describe the fallback surface used
// when the water mesh cannot be loaded.
const (
	DefaultGridCells = 32
	DefaultGridSize  = 4000
)

// BuildGrid returns a flat tessellated plane to deform in place of a
// missing surface mesh.
func BuildGrid() *model.Mesh {
	return model.Grid("water", DefaultGridCells, DefaultGridSize)
}
