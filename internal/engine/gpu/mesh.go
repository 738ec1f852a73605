package gpu

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/aquarium/internal/engine/model"
)

// Mesh is a model.Mesh resident on the GPU.
type Mesh struct {
	VAO *VertexArray
	VBO *VertexBuffer
	EBO *ElementBuffer
}

// NewMesh uploads m. Meshes that are rewritten every frame should use
// DynamicDraw.
func NewMesh(m *model.Mesh, usage Usage) *Mesh {
	vao := NewVertexArray()
	vao.Bind()
	vbo := NewVertexBuffer(m.Vertices, usage)
	ebo := NewElementBuffer(m.Indices)
	vao.LinkVertexLayout()
	vao.Unbind()
	vbo.Unbind()
	ebo.Unbind()

	return &Mesh{VAO: vao, VBO: vbo, EBO: ebo}
}

// Upload replaces the vertex data. It satisfies water.Uploader.
func (m *Mesh) Upload(vertices []model.Vertex) {
	m.VBO.Upload(vertices)
}

// Draw issues one indexed draw call.
func (m *Mesh) Draw() {
	if m.EBO.Count == 0 {
		return
	}
	m.VAO.Bind()
	gl.DrawElementsWithOffset(gl.TRIANGLES, m.EBO.Count, gl.UNSIGNED_INT, 0)
	m.VAO.Unbind()
}

// Delete frees all GPU objects of the mesh.
func (m *Mesh) Delete() {
	m.VAO.Delete()
	m.VBO.Delete()
	m.EBO.Delete()
}
