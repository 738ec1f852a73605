// Package gpu wraps the OpenGL objects the renderer needs: vertex arrays,
// vertex and element buffers, and textures.
//
// Every function here must run on the thread that owns the GL context.
package gpu

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/aquarium/internal/engine/model"
)

// Usage is a buffer usage hint.
type Usage uint32

const (
	StaticDraw  Usage = gl.STATIC_DRAW
	DynamicDraw Usage = gl.DYNAMIC_DRAW
)

// VertexArray is a vertex array object.
type VertexArray struct {
	ID uint32
}

// NewVertexArray generates a vertex array object.
func NewVertexArray() *VertexArray {
	va := &VertexArray{}
	gl.GenVertexArrays(1, &va.ID)
	return va
}

// Bind makes the vertex array current.
func (va *VertexArray) Bind() {
	gl.BindVertexArray(va.ID)
}

// Unbind clears the current vertex array.
func (va *VertexArray) Unbind() {
	gl.BindVertexArray(0)
}

// LinkAttrib describes attribute index as size floats at offset floats into
// each vertex of the bound vertex buffer.
func (va *VertexArray) LinkAttrib(index uint32, size int32, stride int32, offset int) {
	gl.VertexAttribPointerWithOffset(index, size, gl.FLOAT, false, stride, uintptr(offset*4))
	gl.EnableVertexAttribArray(index)
}

// LinkVertexLayout links the model.Vertex layout: position (0), colour (1),
// texcoord (2), normal (3).
func (va *VertexArray) LinkVertexLayout() {
	va.LinkAttrib(0, 3, model.VertexStride, model.PositionOffset)
	va.LinkAttrib(1, 3, model.VertexStride, model.ColorOffset)
	va.LinkAttrib(2, 2, model.VertexStride, model.TexCoordOffset)
	va.LinkAttrib(3, 3, model.VertexStride, model.NormalOffset)
}

// Delete frees the vertex array.
func (va *VertexArray) Delete() {
	if va.ID != 0 {
		gl.DeleteVertexArrays(1, &va.ID)
		va.ID = 0
	}
}

// VertexBuffer is an array buffer holding interleaved model vertices.
type VertexBuffer struct {
	ID      uint32
	usage   Usage
	scratch []float32
}

// NewVertexBuffer creates a buffer and uploads vertices to it. The buffer
// stays bound.
func NewVertexBuffer(vertices []model.Vertex, usage Usage) *VertexBuffer {
	vb := &VertexBuffer{usage: usage}
	gl.GenBuffers(1, &vb.ID)
	vb.Bind()
	vb.upload(vertices)
	return vb
}

// NewRawVertexBuffer creates a buffer from plain floats. The buffer stays
// bound.
func NewRawVertexBuffer(data []float32) *VertexBuffer {
	vb := &VertexBuffer{usage: StaticDraw}
	gl.GenBuffers(1, &vb.ID)
	vb.Bind()
	if len(data) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), uint32(vb.usage))
	}
	return vb
}

// Upload replaces the whole buffer with vertices.
func (vb *VertexBuffer) Upload(vertices []model.Vertex) {
	vb.Bind()
	vb.upload(vertices)
	vb.Unbind()
}

func (vb *VertexBuffer) upload(vertices []model.Vertex) {
	vb.scratch = model.Flatten(vb.scratch, vertices)
	if len(vb.scratch) == 0 {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, uint32(vb.usage))
		return
	}
	gl.BufferData(gl.ARRAY_BUFFER, len(vb.scratch)*4, gl.Ptr(vb.scratch), uint32(vb.usage))
}

// Bind makes the buffer the current array buffer.
func (vb *VertexBuffer) Bind() {
	gl.BindBuffer(gl.ARRAY_BUFFER, vb.ID)
}

// Unbind clears the current array buffer.
func (vb *VertexBuffer) Unbind() {
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// Delete frees the buffer.
func (vb *VertexBuffer) Delete() {
	if vb.ID != 0 {
		gl.DeleteBuffers(1, &vb.ID)
		vb.ID = 0
	}
}

// ElementBuffer is an index buffer.
type ElementBuffer struct {
	ID    uint32
	Count int32
}

// NewElementBuffer creates an index buffer. It must be created while the
// owning vertex array is bound.
func NewElementBuffer(indices []uint32) *ElementBuffer {
	eb := &ElementBuffer{Count: int32(len(indices))}
	gl.GenBuffers(1, &eb.ID)
	eb.Bind()
	if len(indices) > 0 {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)
	}
	return eb
}

// Bind makes the buffer the current element buffer.
func (eb *ElementBuffer) Bind() {
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, eb.ID)
}

// Unbind clears the current element buffer.
func (eb *ElementBuffer) Unbind() {
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)
}

// Delete frees the buffer.
func (eb *ElementBuffer) Delete() {
	if eb.ID != 0 {
		gl.DeleteBuffers(1, &eb.ID)
		eb.ID = 0
	}
}
