package game

import (
	"go.uber.org/zap"

	"github.com/Faultbox/aquarium/internal/assets"
	"github.com/Faultbox/aquarium/internal/engine/gpu"
	"github.com/Faultbox/aquarium/internal/engine/model"
	"github.com/Faultbox/aquarium/internal/engine/renderer"
	"github.com/Faultbox/aquarium/internal/engine/texture"
	"github.com/Faultbox/aquarium/internal/logger"
	"github.com/Faultbox/aquarium/internal/scene"
)

// Library owns the GPU copies of the models a registry uses. Every decoded
// mesh and image is uploaded once however many slots draw it.
type Library struct {
	drawables []renderer.Drawable
	meshes    map[*model.Mesh]*gpu.Mesh
	textures  map[*texture.Image]*gpu.Texture
	surface   *gpu.Mesh
}

// NewLibrary uploads the assets referenced in refs (handle -> slot count).
// Unreferenced handles are skipped and draw nothing.
func NewLibrary(list []assets.Asset, refs map[scene.MeshHandle]int) *Library {
	lib := &Library{
		drawables: make([]renderer.Drawable, len(list)),
		meshes:    make(map[*model.Mesh]*gpu.Mesh),
		textures:  make(map[*texture.Image]*gpu.Texture),
	}

	for _, a := range list {
		if refs[a.Handle] == 0 {
			continue
		}

		d := renderer.Drawable{Texture: lib.texture(a.Image)}
		if !a.Mesh.Empty() {
			if a.Surface {
				d.Mesh = gpu.NewMesh(a.Mesh, gpu.DynamicDraw)
				lib.surface = d.Mesh
			} else {
				d.Mesh = lib.mesh(a.Mesh)
			}
		}
		lib.drawables[a.Handle] = d
	}

	logger.Named("library").Info("models uploaded",
		zap.Int("handles", len(refs)),
		zap.Int("meshes", len(lib.meshes)),
		zap.Int("textures", len(lib.textures)),
		zap.Bool("surface", lib.surface != nil),
	)
	return lib
}

func (lib *Library) mesh(m *model.Mesh) *gpu.Mesh {
	if g, ok := lib.meshes[m]; ok {
		return g
	}
	g := gpu.NewMesh(m, gpu.StaticDraw)
	lib.meshes[m] = g
	return g
}

func (lib *Library) texture(img *texture.Image) *gpu.Texture {
	if img == nil {
		return nil
	}
	if t, ok := lib.textures[img]; ok {
		return t
	}
	t := gpu.NewTexture(img)
	lib.textures[img] = t
	return t
}

// Drawable returns what slots with handle h draw.
func (lib *Library) Drawable(h scene.MeshHandle) renderer.Drawable {
	if int(h) < 0 || int(h) >= len(lib.drawables) {
		return renderer.Drawable{}
	}
	return lib.drawables[h]
}

// Surface returns the dynamic buffer of the water surface, or nil.
func (lib *Library) Surface() *gpu.Mesh {
	return lib.surface
}

// Delete frees every GPU object of the library.
func (lib *Library) Delete() {
	for _, m := range lib.meshes {
		m.Delete()
	}
	for _, t := range lib.textures {
		t.Delete()
	}
	if lib.surface != nil {
		lib.surface.Delete()
	}
	lib.meshes = nil
	lib.textures = nil
	lib.surface = nil
	lib.drawables = nil
}
