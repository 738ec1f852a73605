// Package renderer draws the aquarium scene with OpenGL.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/aquarium/internal/engine/gpu"
	"github.com/Faultbox/aquarium/internal/engine/renderer/shaders"
	"github.com/Faultbox/aquarium/internal/engine/shader"
	"github.com/Faultbox/aquarium/internal/logger"
	"github.com/Faultbox/aquarium/internal/scene"
)

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	ClearColor mgl32.Vec4
	LightColor mgl32.Vec4
	LightPos   mgl32.Vec3
	// LightMarker draws a small cube at the light position.
	LightMarker bool
}

// DefaultConfig returns the scene lighting: a white point light above the tank.
func DefaultConfig() Config {
	return Config{
		Width:       1920,
		Height:      1080,
		ClearColor:  mgl32.Vec4{0.07, 0.13, 0.17, 1.0},
		LightColor:  mgl32.Vec4{1, 1, 1, 1},
		LightPos:    mgl32.Vec3{0, 5, 0},
		LightMarker: true,
	}
}

// View is what the renderer needs from a camera.
type View interface {
	Position() mgl32.Vec3
	ViewMatrix() mgl32.Mat4
	ProjectionMatrix(aspect float32) mgl32.Mat4
}

// Drawable is a mesh with the texture it is drawn with.
type Drawable struct {
	Mesh    *gpu.Mesh
	Texture *gpu.Texture
}

// Stats counts the work of the last frame.
type Stats struct {
	DrawCalls    int
	Translucent  int
	SkippedSlots int
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config Config

	model *shader.Program
	light *shader.Program

	lightCube *gpu.Mesh

	camMatrix mgl32.Mat4
	stats     Stats
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{config: cfg}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	rendererName := gl.GoStr(gl.GetString(gl.RENDERER))
	logger.Info("OpenGL initialized",
		zap.String("version", version),
		zap.String("renderer", rendererName),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	c := cfg.ClearColor
	gl.ClearColor(c[0], c[1], c[2], c[3])

	var err error
	r.model, err = shader.New("model", shaders.ModelVertexShader, shaders.ModelFragmentShader)
	if err != nil {
		return nil, err
	}
	r.light, err = shader.New("light", shaders.LightVertexShader, shaders.LightFragmentShader)
	if err != nil {
		r.model.Delete()
		return nil, err
	}
	logger.Debug("shader programs created",
		zap.Uint32("model", r.model.ID),
		zap.Uint32("light", r.light.ID),
	)

	r.lightCube = gpu.NewMesh(lightCubeMesh(), gpu.StaticDraw)

	// Static light uniforms.
	r.model.Use()
	r.model.SetInt("tex0", 0)
	r.model.SetVec4("lightColor", cfg.LightColor)
	r.model.SetVec3("lightPos", cfg.LightPos)

	r.light.Use()
	r.light.SetVec4("lightColor", cfg.LightColor)
	r.light.SetMat4("model", mgl32.Translate3D(cfg.LightPos[0], cfg.LightPos[1], cfg.LightPos[2]).Mul4(mgl32.Scale3D(0.1, 0.1, 0.1)))

	r.Resize(cfg.Width, cfg.Height)
	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	if r.lightCube != nil {
		r.lightCube.Delete()
	}
	if r.light != nil {
		r.light.Delete()
	}
	if r.model != nil {
		r.model.Delete()
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Aspect returns the viewport aspect ratio.
func (r *Renderer) Aspect() float32 {
	return aspect(r.config.Width, r.config.Height)
}

// Begin starts a new frame seen through v.
func (r *Renderer) Begin(v View) {
	r.stats = Stats{}
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	r.camMatrix = v.ProjectionMatrix(r.Aspect()).Mul4(v.ViewMatrix())

	if r.config.LightMarker {
		gl.Disable(gl.BLEND)
		r.light.Use()
		r.light.SetMat4("camMatrix", r.camMatrix)
		r.lightCube.Draw()
		r.stats.DrawCalls++
	}

	r.model.Use()
	r.model.SetMat4("camMatrix", r.camMatrix)
	r.model.SetVec3("camPos", v.Position())
}

// Draw draws one slot. The blend state is applied on every call so a
// translucent slot never leaks blending into the opaque slot after it.
func (r *Renderer) Draw(d Drawable, model mgl32.Mat4, blend scene.BlendMode) {
	if d.Mesh == nil {
		r.stats.SkippedSlots++
		return
	}

	if Blending(blend) {
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
		r.stats.Translucent++
	} else {
		gl.Disable(gl.BLEND)
	}

	r.model.SetMat4("model", model)
	if d.Texture != nil {
		d.Texture.Bind(0)
	}
	d.Mesh.Draw()
	r.stats.DrawCalls++
}

// End finishes the current frame.
func (r *Renderer) End() {
	gl.Disable(gl.BLEND)
	gl.BindVertexArray(0)
}

// ReadPixels reads back the default framebuffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	if len(pixels) == 0 {
		return pixels, w, h
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, w, h
}

// Stats returns the counters of the last frame.
func (r *Renderer) Stats() Stats {
	return r.stats
}

// Blending reports whether slots with mode b are alpha blended.
func Blending(b scene.BlendMode) bool {
	return b == scene.BlendTranslucent
}

func aspect(width, height int) float32 {
	if width <= 0 || height <= 0 {
		return 1
	}
	return float32(width) / float32(height)
}
