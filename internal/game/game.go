// Package game implements the viewer main loop.
package game

import (
	"context"
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/aquarium/internal/assets"
	"github.com/Faultbox/aquarium/internal/config"
	"github.com/Faultbox/aquarium/internal/engine/audio"
	"github.com/Faultbox/aquarium/internal/engine/camera"
	"github.com/Faultbox/aquarium/internal/engine/debug"
	"github.com/Faultbox/aquarium/internal/engine/input"
	"github.com/Faultbox/aquarium/internal/engine/renderer"
	"github.com/Faultbox/aquarium/internal/engine/window"
	"github.com/Faultbox/aquarium/internal/game/setup"
	"github.com/Faultbox/aquarium/internal/game/timing"
	"github.com/Faultbox/aquarium/internal/logger"
	"github.com/Faultbox/aquarium/internal/scene"
)

// Title is the window title.
const Title = "Aquarium"

// fastMultiplier scales camera movement while the fast key is held.
const fastMultiplier = 3

// Game is the viewer instance.
type Game struct {
	config   *config.Config
	running  bool
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	camera   *camera.OrbitCamera
	assets   *assets.Manager
	watcher  *scene.ManifestWatcher
	limiter  *timing.FPSLimiter
	clock    *timing.Clock
	shots    *debug.ScreenshotCapture
	audio    *audio.Manager

	seed int64
	tank *Tank
}

// New creates the window, the renderer and the first tank.
func New(cfg *config.Config) (*Game, error) {
	logger.Info("initializing viewer",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
	)

	g := &Game{
		config:  cfg,
		input:   input.New(),
		camera:  newCamera(cfg.Camera),
		limiter: timing.NewFPSLimiter(cfg.Graphics.FPSLimit),
		clock:   timing.NewClock(cfg.Motion.TimeScale, cfg.Motion.StartPaused),
		seed:    setup.ResolveSeed(cfg.Scene.Seed),
		shots:   debug.NewScreenshotCapture(cfg.Graphics.ScreenshotDir, "aquarium"),
	}

	g.assets = assets.NewManager()
	for _, dir := range cfg.Scene.AssetDirs {
		if err := g.assets.AddDir(dir); err != nil {
			logger.Warn("skipping asset dir", zap.String("dir", dir), zap.Error(err))
		}
	}

	// Create window (this also creates OpenGL context)
	var err error
	g.window, err = window.New(window.Config{
		Title:      Title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
		Samples:    cfg.Graphics.MSAA,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Create renderer (AFTER window, since OpenGL context must exist)
	width, height := g.window.GetSize()
	g.renderer, err = renderer.New(rendererConfig(cfg, width, height))
	if err != nil {
		g.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	g.tank, err = BuildTank(context.Background(), cfg, g.assets, g.seed)
	if err != nil {
		g.renderer.Close()
		g.window.Close()
		return nil, fmt.Errorf("failed to build tank: %w", err)
	}

	if cfg.Scene.Watch && cfg.Scene.Manifest != "" {
		g.watcher, err = scene.WatchManifest(cfg.Scene.Manifest)
		if err != nil {
			logger.Warn("manifest reload disabled", zap.Error(err))
		}
	}

	if cfg.Audio.Enabled {
		g.startAudio()
	}

	logger.Info("viewer initialized", zap.Int64("seed", g.seed))
	return g, nil
}

// startAudio plays the ambient loop. Audio problems never stop the viewer.
func (g *Game) startAudio() {
	data, err := g.assets.Load(g.config.Audio.Ambient)
	if err != nil {
		logger.Warn("ambient sound unavailable", zap.Error(err))
		return
	}
	m := audio.New(g.config.Audio.Volume)
	if err := m.Init(); err != nil {
		logger.Warn("audio disabled", zap.Error(err))
		return
	}
	if err := m.PlayAmbient(data, g.config.Audio.Ambient); err != nil {
		logger.Warn("ambient sound unavailable", zap.Error(err))
		m.Close()
		return
	}
	g.audio = m
}

func newCamera(cfg config.CameraConfig) *camera.OrbitCamera {
	c := camera.NewOrbitCamera()
	c.Distance = cfg.Distance
	c.RotationX = cfg.Pitch
	c.FOV = cfg.FOV
	c.DragSensitivity = cfg.DragSensitivity
	c.ZoomSensitivity = cfg.ZoomSensitivity
	c.MoveSpeed = cfg.MoveSpeed
	return c
}

func rendererConfig(cfg *config.Config, width, height int) renderer.Config {
	rc := renderer.DefaultConfig()
	rc.Width = width
	rc.Height = height
	rc.LightColor = mgl32.Vec4(cfg.Lighting.Color)
	rc.LightPos = mgl32.Vec3(cfg.Lighting.Position)
	rc.LightMarker = cfg.Lighting.ShowMarker
	return rc
}

// Run starts the main loop.
func (g *Game) Run() error {
	g.running = true

	// Timing
	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	logger.Info("starting viewer loop")

	for g.running {
		// Calculate delta time
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		// 1. Process input
		if g.input.Update() {
			g.running = false
			break
		}
		for _, event := range g.input.Events() {
			if event.Type == input.EventWindowResize {
				g.renderer.Resize(g.window.GetSize())
			}
		}

		// 2. Update scene state
		if err := g.update(dt); err != nil {
			return fmt.Errorf("update error: %w", err)
		}

		// 3. Render
		g.render()
		if g.input.Pressed(input.ActionScreenshot) {
			g.screenshot()
		}

		// 4. Present (swap buffers)
		g.window.SwapBuffers()
		g.limiter.Wait()

		// FPS counter
		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			logger.Debug("fps",
				zap.Int("count", frameCount),
				zap.Int("draw_calls", g.renderer.Stats().DrawCalls),
				zap.String("dt", fmt.Sprintf("%.2fms", dt*1000)),
			)
			if g.config.Graphics.ShowFPS {
				g.window.SetTitle(fmt.Sprintf("%s - %d FPS - seed %d", Title, frameCount, g.seed))
			}
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// Close cleans up viewer resources.
func (g *Game) Close() {
	logger.Info("closing viewer")

	if g.watcher != nil {
		g.watcher.Close()
	}
	if g.audio != nil {
		g.audio.Close()
	}
	if g.tank != nil {
		g.tank.Close()
	}
	if g.renderer != nil {
		g.renderer.Close()
	}
	if g.window != nil {
		g.window.Close()
	}
	if g.assets != nil {
		g.assets.Close()
	}
}

// update applies camera controls, reloads the tank when its manifest
// changed and advances the animation.
func (g *Game) update(dt float64) error {
	in := g.input

	if in.Pressed(input.ActionPause) {
		paused := g.clock.Toggle()
		logger.Info("animation paused", zap.Bool("paused", paused))
	}
	if in.Pressed(input.ActionReset) {
		g.camera.Reset()
	}
	if in.Pressed(input.ActionMute) && g.audio != nil {
		muted := g.audio.ToggleMute()
		logger.Info("ambient sound", zap.Bool("muted", muted))
	}

	dx, dy := in.Drag()
	if dx != 0 || dy != 0 {
		g.camera.HandleDrag(dx, dy)
	}
	if w := in.Wheel(); w != 0 {
		g.camera.HandleZoom(w)
	}

	forward := in.Axis(input.ActionForward, input.ActionBackward)
	right := in.Axis(input.ActionRight, input.ActionLeft)
	up := in.Axis(input.ActionUp, input.ActionDown)
	if forward != 0 || right != 0 || up != 0 {
		scale := float32(dt * 60)
		if in.Held(input.ActionFast) {
			scale *= fastMultiplier
		}
		g.camera.HandleMovement(forward*scale, right*scale, up*scale)
	}

	if g.watcher != nil {
		select {
		case <-g.watcher.Changed():
			g.reload()
		default:
		}
	}

	g.tank.Update(g.clock.Advance(dt))
	return nil
}

// reload rebuilds the tank from the manifest on disk. A manifest that fails
// to load keeps the current tank.
func (g *Game) reload() {
	tank, err := BuildTank(context.Background(), g.config, g.assets, g.seed)
	if err != nil {
		logger.Warn("manifest reload failed, keeping current scene", zap.Error(err))
		return
	}
	g.tank.Close()
	g.tank = tank
	logger.Info("scene reloaded", zap.String("manifest", g.watcher.Path()))
}

// render draws the current frame.
func (g *Game) render() {
	g.renderer.Begin(g.camera)
	g.tank.Draw(g.renderer)
	g.renderer.End()
}

// screenshot saves the frame just rendered, tagged with the scene seed.
func (g *Game) screenshot() {
	pixels, width, height := g.renderer.ReadPixels()
	path, err := g.shots.CaptureFromPixels(pixels, width, height, fmt.Sprintf("seed%d", g.seed))
	if err != nil {
		logger.Warn("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}
