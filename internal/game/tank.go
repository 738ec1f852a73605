package game

import (
	"context"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/aquarium/internal/assets"
	"github.com/Faultbox/aquarium/internal/config"
	"github.com/Faultbox/aquarium/internal/engine/renderer"
	"github.com/Faultbox/aquarium/internal/engine/water"
	"github.com/Faultbox/aquarium/internal/game/setup"
	"github.com/Faultbox/aquarium/internal/logger"
	"github.com/Faultbox/aquarium/internal/scene"
)

// Tank is one generated scene with its models on the GPU.
type Tank struct {
	Plan *scene.Plan

	animator *scene.Animator
	library  *Library
	surface  *water.Surface
	slots    []scene.Slot
	matrices []mgl32.Mat4
}

// BuildTank plans the scene for seed, decodes its models and uploads them.
// Must run on the GL thread.
func BuildTank(ctx context.Context, cfg *config.Config, mgr *assets.Manager, seed int64) (*Tank, error) {
	manifest, err := scene.LoadManifest(cfg.Scene.Manifest)
	if err != nil {
		return nil, err
	}

	plan, err := scene.PlanScene(manifest, seed)
	if err != nil {
		return nil, fmt.Errorf("planning scene: %w", err)
	}

	surfaces := make(map[scene.MeshHandle]bool)
	if s, ok := plan.Registry.Surface(); ok {
		surfaces[s.Mesh] = true
	}

	list, report, err := assets.LoadModels(ctx, mgr, plan.Models, surfaces)
	if err != nil {
		return nil, fmt.Errorf("loading models: %w", err)
	}
	mgr.Release()

	t := &Tank{
		Plan:     plan,
		animator: scene.NewAnimator(setup.Motion(cfg.Motion)),
		library:  NewLibrary(list, plan.Registry.Meshes()),
		slots:    plan.Registry.Slots(),
	}
	t.matrices = make([]mgl32.Mat4, len(t.slots))

	if s, ok := plan.Registry.Surface(); ok {
		for _, a := range list {
			if a.Handle == s.Mesh && t.library.Surface() != nil {
				t.surface = water.NewSurface(setup.Wave(cfg.Water), a.Mesh, t.library.Surface())
			}
		}
	}

	logger.Info("tank built",
		zap.Int64("seed", seed),
		zap.Int("slots", len(t.slots)),
		zap.Int("missing_meshes", len(report.MissingMeshes)),
		zap.Int("missing_textures", len(report.MissingTextures)),
		zap.Any("skipped", plan.Skipped),
	)
	return t, nil
}

// Update deforms the water surface and evaluates every slot at the given
// scene time.
func (t *Tank) Update(elapsed float64) {
	if t.surface != nil {
		t.surface.Update(elapsed)
	}
	for i, s := range t.slots {
		t.matrices[i] = t.animator.Evaluate(s, elapsed)
	}
}

// Draw draws every slot in registry order.
func (t *Tank) Draw(r *renderer.Renderer) {
	for i, s := range t.slots {
		r.Draw(t.library.Drawable(s.Mesh), t.matrices[i], s.Blend)
	}
}

// Close frees the tank's GPU resources.
func (t *Tank) Close() {
	if t.library != nil {
		t.library.Delete()
		t.library = nil
	}
}
