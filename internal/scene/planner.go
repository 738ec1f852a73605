package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/aquarium/internal/layout"
	"github.com/Faultbox/aquarium/internal/logger"
)

// Plan is a fully laid out scene.
type Plan struct {
	Seed     int64
	Registry *Registry
	// Models is indexed by MeshHandle.
	Models []Model
	// Skipped counts units per layer that found no valid position.
	Skipped map[string]int
}

// PlanScene runs the placement generator over every layer of the manifest
// and builds the registry. Layers consume the random source in a fixed
// order (swimmers, rocks, corals), so a seed always yields the same tank.
func PlanScene(m *Manifest, seed int64) (*Plan, error) {
	log := logger.Named("layout")
	gen := layout.New(seed)
	plan := &Plan{
		Seed:    seed,
		Models:  m.Models,
		Skipped: make(map[string]int),
	}

	var placements []Placement

	swimmers, skipped, err := planSwimmers(m, gen)
	if err != nil {
		return nil, err
	}
	plan.Skipped["swimmers"] = skipped
	placements = append(placements, swimmers...)

	rocks, skipped := planRocks(m, gen)
	plan.Skipped["rocks"] = skipped
	placements = append(placements, rocks...)

	rockPositions := make([]mgl32.Vec3, len(rocks))
	for i, r := range rocks {
		rockPositions[i] = r.Position
	}
	corals, skipped := planCorals(m, gen, rockPositions)
	plan.Skipped["corals"] = skipped
	placements = append(placements, corals...)

	for _, f := range m.Fixtures {
		handle, _ := m.Handle(f.Model)
		placements = append(placements, Placement{
			Name:         f.Name,
			Category:     StaticFixture,
			Mesh:         handle,
			Position:     f.Position,
			Blend:        f.Blend,
			Surface:      f.Surface,
			MeshRotation: m.Models[handle].Rotation,
		})
	}

	for layer, n := range plan.Skipped {
		if n > 0 {
			log.Warn("placement budget exhausted, units skipped",
				zap.String("layer", layer), zap.Int("skipped", n), zap.Int64("seed", seed))
		}
	}

	plan.Registry, err = Build(placements)
	if err != nil {
		return nil, fmt.Errorf("building registry: %w", err)
	}

	log.Debug("scene planned",
		zap.Int64("seed", seed),
		zap.Int("slots", plan.Registry.Len()),
		zap.Int("models", len(plan.Models)))

	return plan, nil
}

// planSwimmers pairs the i-th placed position with the i-th swimmer model
// and walks the schedule to tag categories. Skipped units drop off the end.
func planSwimmers(m *Manifest, gen *layout.Generator) ([]Placement, int, error) {
	layer := m.Swimmers
	if len(layer.Models) == 0 {
		return nil, 0, nil
	}

	res := gen.Scatter(len(layer.Models), layout.Constraints{
		Region:        layout.Box{Min: layer.Min, Max: layer.Max},
		MinSeparation: layer.MinSeparation,
		MaxAttempts:   layer.MaxAttempts,
	})

	out := make([]Placement, 0, len(res.Positions))
	group, left := 0, layer.Schedule[0].Count
	for i, pos := range res.Positions {
		for left == 0 && layer.Schedule[group].Count != 0 {
			group++
			if group == len(layer.Schedule) {
				return nil, 0, fmt.Errorf("%w: swimmer schedule covers %d of %d swimmers",
					ErrManifest, i, len(res.Positions))
			}
			left = layer.Schedule[group].Count
		}
		left--

		name := layer.Models[i]
		handle, _ := m.Handle(name)
		out = append(out, Placement{
			Name:         name,
			Category:     layer.Schedule[group].Category,
			Mesh:         handle,
			Position:     pos,
			MeshRotation: m.Models[handle].Rotation,
		})
	}
	return out, res.Skipped, nil
}

func planRocks(m *Manifest, gen *layout.Generator) ([]Placement, int) {
	layer := m.Rocks
	if layer.Count == 0 && len(layer.Seeds) == 0 {
		return nil, 0
	}

	res := gen.Scatter(layer.Count, layout.Constraints{
		Region: layout.Annulus{
			Inner:  layer.InnerRadius,
			Outer:  layer.OuterRadius,
			Height: layer.Height,
		},
		MinSeparation: layer.MinSeparation,
		MaxAttempts:   layer.MaxAttempts,
		Seeds:         layer.Seeds,
		Stacking:      &layout.Stacking{TouchDistance: layer.TouchDistance, Lift: layer.Lift},
	})

	handle, _ := m.Handle(layer.Model)
	out := make([]Placement, len(res.Positions))
	for i, pos := range res.Positions {
		out[i] = Placement{
			Name:         fmt.Sprintf("%s-%03d", layer.Model, i+1),
			Category:     RockCluster,
			Mesh:         handle,
			Position:     pos,
			MeshRotation: m.Models[handle].Rotation,
		}
	}
	return out, res.Skipped
}

// planCorals attaches every coral group in order; placed decorations fill
// the groups front to back.
func planCorals(m *Manifest, gen *layout.Generator, rocks []mgl32.Vec3) ([]Placement, int) {
	layer := m.Corals
	total := 0
	for _, g := range layer.Groups {
		total += g.Count
	}
	if total == 0 {
		return nil, 0
	}

	res := gen.Attach(rocks, total, layout.AttachConstraints{
		PoolSize:        layer.Pool,
		ClearanceRadius: layer.Clearance,
		Lift:            layer.Lift,
		MaxAttempts:     layer.MaxAttempts,
	})

	out := make([]Placement, 0, len(res.Positions))
	group, used := 0, 0
	for _, pos := range res.Positions {
		for used == layer.Groups[group].Count {
			group++
			used = 0
		}
		used++

		g := layer.Groups[group]
		handle, _ := m.Handle(g.Model)
		out = append(out, Placement{
			Name:         fmt.Sprintf("%s-%02d", g.Model, used),
			Category:     AttachedDecoration,
			Mesh:         handle,
			Position:     pos,
			MeshRotation: m.Models[handle].Rotation,
		})
	}
	return out, res.Skipped
}
