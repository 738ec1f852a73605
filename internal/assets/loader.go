package assets

import (
	"bytes"
	"context"
	"fmt"
	"runtime"
	"sort"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/aquarium/internal/engine/model"
	"github.com/Faultbox/aquarium/internal/engine/texture"
	"github.com/Faultbox/aquarium/internal/engine/water"
	"github.com/Faultbox/aquarium/internal/logger"
	"github.com/Faultbox/aquarium/internal/scene"
)

// Asset is the decoded CPU side of one manifest model.
type Asset struct {
	Name   string
	Handle scene.MeshHandle
	Mesh   *model.Mesh
	Image  *texture.Image
	// Surface assets are rewritten every frame and need a dynamic buffer.
	Surface bool
	// MeshFallback and TextureFallback are set when the file could not be
	// loaded and a stand-in was used.
	MeshFallback    bool
	TextureFallback bool
}

// Report summarises a LoadModels run.
type Report struct {
	Models          int
	Meshes          int
	Textures        int
	MissingMeshes   []string
	MissingTextures []string
	Warnings        int
}

type textureKey struct {
	path   string
	format string
}

type meshResult struct {
	mesh     *model.Mesh
	warnings []string
	err      error
}

type imageResult struct {
	image *texture.Image
	err   error
}

// LoadModels decodes every model of the plan. Each distinct mesh and
// texture file is decoded once, in parallel, and shared by all models that
// name it. A file that cannot be loaded is replaced by a stand-in: a flat
// grid for the deformable surface, an empty mesh otherwise, and a white
// texel for textures. Only cancellation and invalid format names are
// returned as errors.
func LoadModels(ctx context.Context, mgr *Manager, models []scene.Model, surfaces map[scene.MeshHandle]bool) ([]Asset, Report, error) {
	log := logger.Named("assets")

	meshes := make(map[string]*meshResult)
	images := make(map[textureKey]*imageResult)
	for _, m := range models {
		if m.Format != "" {
			if _, err := texture.ParseFormat(m.Format, m.Texture); err != nil {
				return nil, Report{}, fmt.Errorf("model %s: %w", m.Name, err)
			}
		}
		meshes[m.Mesh] = &meshResult{}
		images[textureKey{m.Texture, m.Format}] = &imageResult{}
	}

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for path, res := range meshes {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			mesh, warnings, err := loadMesh(mgr, path)
			mu.Lock()
			res.mesh, res.warnings, res.err = mesh, warnings, err
			mu.Unlock()
			return nil
		})
	}
	for key, res := range images {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			img, err := loadImage(mgr, key.path, key.format)
			mu.Lock()
			res.image, res.err = img, err
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, Report{}, err
	}

	report := Report{Models: len(models), Meshes: len(meshes), Textures: len(images)}
	for path, res := range meshes {
		for _, w := range res.warnings {
			log.Debug("obj warning", zap.String("mesh", path), zap.String("warning", w))
		}
		report.Warnings += len(res.warnings)
		if res.err != nil {
			log.Warn("mesh unavailable, using stand-in", zap.String("mesh", path), zap.Error(res.err))
			report.MissingMeshes = append(report.MissingMeshes, path)
		}
	}
	for key, res := range images {
		if res.err != nil {
			log.Warn("texture unavailable, using white", zap.String("texture", key.path), zap.Error(res.err))
			report.MissingTextures = append(report.MissingTextures, key.path)
		}
	}

	sort.Strings(report.MissingMeshes)
	sort.Strings(report.MissingTextures)

	out := make([]Asset, len(models))
	for i, m := range models {
		h := scene.MeshHandle(i)
		a := Asset{Name: m.Name, Handle: h, Surface: surfaces[h]}

		mr := meshes[m.Mesh]
		switch {
		case mr.err == nil:
			a.Mesh = mr.mesh
		case a.Surface:
			a.Mesh = water.BuildGrid()
			a.MeshFallback = true
		default:
			a.Mesh = &model.Mesh{Name: m.Name}
			a.MeshFallback = true
		}
		// The surface is deformed in place and must not share vertices.
		if a.Surface && !a.MeshFallback {
			a.Mesh = cloneMesh(a.Mesh)
		}

		ir := images[textureKey{m.Texture, m.Format}]
		if ir.err == nil {
			a.Image = ir.image
		} else {
			a.Image = texture.Solid(255, 255, 255, 255)
			a.TextureFallback = true
		}
		out[i] = a
	}

	hits, misses := mgr.Stats()
	log.Info("models loaded",
		zap.Int("models", report.Models),
		zap.Int("meshes", report.Meshes),
		zap.Int("textures", report.Textures),
		zap.Int("missing_meshes", len(report.MissingMeshes)),
		zap.Int("missing_textures", len(report.MissingTextures)),
		zap.Int("cache_hits", hits),
		zap.Int("cache_misses", misses),
	)
	return out, report, nil
}

func loadMesh(mgr *Manager, path string) (*model.Mesh, []string, error) {
	data, err := mgr.Load(path)
	if err != nil {
		return nil, nil, err
	}
	mesh, warnings, err := model.LoadOBJ(bytes.NewReader(data))
	if err != nil {
		return nil, warnings, fmt.Errorf("%s: %w", path, err)
	}
	mesh.Name = path
	return mesh, warnings, nil
}

// loadImage decodes a texture. With no explicit format the file header
// decides, then the extension.
func loadImage(mgr *Manager, path, formatName string) (*texture.Image, error) {
	data, err := mgr.Load(path)
	if err != nil {
		return nil, err
	}

	var format texture.Format
	if formatName != "" {
		if format, err = texture.ParseFormat(formatName, path); err != nil {
			return nil, err
		}
	} else if f, ok := texture.Sniff(data); ok {
		format = f
	} else {
		format = texture.FormatFor(path)
	}

	img, err := texture.Decode(bytes.NewReader(data), format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

func cloneMesh(m *model.Mesh) *model.Mesh {
	c := *m
	c.Vertices = append([]model.Vertex(nil), m.Vertices...)
	c.Indices = append([]uint32(nil), m.Indices...)
	return &c
}
