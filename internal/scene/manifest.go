package scene

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

//go:embed manifest.yaml
var defaultManifest []byte

// ErrManifest is wrapped by every manifest validation error.
var ErrManifest = errors.New("invalid manifest")

// Manifest describes what goes into the tank: the models to load and how
// each group of objects is laid out.
type Manifest struct {
	Models   []Model        `yaml:"models"`
	Swimmers SwimmerLayer   `yaml:"swimmers"`
	Rocks    RockLayer      `yaml:"rocks"`
	Corals   CoralLayer     `yaml:"corals"`
	Fixtures []FixtureEntry `yaml:"fixtures"`
}

// Model is one mesh + texture pair. Its position in Manifest.Models is its
// MeshHandle.
type Model struct {
	Name    string `yaml:"name"`
	Mesh    string `yaml:"mesh"`
	Texture string `yaml:"texture"`
	// Format is "rgb", "rgba" or empty to derive it from the texture path.
	Format string `yaml:"format,omitempty"`
	// Rotation is an upright correction in degrees about X, Y, Z.
	Rotation mgl32.Vec3 `yaml:"rotation,omitempty"`
}

// SwimmerLayer places one swimmer per listed model inside a box.
type SwimmerLayer struct {
	Models        []string        `yaml:"models"`
	Min           mgl32.Vec3      `yaml:"min"`
	Max           mgl32.Vec3      `yaml:"max"`
	MinSeparation float32         `yaml:"min_separation"`
	MaxAttempts   int             `yaml:"max_attempts"`
	Schedule      []ScheduleGroup `yaml:"schedule"`
}

// ScheduleGroup assigns the next Count placed swimmers to Category.
// A zero Count takes every remaining swimmer.
type ScheduleGroup struct {
	Category Category `yaml:"category"`
	Count    int      `yaml:"count,omitempty"`
}

// RockLayer scatters rocks on an annulus around the seed rocks.
type RockLayer struct {
	Model         string       `yaml:"model"`
	Count         int          `yaml:"count"`
	Seeds         []mgl32.Vec3 `yaml:"seeds"`
	InnerRadius   float32      `yaml:"inner_radius"`
	OuterRadius   float32      `yaml:"outer_radius"`
	Height        float32      `yaml:"height"`
	MinSeparation float32      `yaml:"min_separation"`
	TouchDistance float32      `yaml:"touch_distance"`
	Lift          float32      `yaml:"lift"`
	MaxAttempts   int          `yaml:"max_attempts"`
}

// CoralLayer attaches decorations on top of rocks.
type CoralLayer struct {
	Groups      []CoralGroup `yaml:"groups"`
	Pool        int          `yaml:"pool"`
	Clearance   float32      `yaml:"clearance"`
	Lift        float32      `yaml:"lift"`
	MaxAttempts int          `yaml:"max_attempts"`
}

// CoralGroup is Count decorations using one model.
type CoralGroup struct {
	Model string `yaml:"model"`
	Count int    `yaml:"count"`
}

// FixtureEntry is a static object at a fixed position.
type FixtureEntry struct {
	Name     string     `yaml:"name"`
	Model    string     `yaml:"model"`
	Position mgl32.Vec3 `yaml:"position"`
	Blend    BlendMode  `yaml:"blend,omitempty"`
	Surface  bool       `yaml:"surface,omitempty"`
}

// DefaultManifest returns the built-in reef tank.
func DefaultManifest() (*Manifest, error) {
	return ParseManifest(defaultManifest)
}

// DefaultManifestYAML returns a copy of the built-in manifest source, as a
// starting point for custom tanks.
func DefaultManifestYAML() []byte {
	return append([]byte(nil), defaultManifest...)
}

// LoadManifest reads a manifest file. An empty path loads the built-in one.
func LoadManifest(path string) (*Manifest, error) {
	if path == "" {
		return DefaultManifest()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	m, err := ParseManifest(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// ParseManifest decodes and validates a YAML manifest. Unknown keys are
// rejected.
func ParseManifest(data []byte) (*Manifest, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var m Manifest
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Handle returns the mesh handle of the named model.
func (m *Manifest) Handle(name string) (MeshHandle, bool) {
	for i, model := range m.Models {
		if model.Name == name {
			return MeshHandle(i), true
		}
	}
	return 0, false
}

// Validate checks model references and layer parameters.
func (m *Manifest) Validate() error {
	seen := make(map[string]bool, len(m.Models))
	for i, model := range m.Models {
		switch {
		case model.Name == "":
			return fmt.Errorf("%w: model %d has no name", ErrManifest, i)
		case seen[model.Name]:
			return fmt.Errorf("%w: duplicate model %q", ErrManifest, model.Name)
		case model.Mesh == "":
			return fmt.Errorf("%w: model %q has no mesh", ErrManifest, model.Name)
		}
		switch model.Format {
		case "", "rgb", "rgba":
		default:
			return fmt.Errorf("%w: model %q has unknown format %q", ErrManifest, model.Name, model.Format)
		}
		seen[model.Name] = true
	}

	ref := func(where, name string) error {
		if !seen[name] {
			return fmt.Errorf("%w: %s references unknown model %q", ErrManifest, where, name)
		}
		return nil
	}

	for _, name := range m.Swimmers.Models {
		if err := ref("swimmers", name); err != nil {
			return err
		}
	}
	for i, g := range m.Swimmers.Schedule {
		if !g.Category.Swimmer() {
			return fmt.Errorf("%w: swimmer schedule %d has non-swimmer category %s", ErrManifest, i, g.Category)
		}
		if g.Count < 0 {
			return fmt.Errorf("%w: swimmer schedule %d has negative count", ErrManifest, i)
		}
		if g.Count == 0 && i != len(m.Swimmers.Schedule)-1 {
			return fmt.Errorf("%w: swimmer schedule %d takes the remaining swimmers but is not last", ErrManifest, i)
		}
	}
	if len(m.Swimmers.Models) > 0 && len(m.Swimmers.Schedule) == 0 {
		return fmt.Errorf("%w: swimmers have no schedule", ErrManifest)
	}

	if m.Rocks.Count > 0 || len(m.Rocks.Seeds) > 0 {
		if err := ref("rocks", m.Rocks.Model); err != nil {
			return err
		}
		if m.Rocks.OuterRadius < m.Rocks.InnerRadius {
			return fmt.Errorf("%w: rock outer radius %.0f below inner radius %.0f",
				ErrManifest, m.Rocks.OuterRadius, m.Rocks.InnerRadius)
		}
	}

	for i, g := range m.Corals.Groups {
		if err := ref(fmt.Sprintf("coral group %d", i), g.Model); err != nil {
			return err
		}
		if g.Count < 0 {
			return fmt.Errorf("%w: coral group %d has negative count", ErrManifest, i)
		}
	}

	for _, f := range m.Fixtures {
		if err := ref(fmt.Sprintf("fixture %q", f.Name), f.Model); err != nil {
			return err
		}
	}

	return nil
}
