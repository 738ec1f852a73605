// Package scene holds the aquarium scene model: object categories, the slot
// registry, the layout planner and the per-frame transform evaluator.
//
// Nothing in this package talks to OpenGL. Slots reference meshes through
// MeshHandle values that the renderer resolves.
package scene

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Category selects the motion policy of a slot.
type Category int

const (
	CategoryUnknown Category = iota
	FrontSwimmer
	SideSwimmer
	FigureEightSwimmer
	RockCluster
	AttachedDecoration
	StaticFixture
)

var categoryNames = map[Category]string{
	FrontSwimmer:       "front_swimmer",
	SideSwimmer:        "side_swimmer",
	FigureEightSwimmer: "figure_eight_swimmer",
	RockCluster:        "rock_cluster",
	AttachedDecoration: "attached_decoration",
	StaticFixture:      "static_fixture",
}

// String returns the manifest name of the category.
func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return fmt.Sprintf("category(%d)", int(c))
}

// Valid reports whether c is one of the defined categories.
func (c Category) Valid() bool {
	_, ok := categoryNames[c]
	return ok
}

// Swimmer reports whether c orbits the tank.
func (c Category) Swimmer() bool {
	return c == FrontSwimmer || c == SideSwimmer || c == FigureEightSwimmer
}

// ParseCategory converts a manifest name into a Category.
func ParseCategory(name string) (Category, error) {
	for c, n := range categoryNames {
		if n == name {
			return c, nil
		}
	}
	return CategoryUnknown, fmt.Errorf("%w: %q", ErrInvalidCategory, name)
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *Category) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}
	parsed, err := ParseCategory(name)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*c = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (c Category) MarshalYAML() (interface{}, error) {
	return c.String(), nil
}

// BlendMode is the alpha blending state a slot is drawn with.
type BlendMode int

const (
	BlendOpaque BlendMode = iota
	BlendTranslucent
)

// String returns the manifest name of the blend mode.
func (b BlendMode) String() string {
	switch b {
	case BlendOpaque:
		return "opaque"
	case BlendTranslucent:
		return "translucent"
	default:
		return fmt.Sprintf("blend(%d)", int(b))
	}
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (b *BlendMode) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}
	switch name {
	case "", "opaque":
		*b = BlendOpaque
	case "translucent":
		*b = BlendTranslucent
	default:
		return fmt.Errorf("line %d: unknown blend mode %q", value.Line, name)
	}
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (b BlendMode) MarshalYAML() (interface{}, error) {
	return b.String(), nil
}
