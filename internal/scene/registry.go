package scene

import (
	"errors"
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
)

// Registry errors.
var (
	ErrInvalidCategory  = errors.New("invalid category")
	ErrNotContiguous    = errors.New("category slots are not contiguous")
	ErrMultipleSurfaces = errors.New("more than one deformable surface")
)

// MeshHandle identifies a shared mesh + texture pair in the model library.
// Many slots may point at the same handle.
type MeshHandle int

// Placement is everything a slot needs except its index.
type Placement struct {
	Name     string
	Category Category
	Mesh     MeshHandle
	Position mgl32.Vec3
	Blend    BlendMode
	// Surface marks the water slot whose vertices are deformed every frame.
	Surface bool
	// MeshRotation corrects the mesh orientation, in degrees about X, Y, Z.
	MeshRotation mgl32.Vec3
}

// Slot is one entry of the registry.
type Slot struct {
	Index int
	Placement
}

// IndexRange is an inclusive range of slot indices.
type IndexRange struct {
	First int
	Last  int
}

// Len returns the number of indices in the range.
func (r IndexRange) Len() int {
	return r.Last - r.First + 1
}

// Contains reports whether index lies in the range.
func (r IndexRange) Contains(index int) bool {
	return index >= r.First && index <= r.Last
}

// Registry is the ordered, read-only list of scene slots.
// Slot indices start at 1 and each category occupies one contiguous range.
type Registry struct {
	slots   []Slot
	ranges  map[Category]IndexRange
	surface int
}

// Build creates a registry from placements in order.
func Build(placements []Placement) (*Registry, error) {
	r := &Registry{
		slots:  make([]Slot, 0, len(placements)),
		ranges: make(map[Category]IndexRange),
	}

	var prev Category
	for i, p := range placements {
		index := i + 1
		if !p.Category.Valid() {
			return nil, fmt.Errorf("slot %d (%s): %w %d", index, p.Name, ErrInvalidCategory, int(p.Category))
		}

		rng, seen := r.ranges[p.Category]
		switch {
		case !seen:
			rng = IndexRange{First: index, Last: index}
		case p.Category == prev:
			rng.Last = index
		default:
			return nil, fmt.Errorf("slot %d (%s): %w: %s already ends at slot %d",
				index, p.Name, ErrNotContiguous, p.Category, rng.Last)
		}
		r.ranges[p.Category] = rng
		prev = p.Category

		if p.Surface {
			if r.surface != 0 {
				return nil, fmt.Errorf("slot %d (%s): %w: slot %d is already the surface",
					index, p.Name, ErrMultipleSurfaces, r.surface)
			}
			r.surface = index
		}

		r.slots = append(r.slots, Slot{Index: index, Placement: p})
	}

	return r, nil
}

// Len returns the number of slots.
func (r *Registry) Len() int {
	return len(r.slots)
}

// Slots returns the slots in index order. Callers must not modify it.
func (r *Registry) Slots() []Slot {
	return r.slots
}

// Slot returns the slot with the given index.
func (r *Registry) Slot(index int) (Slot, bool) {
	if index < 1 || index > len(r.slots) {
		return Slot{}, false
	}
	return r.slots[index-1], true
}

// Range returns the index range occupied by category c.
func (r *Registry) Range(c Category) (IndexRange, bool) {
	rng, ok := r.ranges[c]
	return rng, ok
}

// Surface returns the deformable water slot, if any.
func (r *Registry) Surface() (Slot, bool) {
	if r.surface == 0 {
		return Slot{}, false
	}
	return r.slots[r.surface-1], true
}

// ScheduleEntry pairs a category with its index range.
type ScheduleEntry struct {
	Category Category
	Range    IndexRange
}

// Schedule returns the category ranges ordered by first index.
func (r *Registry) Schedule() []ScheduleEntry {
	out := make([]ScheduleEntry, 0, len(r.ranges))
	for c, rng := range r.ranges {
		out = append(out, ScheduleEntry{Category: c, Range: rng})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Range.First < out[j].Range.First
	})
	return out
}

// Meshes returns the distinct mesh handles referenced by the registry and
// how many slots share each one.
func (r *Registry) Meshes() map[MeshHandle]int {
	refs := make(map[MeshHandle]int)
	for _, s := range r.slots {
		refs[s.Mesh]++
	}
	return refs
}
