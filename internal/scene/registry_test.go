package scene

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func placements(cats ...Category) []Placement {
	out := make([]Placement, len(cats))
	for i, c := range cats {
		out[i] = Placement{Name: c.String(), Category: c, Mesh: MeshHandle(i)}
	}
	return out
}

func TestBuildRanges(t *testing.T) {
	ps := placements(
		FrontSwimmer, FrontSwimmer,
		SideSwimmer,
		FigureEightSwimmer, FigureEightSwimmer,
		RockCluster, RockCluster, RockCluster,
		StaticFixture,
	)
	r, err := Build(ps)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if r.Len() != len(ps) {
		t.Errorf("Len = %d, want %d", r.Len(), len(ps))
	}

	tests := []struct {
		cat  Category
		want IndexRange
	}{
		{FrontSwimmer, IndexRange{1, 2}},
		{SideSwimmer, IndexRange{3, 3}},
		{FigureEightSwimmer, IndexRange{4, 5}},
		{RockCluster, IndexRange{6, 8}},
		{StaticFixture, IndexRange{9, 9}},
	}
	for _, tt := range tests {
		got, ok := r.Range(tt.cat)
		if !ok {
			t.Errorf("%s: no range", tt.cat)
			continue
		}
		if got != tt.want {
			t.Errorf("%s: range %v, want %v", tt.cat, got, tt.want)
		}
	}

	if _, ok := r.Range(AttachedDecoration); ok {
		t.Error("unused category should have no range")
	}

	sched := r.Schedule()
	if len(sched) != 5 || sched[0].Category != FrontSwimmer || sched[4].Category != StaticFixture {
		t.Errorf("unexpected schedule %v", sched)
	}

	s, ok := r.Slot(6)
	if !ok || s.Category != RockCluster || s.Index != 6 {
		t.Errorf("Slot(6) = %+v, %v", s, ok)
	}
	if _, ok := r.Slot(0); ok {
		t.Error("slot indices start at 1")
	}
	if _, ok := r.Slot(10); ok {
		t.Error("slot past the end should not exist")
	}
}

func TestBuildRejectsInvalidCategory(t *testing.T) {
	ps := placements(FrontSwimmer, Category(42))
	_, err := Build(ps)
	if !errors.Is(err, ErrInvalidCategory) {
		t.Fatalf("expected ErrInvalidCategory, got %v", err)
	}
	if !strings.Contains(err.Error(), "slot 2") {
		t.Errorf("error should name the slot index: %v", err)
	}
}

func TestBuildRejectsSplitCategory(t *testing.T) {
	ps := placements(RockCluster, StaticFixture, RockCluster)
	_, err := Build(ps)
	if !errors.Is(err, ErrNotContiguous) {
		t.Fatalf("expected ErrNotContiguous, got %v", err)
	}
	if !strings.Contains(err.Error(), "slot 3") {
		t.Errorf("error should name the slot index: %v", err)
	}
}

func TestBuildSurface(t *testing.T) {
	ps := placements(StaticFixture, StaticFixture, StaticFixture)
	ps[1].Surface = true
	ps[1].Position = mgl32.Vec3{1, 2, 3}

	r, err := Build(ps)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	s, ok := r.Surface()
	if !ok || s.Index != 2 || s.Position != (mgl32.Vec3{1, 2, 3}) {
		t.Errorf("Surface() = %+v, %v", s, ok)
	}

	ps[2].Surface = true
	if _, err := Build(ps); !errors.Is(err, ErrMultipleSurfaces) {
		t.Errorf("expected ErrMultipleSurfaces, got %v", err)
	}
}

func TestMeshesShared(t *testing.T) {
	ps := placements(RockCluster, RockCluster, RockCluster)
	for i := range ps {
		ps[i].Mesh = 7
	}
	r, err := Build(ps)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	refs := r.Meshes()
	if len(refs) != 1 || refs[7] != 3 {
		t.Errorf("Meshes() = %v, want map[7:3]", refs)
	}
}

func TestParseCategory(t *testing.T) {
	for c, name := range categoryNames {
		got, err := ParseCategory(name)
		if err != nil || got != c {
			t.Errorf("ParseCategory(%q) = %v, %v", name, got, err)
		}
	}
	if _, err := ParseCategory("shark"); !errors.Is(err, ErrInvalidCategory) {
		t.Errorf("expected ErrInvalidCategory, got %v", err)
	}
}
