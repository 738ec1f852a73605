package scene

import (
	"math"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestFacingAngle(t *testing.T) {
	tests := []struct {
		x, z float32
		want float32
	}{
		{1000, 0, 90},
		{0, 1000, 0},
		{-1000, 0, -90},
		{0, -1000, 180},
		{1000, 1000, 45},
		{-500, 500, -45},
	}
	for _, tt := range tests {
		got := FacingAngle(mgl32.Vec3{tt.x, 123, tt.z})
		if math.Abs(float64(got-tt.want)) > 1e-4 {
			t.Errorf("FacingAngle(%v, %v) = %v, want %v", tt.x, tt.z, got, tt.want)
		}
	}
}

func TestOrbitSpeed(t *testing.T) {
	a := NewAnimator(DefaultMotion())
	if got := a.OrbitSpeed(mgl32.Vec3{300, 50, 400}); math.Abs(float64(got)-2) > 1e-6 {
		t.Errorf("speed at distance 500 = %v, want 2", got)
	}
	if got := a.OrbitSpeed(mgl32.Vec3{0, 700, 0}); got != 0 {
		t.Errorf("speed on the axis = %v, want 0", got)
	}
}

func TestEvaluateDeterministic(t *testing.T) {
	a := NewAnimator(DefaultMotion())
	pos := mgl32.Vec3{812.5, 40, -377}

	for _, c := range []Category{FrontSwimmer, SideSwimmer, FigureEightSwimmer, RockCluster, AttachedDecoration, StaticFixture} {
		s := Slot{Index: 1, Placement: Placement{Category: c, Position: pos}}
		for _, tm := range []float64{0, 0.016, 1.5, 97.25} {
			m1 := a.Evaluate(s, tm)
			m2 := a.Evaluate(s, tm)
			if m1 != m2 {
				t.Errorf("%s at t=%v: results differ", c, tm)
			}
		}
	}
}

func TestEvaluateStatic(t *testing.T) {
	a := NewAnimator(DefaultMotion())
	s := Slot{Index: 3, Placement: Placement{Category: RockCluster, Position: mgl32.Vec3{100, -700, 200}}}

	want := mgl32.Scale3D(0.01, 0.01, 0.01).Mul4(mgl32.Translate3D(100, -700, 200))
	for _, tm := range []float64{0, 5, 60} {
		if got := a.Evaluate(s, tm); !got.ApproxEqualThreshold(want, 1e-6) {
			t.Errorf("t=%v: got %v, want %v", tm, got, want)
		}
	}

	// World position of the object origin is scale * position.
	origin := want.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	if !origin.Vec3().ApproxEqualThreshold(mgl32.Vec3{1, -7, 2}, 1e-5) {
		t.Errorf("origin at %v", origin)
	}
}

func TestEvaluateMeshRotation(t *testing.T) {
	a := NewAnimator(DefaultMotion())
	s := Slot{Index: 1, Placement: Placement{
		Category:     AttachedDecoration,
		Position:     mgl32.Vec3{0, 100, 0},
		MeshRotation: mgl32.Vec3{270, 0, 0},
	}}

	m := a.Evaluate(s, 0)
	// Local +Y points along world -Z after 270 degrees about X.
	up := m.Mul4x1(mgl32.Vec4{0, 1, 0, 0}).Vec3().Normalize()
	if !up.ApproxEqualThreshold(mgl32.Vec3{0, 0, -1}, 1e-5) {
		t.Errorf("local up maps to %v, want (0,0,-1)", up)
	}
}

func TestEvaluateOrbitKeepsDistance(t *testing.T) {
	a := NewAnimator(DefaultMotion())
	pos := mgl32.Vec3{600, 200, 800}
	s := Slot{Index: 1, Placement: Placement{Category: SideSwimmer, Position: pos}}

	want := math.Hypot(6, 8) // scaled horizontal distance
	for _, tm := range []float64{0, 0.7, 3, 11} {
		// Side swimmers only bob vertically, so the horizontal radius stays fixed.
		p := a.Evaluate(s, tm).Mul4x1(mgl32.Vec4{0, 0, 0, 1})
		got := math.Hypot(float64(p[0]), float64(p[2]))
		if math.Abs(got-want) > 1e-3 {
			t.Errorf("t=%v: horizontal distance %v, want %v", tm, got, want)
		}
	}
}

func TestEvaluateOrbitDirection(t *testing.T) {
	a := NewAnimator(DefaultMotion())

	angleAt := func(pos mgl32.Vec3, tm float64) float64 {
		s := Slot{Index: 1, Placement: Placement{Category: SideSwimmer, Position: pos}}
		p := a.Evaluate(s, tm).Mul4x1(mgl32.Vec4{0, 0, 0, 1})
		return math.Atan2(float64(p[2]), float64(p[0]))
	}

	// A positive rotation about +Y turns (x, z) toward -z.
	east := mgl32.Vec3{1000, 0, 500}
	if d := angleAt(east, 0.1) - angleAt(east, 0); d >= 0 {
		t.Errorf("swimmer on +X should orbit with a positive Y rotation, angle delta %v", d)
	}
	west := mgl32.Vec3{-1000, 0, 500}
	if d := angleAt(west, 0.1) - angleAt(west, 0); d <= 0 {
		t.Errorf("swimmer on -X should orbit with a negative Y rotation, angle delta %v", d)
	}
}

func TestFigureEightPath(t *testing.T) {
	a := NewAnimator(DefaultMotion())

	x, y, z := a.FigureEight(0)
	if x != 0 || y != 0 || z != 250 {
		t.Errorf("FigureEight(0) = (%v, %v, %v), want (0, 0, 250)", x, y, z)
	}

	tq := math.Pi / 4 // 2t = pi/2
	x, _, z = a.FigureEight(tq)
	if math.Abs(float64(x)-500) > 1e-3 || math.Abs(float64(z)+250) > 1e-3 {
		t.Errorf("FigureEight(pi/4) = (%v, _, %v), want (500, _, -250)", x, z)
	}
}

func TestEvaluateTailPivot(t *testing.T) {
	m := DefaultMotion()
	a := NewAnimator(m)
	s := Slot{Index: 1, Placement: Placement{Category: FrontSwimmer, Position: mgl32.Vec3{0, 0, 1000}}}

	// The pivot stays put while the tail swings. Between the two frames
	// only the orbit moves it.
	head := m.HeadOffset.Vec4(1)
	rest := a.Evaluate(s, 0).Mul4x1(head)
	swung := a.Evaluate(s, math.Pi/40).Mul4x1(head) // 20t = pi/2

	speed := float64(a.OrbitSpeed(s.Position))
	rot := mgl32.HomogRotate3DY(float32(-speed * math.Pi / 40))
	if !swung.ApproxEqualThreshold(rot.Mul4x1(rest), 1e-3) {
		t.Errorf("head moved: rest %v swung %v", rest, swung)
	}
}

func TestEvaluateInvalidCategoryPanics(t *testing.T) {
	a := NewAnimator(DefaultMotion())
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic")
		}
		if msg, _ := r.(string); !strings.Contains(msg, "slot 17") {
			t.Errorf("panic should name the slot index, got %v", r)
		}
	}()
	a.Evaluate(Slot{Index: 17, Placement: Placement{Category: CategoryUnknown}}, 1)
}
