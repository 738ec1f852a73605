package scene

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Oscillation is a sine wave: Amplitude * sin(Frequency * t).
type Oscillation struct {
	Amplitude float64
	Frequency float64
}

// At evaluates the oscillation at time t (seconds).
func (o Oscillation) At(t float64) float64 {
	return o.Amplitude * math.Sin(o.Frequency*t)
}

// Motion holds the fixed parameters of every motion policy.
type Motion struct {
	// Scale is applied uniformly to every object before its translation.
	Scale float32
	// OrbitConstant is K in speed = K / distance.
	OrbitConstant float32
	// HeadOffset is the tilt pivot in model space.
	HeadOffset mgl32.Vec3

	// Tail swings the swimmer about its head. Its value is mapped to degrees
	// as value / TiltRange * TailMaxAngle.
	Tail         Oscillation
	TailMaxAngle float64
	TiltRange    float64

	// SideBob moves side swimmers up and down and pitches them by up to
	// SidePitchMax degrees.
	SideBob      Oscillation
	SidePitchMax float64

	// Figure-eight path: x = EightX * sin(EightFrequency*t),
	// z = EightZ * cos(2*EightFrequency*t).
	EightX         float64
	EightZ         float64
	EightFrequency float64
	EightBob       Oscillation
}

// DefaultMotion returns the parameters the tank is tuned for.
func DefaultMotion() Motion {
	return Motion{
		Scale:          0.01,
		OrbitConstant:  1000,
		HeadOffset:     mgl32.Vec3{0, 0, 300},
		Tail:           Oscillation{Amplitude: 100, Frequency: 20},
		TailMaxAngle:   15,
		TiltRange:      200,
		SideBob:        Oscillation{Amplitude: 250, Frequency: 5},
		SidePitchMax:   20,
		EightX:         500,
		EightZ:         250,
		EightFrequency: 2,
		EightBob:       Oscillation{Amplitude: 125, Frequency: 2.5},
	}
}

// Animator computes model matrices for slots.
// Evaluate is a pure function of the slot and the elapsed time.
type Animator struct {
	motion Motion
}

// NewAnimator creates an animator with the given motion parameters.
func NewAnimator(m Motion) *Animator {
	return &Animator{motion: m}
}

// Motion returns the animator's parameters.
func (a *Animator) Motion() Motion {
	return a.motion
}

// Evaluate returns the model matrix of slot s at elapsed time t (seconds).
// It panics if the slot carries an invalid category.
func (a *Animator) Evaluate(s Slot, t float64) mgl32.Mat4 {
	m := &a.motion

	model := mgl32.Scale3D(m.Scale, m.Scale, m.Scale)
	model = model.Mul4(mgl32.Translate3D(s.Position[0], s.Position[1], s.Position[2]))
	if s.MeshRotation != (mgl32.Vec3{}) {
		model = model.Mul4(meshRotation(s.MeshRotation))
	}

	switch s.Category {
	case FrontSwimmer:
		model = a.orbit(model, s.Position, t)
		model = a.swingTail(model, t)

	case SideSwimmer:
		model = a.orbit(model, s.Position, t)
		yOffset := m.SideBob.At(t)
		pitch := yOffset / m.TiltRange * m.SidePitchMax
		model = model.Mul4(mgl32.Translate3D(0, float32(yOffset), 0))
		model = model.Mul4(mgl32.HomogRotate3DX(degToRad(pitch)))
		model = model.Mul4(mgl32.HomogRotate3DY(a.tailAngle(t)))

	case FigureEightSwimmer:
		model = a.orbit(model, s.Position, t)
		x, y, z := a.FigureEight(t)
		model = model.Mul4(mgl32.Translate3D(x, y, z))
		model = a.swingTail(model, t)

	case RockCluster, AttachedDecoration, StaticFixture:
		// Placement only.

	default:
		panic(fmt.Sprintf("scene: slot %d (%s) has invalid category %d", s.Index, s.Name, int(s.Category)))
	}

	return model
}

// orbit turns the swimmer to face away from the origin and rotates it
// around the world Y axis. Swimmers on the +X side orbit counter-clockwise,
// the others clockwise.
func (a *Animator) orbit(model mgl32.Mat4, pos mgl32.Vec3, t float64) mgl32.Mat4 {
	model = model.Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(FacingAngle(pos))))

	side := 1.0
	if pos[0] <= 0 {
		side = -1.0
	}
	model = model.Mul4(mgl32.HomogRotate3DY(degToRad(90 * side)))

	angle := side * t * float64(a.OrbitSpeed(pos))
	return mgl32.HomogRotate3DY(float32(angle)).Mul4(model)
}

// swingTail rotates the model about its head instead of its center.
func (a *Animator) swingTail(model mgl32.Mat4, t float64) mgl32.Mat4 {
	head := a.motion.HeadOffset
	model = model.Mul4(mgl32.Translate3D(head[0], head[1], head[2]))
	model = model.Mul4(mgl32.HomogRotate3DY(a.tailAngle(t)))
	return model.Mul4(mgl32.Translate3D(-head[0], -head[1], -head[2]))
}

// tailAngle returns the tail swing in radians at time t.
func (a *Animator) tailAngle(t float64) float32 {
	m := &a.motion
	return degToRad(m.Tail.At(t) / m.TiltRange * m.TailMaxAngle)
}

// FigureEight returns the local offset along the figure-eight path at time t.
func (a *Animator) FigureEight(t float64) (x, y, z float32) {
	m := &a.motion
	x = float32(m.EightX * math.Sin(m.EightFrequency*t))
	y = float32(m.EightBob.At(t))
	z = float32(m.EightZ * math.Cos(2*m.EightFrequency*t))
	return x, y, z
}

// OrbitSpeed returns the angular speed (radians per second) of a swimmer at
// pos. Speed is inversely proportional to the horizontal distance from the
// origin; a swimmer exactly on the Y axis does not orbit.
func (a *Animator) OrbitSpeed(pos mgl32.Vec3) float32 {
	dist := math.Hypot(float64(pos[0]), float64(pos[2]))
	if dist == 0 {
		return 0
	}
	return float32(float64(a.motion.OrbitConstant) / dist)
}

// FacingAngle returns atan2(x, z) of pos in degrees.
func FacingAngle(pos mgl32.Vec3) float32 {
	return float32(math.Atan2(float64(pos[0]), float64(pos[2])) * 180 / math.Pi)
}

func meshRotation(deg mgl32.Vec3) mgl32.Mat4 {
	return mgl32.HomogRotate3DX(mgl32.DegToRad(deg[0])).
		Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(deg[1]))).
		Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(deg[2])))
}

func degToRad(deg float64) float32 {
	return float32(deg * math.Pi / 180)
}
