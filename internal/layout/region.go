package layout

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
)

// Region is a candidate area that positions are drawn from.
type Region interface {
	// Sample draws one candidate position using rng.
	Sample(rng *rand.Rand) mgl32.Vec3
}

// Box draws each axis uniformly between Min and Max.
type Box struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// Sample implements Region. Axes are drawn in X, Y, Z order.
func (b Box) Sample(rng *rand.Rand) mgl32.Vec3 {
	x := uniform(rng, b.Min[0], b.Max[0])
	y := uniform(rng, b.Min[1], b.Max[1])
	z := uniform(rng, b.Min[2], b.Max[2])
	return mgl32.Vec3{x, y, z}
}

// Annulus draws positions on a horizontal ring at a fixed height.
// The angle is uniform in [0, 2π) and the radius uniform in [Inner, Outer).
type Annulus struct {
	Inner  float32
	Outer  float32
	Height float32
}

// Sample implements Region.
func (a Annulus) Sample(rng *rand.Rand) mgl32.Vec3 {
	theta := uniform(rng, 0, 2*math.Pi)
	radius := uniform(rng, a.Inner, a.Outer)
	return mgl32.Vec3{
		radius * float32(math.Cos(float64(theta))),
		a.Height,
		radius * float32(math.Sin(float64(theta))),
	}
}

// Point always yields the same position and consumes no randomness.
type Point struct {
	At mgl32.Vec3
}

// Sample implements Region.
func (p Point) Sample(*rand.Rand) mgl32.Vec3 {
	return p.At
}

func uniform(rng *rand.Rand, lo, hi float32) float32 {
	return lo + (hi-lo)*float32(rng.Float64())
}
