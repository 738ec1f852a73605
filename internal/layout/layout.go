// Package layout generates constrained random object placements for the scene.
//
// A Generator owns a single seeded random source. Every placement call draws
// from it sequentially, so the same seed and the same call sequence always
// produce the same layout.
package layout

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
)

// DefaultMaxAttempts is the per-unit draw budget used when a constraint set
// leaves MaxAttempts at zero.
const DefaultMaxAttempts = 1000

// maxSupports is the most objects a stacked candidate rests on. Contacts
// past the third, in placement order, are not considered.
const maxSupports = 3

// Stacking makes a candidate settle on top of the objects it touches.
type Stacking struct {
	// TouchDistance is the distance below which two objects are in contact.
	TouchDistance float32
	// Lift is added to the centroid height of the touched objects.
	Lift float32
}

// Constraints describes how one category of objects is scattered.
type Constraints struct {
	Region        Region
	MinSeparation float32
	// MaxAttempts bounds the draws spent on a single unit.
	MaxAttempts int
	// Seeds are pre-placed positions. They are part of the output and take
	// part in separation and stacking checks.
	Seeds []mgl32.Vec3
	// Stacking is optional.
	Stacking *Stacking
}

// Result holds the positions accepted by Scatter.
type Result struct {
	Positions []mgl32.Vec3
	// Skipped counts units dropped because their draw budget ran out.
	Skipped int
}

// Generator produces placements from a seeded random source.
type Generator struct {
	seed int64
	rng  *rand.Rand
}

// New creates a generator seeded with seed.
func New(seed int64) *Generator {
	return &Generator{
		seed: seed,
		rng:  rand.New(rand.NewSource(seed)),
	}
}

// Seed returns the seed the generator was created with.
func (g *Generator) Seed() int64 {
	return g.seed
}

// Scatter places count units by rejection sampling.
// A candidate is accepted only if it is at least MinSeparation away from
// every position accepted so far, seeds included. A unit that cannot be
// placed within its attempt budget is skipped and counted in Result.Skipped.
func (g *Generator) Scatter(count int, c Constraints) Result {
	attempts := c.MaxAttempts
	if attempts <= 0 {
		attempts = DefaultMaxAttempts
	}

	placed := make([]mgl32.Vec3, 0, len(c.Seeds)+count)
	placed = append(placed, c.Seeds...)

	var res Result
	for i := 0; i < count; i++ {
		accepted := false
		for try := 0; try < attempts; try++ {
			candidate := c.Region.Sample(g.rng)
			if c.Stacking != nil {
				candidate = c.Stacking.settle(candidate, placed)
			}
			if farEnough(candidate, placed, c.MinSeparation) {
				placed = append(placed, candidate)
				accepted = true
				break
			}
		}
		if !accepted {
			res.Skipped++
		}
	}

	res.Positions = placed
	return res
}

// settle moves candidate onto the first objects it touches when it touches
// at least two of them.
func (s *Stacking) settle(candidate mgl32.Vec3, placed []mgl32.Vec3) mgl32.Vec3 {
	touching := Touching(candidate, placed, s.TouchDistance, maxSupports)
	if len(touching) < 2 {
		return candidate
	}
	return Centroid(touching).Add(mgl32.Vec3{0, s.Lift, 0})
}

// Touching returns the positions strictly closer than dist to p, in slice
// order. It stops after limit hits; limit <= 0 collects them all.
func Touching(p mgl32.Vec3, positions []mgl32.Vec3, dist float32, limit int) []mgl32.Vec3 {
	var out []mgl32.Vec3
	for _, q := range positions {
		if p.Sub(q).Len() < dist {
			out = append(out, q)
			if limit > 0 && len(out) == limit {
				break
			}
		}
	}
	return out
}

// Centroid returns the mean of positions. It returns the zero vector for an
// empty slice.
func Centroid(positions []mgl32.Vec3) mgl32.Vec3 {
	var sum mgl32.Vec3
	if len(positions) == 0 {
		return sum
	}
	for _, p := range positions {
		sum = sum.Add(p)
	}
	return sum.Mul(1 / float32(len(positions)))
}

func farEnough(p mgl32.Vec3, positions []mgl32.Vec3, minDist float32) bool {
	for _, q := range positions {
		if p.Sub(q).Len() < minDist {
			return false
		}
	}
	return true
}
