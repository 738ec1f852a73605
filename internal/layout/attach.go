package layout

import "github.com/go-gl/mathgl/mgl32"

// AttachConstraints describes how decorations are attached to base objects.
type AttachConstraints struct {
	// PoolSize limits selection to the first PoolSize bases.
	PoolSize int
	// ClearanceRadius rejects a base when another base sits above it
	// closer than this distance.
	ClearanceRadius float32
	// Lift is the height of the attachment above its base.
	Lift        float32
	MaxAttempts int
}

// AttachResult holds the attachments accepted by Attach.
type AttachResult struct {
	Positions []mgl32.Vec3
	// Bases[i] is the index into the base slice that Positions[i] sits on.
	Bases   []int
	Skipped int
}

// Attach places count decorations on top of bases. Each base hosts at most
// one decoration and a base covered by another base is never used. A unit
// that finds no valid base within its attempt budget is skipped.
func (g *Generator) Attach(bases []mgl32.Vec3, count int, c AttachConstraints) AttachResult {
	attempts := c.MaxAttempts
	if attempts <= 0 {
		attempts = DefaultMaxAttempts
	}
	pool := c.PoolSize
	if pool <= 0 || pool > len(bases) {
		pool = len(bases)
	}

	var res AttachResult
	if pool == 0 {
		res.Skipped = count
		return res
	}

	used := make(map[int]struct{}, count)
	for i := 0; i < count; i++ {
		accepted := false
		for try := 0; try < attempts; try++ {
			idx := g.rng.Intn(pool)
			if _, taken := used[idx]; taken {
				continue
			}
			if Covered(bases, idx, c.ClearanceRadius) {
				continue
			}
			used[idx] = struct{}{}
			res.Positions = append(res.Positions, bases[idx].Add(mgl32.Vec3{0, c.Lift, 0}))
			res.Bases = append(res.Bases, idx)
			accepted = true
			break
		}
		if !accepted {
			res.Skipped++
		}
	}
	return res
}

// Covered reports whether another base lies above bases[idx] within radius.
func Covered(bases []mgl32.Vec3, idx int, radius float32) bool {
	base := bases[idx]
	for _, other := range bases {
		if other == base {
			continue
		}
		if base.Sub(other).Len() < radius && other[1] > base[1] {
			return true
		}
	}
	return false
}
