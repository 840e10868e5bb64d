package obstacle

import (
	"log"
	"math/rand/v2"

	"github.com/jakecoffman/cp"
)

// PegRequest describes a random peg layout
type PegRequest struct {
	Count            int
	Area             cp.BB
	Radius           float64
	SeparationFactor float64 // Minimum center distance in radii
	AttemptFactor    int     // Attempts allowed per requested peg
	Avoid            []cp.Vector
}

// PlacePegs samples positions inside Area that keep the minimum separation
// from each other and from Avoid. Exhausting the attempt budget returns the
// partial layout.
func PlacePegs(rng *rand.Rand, req PegRequest) []cp.Vector {
	if req.Count <= 0 {
		return nil
	}

	minDist := req.SeparationFactor * req.Radius
	minDistSq := minDist * minDist
	attempts := req.AttemptFactor * req.Count
	width := req.Area.R - req.Area.L
	height := req.Area.T - req.Area.B

	placed := make([]cp.Vector, 0, req.Count)
	for try := 0; try < attempts && len(placed) < req.Count; try++ {
		p := cp.Vector{
			X: req.Area.L + rng.Float64()*width,
			Y: req.Area.B + rng.Float64()*height,
		}
		if tooClose(p, placed, minDistSq) || tooClose(p, req.Avoid, minDistSq) {
			continue
		}
		placed = append(placed, p)
	}

	if len(placed) < req.Count {
		log.Printf("[obstacle] placed %d of %d pegs after %d attempts", len(placed), req.Count, attempts)
	}
	return placed
}

func tooClose(p cp.Vector, others []cp.Vector, minDistSq float64) bool {
	for _, o := range others {
		if p.DistanceSq(o) < minDistSq {
			return true
		}
	}
	return false
}
