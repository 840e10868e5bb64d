package input

import "github.com/jakecoffman/cp"

// Zone is the circle a drag must start in and stay in
// All checks compare squared distances
type Zone struct {
	Center   cp.Vector
	Radius   float64
	radiusSq float64
}

func NewZone(center cp.Vector, radius float64) Zone {
	return Zone{Center: center, Radius: radius, radiusSq: radius * radius}
}

// RadiusSq returns the precomputed squared radius
func (z Zone) RadiusSq() float64 {
	return z.radiusSq
}

// Contains reports whether p lies inside or on the boundary
func (z Zone) Contains(p cp.Vector) bool {
	return p.DistanceSq(z.Center) <= z.radiusSq
}
