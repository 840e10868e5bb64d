package physics

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/lixenwraith/gthrower/constants"
)

// Material describes surface and mass response of a shape
// Profiles are defined as package variables and copied on use
type Material struct {
	Friction   float64
	Elasticity float64
	Density    float64 // Zero for static bodies
	AirDrag    float64 // Fraction of velocity lost per 1/60s, zero disables
}

var (
	MaterialWall = Material{
		Friction:   constants.WallFriction,
		Elasticity: constants.WallElasticity,
	}

	MaterialPeg = Material{
		Friction:   constants.PegFriction,
		Elasticity: constants.PegElasticity,
	}

	MaterialObstacle = Material{
		Friction:   constants.ObstacleFriction,
		Elasticity: constants.ObstacleElasticity,
	}

	MaterialGlyph = Material{
		Friction:   constants.GlyphFriction,
		Elasticity: constants.GlyphElasticity,
		Density:    constants.GlyphDensity,
		AirDrag:    constants.GlyphAirDrag,
	}
)

// Apply sets surface properties and density on a shape
func (m Material) Apply(shape *cp.Shape) {
	shape.SetFriction(m.Friction)
	shape.SetElasticity(m.Elasticity)
	if m.Density > 0 {
		shape.SetDensity(m.Density)
	}
}

// ApplyDrag installs a velocity integrator with per-body air drag
func (m Material) ApplyDrag(body *cp.Body) {
	if m.AirDrag <= 0 {
		return
	}
	drag := m.AirDrag
	body.SetVelocityUpdateFunc(func(b *cp.Body, gravity cp.Vector, damping, dt float64) {
		cp.BodyUpdateVelocity(b, gravity, damping*math.Pow(1-drag, dt*60), dt)
	})
}
