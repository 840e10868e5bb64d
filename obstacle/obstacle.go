// Package obstacle builds the static scenery of a stage: boundary walls, target pegs and decoration.
package obstacle

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/lixenwraith/gthrower/config"
	"github.com/lixenwraith/gthrower/constants"
	"github.com/lixenwraith/gthrower/physics"
)

// Walls returns four static boxes whose inner faces lie on the canvas edges
func Walls(canvas config.Canvas) []*physics.Object {
	w, h, t := canvas.Width, canvas.Height, canvas.WallThickness

	specs := []struct {
		label  string
		center cp.Vector
		w, h   float64
	}{
		{"wall-top", cp.Vector{X: w / 2, Y: -t / 2}, w, t},
		{"wall-bottom", cp.Vector{X: w / 2, Y: h + t/2}, w, t},
		{"wall-left", cp.Vector{X: -t / 2, Y: h / 2}, t, h},
		{"wall-right", cp.Vector{X: w + t/2, Y: h / 2}, t, h},
	}

	walls := make([]*physics.Object, 0, len(specs))
	for _, s := range specs {
		body := cp.NewStaticBody()
		body.SetPosition(s.center)
		obj := physics.NewObject(body, physics.Tag{Kind: physics.KindWall, Label: s.label})

		shape := cp.NewBox(body, s.w, s.h, 0)
		physics.MaterialWall.Apply(shape)
		obj.Shapes = append(obj.Shapes, shape)
		walls = append(walls, obj)
	}
	return walls
}

// Peg returns a static circular target
func Peg(center cp.Vector, radius float64) *physics.Object {
	body := cp.NewStaticBody()
	body.SetPosition(center)
	obj := physics.NewObject(body, physics.Tag{Kind: physics.KindPeg, Radius: radius, Label: "peg"})

	shape := cp.NewCircle(body, radius, cp.Vector{})
	physics.MaterialPeg.Apply(shape)
	obj.Shapes = append(obj.Shapes, shape)
	return obj
}

// Pegs converts configured positions into peg objects
func Pegs(positions []cp.Vector, radius float64) []*physics.Object {
	out := make([]*physics.Object, 0, len(positions))
	for _, p := range positions {
		out = append(out, Peg(p, radius))
	}
	return out
}

// branch is one limb of the decorative tree in trunk-local coordinates
type branch struct {
	offset cp.Vector
	length float64
	angle  float64
}

// Tree returns a static trunk with four angled branches rooted at root
func Tree(root cp.Vector, canvasHeight float64) *physics.Object {
	trunkW := constants.TreeTrunkWidth
	trunkH := canvasHeight * constants.TreeTrunkHeightRate
	thick := constants.TreeBranchThickness

	body := cp.NewStaticBody()
	body.SetPosition(cp.Vector{X: root.X, Y: root.Y - trunkH/2})
	obj := physics.NewObject(body, physics.Tag{Kind: physics.KindObstacle, Label: "tree"})

	trunk := cp.NewBox(body, trunkW, trunkH, 0)
	physics.MaterialObstacle.Apply(trunk)
	obj.Shapes = append(obj.Shapes, trunk)

	limbs := []branch{
		{cp.Vector{X: trunkW*0.4 + 75*0.2, Y: -trunkH * 0.15}, 75, -math.Pi / 5.5},
		{cp.Vector{X: -trunkW*0.4 - 85*0.2, Y: -trunkH * 0.4}, 85, math.Pi / 6},
		{cp.Vector{X: trunkW*0.3 + 65*0.3, Y: -trunkH * 0.7}, 65, -math.Pi / 4},
		{cp.Vector{X: -trunkW*0.3 - 60*0.3, Y: -trunkH * 0.88}, 60, math.Pi / 3.8},
	}
	for _, b := range limbs {
		hw, hh := b.length/2, thick/2
		verts := []cp.Vector{{X: hw, Y: -hh}, {X: hw, Y: hh}, {X: -hw, Y: hh}, {X: -hw, Y: -hh}}
		shape := cp.NewPolyShape(body, len(verts), verts, cp.NewTransformRigid(b.offset, b.angle), 0)
		physics.MaterialObstacle.Apply(shape)
		obj.Shapes = append(obj.Shapes, shape)
	}
	return obj
}

// Builder adds scenery to a world as one batch
type Builder struct {
	world *physics.World
}

func NewBuilder(world *physics.World) *Builder {
	return &Builder{world: world}
}

// Populate adds every object or none of them
func (b *Builder) Populate(objs ...*physics.Object) error {
	if err := b.world.AddBatch(objs...); err != nil {
		return fmt.Errorf("populate: %w", err)
	}
	return nil
}
