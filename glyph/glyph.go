// Package glyph is the closed catalog of letter-shaped movable bodies.
package glyph

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/lixenwraith/gthrower/physics"
)

var ErrUnknownVariant = errors.New("unknown glyph variant")

// Variant identifies one letter shape
type Variant uint8

const (
	VariantE Variant = iota
	VariantG
	variantCount
)

var variantNames = [variantCount]string{
	VariantE: "E",
	VariantG: "G",
}

func (v Variant) String() string {
	if v < variantCount {
		return variantNames[v]
	}
	return fmt.Sprintf("Variant(%d)", v)
}

// ParseVariant resolves a letter tag, case-insensitively
func ParseVariant(s string) (Variant, error) {
	for v, name := range variantNames {
		if strings.EqualFold(s, name) {
			return Variant(v), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownVariant, s)
}

// Variants lists the catalog in declaration order
func Variants() []Variant {
	out := make([]Variant, variantCount)
	for i := range out {
		out[i] = Variant(i)
	}
	return out
}

// Spec fully describes a glyph body before it exists
type Spec struct {
	Variant      Variant
	Position     cp.Vector
	Parts        []cp.BB // Rectangles in body-local coordinates
	Chamfer      float64 // Corner rounding radius, included in the part extents
	ApproxRadius float64 // Bounding radius used by proximity checks
	Material     physics.Material
}

type specFunc func(at cp.Vector, scale float64) Spec

var catalog = [variantCount]specFunc{
	VariantE: specE,
	VariantG: specG,
}

// Spec builds the description of v spawned at at
func (v Variant) Spec(at cp.Vector, scale float64) (Spec, error) {
	if v >= variantCount {
		return Spec{}, fmt.Errorf("%w: %d", ErrUnknownVariant, v)
	}
	return catalog[v](at, scale), nil
}

// rect returns a box centered on (cx, cy)
func rect(cx, cy, w, h float64) cp.BB {
	return cp.NewBBForExtents(cp.Vector{X: cx, Y: cy}, w/2, h/2)
}

func specE(at cp.Vector, s float64) Spec {
	partW, h, barW := 10*s, 50*s, 35*s
	return Spec{
		Variant:  VariantE,
		Position: at,
		Parts: []cp.BB{
			rect(-15*s, 0, partW, h),
			rect(0, -h/2+partW/2, barW, partW),
			rect(-2*s, 0, barW*0.9, partW),
			rect(0, h/2-partW/2, barW, partW),
		},
		ApproxRadius: 32 * s,
		Material:     physics.MaterialGlyph,
	}
}

func specG(at cp.Vector, s float64) Spec {
	r := 35 * s
	t := 8 * s
	outerH := r * 2
	outerW := r * 1.8
	return Spec{
		Variant:  VariantG,
		Position: at,
		Parts: []cp.BB{
			rect(-outerW/2+t/2, 0, t, outerH*0.9),
			rect(0, -outerH/2+t/2, outerW*0.8, t),
			rect(-outerW*0.1, outerH/2-t/2, outerW*0.8, t),
			rect(outerW/2-t/2, r*0.2, t, outerH*0.6),
			rect(r*0.1, 0, r*0.8, t),
		},
		Chamfer:      1.5 * s,
		ApproxRadius: 38 * s,
		Material:     physics.MaterialGlyph,
	}
}

// Build creates the dynamic object for spec, tagged as the movable
func Build(spec Spec) *physics.Object {
	body := cp.NewBody(0, 0)
	obj := physics.NewObject(body, physics.Tag{
		Kind:   physics.KindMovable,
		Radius: spec.ApproxRadius,
		Label:  spec.Variant.String(),
	})

	for _, part := range spec.Parts {
		inner := cp.BB{
			L: part.L + spec.Chamfer,
			B: part.B + spec.Chamfer,
			R: part.R - spec.Chamfer,
			T: part.T - spec.Chamfer,
		}
		shape := cp.NewBox2(body, inner, spec.Chamfer)
		spec.Material.Apply(shape)
		obj.Shapes = append(obj.Shapes, shape)
	}
	spec.Material.ApplyDrag(body)
	body.SetPosition(spec.Position)
	body.SetAngle(0)
	return obj
}
