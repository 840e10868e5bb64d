package physics

import "github.com/jakecoffman/cp"

// Kind classifies bodies for queries and rendering
type Kind uint8

const (
	KindWall Kind = iota
	KindPeg
	KindObstacle
	KindMovable
)

func (k Kind) String() string {
	switch k {
	case KindWall:
		return "wall"
	case KindPeg:
		return "peg"
	case KindObstacle:
		return "obstacle"
	case KindMovable:
		return "movable"
	default:
		return "unknown"
	}
}

// Tag is stored in cp.Body.UserData
type Tag struct {
	Kind   Kind
	Radius float64 // Approximate bounding radius used by proximity checks
	Label  string
}

// Object is a body together with the shapes that belong to it
// Shapes are attached to the space when the object is added
type Object struct {
	Body   *cp.Body
	Shapes []*cp.Shape
}

// NewObject wraps body and stamps the tag into its user data
func NewObject(body *cp.Body, tag Tag) *Object {
	body.UserData = tag
	return &Object{Body: body}
}

// Tag returns the object's tag, zero value when untagged
func (o *Object) Tag() Tag {
	tag, _ := o.Body.UserData.(Tag)
	return tag
}

// Position implements the goal evaluator's position source
func (o *Object) Position() cp.Vector {
	return o.Body.Position()
}

// Radius returns the tagged approximate radius
func (o *Object) Radius() float64 {
	return o.Tag().Radius
}

// Static reports whether the body never moves
func (o *Object) Static() bool {
	return o.Body.GetType() == cp.BODY_STATIC
}

// Sleeping reports whether the body is parked by the engine
func (o *Object) Sleeping() bool {
	return o.Body.IsSleeping()
}
