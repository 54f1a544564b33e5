package drag

import (
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/soar/xrplayground/backend/internal/scene"
)

// Shape is the geometry of a draggable object.
type Shape uint8

const (
	Box Shape = iota
	Cone
	Cylinder
	Icosahedron
	Torus
)

var shapeNames = [...]string{"box", "cone", "cylinder", "icosahedron", "torus"}

// Bounding radii at scale 1 for 0.2 sized geometry.
var shapeRadii = [...]float64{
	Box:         0.1 * math.Sqrt(3),
	Cone:        math.Hypot(0.2, 0.1),
	Cylinder:    math.Hypot(0.2, 0.1),
	Icosahedron: 0.2,
	Torus:       0.24,
}

func (s Shape) String() string {
	if int(s) < len(shapeNames) {
		return shapeNames[s]
	}
	return "unknown"
}

// Target is a draggable object. Hovered is set while a free controller
// points at it, Held while a controller carries it.
type Target struct {
	Node    *scene.Node
	Shape   Shape
	Scale   float64
	Hovered bool
	Held    bool
}

func NewTarget(shape Shape, scale float64, position mgl64.Vec3, rotation mgl64.Quat) *Target {
	n := scene.NewNode(shape.String())
	n.Position = position
	n.Rotation = rotation
	return &Target{Node: n, Shape: shape, Scale: scale}
}

// Radius is the bounding sphere radius used for picking.
func (t *Target) Radius() float64 {
	if int(t.Shape) >= len(shapeRadii) {
		return 0
	}
	return shapeRadii[t.Shape] * t.Scale
}

// Scatter lays out n random targets in front of the viewer.
func Scatter(rng *rand.Rand, n int) []*Target {
	targets := make([]*Target, 0, n)
	for i := 0; i < n; i++ {
		shape := Shape(rng.IntN(len(shapeNames)))
		pos := mgl64.Vec3{rng.Float64()*2 - 1, rng.Float64() * 2, rng.Float64() * 2}
		rot := mgl64.AnglesToQuat(
			rng.Float64()*2*math.Pi,
			rng.Float64()*2*math.Pi,
			rng.Float64()*2*math.Pi,
			mgl64.XYZ,
		)
		targets = append(targets, NewTarget(shape, rng.Float64()+0.5, pos, rot))
	}
	return targets
}
