package drag

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/soar/xrplayground/backend/internal/scene"
)

// Ray is a half line from Origin along the unit vector Direction.
type Ray struct {
	Origin    mgl64.Vec3
	Direction mgl64.Vec3
}

// NodeRay is the forward ray of a target-ray node.
func NodeRay(n *scene.Node) Ray {
	return Ray{Origin: n.WorldPosition(), Direction: n.WorldDirection()}
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float64) mgl64.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// IntersectSphere returns the distance to the first point where the ray
// meets the sphere. An origin inside the sphere hits its far side.
func (r Ray) IntersectSphere(center mgl64.Vec3, radius float64) (float64, bool) {
	oc := center.Sub(r.Origin)
	tca := oc.Dot(r.Direction)
	d2 := oc.Dot(oc) - tca*tca
	r2 := radius * radius
	if d2 > r2 {
		return 0, false
	}
	thc := math.Sqrt(r2 - d2)
	t0, t1 := tca-thc, tca+thc
	if t1 < 0 {
		return 0, false
	}
	if t0 < 0 {
		return t1, true
	}
	return t0, true
}
