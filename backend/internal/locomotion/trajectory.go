package locomotion

import (
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	// LaunchSpeed is the speed of the guide projectile in units per second.
	LaunchSpeed = 6.0

	// LineSegments is the number of segments in the rendered guide.
	LineSegments = 10

	// markerRatio places the light and target just before impact so they
	// sit above the ground.
	markerRatio = 0.98
)

// Gravity is the constant acceleration applied to the guide projectile.
var Gravity = mgl64.Vec3{0, -9.8, 0}

// ErrNoGroundHit is returned when the arc never comes back down to y = 0.
var ErrNoGroundHit = errors.New("trajectory does not reach the ground")

// PositionAt is the ballistic position p + v*t + g*t²/2.
func PositionAt(p, v, g mgl64.Vec3, t float64) mgl64.Vec3 {
	return p.Add(v.Mul(t)).Add(g.Mul(0.5 * t * t))
}

// FlightTime solves p.y + v.y*t + g.y*t²/2 = 0 for the root after launch.
func FlightTime(p, v, g mgl64.Vec3) (float64, bool) {
	if g.Y() >= 0 {
		return 0, false
	}
	disc := v.Y()*v.Y() - 2*p.Y()*g.Y()
	if disc < 0 || math.IsNaN(disc) {
		return 0, false
	}
	t := (-v.Y() - math.Sqrt(disc)) / g.Y()
	if !(t > 0) || math.IsInf(t, 0) {
		return 0, false
	}
	return t, true
}

// Trajectory is the guide arc from a controller to the ground.
type Trajectory struct {
	Origin     mgl64.Vec3
	Velocity   mgl64.Vec3
	Gravity    mgl64.Vec3
	FlightTime float64
}

// NewTrajectory launches from origin along direction at LaunchSpeed.
func NewTrajectory(origin, direction mgl64.Vec3) (Trajectory, error) {
	if direction.Len() == 0 {
		return Trajectory{}, ErrNoGroundHit
	}
	v := direction.Normalize().Mul(LaunchSpeed)
	t, ok := FlightTime(origin, v, Gravity)
	if !ok {
		return Trajectory{}, ErrNoGroundHit
	}
	return Trajectory{
		Origin:     origin,
		Velocity:   v,
		Gravity:    Gravity,
		FlightTime: t,
	}, nil
}

// At returns the position at time t after launch.
func (tr Trajectory) At(t float64) mgl64.Vec3 {
	return PositionAt(tr.Origin, tr.Velocity, tr.Gravity, t)
}

// Impact is where the arc meets the ground.
func (tr Trajectory) Impact() mgl64.Vec3 {
	return tr.At(tr.FlightTime)
}

// Marker is where the guide light and target sprite are placed.
func (tr Trajectory) Marker() mgl64.Vec3 {
	return tr.At(tr.FlightTime * markerRatio)
}

// Samples returns n+1 evenly spaced points from launch to impact.
func (tr Trajectory) Samples(n int) []mgl64.Vec3 {
	out := make([]mgl64.Vec3, n+1)
	for i := 0; i <= n; i++ {
		out[i] = tr.At(float64(i) * tr.FlightTime / float64(n))
	}
	return out
}
