package scene

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

const eps = 1e-9

// near compares with an absolute tolerance; components that should be zero
// carry rounding residue.
func near(a, b mgl64.Vec3, tol float64) bool {
	return a.Sub(b).Len() < tol
}

func TestAddReparents(t *testing.T) {
	a, b, c := NewNode("a"), NewNode("b"), NewNode("c")
	a.Add(c)
	b.Add(c)

	if a.Contains(c) || len(a.Children()) != 0 {
		t.Error("c still attached to a")
	}
	if !b.Contains(c) || c.Parent() != b {
		t.Error("c not attached to b")
	}
	if !b.Remove(c) || c.Parent() != nil {
		t.Error("Remove(c) failed")
	}
	if b.Remove(c) {
		t.Error("second Remove(c) = true")
	}
}

func TestWorldPositionComposesParents(t *testing.T) {
	root := NewNode("root")
	root.Position = mgl64.Vec3{1, 0, 0}
	root.RotateY(math.Pi / 2)

	child := NewNode("child")
	child.Position = mgl64.Vec3{0, 0, -1}
	root.Add(child)

	// a quarter turn left maps local -Z onto world -X
	got := child.WorldPosition()
	want := mgl64.Vec3{0, 0, 0}
	if !near(got, want, eps) {
		t.Errorf("WorldPosition = %v, want %v", got, want)
	}

	dir := child.WorldDirection()
	if !near(dir, mgl64.Vec3{-1, 0, 0}, eps) {
		t.Errorf("WorldDirection = %v, want -X", dir)
	}
}

func TestWorldToLocalRoundTrip(t *testing.T) {
	root := NewNode("root")
	root.Position = mgl64.Vec3{2, 1, -3}
	root.RotateY(0.7)
	child := NewNode("child")
	child.Position = mgl64.Vec3{0.2, 1.1, 0.4}
	child.Rotation = mgl64.QuatRotate(0.3, mgl64.Vec3{1, 0, 0})
	root.Add(child)

	world := mgl64.Vec3{4, 0, -6}
	local := child.WorldToLocal(world)
	back := child.WorldMatrix().Mul4x1(local.Vec4(1)).Vec3()
	if !near(back, world, 1e-9) {
		t.Errorf("round trip = %v, want %v", back, world)
	}
	if origin := child.WorldToLocal(child.WorldPosition()); !near(origin, mgl64.Vec3{}, 1e-9) {
		t.Errorf("own position in local space = %v, want origin", origin)
	}
}

func TestYaw(t *testing.T) {
	n := NewNode("n")
	if y := n.Yaw(); math.Abs(y) > eps {
		t.Errorf("initial yaw = %v", y)
	}
	n.RotateY(math.Pi / 4)
	n.RotateY(math.Pi / 4)
	if y := n.Yaw(); math.Abs(y-math.Pi/2) > eps {
		t.Errorf("yaw = %v, want pi/2", y)
	}
}

func TestSceneViewerAndRecenter(t *testing.T) {
	s := New()
	if s.ViewerCamera() != s.Camera {
		t.Error("desktop viewer is not the camera")
	}
	s.XR.Presenting = true
	if s.ViewerCamera() != s.XR.Head {
		t.Error("presenting viewer is not the XR head")
	}
	if len(s.XR.Cameras) != 2 {
		t.Fatalf("got %d stereo cameras", len(s.XR.Cameras))
	}

	s.Rig.Position = mgl64.Vec3{3, 0, -2}
	feet := s.FeetPosition()
	if !near(feet, mgl64.Vec3{3, 0, -2}, eps) {
		t.Errorf("FeetPosition = %v", feet)
	}

	s.Rig.RotateY(1)
	s.XR.Cameras[0].RotateY(1)
	s.Recenter()
	if s.Rig.Position != (mgl64.Vec3{}) || math.Abs(s.Rig.Yaw()) > eps || math.Abs(s.XR.Cameras[0].Yaw()) > eps {
		t.Error("Recenter left offsets behind")
	}
}

func TestAttachKeepsWorldPose(t *testing.T) {
	root := NewNode("root")
	a := NewNode("a")
	a.Position = mgl64.Vec3{1, 2, 3}
	a.Rotation = mgl64.QuatRotate(0.7, Up)
	b := NewNode("b")
	b.Position = mgl64.Vec3{-2, 0, 1}
	b.Rotation = mgl64.QuatRotate(-0.4, mgl64.Vec3{1, 0, 0})
	root.Add(a)
	root.Add(b)

	obj := NewNode("obj")
	obj.Position = mgl64.Vec3{0.5, 0, -1}
	obj.Rotation = mgl64.QuatRotate(1.1, mgl64.Vec3{0, 0, 1})
	a.Add(obj)
	pos, dir := obj.WorldPosition(), obj.WorldDirection()

	b.Attach(obj)
	if !b.Contains(obj) || a.Contains(obj) {
		t.Fatal("obj not moved to b")
	}
	if !near(obj.WorldPosition(), pos, eps) {
		t.Errorf("WorldPosition = %v, want %v", obj.WorldPosition(), pos)
	}
	if !near(obj.WorldDirection(), dir, eps) {
		t.Errorf("WorldDirection = %v, want %v", obj.WorldDirection(), dir)
	}
}
