package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Up is the world up axis.
var Up = mgl64.Vec3{0, 1, 0}

// forward is the local axis a node points along.
var forward = mgl64.Vec3{0, 0, -1}

// Node is a transform in the scene graph. Only the fields the playground
// drives are modeled: materials carry Opacity, lights Intensity and lines
// Points (in the node's local space).
type Node struct {
	Name      string
	Position  mgl64.Vec3
	Rotation  mgl64.Quat
	Visible   bool
	Opacity   float64
	Intensity float64
	Points    []mgl64.Vec3

	parent   *Node
	children []*Node
}

// NewNode returns a visible, opaque node at the origin.
func NewNode(name string) *Node {
	return &Node{
		Name:     name,
		Rotation: mgl64.QuatIdent(),
		Visible:  true,
		Opacity:  1,
	}
}

// Parent returns the node this one is attached to, or nil.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the attached nodes in insertion order.
func (n *Node) Children() []*Node {
	return n.children
}

// Add attaches child to n, detaching it from its previous parent first.
func (n *Node) Add(child *Node) {
	if child == nil || child == n {
		return
	}
	if child.parent != nil {
		child.parent.Remove(child)
	}
	child.parent = n
	n.children = append(n.children, child)
}

// Attach reparents child to n keeping its world pose.
func (n *Node) Attach(child *Node) {
	if child == nil || child == n {
		return
	}
	local := n.WorldMatrix().Inv().Mul4(child.WorldMatrix())
	child.Position = local.Col(3).Vec3()
	child.Rotation = mgl64.Mat4ToQuat(local).Normalize()
	n.Add(child)
}

// Remove detaches child. It reports whether child was attached to n.
func (n *Node) Remove(child *Node) bool {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i:i], n.children[i+1:]...)
			child.parent = nil
			return true
		}
	}
	return false
}

// Contains reports whether child is directly attached to n.
func (n *Node) Contains(child *Node) bool {
	return child != nil && child.parent == n
}

// LocalMatrix is translation * rotation.
func (n *Node) LocalMatrix() mgl64.Mat4 {
	return mgl64.Translate3D(n.Position.X(), n.Position.Y(), n.Position.Z()).Mul4(n.Rotation.Mat4())
}

// WorldMatrix composes the local matrices from the root down.
func (n *Node) WorldMatrix() mgl64.Mat4 {
	m := n.LocalMatrix()
	for p := n.parent; p != nil; p = p.parent {
		m = p.LocalMatrix().Mul4(m)
	}
	return m
}

// WorldQuaternion composes the rotations from the root down.
func (n *Node) WorldQuaternion() mgl64.Quat {
	q := n.Rotation
	for p := n.parent; p != nil; p = p.parent {
		q = p.Rotation.Mul(q)
	}
	return q
}

func (n *Node) WorldPosition() mgl64.Vec3 {
	return n.WorldMatrix().Col(3).Vec3()
}

// WorldDirection returns the unit vector the node points along (-Z) in world
// space.
func (n *Node) WorldDirection() mgl64.Vec3 {
	return n.WorldQuaternion().Rotate(forward).Normalize()
}

// WorldToLocal converts a world space point into n's local space.
func (n *Node) WorldToLocal(v mgl64.Vec3) mgl64.Vec3 {
	return n.WorldMatrix().Inv().Mul4x1(v.Vec4(1)).Vec3()
}

// RotateY turns the node about its parent's up axis.
func (n *Node) RotateY(angle float64) {
	n.Rotation = mgl64.QuatRotate(angle, Up).Mul(n.Rotation).Normalize()
}

// Yaw returns the heading of the node's local rotation in radians.
func (n *Node) Yaw() float64 {
	f := n.Rotation.Rotate(forward)
	return math.Atan2(-f.X(), -f.Z())
}
