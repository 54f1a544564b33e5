package scene

import "github.com/go-gl/mathgl/mgl64"

// EyeHeight is where the viewer's camera starts above the rig.
const EyeHeight = 1.6

const eyeSeparation = 0.064

// XR is the head-mounted display state. Cameras are the stereo sub-cameras
// and Head is the combined viewer pose they hang off.
type XR struct {
	Presenting bool
	Head       *Node
	Cameras    []*Node
}

// Scene is the attach point the playground adds its nodes to. Rig is the
// viewer's root transform: locomotion offsets go to its position and, when not
// presenting, snap turns to its rotation.
type Scene struct {
	Root   *Node
	Rig    *Node
	Camera *Node
	XR     XR
}

func New() *Scene {
	s := &Scene{
		Root:   NewNode("scene"),
		Rig:    NewNode("rig"),
		Camera: NewNode("camera"),
	}
	s.Root.Add(s.Rig)

	s.Camera.Position = mgl64.Vec3{0, EyeHeight, 0}
	s.Rig.Add(s.Camera)

	s.XR.Head = NewNode("xr-head")
	s.XR.Head.Position = mgl64.Vec3{0, EyeHeight, 0}
	s.Rig.Add(s.XR.Head)
	for i, name := range []string{"xr-eye-left", "xr-eye-right"} {
		eye := NewNode(name)
		eye.Position = mgl64.Vec3{(float64(i) - 0.5) * eyeSeparation, 0, 0}
		s.XR.Head.Add(eye)
		s.XR.Cameras = append(s.XR.Cameras, eye)
	}
	return s
}

// Add attaches a node to the scene root.
func (s *Scene) Add(n *Node) {
	s.Root.Add(n)
}

// Remove detaches a node from the scene root.
func (s *Scene) Remove(n *Node) bool {
	return s.Root.Remove(n)
}

// ViewerCamera is the camera whose pose stands for the viewer: the XR head
// while presenting, the desktop camera otherwise.
func (s *Scene) ViewerCamera() *Node {
	if s.XR.Presenting {
		return s.XR.Head
	}
	return s.Camera
}

// FeetPosition is the viewer camera's world position projected onto the
// ground.
func (s *Scene) FeetPosition() mgl64.Vec3 {
	p := s.ViewerCamera().WorldPosition()
	p[1] = 0
	return p
}

// Recenter clears every offset and turn accumulated on the rig and the
// stereo cameras.
func (s *Scene) Recenter() {
	s.Rig.Position = mgl64.Vec3{}
	s.Rig.Rotation = mgl64.QuatIdent()
	for _, cam := range s.XR.Cameras {
		cam.Rotation = mgl64.QuatIdent()
	}
}
