// Package locomotion implements teleport aiming with a ballistic guide, snap
// turning and the blink that hides the move.
package locomotion

import (
	"log"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/soar/xrplayground/backend/internal/controller"
	"github.com/soar/xrplayground/backend/internal/gamepad"
	"github.com/soar/xrplayground/backend/internal/scene"
	"github.com/soar/xrplayground/backend/internal/session"
)

// SnapTurn is the yaw applied per turn flick.
const SnapTurn = math.Pi / 4

// State is the teleport state.
type State uint8

const (
	Idle State = iota
	Aiming
)

func (s State) String() string {
	if s == Aiming {
		return "aiming"
	}
	return "idle"
}

// Teleport aims with the vertical stick of one controller and snap turns
// with the horizontal stick of the other.
type Teleport struct {
	aimHand  gamepad.Hand
	turnHand gamepad.Hand
	fade     *Fade

	scene   *scene.Scene
	logger  *log.Logger
	guiding *controller.Controller

	guideline   *scene.Node
	guideLight  *scene.Node
	guideSprite *scene.Node

	trajectory    Trajectory
	hasTrajectory bool
	commits       int
}

// NewTeleport builds the guide visuals. They are attached only while aiming.
func NewTeleport(aimHand, turnHand gamepad.Hand, fade *Fade) *Teleport {
	guideline := scene.NewNode("guideline")
	guideline.Points = make([]mgl64.Vec3, LineSegments+1)

	guideLight := scene.NewNode("guide-light")
	guideLight.Intensity = 0

	guideSprite := scene.NewNode("guide-target")
	guideSprite.Rotation = mgl64.QuatRotate(-math.Pi/2, mgl64.Vec3{1, 0, 0})

	return &Teleport{
		aimHand:     aimHand,
		turnHand:    turnHand,
		fade:        fade,
		guideline:   guideline,
		guideLight:  guideLight,
		guideSprite: guideSprite,
	}
}

// Init subscribes to the aim and turn controllers.
func (t *Teleport) Init(s *session.Session) session.Hooks {
	t.scene = s.Scene()
	t.logger = s.Logger()

	aim := s.Controllers().ByHand(t.aimHand)
	aim.Events().On(controller.AxisMoveMiddle, "y", t.handleUp)
	aim.Events().On(controller.AxisMoveEnd, "y", t.handleUpEnd)

	turn := s.Controllers().ByHand(t.turnHand)
	turn.Events().On(controller.AxisMoveMiddle, "x", t.handleRotation)

	return session.Hooks{Render: t.Render}
}

func (t *Teleport) State() State {
	if t.guiding == nil {
		return Idle
	}
	return Aiming
}

// Guiding returns the controller currently aiming, or nil.
func (t *Teleport) Guiding() *controller.Controller {
	return t.guiding
}

// Trajectory returns the guide arc computed by the last Render, if any.
func (t *Teleport) Trajectory() (Trajectory, bool) {
	return t.trajectory, t.hasTrajectory
}

// Commits is the number of teleports handed to the fade.
func (t *Teleport) Commits() int {
	return t.commits
}

func (t *Teleport) Guideline() *scene.Node {
	return t.guideline
}

func (t *Teleport) GuideLight() *scene.Node {
	return t.guideLight
}

func (t *Teleport) GuideSprite() *scene.Node {
	return t.guideSprite
}

func (t *Teleport) handleUp(e controller.Event) {
	if e.Value <= 0 || t.guiding != nil {
		return
	}
	t.logger.Printf("teleport: guide started on %s controller", e.Controller.Name())
	t.guiding = e.Controller
	t.hasTrajectory = false

	t.guideLight.Intensity = 1
	t.guiding.Node().Add(t.guideline)
	t.scene.Add(t.guideLight)
	t.scene.Add(t.guideSprite)
}

func (t *Teleport) handleUpEnd(e controller.Event) {
	if t.guiding == nil {
		return
	}

	node := t.guiding.Node()
	tr, err := NewTrajectory(node.WorldPosition(), node.WorldDirection())
	if err != nil {
		t.logger.Printf("teleport: not moving, %v", err)
	} else {
		offset := tr.Impact().Sub(t.scene.FeetPosition())
		if t.fade.Locomotion(offset, t.scene.Rig, nil) {
			t.commits++
			t.logger.Printf("teleport: moving rig by %.2f, %.2f, %.2f", offset.X(), offset.Y(), offset.Z())
		}
	}

	t.guideLight.Intensity = 0
	node.Remove(t.guideline)
	t.scene.Remove(t.guideLight)
	t.scene.Remove(t.guideSprite)
	t.guiding = nil
	t.hasTrajectory = false
}

func (t *Teleport) handleRotation(e controller.Event) {
	delta := 1.0
	if e.Value > 0 {
		delta = -1
	}
	turn := delta * SnapTurn

	if t.scene.XR.Presenting {
		for _, cam := range t.scene.XR.Cameras {
			cam.RotateY(turn)
		}
	} else {
		t.scene.Rig.RotateY(turn)
	}
}

// Render recomputes the guide while aiming. A pose that never reaches the
// ground leaves the previous guide in place.
func (t *Teleport) Render(time.Duration) {
	if t.guiding == nil {
		return
	}

	node := t.guiding.Node()
	tr, err := NewTrajectory(node.WorldPosition(), node.WorldDirection())
	if err != nil {
		return
	}
	t.trajectory = tr
	t.hasTrajectory = true

	samples := tr.Samples(LineSegments)
	t.guideline.Points[0] = mgl64.Vec3{}
	for i := 1; i <= LineSegments; i++ {
		t.guideline.Points[i] = node.WorldToLocal(samples[i])
	}

	marker := tr.Marker()
	t.guideLight.Position = marker
	t.guideSprite.Position = marker
}
