package controller

import (
	"log"

	"github.com/soar/xrplayground/backend/internal/gamepad"
	"github.com/soar/xrplayground/backend/internal/scene"
)

// Hardware controller numbering: the right hand is slot 0, the left slot 1.
const (
	RightIndex = 0
	LeftIndex  = 1
)

// Registry holds the two facades for the session. Facades are never added
// or removed; connects and disconnects only rebind them.
type Registry struct {
	left   *Controller
	right  *Controller
	logger *log.Logger
}

// NewRegistry creates both facades and attaches their nodes to the rig.
func NewRegistry(sc *scene.Scene, logger *log.Logger) *Registry {
	if logger == nil {
		logger = log.Default()
	}
	setup := func(index int, hand gamepad.Hand) *Controller {
		node := scene.NewNode("controller-" + string(hand))
		grip := scene.NewNode("grip-" + string(hand))
		sc.Rig.Add(node)
		sc.Rig.Add(grip)
		return New(index, hand, node, grip, logger)
	}
	return &Registry{
		right:  setup(RightIndex, gamepad.HandRight),
		left:   setup(LeftIndex, gamepad.HandLeft),
		logger: logger,
	}
}

func (r *Registry) Left() *Controller {
	return r.left
}

func (r *Registry) Right() *Controller {
	return r.right
}

// ByHand returns the facade for a hand.
func (r *Registry) ByHand(hand gamepad.Hand) *Controller {
	if hand == gamepad.HandLeft {
		return r.left
	}
	return r.right
}

// ByIndex returns the facade for a hardware slot, or nil.
func (r *Registry) ByIndex(index int) *Controller {
	switch index {
	case LeftIndex:
		return r.left
	case RightIndex:
		return r.right
	}
	return nil
}

// All returns both facades in update order.
func (r *Registry) All() [2]*Controller {
	return [2]*Controller{r.left, r.right}
}

// HandleDeviceEvent rebinds the facade named by the event's handedness.
func (r *Registry) HandleDeviceEvent(ev gamepad.DeviceEvent) {
	c := r.ByHand(ev.Hand)
	switch ev.Type {
	case gamepad.Connected:
		c.Bind(ev.Device)
		r.logger.Printf("controller %s connected (slot %d)", c.Name(), c.Index())
	case gamepad.Disconnected:
		c.Bind(nil)
		r.logger.Printf("controller %s disconnected (slot %d)", c.Name(), c.Index())
	}
}

// Update refreshes the left and then the right facade. Call once per frame
// before anything reads controller state.
func (r *Registry) Update() {
	r.left.Update()
	r.right.Update()
}
