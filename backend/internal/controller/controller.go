// Package controller turns per-frame hardware snapshots of the two hand
// controllers into named edge events.
package controller

import (
	"log"

	"github.com/soar/xrplayground/backend/internal/gamepad"
	"github.com/soar/xrplayground/backend/internal/scene"
)

// Controller is the facade for one hand: the bound device, the edge state
// derived from it and the event channel subscribers listen on.
type Controller struct {
	index    int
	hand     gamepad.Hand
	mapping  *gamepad.DeviceMapping
	node     *scene.Node
	grip     *scene.Node
	device   gamepad.Device
	detector *Detector
	events   Channel
	logger   *log.Logger
	verbose  bool
}

// New creates a facade. node is the target-ray space the controller points
// with and grip the space its model is held in.
func New(index int, hand gamepad.Hand, node, grip *scene.Node, logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.Default()
	}
	return &Controller{
		index:    index,
		hand:     hand,
		mapping:  gamepad.GetMapping(hand),
		node:     node,
		grip:     grip,
		detector: NewDetector(),
		logger:   logger,
	}
}

func (c *Controller) Index() int {
	return c.index
}

func (c *Controller) Name() string {
	return string(c.hand)
}

func (c *Controller) Hand() gamepad.Hand {
	return c.hand
}

func (c *Controller) Mapping() *gamepad.DeviceMapping {
	return c.mapping
}

// Node is the target-ray space node.
func (c *Controller) Node() *scene.Node {
	return c.node
}

// Grip is the grip space node.
func (c *Controller) Grip() *scene.Node {
	return c.grip
}

// Events is the channel the controller's semantic events are emitted on.
func (c *Controller) Events() *Channel {
	return &c.events
}

// Device returns the bound hardware, or nil while disconnected.
func (c *Controller) Device() gamepad.Device {
	return c.device
}

func (c *Controller) Connected() bool {
	return c.device != nil
}

// SetVerbose logs every dispatched event when on.
func (c *Controller) SetVerbose(on bool) {
	c.verbose = on
}

// Bind replaces the hardware binding. nil unbinds. Recorded state is dropped
// so the next snapshot only sets a new baseline.
func (c *Controller) Bind(dev gamepad.Device) {
	c.device = dev
	c.detector.Reset()
}

// IsButtonPressed reports the release pulse of a raw button for the current
// frame.
func (c *Controller) IsButtonPressed(index int) bool {
	s, ok := c.detector.Button(index)
	return ok && s.Pressed
}

// ButtonState returns the recorded state of a raw button.
func (c *Controller) ButtonState(index int) (ButtonState, bool) {
	return c.detector.Button(index)
}

// AxisValue returns the last recorded value of a raw axis.
func (c *Controller) AxisValue(index int) (float64, bool) {
	return c.detector.Axis(index)
}

// Update reads the bound device once and dispatches the resulting events.
// It is a no-op while disconnected.
func (c *Controller) Update() {
	if c.device == nil {
		return
	}

	for _, tr := range c.detector.Detect(c.device.Buttons(), c.device.Axes()) {
		var (
			name string
			ok   bool
		)
		if tr.Kind.IsAxis() {
			name, ok = c.mapping.AxisName(tr.Index)
		} else {
			name, ok = c.mapping.ButtonName(tr.Index)
		}
		if !ok {
			c.logger.Printf("controller %s: no name for %s index %d in mapping %s, %s event dropped",
				c.hand, inputKind(tr.Kind), tr.Index, c.mapping.Name, tr.Kind)
			continue
		}

		ev := Event{
			Kind:       tr.Kind,
			Name:       name,
			Index:      tr.Index,
			Value:      tr.Value,
			Controller: c,
		}
		if c.verbose {
			c.logger.Printf("controller %s: %s value=%.3f", c.hand, ev, ev.Value)
		}
		c.events.Emit(ev)
	}
}

func inputKind(k Kind) string {
	if k.IsAxis() {
		return "axis"
	}
	return "button"
}
