package hub

import (
	"errors"
	"fmt"

	"github.com/soar/xrplayground/backend/internal/gamepad"
	"github.com/soar/xrplayground/backend/internal/session"
)

var (
	ErrUnknownCommand       = errors.New("unknown command")
	ErrVirtualInputDisabled = errors.New("virtual input is disabled")
	ErrBadIndex             = errors.New("index out of range")
	ErrBusy                 = errors.New("frame loop busy")
)

// InputCommander turns debug client commands into frame loop calls. Input
// commands drive the virtual source and are rejected when the session reads
// real hardware.
type InputCommander struct {
	session *session.Session
	source  *gamepad.VirtualSource
}

// NewInputCommander creates a commander. source is nil when the session is
// not using virtual input.
func NewInputCommander(s *session.Session, source *gamepad.VirtualSource) *InputCommander {
	return &InputCommander{session: s, source: source}
}

func (c *InputCommander) Apply(msg ClientMessage) error {
	var fn func()
	switch msg.Type {
	case "enter_vr":
		fn = c.session.EnterVR
	case "exit_vr":
		fn = c.session.ExitVR
	case "recenter":
		fn = c.session.Recenter
	case "connect", "disconnect", "button", "axis":
		var err error
		if fn, err = c.inputCall(msg); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, msg.Type)
	}

	if !c.session.Do(fn) {
		return ErrBusy
	}
	return nil
}

func (c *InputCommander) inputCall(msg ClientMessage) (func(), error) {
	if c.source == nil {
		return nil, ErrVirtualInputDisabled
	}
	hand, err := gamepad.ParseHand(msg.Hand)
	if err != nil {
		return nil, err
	}
	mapping := gamepad.GetMapping(hand)
	logger := c.session.Logger()

	switch msg.Type {
	case "connect":
		return func() { c.source.Connect(hand) }, nil

	case "disconnect":
		return func() {
			if !c.source.Disconnect(hand) {
				logger.Printf("virtual %s controller is not connected", hand)
			}
		}, nil

	case "button":
		if _, ok := mapping.ButtonName(msg.Index); !ok {
			return nil, fmt.Errorf("%w: button %d", ErrBadIndex, msg.Index)
		}
		return func() {
			dev := c.source.Device(hand)
			if dev == nil {
				logger.Printf("virtual %s controller is not connected, button %d ignored", hand, msg.Index)
				return
			}
			dev.SetButton(msg.Index, msg.Pressed)
		}, nil

	default:
		if _, ok := mapping.AxisName(msg.Index); !ok {
			return nil, fmt.Errorf("%w: axis %d", ErrBadIndex, msg.Index)
		}
		return func() {
			dev := c.source.Device(hand)
			if dev == nil {
				logger.Printf("virtual %s controller is not connected, axis %d ignored", hand, msg.Index)
				return
			}
			dev.SetAxis(msg.Index, msg.Value)
		}, nil
	}
}
