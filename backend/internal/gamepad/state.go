package gamepad

import (
	"errors"
	"fmt"
)

// Hand is the handedness label a device is bound to.
type Hand string

const (
	HandLeft  Hand = "left"
	HandRight Hand = "right"
)

// ErrUnknownHand is returned when a handedness label is neither left nor right.
var ErrUnknownHand = errors.New("unknown hand")

// ParseHand converts a handedness label to a Hand.
func ParseHand(s string) (Hand, error) {
	switch Hand(s) {
	case HandLeft, HandRight:
		return Hand(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownHand, s)
}

// Button is one raw hardware button record.
type Button struct {
	Pressed bool    `json:"pressed"`
	Touched bool    `json:"touched"`
	Value   float64 `json:"value"`
}

// Device is a bound piece of input hardware. Buttons and Axes return the
// values observed for the current frame, in hardware index order. Axis
// values are in [-1, 1].
type Device interface {
	Buttons() []Button
	Axes() []float64
}

// EventType is the kind of a hardware binding change.
type EventType uint8

const (
	Connected EventType = iota
	Disconnected
)

func (t EventType) String() string {
	switch t {
	case Connected:
		return "connected"
	case Disconnected:
		return "disconnected"
	}
	return fmt.Sprintf("EventType(%d)", uint8(t))
}

// DeviceEvent reports that a device was bound to, or removed from, a hand.
// Device is nil for Disconnected.
type DeviceEvent struct {
	Type   EventType
	Hand   Hand
	Device Device
}

// Source is the hardware collaborator. Open and Close bracket its use, Poll is
// called once per frame on the frame loop goroutine and returns the binding
// changes since the previous call. Bound devices are refreshed by Poll.
type Source interface {
	Open() error
	Poll() []DeviceEvent
	Close()
}
