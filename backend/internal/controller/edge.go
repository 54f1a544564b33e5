package controller

import (
	"math"

	"github.com/soar/xrplayground/backend/internal/gamepad"
)

// axisMiddle is the magnitude an axis has to reach for moveMiddle.
const axisMiddle = 0.5

// ButtonState is the recorded state of one button. Pressed is a one-frame
// pulse: it is true only for the update in which the button was released.
type ButtonState struct {
	Index          int
	LastRawPressed bool
	Pressed        bool
}

// Transition is a detected edge on a raw index, before name resolution.
type Transition struct {
	Kind  Kind
	Index int
	Value float64
}

// Detector turns consecutive raw snapshots into transitions. The first value
// seen for an index only establishes a baseline.
type Detector struct {
	buttons map[int]*ButtonState
	axes    map[int]float64
	out     []Transition
}

func NewDetector() *Detector {
	return &Detector{
		buttons: make(map[int]*ButtonState),
		axes:    make(map[int]float64),
	}
}

// Reset forgets every recorded value.
func (d *Detector) Reset() {
	clear(d.buttons)
	clear(d.axes)
	d.out = d.out[:0]
}

// Button returns the recorded state of a button.
func (d *Detector) Button(index int) (ButtonState, bool) {
	s, ok := d.buttons[index]
	if !ok {
		return ButtonState{}, false
	}
	return *s, true
}

// Axis returns the recorded value of an axis.
func (d *Detector) Axis(index int) (float64, bool) {
	v, ok := d.axes[index]
	return v, ok
}

// Detect records the snapshot and returns the transitions it caused, buttons
// first, each in index order. The returned slice is reused by the next call.
func (d *Detector) Detect(buttons []gamepad.Button, axes []float64) []Transition {
	d.out = d.out[:0]

	for i, b := range buttons {
		now := b.Pressed
		s, ok := d.buttons[i]
		if !ok {
			d.buttons[i] = &ButtonState{Index: i, LastRawPressed: now}
			continue
		}
		s.Pressed = s.LastRawPressed && !now
		switch {
		case !s.LastRawPressed && now:
			d.out = append(d.out, Transition{Kind: ButtonDown, Index: i})
		case s.LastRawPressed && !now:
			d.out = append(d.out, Transition{Kind: ButtonUp, Index: i})
		}
		s.LastRawPressed = now
	}

	for i, v := range axes {
		prev, ok := d.axes[i]
		d.axes[i] = v
		if !ok || v == prev {
			continue
		}
		d.out = append(d.out, Transition{Kind: AxisMove, Index: i, Value: v})
		if prev == 0 {
			d.out = append(d.out, Transition{Kind: AxisMoveStart, Index: i, Value: v})
		}
		if math.Abs(prev) < axisMiddle && math.Abs(v) >= axisMiddle {
			d.out = append(d.out, Transition{Kind: AxisMoveMiddle, Index: i, Value: v})
		}
		if v == 0 {
			d.out = append(d.out, Transition{Kind: AxisMoveEnd, Index: i, Value: v})
		}
	}

	return d.out
}
