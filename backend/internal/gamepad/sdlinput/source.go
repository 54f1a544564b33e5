//go:build sdl

package sdlinput

import (
	"fmt"
	"log"

	"github.com/jupiterrider/purego-sdl3/sdl"

	"github.com/soar/xrplayground/backend/internal/gamepad"
)

const available = true

// sdlButton describes where an xr-standard button comes from on a desktop
// joystick: either a plain button or a trigger axis.
type sdlButton struct {
	Button    int32
	Axis      int32
	IsTrigger bool
	RawMin    int16
	RawMax    int16
}

// sdlLayout presents an SDL joystick in xr-standard order.
var sdlLayout = struct {
	Buttons []sdlButton
	StickX  int32
	StickY  int32
}{
	Buttons: []sdlButton{
		{Axis: 5, IsTrigger: true, RawMin: -32768, RawMax: 32767}, // trigger <- RT
		{Button: 5}, // grab <- RB
		{Button: 7}, // stickX <- L3
		{Button: 8}, // stickY <- R3
		{Button: 0}, // x / a <- A
		{Button: 1}, // y / b <- B
	},
	StickX: 0,
	StickY: 1,
}

// Device is a joystick read through SDL3. Its values are refreshed by
// Source.Poll once per frame.
type Device struct {
	joystick *sdl.Joystick
	id       sdl.JoystickID
	name     string
	buttons  []gamepad.Button
	axes     []float64
}

func (d *Device) Buttons() []gamepad.Button {
	return d.buttons
}

func (d *Device) Axes() []float64 {
	return d.axes
}

// Name returns the name SDL reports for the joystick.
func (d *Device) Name() string {
	return d.name
}

func (d *Device) refresh() {
	js := d.joystick
	numButtons := sdl.GetNumJoystickButtons(js)
	for i, b := range sdlLayout.Buttons {
		if b.IsTrigger {
			v := gamepad.NormalizeTrigger(sdl.GetJoystickAxis(js, b.Axis), b.RawMin, b.RawMax)
			v = gamepad.ApplyDeadzone(v, gamepad.Deadzone)
			d.buttons[i] = gamepad.Button{Pressed: v >= 0.5, Touched: v > 0, Value: v}
			continue
		}
		pressed := b.Button < numButtons && sdl.GetJoystickButton(js, b.Button)
		d.buttons[i] = gamepad.Button{Pressed: pressed, Touched: pressed}
		if pressed {
			d.buttons[i].Value = 1
		}
	}

	// No touchpad on a desktop joystick; the stick is reported on axes 2/3
	// with up positive.
	d.axes[0], d.axes[1] = 0, 0
	d.axes[2] = gamepad.ApplyDeadzone(gamepad.NormalizeAxis(sdl.GetJoystickAxis(js, sdlLayout.StickX)), gamepad.Deadzone)
	d.axes[3] = gamepad.ApplyDeadzone(-gamepad.NormalizeAxis(sdl.GetJoystickAxis(js, sdlLayout.StickY)), gamepad.Deadzone)
}

// Source binds the first two SDL joysticks to the right and then the left
// hand. It must be opened, polled and closed on the same locked OS thread.
type Source struct {
	devices map[sdl.JoystickID]*Device
	hands   map[gamepad.Hand]sdl.JoystickID
	pending []gamepad.DeviceEvent
	logger  *log.Logger
}

func New(logger *log.Logger) *Source {
	if logger == nil {
		logger = log.Default()
	}
	return &Source{
		devices: make(map[sdl.JoystickID]*Device),
		hands:   make(map[gamepad.Hand]sdl.JoystickID),
		logger:  logger,
	}
}

// Open initializes the SDL joystick subsystem and binds joysticks that are
// already connected.
func (s *Source) Open() error {
	if !sdl.Init(sdl.InitJoystick) {
		return fmt.Errorf("sdl init: %s", sdl.GetError())
	}
	s.logger.Println("SDL3 Joystick subsystem initialized")

	for _, id := range sdl.GetJoysticks() {
		s.openJoystick(id)
	}
	return nil
}

// Close releases every joystick and shuts SDL down.
func (s *Source) Close() {
	for id, d := range s.devices {
		sdl.CloseJoystick(d.joystick)
		delete(s.devices, id)
	}
	for h := range s.hands {
		delete(s.hands, h)
	}
	sdl.Quit()
}

func (s *Source) Poll() []gamepad.DeviceEvent {
	var event sdl.Event
	for sdl.PollEvent(&event) {
		switch event.Type() {
		case sdl.EventJoystickAdded:
			s.openJoystick(event.JDevice().Which)
		case sdl.EventJoystickRemoved:
			s.removeJoystick(event.JDevice().Which)
		}
	}

	for _, id := range s.hands {
		d := s.devices[id]
		if d != nil && sdl.JoystickConnected(d.joystick) {
			d.refresh()
		}
	}

	events := s.pending
	s.pending = nil
	return events
}

func (s *Source) freeHand() (gamepad.Hand, bool) {
	for _, h := range []gamepad.Hand{gamepad.HandRight, gamepad.HandLeft} {
		if _, taken := s.hands[h]; !taken {
			return h, true
		}
	}
	return "", false
}

func (s *Source) openJoystick(instanceID sdl.JoystickID) {
	if _, exists := s.devices[instanceID]; exists {
		return
	}
	hand, ok := s.freeHand()
	if !ok {
		s.logger.Printf("Joystick %d ignored: both hands are bound", instanceID)
		return
	}

	js := sdl.OpenJoystick(instanceID)
	if js == nil {
		s.logger.Printf("Failed to open joystick %d: %s", instanceID, sdl.GetError())
		return
	}

	d := &Device{
		joystick: js,
		id:       sdl.GetJoystickID(js),
		name:     sdl.GetJoystickName(js),
		buttons:  make([]gamepad.Button, len(sdlLayout.Buttons)),
		axes:     make([]float64, 4),
	}
	s.devices[d.id] = d
	s.hands[hand] = d.id

	s.logger.Printf("Joystick connected: %s (VID=%04X PID=%04X) hand=%s axes=%d buttons=%d",
		d.name, sdl.GetJoystickVendor(js), sdl.GetJoystickProduct(js), hand,
		sdl.GetNumJoystickAxes(js), sdl.GetNumJoystickButtons(js))

	d.refresh()
	s.pending = append(s.pending, gamepad.DeviceEvent{Type: gamepad.Connected, Hand: hand, Device: d})
}

func (s *Source) removeJoystick(instanceID sdl.JoystickID) {
	d, exists := s.devices[instanceID]
	if !exists {
		return
	}

	s.logger.Printf("Joystick disconnected: %s", d.name)
	sdl.CloseJoystick(d.joystick)
	delete(s.devices, instanceID)

	for h, id := range s.hands {
		if id == instanceID {
			delete(s.hands, h)
			s.pending = append(s.pending, gamepad.DeviceEvent{Type: gamepad.Disconnected, Hand: h})
		}
	}
}
