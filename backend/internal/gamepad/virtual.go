package gamepad

const (
	virtualButtons = 6
	virtualAxes    = 4
)

// VirtualDevice is a settable xr-standard device. It is driven from the debug
// feed and from tests.
type VirtualDevice struct {
	buttons []Button
	axes    []float64
}

// NewVirtualDevice returns a device with every button released and every
// axis centered.
func NewVirtualDevice() *VirtualDevice {
	return &VirtualDevice{
		buttons: make([]Button, virtualButtons),
		axes:    make([]float64, virtualAxes),
	}
}

func (d *VirtualDevice) Buttons() []Button {
	return d.buttons
}

func (d *VirtualDevice) Axes() []float64 {
	return d.axes
}

// SetButton sets the pressed state of a button. Out of range indices are
// ignored and reported as false.
func (d *VirtualDevice) SetButton(index int, pressed bool) bool {
	if index < 0 || index >= len(d.buttons) {
		return false
	}
	d.buttons[index].Pressed = pressed
	d.buttons[index].Touched = pressed
	if pressed {
		d.buttons[index].Value = 1
	} else {
		d.buttons[index].Value = 0
	}
	return true
}

// SetAxis sets an axis value, clamped to [-1, 1].
func (d *VirtualDevice) SetAxis(index int, value float64) bool {
	if index < 0 || index >= len(d.axes) {
		return false
	}
	if value > 1 {
		value = 1
	}
	if value < -1 {
		value = -1
	}
	d.axes[index] = value
	return true
}

// VirtualSource hands out VirtualDevices. It must only be used from the frame
// loop goroutine.
type VirtualSource struct {
	devices map[Hand]*VirtualDevice
	pending []DeviceEvent
}

func NewVirtualSource() *VirtualSource {
	return &VirtualSource{
		devices: make(map[Hand]*VirtualDevice),
	}
}

func (s *VirtualSource) Open() error {
	return nil
}

func (s *VirtualSource) Close() {}

// Connect binds a fresh device to hand. An already connected hand is
// replaced, as real hardware would be after a reconnect.
func (s *VirtualSource) Connect(hand Hand) *VirtualDevice {
	d := NewVirtualDevice()
	s.devices[hand] = d
	s.pending = append(s.pending, DeviceEvent{Type: Connected, Hand: hand, Device: d})
	return d
}

// Disconnect removes the device bound to hand.
func (s *VirtualSource) Disconnect(hand Hand) bool {
	if _, ok := s.devices[hand]; !ok {
		return false
	}
	delete(s.devices, hand)
	s.pending = append(s.pending, DeviceEvent{Type: Disconnected, Hand: hand})
	return true
}

// Device returns the device bound to hand, or nil.
func (s *VirtualSource) Device(hand Hand) *VirtualDevice {
	return s.devices[hand]
}

func (s *VirtualSource) Poll() []DeviceEvent {
	events := s.pending
	s.pending = nil
	return events
}
