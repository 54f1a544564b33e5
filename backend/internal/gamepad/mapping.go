package gamepad

import (
	"fmt"
	"math"
)

// ButtonsIndices maps semantic button names to xr-standard button indices.
// x/y live on the left controller and a/b on the right one, so they share
// indices.
var ButtonsIndices = map[string]int{
	"trigger": 0,
	"grab":    1,
	"stickX":  2,
	"stickY":  3,
	"x":       4,
	"y":       5,
	"a":       4,
	"b":       5,
}

// AxesIndices maps semantic axis names to xr-standard axis indices.
var AxesIndices = map[string]int{
	"touchX": 0,
	"touchY": 1,
	"x":      2,
	"y":      3,
}

// ButtonMapping defines how a raw button index maps to a semantic name.
type ButtonMapping struct {
	Index  int
	Target string
}

// AxisMapping defines how a raw axis index maps to a semantic name.
type AxisMapping struct {
	Index  int
	Target string
}

// DeviceMapping holds the complete mapping for one hand. The index -> name
// tables are built once when the mapping is created.
type DeviceMapping struct {
	Name    string
	Hand    Hand
	Axes    []AxisMapping
	Buttons []ButtonMapping

	buttonNames []string
	axisNames   []string
}

func newDeviceMapping(name string, hand Hand, buttons []ButtonMapping, axes []AxisMapping) *DeviceMapping {
	m := &DeviceMapping{
		Name:    name,
		Hand:    hand,
		Axes:    axes,
		Buttons: buttons,
	}
	m.buttonNames = nameTable(name, buttons, func(b ButtonMapping) (int, string) { return b.Index, b.Target })
	m.axisNames = nameTable(name, axes, func(a AxisMapping) (int, string) { return a.Index, a.Target })
	return m
}

// nameTable lays the mappings out as a slice indexed by raw index. The
// mappings are static so a duplicate is a programming error.
func nameTable[T any](mapping string, entries []T, split func(T) (int, string)) []string {
	size := 0
	for _, e := range entries {
		idx, _ := split(e)
		if idx+1 > size {
			size = idx + 1
		}
	}
	table := make([]string, size)
	for _, e := range entries {
		idx, target := split(e)
		if idx < 0 {
			panic(fmt.Sprintf("gamepad: mapping %s: negative index for %s", mapping, target))
		}
		if table[idx] != "" {
			panic(fmt.Sprintf("gamepad: mapping %s: index %d mapped to both %s and %s", mapping, idx, table[idx], target))
		}
		table[idx] = target
	}
	return table
}

// ButtonName resolves a raw button index to its semantic name.
func (m *DeviceMapping) ButtonName(index int) (string, bool) {
	return lookup(m.buttonNames, index)
}

// AxisName resolves a raw axis index to its semantic name.
func (m *DeviceMapping) AxisName(index int) (string, bool) {
	return lookup(m.axisNames, index)
}

func lookup(table []string, index int) (string, bool) {
	if index < 0 || index >= len(table) || table[index] == "" {
		return "", false
	}
	return table[index], true
}

func handButtons(face4, face5 string) []ButtonMapping {
	return []ButtonMapping{
		{Index: ButtonsIndices["trigger"], Target: "trigger"},
		{Index: ButtonsIndices["grab"], Target: "grab"},
		{Index: ButtonsIndices["stickX"], Target: "stickX"},
		{Index: ButtonsIndices["stickY"], Target: "stickY"},
		{Index: ButtonsIndices[face4], Target: face4},
		{Index: ButtonsIndices[face5], Target: face5},
	}
}

var xrStandardAxes = []AxisMapping{
	{Index: AxesIndices["touchX"], Target: "touchX"},
	{Index: AxesIndices["touchY"], Target: "touchY"},
	{Index: AxesIndices["x"], Target: "x"},
	{Index: AxesIndices["y"], Target: "y"},
}

var leftMapping = newDeviceMapping("xr-standard-left", HandLeft, handButtons("x", "y"), xrStandardAxes)

var rightMapping = newDeviceMapping("xr-standard-right", HandRight, handButtons("a", "b"), xrStandardAxes)

// GetMapping returns the semantic mapping for a hand.
func GetMapping(hand Hand) *DeviceMapping {
	if hand == HandLeft {
		return leftMapping
	}
	return rightMapping
}

// NormalizeAxis converts a raw axis value (-32768..32767) to -1.0..1.0.
func NormalizeAxis(raw int16) float64 {
	v := float64(raw) / math.MaxInt16
	if v < -1.0 {
		v = -1.0
	}
	return v
}

// NormalizeTrigger converts a raw trigger value to 0.0..1.0.
func NormalizeTrigger(raw int16, rawMin, rawMax int16) float64 {
	if rawMax == rawMin {
		return 0
	}
	v := (float64(raw) - float64(rawMin)) / (float64(rawMax) - float64(rawMin))
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return v
}

// Deadzone is the stick and trigger threshold used for hardware input.
const Deadzone = 0.05

// ApplyDeadzone returns 0 if the value is within the deadzone threshold.
func ApplyDeadzone(v float64, threshold float64) float64 {
	if math.Abs(v) < threshold {
		return 0
	}
	return v
}
