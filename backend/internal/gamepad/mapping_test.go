package gamepad

import (
	"errors"
	"testing"
)

func TestMappingResolvesPerHand(t *testing.T) {
	tests := []struct {
		hand  Hand
		index int
		want  string
	}{
		{HandLeft, 0, "trigger"},
		{HandLeft, 1, "grab"},
		{HandLeft, 4, "x"},
		{HandLeft, 5, "y"},
		{HandRight, 0, "trigger"},
		{HandRight, 3, "stickY"},
		{HandRight, 4, "a"},
		{HandRight, 5, "b"},
	}

	for _, tt := range tests {
		got, ok := GetMapping(tt.hand).ButtonName(tt.index)
		if !ok || got != tt.want {
			t.Errorf("%s button %d: got %q (%v), want %q", tt.hand, tt.index, got, ok, tt.want)
		}
	}
}

func TestMappingAxes(t *testing.T) {
	for _, hand := range []Hand{HandLeft, HandRight} {
		m := GetMapping(hand)
		for name, idx := range AxesIndices {
			got, ok := m.AxisName(idx)
			if !ok || got != name {
				t.Errorf("%s axis %d: got %q (%v), want %q", hand, idx, got, ok, name)
			}
		}
	}
}

func TestMappingMiss(t *testing.T) {
	m := GetMapping(HandLeft)
	for _, idx := range []int{-1, 6, 42} {
		if name, ok := m.ButtonName(idx); ok {
			t.Errorf("button %d resolved to %q, want miss", idx, name)
		}
	}
	if name, ok := m.AxisName(4); ok {
		t.Errorf("axis 4 resolved to %q, want miss", name)
	}
}

func TestNameTableRejectsDuplicates(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for duplicate index")
		}
	}()
	newDeviceMapping("broken", HandLeft, []ButtonMapping{
		{Index: 4, Target: "x"},
		{Index: 4, Target: "a"},
	}, nil)
}

func TestParseHand(t *testing.T) {
	if h, err := ParseHand("left"); err != nil || h != HandLeft {
		t.Errorf("ParseHand(left) = %q, %v", h, err)
	}
	if h, err := ParseHand("right"); err != nil || h != HandRight {
		t.Errorf("ParseHand(right) = %q, %v", h, err)
	}
	if _, err := ParseHand("middle"); !errors.Is(err, ErrUnknownHand) {
		t.Errorf("ParseHand(middle) error = %v, want ErrUnknownHand", err)
	}
}

func TestNormalize(t *testing.T) {
	if v := NormalizeAxis(-32768); v != -1 {
		t.Errorf("NormalizeAxis(min) = %v", v)
	}
	if v := NormalizeAxis(32767); v != 1 {
		t.Errorf("NormalizeAxis(max) = %v", v)
	}
	if v := NormalizeTrigger(-32768, -32768, 32767); v != 0 {
		t.Errorf("NormalizeTrigger(min) = %v", v)
	}
	if v := NormalizeTrigger(32767, -32768, 32767); v != 1 {
		t.Errorf("NormalizeTrigger(max) = %v", v)
	}
	if v := ApplyDeadzone(0.01, Deadzone); v != 0 {
		t.Errorf("ApplyDeadzone(0.01) = %v", v)
	}
	if v := ApplyDeadzone(-0.5, Deadzone); v != -0.5 {
		t.Errorf("ApplyDeadzone(-0.5) = %v", v)
	}
}
