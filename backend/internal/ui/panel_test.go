package ui

import (
	"io"
	"log"
	"testing"
	"time"

	"github.com/soar/xrplayground/backend/internal/gamepad"
	"github.com/soar/xrplayground/backend/internal/scene"
	"github.com/soar/xrplayground/backend/internal/session"
)

func TestFormatButtons(t *testing.T) {
	got := FormatButtons("left", []gamepad.Button{
		{Pressed: true, Touched: true, Value: 1},
		{Touched: true, Value: 0.37},
	})
	want := "left\n0: pressed:1 touched:1 value:1\n1: pressed:0 touched:1 value:0.3"
	if got != want {
		t.Errorf("got %q\nwant %q", got, want)
	}
}

func TestPanelToggleOnRelease(t *testing.T) {
	src := gamepad.NewVirtualSource()
	s := session.New(scene.New(), src, session.WithLogger(log.New(io.Discard, "", 0)))
	p := NewPanel(gamepad.HandLeft, "y")
	s.Setup(p)

	if p.Node().Parent() != s.Controllers().Left().Node() {
		t.Fatal("panel not attached to the left controller")
	}

	dev := src.Connect(gamepad.HandLeft)
	s.Frame(time.Millisecond)
	if !p.Visible() {
		t.Fatal("panel should start visible")
	}

	y := gamepad.ButtonsIndices["y"]
	dev.SetButton(y, true)
	s.Frame(time.Millisecond)
	if !p.Visible() {
		t.Error("panel toggled on press")
	}
	dev.SetButton(y, false)
	s.Frame(time.Millisecond)
	if p.Visible() {
		t.Error("panel did not toggle on release")
	}
	s.Frame(time.Millisecond)
	if p.Visible() {
		t.Error("panel toggled again without a new release")
	}

	if p.Text() != FormatButtons("left", dev.Buttons()) {
		t.Errorf("text = %q", p.Text())
	}
}
