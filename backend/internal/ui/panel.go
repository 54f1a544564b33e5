// Package ui holds the in-world controller debug panel.
package ui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/soar/xrplayground/backend/internal/controller"
	"github.com/soar/xrplayground/backend/internal/gamepad"
	"github.com/soar/xrplayground/backend/internal/scene"
	"github.com/soar/xrplayground/backend/internal/session"
)

// Panel shows the raw button records of one controller on a board attached
// to it. The toggle button's release pulse shows or hides it.
type Panel struct {
	hand   gamepad.Hand
	toggle string
	node   *scene.Node
	source *controller.Controller
	text   string
}

// NewPanel creates a panel for hand, toggled by the named button.
func NewPanel(hand gamepad.Hand, toggle string) *Panel {
	node := scene.NewNode("buttons-panel")
	node.Position = mgl64.Vec3{0.35, 0.15, 0}
	node.Rotation = mgl64.QuatRotate(mgl64.DegToRad(-25), mgl64.Vec3{1, 0, 0})
	return &Panel{
		hand:   hand,
		toggle: toggle,
		node:   node,
		text:   "controller buttons",
	}
}

func (p *Panel) Init(s *session.Session) session.Hooks {
	p.source = s.Controllers().ByHand(p.hand)
	p.source.Node().Add(p.node)
	return session.Hooks{Render: p.update}
}

// Node is the panel board.
func (p *Panel) Node() *scene.Node {
	return p.node
}

func (p *Panel) Visible() bool {
	return p.node.Visible
}

// Text is the content rendered on the board.
func (p *Panel) Text() string {
	return p.text
}

func (p *Panel) update(time.Duration) {
	if idx, ok := gamepad.ButtonsIndices[p.toggle]; ok && p.source.IsButtonPressed(idx) {
		p.node.Visible = !p.node.Visible
	}

	dev := p.source.Device()
	if dev == nil {
		return
	}
	p.text = FormatButtons(p.source.Name(), dev.Buttons())
}

// FormatButtons renders one line per button record under a title line.
func FormatButtons(title string, buttons []gamepad.Button) string {
	var b strings.Builder
	b.WriteString(title)
	for i, btn := range buttons {
		fmt.Fprintf(&b, "\n%d: pressed:%s touched:%s value:%v",
			i, boolToStr(btn.Pressed), boolToStr(btn.Touched), oneDecimalTrunc(btn.Value))
	}
	return b.String()
}

func boolToStr(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

func oneDecimalTrunc(x float64) float64 {
	return math.Trunc(x*10) / 10
}
