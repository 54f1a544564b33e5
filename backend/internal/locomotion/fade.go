package locomotion

import (
	"log"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/soar/xrplayground/backend/internal/scene"
	"github.com/soar/xrplayground/backend/internal/session"
)

// FadeDuration is the length of each half of the blink.
const FadeDuration = 200 * time.Millisecond

type fadePhase uint8

const (
	fadeIdle fadePhase = iota
	fadeToBlack
	fadeToClear
)

// Fade hides a rig move behind a blink: the occluder in front of the camera
// goes opaque, the rig is moved, and the occluder clears again.
type Fade struct {
	occluder *scene.Node
	phase    fadePhase
	elapsed  time.Duration
	offset   mgl64.Vec3
	rig      *scene.Node
	done     func()
	logger   *log.Logger
}

// NewFade attaches a hidden occluder to the scene's camera.
func NewFade(sc *scene.Scene, logger *log.Logger) *Fade {
	if logger == nil {
		logger = log.Default()
	}
	occluder := scene.NewNode("blinker")
	occluder.Position = mgl64.Vec3{0, 0, -0.3}
	occluder.Visible = false
	occluder.Opacity = 0
	sc.Camera.Add(occluder)
	return &Fade{occluder: occluder, logger: logger}
}

// Init registers the per-frame tween step.
func (f *Fade) Init(s *session.Session) session.Hooks {
	return session.Hooks{Render: f.Update}
}

// Occluder is the full-screen node being faded.
func (f *Fade) Occluder() *scene.Node {
	return f.occluder
}

// Active reports whether a blink is in progress.
func (f *Fade) Active() bool {
	return f.phase != fadeIdle
}

// Locomotion starts a blink that adds offset to rig's position while the
// screen is black. done, if not nil, runs once after the occluder has cleared.
// A request made while a blink is running is dropped and reported as false.
func (f *Fade) Locomotion(offset mgl64.Vec3, rig *scene.Node, done func()) bool {
	if f.Active() {
		f.logger.Printf("fade: locomotion by %v dropped, a fade is already running", offset)
		return false
	}
	f.offset = offset
	f.rig = rig
	f.done = done
	f.elapsed = 0
	f.phase = fadeToBlack
	f.occluder.Visible = true
	f.occluder.Opacity = 0
	return true
}

// Update advances the blink by dt.
func (f *Fade) Update(dt time.Duration) {
	if f.phase == fadeIdle {
		return
	}
	f.elapsed += dt
	k := float64(f.elapsed) / float64(FadeDuration)
	if k > 1 {
		k = 1
	}

	switch f.phase {
	case fadeToBlack:
		f.occluder.Opacity = quadraticOut(k)
		if k < 1 {
			return
		}
		f.rig.Position = f.rig.Position.Add(f.offset)
		f.phase = fadeToClear
		f.elapsed = 0

	case fadeToClear:
		f.occluder.Opacity = 1 - k
		if k < 1 {
			return
		}
		f.occluder.Visible = false
		f.phase = fadeIdle
		f.rig = nil
		if done := f.done; done != nil {
			f.done = nil
			done()
		}
	}
}

func quadraticOut(k float64) float64 {
	return k * (2 - k)
}
