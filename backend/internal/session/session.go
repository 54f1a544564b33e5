// Package session owns everything one playground run needs: the scene, the
// controller registry, the hardware source and the samples layered on top.
// It drives them from a single frame loop.
package session

import (
	"context"
	"fmt"
	"log"
	"runtime"
	"time"

	"github.com/soar/xrplayground/backend/internal/controller"
	"github.com/soar/xrplayground/backend/internal/gamepad"
	"github.com/soar/xrplayground/backend/internal/scene"
)

const (
	defaultFrameRate = 72
	postedQueueSize  = 256
)

// Hooks are the callbacks a sample registers. Render runs every frame after
// the controllers are updated; EnterVR and ExitVR run when presentation
// starts or stops. Any of them may be nil.
type Hooks struct {
	Render  func(dt time.Duration)
	EnterVR func()
	ExitVR  func()
}

// Sample is an interactive feature layered on the session.
type Sample interface {
	Init(s *Session) Hooks
}

// SampleFunc adapts a function to Sample.
type SampleFunc func(s *Session) Hooks

func (f SampleFunc) Init(s *Session) Hooks {
	return f(s)
}

// Option configures a Session.
type Option func(*Session)

func WithLogger(logger *log.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithFrameRate sets the rate Run drives frames at.
func WithFrameRate(fps int) Option {
	return func(s *Session) {
		if fps > 0 {
			s.frameRate = fps
		}
	}
}

// WithVerbose logs every controller event.
func WithVerbose(on bool) Option {
	return func(s *Session) {
		s.verbose = on
	}
}

// Session is the explicitly owned state of one run. All of its methods
// except Do must be called from the frame loop goroutine.
type Session struct {
	scene       *scene.Scene
	controllers *controller.Registry
	source      gamepad.Source
	logger      *log.Logger
	frameRate   int
	verbose     bool

	render  []func(time.Duration)
	enterVR []func()
	exitVR  []func()

	posted chan func()
	frame  uint64
}

func New(sc *scene.Scene, source gamepad.Source, opts ...Option) *Session {
	s := &Session{
		scene:     sc,
		source:    source,
		logger:    log.Default(),
		frameRate: defaultFrameRate,
		posted:    make(chan func(), postedQueueSize),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.controllers = controller.NewRegistry(sc, s.logger)
	for _, c := range s.controllers.All() {
		c.SetVerbose(s.verbose)
	}
	return s
}

func (s *Session) Scene() *scene.Scene {
	return s.scene
}

func (s *Session) Controllers() *controller.Registry {
	return s.controllers
}

func (s *Session) Source() gamepad.Source {
	return s.source
}

func (s *Session) Logger() *log.Logger {
	return s.logger
}

// FrameCount is the number of frames run so far.
func (s *Session) FrameCount() uint64 {
	return s.frame
}

// Setup initializes a sample and registers its hooks.
func (s *Session) Setup(sample Sample) {
	h := sample.Init(s)
	if h.Render != nil {
		s.render = append(s.render, h.Render)
	}
	if h.EnterVR != nil {
		s.enterVR = append(s.enterVR, h.EnterVR)
	}
	if h.ExitVR != nil {
		s.exitVR = append(s.exitVR, h.ExitVR)
	}
}

// Do queues fn to run at the start of the next frame. It is the only method
// that is safe to call from other goroutines. It reports false when the
// queue is full.
func (s *Session) Do(fn func()) bool {
	select {
	case s.posted <- fn:
		return true
	default:
		s.logger.Println("session: posted queue full, dropping call")
		return false
	}
}

// Frame runs one frame: queued calls, hardware binding changes, controller
// update, then every render hook in registration order.
func (s *Session) Frame(dt time.Duration) {
	for drained := false; !drained; {
		select {
		case fn := <-s.posted:
			fn()
		default:
			drained = true
		}
	}

	for _, ev := range s.source.Poll() {
		s.controllers.HandleDeviceEvent(ev)
	}
	s.controllers.Update()

	for _, render := range s.render {
		render(dt)
	}
	s.frame++
}

// Presenting reports whether the head-mounted display is in use.
func (s *Session) Presenting() bool {
	return s.scene.XR.Presenting
}

// EnterVR starts presenting and runs the enter hooks.
func (s *Session) EnterVR() {
	if s.scene.XR.Presenting {
		return
	}
	s.scene.XR.Presenting = true
	s.logger.Println("session: entered VR")
	for _, fn := range s.enterVR {
		fn()
	}
}

// ExitVR stops presenting and runs the exit hooks.
func (s *Session) ExitVR() {
	if !s.scene.XR.Presenting {
		return
	}
	s.scene.XR.Presenting = false
	s.logger.Println("session: exited VR")
	for _, fn := range s.exitVR {
		fn()
	}
}

// Recenter puts the viewer back at the origin facing forward.
func (s *Session) Recenter() {
	s.scene.Recenter()
	s.logger.Println("session: rig recentered")
}

// Run opens the hardware source and drives frames at the configured rate
// until ctx is done. The loop runs on a locked OS thread because some
// sources must be polled from the thread that opened them.
func (s *Session) Run(ctx context.Context) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := s.source.Open(); err != nil {
		return fmt.Errorf("open input source: %w", err)
	}
	defer s.source.Close()

	ticker := time.NewTicker(time.Second / time.Duration(s.frameRate))
	defer ticker.Stop()

	s.logger.Printf("session: frame loop running at %d fps", s.frameRate)

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			s.logger.Printf("session: frame loop stopped after %d frames", s.frame)
			return nil
		case now := <-ticker.C:
			s.Frame(now.Sub(last))
			last = now
		}
	}
}
