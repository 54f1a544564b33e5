package hub

import (
	"context"
	"encoding/json"
	"log"
	"reflect"
	"sync"
	"time"

	"github.com/soar/xrplayground/backend/internal/controller"
	"github.com/soar/xrplayground/backend/internal/gamepad"
	"github.com/soar/xrplayground/backend/internal/locomotion"
	"github.com/soar/xrplayground/backend/internal/session"
	"github.com/soar/xrplayground/backend/internal/ui"
)

const (
	fullSyncInterval = 5 * time.Second
	updateBufferSize = 1024
)

// update carries either one event or one status from the frame loop to Run,
// preserving their relative order.
type update struct {
	event  *EventPayload
	status *Status
}

// Broadcaster mirrors controller events and playground status to the hub.
// Init and the render hook run on the frame loop; Run marshals and sends on
// its own goroutine.
type Broadcaster struct {
	hub      *Hub
	teleport *locomotion.Teleport
	fade     *locomotion.Fade
	panel    *ui.Panel
	session  *session.Session
	logger   *log.Logger

	updates chan update
	sent    Status // frame loop side, for change detection
	primed  bool

	mu        sync.Mutex
	lastState Status
	haveState bool
	seq       int64
}

// NewBroadcaster creates a broadcaster. Any of teleport, fade and panel may
// be nil; their part of the status is then left empty.
func NewBroadcaster(h *Hub, teleport *locomotion.Teleport, fade *locomotion.Fade, panel *ui.Panel) *Broadcaster {
	return &Broadcaster{
		hub:      h,
		teleport: teleport,
		fade:     fade,
		panel:    panel,
		updates:  make(chan update, updateBufferSize),
	}
}

func (b *Broadcaster) Init(s *session.Session) session.Hooks {
	b.session = s
	b.logger = s.Logger()
	for _, c := range s.Controllers().All() {
		c.Events().SubscribeAll(controller.HandlerFunc(b.onEvent))
	}
	return session.Hooks{Render: b.render}
}

func (b *Broadcaster) onEvent(e controller.Event) {
	b.push(update{event: &EventPayload{
		Hand:  e.Controller.Name(),
		Event: e.Kind.EventName(e.Name),
		Kind:  e.Kind.String(),
		Name:  e.Name,
		Index: e.Index,
		Value: e.Value,
	}})
}

func (b *Broadcaster) render(time.Duration) {
	st := Snapshot(b.session, b.teleport, b.fade, b.panel)
	if b.primed && reflect.DeepEqual(st, b.sent) {
		return
	}
	b.sent = st
	b.primed = true
	b.push(update{status: &st})
}

func (b *Broadcaster) push(u update) {
	select {
	case b.updates <- u:
	default:
		b.logger.Println("broadcast: update buffer full, dropping")
	}
}

// Run starts the broadcaster loop. Should be run in a goroutine.
func (b *Broadcaster) Run(ctx context.Context) {
	ticker := time.NewTicker(fullSyncInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case u := <-b.updates:
			if u.event != nil {
				b.broadcast(NewEventMessage(b.nextSeq(), u.event))
				continue
			}
			b.mu.Lock()
			b.lastState = *u.status
			b.haveState = true
			b.seq++
			msg := NewFullMessage(b.seq, u.status)
			b.mu.Unlock()
			b.broadcast(msg)

		case <-ticker.C:
			b.mu.Lock()
			if !b.haveState {
				b.mu.Unlock()
				continue
			}
			b.seq++
			st := b.lastState
			msg := NewFullMessage(b.seq, &st)
			b.mu.Unlock()
			b.broadcast(msg)
		}
	}
}

// SendInitialState sends the current full state to a newly connected client.
// Before the first status has been published the snapshot is taken on the
// frame loop, so the client waits at most one frame.
func (b *Broadcaster) SendInitialState(c *Client) {
	b.mu.Lock()
	if b.haveState {
		b.seq++
		st := b.lastState
		msg := NewFullMessage(b.seq, &st)
		b.mu.Unlock()
		b.sendTo(c, msg)
		return
	}
	b.mu.Unlock()

	if b.session == nil {
		b.hub.logger.Println("Initial state unavailable: broadcaster not set up")
		return
	}
	b.session.Do(func() {
		st := Snapshot(b.session, b.teleport, b.fade, b.panel)
		b.sendTo(c, NewFullMessage(b.nextSeq(), &st))
	})
}

func (b *Broadcaster) sendTo(c *Client, msg *WSMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		b.hub.logger.Printf("Error marshaling initial state: %v", err)
		return
	}
	if !b.hub.SendTo(c, data) {
		b.hub.logger.Println("Initial state not delivered: client gone or buffer full")
	}
}

func (b *Broadcaster) nextSeq() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.seq++
	return b.seq
}

func (b *Broadcaster) broadcast(msg *WSMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		b.hub.logger.Printf("Error marshaling %s message: %v", msg.Type, err)
		return
	}
	b.hub.Broadcast(data)
}

// Snapshot copies the playground state. It must run on the frame loop.
func Snapshot(s *session.Session, tp *locomotion.Teleport, fade *locomotion.Fade, panel *ui.Panel) Status {
	st := Status{
		Presenting: s.Presenting(),
		Locomotion: locomotion.Idle.String(),
	}
	for _, c := range s.Controllers().All() {
		cs := ControllerStatus{
			Hand:      c.Name(),
			Index:     c.Index(),
			Connected: c.Connected(),
		}
		if dev := c.Device(); dev != nil {
			cs.Buttons = append([]gamepad.Button(nil), dev.Buttons()...)
			cs.Axes = append([]float64(nil), dev.Axes()...)
		}
		st.Controllers = append(st.Controllers, cs)
	}

	rig := s.Scene().Rig
	st.Rig = RigStatus{Position: rig.Position, Yaw: rig.Yaw()}

	if tp != nil {
		st.Locomotion = tp.State().String()
		if g := tp.Guiding(); g != nil {
			st.Guiding = g.Name()
		}
	}
	if fade != nil {
		st.Fading = fade.Active()
	}
	if panel != nil {
		st.Panel = &PanelStatus{Visible: panel.Visible(), Text: panel.Text()}
	}
	return st
}
