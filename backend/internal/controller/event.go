package controller

import "fmt"

// Kind is the closed set of semantic controller events.
type Kind uint8

const (
	ButtonDown Kind = iota
	ButtonUp
	AxisMove
	AxisMoveStart
	AxisMoveMiddle
	AxisMoveEnd
)

// Kinds lists every event kind in emission order.
var Kinds = []Kind{ButtonDown, ButtonUp, AxisMove, AxisMoveStart, AxisMoveMiddle, AxisMoveEnd}

// IsAxis reports whether the kind is emitted for axes rather than buttons.
func (k Kind) IsAxis() bool {
	return k >= AxisMove
}

func (k Kind) String() string {
	switch k {
	case ButtonDown:
		return "down"
	case ButtonUp:
		return "up"
	case AxisMove:
		return "move"
	case AxisMoveStart:
		return "moveStart"
	case AxisMoveMiddle:
		return "moveMiddle"
	case AxisMoveEnd:
		return "moveEnd"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// EventName returns the wire name of the event for a semantic input name,
// e.g. "button-trigger-down" or "axes-y-moveMiddle".
func (k Kind) EventName(name string) string {
	if k.IsAxis() {
		return "axes-" + name + "-" + k.String()
	}
	return "button-" + name + "-" + k.String()
}

// Event is one dispatched transition. Value is the new axis value and is zero
// for button events.
type Event struct {
	Kind       Kind
	Name       string
	Index      int
	Value      float64
	Controller *Controller
}

func (e Event) String() string {
	return e.Kind.EventName(e.Name)
}

// Handler receives controller events.
type Handler interface {
	HandleEvent(Event)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(Event)

func (f HandlerFunc) HandleEvent(e Event) {
	f(e)
}

// Subscription identifies a registered handler.
type Subscription uint64

type subscriber struct {
	id      Subscription
	all     bool
	kind    Kind
	name    string
	handler Handler
}

// Channel dispatches events synchronously, in registration order, on the
// caller's goroutine.
type Channel struct {
	next Subscription
	subs []subscriber
}

// Subscribe registers h for one kind of event on one semantic name.
func (c *Channel) Subscribe(kind Kind, name string, h Handler) Subscription {
	return c.add(subscriber{kind: kind, name: name, handler: h})
}

// On is Subscribe for a plain function.
func (c *Channel) On(kind Kind, name string, fn func(Event)) Subscription {
	return c.Subscribe(kind, name, HandlerFunc(fn))
}

// SubscribeAll registers h for every event on the channel.
func (c *Channel) SubscribeAll(h Handler) Subscription {
	return c.add(subscriber{all: true, handler: h})
}

func (c *Channel) add(s subscriber) Subscription {
	c.next++
	s.id = c.next
	c.subs = append(c.subs, s)
	return s.id
}

// Unsubscribe removes a handler. Removing during a dispatch takes effect
// from the next Emit.
func (c *Channel) Unsubscribe(id Subscription) bool {
	for i, s := range c.subs {
		if s.id == id {
			subs := make([]subscriber, 0, len(c.subs)-1)
			subs = append(subs, c.subs[:i]...)
			c.subs = append(subs, c.subs[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of registered handlers.
func (c *Channel) Len() int {
	return len(c.subs)
}

// Emit delivers e to every matching handler.
func (c *Channel) Emit(e Event) {
	for _, s := range c.subs {
		if s.all || (s.kind == e.Kind && s.name == e.Name) {
			s.handler.HandleEvent(e)
		}
	}
}
