package controller

import (
	"reflect"
	"testing"
)

func TestEventNames(t *testing.T) {
	tests := []struct {
		kind Kind
		name string
		want string
	}{
		{ButtonDown, "trigger", "button-trigger-down"},
		{ButtonUp, "y", "button-y-up"},
		{AxisMove, "x", "axes-x-move"},
		{AxisMoveStart, "y", "axes-y-moveStart"},
		{AxisMoveMiddle, "y", "axes-y-moveMiddle"},
		{AxisMoveEnd, "touchX", "axes-touchX-moveEnd"},
	}
	for _, tt := range tests {
		if got := (Event{Kind: tt.kind, Name: tt.name}).String(); got != tt.want {
			t.Errorf("got %q, want %q", got, tt.want)
		}
	}
}

func TestChannelDispatchOrder(t *testing.T) {
	var ch Channel
	var got []string

	ch.On(ButtonDown, "trigger", func(Event) { got = append(got, "first") })
	ch.SubscribeAll(HandlerFunc(func(Event) { got = append(got, "all") }))
	ch.On(ButtonDown, "trigger", func(Event) { got = append(got, "second") })
	ch.On(ButtonUp, "trigger", func(Event) { got = append(got, "wrong kind") })
	ch.On(ButtonDown, "grab", func(Event) { got = append(got, "wrong name") })

	ch.Emit(Event{Kind: ButtonDown, Name: "trigger"})

	want := []string{"first", "all", "second"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

type countingHandler struct {
	n int
}

func (h *countingHandler) HandleEvent(Event) {
	h.n++
}

func TestChannelUnsubscribe(t *testing.T) {
	var ch Channel
	h := &countingHandler{}
	id := ch.Subscribe(AxisMove, "y", h)

	ch.Emit(Event{Kind: AxisMove, Name: "y"})
	if !ch.Unsubscribe(id) {
		t.Fatal("Unsubscribe = false")
	}
	if ch.Unsubscribe(id) {
		t.Fatal("second Unsubscribe = true")
	}
	ch.Emit(Event{Kind: AxisMove, Name: "y"})

	if h.n != 1 {
		t.Errorf("handler ran %d times, want 1", h.n)
	}
	if ch.Len() != 0 {
		t.Errorf("Len = %d", ch.Len())
	}
}

func TestChannelUnsubscribeDuringDispatch(t *testing.T) {
	var ch Channel
	var got []string
	var second Subscription

	ch.On(ButtonUp, "a", func(Event) {
		got = append(got, "first")
		ch.Unsubscribe(second)
	})
	second = ch.On(ButtonUp, "a", func(Event) { got = append(got, "second") })

	ch.Emit(Event{Kind: ButtonUp, Name: "a"})
	ch.Emit(Event{Kind: ButtonUp, Name: "a"})

	want := []string{"first", "second", "first"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
