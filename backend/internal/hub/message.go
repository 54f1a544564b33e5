package hub

import (
	"time"

	"github.com/soar/xrplayground/backend/internal/gamepad"
)

// WSMessage represents a WebSocket message sent from server to client.
type WSMessage struct {
	Type      string        `json:"type"`            // Message type: "full", "event", "error"
	Seq       int64         `json:"seq"`             // Sequence number for ordering
	Timestamp int64         `json:"timestamp"`       // Unix timestamp in milliseconds
	Event     *EventPayload `json:"event,omitempty"` // Controller event for type "event"
	Data      *Status       `json:"data,omitempty"`  // Playground status for type "full"
	Error     string        `json:"error,omitempty"` // Rejected command for type "error"
}

// EventPayload is one dispatched controller event.
type EventPayload struct {
	Hand  string  `json:"hand"`
	Event string  `json:"event"` // e.g. "axes-y-moveMiddle"
	Kind  string  `json:"kind"`
	Name  string  `json:"name"`
	Index int     `json:"index"`
	Value float64 `json:"value"`
}

// ControllerStatus is the raw state of one facade.
type ControllerStatus struct {
	Hand      string           `json:"hand"`
	Index     int              `json:"index"`
	Connected bool             `json:"connected"`
	Buttons   []gamepad.Button `json:"buttons,omitempty"`
	Axes      []float64        `json:"axes,omitempty"`
}

type RigStatus struct {
	Position [3]float64 `json:"position"`
	Yaw      float64    `json:"yaw"`
}

type PanelStatus struct {
	Visible bool   `json:"visible"`
	Text    string `json:"text"`
}

// Status is a full snapshot of the playground.
type Status struct {
	Controllers []ControllerStatus `json:"controllers"`
	Presenting  bool               `json:"presenting"`
	Locomotion  string             `json:"locomotion"`
	Guiding     string             `json:"guiding,omitempty"`
	Fading      bool               `json:"fading"`
	Rig         RigStatus          `json:"rig"`
	Panel       *PanelStatus       `json:"panel,omitempty"`
}

// NewFullMessage creates a "full" type message containing the complete status.
func NewFullMessage(seq int64, status *Status) *WSMessage {
	return &WSMessage{
		Type:      "full",
		Seq:       seq,
		Timestamp: time.Now().UnixMilli(),
		Data:      status,
	}
}

// NewEventMessage creates an "event" type message for one controller event.
func NewEventMessage(seq int64, ev *EventPayload) *WSMessage {
	return &WSMessage{
		Type:      "event",
		Seq:       seq,
		Timestamp: time.Now().UnixMilli(),
		Event:     ev,
	}
}

// NewErrorMessage reports a rejected client command back to its sender.
func NewErrorMessage(err error) *WSMessage {
	return &WSMessage{
		Type:      "error",
		Timestamp: time.Now().UnixMilli(),
		Error:     err.Error(),
	}
}

// ClientMessage represents a message sent from the client to the server.
type ClientMessage struct {
	Type    string  `json:"type"` // "connect", "disconnect", "button", "axis", "enter_vr", "exit_vr", "recenter"
	Hand    string  `json:"hand,omitempty"`
	Index   int     `json:"index,omitempty"`
	Pressed bool    `json:"pressed,omitempty"`
	Value   float64 `json:"value,omitempty"`
}
