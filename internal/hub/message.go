package hub

import (
	"time"

	"github.com/soar/padbind/internal/input"
)

// WSMessage is a server-to-client message.
type WSMessage struct {
	Type      string `json:"type"` // "bindings", "state" or "remap_pending"
	Seq       int64  `json:"seq"`
	Timestamp int64  `json:"timestamp"`

	// Bindings carries the four binding tables for type "bindings".
	Bindings *BindingsPayload `json:"bindings,omitempty"`
	// States carries the live bitmasks [controller1, controller2] for
	// type "state". Plain ints so the wire form is a JSON array, not a
	// base64 blob.
	States []int `json:"states,omitempty"`
	// Pending names the remap target for type "remap_pending"; nil (field
	// absent) means the pending indicator should be cleared.
	Pending *RemapTarget `json:"pending,omitempty"`
}

// RemapTarget is the (slot, button) a remap session is waiting on.
type RemapTarget struct {
	Slot   int `json:"slot"`
	Button int `json:"button"`
}

// BindingsPayload holds the tables as plain string rows, [controller1,
// controller2], 8 entries each, "-" for unbound.
type BindingsPayload struct {
	Keyboard [][]string `json:"keyboard"`
	Gamepad  [][]string `json:"gamepad"`
}

func tableRow(r [input.ButtonCount]input.Descriptor) []string {
	out := make([]string, len(r))
	for i, d := range r {
		out[i] = string(d)
	}
	return out
}

// NewBindingsMessage creates a "bindings" message from the current tables.
func NewBindingsMessage(seq int64, t input.Tables) *WSMessage {
	return &WSMessage{
		Type:      "bindings",
		Seq:       seq,
		Timestamp: time.Now().UnixMilli(),
		Bindings: &BindingsPayload{
			Keyboard: [][]string{tableRow(t.Keyboard[1]), tableRow(t.Keyboard[2])},
			Gamepad:  [][]string{tableRow(t.Gamepad[1]), tableRow(t.Gamepad[2])},
		},
	}
}

// NewStateMessage creates a "state" message from the live bitmasks.
func NewStateMessage(seq int64, states [input.SlotCount]uint8) *WSMessage {
	return &WSMessage{
		Type:      "state",
		Seq:       seq,
		Timestamp: time.Now().UnixMilli(),
		States:    []int{int(states[1]), int(states[2])},
	}
}

// NewRemapPendingMessage creates a "remap_pending" message. Slot 0 produces
// the clear form (no pending field).
func NewRemapPendingMessage(seq int64, slot int, button input.Button) *WSMessage {
	msg := &WSMessage{
		Type:      "remap_pending",
		Seq:       seq,
		Timestamp: time.Now().UnixMilli(),
	}
	if slot != 0 {
		msg.Pending = &RemapTarget{Slot: slot, Button: int(button)}
	}
	return msg
}

// ClientMessage is a message sent from the browser to the server.
type ClientMessage struct {
	Type   string `json:"type"` // "keydown", "keyup" or "remap"
	Key    string `json:"key,omitempty"`
	Slot   int    `json:"slot,omitempty"`
	Button int    `json:"button,omitempty"`
}
