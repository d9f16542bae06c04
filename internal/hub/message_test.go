package hub

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soar/padbind/internal/input"
)

func TestBindingsMessagePayload(t *testing.T) {
	tables := input.DefaultTables()
	tables.Gamepad[2][input.ButtonB] = input.PadButtonDescriptor(0, 5)

	msg := NewBindingsMessage(7, tables)
	assert.Equal(t, "bindings", msg.Type)
	assert.Equal(t, int64(7), msg.Seq)

	require.Len(t, msg.Bindings.Keyboard, 2)
	require.Len(t, msg.Bindings.Keyboard[0], input.ButtonCount)
	assert.Equal(t, "x", msg.Bindings.Keyboard[0][0])
	assert.Equal(t, "-", msg.Bindings.Keyboard[1][0])
	assert.Equal(t, "PAD0:BUTTON5", msg.Bindings.Gamepad[1][input.ButtonB])
}

func TestStateMessageDropsReservedSlot(t *testing.T) {
	msg := NewStateMessage(1, [input.SlotCount]uint8{0xFF, 0x03, 0x80})
	assert.Equal(t, []int{0x03, 0x80}, msg.States, "slot 0 never leaves the server")

	// The wire form must be a JSON number array; a []byte field would
	// marshal as a base64 string and the frontend indexes into it.
	raw, err := json.Marshal(msg)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, []any{float64(3), float64(128)}, decoded["states"])
	assert.NotContains(t, decoded, "pending")
}

func TestRemapPendingMessageWireForm(t *testing.T) {
	msg := NewRemapPendingMessage(2, 1, input.ButtonUp)
	raw, err := json.Marshal(msg)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	require.Contains(t, decoded, "pending")
	assert.Equal(t, map[string]any{
		"slot":   float64(1),
		"button": float64(input.ButtonUp),
	}, decoded["pending"])
	assert.NotContains(t, decoded, "states")
}

func TestRemapPendingClearOmitsTarget(t *testing.T) {
	msg := NewRemapPendingMessage(3, 0, 0)
	assert.Nil(t, msg.Pending)

	raw, err := json.Marshal(msg)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.NotContains(t, decoded, "pending", "absent field is the clear signal")
}

func TestBindingsMessageOmitsUnrelatedFields(t *testing.T) {
	raw, err := json.Marshal(NewBindingsMessage(4, input.DefaultTables()))
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.NotContains(t, decoded, "states")
	assert.NotContains(t, decoded, "pending")
}

func TestClientMessageDecoding(t *testing.T) {
	var msg ClientMessage
	require.NoError(t, json.Unmarshal([]byte(`{"type":"remap","slot":2,"button":4}`), &msg))
	assert.Equal(t, "remap", msg.Type)
	assert.Equal(t, 2, msg.Slot)
	assert.Equal(t, 4, msg.Button)

	require.NoError(t, json.Unmarshal([]byte(`{"type":"keydown","key":"ArrowUp"}`), &msg))
	assert.Equal(t, "ArrowUp", msg.Key)
}
