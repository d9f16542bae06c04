package input

import (
	"fmt"
	"sync"
)

// Direction of a raw input transition.
type Direction int

const (
	Down Direction = iota
	Up
)

// Notifier receives engine change notifications; the WebSocket broadcaster
// implements it to drive the browser mapping display. Calls are made with
// the engine lock held, so implementations must not block or call back into
// the engine.
type Notifier interface {
	// BindingsChanged fires after the tables change (remap or load).
	BindingsChanged(Tables)
	// StatesChanged fires when a live bitmask changes.
	StatesChanged(states [SlotCount]uint8)
	// RemapPending fires when a remap session starts; slot 0 clears the
	// pending indicator once the session has consumed its input.
	RemapPending(slot int, button Button)
}

// Engine owns the bindings store, the live controller state and the remap
// session. Every entry point serializes on one mutex, which preserves the
// single-writer ordering the remap session's consume-exactly-one-input
// contract depends on.
type Engine struct {
	mu        sync.Mutex
	tables    Tables
	states    [SlotCount]uint8
	pending   *pendingRemap
	cancelKey string

	persist  *Persister
	notifier Notifier
}

// NewEngine creates an engine on the default tables. persist may be nil for
// an in-memory-only engine. cancelKey is the key that clears a binding
// during a remap; empty means "Escape".
func NewEngine(persist *Persister, cancelKey string) *Engine {
	if cancelKey == "" {
		cancelKey = "Escape"
	}
	return &Engine{
		tables:    DefaultTables(),
		cancelKey: cancelKey,
		persist:   persist,
	}
}

// SetNotifier attaches the mapping display. Call before events start flowing.
func (e *Engine) SetNotifier(n Notifier) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.notifier = n
}

// Load pulls persisted bindings over the defaults and refreshes the display.
// Missing or malformed stored tables leave the defaults in place.
func (e *Engine) Load() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.persist != nil {
		e.persist.Load(&e.tables)
	}
	if e.notifier != nil {
		e.notifier.BindingsChanged(e.tables)
	}
}

// KeyDown handles a physical key press. An active remap session consumes it
// exclusively: the cancel key writes the unbound sentinel, anything else
// writes the literal key value, and no live bit is touched either way.
func (e *Engine) KeyDown(key string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if p := e.pending; p != nil {
		desc := KeyDescriptor(key)
		if key == e.cancelKey {
			desc = Unbound
		}
		e.tables.Keyboard[p.Slot][p.Button] = desc
		e.finishRemap()
		return
	}
	e.dispatch(KeyDescriptor(key), Down)
}

// KeyUp clears matching live bits. Key releases are never consumed by a
// remap session, so a key held across a remap cannot leave a stuck bit.
func (e *Engine) KeyUp(key string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.dispatch(KeyDescriptor(key), Up)
}

// PadEdge handles one synthesized gamepad edge. Either edge direction
// qualifies for an active remap session, and either persists the result.
func (e *Engine) PadEdge(desc Descriptor, dir Direction) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if p := e.pending; p != nil {
		e.tables.Gamepad[p.Slot][p.Button] = desc
		e.finishRemap()
		return
	}
	e.dispatch(desc, dir)
}

// BeginRemap starts a remap session for (slot, button). A session that was
// already pending is replaced; there is at most one system-wide.
func (e *Engine) BeginRemap(slot int, button Button) error {
	if !ValidSlot(slot) || !button.Valid() {
		return fmt.Errorf("remap target out of range: slot %d button %d", slot, int(button))
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pending = &pendingRemap{Slot: slot, Button: button}
	if e.notifier != nil {
		e.notifier.RemapPending(slot, button)
	}
	return nil
}

// finishRemap ends the active session after it consumed its input, persists
// the tables and refreshes the display. Callers hold e.mu.
func (e *Engine) finishRemap() {
	e.pending = nil
	if e.persist != nil {
		e.persist.Save(&e.tables)
	}
	if e.notifier != nil {
		e.notifier.RemapPending(0, 0)
		e.notifier.BindingsChanged(e.tables)
	}
}

// dispatch applies one raw input to the live bitmasks. Every match fires
// independently; each is its own bit, so there is nothing to resolve when
// several fire at once. Callers hold e.mu.
func (e *Engine) dispatch(desc Descriptor, dir Direction) {
	matches := e.tables.Lookup(desc)
	if len(matches) == 0 {
		return
	}
	changed := false
	for _, m := range matches {
		bit := uint8(1) << uint(m.Button)
		old := e.states[m.Slot]
		if dir == Down {
			e.states[m.Slot] = old | bit
		} else {
			e.states[m.Slot] = old &^ bit
		}
		if e.states[m.Slot] != old {
			changed = true
		}
	}
	if changed && e.notifier != nil {
		e.notifier.StatesChanged(e.states)
	}
}

// Keys returns the live bitmask for one controller slot; this is the value
// an emulation core samples. Slot 0 and out-of-range slots read zero.
func (e *Engine) Keys(slot int) uint8 {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !ValidSlot(slot) {
		return 0
	}
	return e.states[slot]
}

// States returns all live bitmasks.
func (e *Engine) States() [SlotCount]uint8 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.states
}

// Bindings returns a copy of the current tables.
func (e *Engine) Bindings() Tables {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tables
}

// Pending reports the active remap target, if any.
func (e *Engine) Pending() (slot int, button Button, ok bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.pending == nil {
		return 0, 0, false
	}
	return e.pending.Slot, e.pending.Button, true
}
