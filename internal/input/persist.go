package input

import (
	"encoding/json"
	"log"

	"github.com/soar/padbind/internal/store"
)

// Storage keys, one per (device kind, slot) table. Each value is a JSON
// array of exactly 8 descriptor strings.
const (
	keyKeyboard1 = "keyboard.1"
	keyKeyboard2 = "keyboard.2"
	keyGamepad1  = "gamepad.1"
	keyGamepad2  = "gamepad.2"
)

// Persister saves and restores the binding tables through a key-value store.
// Storage failures are logged and swallowed: the engine keeps running on its
// in-memory tables and never sees a partial write.
type Persister struct {
	store store.Store
}

func NewPersister(s store.Store) *Persister {
	return &Persister{store: s}
}

// Save writes all four tables independently. A failing key never blocks the
// others and never touches in-memory state.
func (p *Persister) Save(t *Tables) {
	p.saveTable(keyKeyboard1, t.Keyboard[1])
	p.saveTable(keyKeyboard2, t.Keyboard[2])
	p.saveTable(keyGamepad1, t.Gamepad[1])
	p.saveTable(keyGamepad2, t.Gamepad[2])
}

func (p *Persister) saveTable(key string, row [ButtonCount]Descriptor) {
	data, err := json.Marshal(row)
	if err != nil {
		log.Printf("bindings: marshal %s: %v", key, err)
		return
	}
	if err := p.store.Set(key, string(data)); err != nil {
		log.Printf("bindings: store unavailable for %s: %v", key, err)
	}
}

// Load overwrites each table for which the store holds a well-formed value.
// An absent or malformed value leaves that specific table untouched; the
// other keys still load. Total store unavailability leaves every default.
func (p *Persister) Load(t *Tables) {
	p.loadTable(keyKeyboard1, &t.Keyboard[1])
	p.loadTable(keyKeyboard2, &t.Keyboard[2])
	p.loadTable(keyGamepad1, &t.Gamepad[1])
	p.loadTable(keyGamepad2, &t.Gamepad[2])
}

func (p *Persister) loadTable(key string, row *[ButtonCount]Descriptor) {
	value, ok, err := p.store.Get(key)
	if err != nil {
		log.Printf("bindings: read %s: %v", key, err)
		return
	}
	if !ok {
		return
	}
	var parsed []Descriptor
	if err := json.Unmarshal([]byte(value), &parsed); err != nil {
		log.Printf("bindings: malformed value for %s, keeping current table: %v", key, err)
		return
	}
	if len(parsed) != ButtonCount {
		log.Printf("bindings: %s holds %d entries, want %d, keeping current table", key, len(parsed), ButtonCount)
		return
	}
	copy(row[:], parsed)
}
