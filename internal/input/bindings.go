package input

// Table is one device kind's bindings: 8 descriptors per controller slot.
// Row 0 is the reserved slot and stays unbound.
type Table [SlotCount][ButtonCount]Descriptor

// Tables is the full bindings store, one table per device kind.
type Tables struct {
	Keyboard Table
	Gamepad  Table
}

// defaultKeys is the pre-populated keyboard layout for controller 1, in
// button order (A, B, Select, Start, Up, Down, Left, Right).
var defaultKeys = [ButtonCount]Descriptor{
	"x", "z", "Shift", "Enter", "ArrowUp", "ArrowDown", "ArrowLeft", "ArrowRight",
}

// DefaultTables returns the startup bindings: controller 1 on the default
// keyboard layout, everything else unbound.
func DefaultTables() Tables {
	var t Tables
	for slot := 0; slot < SlotCount; slot++ {
		for b := 0; b < ButtonCount; b++ {
			t.Keyboard[slot][b] = Unbound
			t.Gamepad[slot][b] = Unbound
		}
	}
	t.Keyboard[1] = defaultKeys
	return t
}

// Match is one (slot, button) pair whose binding equals a dispatched
// descriptor.
type Match struct {
	Slot   int
	Button Button
}

// Lookup returns every (slot, button) bound to d across both device kinds.
// A single physical input may legally be bound to several logical buttons,
// even across controllers; all of them fire independently.
func (t *Tables) Lookup(d Descriptor) []Match {
	if !d.IsBound() {
		return nil
	}
	var matches []Match
	for slot := FirstSlot; slot < SlotCount; slot++ {
		for b := Button(0); b < ButtonCount; b++ {
			if t.Keyboard[slot][b] == d || t.Gamepad[slot][b] == d {
				matches = append(matches, Match{Slot: slot, Button: b})
			}
		}
	}
	return matches
}
