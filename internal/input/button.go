package input

import "fmt"

// Button indexes one of the 8 logical controller buttons. The order is
// significant: it is the bit position in the live state bitmask and the
// element order in the persisted tables.
type Button int

const (
	ButtonA Button = iota
	ButtonB
	ButtonSelect
	ButtonStart
	ButtonUp
	ButtonDown
	ButtonLeft
	ButtonRight

	ButtonCount = 8
)

var buttonNames = [ButtonCount]string{"A", "B", "Select", "Start", "Up", "Down", "Left", "Right"}

func (b Button) String() string {
	if !b.Valid() {
		return fmt.Sprintf("Button(%d)", int(b))
	}
	return buttonNames[b]
}

// Valid reports whether b is a real logical button index.
func (b Button) Valid() bool { return b >= 0 && b < ButtonCount }

// Controller slots. Slot 0 is reserved and always reads as unbound/released;
// slots 1 and 2 are the two controllers.
const (
	SlotCount = 3
	FirstSlot = 1
)

// ValidSlot reports whether slot names one of the two real controllers.
func ValidSlot(slot int) bool { return slot >= FirstSlot && slot < SlotCount }
