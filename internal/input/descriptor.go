package input

import "fmt"

// Descriptor identifies one raw physical input. Keyboard descriptors are the
// literal key value reported by the browser ("w", "ArrowUp", "Shift"). Pad
// descriptors are synthesized labels: PAD0:BUTTON3 for a button, PAD0:AXIS1+
// and PAD0:AXIS1- for the two halves of an axis. The same type serves as the
// live dispatch lookup key and as the persisted form.
type Descriptor string

// Unbound is the sentinel stored for an empty binding slot.
const Unbound Descriptor = "-"

// IsBound reports whether d names a real input.
func (d Descriptor) IsBound() bool { return d != Unbound && d != "" }

// KeyDescriptor wraps a browser key value.
func KeyDescriptor(key string) Descriptor { return Descriptor(key) }

// PadButtonDescriptor labels button b of pad p.
func PadButtonDescriptor(pad, button int) Descriptor {
	return Descriptor(fmt.Sprintf("PAD%d:BUTTON%d", pad, button))
}

// PadAxisDescriptor labels the positive or negative half of axis a of pad p.
func PadAxisDescriptor(pad, axis int, positive bool) Descriptor {
	sign := "+"
	if !positive {
		sign = "-"
	}
	return Descriptor(fmt.Sprintf("PAD%d:AXIS%d%s", pad, axis, sign))
}
