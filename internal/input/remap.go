package input

// pendingRemap is an active remap session: the next qualifying raw input is
// written into the binding at (Slot, Button) instead of driving live state.
// A nil *pendingRemap is the inactive state, so a half-filled session cannot
// be represented. At most one session exists system-wide.
type pendingRemap struct {
	Slot   int
	Button Button
}
