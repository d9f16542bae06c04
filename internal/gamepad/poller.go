package gamepad

// ReadFunc reads the current snapshot for a pad index. ok is false when the
// platform reports no live device there (a mid-session disconnect).
type ReadFunc func(pad int) (*Snapshot, bool)

// Poller keeps the previous snapshot per registered pad and turns successive
// reads into edge events. It is platform-free; the SDL Reader drives it.
type Poller struct {
	prev map[int]*Snapshot
}

func NewPoller() *Poller {
	return &Poller{prev: make(map[int]*Snapshot)}
}

// Register records the baseline snapshot for a newly connected pad. Indices
// that were never registered are never polled: a connect notification must
// land here first.
func (p *Poller) Register(pad int, initial *Snapshot) {
	if initial == nil {
		initial = &Snapshot{}
	}
	p.prev[pad] = initial
}

// Tick re-reads every registered pad and returns the synthesized edges. An
// unreadable pad is skipped for this tick and its snapshot kept frozen, so a
// later reconnect diffs against the state the device disappeared with until
// Register replaces the baseline.
func (p *Poller) Tick(read ReadFunc) []Edge {
	var edges []Edge
	for pad, prev := range p.prev {
		next, ok := read(pad)
		if !ok || next == nil {
			continue
		}
		edges = append(edges, diff(pad, prev, next)...)
		p.prev[pad] = next
	}
	return edges
}
