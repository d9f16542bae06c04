package gamepad

import (
	"math"

	"github.com/soar/padbind/internal/input"
)

// axisThreshold is the single boundary an axis must cross to count as held
// in either direction. There is no hysteresis band: an axis parked exactly
// on the boundary stays in whichever region it already is and cannot
// re-trigger across polls.
const axisThreshold = 0.5

// Snapshot is one pad's complete component state at a poll tick: ordered
// button pressed flags followed by ordered axis values in [-1, 1].
type Snapshot struct {
	Buttons []bool
	Axes    []float64
}

// Edge is one synthesized transition on a pad component.
type Edge struct {
	Pad  int
	Desc input.Descriptor
	Dir  input.Direction
}

func axisPositive(v float64) bool { return v >= axisThreshold }
func axisNegative(v float64) bool { return v <= -axisThreshold }

// diff synthesizes the edges between two consecutive snapshots of one pad.
// Components missing from prev (a reconnect grew the device) read as
// released, so a held button on a fresh device still produces a down edge.
func diff(pad int, prev, next *Snapshot) []Edge {
	var edges []Edge
	for i, pressed := range next.Buttons {
		was := i < len(prev.Buttons) && prev.Buttons[i]
		if pressed == was {
			continue
		}
		dir := input.Down
		if !pressed {
			dir = input.Up
		}
		edges = append(edges, Edge{Pad: pad, Desc: input.PadButtonDescriptor(pad, i), Dir: dir})
	}
	for i, v := range next.Axes {
		var old float64
		if i < len(prev.Axes) {
			old = prev.Axes[i]
		}
		if pos, was := axisPositive(v), axisPositive(old); pos != was {
			dir := input.Down
			if !pos {
				dir = input.Up
			}
			edges = append(edges, Edge{Pad: pad, Desc: input.PadAxisDescriptor(pad, i, true), Dir: dir})
		}
		if neg, was := axisNegative(v), axisNegative(old); neg != was {
			dir := input.Down
			if !neg {
				dir = input.Up
			}
			edges = append(edges, Edge{Pad: pad, Desc: input.PadAxisDescriptor(pad, i, false), Dir: dir})
		}
	}
	return edges
}

// NormalizeAxis converts a raw axis value (-32768..32767) to -1.0..1.0.
func NormalizeAxis(raw int16) float64 {
	v := float64(raw) / math.MaxInt16
	if v < -1.0 {
		v = -1.0
	}
	return v
}
