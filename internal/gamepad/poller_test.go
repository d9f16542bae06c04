package gamepad

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soar/padbind/internal/input"
)

// fixedRead returns the same snapshots for every tick.
func fixedRead(snaps map[int]*Snapshot) ReadFunc {
	return func(pad int) (*Snapshot, bool) {
		s, ok := snaps[pad]
		return s, ok
	}
}

func TestUnregisteredPadIsNeverPolled(t *testing.T) {
	p := NewPoller()
	polled := false
	edges := p.Tick(func(pad int) (*Snapshot, bool) {
		polled = true
		return &Snapshot{}, true
	})
	assert.False(t, polled)
	assert.Empty(t, edges)
}

func TestButtonEdges(t *testing.T) {
	p := NewPoller()
	p.Register(0, &Snapshot{Buttons: []bool{false, false}})

	edges := p.Tick(fixedRead(map[int]*Snapshot{0: {Buttons: []bool{false, true}}}))
	require.Len(t, edges, 1)
	assert.Equal(t, input.PadButtonDescriptor(0, 1), edges[0].Desc)
	assert.Equal(t, input.Down, edges[0].Dir)

	// Held across a tick: no repeat edge.
	edges = p.Tick(fixedRead(map[int]*Snapshot{0: {Buttons: []bool{false, true}}}))
	assert.Empty(t, edges)

	edges = p.Tick(fixedRead(map[int]*Snapshot{0: {Buttons: []bool{false, false}}}))
	require.Len(t, edges, 1)
	assert.Equal(t, input.Up, edges[0].Dir)
}

func TestAxisPositiveCrossing(t *testing.T) {
	p := NewPoller()
	p.Register(0, &Snapshot{Axes: []float64{0.3}})

	edges := p.Tick(fixedRead(map[int]*Snapshot{0: {Axes: []float64{0.7}}}))
	require.Len(t, edges, 1)
	assert.Equal(t, input.PadAxisDescriptor(0, 0, true), edges[0].Desc)
	assert.Equal(t, input.Down, edges[0].Dir)

	edges = p.Tick(fixedRead(map[int]*Snapshot{0: {Axes: []float64{0.3}}}))
	require.Len(t, edges, 1)
	assert.Equal(t, input.PadAxisDescriptor(0, 0, true), edges[0].Desc)
	assert.Equal(t, input.Up, edges[0].Dir)
}

func TestAxisNegativeCrossing(t *testing.T) {
	p := NewPoller()
	p.Register(0, &Snapshot{Axes: []float64{0}})

	edges := p.Tick(fixedRead(map[int]*Snapshot{0: {Axes: []float64{-1}}}))
	require.Len(t, edges, 1)
	assert.Equal(t, input.PadAxisDescriptor(0, 0, false), edges[0].Desc)
	assert.Equal(t, input.Down, edges[0].Dir)

	edges = p.Tick(fixedRead(map[int]*Snapshot{0: {Axes: []float64{-0.2}}}))
	require.Len(t, edges, 1)
	assert.Equal(t, input.Up, edges[0].Dir)
}

func TestAxisOscillationAboveThresholdEmitsNothing(t *testing.T) {
	p := NewPoller()
	p.Register(0, &Snapshot{Axes: []float64{0.6}})

	for _, v := range []float64{0.55, 0.6, 0.55} {
		edges := p.Tick(fixedRead(map[int]*Snapshot{0: {Axes: []float64{v}}}))
		assert.Empty(t, edges)
	}
}

func TestAxisParkedOnBoundaryDoesNotRetrigger(t *testing.T) {
	p := NewPoller()
	p.Register(0, &Snapshot{Axes: []float64{0.5}})

	edges := p.Tick(fixedRead(map[int]*Snapshot{0: {Axes: []float64{0.5}}}))
	assert.Empty(t, edges)

	// 0.5 is already inside the active region, so dropping below emits the
	// up edge only.
	edges = p.Tick(fixedRead(map[int]*Snapshot{0: {Axes: []float64{0.49}}}))
	require.Len(t, edges, 1)
	assert.Equal(t, input.Up, edges[0].Dir)
}

func TestFullSwingEmitsBothHalves(t *testing.T) {
	p := NewPoller()
	p.Register(0, &Snapshot{Axes: []float64{1}})

	// A hard swing from +1 to -1 releases the positive half and presses the
	// negative half in the same tick.
	edges := p.Tick(fixedRead(map[int]*Snapshot{0: {Axes: []float64{-1}}}))
	require.Len(t, edges, 2)
	assert.Equal(t, input.PadAxisDescriptor(0, 0, true), edges[0].Desc)
	assert.Equal(t, input.Up, edges[0].Dir)
	assert.Equal(t, input.PadAxisDescriptor(0, 0, false), edges[1].Desc)
	assert.Equal(t, input.Down, edges[1].Dir)
}

func TestDisconnectFreezesSnapshot(t *testing.T) {
	p := NewPoller()
	p.Register(0, &Snapshot{Buttons: []bool{true}})

	// Disconnected: no edges, snapshot frozen.
	edges := p.Tick(fixedRead(map[int]*Snapshot{}))
	assert.Empty(t, edges)

	// Reconnect with the button released: exactly one up edge against the
	// frozen snapshot.
	edges = p.Tick(fixedRead(map[int]*Snapshot{0: {Buttons: []bool{false}}}))
	require.Len(t, edges, 1)
	assert.Equal(t, input.Up, edges[0].Dir)
}

func TestReconnectWithFreshBaseline(t *testing.T) {
	p := NewPoller()
	p.Register(0, &Snapshot{Buttons: []bool{true}})

	// A reconnect registers a fresh baseline, discarding the stale one.
	p.Register(0, &Snapshot{Buttons: []bool{false, false}})

	edges := p.Tick(fixedRead(map[int]*Snapshot{0: {Buttons: []bool{false, true}}}))
	require.Len(t, edges, 1)
	assert.Equal(t, input.PadButtonDescriptor(0, 1), edges[0].Desc)
	assert.Equal(t, input.Down, edges[0].Dir)
}

func TestGrownDeviceReadsMissingComponentsAsReleased(t *testing.T) {
	p := NewPoller()
	p.Register(0, &Snapshot{Buttons: []bool{false}, Axes: nil})

	edges := p.Tick(fixedRead(map[int]*Snapshot{0: {
		Buttons: []bool{false, true},
		Axes:    []float64{0.9},
	}}))
	require.Len(t, edges, 2)
	assert.Equal(t, input.PadButtonDescriptor(0, 1), edges[0].Desc)
	assert.Equal(t, input.PadAxisDescriptor(0, 0, true), edges[1].Desc)
}

func TestNormalizeAxis(t *testing.T) {
	assert.InDelta(t, 1.0, NormalizeAxis(32767), 0.0001)
	assert.InDelta(t, -1.0, NormalizeAxis(-32768), 0.0001)
	assert.InDelta(t, 0.0, NormalizeAxis(0), 0.0001)
	assert.InDelta(t, 0.5, NormalizeAxis(16384), 0.001)
}
