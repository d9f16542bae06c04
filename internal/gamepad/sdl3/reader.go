// Package sdl3 drives the gamepad poller from the SDL3 joystick API. It is
// the only package that touches SDL; keeping it apart means the edge
// synthesis in internal/gamepad tests without libSDL3 installed (purego-sdl3
// dlopens the library at init).
package sdl3

import (
	"context"
	"log"
	"runtime"
	"time"

	"github.com/jupiterrider/purego-sdl3/sdl"

	"github.com/soar/padbind/internal/gamepad"
	"github.com/soar/padbind/internal/input"
)

const eventPumpDelayNS = 16_000_000 // ~60Hz event pump between poll ticks

// SDL hat switch bit positions.
const (
	hatUp    uint8 = 0x01
	hatRight uint8 = 0x02
	hatDown  uint8 = 0x04
	hatLeft  uint8 = 0x08
)

// Sink receives synthesized pad edges; the input engine implements it.
type Sink interface {
	PadEdge(desc input.Descriptor, dir input.Direction)
}

type padInfo struct {
	joystick *sdl.Joystick
	name     string
	index    int // stable pad index used in descriptors
}

// Reader pumps SDL connect/disconnect events, snapshots every registered pad
// on the poll interval and forwards edges to the sink. Hat switches are
// appended to the snapshot as four synthetic buttons (up, right, down, left)
// after the real ones, so hat-based d-pads are remappable like ordinary
// buttons.
type Reader struct {
	poller   *gamepad.Poller
	sink     Sink
	interval time.Duration
	pads     map[sdl.JoystickID]*padInfo
	indices  map[int]sdl.JoystickID // pad index -> live instance, if any
}

func NewReader(sink Sink, interval time.Duration) *Reader {
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}
	return &Reader{
		poller:   gamepad.NewPoller(),
		sink:     sink,
		interval: interval,
		pads:     make(map[sdl.JoystickID]*padInfo),
		indices:  make(map[int]sdl.JoystickID),
	}
}

// Run initializes SDL and loops until the context is cancelled. Must run on
// a goroutine of its own; SDL needs the thread locked.
func (r *Reader) Run(ctx context.Context) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if !sdl.Init(sdl.InitJoystick) {
		log.Fatalf("SDL Init failed: %s", sdl.GetError())
	}
	defer sdl.Quit()

	log.Println("SDL3 joystick subsystem initialized")

	// Check for already-connected joysticks
	for _, id := range sdl.GetJoysticks() {
		r.openPad(id)
	}

	lastPoll := time.Now()
	for {
		select {
		case <-ctx.Done():
			r.closeAll()
			return
		default:
		}

		r.processEvents()
		if time.Since(lastPoll) >= r.interval {
			r.pollPads()
			lastPoll = time.Now()
		}
		sdl.DelayNS(eventPumpDelayNS)
	}
}

func (r *Reader) processEvents() {
	var event sdl.Event
	for sdl.PollEvent(&event) {
		switch event.Type() {
		case sdl.EventJoystickAdded:
			r.openPad(event.JDevice().Which)
		case sdl.EventJoystickRemoved:
			r.removePad(event.JDevice().Which)
		}
	}
}

// nextFreeIndex picks the smallest pad index with no live device, mirroring
// how browsers reuse Gamepad API indices across reconnects.
func (r *Reader) nextFreeIndex() int {
	for i := 0; ; i++ {
		if _, used := r.indices[i]; !used {
			return i
		}
	}
}

func (r *Reader) openPad(instanceID sdl.JoystickID) {
	if _, exists := r.pads[instanceID]; exists {
		return
	}

	js := sdl.OpenJoystick(instanceID)
	if js == nil {
		log.Printf("Failed to open joystick %d: %s", instanceID, sdl.GetError())
		return
	}

	info := &padInfo{
		joystick: js,
		name:     sdl.GetJoystickName(js),
		index:    r.nextFreeIndex(),
	}
	r.pads[sdl.GetJoystickID(js)] = info
	r.indices[info.index] = instanceID

	log.Printf("Pad %d connected: %s (buttons=%d axes=%d hats=%d)",
		info.index, info.name,
		sdl.GetNumJoystickButtons(js), sdl.GetNumJoystickAxes(js), sdl.GetNumJoystickHats(js))

	r.poller.Register(info.index, r.snapshot(js))
}

func (r *Reader) removePad(instanceID sdl.JoystickID) {
	info, exists := r.pads[instanceID]
	if !exists {
		return
	}

	log.Printf("Pad %d disconnected: %s", info.index, info.name)
	sdl.CloseJoystick(info.joystick)
	delete(r.pads, instanceID)
	delete(r.indices, info.index)
	// The poller keeps the stale snapshot frozen; reads for this index fail
	// until a reconnect registers a fresh baseline at the same index.
}

func (r *Reader) closeAll() {
	for id, info := range r.pads {
		sdl.CloseJoystick(info.joystick)
		delete(r.pads, id)
		delete(r.indices, info.index)
	}
}

func (r *Reader) pollPads() {
	edges := r.poller.Tick(func(pad int) (*gamepad.Snapshot, bool) {
		id, ok := r.indices[pad]
		if !ok {
			return nil, false
		}
		info, ok := r.pads[id]
		if !ok || !sdl.JoystickConnected(info.joystick) {
			return nil, false
		}
		return r.snapshot(info.joystick), true
	})
	for _, e := range edges {
		r.sink.PadEdge(e.Desc, e.Dir)
	}
}

// snapshot reads every button, hat and axis of one joystick.
func (r *Reader) snapshot(js *sdl.Joystick) *gamepad.Snapshot {
	numButtons := sdl.GetNumJoystickButtons(js)
	numAxes := sdl.GetNumJoystickAxes(js)
	numHats := sdl.GetNumJoystickHats(js)

	s := &gamepad.Snapshot{
		Buttons: make([]bool, 0, int(numButtons)+int(numHats)*4),
		Axes:    make([]float64, 0, int(numAxes)),
	}
	for i := int32(0); i < numButtons; i++ {
		s.Buttons = append(s.Buttons, sdl.GetJoystickButton(js, i))
	}
	for i := int32(0); i < numHats; i++ {
		hat := sdl.GetJoystickHat(js, i)
		s.Buttons = append(s.Buttons, hat&hatUp != 0, hat&hatRight != 0, hat&hatDown != 0, hat&hatLeft != 0)
	}
	for i := int32(0); i < numAxes; i++ {
		s.Axes = append(s.Axes, gamepad.NormalizeAxis(sdl.GetJoystickAxis(js, i)))
	}
	return s
}
