package hub

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/soar/padbind/internal/input"
)

const fullSyncInterval = 5 * time.Second

// StateSource exposes the engine state the broadcaster re-syncs from.
type StateSource interface {
	Bindings() input.Tables
	States() [input.SlotCount]uint8
}

// Broadcaster is the engine's mapping display: it turns engine change
// notifications into sequence-numbered JSON messages for every client, and
// re-sends a full sync periodically so late or lossy clients converge. Its
// methods never block; the hub drops slow clients instead.
type Broadcaster struct {
	hub *Hub
	src StateSource
	mu  sync.Mutex
	seq int64
}

func NewBroadcaster(h *Hub, src StateSource) *Broadcaster {
	return &Broadcaster{hub: h, src: src}
}

func (b *Broadcaster) next() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.seq++
	return b.seq
}

// BindingsChanged implements input.Notifier.
func (b *Broadcaster) BindingsChanged(t input.Tables) {
	b.send(NewBindingsMessage(b.next(), t))
}

// StatesChanged implements input.Notifier.
func (b *Broadcaster) StatesChanged(states [input.SlotCount]uint8) {
	b.send(NewStateMessage(b.next(), states))
}

// RemapPending implements input.Notifier.
func (b *Broadcaster) RemapPending(slot int, button input.Button) {
	b.send(NewRemapPendingMessage(b.next(), slot, button))
}

// Run re-broadcasts the full bindings and state on a timer. Should be run
// in a goroutine.
func (b *Broadcaster) Run(ctx context.Context) {
	ticker := time.NewTicker(fullSyncInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			b.BindingsChanged(b.src.Bindings())
			b.StatesChanged(b.src.States())
		}
	}
}

// SendInitialState pushes the current bindings and state to a newly
// connected client.
func (b *Broadcaster) SendInitialState(c *Client) {
	msgs := []*WSMessage{
		NewBindingsMessage(b.next(), b.src.Bindings()),
		NewStateMessage(b.next(), b.src.States()),
	}
	for _, msg := range msgs {
		data, err := json.Marshal(msg)
		if err != nil {
			log.Printf("Error marshaling initial state: %v", err)
			continue
		}
		select {
		case c.send <- data:
		default:
		}
	}
}

func (b *Broadcaster) send(msg *WSMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling %s message: %v", msg.Type, err)
		return
	}
	b.hub.Broadcast(data)
}
