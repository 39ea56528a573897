// Package refresh carries "something changed, recompute" signals from the
// services that mutate records to whoever renders derived badges.
package refresh

import "sync"

type Signal struct {
	Reason string
}

// Publisher is what mutating services depend on.
type Publisher interface {
	Publish(reason string)
}

// Bus is a fan-out channel. Publish never blocks: a subscriber that has not
// consumed its previous signal keeps that one and the new one is dropped,
// since a single pending refresh covers both.
type Bus struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan Signal
}

func NewBus() *Bus {
	return &Bus{subs: map[int]chan Signal{}}
}

func (b *Bus) Subscribe() (<-chan Signal, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	ch := make(chan Signal, 1)
	b.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.subs, id)
			close(ch)
		})
	}
	return ch, cancel
}

func (b *Bus) Publish(reason string) {
	if b == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- Signal{Reason: reason}:
		default:
		}
	}
}

// Subscribers reports open streams; /metrics exposes it.
func (b *Bus) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Nop discards signals. Services fall back to it when no bus is wired.
type Nop struct{}

func (Nop) Publish(string) {}
