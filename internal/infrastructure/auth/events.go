package auth

import (
	"sync"

	"github.com/saradorri/tournamenthub/internal/domain"
)

// Broadcaster fans auth events out to subscribers
type Broadcaster struct {
	mu     sync.RWMutex
	nextID int
	subs   map[int]func(domain.AuthEvent)
}

// NewBroadcaster creates a broadcaster without subscribers
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[int]func(domain.AuthEvent))}
}

// Subscribe registers fn and returns its unsubscribe function
func (b *Broadcaster) Subscribe(fn func(domain.AuthEvent)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.nextID
	b.nextID++
	b.subs[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.subs, id)
		})
	}
}

// Publish delivers the event to every subscriber in the caller's goroutine
func (b *Broadcaster) Publish(event domain.AuthEvent) {
	b.mu.RLock()
	subs := make([]func(domain.AuthEvent), 0, len(b.subs))
	for _, fn := range b.subs {
		subs = append(subs, fn)
	}
	b.mu.RUnlock()

	for _, fn := range subs {
		fn(event)
	}
}
