package state

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// ToastKind is the visual category of a toast
type ToastKind string

const (
	ToastSuccess ToastKind = "success"
	ToastError   ToastKind = "error"
)

// Toast is a transient user-facing message
type Toast struct {
	Message string    `json:"message"`
	Kind    ToastKind `json:"type"`
	ShownAt time.Time `json:"shown_at"`
}

// Toaster holds at most one toast. Showing a new toast replaces the current
// one and restarts the auto-dismiss timer.
type Toaster struct {
	clock    clockwork.Clock
	duration time.Duration

	mu      sync.Mutex
	current *Toast
	timer   clockwork.Timer
}

// NewToaster creates a toaster that dismisses after duration. A zero
// duration keeps toasts until they are dismissed explicitly.
func NewToaster(clock clockwork.Clock, duration time.Duration) *Toaster {
	return &Toaster{clock: clock, duration: duration}
}

// Show replaces the current toast
func (t *Toaster) Show(message string, kind ToastKind) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stopLocked()
	toast := &Toast{Message: message, Kind: kind, ShownAt: t.clock.Now()}
	t.current = toast
	if t.duration > 0 {
		t.timer = t.clock.AfterFunc(t.duration, func() {
			t.mu.Lock()
			defer t.mu.Unlock()
			if t.current == toast {
				t.current = nil
				t.timer = nil
			}
		})
	}
}

// Current returns a copy of the visible toast, or nil
func (t *Toaster) Current() *Toast {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.current == nil {
		return nil
	}
	c := *t.current
	return &c
}

// Dismiss hides the current toast
func (t *Toaster) Dismiss() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked()
	t.current = nil
}

// Close stops the pending timer without changing the toast
func (t *Toaster) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked()
}

func (t *Toaster) stopLocked() {
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}
