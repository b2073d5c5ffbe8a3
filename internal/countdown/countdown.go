// Package countdown derives the remaining time until a tournament starts.
package countdown

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
)

const (
	msPerSecond = int64(1000)
	msPerMinute = 60 * msPerSecond
	msPerHour   = 60 * msPerMinute
	msPerDay    = 24 * msPerHour
)

// Remaining is the time left until a target, split into calendar units
type Remaining struct {
	Days      int64 `json:"days"`
	Hours     int64 `json:"hours"`
	Minutes   int64 `json:"minutes"`
	Seconds   int64 `json:"seconds"`
	IsRunning bool  `json:"is_running"`
}

// Finished is the terminal state
var Finished = Remaining{}

// Derive computes the remaining time from now until target with millisecond
// resolution. Once target is reached every unit is zero and IsRunning is false.
func Derive(target, now time.Time) Remaining {
	diff := target.Sub(now).Milliseconds()
	if diff <= 0 {
		return Finished
	}
	r := Remaining{IsRunning: true}
	r.Days = diff / msPerDay
	diff %= msPerDay
	r.Hours = diff / msPerHour
	diff %= msPerHour
	r.Minutes = diff / msPerMinute
	diff %= msPerMinute
	r.Seconds = diff / msPerSecond
	return r
}

// Watch emits the derived state immediately and then once per second until the
// countdown finishes or ctx is done. The channel is closed when watching stops.
// A different target requires a new Watch.
func Watch(ctx context.Context, clock clockwork.Clock, target time.Time) <-chan Remaining {
	out := make(chan Remaining, 1)
	go func() {
		defer close(out)

		r := Derive(target, clock.Now())
		if !send(ctx, out, r) || !r.IsRunning {
			return
		}

		ticker := clock.NewTicker(time.Second)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.Chan():
				r = Derive(target, clock.Now())
				if !send(ctx, out, r) || !r.IsRunning {
					return
				}
			}
		}
	}()
	return out
}

func send(ctx context.Context, out chan<- Remaining, r Remaining) bool {
	select {
	case <-ctx.Done():
		return false
	case out <- r:
		return true
	}
}
