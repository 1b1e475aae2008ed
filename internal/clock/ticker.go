package clock

import (
	"context"
	"time"
)

// Ticker calls a function once per interval on its own goroutine until stopped
type Ticker struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// StartTicker runs fn every interval until ctx is done or Stop is called.
// fn receives the time since the ticker started.
func StartTicker(ctx context.Context, interval time.Duration, fn func(elapsed time.Duration)) *Ticker {
	ctx, cancel := context.WithCancel(ctx)
	t := &Ticker{cancel: cancel, done: make(chan struct{})}
	started := time.Now()

	go func() {
		defer close(t.done)
		tk := time.NewTicker(interval)
		defer tk.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-tk.C:
				fn(now.Sub(started))
			}
		}
	}()

	return t
}

// Stop cancels the ticker and waits for its goroutine to exit. Safe to call twice.
func (t *Ticker) Stop() {
	t.cancel()
	<-t.done
}

// Done is closed once the ticker goroutine has exited
func (t *Ticker) Done() <-chan struct{} {
	return t.done
}
