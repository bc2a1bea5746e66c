package protocol

import (
	"context"
	"time"

	"github.com/jellydator/ttlcache/v3"

	"github.com/wagiedev/trade-input-go/internal/input"
)

const (
	minSweepInterval = 10 * time.Millisecond
	maxSweepInterval = time.Second
)

// deadlines tracks the safety timeout of pending inputs, keyed by pending ID.
// Only expirations are reported; disarming an ID is silent.
// Expired entries are swept by run, not by ttlcache's own Start loop.
type deadlines struct {
	cache       *ttlcache.Cache[string, input.Kind]
	unsubscribe func()
	interval    time.Duration

	quit     chan struct{}
	loopDone chan struct{}
}

func newDeadlines(timeout time.Duration, onExpire func(ctx context.Context, id string)) *deadlines {
	c := ttlcache.New[string, input.Kind](
		ttlcache.WithTTL[string, input.Kind](timeout),
		ttlcache.WithDisableTouchOnHit[string, input.Kind](),
	)

	unsubscribe := c.OnEviction(func(
		ctx context.Context,
		reason ttlcache.EvictionReason,
		item *ttlcache.Item[string, input.Kind],
	) {
		if reason == ttlcache.EvictionReasonExpired {
			onExpire(ctx, item.Key())
		}
	})

	return &deadlines{
		cache:       c,
		unsubscribe: unsubscribe,
		interval:    sweepInterval(timeout),
		quit:        make(chan struct{}),
		loopDone:    make(chan struct{}),
	}
}

// sweepInterval checks roughly ten times per timeout.
func sweepInterval(timeout time.Duration) time.Duration {
	return min(max(timeout/10, minSweepInterval), maxSweepInterval)
}

// run evicts expired entries until stop is called.
func (d *deadlines) run() {
	defer close(d.loopDone)

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			d.cache.DeleteExpired()
		case <-d.quit:
			return
		}
	}
}

// stop ends the sweep loop and waits for in-flight expiry callbacks.
// run must have been started, though it need not be scheduled yet.
func (d *deadlines) stop() {
	close(d.quit)
	<-d.loopDone
	d.unsubscribe()
}

func (d *deadlines) arm(id string, kind input.Kind) {
	d.cache.Set(id, kind, ttlcache.DefaultTTL)
}

func (d *deadlines) disarm(id string) {
	d.cache.Delete(id)
}
