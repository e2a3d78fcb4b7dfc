package middleware

import (
	"sync"
	"time"
)

// cachedResponse is a replayable response.
type cachedResponse struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

type idempotencyEntry struct {
	resp    *cachedResponse // nil while the first request is still running
	started time.Time
	stored  time.Time
}

// reservation is the result of idempotencyCache.Reserve.
type reservation int

const (
	reserved reservation = iota
	replay
	inFlight
)

// idempotencyCache remembers responses per idempotency key and marks keys
// whose first request has not finished yet.
type idempotencyCache struct {
	mu       sync.Mutex
	items    map[string]*idempotencyEntry
	ttl      time.Duration
	now      func() time.Time
	stopCh   chan struct{}
	stopOnce sync.Once
}

func newIdempotencyCache(ttl time.Duration) *idempotencyCache {
	c := &idempotencyCache{
		items:  make(map[string]*idempotencyEntry),
		ttl:    ttl,
		now:    time.Now,
		stopCh: make(chan struct{}),
	}
	go c.sweepLoop(time.Minute)
	return c
}

// Reserve claims key for a new request, or reports a stored response or a
// request still in flight.
func (c *idempotencyCache) Reserve(key string) (reservation, *cachedResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if e, ok := c.items[key]; ok && !c.expired(e, now) {
		if e.resp == nil {
			return inFlight, nil
		}
		return replay, e.resp
	}
	c.items[key] = &idempotencyEntry{started: now}
	return reserved, nil
}

// Complete stores the response of a reserved key.
func (c *idempotencyCache) Complete(key string, resp *cachedResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.items[key]; ok {
		e.resp = resp
		e.stored = c.now()
	}
}

// Release forgets a reserved key so the request may be retried.
func (c *idempotencyCache) Release(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

func (c *idempotencyCache) expired(e *idempotencyEntry, now time.Time) bool {
	if e.resp == nil {
		return now.Sub(e.started) > c.ttl
	}
	return now.Sub(e.stored) > c.ttl
}

func (c *idempotencyCache) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for k, e := range c.items {
		if c.expired(e, now) {
			delete(c.items, k)
		}
	}
}

func (c *idempotencyCache) sweepLoop(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			c.sweep()
		case <-c.stopCh:
			return
		}
	}
}

// Stop ends the sweep goroutine.
func (c *idempotencyCache) Stop() {
	c.stopOnce.Do(func() { close(c.stopCh) })
}

func (c *idempotencyCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}
