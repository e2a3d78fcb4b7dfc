package cache

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/guttosm/freshcart-pos/internal/domain/model"
	"github.com/guttosm/freshcart-pos/internal/metrics"
)

// TTL is a thread-safe LRU cache whose entries also expire after a fixed TTL.
type TTL struct {
	mu        sync.Mutex
	capacity  int
	ttl       time.Duration
	items     map[string]*entry
	head      *entry
	tail      *entry
	stopCh    chan struct{}
	stopOnce  sync.Once
	hits      int64
	misses    int64
	evictions int64
	now       func() time.Time
}

type entry struct {
	key       string
	value     model.AnalysisResult
	expiresAt time.Time
	prev      *entry
	next      *entry
}

// NewTTL creates a cache holding at most capacity entries, each valid for ttl.
// A background goroutine sweeps expired entries until Stop is called.
func NewTTL(capacity int, ttl time.Duration) *TTL {
	if capacity < 1 {
		capacity = 1
	}
	c := &TTL{
		capacity: capacity,
		ttl:      ttl,
		items:    make(map[string]*entry, capacity),
		stopCh:   make(chan struct{}),
		now:      time.Now,
	}
	go c.sweep(time.Minute)
	return c
}

// Get returns a live entry and marks it most recently used.
func (c *TTL) Get(key string) (model.AnalysisResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.items[key]
	if !ok {
		atomic.AddInt64(&c.misses, 1)
		metrics.RecordCacheOperation("get", "miss")
		return model.AnalysisResult{}, false
	}
	if c.now().After(e.expiresAt) {
		c.removeEntry(e)
		atomic.AddInt64(&c.misses, 1)
		metrics.RecordCacheOperation("get", "expired")
		return model.AnalysisResult{}, false
	}

	c.moveToFront(e)
	atomic.AddInt64(&c.hits, 1)
	metrics.RecordCacheOperation("get", "hit")
	return e.value.Clone(), true
}

// Set stores value under key, evicting the least recently used entry when full.
func (c *TTL) Set(key string, value model.AnalysisResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	value = value.Clone()
	expiresAt := c.now().Add(c.ttl)

	if e, ok := c.items[key]; ok {
		e.value = value
		e.expiresAt = expiresAt
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value, expiresAt: expiresAt}
	c.items[key] = e
	c.addToFront(e)

	if len(c.items) > c.capacity {
		c.removeEntry(c.tail)
		atomic.AddInt64(&c.evictions, 1)
		metrics.RecordCacheOperation("evict", "capacity")
	}
	metrics.RecordCacheOperation("set", "success")
	metrics.UpdateCacheSize(len(c.items))
}

// Stop ends the background sweeper. It is safe to call more than once.
func (c *TTL) Stop() {
	c.stopOnce.Do(func() { close(c.stopCh) })
}

// Metrics returns current cache performance metrics.
func (c *TTL) Metrics() Metrics {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Metrics{
		Hits:      atomic.LoadInt64(&c.hits),
		Misses:    atomic.LoadInt64(&c.misses),
		Evictions: atomic.LoadInt64(&c.evictions),
		Size:      len(c.items),
		Capacity:  c.capacity,
	}
}

func (c *TTL) sweep(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.removeExpired()
		case <-c.stopCh:
			return
		}
	}
}

func (c *TTL) removeExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for _, e := range c.items {
		if now.After(e.expiresAt) {
			c.removeEntry(e)
		}
	}
	metrics.UpdateCacheSize(len(c.items))
}

func (c *TTL) removeEntry(e *entry) {
	delete(c.items, e.key)
	c.unlink(e)
}

func (c *TTL) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.unlink(e)
	c.addToFront(e)
}

func (c *TTL) addToFront(e *entry) {
	e.prev = nil
	e.next = c.head
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *TTL) unlink(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
	e.prev, e.next = nil, nil
}
