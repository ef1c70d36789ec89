package cache

import (
	"sync"
	"time"
)

// Cache is a keyed store whose entries expire after a TTL
type Cache[V any] interface {
	// Get returns the value and true if found and not expired
	Get(key string) (V, bool)

	// Set stores a value with the specified TTL
	Set(key string, value V, ttl time.Duration)

	// Touch pushes the expiration of an existing entry to now+ttl.
	// It returns false when the key is missing or already expired.
	Touch(key string, ttl time.Duration) bool

	// GetOrSet atomically gets a value or computes and caches it if not found
	GetOrSet(key string, ttl time.Duration, compute func() (V, error)) (V, error)

	// Delete removes a key and reports whether it held a live entry
	Delete(key string) bool

	// Size returns the number of entries, expired ones included until the next cleanup
	Size() int

	// Stop shuts down the cleanup goroutine
	Stop()
}

type item[V any] struct {
	value      V
	expiration time.Time
}

func (it *item[V]) expiredAt(now time.Time) bool {
	return !now.Before(it.expiration)
}

// Option configures an InMemoryCache
type Option[V any] func(*InMemoryCache[V])

// WithClock replaces time.Now, mostly for tests
func WithClock[V any](now func() time.Time) Option[V] {
	return func(c *InMemoryCache[V]) {
		c.now = now
	}
}

// WithEvictionHandler registers a callback run for every entry removed by the cleanup loop
func WithEvictionHandler[V any](fn func(key string, value V)) Option[V] {
	return func(c *InMemoryCache[V]) {
		c.onEvict = fn
	}
}

// InMemoryCache is a thread-safe in-memory cache implementation
type InMemoryCache[V any] struct {
	items    map[string]*item[V]
	mu       sync.RWMutex
	now      func() time.Time
	onEvict  func(key string, value V)
	stop     chan struct{}
	stopOnce sync.Once
}

// NewInMemoryCache creates a cache that removes expired entries every cleanupInterval
func NewInMemoryCache[V any](cleanupInterval time.Duration, opts ...Option[V]) *InMemoryCache[V] {
	c := &InMemoryCache[V]{
		items: make(map[string]*item[V]),
		now:   time.Now,
		stop:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}

	go c.startCleanup(cleanupInterval)

	return c
}

// Get retrieves a value from the cache
func (c *InMemoryCache[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var zero V
	it, found := c.items[key]
	if !found || it.expiredAt(c.now()) {
		return zero, false
	}
	return it.value, true
}

// Set stores a value in the cache with the specified TTL
func (c *InMemoryCache[V]) Set(key string, value V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = &item[V]{value: value, expiration: c.now().Add(ttl)}
}

// Touch extends the lifetime of a live entry
func (c *InMemoryCache[V]) Touch(key string, ttl time.Duration) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	it, found := c.items[key]
	if !found || it.expiredAt(now) {
		return false
	}
	it.expiration = now.Add(ttl)
	return true
}

// GetOrSet atomically gets a value or computes and caches it if not found
func (c *InMemoryCache[V]) GetOrSet(key string, ttl time.Duration, compute func() (V, error)) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// another goroutine may have computed it meanwhile
	now := c.now()
	if it, found := c.items[key]; found && !it.expiredAt(now) {
		return it.value, nil
	}

	value, err := compute()
	if err != nil {
		var zero V
		return zero, err
	}

	c.items[key] = &item[V]{value: value, expiration: now.Add(ttl)}
	return value, nil
}

// Delete removes a key and reports whether it held a live entry. Only one of
// several concurrent deletes of the same key returns true. An expired entry
// is handed to the eviction handler, as the cleanup loop would have done.
func (c *InMemoryCache[V]) Delete(key string) bool {
	c.mu.Lock()
	it, found := c.items[key]
	if found {
		delete(c.items, key)
	}
	c.mu.Unlock()

	if !found {
		return false
	}
	if it.expiredAt(c.now()) {
		if c.onEvict != nil {
			c.onEvict(key, it.value)
		}
		return false
	}
	return true
}

// Size returns the number of items currently in the cache
func (c *InMemoryCache[V]) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.items)
}

// Stop shuts down the cleanup goroutine. It is safe to call more than once.
func (c *InMemoryCache[V]) Stop() {
	c.stopOnce.Do(func() {
		close(c.stop)
	})
}

func (c *InMemoryCache[V]) startCleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.cleanup()
		case <-c.stop:
			return
		}
	}
}

// cleanup removes expired entries and reports them to the eviction handler outside the lock
func (c *InMemoryCache[V]) cleanup() {
	type evicted struct {
		key   string
		value V
	}
	var removed []evicted

	c.mu.Lock()
	now := c.now()
	for key, it := range c.items {
		if it.expiredAt(now) {
			delete(c.items, key)
			removed = append(removed, evicted{key: key, value: it.value})
		}
	}
	c.mu.Unlock()

	if c.onEvict == nil {
		return
	}
	for _, e := range removed {
		c.onEvict(e.key, e.value)
	}
}
