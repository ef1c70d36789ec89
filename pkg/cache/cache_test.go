package cache

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func newTestCache(t *testing.T, opts ...Option[string]) (*InMemoryCache[string], *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := NewInMemoryCache[string](time.Hour, append([]Option[string]{WithClock[string](clock.Now)}, opts...)...)
	t.Cleanup(c.Stop)
	return c, clock
}

func TestInMemoryCache_BasicOperations(t *testing.T) {
	c, _ := newTestCache(t)

	c.Set("key1", "value1", time.Second)
	value, found := c.Get("key1")
	require.True(t, found)
	assert.Equal(t, "value1", value)

	value, found = c.Get("nonexistent")
	assert.False(t, found)
	assert.Equal(t, "", value)

	assert.True(t, c.Delete("key1"))
	assert.False(t, c.Delete("key1"))
	_, found = c.Get("key1")
	assert.False(t, found)
	assert.Equal(t, 0, c.Size())
}

func TestInMemoryCache_Expiration(t *testing.T) {
	c, clock := newTestCache(t)

	c.Set("expire", "value", 50*time.Millisecond)

	clock.Advance(49 * time.Millisecond)
	_, found := c.Get("expire")
	assert.True(t, found)

	clock.Advance(time.Millisecond)
	_, found = c.Get("expire")
	assert.False(t, found)

	// still counted until cleanup runs
	assert.Equal(t, 1, c.Size())
	c.cleanup()
	assert.Equal(t, 0, c.Size())
}

func TestInMemoryCache_Touch(t *testing.T) {
	c, clock := newTestCache(t)

	c.Set("session", "s", time.Minute)

	clock.Advance(50 * time.Second)
	require.True(t, c.Touch("session", time.Minute))

	clock.Advance(50 * time.Second)
	_, found := c.Get("session")
	assert.True(t, found, "touch should slide the expiration")

	clock.Advance(11 * time.Second)
	_, found = c.Get("session")
	assert.False(t, found)
	assert.False(t, c.Touch("session", time.Minute), "expired entries cannot be revived")
	assert.False(t, c.Touch("missing", time.Minute))
}

func TestInMemoryCache_GetOrSet(t *testing.T) {
	c, clock := newTestCache(t)

	calls := 0
	compute := func() (string, error) {
		calls++
		return "computed", nil
	}

	v, err := c.GetOrSet("k", time.Second, compute)
	require.NoError(t, err)
	assert.Equal(t, "computed", v)

	v, err = c.GetOrSet("k", time.Second, compute)
	require.NoError(t, err)
	assert.Equal(t, "computed", v)
	assert.Equal(t, 1, calls)

	clock.Advance(time.Second)
	_, err = c.GetOrSet("k", time.Second, compute)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)

	t.Run("errors are not cached", func(t *testing.T) {
		failure := errors.New("boom")
		_, err := c.GetOrSet("bad", time.Second, func() (string, error) { return "", failure })
		assert.ErrorIs(t, err, failure)
		_, found := c.Get("bad")
		assert.False(t, found)
	})
}

func TestInMemoryCache_GetOrSetConcurrent(t *testing.T) {
	c := NewInMemoryCache[int](time.Hour)
	defer c.Stop()

	var calls int32
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := c.GetOrSet("shared", time.Minute, func() (int, error) {
				atomic.AddInt32(&calls, 1)
				return 42, nil
			})
			assert.NoError(t, err)
			assert.Equal(t, 42, v)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestInMemoryCache_EvictionHandler(t *testing.T) {
	var evicted []string
	c, clock := newTestCache(t, WithEvictionHandler[string](func(key string, value string) {
		evicted = append(evicted, key+"="+value)
	}))

	c.Set("a", "1", time.Second)
	c.Set("b", "2", time.Hour)

	clock.Advance(2 * time.Second)
	c.cleanup()

	assert.Equal(t, []string{"a=1"}, evicted)
	assert.Equal(t, 1, c.Size())
}

func TestInMemoryCache_BackgroundCleanup(t *testing.T) {
	c := NewInMemoryCache[string](10 * time.Millisecond)
	defer c.Stop()

	c.Set("short", "v", 5*time.Millisecond)

	assert.Eventually(t, func() bool { return c.Size() == 0 }, time.Second, 5*time.Millisecond)
}

func TestInMemoryCache_StopTwice(t *testing.T) {
	c := NewInMemoryCache[string](time.Millisecond)
	c.Stop()
	assert.NotPanics(t, c.Stop)
}

func TestInMemoryCache_DeleteExpiredEntry(t *testing.T) {
	var evicted []string
	c, clock := newTestCache(t, WithEvictionHandler[string](func(key string, value string) {
		evicted = append(evicted, key+"="+value)
	}))

	c.Set("a", "1", time.Second)
	clock.Advance(2 * time.Second)

	assert.False(t, c.Delete("a"))
	assert.Equal(t, []string{"a=1"}, evicted)
	assert.Equal(t, 0, c.Size())

	c.cleanup()
	assert.Equal(t, []string{"a=1"}, evicted)
}
