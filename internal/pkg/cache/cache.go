// Package cache provides the in-process read cache fronting the order list
// endpoints: a key -> (value, expiry, tag-set) store with tag-based
// invalidation, plus single-flight coalescing of concurrent identical loads.
// One Cache is constructed per process and passed by reference to handlers.
package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	"orderflow/internal/pkg/clock"
)

type entry struct {
	value  any
	expiry time.Time
	tags   map[string]struct{}
}

type flight struct {
	done  chan struct{}
	value any
	err   error
}

type Cache struct {
	mu         sync.Mutex
	entries    map[string]*entry
	inflight   map[string]*flight
	lastLoadAt map[string]time.Time
	clock      clock.Clock
	refreshMin time.Duration
}

// Option tweaks construction; kept minimal on purpose.
type Option func(*Cache)

// WithRefreshWindow sets the window inside which refresh=true requests are
// still served from cache (refresh spam protection).
func WithRefreshWindow(d time.Duration) Option {
	return func(c *Cache) { c.refreshMin = d }
}

func WithClock(clk clock.Clock) Option {
	return func(c *Cache) { c.clock = clk }
}

func New(opts ...Option) *Cache {
	c := &Cache{
		entries:    make(map[string]*entry),
		inflight:   make(map[string]*flight),
		lastLoadAt: make(map[string]time.Time),
		clock:      clock.NewRealClock(),
		refreshMin: 15 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Key builds a stable cache key from its non-empty parts.
func Key(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.ToLower(strings.Join(kept, "|"))
}

func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.getLocked(key)
}

func (c *Cache) getLocked(key string) (any, bool) {
	rec, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if !rec.expiry.IsZero() && rec.expiry.Before(c.clock.Now()) {
		delete(c.entries, key)
		return nil, false
	}
	return rec.value, true
}

func (c *Cache) Set(key string, value any, ttl time.Duration, tags []string) {
	rec := &entry{value: value, tags: make(map[string]struct{}, len(tags))}
	if ttl > 0 {
		rec.expiry = c.clock.Now().Add(ttl)
	}
	for _, t := range tags {
		rec.tags[t] = struct{}{}
	}
	c.mu.Lock()
	c.entries[key] = rec
	c.mu.Unlock()
}

func (c *Cache) Delete(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// InvalidateTag drops every entry carrying the given tag.
func (c *Cache) InvalidateTag(tag string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, rec := range c.entries {
		if _, ok := rec.tags[tag]; ok {
			delete(c.entries, k)
		}
	}
}

// LoadParams describes one Through call.
type LoadParams struct {
	Key     string
	TTL     time.Duration
	Tags    []string
	Refresh bool
	Loader  func(ctx context.Context) (any, error)
}

// Through returns the cached value for p.Key, or runs p.Loader exactly once
// even under concurrent identical requests. Refresh bypasses the cache unless
// a load for the same key already ran inside the refresh window.
func (c *Cache) Through(ctx context.Context, p LoadParams) (any, error) {
	c.mu.Lock()

	if !p.Refresh {
		if v, ok := c.getLocked(p.Key); ok {
			c.mu.Unlock()
			return v, nil
		}
	} else if last, ok := c.lastLoadAt[p.Key]; ok && c.clock.Now().Sub(last) < c.refreshMin {
		if v, ok := c.getLocked(p.Key); ok {
			c.mu.Unlock()
			return v, nil
		}
	}

	if f, ok := c.inflight[p.Key]; ok {
		c.mu.Unlock()
		select {
		case <-f.done:
			return f.value, f.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	f := &flight{done: make(chan struct{})}
	c.inflight[p.Key] = f
	c.mu.Unlock()

	f.value, f.err = p.Loader(ctx)

	c.mu.Lock()
	delete(c.inflight, p.Key)
	if f.err == nil {
		c.lastLoadAt[p.Key] = c.clock.Now()
	}
	c.mu.Unlock()
	if f.err == nil {
		c.Set(p.Key, f.value, p.TTL, p.Tags)
	}
	close(f.done)

	return f.value, f.err
}
