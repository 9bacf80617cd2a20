package dedup

import (
	"sync"
	"time"

	"github.com/cypherlabdev/odds-ingestion-service/internal/models"
)

// Entry is the last quote persisted for a key
type Entry struct {
	Quote    models.Quote
	StoredAt time.Time
}

// Decide reports whether a quote should be persisted given the previous entry.
//
//  1. no previous entry: store
//  2. window elapsed since the previous store: store, even if unchanged
//  3. otherwise store only if a price or line changed
func Decide(prev *Entry, quote models.Quote, window time.Duration, now time.Time) bool {
	if prev == nil {
		return true
	}
	if now.Sub(prev.StoredAt) >= window {
		return true
	}
	return !prev.Quote.SamePrices(quote)
}

// Cache is the process-local record of the last stored quote per key.
// It is safe for concurrent use. State is not persisted, so a restart
// forces one fresh write per key.
type Cache struct {
	mu      sync.RWMutex
	entries map[models.QuoteKey]Entry
	now     func() time.Time
}

// Option configures a Cache
type Option func(*Cache)

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		c.now = now
	}
}

// New creates an empty cache
func New(opts ...Option) *Cache {
	c := &Cache{
		entries: make(map[models.QuoteKey]Entry),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ShouldStore applies Decide to the cached entry for key
func (c *Cache) ShouldStore(key models.QuoteKey, quote models.Quote, window time.Duration) bool {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return Decide(nil, quote, window, c.now())
	}
	return Decide(&entry, quote, window, c.now())
}

// Record marks quote as persisted for key. Call only after the write succeeded.
func (c *Cache) Record(key models.QuoteKey, quote models.Quote) {
	c.mu.Lock()
	c.entries[key] = Entry{Quote: quote, StoredAt: c.now()}
	c.mu.Unlock()
}

// Get returns the cached entry for key
func (c *Cache) Get(key models.QuoteKey) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[key]
	return entry, ok
}

// Len returns the number of tracked keys
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Reset drops every entry
func (c *Cache) Reset() {
	c.mu.Lock()
	c.entries = make(map[models.QuoteKey]Entry)
	c.mu.Unlock()
}
