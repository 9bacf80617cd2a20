package dedup

import (
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cypherlabdev/odds-ingestion-service/internal/models"
)

// fakeClock is a manually advanced time source
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
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

func spreadQuote(home, away int, line float64) models.Quote {
	return models.Quote{
		Bookmaker: "draftkings",
		Market:    models.MarketSpread,
		HomeOdds:  models.Odds(home),
		AwayOdds:  models.Odds(away),
		Line:      decimal.NewNullDecimal(decimal.NewFromFloat(line)),
	}
}

var testKey = models.QuoteKey{GameID: "game-1", BookmakerID: "bk-1", MarketID: "mk-spread"}

// TestDecide tests the three decision branches
func TestDecide(t *testing.T) {
	now := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
	q := spreadQuote(-110, -110, -3.5)
	window := 10 * time.Minute

	t.Run("first observation", func(t *testing.T) {
		assert.True(t, Decide(nil, q, window, now))
	})

	t.Run("unchanged within window", func(t *testing.T) {
		prev := &Entry{Quote: q, StoredAt: now.Add(-3 * time.Minute)}
		assert.False(t, Decide(prev, q, window, now))
	})

	t.Run("window boundary is inclusive", func(t *testing.T) {
		prev := &Entry{Quote: q, StoredAt: now.Add(-window)}
		assert.True(t, Decide(prev, q, window, now))
	})

	t.Run("changed fields within window", func(t *testing.T) {
		prev := &Entry{Quote: q, StoredAt: now.Add(-time.Minute)}

		changed := []models.Quote{
			spreadQuote(-115, -110, -3.5),
			spreadQuote(-110, -105, -3.5),
			spreadQuote(-110, -110, -4),
		}
		withOver := q
		withOver.OverOdds = models.Odds(-110)
		withUnder := q
		withUnder.UnderOdds = models.Odds(-110)
		noLine := q
		noLine.Line = decimal.NullDecimal{}
		changed = append(changed, withOver, withUnder, noLine)

		for i, c := range changed {
			assert.True(t, Decide(prev, c, window, now), "case %d", i)
		}
	})

	t.Run("equal lines with different representation", func(t *testing.T) {
		prev := &Entry{Quote: q, StoredAt: now.Add(-time.Minute)}
		same := q
		same.Line = decimal.NewNullDecimal(decimal.RequireFromString("-3.50"))
		assert.False(t, Decide(prev, same, window, now))
	})

	t.Run("timestamp alone is not a change", func(t *testing.T) {
		prev := &Entry{Quote: q, StoredAt: now.Add(-time.Minute)}
		later := q
		later.Timestamp = now
		assert.False(t, Decide(prev, later, window, now))
	})
}

// TestCache_DedupWindowScenario tests storage at 0, skip at minute 3, heartbeat at minute 11
func TestCache_DedupWindowScenario(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)}
	cache := New(WithClock(clock.Now))
	q := spreadQuote(-110, -110, -3.5)
	window := 10 * time.Minute

	require.True(t, cache.ShouldStore(testKey, q, window))
	cache.Record(testKey, q)

	assert.False(t, cache.ShouldStore(testKey, q, window), "immediate repeat")

	clock.Advance(3 * time.Minute)
	assert.False(t, cache.ShouldStore(testKey, q, window), "minute 3")

	clock.Advance(8 * time.Minute)
	assert.True(t, cache.ShouldStore(testKey, q, window), "minute 11")
}

// TestCache_RecordOnlyAfterPersist tests that a skipped record keeps the key unobserved
func TestCache_RecordOnlyAfterPersist(t *testing.T) {
	cache := New()
	q := spreadQuote(-110, -110, -3.5)

	assert.True(t, cache.ShouldStore(testKey, q, time.Hour))
	// persistence failed: no Record
	assert.True(t, cache.ShouldStore(testKey, q, time.Hour))
	assert.Equal(t, 0, cache.Len())
}

// TestCache_KeysAreIndependent tests that keys do not share state
func TestCache_KeysAreIndependent(t *testing.T) {
	cache := New()
	q := spreadQuote(-110, -110, -3.5)
	cache.Record(testKey, q)

	other := testKey
	other.BookmakerID = "bk-2"

	assert.False(t, cache.ShouldStore(testKey, q, time.Hour))
	assert.True(t, cache.ShouldStore(other, q, time.Hour))

	entry, ok := cache.Get(testKey)
	require.True(t, ok)
	assert.True(t, entry.Quote.SamePrices(q))
}

// TestCache_Reset tests teardown
func TestCache_Reset(t *testing.T) {
	cache := New()
	cache.Record(testKey, spreadQuote(-110, -110, -3.5))
	require.Equal(t, 1, cache.Len())

	cache.Reset()

	assert.Equal(t, 0, cache.Len())
	assert.True(t, cache.ShouldStore(testKey, spreadQuote(-110, -110, -3.5), time.Hour))
}

// TestCache_ConcurrentAccess tests the cache under parallel writers
func TestCache_ConcurrentAccess(t *testing.T) {
	cache := New()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := models.QuoteKey{GameID: "game", BookmakerID: "bk", MarketID: string(rune('a' + i%5))}
			q := spreadQuote(-110-i, -110, -3.5)
			if cache.ShouldStore(key, q, time.Minute) {
				cache.Record(key, q)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 5, cache.Len())
}
