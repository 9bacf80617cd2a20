package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/cypherlabdev/odds-ingestion-service/internal/models"
	"github.com/cypherlabdev/odds-ingestion-service/pkg/analytics"
)

// ErrNoOdds is returned when no usable quote exists for a game market
var ErrNoOdds = errors.New("no odds available")

// AnalyticsService derives read-side analytics from stored quotes
type AnalyticsService struct {
	reader SnapshotReader
	cache  CurrentOddsCache // optional
	now    func() time.Time
	logger zerolog.Logger
}

// NewAnalyticsService creates a new analytics service. cache may be nil.
func NewAnalyticsService(
	reader SnapshotReader,
	cache CurrentOddsCache,
	logger zerolog.Logger,
) *AnalyticsService {
	return &AnalyticsService{
		reader: reader,
		cache:  cache,
		now:    time.Now,
		logger: logger.With().Str("component", "analytics_service").Logger(),
	}
}

// BestLineView is the best available price per side across bookmakers
type BestLineView struct {
	GameID     string             `json:"game_id"`
	Market     models.MarketType  `json:"market"`
	Best       analytics.BestOdds `json:"best"`
	Bookmakers int                `json:"bookmakers"`
	AsOf       time.Time          `json:"as_of"`
}

// ConsensusView is the equal-weight market consensus for a game market
type ConsensusView struct {
	GameID    string              `json:"game_id"`
	Market    models.MarketType   `json:"market"`
	Consensus analytics.Consensus `json:"consensus"`
	AsOf      time.Time           `json:"as_of"`
}

// BaselineView is the market-derived baseline of one bookmaker's quote
type BaselineView struct {
	GameID    string                 `json:"game_id"`
	Market    models.MarketType      `json:"market"`
	Bookmaker models.BookmakerName   `json:"bookmaker"`
	Line      *string                `json:"line,omitempty"`
	Baseline  analytics.BaselinePair `json:"baseline"`
	QuotedAt  time.Time              `json:"quoted_at"`
}

// CurrentOdds returns the latest quote per bookmaker. Cached and stored quotes
// are merged by bookmaker, newest wins, so a bookmaker whose cache entry expired
// or was never published is still returned from the store.
func (s *AnalyticsService) CurrentOdds(ctx context.Context, gameID string, market models.MarketType) ([]models.SnapshotRecord, error) {
	var cached []models.SnapshotRecord
	if s.cache != nil {
		var err error
		cached, err = s.cache.GetCurrent(ctx, gameID, market)
		// Don't fail on cache errors
		if err != nil {
			s.logger.Warn().
				Err(err).
				Str("game_id", gameID).
				Str("market", string(market)).
				Msg("cache error, falling back to snapshot store")
			cached = nil
		}
	}

	stored, err := s.reader.LatestSnapshots(ctx, gameID, market)
	if err != nil {
		if len(cached) == 0 {
			return nil, fmt.Errorf("failed to load latest snapshots: %w", err)
		}
		s.logger.Warn().
			Err(err).
			Str("game_id", gameID).
			Str("market", string(market)).
			Int("bookmakers", len(cached)).
			Msg("snapshot store error, serving cached odds only")
		return cached, nil
	}

	if len(cached) == 0 {
		return stored, nil
	}
	return mergeLatest(cached, stored), nil
}

// mergeLatest keeps the newest record per bookmaker, sorted by bookmaker
func mergeLatest(sets ...[]models.SnapshotRecord) []models.SnapshotRecord {
	latest := make(map[models.BookmakerName]models.SnapshotRecord)
	for _, set := range sets {
		for _, r := range set {
			if prev, ok := latest[r.Bookmaker]; ok && !r.Timestamp.After(prev.Timestamp) {
				continue
			}
			latest[r.Bookmaker] = r
		}
	}

	merged := make([]models.SnapshotRecord, 0, len(latest))
	for _, r := range latest {
		merged = append(merged, r)
	}
	sort.Slice(merged, func(i, j int) bool {
		return merged[i].Bookmaker < merged[j].Bookmaker
	})
	return merged
}

// BestLine returns the most favorable current price per side
func (s *AnalyticsService) BestLine(ctx context.Context, gameID string, market models.MarketType) (*BestLineView, error) {
	quotes, asOf, err := s.currentBookQuotes(ctx, gameID, market)
	if err != nil {
		return nil, err
	}

	return &BestLineView{
		GameID:     gameID,
		Market:     market,
		Best:       analytics.FindBestOdds(quotes),
		Bookmakers: len(quotes),
		AsOf:       asOf,
	}, nil
}

// Consensus returns the vig-free consensus of the current quotes
func (s *AnalyticsService) Consensus(ctx context.Context, gameID string, market models.MarketType) (*ConsensusView, error) {
	quotes, asOf, err := s.currentBookQuotes(ctx, gameID, market)
	if err != nil {
		return nil, err
	}

	return &ConsensusView{
		GameID:    gameID,
		Market:    market,
		Consensus: analytics.CalculateConsensus(quotes),
		AsOf:      asOf,
	}, nil
}

// Baseline grades one bookmaker's current quote against its own vig-free price.
// An empty bookmaker selects the most recently quoted one.
func (s *AnalyticsService) Baseline(ctx context.Context, gameID string, market models.MarketType, bookmaker models.BookmakerName) (*BaselineView, error) {
	records, err := s.CurrentOdds(ctx, gameID, market)
	if err != nil {
		return nil, err
	}

	var chosen *models.SnapshotRecord
	for i := range records {
		r := &records[i]
		if _, ok := twoWay(r); !ok {
			continue
		}
		if bookmaker != "" {
			if r.Bookmaker == bookmaker {
				chosen = r
				break
			}
			continue
		}
		if chosen == nil || r.Timestamp.After(chosen.Timestamp) {
			chosen = r
		}
	}
	if chosen == nil {
		return nil, fmt.Errorf("baseline for game %s %s: %w", gameID, market, ErrNoOdds)
	}

	q, _ := twoWay(chosen)
	pair := analytics.GenerateBaselinePrediction(analytics.TwoWayOdds{
		HomeOdds:  q.HomeOdds,
		AwayOdds:  q.AwayOdds,
		Timestamp: chosen.Timestamp,
		Totals:    market == models.MarketTotal,
	}, s.now())

	view := &BaselineView{
		GameID:    gameID,
		Market:    market,
		Bookmaker: chosen.Bookmaker,
		Baseline:  pair,
		QuotedAt:  chosen.Timestamp,
	}
	if chosen.Line.Valid {
		line := chosen.Line.Decimal.String()
		view.Line = &line
	}

	return view, nil
}

// History returns the stored time series of a game, oldest first
func (s *AnalyticsService) History(ctx context.Context, query models.SnapshotQuery) ([]models.SnapshotRecord, error) {
	records, err := s.reader.QuerySnapshots(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshot history: %w", err)
	}
	return records, nil
}

// currentBookQuotes reduces current records to complete two-way prices
func (s *AnalyticsService) currentBookQuotes(ctx context.Context, gameID string, market models.MarketType) ([]analytics.BookQuote, time.Time, error) {
	records, err := s.CurrentOdds(ctx, gameID, market)
	if err != nil {
		return nil, time.Time{}, err
	}

	var asOf time.Time
	quotes := make([]analytics.BookQuote, 0, len(records))
	for i := range records {
		q, ok := twoWay(&records[i])
		if !ok {
			s.logger.Debug().
				Str("game_id", gameID).
				Str("bookmaker", string(records[i].Bookmaker)).
				Msg("skipping one-sided quote")
			continue
		}
		quotes = append(quotes, q)
		if records[i].Timestamp.After(asOf) {
			asOf = records[i].Timestamp
		}
	}

	if len(quotes) == 0 {
		return nil, time.Time{}, fmt.Errorf("game %s %s: %w", gameID, market, ErrNoOdds)
	}
	return quotes, asOf, nil
}

// twoWay maps a record to a two-way price; totals use over/under
func twoWay(r *models.SnapshotRecord) (analytics.BookQuote, bool) {
	a, b := r.HomeOdds, r.AwayOdds
	if r.MarketType == models.MarketTotal {
		a, b = r.OverOdds, r.UnderOdds
	}
	if a == nil || b == nil {
		return analytics.BookQuote{}, false
	}
	return analytics.BookQuote{
		Bookmaker: string(r.Bookmaker),
		HomeOdds:  *a,
		AwayOdds:  *b,
	}, true
}
