package poller

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cypherlabdev/odds-ingestion-service/internal/metrics"
	"github.com/cypherlabdev/odds-ingestion-service/internal/models"
	"github.com/cypherlabdev/odds-ingestion-service/internal/service"
	"github.com/cypherlabdev/odds-ingestion-service/internal/store"
)

// League run outcomes
const (
	StatusOK      = "ok"
	StatusSkipped = "skipped"
	StatusFailed  = "failed"
)

// DefaultLookahead bounds how far ahead scheduled games are polled
const DefaultLookahead = 24 * time.Hour

// Config holds orchestrator configuration
type Config struct {
	Leagues     []models.League
	Markets     []models.MarketType // empty means all markets
	DedupWindow time.Duration
	Lookahead   time.Duration
	DryRun      bool
}

// Stats are the counters of one league run
type Stats struct {
	GamesProcessed  int `json:"games_processed"`
	SnapshotsStored int `json:"snapshots_stored"`
	Deduplicated    int `json:"deduplicated"`
	Skipped         int `json:"skipped"`
	Errors          int `json:"errors"`
}

func (s *Stats) add(o Stats) {
	s.GamesProcessed += o.GamesProcessed
	s.SnapshotsStored += o.SnapshotsStored
	s.Deduplicated += o.Deduplicated
	s.Skipped += o.Skipped
	s.Errors += o.Errors
}

// LeagueSummary is the result of polling one league
type LeagueSummary struct {
	League models.League `json:"league"`
	Status string        `json:"status"`
	Reason string        `json:"reason,omitempty"`
	Stats  Stats         `json:"stats"`
}

// RunSummary is the result of one polling run
type RunSummary struct {
	RunID      uuid.UUID       `json:"run_id"`
	StartedAt  time.Time       `json:"started_at"`
	FinishedAt time.Time       `json:"finished_at"`
	DryRun     bool            `json:"dry_run"`
	Healthy    bool            `json:"healthy"`
	Leagues    []LeagueSummary `json:"leagues"`
}

// Totals sums the counters of every league
func (r *RunSummary) Totals() Stats {
	var total Stats
	for _, l := range r.Leagues {
		total.add(l.Stats)
	}
	return total
}

// Orchestrator runs the fetch, dedup and persist cycle for every tracked league
type Orchestrator struct {
	config     Config
	provider   service.OddsProvider
	games      service.GameRepository
	store      service.SnapshotStore
	dedup      service.DedupCache
	publishers []service.SnapshotPublisher
	metrics    *metrics.Metrics
	now        func() time.Time
	logger     zerolog.Logger
}

// Option configures an Orchestrator
type Option func(*Orchestrator)

// WithPublishers adds sinks notified after each persisted snapshot
func WithPublishers(publishers ...service.SnapshotPublisher) Option {
	return func(o *Orchestrator) {
		o.publishers = append(o.publishers, publishers...)
	}
}

// WithMetrics records run outcomes on m
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *Orchestrator) {
		o.metrics = m
	}
}

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) {
		o.now = now
	}
}

// NewOrchestrator creates a new polling orchestrator
func NewOrchestrator(
	config Config,
	provider service.OddsProvider,
	games service.GameRepository,
	snapshots service.SnapshotStore,
	dedup service.DedupCache,
	logger zerolog.Logger,
	opts ...Option,
) *Orchestrator {
	if config.Lookahead <= 0 {
		config.Lookahead = DefaultLookahead
	}
	if len(config.Markets) == 0 {
		config.Markets = models.AllMarkets
	}

	o := &Orchestrator{
		config:   config,
		provider: provider,
		games:    games,
		store:    snapshots,
		dedup:    dedup,
		now:      time.Now,
		logger:   logger.With().Str("component", "poller").Logger(),
	}
	for _, opt := range opts {
		opt(o)
	}
	if config.DryRun {
		o.store = dryRunStore{logger: o.logger}
	}
	return o
}

// RunOnce polls every configured league once.
// On cancellation it returns the partial summary together with the context error.
func (o *Orchestrator) RunOnce(ctx context.Context) (*RunSummary, error) {
	summary := &RunSummary{
		RunID:     uuid.New(),
		StartedAt: o.now(),
		DryRun:    o.config.DryRun,
	}
	logger := o.logger.With().Str("run_id", summary.RunID.String()).Logger()

	logger.Info().
		Int("leagues", len(o.config.Leagues)).
		Bool("dry_run", o.config.DryRun).
		Msg("starting odds poll")

	summary.Healthy = o.provider.HealthCheck(ctx)
	if !summary.Healthy {
		logger.Warn().
			Str("provider", o.provider.Name()).
			Msg("provider health check failed, continuing")
	}

	var runErr error
	for _, league := range o.config.Leagues {
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}

		result, err := o.pollLeague(ctx, league, logger)
		summary.Leagues = append(summary.Leagues, result)
		o.metrics.ObserveLeague(string(league), result.Status, metrics.LeagueStats{
			Stored:       result.Stats.SnapshotsStored,
			Deduplicated: result.Stats.Deduplicated,
			Skipped:      result.Stats.Skipped,
			Errors:       result.Stats.Errors,
		})
		if err != nil {
			runErr = err
			break
		}
	}

	summary.FinishedAt = o.now()
	o.metrics.ObserveRun(summary.FinishedAt.Sub(summary.StartedAt))

	totals := summary.Totals()
	event := logger.Info()
	if runErr != nil {
		event = logger.Warn().Err(runErr)
	}
	event.
		Int("games_processed", totals.GamesProcessed).
		Int("snapshots_stored", totals.SnapshotsStored).
		Int("deduplicated", totals.Deduplicated).
		Int("skipped", totals.Skipped).
		Int("errors", totals.Errors).
		Dur("duration", summary.FinishedAt.Sub(summary.StartedAt)).
		Msg("poll completed")

	return summary, runErr
}

// pollLeague runs one league. The returned error is non-nil only on cancellation.
func (o *Orchestrator) pollLeague(ctx context.Context, league models.League, logger zerolog.Logger) (LeagueSummary, error) {
	result := LeagueSummary{League: league, Status: StatusOK}
	logger = logger.With().Str("league", string(league)).Logger()

	now := o.now()
	games, err := o.games.ListEligibleGames(ctx, league, now, now.Add(o.config.Lookahead))
	if err != nil {
		logger.Error().Err(err).Msg("failed to list eligible games")
		result.Status = StatusFailed
		result.Reason = fmt.Sprintf("list games: %v", err)
		return result, ctx.Err()
	}
	if len(games) == 0 {
		logger.Info().Msg("no eligible games, skipping league")
		result.Status = StatusSkipped
		result.Reason = "no eligible games"
		return result, nil
	}

	byExternalID := make(map[string]*models.Game, len(games))
	eventIDs := make([]string, 0, len(games))
	live := false
	for i := range games {
		g := &games[i]
		if g.ExternalID == "" {
			continue
		}
		byExternalID[g.ExternalID] = g
		eventIDs = append(eventIDs, g.ExternalID)
		if g.Status == models.GameInProgress {
			live = true
		}
	}
	if len(eventIDs) == 0 {
		logger.Info().Int("games", len(games)).Msg("no games with provider ids, skipping league")
		result.Status = StatusSkipped
		result.Reason = "no games with provider event ids"
		return result, nil
	}

	logger.Debug().Int("games", len(eventIDs)).Bool("live", live).Msg("fetching odds")

	odds, err := o.provider.GetOdds(ctx, models.OddsQuery{
		League:   league,
		EventIDs: eventIDs,
		Markets:  o.config.Markets,
		Live:     live,
	})
	if err != nil {
		logger.Error().Err(err).Str("provider", o.provider.Name()).Msg("failed to fetch odds")
		result.Status = StatusFailed
		result.Reason = fmt.Sprintf("fetch odds: %v", err)
		return result, ctx.Err()
	}

	for _, event := range odds.Data {
		game, ok := byExternalID[event.EventID]
		if !ok {
			logger.Warn().Str("event_id", event.EventID).Msg("no game for provider event")
			continue
		}
		result.Stats.GamesProcessed++

		for _, quote := range event.Quotes {
			if err := ctx.Err(); err != nil {
				return result, err
			}
			o.processQuote(ctx, game, quote, &result.Stats, logger)
		}
	}

	if odds.RateLimit != nil {
		logger.Debug().
			Int("requests_remaining", odds.RateLimit.Remaining).
			Int("requests_used", odds.RateLimit.Used).
			Msg("provider quota")
	}

	logger.Info().
		Int("games_processed", result.Stats.GamesProcessed).
		Int("snapshots_stored", result.Stats.SnapshotsStored).
		Int("deduplicated", result.Stats.Deduplicated).
		Int("skipped", result.Stats.Skipped).
		Int("errors", result.Stats.Errors).
		Msg("league polled")

	return result, nil
}

// processQuote maps, dedups and persists a single quote, updating stats
func (o *Orchestrator) processQuote(ctx context.Context, game *models.Game, quote models.Quote, stats *Stats, logger zerolog.Logger) {
	logger = logger.With().
		Str("game_id", game.ID).
		Str("bookmaker", string(quote.Bookmaker)).
		Str("market", string(quote.Market)).
		Logger()

	if !quote.BookmakerMapped {
		logger.Debug().Msg("bookmaker name not in alias table")
	}

	bookmaker, err := o.games.EnsureBookmaker(ctx, quote.Bookmaker)
	if err != nil {
		logger.Error().Err(err).Msg("failed to resolve bookmaker")
		stats.Errors++
		return
	}

	market, err := o.games.GetMarket(ctx, quote.Market)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			logger.Warn().Msg("market not found, skipping quote")
			stats.Skipped++
			return
		}
		logger.Error().Err(err).Msg("failed to resolve market")
		stats.Errors++
		return
	}

	key := models.QuoteKey{GameID: game.ID, BookmakerID: bookmaker.ID, MarketID: market.ID}
	if !o.dedup.ShouldStore(key, quote, o.config.DedupWindow) {
		stats.Deduplicated++
		return
	}

	snapshot := models.NewOddsSnapshot(key, quote)
	if err := o.store.CreateSnapshot(ctx, snapshot); err != nil {
		logger.Error().Err(err).Str("game", game.Label()).Msg("failed to store snapshot")
		stats.Errors++
		return
	}
	o.dedup.Record(key, quote)
	stats.SnapshotsStored++

	if o.config.DryRun {
		return
	}

	record := &models.SnapshotRecord{
		OddsSnapshot: *snapshot,
		Bookmaker:    bookmaker.Name,
		MarketType:   market.Type,
	}
	for _, p := range o.publishers {
		if err := p.PublishSnapshot(ctx, record); err != nil {
			logger.Warn().Err(err).Msg("failed to publish snapshot")
		}
	}
}

// RunLoop calls RunOnce every interval until ctx is done.
// A failed run is logged and the loop continues.
func (o *Orchestrator) RunLoop(ctx context.Context, interval time.Duration) error {
	o.logger.Info().Dur("interval", interval).Msg("starting poll loop")

	for {
		if _, err := o.RunOnce(ctx); err != nil && ctx.Err() == nil {
			o.logger.Error().Err(err).Msg("poll run failed")
		}

		timer := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			o.logger.Info().Msg("poll loop stopped")
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// dryRunStore logs snapshots instead of writing them
type dryRunStore struct {
	logger zerolog.Logger
}

func (d dryRunStore) CreateSnapshot(_ context.Context, s *models.OddsSnapshot) error {
	ev := d.logger.Info().
		Str("game_id", s.GameID).
		Str("bookmaker_id", s.BookmakerID).
		Str("market_id", s.MarketID)
	if s.HomeOdds != nil && s.AwayOdds != nil {
		ev = ev.Int("home_odds", *s.HomeOdds).Int("away_odds", *s.AwayOdds)
	}
	if s.OverOdds != nil && s.UnderOdds != nil {
		ev = ev.Int("over_odds", *s.OverOdds).Int("under_odds", *s.UnderOdds)
	}
	if s.Line.Valid {
		ev = ev.Str("line", s.Line.Decimal.String())
	}
	ev.Msg("dry run: would store")
	return nil
}
