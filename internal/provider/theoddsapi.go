// Package provider adapts external odds sources to the normalized models.
package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"

	"github.com/cypherlabdev/odds-ingestion-service/internal/metrics"
	"github.com/cypherlabdev/odds-ingestion-service/internal/models"
)

const (
	DefaultBaseURL = "https://api.the-odds-api.com/v4"
	apiKeyHeader   = "X-Api-Key"
	maxErrorBody   = 512
)

// ErrUnsupportedLeague is returned for leagues without a sport key
var ErrUnsupportedLeague = errors.New("unsupported league")

// StatusError is a non-2xx provider response
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API request failed: status=%d body=%s", e.StatusCode, e.Body)
}

// Config holds The Odds API client configuration
type Config struct {
	APIKey            string        // empty runs the client in stub mode
	BaseURL           string        // e.g., "https://api.the-odds-api.com/v4"
	Timeout           time.Duration // per request
	MaxRetries        int           // retries after the first attempt
	BackoffBase       time.Duration // delay before retry n is BackoffBase * 2^n
	Regions           string        // e.g., "us"
	RequestsPerSecond float64       // client-side limit, 0 disables
}

// TheOddsAPI fetches events and odds from The Odds API v4
type TheOddsAPI struct {
	config     Config
	httpClient *http.Client
	limiter    *rate.Limiter
	metrics    *metrics.Metrics
	now        func() time.Time
	logger     zerolog.Logger
}

// Option configures a TheOddsAPI client
type Option func(*TheOddsAPI)

// WithHTTPClient overrides the HTTP client
func WithHTTPClient(c *http.Client) Option {
	return func(p *TheOddsAPI) {
		p.httpClient = c
	}
}

// WithMetrics records request metrics
func WithMetrics(m *metrics.Metrics) Option {
	return func(p *TheOddsAPI) {
		p.metrics = m
	}
}

// WithClock overrides the time source used for quote timestamps
func WithClock(now func() time.Time) Option {
	return func(p *TheOddsAPI) {
		p.now = now
	}
}

// NewTheOddsAPI creates a new The Odds API client
func NewTheOddsAPI(config Config, logger zerolog.Logger, opts ...Option) *TheOddsAPI {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")
	if config.Timeout <= 0 {
		config.Timeout = 10 * time.Second
	}
	if config.MaxRetries < 0 {
		config.MaxRetries = 0
	}
	if config.BackoffBase <= 0 {
		config.BackoffBase = time.Second
	}
	if config.Regions == "" {
		config.Regions = "us"
	}

	limit := rate.Inf
	if config.RequestsPerSecond > 0 {
		limit = rate.Limit(config.RequestsPerSecond)
	}

	p := &TheOddsAPI{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
		limiter:    rate.NewLimiter(limit, 1),
		now:        time.Now,
		logger:     logger.With().Str("component", "the_odds_api").Logger(),
	}
	for _, opt := range opts {
		opt(p)
	}

	if p.stubMode() {
		p.logger.Warn().Msg("provider API key not configured, running in stub mode")
	}

	return p
}

// Name returns the provider name
func (p *TheOddsAPI) Name() string {
	return "The Odds API"
}

func (p *TheOddsAPI) stubMode() bool {
	return p.config.APIKey == ""
}

// HealthCheck reports whether the provider is reachable with the configured key.
// It never fails outward.
func (p *TheOddsAPI) HealthCheck(ctx context.Context) bool {
	if p.stubMode() {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, p.config.Timeout)
	defer cancel()

	req, err := p.newRequest(ctx, "/sports", nil)
	if err != nil {
		p.logger.Error().Err(err).Msg("health check failed")
		return false
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		p.logger.Error().Err(err).Msg("health check failed")
		return false
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

// GetEvents lists a league's events, optionally limited to a date range
func (p *TheOddsAPI) GetEvents(ctx context.Context, league models.League, dateRange *models.DateRange) (*models.EventsResponse, error) {
	if p.stubMode() {
		p.logger.Info().Str("league", string(league)).Msg("stub mode: skipping event fetch")
		return &models.EventsResponse{}, nil
	}

	sportKey, ok := sportKeys[league]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedLeague, league)
	}

	params := url.Values{}
	params.Set("dateFormat", "iso")

	var events []apiEvent
	header, err := p.getJSON(ctx, "/sports/"+sportKey+"/events", params, &events)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s events: %w", league, err)
	}

	data := make([]models.Event, 0, len(events))
	for _, e := range events {
		if dateRange != nil && !dateRange.Contains(e.CommenceTime) {
			continue
		}
		data = append(data, models.Event{
			ID:        e.ID,
			League:    league,
			HomeTeam:  e.HomeTeam,
			AwayTeam:  e.AwayTeam,
			StartTime: e.CommenceTime,
			Status:    models.GameScheduled,
		})
	}

	return &models.EventsResponse{Data: data, RateLimit: p.rateLimit(header)}, nil
}

// GetOdds fetches quotes for the requested events.
// The Odds API serves odds per sport, so the whole sport is fetched and
// filtered to the requested ids.
func (p *TheOddsAPI) GetOdds(ctx context.Context, query models.OddsQuery) (*models.OddsResponse, error) {
	if p.stubMode() {
		p.logger.Info().Int("event_count", len(query.EventIDs)).Msg("stub mode: skipping odds fetch")
		return &models.OddsResponse{}, nil
	}
	if len(query.EventIDs) == 0 {
		return &models.OddsResponse{}, nil
	}

	league := query.League
	if league == "" {
		league = inferLeague(query.EventIDs[0])
		p.logger.Debug().
			Str("event_id", query.EventIDs[0]).
			Str("league", string(league)).
			Msg("inferred league from event id")
	}

	sportKey, ok := sportKeys[league]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedLeague, league)
	}

	markets := query.Markets
	if len(markets) == 0 {
		markets = models.AllMarkets
	}
	keys := make([]string, 0, len(markets))
	for _, m := range markets {
		if k, ok := marketKeys[m]; ok {
			keys = append(keys, k)
		}
	}

	params := url.Values{}
	params.Set("regions", p.config.Regions)
	params.Set("markets", strings.Join(keys, ","))
	params.Set("oddsFormat", "american")
	params.Set("dateFormat", "iso")

	var events []apiEvent
	header, err := p.getJSON(ctx, "/sports/"+sportKey+"/odds", params, &events)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s odds: %w", league, err)
	}

	fetchedAt := p.now()
	data := make([]models.EventOdds, 0, len(query.EventIDs))
	for _, e := range events {
		if !slices.Contains(query.EventIDs, e.ID) {
			continue
		}
		if !query.Live && e.CommenceTime.Before(fetchedAt) {
			continue
		}
		data = append(data, models.EventOdds{
			EventID: e.ID,
			Quotes:  p.transformBookmakers(e, fetchedAt),
		})
	}

	return &models.OddsResponse{Data: data, RateLimit: p.rateLimit(header)}, nil
}

// transformBookmakers flattens an event's bookmakers into quotes, skipping
// markets that cannot be mapped
func (p *TheOddsAPI) transformBookmakers(e apiEvent, fetchedAt time.Time) []models.Quote {
	quotes := make([]models.Quote, 0, len(e.Bookmakers)*len(models.AllMarkets))

	for _, bm := range e.Bookmakers {
		name, mapped := NormalizeBookmaker(bm.Key)
		if !mapped {
			p.logger.Debug().
				Str("bookmaker_key", bm.Key).
				Str("normalized", string(name)).
				Msg("bookmaker not in lookup table, using fallback name")
		}

		for _, m := range bm.Markets {
			marketType, ok := NormalizeMarket(m.Key)
			if !ok {
				p.logger.Warn().
					Str("event_id", e.ID).
					Str("bookmaker", string(name)).
					Str("market_key", m.Key).
					Msg("skipping unknown market")
				continue
			}

			q := models.Quote{
				Bookmaker:       name,
				BookmakerMapped: mapped,
				Market:          marketType,
				Timestamp:       fetchedAt,
			}

			switch marketType {
			case models.MarketMoneyline, models.MarketSpread:
				home := m.outcome(func(o apiOutcome) bool { return o.Name == e.HomeTeam })
				away := m.outcome(func(o apiOutcome) bool { return o.Name == e.AwayTeam })
				q.HomeOdds = home.price()
				q.AwayOdds = away.price()
				if marketType == models.MarketSpread {
					q.Line = home.line()
				}
			case models.MarketTotal:
				over := m.outcome(func(o apiOutcome) bool { return strings.Contains(strings.ToLower(o.Name), "over") })
				under := m.outcome(func(o apiOutcome) bool { return strings.Contains(strings.ToLower(o.Name), "under") })
				q.OverOdds = over.price()
				q.UnderOdds = under.price()
				q.Line = over.line()
			}

			quotes = append(quotes, q)
		}
	}

	return quotes
}

// getJSON performs a GET with retry and decodes the body into out
func (p *TheOddsAPI) getJSON(ctx context.Context, path string, params url.Values, out any) (http.Header, error) {
	body, header, err := p.fetchWithRetry(ctx, path, params)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return header, nil
}

// fetchWithRetry runs at most MaxRetries+1 attempts. Rate limiting, other
// non-2xx responses and transport errors all back off 2^attempt * BackoffBase.
func (p *TheOddsAPI) fetchWithRetry(ctx context.Context, path string, params url.Values) ([]byte, http.Header, error) {
	var lastErr error

	for attempt := 1; ; attempt++ {
		body, header, err := p.doOnce(ctx, path, params)
		if err == nil {
			return body, header, nil
		}
		if ctx.Err() != nil {
			return nil, nil, ctx.Err()
		}
		lastErr = err

		if attempt > p.config.MaxRetries {
			return nil, nil, fmt.Errorf("request failed after %d attempts: %w", attempt, lastErr)
		}

		delay := p.backoff(attempt)
		event := p.logger.Warn().Err(err).
			Str("path", path).
			Int("attempt", attempt).
			Int("max_retries", p.config.MaxRetries).
			Dur("delay", delay)
		var statusErr *StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusTooManyRequests {
			event.Msg("rate limited, backing off")
		} else {
			event.Msg("request failed, backing off")
		}
		p.metrics.ObserveProviderRetry()

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, nil, ctx.Err()
		case <-timer.C:
		}
	}
}

func (p *TheOddsAPI) backoff(attempt int) time.Duration {
	return p.config.BackoffBase * time.Duration(1<<attempt)
}

func (p *TheOddsAPI) doOnce(ctx context.Context, path string, params url.Values) ([]byte, http.Header, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, nil, fmt.Errorf("rate limiter: %w", err)
	}

	req, err := p.newRequest(ctx, path, params)
	if err != nil {
		return nil, nil, err
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		p.metrics.ObserveProviderRequest("error")
		return nil, nil, fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	p.metrics.ObserveProviderRequest(strconv.Itoa(resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, nil, &StatusError{StatusCode: resp.StatusCode, Body: string(snippet)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("reading response: %w", err)
	}
	return body, resp.Header, nil
}

func (p *TheOddsAPI) newRequest(ctx context.Context, path string, params url.Values) (*http.Request, error) {
	u := p.config.BaseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set(apiKeyHeader, p.config.APIKey)
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// rateLimit parses the quota headers; the quota resets hourly
func (p *TheOddsAPI) rateLimit(header http.Header) *models.RateLimit {
	remaining, err := strconv.Atoi(header.Get("x-requests-remaining"))
	if err != nil {
		return nil
	}
	used, _ := strconv.Atoi(header.Get("x-requests-used"))

	p.metrics.SetRequestsRemaining(remaining)

	return &models.RateLimit{
		Remaining: remaining,
		Used:      used,
		Limit:     used + remaining,
		Reset:     p.now().Add(time.Hour),
	}
}

// The Odds API v4 wire format

type apiEvent struct {
	ID           string         `json:"id"`
	SportKey     string         `json:"sport_key"`
	SportTitle   string         `json:"sport_title"`
	CommenceTime time.Time      `json:"commence_time"`
	HomeTeam     string         `json:"home_team"`
	AwayTeam     string         `json:"away_team"`
	Bookmakers   []apiBookmaker `json:"bookmakers,omitempty"`
}

type apiBookmaker struct {
	Key     string      `json:"key"`
	Title   string      `json:"title"`
	Markets []apiMarket `json:"markets"`
}

type apiMarket struct {
	Key      string       `json:"key"` // "h2h", "spreads", "totals"
	Outcomes []apiOutcome `json:"outcomes"`
}

type apiOutcome struct {
	Name  string   `json:"name"`
	Price float64  `json:"price"` // American odds
	Point *float64 `json:"point,omitempty"`
}

func (m apiMarket) outcome(match func(apiOutcome) bool) *apiOutcome {
	for i := range m.Outcomes {
		if match(m.Outcomes[i]) {
			return &m.Outcomes[i]
		}
	}
	return nil
}

func (o *apiOutcome) price() *int {
	if o == nil {
		return nil
	}
	return models.Odds(int(math.Round(o.Price)))
}

func (o *apiOutcome) line() decimal.NullDecimal {
	if o == nil || o.Point == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(decimal.NewFromFloat(*o.Point))
}
