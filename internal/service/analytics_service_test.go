package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/cypherlabdev/odds-ingestion-service/internal/cache"
	"github.com/cypherlabdev/odds-ingestion-service/internal/mocks"
	"github.com/cypherlabdev/odds-ingestion-service/internal/models"
	"github.com/cypherlabdev/odds-ingestion-service/internal/service"
	"github.com/cypherlabdev/odds-ingestion-service/pkg/oddsmath"
)

// testAnalyticsSetup is a helper struct to hold test dependencies
type testAnalyticsSetup struct {
	service    *service.AnalyticsService
	mockReader *mocks.MockSnapshotReader
	mockCache  *mocks.MockCurrentOddsCache
	ctrl       *gomock.Controller
	ctx        context.Context
}

// setupTestAnalytics creates a service with mocked dependencies
func setupTestAnalytics(t *testing.T) *testAnalyticsSetup {
	ctrl := gomock.NewController(t)

	mockReader := mocks.NewMockSnapshotReader(ctrl)
	mockCache := mocks.NewMockCurrentOddsCache(ctrl)

	return &testAnalyticsSetup{
		service:    service.NewAnalyticsService(mockReader, mockCache, zerolog.Nop()),
		mockReader: mockReader,
		mockCache:  mockCache,
		ctrl:       ctrl,
		ctx:        context.Background(),
	}
}

// cleanup cleans up test resources
func (s *testAnalyticsSetup) cleanup() {
	s.ctrl.Finish()
}

var quotedAt = time.Now().Add(-5 * time.Minute).Truncate(time.Second)

func moneyline(bookmaker models.BookmakerName, home, away int) models.SnapshotRecord {
	return models.SnapshotRecord{
		OddsSnapshot: models.OddsSnapshot{
			GameID:    "game-1",
			HomeOdds:  models.Odds(home),
			AwayOdds:  models.Odds(away),
			Timestamp: quotedAt,
		},
		Bookmaker:  bookmaker,
		MarketType: models.MarketMoneyline,
	}
}

// TestCurrentOdds_CacheHit tests that a fresher cached quote wins over the stored one
func TestCurrentOdds_CacheHit(t *testing.T) {
	setup := setupTestAnalytics(t)
	defer setup.cleanup()

	cached := []models.SnapshotRecord{moneyline("draftkings", -150, 130)}
	stale := moneyline("draftkings", -140, 120)
	stale.Timestamp = quotedAt.Add(-time.Hour)

	setup.mockCache.EXPECT().
		GetCurrent(setup.ctx, "game-1", models.MarketMoneyline).
		Return(cached, nil)
	setup.mockReader.EXPECT().
		LatestSnapshots(setup.ctx, "game-1", models.MarketMoneyline).
		Return([]models.SnapshotRecord{stale}, nil)

	records, err := setup.service.CurrentOdds(setup.ctx, "game-1", models.MarketMoneyline)

	require.NoError(t, err)
	assert.Equal(t, cached, records)
}

// TestCurrentOdds_CacheMiss tests fallback to the latest stored quotes
func TestCurrentOdds_CacheMiss(t *testing.T) {
	setup := setupTestAnalytics(t)
	defer setup.cleanup()

	stored := []models.SnapshotRecord{moneyline("fanduel", -145, 125)}
	gomock.InOrder(
		setup.mockCache.EXPECT().GetCurrent(setup.ctx, "game-1", models.MarketMoneyline).Return(nil, nil),
		setup.mockReader.EXPECT().LatestSnapshots(setup.ctx, "game-1", models.MarketMoneyline).Return(stored, nil),
	)

	records, err := setup.service.CurrentOdds(setup.ctx, "game-1", models.MarketMoneyline)

	require.NoError(t, err)
	assert.Equal(t, stored, records)
}

// TestCurrentOdds_CacheError tests that cache failures are not fatal
func TestCurrentOdds_CacheError(t *testing.T) {
	setup := setupTestAnalytics(t)
	defer setup.cleanup()

	setup.mockCache.EXPECT().GetCurrent(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("redis down"))
	setup.mockReader.EXPECT().LatestSnapshots(setup.ctx, "game-1", models.MarketSpread).Return(nil, nil)

	records, err := setup.service.CurrentOdds(setup.ctx, "game-1", models.MarketSpread)

	require.NoError(t, err)
	assert.Empty(t, records)
}

// TestCurrentOdds_StoreError tests error wrapping from the store
func TestCurrentOdds_StoreError(t *testing.T) {
	setup := setupTestAnalytics(t)
	defer setup.cleanup()

	storeErr := errors.New("connection refused")
	setup.mockCache.EXPECT().GetCurrent(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
	setup.mockReader.EXPECT().LatestSnapshots(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, storeErr)

	_, err := setup.service.CurrentOdds(setup.ctx, "game-1", models.MarketSpread)

	assert.ErrorIs(t, err, storeErr)
}

// TestCurrentOdds_NoCache tests a service built without a cache
func TestCurrentOdds_NoCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	reader := mocks.NewMockSnapshotReader(ctrl)
	svc := service.NewAnalyticsService(reader, nil, zerolog.Nop())

	reader.EXPECT().LatestSnapshots(gomock.Any(), "game-1", models.MarketTotal).Return(nil, nil)

	records, err := svc.CurrentOdds(context.Background(), "game-1", models.MarketTotal)
	require.NoError(t, err)
	assert.Empty(t, records)
}

// TestBestLine tests best price selection across bookmakers
func TestBestLine(t *testing.T) {
	setup := setupTestAnalytics(t)
	defer setup.cleanup()

	oneSided := moneyline("bovada", -100, 0)
	oneSided.AwayOdds = nil

	setup.mockCache.EXPECT().GetCurrent(gomock.Any(), "game-1", models.MarketMoneyline).Return([]models.SnapshotRecord{
		moneyline("draftkings", -110, 100),
		moneyline("betmgm", -105, 95),
		moneyline("fanduel", -115, 105),
		oneSided,
	}, nil)
	setup.mockReader.EXPECT().LatestSnapshots(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

	view, err := setup.service.BestLine(setup.ctx, "game-1", models.MarketMoneyline)
	require.NoError(t, err)

	assert.Equal(t, -105, view.Best.Home.Odds)
	assert.Equal(t, "betmgm", view.Best.Home.Bookmaker)
	assert.Equal(t, 105, view.Best.Away.Odds)
	assert.Equal(t, "fanduel", view.Best.Away.Bookmaker)
	assert.Equal(t, 3, view.Bookmakers, "one-sided quote excluded")
	assert.Equal(t, quotedAt, view.AsOf)
}

// TestBestLine_NoOdds tests the empty case
func TestBestLine_NoOdds(t *testing.T) {
	setup := setupTestAnalytics(t)
	defer setup.cleanup()

	setup.mockCache.EXPECT().GetCurrent(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
	setup.mockReader.EXPECT().LatestSnapshots(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

	_, err := setup.service.BestLine(setup.ctx, "game-1", models.MarketMoneyline)
	assert.ErrorIs(t, err, service.ErrNoOdds)
}

// TestConsensus tests the equal-weight consensus
func TestConsensus(t *testing.T) {
	setup := setupTestAnalytics(t)
	defer setup.cleanup()

	setup.mockCache.EXPECT().GetCurrent(gomock.Any(), "game-1", models.MarketMoneyline).Return([]models.SnapshotRecord{
		moneyline("draftkings", -110, -110),
		moneyline("fanduel", -110, -110),
	}, nil)
	setup.mockReader.EXPECT().LatestSnapshots(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

	view, err := setup.service.Consensus(setup.ctx, "game-1", models.MarketMoneyline)
	require.NoError(t, err)

	assert.InDelta(t, 0.5, view.Consensus.HomeProb, 1e-9)
	assert.InDelta(t, 0.5, view.Consensus.AwayProb, 1e-9)
	assert.InDelta(t, 0.0476, view.Consensus.AvgVig, 1e-4)
	assert.Equal(t, 2, view.Consensus.Bookmakers)
}

// TestBaseline_Totals tests over/under baselines for a chosen bookmaker
func TestBaseline_Totals(t *testing.T) {
	setup := setupTestAnalytics(t)
	defer setup.cleanup()

	total := models.SnapshotRecord{
		OddsSnapshot: models.OddsSnapshot{
			GameID:    "game-1",
			OverOdds:  models.Odds(-110),
			UnderOdds: models.Odds(-110),
			Line:      decimal.NewNullDecimal(decimal.RequireFromString("221.5")),
			Timestamp: quotedAt,
		},
		Bookmaker:  "draftkings",
		MarketType: models.MarketTotal,
	}
	other := total
	other.Bookmaker = "fanduel"

	setup.mockCache.EXPECT().GetCurrent(gomock.Any(), "game-1", models.MarketTotal).
		Return([]models.SnapshotRecord{other, total}, nil)
	setup.mockReader.EXPECT().LatestSnapshots(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

	view, err := setup.service.Baseline(setup.ctx, "game-1", models.MarketTotal, "draftkings")
	require.NoError(t, err)

	assert.Equal(t, models.BookmakerName("draftkings"), view.Bookmaker)
	require.NotNil(t, view.Line)
	assert.Equal(t, "221.5", *view.Line)
	assert.Equal(t, "OVER", string(view.Baseline.Home.Side))
	assert.Equal(t, "UNDER", string(view.Baseline.Away.Side))
	assert.InDelta(t, 0.5, view.Baseline.Home.ModelProbability, 1e-9)
	assert.InDelta(t, -2.38, view.Baseline.Home.Edge, 0.01)
	assert.Equal(t, oddsmath.ConfidenceLow, view.Baseline.Home.ConfidenceTier)
	assert.InDelta(t, 5, view.Baseline.Home.DataFreshness, 0.5)
	assert.False(t, view.Baseline.Anomalous)
}

// TestBaseline_MostRecentBookmaker tests default bookmaker selection
func TestBaseline_MostRecentBookmaker(t *testing.T) {
	setup := setupTestAnalytics(t)
	defer setup.cleanup()

	older := moneyline("draftkings", -150, 130)
	older.Timestamp = quotedAt.Add(-time.Hour)
	newer := moneyline("fanduel", -145, 125)

	setup.mockCache.EXPECT().GetCurrent(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]models.SnapshotRecord{older, newer}, nil)
	setup.mockReader.EXPECT().LatestSnapshots(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

	view, err := setup.service.Baseline(setup.ctx, "game-1", models.MarketMoneyline, "")
	require.NoError(t, err)
	assert.Equal(t, models.BookmakerName("fanduel"), view.Bookmaker)
	assert.Nil(t, view.Line)
	assert.Equal(t, "HOME", string(view.Baseline.Home.Side))
}

// TestBaseline_UnknownBookmaker tests the not-found case
func TestBaseline_UnknownBookmaker(t *testing.T) {
	setup := setupTestAnalytics(t)
	defer setup.cleanup()

	setup.mockCache.EXPECT().GetCurrent(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]models.SnapshotRecord{moneyline("draftkings", -150, 130)}, nil)
	setup.mockReader.EXPECT().LatestSnapshots(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

	_, err := setup.service.Baseline(setup.ctx, "game-1", models.MarketMoneyline, "caesars")
	assert.ErrorIs(t, err, service.ErrNoOdds)
}

// TestHistory tests pass-through of the history query
func TestHistory(t *testing.T) {
	setup := setupTestAnalytics(t)
	defer setup.cleanup()

	query := models.SnapshotQuery{GameID: "game-1", Market: models.MarketSpread, Since: quotedAt.Add(-24 * time.Hour)}
	stored := []models.SnapshotRecord{moneyline("draftkings", -110, -110)}
	setup.mockReader.EXPECT().QuerySnapshots(setup.ctx, query).Return(stored, nil)

	records, err := setup.service.History(setup.ctx, query)
	require.NoError(t, err)
	assert.Equal(t, stored, records)
}

// TestCurrentOdds_StoreErrorWithCache tests that cached quotes survive a store outage
func TestCurrentOdds_StoreErrorWithCache(t *testing.T) {
	setup := setupTestAnalytics(t)
	defer setup.cleanup()

	cached := []models.SnapshotRecord{moneyline("draftkings", -150, 130)}
	setup.mockCache.EXPECT().GetCurrent(gomock.Any(), gomock.Any(), gomock.Any()).Return(cached, nil)
	setup.mockReader.EXPECT().LatestSnapshots(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("connection refused"))

	records, err := setup.service.CurrentOdds(setup.ctx, "game-1", models.MarketMoneyline)

	require.NoError(t, err)
	assert.Equal(t, cached, records)
}

// TestCurrentOdds_ExpiredCacheEntry tests that a bookmaker whose cache key expired is still served
func TestCurrentOdds_ExpiredCacheEntry(t *testing.T) {
	mr := miniredis.RunT(t)
	redisCache := cache.NewRedisCache(cache.RedisCacheConfig{Addr: mr.Addr(), TTL: 30 * time.Minute}, zerolog.Nop())
	defer redisCache.Close()

	ctrl := gomock.NewController(t)
	reader := mocks.NewMockSnapshotReader(ctrl)
	svc := service.NewAnalyticsService(reader, redisCache, zerolog.Nop())
	ctx := context.Background()

	fanduel := moneyline("fanduel", -145, 125)
	fanduel.Timestamp = quotedAt.Add(-20 * time.Minute)
	draftkings := moneyline("draftkings", -150, 130)

	require.NoError(t, redisCache.PublishSnapshot(ctx, &fanduel))
	mr.FastForward(20 * time.Minute)
	require.NoError(t, redisCache.PublishSnapshot(ctx, &draftkings))
	mr.FastForward(15 * time.Minute)

	reader.EXPECT().LatestSnapshots(ctx, "game-1", models.MarketMoneyline).
		Return([]models.SnapshotRecord{draftkings, fanduel}, nil).Times(2)

	records, err := svc.CurrentOdds(ctx, "game-1", models.MarketMoneyline)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, models.BookmakerName("draftkings"), records[0].Bookmaker)
	assert.Equal(t, models.BookmakerName("fanduel"), records[1].Bookmaker)

	view, err := svc.BestLine(ctx, "game-1", models.MarketMoneyline)
	require.NoError(t, err)
	assert.Equal(t, 2, view.Bookmakers)
}
