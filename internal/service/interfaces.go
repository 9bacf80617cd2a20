//go:generate mockgen -source=interfaces.go -destination=../mocks/mock_service.go -package=mocks

package service

import (
	"context"
	"time"

	"github.com/cypherlabdev/odds-ingestion-service/internal/models"
)

// OddsProvider abstracts an external odds source
// This allows for easier testing and mocking
type OddsProvider interface {
	Name() string
	HealthCheck(ctx context.Context) bool
	GetEvents(ctx context.Context, league models.League, dateRange *models.DateRange) (*models.EventsResponse, error)
	GetOdds(ctx context.Context, query models.OddsQuery) (*models.OddsResponse, error)
}

// GameRepository resolves games, bookmakers and markets for the poller
type GameRepository interface {
	ListEligibleGames(ctx context.Context, league models.League, from, to time.Time) ([]models.Game, error)
	EnsureBookmaker(ctx context.Context, name models.BookmakerName) (*models.Bookmaker, error)
	GetMarket(ctx context.Context, marketType models.MarketType) (*models.Market, error)
}

// SnapshotStore is the append-only snapshot sink
type SnapshotStore interface {
	CreateSnapshot(ctx context.Context, snapshot *models.OddsSnapshot) error
}

// SnapshotReader reads snapshot history in timestamp order
type SnapshotReader interface {
	QuerySnapshots(ctx context.Context, query models.SnapshotQuery) ([]models.SnapshotRecord, error)
	LatestSnapshots(ctx context.Context, gameID string, market models.MarketType) ([]models.SnapshotRecord, error)
}

// DedupCache gates writes of unchanged quotes
type DedupCache interface {
	ShouldStore(key models.QuoteKey, quote models.Quote, window time.Duration) bool
	Record(key models.QuoteKey, quote models.Quote)
}

// SnapshotPublisher is notified after a snapshot was persisted
type SnapshotPublisher interface {
	PublishSnapshot(ctx context.Context, record *models.SnapshotRecord) error
}

// CurrentOddsCache holds the latest quote per bookmaker for fast reads
type CurrentOddsCache interface {
	SnapshotPublisher
	GetCurrent(ctx context.Context, gameID string, market models.MarketType) ([]models.SnapshotRecord, error)
}
