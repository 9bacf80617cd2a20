package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/cypherlabdev/odds-ingestion-service/internal/models"
)

// RedisCache holds the current quote of every bookmaker per game market
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// RedisCacheConfig holds Redis cache configuration
type RedisCacheConfig struct {
	Addr     string // e.g., "localhost:6379"
	Password string
	DB       int
	TTL      time.Duration // e.g., 30 * time.Minute
}

// NewRedisCache creates a new Redis cache
func NewRedisCache(config RedisCacheConfig, logger zerolog.Logger) *RedisCache {
	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	return &RedisCache{
		client: client,
		ttl:    config.TTL,
		logger: logger.With().Str("component", "redis_cache").Logger(),
	}
}

func currentKey(gameID string, market models.MarketType, bookmaker models.BookmakerName) string {
	return fmt.Sprintf("odds:current:%s:%s:%s", gameID, market, bookmaker)
}

// PublishSnapshot replaces the current quote for the record's bookmaker.
// An older record never overwrites a newer one.
func (c *RedisCache) PublishSnapshot(ctx context.Context, record *models.SnapshotRecord) error {
	key := currentKey(record.GameID, record.MarketType, record.Bookmaker)

	existing, err := c.get(ctx, key)
	if err != nil {
		return err
	}
	if existing != nil && existing.Timestamp.After(record.Timestamp) {
		c.logger.Debug().
			Str("key", key).
			Time("cached_at", existing.Timestamp).
			Time("record_at", record.Timestamp).
			Msg("skipping older snapshot")
		return nil
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set in Redis: %w", err)
	}

	c.logger.Debug().
		Str("key", key).
		Dur("ttl", c.ttl).
		Msg("cached current odds")

	return nil
}

func (c *RedisCache) get(ctx context.Context, key string) (*models.SnapshotRecord, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get from Redis: %w", err)
	}

	var record models.SnapshotRecord
	if err := json.Unmarshal(data, &record); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("replacing unreadable cached snapshot")
		return nil, nil
	}
	return &record, nil
}

// GetCurrent returns the cached current quotes for a game market, sorted by bookmaker.
// An empty result means nothing is cached.
func (c *RedisCache) GetCurrent(ctx context.Context, gameID string, market models.MarketType) ([]models.SnapshotRecord, error) {
	pattern := fmt.Sprintf("odds:current:%s:%s:*", gameID, market)

	// Scan for keys matching pattern
	var cursor uint64
	var keys []string

	for {
		var scanKeys []string
		var err error
		scanKeys, cursor, err = c.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to scan keys: %w", err)
		}

		keys = append(keys, scanKeys...)

		if cursor == 0 {
			break
		}
	}

	if len(keys) == 0 {
		return nil, nil
	}

	values, err := c.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get keys: %w", err)
	}

	records := make([]models.SnapshotRecord, 0, len(values))
	for i, v := range values {
		s, ok := v.(string)
		if !ok {
			// expired between SCAN and MGET
			continue
		}

		var record models.SnapshotRecord
		if err := json.Unmarshal([]byte(s), &record); err != nil {
			c.logger.Warn().Err(err).Str("key", keys[i]).Msg("failed to unmarshal snapshot")
			continue
		}
		records = append(records, record)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Bookmaker < records[j].Bookmaker
	})

	return records, nil
}

// Ping checks Redis connection
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (c *RedisCache) Close() error {
	return c.client.Close()
}
