package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"github.com/cypherlabdev/odds-ingestion-service/internal/models"
)

// messageWriter is the subset of *kafka.Writer the publisher needs
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher publishes persisted snapshots to Kafka
type KafkaPublisher struct {
	writer       messageWriter
	topic        string
	writeTimeout time.Duration
	now          func() time.Time
	logger       zerolog.Logger
}

// KafkaPublisherConfig holds Kafka publisher configuration
type KafkaPublisherConfig struct {
	Brokers      []string      // e.g., ["localhost:9092"]
	Topic        string        // e.g., "odds_snapshots"
	WriteTimeout time.Duration // per publish, e.g., 5 * time.Second
}

// NewKafkaPublisher creates a new Kafka publisher.
// Messages are keyed by quote key so one series always lands on one partition.
func NewKafkaPublisher(config KafkaPublisherConfig, logger zerolog.Logger) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(config.Brokers...),
		Topic:        config.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchSize:    100,
		BatchTimeout: 10 * time.Millisecond,
		Compression:  kafka.Snappy,
	}

	return newKafkaPublisher(writer, config, logger)
}

func newKafkaPublisher(writer messageWriter, config KafkaPublisherConfig, logger zerolog.Logger) *KafkaPublisher {
	timeout := config.WriteTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &KafkaPublisher{
		writer:       writer,
		topic:        config.Topic,
		writeTimeout: timeout,
		now:          time.Now,
		logger:       logger.With().Str("component", "kafka_publisher").Logger(),
	}
}

// PublishSnapshot publishes one persisted snapshot
func (p *KafkaPublisher) PublishSnapshot(ctx context.Context, record *models.SnapshotRecord) error {
	key := models.QuoteKey{
		GameID:      record.GameID,
		BookmakerID: record.BookmakerID,
		MarketID:    record.MarketID,
	}.String()

	msg := models.KafkaSnapshotMessage{
		MessageID:   uuid.New(),
		EventType:   models.SnapshotStoredEventType,
		Key:         key,
		Snapshot:    *record,
		PublishedAt: p.now(),
	}

	value, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	writeCtx, cancel := context.WithTimeout(ctx, p.writeTimeout)
	defer cancel()

	if err := p.writer.WriteMessages(writeCtx, kafka.Message{
		Key:   []byte(key),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(models.SnapshotStoredEventType)},
		},
	}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	p.logger.Debug().
		Str("topic", p.topic).
		Str("key", key).
		Str("message_id", msg.MessageID.String()).
		Msg("published snapshot")

	return nil
}

// Close flushes pending messages and closes the writer
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
