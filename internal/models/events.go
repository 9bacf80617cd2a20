package models

import (
	"time"

	"github.com/google/uuid"
)

// SnapshotStoredEventType is the event type of a persisted snapshot message
const SnapshotStoredEventType = "odds.snapshot.stored"

// KafkaSnapshotMessage is the message published after a snapshot was persisted
type KafkaSnapshotMessage struct {
	MessageID   uuid.UUID      `json:"message_id"`
	EventType   string         `json:"event_type"`
	Key         string         `json:"key"` // QuoteKey string form
	Snapshot    SnapshotRecord `json:"snapshot"`
	PublishedAt time.Time      `json:"published_at"`
}
