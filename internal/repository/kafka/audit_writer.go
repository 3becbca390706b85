package kafka

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"communityhub/internal/model"

	kafkago "github.com/segmentio/kafka-go"
)

// AuditWriter publishes audit entries to a topic, keyed by actor so one
// actor's trail stays ordered within a partition.
type AuditWriter struct {
	writer *kafkago.Writer
}

func NewAuditWriter(brokers []string, topic string) *AuditWriter {
	return &AuditWriter{
		writer: &kafkago.Writer{
			Addr:         kafkago.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafkago.Hash{},
			RequiredAcks: kafkago.RequireAll,
			Async:        false,
		},
	}
}

func (w *AuditWriter) Close() error {
	if w == nil || w.writer == nil {
		return nil
	}
	return w.writer.Close()
}

type auditEvent struct {
	ActorID    uint64 `json:"actor_id"`
	Action     string `json:"action"`
	TargetType string `json:"target_type,omitempty"`
	TargetID   uint64 `json:"target_id,omitempty"`
	Detail     string `json:"detail,omitempty"`
	OccurredAt string `json:"occurred_at"`
}

// Publish is nil-safe so callers can hold an unconfigured writer.
func (w *AuditWriter) Publish(ctx context.Context, entry *model.AuditLog) error {
	if w == nil || w.writer == nil {
		return nil
	}
	occurred := entry.CreatedAt
	if occurred.IsZero() {
		occurred = time.Now()
	}
	payload, err := json.Marshal(auditEvent{
		ActorID:    entry.ActorID,
		Action:     entry.Action,
		TargetType: entry.TargetType,
		TargetID:   entry.TargetID,
		Detail:     entry.Detail,
		OccurredAt: occurred.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return err
	}
	return w.writer.WriteMessages(ctx, kafkago.Message{
		Key:   []byte(strconv.FormatUint(entry.ActorID, 10)),
		Value: payload,
	})
}
