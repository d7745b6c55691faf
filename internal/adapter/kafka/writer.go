package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/space-dashboard/internal/config"
	"github.com/couchcryptid/space-dashboard/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer publishes normalized feed records to a Kafka topic.
// It implements dashboard.Publisher.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured record topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(cfg.KafkaBrokers...),
		Topic:                  cfg.KafkaTopic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		AllowAutoTopicCreation: true,
	}
	return &Writer{writer: w, logger: logger}
}

// Publish serializes and writes the records in a single WriteMessages call.
// Records sharing a key land on the same partition.
func (w *Writer) Publish(ctx context.Context, records []domain.Record) error {
	if len(records) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(records))
	for i := range records {
		msg, err := serializeToMessage(records[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("write %d records: %w", len(msgs), err)
	}
	w.logger.Debug("records published", "count", len(msgs), "record_type", records[0].Type)
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a record payload into a Kafka message.
func serializeToMessage(record domain.Record) (kafkago.Message, error) {
	data, err := json.Marshal(record.Payload)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize %s record: %w", record.Type, err)
	}
	return kafkago.Message{
		Key:   []byte(record.Key),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "record_type", Value: []byte(record.Type)},
			{Key: "normalized_at", Value: []byte(record.NormalizedAt.Format(time.RFC3339))},
		},
	}, nil
}
