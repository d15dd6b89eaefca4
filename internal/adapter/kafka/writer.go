// Package kafka publishes ranked investment zones to a Kafka topic so
// downstream planning tools can consume each run's output as a stream.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/gridscope/chargegap/internal/config"
	"github.com/gridscope/chargegap/internal/domain"
)

// Writer produces zone messages to a Kafka topic.
// It implements pipeline.ZonePublisher.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured sink topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// PublishZones serializes and publishes the ranked zones in a single
// WriteMessages call. Messages are keyed by postal code so a compacted
// topic retains only the latest assessment per ZIP.
func (w *Writer) PublishZones(ctx context.Context, zones []domain.ZipSummary) error {
	if len(zones) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(zones))
	for i := range zones {
		msg, err := serializeToMessage(zones[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return err
	}
	w.logger.Info("published zones", "count", len(zones), "topic", w.writer.Topic)
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a ZipSummary into a Kafka message.
func serializeToMessage(zone domain.ZipSummary) (kafkago.Message, error) {
	data, err := json.Marshal(zone)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize zone %s: %w", zone.PostalCode, err)
	}
	return kafkago.Message{
		Key:   []byte(zone.PostalCode),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "priority", Value: []byte(zone.Priority)},
			{Key: "published_at", Value: []byte(domain.Now().Format(time.RFC3339))},
		},
	}, nil
}
