//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net"
	"strconv"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"

	"github.com/gridscope/chargegap/internal/adapter/kafka"
	"github.com/gridscope/chargegap/internal/config"
	"github.com/gridscope/chargegap/internal/domain"
)

const testZonesTopic = "test-charging-gap-zones"

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// startKafka runs a single-node Kafka in a container and returns its broker
// address.
func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()

	container, err := tckafka.Run(ctx, "confluentinc/confluent-local:7.5.0",
		tckafka.WithClusterID("chargegap-test"))
	require.NoError(t, err, "start kafka container")
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers)
	return brokers[0]
}

func createTopic(t *testing.T, broker, topic string) {
	t.Helper()

	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err)
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err)

	ctrl, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err)
	defer ctrl.Close()

	require.NoError(t, ctrl.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}

// TestPublishZonesRoundTrip verifies that ranked zones written by the Kafka
// publisher arrive intact, keyed by postal code, with an infinite ratio
// surviving the null encoding.
func TestPublishZonesRoundTrip(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testZonesTopic)

	cfg := &config.Config{
		KafkaBrokers: []string{broker},
		KafkaTopic:   testZonesTopic,
	}

	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	zones := []domain.ZipSummary{
		{
			PostalCode: "98101", County: "King", City: "Seattle",
			TotalEVs: 60, TotalPorts: 0,
			Geo:       domain.Geo{Lat: 47.61, Lon: -122.33},
			GeoSource: domain.GeoSourceVehicle,
			Ratio:     math.Inf(1), Priority: domain.PriorityCritical,
		},
		{
			PostalCode: "98001", County: "King", City: "Auburn",
			TotalEVs: 30, TotalPorts: 1,
			Geo:       domain.Geo{Lat: 47.30, Lon: -122.22},
			GeoSource: domain.GeoSourceStations,
			Ratio:     30, Priority: domain.PriorityWellServed,
		},
	}

	require.NoError(t, writer.PublishZones(ctx, zones))

	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       testZonesTopic,
		GroupID:     fmt.Sprintf("test-consumer-%d", time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })

	received := make(map[string]domain.ZipSummary, len(zones))
	headers := make(map[string]map[string]string, len(zones))
	for len(received) < len(zones) {
		readCtx, readCancel := context.WithTimeout(ctx, 30*time.Second)
		msg, err := consumer.ReadMessage(readCtx)
		readCancel()
		require.NoError(t, err, "read from zones topic")

		var zone domain.ZipSummary
		require.NoError(t, json.Unmarshal(msg.Value, &zone))
		received[string(msg.Key)] = zone

		h := make(map[string]string, len(msg.Headers))
		for _, hdr := range msg.Headers {
			h[hdr.Key] = string(hdr.Value)
		}
		headers[string(msg.Key)] = h
	}

	seattle := received["98101"]
	assert.Equal(t, 60, seattle.TotalEVs)
	assert.True(t, math.IsInf(seattle.Ratio, 1), "null ratio must decode as +Inf")
	assert.Equal(t, domain.PriorityCritical, seattle.Priority)
	assert.Equal(t, string(domain.PriorityCritical), headers["98101"]["priority"])

	auburn := received["98001"]
	assert.Equal(t, 30.0, auburn.Ratio)
	assert.Equal(t, domain.GeoSourceStations, auburn.GeoSource)

	_, err := time.Parse(time.RFC3339, headers["98001"]["published_at"])
	assert.NoError(t, err, "published_at should be RFC3339")
}
