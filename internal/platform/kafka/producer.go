// Package kafka publishes outbox entries to the master-data event topic.
package kafka

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	audit "govinda/pkg/platform/audit"
)

const (
	headerEventType     = "event_type"
	headerAggregateType = "aggregate_type"
)

// Producer writes outbox entries as records keyed by aggregate, so all
// events of one person or household land on the same partition in order.
type Producer struct {
	client *kgo.Client
	topic  string
	logger *slog.Logger
}

func NewProducer(brokers []string, topic string, logger *slog.Logger) (*Producer, error) {
	if len(brokers) == 0 {
		return nil, errors.New("kafka: no brokers configured")
	}
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.RequiredAcks(kgo.AllISRAcks()),
		kgo.ClientID("govinda-outbox-relay"),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka: create client: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Producer{client: client, topic: topic, logger: logger}, nil
}

// Ping checks that at least one broker is reachable.
func (p *Producer) Ping(ctx context.Context) error {
	return p.client.Ping(ctx)
}

// EnsureTopic creates the topic if it does not exist yet.
func (p *Producer) EnsureTopic(ctx context.Context, partitions int32, replication int16) error {
	adm := kadm.NewClient(p.client)
	resp, err := adm.CreateTopics(ctx, partitions, replication, nil, p.topic)
	if err != nil {
		return fmt.Errorf("kafka: create topic %s: %w", p.topic, err)
	}
	for _, r := range resp.Sorted() {
		if r.Err != nil && !errors.Is(r.Err, kerr.TopicAlreadyExists) {
			return fmt.Errorf("kafka: create topic %s: %w", r.Topic, r.Err)
		}
	}
	return nil
}

// Publish implements worker.Producer. It returns the ids of the entries the
// brokers acknowledged together with the first error, if any.
func (p *Producer) Publish(ctx context.Context, entries []audit.OutboxEntry) ([]uuid.UUID, error) {
	if len(entries) == 0 {
		return nil, nil
	}
	records := make([]*kgo.Record, len(entries))
	byRecord := make(map[*kgo.Record]uuid.UUID, len(entries))
	for i, e := range entries {
		records[i] = p.record(e)
		byRecord[records[i]] = e.ID
	}

	results := p.client.ProduceSync(ctx, records...)
	delivered := make([]uuid.UUID, 0, len(results))
	var firstErr error
	for _, r := range results {
		if r.Err != nil {
			if firstErr == nil {
				firstErr = r.Err
			}
			continue
		}
		delivered = append(delivered, byRecord[r.Record])
	}
	if firstErr != nil {
		p.logger.WarnContext(ctx, "kafka publish partially failed",
			"topic", p.topic,
			"delivered", len(delivered),
			"batch", len(entries),
			"error", firstErr,
		)
		return delivered, fmt.Errorf("kafka: produce: %w", firstErr)
	}
	return delivered, nil
}

func (p *Producer) record(e audit.OutboxEntry) *kgo.Record {
	return &kgo.Record{
		Topic:     p.topic,
		Key:       []byte(e.Key()),
		Value:     e.Payload,
		Timestamp: e.CreatedAt,
		Headers: []kgo.RecordHeader{
			{Key: headerEventType, Value: []byte(e.EventType)},
			{Key: headerAggregateType, Value: []byte(e.AggregateType)},
		},
	}
}

// Close flushes buffered records and closes the client.
func (p *Producer) Close() {
	p.client.Close()
}
