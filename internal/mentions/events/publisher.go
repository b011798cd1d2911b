// Package events publishes delivery events to Kafka so downstream consumers
// (digests, webhooks, analytics) can react to mention notifications without
// coupling to the dispatch path.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/twmb/franz-go/pkg/kgo"

	"mentiond/internal/mentions/models"
)

// DefaultTopic is the topic delivery events are produced to unless
// configured otherwise.
const DefaultTopic = "mentions.delivered"

// Publisher implements the delivery hook by producing one JSON record per
// successful push. Publishing is fire-and-forget: failures are logged, never
// surfaced into the dispatch path.
type Publisher struct {
	client *kgo.Client
	topic  string
	logger *slog.Logger
}

// Option configures the Publisher.
type Option func(*Publisher)

// WithLogger sets a logger for produce failures.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

// WithTopic overrides the destination topic.
func WithTopic(topic string) Option {
	return func(p *Publisher) {
		p.topic = topic
	}
}

// New creates a Kafka-backed delivery event publisher. Returns nil when no
// brokers are configured; a nil Publisher is a safe no-op hook.
func New(brokers []string, opts ...Option) (*Publisher, error) {
	if len(brokers) == 0 {
		return nil, nil
	}

	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}

	p := &Publisher{
		client: client,
		topic:  DefaultTopic,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Delivered produces one event per successful push. Records are keyed by
// post id so all deliveries for a post land in one partition, in order.
func (p *Publisher) Delivered(ctx context.Context, event models.DeliveryEvent) {
	if p == nil || p.client == nil {
		return
	}

	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.At.IsZero() {
		event.At = time.Now()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		if p.logger != nil {
			p.logger.Error("marshal delivery event", "error", err)
		}
		return
	}

	record := &kgo.Record{
		Topic: p.topic,
		Key:   []byte(strconv.FormatInt(event.PostID, 10)),
		Value: payload,
	}
	p.client.Produce(ctx, record, func(_ *kgo.Record, err error) {
		if err != nil && p.logger != nil {
			p.logger.Error("publish delivery event",
				"topic", p.topic,
				"post_id", event.PostID,
				"error", err,
			)
		}
	})
}

// Close flushes outstanding records and releases the client.
func (p *Publisher) Close() {
	if p == nil || p.client == nil {
		return
	}
	_ = p.client.Flush(context.Background())
	p.client.Close()
}
