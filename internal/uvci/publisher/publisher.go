// Package publisher emits inspection events to downstream consumers.
package publisher

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/twmb/franz-go/pkg/kgo"

	"uvci/internal/uvci/models"
	"uvci/pkg/platform/sentinel"
)

// Producer is the subset of *kgo.Client used for publishing.
type Producer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
}

// KafkaPublisher writes one JSON record per inspection event, keyed so every
// reissue of a certificate lands on the same partition.
type KafkaPublisher struct {
	producer Producer
	topic    string
}

func NewKafkaPublisher(producer Producer, topic string) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, topic: topic}
}

func (p *KafkaPublisher) Publish(ctx context.Context, ev models.InspectionEvent) error {
	value, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode inspection event: %w", err)
	}
	rec := &kgo.Record{
		Topic: p.topic,
		Key:   []byte(ev.Key()),
		Value: value,
		Headers: []kgo.RecordHeader{
			{Key: "event_type", Value: []byte("uvci.inspected")},
		},
	}
	if err := p.producer.ProduceSync(ctx, rec).FirstErr(); err != nil {
		return fmt.Errorf("produce inspection event: %w: %w", sentinel.ErrUnavailable, err)
	}
	return nil
}

// Noop discards events.
type Noop struct{}

func (Noop) Publish(context.Context, models.InspectionEvent) error { return nil }
