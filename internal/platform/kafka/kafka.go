// Package kafka builds the franz-go client used to publish inspection events
// and prepares its topic.
package kafka

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	"uvci/internal/platform/config"
)

const (
	defaultPartitions  int32 = 3
	defaultReplication int16 = 1
	produceLinger            = 5 * time.Millisecond
)

// Client wraps kgo.Client with health checking capabilities.
type Client struct {
	*kgo.Client
	topic string
}

// New connects to the configured brokers. Returns nil if no brokers are
// configured (publishing disabled).
func New(ctx context.Context, cfg config.KafkaConfig) (*Client, error) {
	if len(cfg.Brokers) == 0 {
		return nil, nil
	}
	if cfg.Topic == "" {
		return nil, errors.New("kafka topic is required")
	}

	client, err := kgo.NewClient(
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.ClientID(cfg.ClientID),
		kgo.DefaultProduceTopic(cfg.Topic),
		kgo.RequiredAcks(kgo.AllISRAcks()),
		kgo.ProducerLinger(produceLinger),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	if err := client.Ping(ctx); err != nil {
		client.Close()
		return nil, fmt.Errorf("kafka ping failed: %w", err)
	}
	return &Client{Client: client, topic: cfg.Topic}, nil
}

// Topic is the default produce topic.
func (c *Client) Topic() string {
	return c.topic
}

// EnsureTopic creates the produce topic unless it already exists.
func (c *Client) EnsureTopic(ctx context.Context) error {
	adm := kadm.NewClient(c.Client)
	resp, err := adm.CreateTopics(ctx, defaultPartitions, defaultReplication, nil, c.topic)
	if err != nil {
		return fmt.Errorf("create topic %s: %w", c.topic, err)
	}
	for _, r := range resp {
		if r.Err != nil && !errors.Is(r.Err, kerr.TopicAlreadyExists) {
			return fmt.Errorf("create topic %s: %w", r.Topic, r.Err)
		}
	}
	return nil
}

// Health checks if a broker is reachable.
func (c *Client) Health(ctx context.Context) error {
	return c.Ping(ctx)
}
