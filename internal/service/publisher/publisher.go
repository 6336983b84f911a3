// Package publisher delivers opaque event payloads to a message topic.
package publisher

import (
	"context"
	"fmt"

	"cloud.google.com/go/pubsub"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// PubSub publishes to one Google Cloud Pub/Sub topic.
type PubSub struct {
	client *pubsub.Client
	topic  *pubsub.Topic
}

func NewPubSub(ctx context.Context, projectID, topicID string, opts ...option.ClientOption) (*PubSub, error) {
	client, err := pubsub.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create pubsub client: %w", err)
	}
	return &PubSub{client: client, topic: client.Topic(topicID)}, nil
}

// Publish sends data and blocks until the server acknowledges it, returning
// the server-assigned message id.
func (p *PubSub) Publish(ctx context.Context, data []byte) (string, error) {
	id, err := p.topic.Publish(ctx, &pubsub.Message{Data: data}).Get(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to publish to %s: %w", p.topic.ID(), err)
	}
	return id, nil
}

func (p *PubSub) Close() error {
	p.topic.Stop()
	return p.client.Close()
}

// Log stands in for a topic when no Pub/Sub project is configured; it only
// logs the payload.
type Log struct {
	logger *zap.Logger
	topic  string
}

func NewLog(logger *zap.Logger, topic string) *Log {
	return &Log{logger: logger, topic: topic}
}

func (l *Log) Publish(ctx context.Context, data []byte) (string, error) {
	l.logger.Info("pubsub disabled, event not delivered",
		zap.String("topic", l.topic),
		zap.ByteString("payload", data),
	)
	return "", nil
}

func (l *Log) Close() error { return nil }
