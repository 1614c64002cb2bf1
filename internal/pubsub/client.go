package pubsub

import (
	"context"
	"fmt"

	"cloud.google.com/go/pubsub"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// New connects to Google Cloud Pub/Sub. An empty projectID returns a client
// that only logs outgoing messages.
func New(ctx context.Context, projectID string) (PubSubClient, error) {
	if projectID == "" {
		log.Info("GCP project not configured, Pub/Sub publishing disabled")
		return noop{}, nil
	}
	pubSubC, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create pubsub client: %w", err)
	}
	return &client{client: pubSubC}, nil
}

func (c *client) SendMessage(ctx context.Context, topic EventType, data any) error {
	msgpackData, err := msgpack.Marshal(data)
	if err != nil {
		log.Error("MessagePack marshal error", "error", err)
		return err
	}
	message := &pubsub.Message{
		Data: msgpackData,
	}
	result := c.client.Topic(string(topic)).Publish(ctx, message)
	serverID, err := result.Get(ctx)
	if err != nil {
		log.Error("Failed to publish message", "error", err, "topic", topic)
		return err
	}
	log.Info("SendMessage", "serverID", serverID, "topic", topic)
	return nil
}

func (c *client) ProcessMessage(data []byte, returnValue any) error {
	return decode(data, returnValue)
}

func (c *client) Close() error {
	return c.client.Close()
}

// noop decodes pushed messages but never publishes.
type noop struct{}

func (noop) SendMessage(_ context.Context, topic EventType, _ any) error {
	log.Debug("Pub/Sub disabled, dropping message", "topic", topic)
	return nil
}

func (noop) ProcessMessage(data []byte, returnValue any) error {
	return decode(data, returnValue)
}

func (noop) Close() error { return nil }

// Encode marshals a payload the way SendMessage does.
func Encode(data any) ([]byte, error) {
	return msgpack.Marshal(data)
}

func decode(data []byte, returnValue any) error {
	// Unmarshal the MessagePack data into the provided pointer struct
	if err := msgpack.Unmarshal(data, returnValue); err != nil {
		log.Error("MessagePack unmarshal error", "error", err)
		return err
	}
	return nil
}
