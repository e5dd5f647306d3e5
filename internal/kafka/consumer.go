package kafka

import (
	"context"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

// AirplaneEventHandler receives each decoded airplane event.
type AirplaneEventHandler func(ctx context.Context, event AirplaneEvent) error

type messageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

type AirplaneConsumer struct {
	reader messageReader
	log    logrus.FieldLogger
}

func NewAirplaneConsumer(brokers []string, groupID, topic string, log logrus.FieldLogger) *AirplaneConsumer {
	return &AirplaneConsumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:           brokers,
			GroupID:           groupID,
			Topic:             topic,
			HeartbeatInterval: 3 * time.Second,
			SessionTimeout:    30 * time.Second,
		}),
		log: log,
	}
}

func (c *AirplaneConsumer) Close() error {
	if c == nil || c.reader == nil {
		return nil
	}
	return c.reader.Close()
}

// Consume blocks until ctx is done, the reader fails, or handler returns an error.
// Messages that are not airplane events are logged and skipped.
func (c *AirplaneConsumer) Consume(ctx context.Context, handler AirplaneEventHandler) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			return err
		}

		if err := c.handle(ctx, msg, handler); err != nil {
			return err
		}
	}
}

func (c *AirplaneConsumer) handle(ctx context.Context, msg kafka.Message, handler AirplaneEventHandler) error {
	event, err := DecodeAirplaneEvent(msg.Value)
	if err != nil {
		if c.log != nil {
			c.log.WithError(err).WithFields(logrus.Fields{
				"partition": msg.Partition,
				"offset":    msg.Offset,
			}).Warn("skipping undecodable event")
		}
		return nil
	}
	if event.Type != EventAirplaneCreated {
		return nil
	}
	return handler(ctx, event)
}
