package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Producer struct {
	writer messageWriter
	log    logrus.FieldLogger
	now    func() time.Time
}

func NewProducer(brokers []string, log logrus.FieldLogger) *Producer {
	return &Producer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Balancer:     &kafka.Hash{},
			BatchTimeout: 50 * time.Millisecond,
			RequiredAcks: kafka.RequireOne,
		},
		log: log,
		now: time.Now,
	}
}

func (p *Producer) Publish(ctx context.Context, topic, key string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s payload: %w", topic, err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: data,
		Time:  p.now(),
	})
	if err != nil {
		return fmt.Errorf("write to %s: %w", topic, err)
	}

	if p.log != nil {
		p.log.WithFields(logrus.Fields{"topic": topic, "key": key}).Debug("published event")
	}
	return nil
}

// PublishAirplaneEvent keys the message by airplane ID so events for one airplane share a partition.
func (p *Producer) PublishAirplaneEvent(ctx context.Context, topic string, event AirplaneEvent) error {
	return p.Publish(ctx, topic, strconv.FormatInt(event.AirplaneID, 10), event)
}

func (p *Producer) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
