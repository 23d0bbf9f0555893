package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/confluentinc/confluent-kafka-go/kafka"
	"github.com/sirupsen/logrus"

	"github.com/Panorama-Block/near-versions/internal/types"
)

// Publisher hands a finished report to downstream consumers
type Publisher interface {
	PublishReport(ctx context.Context, report *types.Report) error
	Close()
}

type Producer struct {
	Producer *kafka.Producer
	Topic    string
}

func NewProducer(broker, topic string) (*Producer, error) {
	p, err := kafka.NewProducer(&kafka.ConfigMap{"bootstrap.servers": broker})
	if err != nil {
		return nil, fmt.Errorf("connecting to kafka at %s: %w", broker, err)
	}
	return &Producer{Producer: p, Topic: topic}, nil
}

// PublishReport sends the report keyed by its timestamp and waits for the
// delivery report.
func (p *Producer) PublishReport(ctx context.Context, report *types.Report) error {
	message, err := reportMessage(p.Topic, report)
	if err != nil {
		return err
	}

	delivery := make(chan kafka.Event, 1)
	if err := p.Producer.Produce(message, delivery); err != nil {
		return fmt.Errorf("producing to %s: %w", p.Topic, err)
	}

	select {
	case e := <-delivery:
		m, ok := e.(*kafka.Message)
		if !ok {
			return fmt.Errorf("unexpected delivery event: %v", e)
		}
		if m.TopicPartition.Error != nil {
			return fmt.Errorf("delivery to %s failed: %w", p.Topic, m.TopicPartition.Error)
		}
		logrus.Infof("Report published to %s [%d] at offset %v", p.Topic, m.TopicPartition.Partition, m.TopicPartition.Offset)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// reportMessage encodes the report as JSON, keyed by its timestamp.
func reportMessage(topic string, report *types.Report) (*kafka.Message, error) {
	data, err := json.Marshal(report)
	if err != nil {
		return nil, fmt.Errorf("encoding report: %w", err)
	}
	return &kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &topic, Partition: kafka.PartitionAny},
		Key:            []byte(report.Timestamp),
		Value:          data,
	}, nil
}

func (p *Producer) Close() {
	p.Producer.Flush(5000)
	p.Producer.Close()
}

// MockProducer keeps published reports in memory
type MockProducer struct {
	Reports []*types.Report
	Err     error
	Closed  bool
}

func NewMockProducer() *MockProducer {
	return &MockProducer{}
}

func (m *MockProducer) PublishReport(_ context.Context, report *types.Report) error {
	if m.Err != nil {
		return m.Err
	}
	m.Reports = append(m.Reports, report)
	return nil
}

func (m *MockProducer) Close() {
	m.Closed = true
}
