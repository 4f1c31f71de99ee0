package kafka

//go:generate go run go.uber.org/mock/mockgen -source=./kafka.go -destination=./mocks/kafka_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"
	"github.com/rs/zerolog/log"

	"kosan/config"
)

type Message struct {
	Key   string
	Value any
}

func (m *Message) ToKafkaMessage() (kafkaGo.Message, error) {
	jsonValue, err := json.Marshal(m.Value)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal message value to JSON")

		return kafkaGo.Message{}, fmt.Errorf("failed to marshal message value to JSON: %w", err)
	}

	return kafkaGo.Message{
		Key:   []byte(m.Key),
		Value: jsonValue,
	}, nil
}

type Client interface {
	SendMessages(ctx context.Context, topic string, messages ...Message) (err error)
}

type kafkaClientImpl struct {
	config *config.Config
	writer *kafkaGo.Writer
}

func New(config *config.Config) Client {
	writer := &kafkaGo.Writer{
		Addr:     kafkaGo.TCP(config.Kafka.Brokers...),
		Balancer: &kafkaGo.LeastBytes{},
	}

	if config.Kafka.SASL.Username != "" {
		writer.Transport = &kafkaGo.Transport{
			SASL: plain.Mechanism{
				Username: config.Kafka.SASL.Username,
				Password: config.Kafka.SASL.Password,
			},
		}
	}

	return &kafkaClientImpl{
		config: config,
		writer: writer,
	}
}

func (client *kafkaClientImpl) SendMessages(ctx context.Context, topic string, messages ...Message) error {
	kafkaMessages := make([]kafkaGo.Message, 0, len(messages))

	for _, message := range messages {
		kafkaMessage, err := message.ToKafkaMessage()
		if err != nil {
			return err
		}

		kafkaMessage.Topic = topic
		kafkaMessages = append(kafkaMessages, kafkaMessage)
	}

	if err := client.writer.WriteMessages(ctx, kafkaMessages...); err != nil {
		log.Error().Err(err).Str("topic", topic).Msg("Failed to write kafka messages")

		return fmt.Errorf("failed to write kafka messages: %w", err)
	}

	return nil
}
