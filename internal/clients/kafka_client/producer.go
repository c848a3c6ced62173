package kafka_client

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/confluentinc/confluent-kafka-go/kafka"
)

var producer *kafka.Producer

func InitProducer(cfg KafkaConfig) error {
	slog.Info("[KafkaClient] Initializing Kafka Producer...")

	p, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers":                     cfg.Broker,
		"security.protocol":                     "PLAINTEXT",
		"api.version.request":                   "true",
		"enable.idempotence":                    true,
		"acks":                                  "all",
		"max.in.flight.requests.per.connection": 1,
		"transactional.id":                      "castflow-producer-1",
	})
	if err != nil {
		return fmt.Errorf("[KafkaClient] Failed to create producer: %w", err)
	}

	if err := p.InitTransactions(context.Background()); err != nil {
		return fmt.Errorf("[KafkaClient] Failed to init transactions: %w", err)
	}

	producer = p
	slog.Info("[KafkaClient] Kafka Producer initialized successfully")
	return nil
}

func CloseProducer() {
	slog.Info("[KafkaClient] Shutting down Kafka producer...")
	if producer != nil {
		slog.Info("[KafkaClient] Flushing Kafka producer before shutdown...")
		if remaining := producer.Flush(5000); remaining > 0 {
			slog.Warn("[KafkaClient] Not all messages were delivered before shutdown",
				slog.Int("remaining", remaining))
		}
		producer.Close()
		slog.Info("[KafkaClient] Kafka producer shut down")
	}
}

// Envelope is one keyed record to publish.
type Envelope struct {
	Key   string
	Value any
}

// PublishBatch publishes a whole canonical batch to one topic inside a single
// transaction, so a batch either lands completely or not at all.
func PublishBatch(ctx context.Context, topic string, batch []Envelope) error {
	if producer == nil {
		return fmt.Errorf("[KafkaClient] producer has not been initialized")
	}
	if len(batch) == 0 {
		return nil
	}

	if err := producer.BeginTransaction(); err != nil {
		return fmt.Errorf("[KafkaClient] failed to begin transaction: %w", err)
	}

	for _, env := range batch {
		jsonData, err := json.Marshal(env.Value)
		if err != nil {
			return abortWith(ctx, fmt.Errorf("[KafkaClient] failed to serialize record %q: %w", env.Key, err))
		}

		msg := &kafka.Message{
			TopicPartition: kafka.TopicPartition{Topic: &topic, Partition: kafka.PartitionAny},
			Key:            []byte(env.Key),
			Value:          jsonData,
		}
		if err := producer.Produce(msg, nil); err != nil {
			return abortWith(ctx, fmt.Errorf("[KafkaClient] failed to produce record %q: %w", env.Key, err))
		}
	}

	if err := producer.CommitTransaction(ctx); err != nil {
		return abortWith(ctx, fmt.Errorf("[KafkaClient] failed to commit transaction: %w", err))
	}

	slog.Info("[KafkaClient] Published batch",
		slog.String("topic", topic),
		slog.Int("records", len(batch)))
	return nil
}

func abortWith(ctx context.Context, err error) error {
	if abortErr := producer.AbortTransaction(ctx); abortErr != nil {
		return fmt.Errorf("[KafkaClient] failed to abort transaction after error %v: %w", err, abortErr)
	}
	return err
}
