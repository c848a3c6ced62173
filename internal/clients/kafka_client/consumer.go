package kafka_client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/confluentinc/confluent-kafka-go/kafka"
)

// Consumer wraps a kafka.Consumer with the retrying read and commit loops
// every record consumer needs.
type Consumer struct {
	consumer *kafka.Consumer
	ctx      context.Context
}

// NewConsumer subscribes a fresh consumer to one raw-record topic.
func NewConsumer(ctx context.Context, cfg KafkaConfig, topic string) (*Consumer, error) {
	slog.Info("[KafkaClient] Initializing Kafka Consumer...",
		slog.String("broker", cfg.Broker),
		slog.String("group_id", cfg.GroupID),
		slog.String("topic", topic))

	c, err := kafka.NewConsumer(&kafka.ConfigMap{
		"bootstrap.servers":  cfg.Broker,
		"group.id":           cfg.GroupID,
		"auto.offset.reset":  "earliest",
		"enable.auto.commit": false,
		"isolation.level":    "read_committed",
	})
	if err != nil {
		return nil, fmt.Errorf("[KafkaClient] Failed to create consumer: %w", err)
	}

	if err := c.SubscribeTopics([]string{topic}, nil); err != nil {
		return nil, fmt.Errorf("[KafkaClient] Failed to subscribe to topic %s: %w", topic, err)
	}

	slog.Info("[KafkaClient] Kafka Consumer initialized successfully")
	return &Consumer{consumer: c, ctx: ctx}, nil
}

func (c *Consumer) Close() error {
	return c.consumer.Close()
}

// Next reads the next message, retrying transient read errors. The poll
// timeout keeps the loop responsive to context cancellation.
func (c *Consumer) Next() (*kafka.Message, error) {
	if c.consumer == nil {
		return nil, errors.New("[KafkaConsumer] Kafka consumer has not been initialized")
	}

	for i := 0; i < MAX_RETRIES; i++ {
		select {
		case <-c.ctx.Done():
			slog.Warn("[KafkaConsumer] Context cancelled, stopping reads")
			return nil, c.ctx.Err()
		default:
			msg, err := c.consumer.ReadMessage(time.Second)
			if err != nil {
				var kafkaErr kafka.Error
				if errors.As(err, &kafkaErr) {
					if kafkaErr.Code() == kafka.ErrTimedOut {
						continue
					}
					if kafkaErr.Code() == kafka.ErrAllBrokersDown {
						slog.Error("[KafkaConsumer] All Kafka brokers are down. Aborting")
						return nil, err
					}
				}

				slog.Warn("[KafkaConsumer] Failed to read message, retrying...",
					slog.Int("attempt", i+1),
					slog.Int("max_retries", MAX_RETRIES),
					slog.String("error", err.Error()))

				time.Sleep(RETRY_DELAY)
				continue
			}
			return msg, nil
		}
	}
	return nil, errors.New("[KafkaConsumer] Failed to read message after retries")
}

// Commit commits the offset of msg, retrying transient failures.
func (c *Consumer) Commit(msg *kafka.Message) error {
	if c.consumer == nil {
		return errors.New("[KafkaConsumer] Kafka consumer has not been initialized")
	}

	for i := 0; i < MAX_RETRIES; i++ {
		select {
		case <-c.ctx.Done():
			slog.Warn("[KafkaConsumer] Context canceled, stopping commit")
			return c.ctx.Err()
		default:
			_, err := c.consumer.CommitMessage(msg)
			if err == nil {
				slog.Debug("[KafkaConsumer] Committed offset",
					slog.Int("partition", int(msg.TopicPartition.Partition)),
					slog.String("offset", msg.TopicPartition.Offset.String()))
				return nil
			}

			slog.Warn("[KafkaConsumer] Failed to commit offset, retrying...",
				slog.Int("attempt", i+1),
				slog.String("error", err.Error()))

			var kafkaErr kafka.Error
			if errors.As(err, &kafkaErr) && kafkaErr.Code() == kafka.ErrAllBrokersDown {
				slog.Error("[KafkaConsumer] All Kafka brokers are down. Aborting commit")
				return err
			}

			time.Sleep(RETRY_DELAY)
		}
	}

	return fmt.Errorf("[KafkaConsumer] Failed to commit message after %d retries", MAX_RETRIES)
}
