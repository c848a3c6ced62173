package consumers

import (
	"context"
	"log/slog"
	"time"

	"github.com/spacesedan/castflow/internal/clients/kafka_client"
	"github.com/spacesedan/castflow/internal/db"
	"github.com/spacesedan/castflow/internal/models"
	"github.com/spacesedan/castflow/internal/processing"
	"github.com/spacesedan/castflow/internal/utils"
)

var (
	userBatchBuffer = utils.NewBatchBuffer[models.UserDataUpdate](kafka_client.BATCH_SIZE)
	userOffsets     = utils.NewOffsetTracker()
)

// StartUsersConsumer reads raw profile updates and flushes them through the
// user projection. Non-bio updates are carried into the batch and filtered
// by the projection itself.
func StartUsersConsumer(ctx context.Context, consumer *kafka_client.Consumer, pipe *processing.Pipeline) {
	slog.Info("[UsersConsumer] Listening for messages...")

	ticker := time.NewTicker(kafka_client.BATCH_TIMEOUT)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Warn("[UsersConsumer] Stopping consumer...")
			return
		case <-ticker.C:
			if err := flushUsers(ctx, consumer, pipe); err != nil {
				slog.Error("[UsersConsumer] Batch failed, stopping consumer",
					slog.String("error", err.Error()))
				return
			}
		default:
			msg, err := consumer.Next()
			if err != nil {
				utils.HandleConsumerError(err)
				continue
			}

			var update models.UserDataUpdate
			if err := utils.DeserializeFromJSON(msg.Value, &update); err != nil {
				continue
			}

			userBatchBuffer.Add(update)
			userOffsets.Track(msg)

			if userBatchBuffer.Size() >= kafka_client.BATCH_SIZE {
				if err := flushUsers(ctx, consumer, pipe); err != nil {
					slog.Error("[UsersConsumer] Batch failed, stopping consumer",
						slog.String("error", err.Error()))
					return
				}
			}
		}
	}
}

func flushUsers(ctx context.Context, consumer *kafka_client.Consumer, pipe *processing.Pipeline) error {
	batch := userBatchBuffer.GetAndClear()
	if len(batch) == 0 {
		commitTracked(consumer, userOffsets)
		return nil
	}

	users, err := pipe.ProcessUserUpdates(ctx, batch)
	if err != nil {
		return err
	}

	envelopes := make([]kafka_client.Envelope, 0, len(users))
	for _, u := range users {
		envelopes = append(envelopes, kafka_client.Envelope{Key: u.UserID, Value: u})
	}
	if err := kafka_client.PublishBatch(ctx, kafka_client.KAFKA_TOPIC_USERS, envelopes); err != nil {
		return err
	}
	if err := db.StoreUsers(ctx, users); err != nil {
		return err
	}

	commitTracked(consumer, userOffsets)
	return nil
}
