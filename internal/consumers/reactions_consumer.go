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
	reactionBatchBuffer = utils.NewBatchBuffer[models.Reaction](kafka_client.BATCH_SIZE)
	reactionOffsets     = utils.NewOffsetTracker()
)

// StartReactionsConsumer reads raw reactions and flushes them through the
// reaction edge mapping. An unmapped reaction code is fatal for the batch
// and stops the consumer rather than corrupting the edge taxonomy.
func StartReactionsConsumer(ctx context.Context, consumer *kafka_client.Consumer, pipe *processing.Pipeline) {
	slog.Info("[ReactionsConsumer] Listening for messages...")

	ticker := time.NewTicker(kafka_client.BATCH_TIMEOUT)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Warn("[ReactionsConsumer] Stopping consumer...")
			return
		case <-ticker.C:
			if err := flushReactions(ctx, consumer, pipe); err != nil {
				slog.Error("[ReactionsConsumer] Batch failed, stopping consumer",
					slog.String("error", err.Error()))
				return
			}
		default:
			msg, err := consumer.Next()
			if err != nil {
				utils.HandleConsumerError(err)
				continue
			}

			var reaction models.Reaction
			if err := utils.DeserializeFromJSON(msg.Value, &reaction); err != nil {
				continue
			}

			reactionBatchBuffer.Add(reaction)
			reactionOffsets.Track(msg)

			if reactionBatchBuffer.Size() >= kafka_client.BATCH_SIZE {
				if err := flushReactions(ctx, consumer, pipe); err != nil {
					slog.Error("[ReactionsConsumer] Batch failed, stopping consumer",
						slog.String("error", err.Error()))
					return
				}
			}
		}
	}
}

func flushReactions(ctx context.Context, consumer *kafka_client.Consumer, pipe *processing.Pipeline) error {
	batch := reactionBatchBuffer.GetAndClear()
	if len(batch) == 0 {
		commitTracked(consumer, reactionOffsets)
		return nil
	}

	interactions, err := pipe.ProcessReactions(ctx, batch)
	if err != nil {
		return err
	}

	envelopes := make([]kafka_client.Envelope, 0, len(interactions))
	for _, in := range interactions {
		envelopes = append(envelopes, kafka_client.Envelope{Key: in.ItemID, Value: in})
	}
	if err := kafka_client.PublishBatch(ctx, kafka_client.KAFKA_TOPIC_INTERACTIONS, envelopes); err != nil {
		return err
	}
	if err := db.StoreInteractions(ctx, interactions); err != nil {
		return err
	}

	commitTracked(consumer, reactionOffsets)
	return nil
}
