package consumers

import (
	"context"
	"log/slog"
	"time"

	"github.com/spacesedan/castflow/internal/clients"
	"github.com/spacesedan/castflow/internal/clients/kafka_client"
	"github.com/spacesedan/castflow/internal/db"
	"github.com/spacesedan/castflow/internal/models"
	"github.com/spacesedan/castflow/internal/processing"
	"github.com/spacesedan/castflow/internal/utils"
)

var (
	castBatchBuffer = utils.NewBatchBuffer[models.Cast](kafka_client.BATCH_SIZE)
	castOffsets     = utils.NewOffsetTracker()
)

// StartCastsConsumer reads raw casts, skips hashes already processed within
// the valkey seen-window, and flushes accumulated batches through the
// pipeline. Offsets are committed only after a batch has been fully
// published and stored, so a crashed flush is reprocessed at least once.
func StartCastsConsumer(ctx context.Context, consumer *kafka_client.Consumer, pipe *processing.Pipeline) {
	slog.Info("[CastsConsumer] Listening for messages...")

	valkeyClient := clients.GetValkeyClient()

	ticker := time.NewTicker(kafka_client.BATCH_TIMEOUT)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Warn("[CastsConsumer] Stopping consumer...")
			return
		case <-ticker.C:
			if err := flushCasts(ctx, consumer, pipe); err != nil {
				slog.Error("[CastsConsumer] Batch failed, stopping consumer",
					slog.String("error", err.Error()))
				return
			}
		default:
			msg, err := consumer.Next()
			if err != nil {
				utils.HandleConsumerError(err)
				continue
			}

			var cast models.Cast
			if err := utils.DeserializeFromJSON(msg.Value, &cast); err != nil {
				continue
			}

			seen, err := valkeyClient.SeenCast(ctx, cast.Hash)
			if err != nil {
				slog.Warn("[CastsConsumer] Seen-check failed, processing anyway",
					slog.String("hash", cast.Hash),
					slog.String("error", err.Error()))
			}
			if seen {
				slog.Debug("[CastsConsumer] Skipping duplicate cast", slog.String("hash", cast.Hash))
				castOffsets.Track(msg)
				continue
			}

			castBatchBuffer.Add(cast)
			castOffsets.Track(msg)

			if castBatchBuffer.Size() >= kafka_client.BATCH_SIZE {
				if err := flushCasts(ctx, consumer, pipe); err != nil {
					slog.Error("[CastsConsumer] Batch failed, stopping consumer",
						slog.String("error", err.Error()))
					return
				}
			}
		}
	}
}

func flushCasts(ctx context.Context, consumer *kafka_client.Consumer, pipe *processing.Pipeline) error {
	batch := castBatchBuffer.GetAndClear()
	if len(batch) == 0 {
		commitTracked(consumer, castOffsets)
		return nil
	}

	result, err := pipe.ProcessCasts(ctx, batch)
	if err != nil {
		return err
	}

	itemEnvelopes := make([]kafka_client.Envelope, 0, len(result.Items))
	for _, item := range result.Items {
		itemEnvelopes = append(itemEnvelopes, kafka_client.Envelope{Key: item.ItemID, Value: item})
	}
	if err := kafka_client.PublishBatch(ctx, kafka_client.KAFKA_TOPIC_ITEMS, itemEnvelopes); err != nil {
		return err
	}

	interactionEnvelopes := make([]kafka_client.Envelope, 0, len(result.Interactions))
	for _, in := range result.Interactions {
		interactionEnvelopes = append(interactionEnvelopes, kafka_client.Envelope{Key: in.ItemID, Value: in})
	}
	if err := kafka_client.PublishBatch(ctx, kafka_client.KAFKA_TOPIC_INTERACTIONS, interactionEnvelopes); err != nil {
		return err
	}

	if err := db.StoreItems(ctx, result.Items); err != nil {
		return err
	}
	if err := db.StoreItemLabels(ctx, result.ItemLabels); err != nil {
		return err
	}
	if err := db.StoreInteractions(ctx, result.Interactions); err != nil {
		return err
	}

	hashes := make([]string, 0, len(batch))
	for _, c := range batch {
		hashes = append(hashes, c.Hash)
	}
	if err := clients.GetValkeyClient().MarkCastsSeen(ctx, hashes); err != nil {
		slog.Warn("[CastsConsumer] Failed to mark casts seen",
			slog.String("error", err.Error()))
	}

	commitTracked(consumer, castOffsets)
	return nil
}

func commitTracked(consumer *kafka_client.Consumer, tracker *utils.OffsetTracker) {
	for _, msg := range tracker.Flush() {
		if err := consumer.Commit(msg); err != nil {
			slog.Warn("[Consumers] Failed to commit offset",
				slog.String("error", err.Error()))
		}
	}
}
