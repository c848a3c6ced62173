package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spacesedan/castflow/config"
	"github.com/spacesedan/castflow/internal/clients"
	"github.com/spacesedan/castflow/internal/clients/kafka_client"
	"github.com/spacesedan/castflow/internal/consumers"
	"github.com/spacesedan/castflow/internal/db"
	"github.com/spacesedan/castflow/internal/enrich"
	"github.com/spacesedan/castflow/internal/langdetect"
	"github.com/spacesedan/castflow/internal/logging"
	"github.com/spacesedan/castflow/internal/processing"
	"github.com/spacesedan/castflow/internal/schema"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	logging.InitLogger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
		<-sigs
		slog.Warn("[Main] Shutdown signal received")
		cancel()
	}()

	pipelineCfg := config.GetPipelineConfig()

	taxonomy, err := schema.LoadLabelColumns(pipelineCfg.LabelConfigPath)
	if err != nil {
		slog.Error("[Main] Failed to load label taxonomy", slog.String("error", err.Error()))
		os.Exit(1)
	}

	pipe := &processing.Pipeline{
		Enricher: enrich.New(pipelineCfg.EnricherConfig()),
		Detector: langdetect.New(),
		Labels:   taxonomy,
	}

	clients.InitValkey()
	defer clients.CloseValkey()
	db.InitDynamoDB()

	kafkaCfg := kafka_client.GetKafkaConfig()
	for {
		err := kafka_client.InitProducer(kafkaCfg)
		if err == nil {
			break
		}

		slog.Warn("Kafka init failed, retrying...", slog.String("error", err.Error()))
		time.Sleep(5 * time.Second)
	}
	defer kafka_client.CloseProducer()

	consumerFuncs := map[string]func(context.Context, *kafka_client.Consumer, *processing.Pipeline){
		kafka_client.KAFKA_TOPIC_RAW_CASTS:        consumers.StartCastsConsumer,
		kafka_client.KAFKA_TOPIC_RAW_REACTIONS:    consumers.StartReactionsConsumer,
		kafka_client.KAFKA_TOPIC_RAW_USER_UPDATES: consumers.StartUsersConsumer,
	}

	var wg sync.WaitGroup
	for topic, start := range consumerFuncs {
		consumer, err := kafka_client.NewConsumer(ctx, kafkaCfg, topic)
		if err != nil {
			slog.Error("[Main] Failed to start consumer",
				slog.String("topic", topic),
				slog.String("error", err.Error()))
			os.Exit(1)
		}

		wg.Add(1)
		go func(topic string, start func(context.Context, *kafka_client.Consumer, *processing.Pipeline)) {
			defer wg.Done()
			defer consumer.Close()
			start(ctx, consumer, pipe)
		}(topic, start)
	}

	wg.Wait()
	slog.Info("[Main] All consumers stopped")
}
