package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"

	"github.com/spacesedan/castflow/config"
	"github.com/spacesedan/castflow/internal/db"
	"github.com/spacesedan/castflow/internal/enrich"
	"github.com/spacesedan/castflow/internal/langdetect"
	"github.com/spacesedan/castflow/internal/logging"
	"github.com/spacesedan/castflow/internal/models"
	"github.com/spacesedan/castflow/internal/processing"
	"github.com/spacesedan/castflow/internal/schema"
)

// backfill re-derives the canonical tables from raw record dumps. The whole
// transform is a pure function of the input files, so a failed run is simply
// re-run.
func main() {
	castsPath := flag.String("casts", "", "path to a JSON array of raw casts")
	reactionsPath := flag.String("reactions", "", "path to a JSON array of raw reactions")
	usersPath := flag.String("users", "", "path to a JSON array of raw user-data updates")
	flag.Parse()

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	logging.InitLogger()

	ctx := context.Background()
	pipelineCfg := config.GetPipelineConfig()

	taxonomy, err := schema.LoadLabelColumns(pipelineCfg.LabelConfigPath)
	if err != nil {
		fatal("Failed to load label taxonomy", err)
	}

	pipe := &processing.Pipeline{
		Enricher: enrich.New(pipelineCfg.EnricherConfig()),
		Detector: langdetect.New(),
		Labels:   taxonomy,
	}
	db.InitDynamoDB()

	if *castsPath != "" {
		var casts []models.Cast
		if err := readJSONFile(*castsPath, &casts); err != nil {
			fatal("Failed to read casts file", err)
		}

		result, err := pipe.ProcessCasts(ctx, casts)
		if err != nil {
			fatal("Cast batch failed", err)
		}
		if err := db.StoreItems(ctx, result.Items); err != nil {
			fatal("Failed to store items", err)
		}
		if err := db.StoreItemLabels(ctx, result.ItemLabels); err != nil {
			fatal("Failed to store item labels", err)
		}
		if err := db.StoreInteractions(ctx, result.Interactions); err != nil {
			fatal("Failed to store interactions", err)
		}
	}

	if *reactionsPath != "" {
		var reactions []models.Reaction
		if err := readJSONFile(*reactionsPath, &reactions); err != nil {
			fatal("Failed to read reactions file", err)
		}

		interactions, err := pipe.ProcessReactions(ctx, reactions)
		if err != nil {
			fatal("Reaction batch failed", err)
		}
		if err := db.StoreInteractions(ctx, interactions); err != nil {
			fatal("Failed to store interactions", err)
		}
	}

	if *usersPath != "" {
		var updates []models.UserDataUpdate
		if err := readJSONFile(*usersPath, &updates); err != nil {
			fatal("Failed to read users file", err)
		}

		users, err := pipe.ProcessUserUpdates(ctx, updates)
		if err != nil {
			fatal("User batch failed", err)
		}
		if err := db.StoreUsers(ctx, users); err != nil {
			fatal("Failed to store users", err)
		}
	}

	slog.Info("[Backfill] Done")
}

func readJSONFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

func fatal(msg string, err error) {
	slog.Error("[Backfill] "+msg, slog.String("error", err.Error()))
	os.Exit(1)
}
