package config

import (
	"os"
	"strconv"
	"time"

	"github.com/spacesedan/castflow/internal/enrich"
)

// PipelineConfig is the explicit configuration of the transform pipeline.
// It is read from the environment exactly once, at startup, and passed into
// constructors; nothing in the pipeline reads the environment at call time.
type PipelineConfig struct {
	MetadataEndpoint       string
	MetadataBatchSize      int
	MetadataMaxConcurrency int
	MetadataRetryAttempts  int
	MetadataRetryBackoff   time.Duration
	MetadataClientID       string
	MetadataClientSecret   string
	MetadataTokenURL       string

	LabelConfigPath string
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

// GetPipelineConfig reads the pipeline configuration from the environment.
func GetPipelineConfig() PipelineConfig {
	return PipelineConfig{
		MetadataEndpoint:       getEnv("EMBEDS_METADATA_URL", "http://localhost:8081/metadata"),
		MetadataBatchSize:      getEnvInt("EMBEDS_METADATA_BATCH_SIZE", enrich.DefaultBatchSize),
		MetadataMaxConcurrency: getEnvInt("EMBEDS_METADATA_MAX_CONCURRENCY", enrich.DefaultMaxConcurrency),
		MetadataRetryAttempts:  getEnvInt("EMBEDS_METADATA_RETRY_ATTEMPTS", enrich.DefaultMaxAttempts),
		MetadataRetryBackoff:   time.Duration(getEnvInt("EMBEDS_METADATA_RETRY_BACKOFF_MS", 1000)) * time.Millisecond,
		MetadataClientID:       getEnv("EMBEDS_METADATA_CLIENT_ID", ""),
		MetadataClientSecret:   getEnv("EMBEDS_METADATA_CLIENT_SECRET", ""),
		MetadataTokenURL:       getEnv("EMBEDS_METADATA_TOKEN_URL", ""),
		LabelConfigPath:        getEnv("LABEL_CONFIG_PATH", "config/labels.json"),
	}
}

// EnricherConfig maps the pipeline configuration onto the enricher's
// constructor config.
func (c PipelineConfig) EnricherConfig() enrich.Config {
	cfg := enrich.Config{
		EndpointURL:    c.MetadataEndpoint,
		BatchSize:      c.MetadataBatchSize,
		MaxConcurrency: c.MetadataMaxConcurrency,
		Retry: enrich.RetryPolicy{
			MaxAttempts: c.MetadataRetryAttempts,
			Backoff:     c.MetadataRetryBackoff,
		},
	}
	if c.MetadataClientID != "" {
		cfg.OAuth = &enrich.OAuthConfig{
			ClientID:     c.MetadataClientID,
			ClientSecret: c.MetadataClientSecret,
			TokenURL:     c.MetadataTokenURL,
		}
	}
	return cfg
}
