package enrich

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	// DefaultBatchSize is how many distinct URLs go into one metadata request.
	DefaultBatchSize = 100
	// DefaultMaxConcurrency bounds chunk requests in flight at once.
	DefaultMaxConcurrency = 8

	defaultTimeout = 30 * time.Second
)

// OAuthConfig enables client-credentials auth against the metadata endpoint.
type OAuthConfig struct {
	ClientID     string
	ClientSecret string
	TokenURL     string
}

// Config is the explicit configuration of an Enricher. It is injected at
// construction; the enricher never reads the environment at call time.
type Config struct {
	// EndpointURL is the batch metadata lookup endpoint.
	EndpointURL string
	// BatchSize is the chunk size for distinct-URL partitioning; zero selects
	// DefaultBatchSize.
	BatchSize int
	// MaxConcurrency caps chunk requests in flight. Zero selects
	// DefaultMaxConcurrency; a negative value removes the cap entirely,
	// restoring the legacy one-goroutine-per-chunk fan-out.
	MaxConcurrency int
	// Retry governs transient-error recovery per chunk.
	Retry RetryPolicy
	// Timeout applies per HTTP request.
	Timeout time.Duration
	// OAuth, when set, wraps the transport with client-credentials auth.
	OAuth *OAuthConfig
}

// Enricher resolves URL metadata in concurrent batch requests.
type Enricher struct {
	cfg    Config
	client *http.Client
}

// New builds an Enricher from an explicit Config.
func New(cfg Config) *Enricher {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	if cfg.MaxConcurrency == 0 {
		cfg.MaxConcurrency = DefaultMaxConcurrency
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	client := &http.Client{Timeout: cfg.Timeout}
	if cfg.OAuth != nil {
		oauthConf := &clientcredentials.Config{
			ClientID:     cfg.OAuth.ClientID,
			ClientSecret: cfg.OAuth.ClientSecret,
			TokenURL:     cfg.OAuth.TokenURL,
			AuthStyle:    oauth2.AuthStyleInHeader,
		}
		client = oauthConf.Client(context.Background())
		client.Timeout = cfg.Timeout
	}

	return &Enricher{cfg: cfg, client: client}
}
