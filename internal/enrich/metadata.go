package enrich

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"
)

// FrameMetaKey inside customOpenGraph marks a frame publication.
const FrameMetaKey = "fc:frame"

// URLMetadata is one entry of the metadata endpoint's response. Title and
// Description are pointers so that present-but-empty fields still contribute
// to the enrichment text, matching the endpoint contract.
type URLMetadata struct {
	Title           *string                    `json:"title,omitempty"`
	Description     *string                    `json:"description,omitempty"`
	CustomOpenGraph map[string]json.RawMessage `json:"customOpenGraph,omitempty"`
}

// Record pairs a record id with its candidate URLs, in embed order.
type Record struct {
	ID   string
	URLs []string
}

// Enrichment is the per-record aggregation of resolved URL metadata.
type Enrichment struct {
	URLText string
	Frame   bool
}

type transientError struct {
	err error
}

func (e *transientError) Error() string { return e.err.Error() }
func (e *transientError) Unwrap() error { return e.err }

func isTransient(err error) bool {
	var te *transientError
	return errors.As(err, &te)
}

// EnrichRecords resolves metadata for every distinct URL across the batch and
// aggregates it per record: titles and descriptions of resolved URLs joined
// with spaces in URL order, and a frame flag set iff any resolved URL carries
// the frame marker. Records with no resolved URLs get the zero Enrichment.
// A batch with no URLs at all short-circuits without any network call.
func (e *Enricher) EnrichRecords(ctx context.Context, records []Record) (map[string]Enrichment, error) {
	out := make(map[string]Enrichment, len(records))
	for _, r := range records {
		out[r.ID] = Enrichment{}
	}

	seen := make(map[string]struct{})
	distinct := make([]string, 0)
	for _, r := range records {
		for _, u := range r.URLs {
			if u == "" {
				continue
			}
			if _, ok := seen[u]; ok {
				continue
			}
			seen[u] = struct{}{}
			distinct = append(distinct, u)
		}
	}
	if len(distinct) == 0 {
		return out, nil
	}

	meta, err := e.FetchMetadata(ctx, distinct)
	if err != nil {
		return nil, err
	}

	for _, r := range records {
		var parts []string
		frame := false
		for _, u := range r.URLs {
			m, ok := meta[u]
			if !ok {
				continue
			}
			if m.Title != nil {
				parts = append(parts, *m.Title)
			}
			if m.Description != nil {
				parts = append(parts, *m.Description)
			}
			if _, ok := m.CustomOpenGraph[FrameMetaKey]; ok {
				frame = true
			}
		}
		out[r.ID] = Enrichment{URLText: strings.Join(parts, " "), Frame: frame}
	}
	return out, nil
}

// FetchMetadata partitions urls into chunks of the configured batch size and
// fetches them through a bounded worker group. Chunk results are merged by
// URL, so chunk completion order does not matter. Any chunk's terminal
// failure fails the whole lookup.
func (e *Enricher) FetchMetadata(ctx context.Context, urls []string) (map[string]URLMetadata, error) {
	chunks := chunkStrings(urls, e.cfg.BatchSize)

	results := make([]map[string]URLMetadata, len(chunks))
	errs := make([]error, len(chunks))

	var sem chan struct{}
	if e.cfg.MaxConcurrency > 0 {
		sem = make(chan struct{}, e.cfg.MaxConcurrency)
	}

	var wg sync.WaitGroup
	for i, chunk := range chunks {
		wg.Add(1)
		go func(i int, chunk []string) {
			defer wg.Done()
			if sem != nil {
				sem <- struct{}{}
				defer func() { <-sem }()
			}
			results[i], errs[i] = e.fetchChunk(ctx, chunk)
		}(i, chunk)
	}
	wg.Wait()

	merged := make(map[string]URLMetadata, len(urls))
	for i := range chunks {
		if errs[i] != nil {
			return nil, errs[i]
		}
		for url, m := range results[i] {
			merged[url] = m
		}
	}
	return merged, nil
}

// fetchChunk retries transient errors per the configured policy; all other
// errors are terminal.
func (e *Enricher) fetchChunk(ctx context.Context, urls []string) (map[string]URLMetadata, error) {
	for attempt := 1; ; attempt++ {
		meta, err := e.postChunk(ctx, urls)
		if err == nil {
			return meta, nil
		}
		if !isTransient(err) {
			return nil, fmt.Errorf("[Enricher] metadata fetch failed: %w", err)
		}
		if e.cfg.Retry.exhausted(attempt) {
			return nil, fmt.Errorf("[Enricher] metadata fetch failed after %d attempts: %w", attempt, err)
		}

		slog.Warn("[Enricher] Transient metadata fetch error, retrying...",
			slog.Int("attempt", attempt),
			slog.Int("urls", len(urls)),
			slog.String("error", err.Error()))

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(e.cfg.Retry.backoff()):
		}
	}
}

func (e *Enricher) postChunk(ctx context.Context, urls []string) (map[string]URLMetadata, error) {
	body, err := json.Marshal(urls)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.cfg.EndpointURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		return nil, &transientError{fmt.Errorf("unexpected content type %q (status %d)", ct, resp.StatusCode)}
	}

	var meta map[string]URLMetadata
	if err := json.NewDecoder(resp.Body).Decode(&meta); err != nil {
		return nil, &transientError{fmt.Errorf("failed to decode metadata response: %w", err)}
	}
	return meta, nil
}

func chunkStrings(values []string, size int) [][]string {
	chunks := make([][]string, 0, (len(values)+size-1)/size)
	for i := 0; i < len(values); i += size {
		end := i + size
		if end > len(values) {
			end = len(values)
		}
		chunks = append(chunks, values[i:end])
	}
	return chunks
}
