package transform

import (
	"context"
	"strconv"
	"time"

	"github.com/spacesedan/castflow/internal/enrich"
	"github.com/spacesedan/castflow/internal/langdetect"
	"github.com/spacesedan/castflow/internal/models"
	"github.com/spacesedan/castflow/internal/schema"
)

// URLEnricher resolves embedded-URL metadata for a batch of records.
// *enrich.Enricher is the production implementation.
type URLEnricher interface {
	EnrichRecords(ctx context.Context, records []enrich.Record) (map[string]enrich.Enrichment, error)
}

type itemDraft struct {
	cast      models.Cast
	itemID    string
	embedURLs []string
	text      string
	cleaned   string
	frame     bool
}

// BuildItems projects raw casts into canonical items: hash dedup, field
// mapping, root resolution, URL metadata enrichment, text cleaning and
// duplicate-text collapsing, publication typing, language detection, list
// and mention derivation. The enrichment text is always appended to the
// raw text as `text + ". " + urlText`, even when urlText is empty; the
// trailing separator on unenriched casts is long-standing upstream behavior
// that downstream consumers have been trained on, so it is preserved.
func BuildItems(ctx context.Context, casts []models.Cast, enricher URLEnricher, detector langdetect.Detector) ([]models.Item, error) {
	// raw input is assumed unique per hash, deduplicated defensively;
	// first seen wins
	seen := make(map[string]struct{}, len(casts))
	drafts := make([]itemDraft, 0, len(casts))
	for _, c := range casts {
		if _, ok := seen[c.Hash]; ok {
			continue
		}
		seen[c.Hash] = struct{}{}
		drafts = append(drafts, itemDraft{
			cast:      c,
			itemID:    schema.ItemIDPrefix + c.Hash,
			embedURLs: embedURLs(c.Embeds),
		})
	}

	records := make([]enrich.Record, len(drafts))
	for i, d := range drafts {
		records[i] = enrich.Record{ID: d.itemID, URLs: d.embedURLs}
	}
	enrichments, err := enricher.EnrichRecords(ctx, records)
	if err != nil {
		return nil, err
	}

	kept := make([]itemDraft, 0, len(drafts))
	for _, d := range drafts {
		e := enrichments[d.itemID]
		d.text = d.cast.Text + ". " + e.URLText
		d.frame = e.Frame
		d.cleaned = CleanString(d.text)
		if !FilterText(d.cleaned) {
			continue
		}
		kept = append(kept, d)
	}

	kept = MostRecentByKey(kept,
		func(d itemDraft) string { return d.cleaned },
		func(d itemDraft) time.Time { return d.cast.Timestamp },
		SortDescKeepFirst)

	items := make([]models.Item, 0, len(kept))
	for _, d := range kept {
		lang, score := detector.Detect(d.cleaned)

		publicationType := schema.PublicationTypeTextOnly
		if d.frame {
			publicationType = schema.PublicationTypeFrame
		}

		lists := []string{}
		if d.cast.RootParentURL != nil && *d.cast.RootParentURL != "" {
			lists = []string{*d.cast.RootParentURL}
		}

		mentions := make([]string, 0, len(d.cast.Mentions))
		for _, fid := range d.cast.Mentions {
			mentions = append(mentions, strconv.FormatInt(fid, 10))
		}

		items = append(items, models.Item{
			ItemID:          d.itemID,
			AuthorID:        strconv.FormatInt(d.cast.Fid, 10),
			Protocol:        schema.ProtocolFarcaster,
			CreationTime:    d.cast.Timestamp.UTC(),
			UpdateTime:      d.cast.Timestamp.UTC(),
			Text:            models.ItemText{Full: d.cleaned, Summary: d.cleaned},
			PublicationType: publicationType,
			RootItemID:      RootItemID(d.cast),
			Lang:            lang,
			LangScore:       score,
			Lists:           lists,
			EmbedItems:      d.embedURLs,
			EmbedUsers:      mentions,
		})
	}
	return items, nil
}

func embedURLs(embeds []models.CastEmbed) []string {
	urls := make([]string, 0, len(embeds))
	for _, e := range embeds {
		if e.URL == nil || *e.URL == "" {
			continue
		}
		urls = append(urls, *e.URL)
	}
	return urls
}
