package transform

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacesedan/castflow/internal/enrich"
	"github.com/spacesedan/castflow/internal/models"
	"github.com/spacesedan/castflow/internal/schema"
)

type stubEnricher struct {
	enrichments map[string]enrich.Enrichment
	calls       int
}

func (s *stubEnricher) EnrichRecords(_ context.Context, records []enrich.Record) (map[string]enrich.Enrichment, error) {
	s.calls++
	out := make(map[string]enrich.Enrichment, len(records))
	for _, r := range records {
		out[r.ID] = s.enrichments[r.ID]
	}
	return out, nil
}

type stubDetector struct{}

func (stubDetector) Detect(string) (string, float64) { return "en", 0.97 }

func longCast(hash string, fid int64, ts time.Time) models.Cast {
	return models.Cast{
		Hash:      hash,
		Fid:       fid,
		Timestamp: ts,
		Text:      "a sufficiently long cast text about something interesting " + hash,
	}
}

func TestBuildItemsNoEmbedsPinsTrailingSeparator(t *testing.T) {
	ts := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	cast := longCast("aa11", 42, ts)

	items, err := BuildItems(context.Background(), []models.Cast{cast}, &stubEnricher{}, stubDetector{})
	require.NoError(t, err)
	require.Len(t, items, 1)

	item := items[0]
	assert.Equal(t, "0xaa11", item.ItemID)
	assert.Equal(t, "42", item.AuthorID)
	assert.Equal(t, schema.ProtocolFarcaster, item.Protocol)
	assert.Equal(t, ts, item.CreationTime)
	assert.Equal(t, ts, item.UpdateTime)
	// empty enrichment still appends the ". " separator
	assert.Equal(t, cast.Text+". ", item.Text.Full)
	assert.Equal(t, item.Text.Full, item.Text.Summary)
	assert.Equal(t, schema.PublicationTypeTextOnly, item.PublicationType)
	assert.Equal(t, schema.RootItemMarker, item.RootItemID)
	assert.Equal(t, "en", item.Lang)
	assert.InDelta(t, 0.97, item.LangScore, 1e-9)
	assert.NotNil(t, item.Lists)
	assert.Empty(t, item.Lists)
	assert.NotNil(t, item.EmbedItems)
	assert.Empty(t, item.EmbedItems)
	assert.NotNil(t, item.EmbedUsers)
	assert.Empty(t, item.EmbedUsers)
}

func TestBuildItemsFrameClassification(t *testing.T) {
	ts := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	cast := longCast("bb22", 7, ts)
	cast.Embeds = []models.CastEmbed{{URL: strPtr("https://frame.example/x")}}

	enricher := &stubEnricher{enrichments: map[string]enrich.Enrichment{
		"0xbb22": {URLText: "A frame title Its description", Frame: true},
	}}

	items, err := BuildItems(context.Background(), []models.Cast{cast}, enricher, stubDetector{})
	require.NoError(t, err)
	require.Len(t, items, 1)

	assert.Equal(t, schema.PublicationTypeFrame, items[0].PublicationType)
	assert.Contains(t, items[0].Text.Full, "A frame title Its description")
	assert.Equal(t, []string{"https://frame.example/x"}, items[0].EmbedItems)
}

func TestBuildItemsDuplicateTextMostRecentWins(t *testing.T) {
	older := longCast("old1", 1, time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC))
	newer := longCast("new1", 2, time.Date(2024, 6, 1, 11, 0, 0, 0, time.UTC))
	newer.Text = older.Text

	items, err := BuildItems(context.Background(), []models.Cast{older, newer}, &stubEnricher{}, stubDetector{})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "0xnew1", items[0].ItemID)
}

func TestBuildItemsFiltersShortText(t *testing.T) {
	ts := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	short := models.Cast{Hash: "cc33", Fid: 3, Timestamp: ts, Text: "gm"}

	items, err := BuildItems(context.Background(), []models.Cast{short}, &stubEnricher{}, stubDetector{})
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestBuildItemsDefensiveHashDedup(t *testing.T) {
	ts := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	first := longCast("dd44", 4, ts)
	duplicate := longCast("dd44", 5, ts.Add(time.Hour))
	duplicate.Text = "a different but also sufficiently long text body"

	items, err := BuildItems(context.Background(), []models.Cast{first, duplicate}, &stubEnricher{}, stubDetector{})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "4", items[0].AuthorID)
}

func TestBuildItemsListsAndMentions(t *testing.T) {
	ts := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	cast := longCast("ee55", 6, ts)
	cast.ParentHash = strPtr("aa11")
	cast.RootParentHash = strPtr("aa11")
	cast.RootParentURL = strPtr("https://warpcast.com/~/channel/dev")
	cast.Mentions = []int64{10, 20}

	items, err := BuildItems(context.Background(), []models.Cast{cast}, &stubEnricher{}, stubDetector{})
	require.NoError(t, err)
	require.Len(t, items, 1)

	assert.Equal(t, "0xaa11", items[0].RootItemID)
	assert.Equal(t, []string{"https://warpcast.com/~/channel/dev"}, items[0].Lists)
	assert.Equal(t, []string{"10", "20"}, items[0].EmbedUsers)
}
