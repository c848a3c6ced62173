package transform

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rec struct {
	key     string
	ts      time.Time
	payload string
}

func at(sec int) time.Time {
	return time.Date(2024, 6, 1, 0, 0, sec, 0, time.UTC)
}

func recKey(r rec) string     { return r.key }
func recTime(r rec) time.Time { return r.ts }

func TestMostRecentByKeyDescKeepFirst(t *testing.T) {
	records := []rec{
		{key: "a", ts: at(1), payload: "old"},
		{key: "b", ts: at(2), payload: "only"},
		{key: "a", ts: at(3), payload: "new"},
	}

	kept := MostRecentByKey(records, recKey, recTime, SortDescKeepFirst)

	require.Len(t, kept, 2)
	// output follows the descending sort order
	assert.Equal(t, "a", kept[0].key)
	assert.Equal(t, "new", kept[0].payload)
	assert.Equal(t, "b", kept[1].key)
}

func TestMostRecentByKeyAscKeepLast(t *testing.T) {
	records := []rec{
		{key: "a", ts: at(3), payload: "new"},
		{key: "a", ts: at(1), payload: "old"},
		{key: "b", ts: at(2), payload: "only"},
	}

	kept := MostRecentByKey(records, recKey, recTime, SortAscKeepLast)

	require.Len(t, kept, 2)
	// output follows the ascending sort order
	assert.Equal(t, "b", kept[0].key)
	assert.Equal(t, "a", kept[1].key)
	assert.Equal(t, "new", kept[1].payload)
}

func TestMostRecentByKeyTieBreakIsDeterministic(t *testing.T) {
	records := []rec{
		{key: "a", ts: at(1), payload: "first-in-input"},
		{key: "a", ts: at(1), payload: "last-in-input"},
	}

	// stable sort keeps input order among equal timestamps, so the
	// descending pass keeps the earlier-input record and the ascending
	// pass keeps the later-input one
	desc := MostRecentByKey(records, recKey, recTime, SortDescKeepFirst)
	require.Len(t, desc, 1)
	assert.Equal(t, "first-in-input", desc[0].payload)

	asc := MostRecentByKey(records, recKey, recTime, SortAscKeepLast)
	require.Len(t, asc, 1)
	assert.Equal(t, "last-in-input", asc[0].payload)
}

func TestMostRecentByKeyEmpty(t *testing.T) {
	assert.Empty(t, MostRecentByKey(nil, recKey, recTime, SortDescKeepFirst))
	assert.Empty(t, MostRecentByKey([]rec{}, recKey, recTime, SortAscKeepLast))
}
