package transform

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacesedan/castflow/internal/models"
	"github.com/spacesedan/castflow/internal/schema"
)

func TestBuildPostCommentInteractions(t *testing.T) {
	ts := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	casts := []models.Cast{
		{Hash: "aaa", Fid: 1, Timestamp: ts},
		{Hash: "bbb", Fid: 2, Timestamp: ts, ParentHash: strPtr("aaa")},
	}

	interactions := BuildPostCommentInteractions(casts)
	require.Len(t, interactions, 3)

	posts := interactions[:2]
	assert.Equal(t, "0xaaa", posts[0].ItemID)
	assert.Equal(t, "1", posts[0].UserID)
	assert.Equal(t, schema.EdgeTypePost, posts[0].EdgeType)
	assert.Equal(t, "0xbbb", posts[1].ItemID)
	assert.Equal(t, schema.EdgeTypePost, posts[1].EdgeType)

	comment := interactions[2]
	assert.Equal(t, "2", comment.UserID)
	assert.Equal(t, "0xaaa", comment.ItemID)
	assert.Equal(t, schema.EdgeTypeComment, comment.EdgeType)
	assert.Equal(t, schema.ProtocolFarcaster, comment.Protocol)
}

func TestBuildReactionInteractionsDropsNullTargets(t *testing.T) {
	ts := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	reactions := []models.Reaction{
		{Fid: 1, TargetHash: strPtr("abc"), Timestamp: ts, ReactionType: 1},
		{Fid: 2, TargetHash: nil, Timestamp: ts, ReactionType: 2},
	}

	interactions, err := BuildReactionInteractions(reactions)
	require.NoError(t, err)
	require.Len(t, interactions, 1)

	assert.Equal(t, "1", interactions[0].UserID)
	assert.Equal(t, "0xabc", interactions[0].ItemID)
	assert.Equal(t, schema.EdgeTypeLike, interactions[0].EdgeType)
}

func TestBuildReactionInteractionsShare(t *testing.T) {
	ts := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	reactions := []models.Reaction{
		{Fid: 3, TargetHash: strPtr("def"), Timestamp: ts, ReactionType: 2},
	}

	interactions, err := BuildReactionInteractions(reactions)
	require.NoError(t, err)
	require.Len(t, interactions, 1)
	assert.Equal(t, schema.EdgeTypeShare, interactions[0].EdgeType)
}

func TestBuildReactionInteractionsUnknownTypeFails(t *testing.T) {
	ts := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	reactions := []models.Reaction{
		{Fid: 1, TargetHash: strPtr("abc"), Timestamp: ts, ReactionType: 99},
	}

	_, err := BuildReactionInteractions(reactions)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownReactionType)
}
