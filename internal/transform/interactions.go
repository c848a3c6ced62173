package transform

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spacesedan/castflow/internal/models"
	"github.com/spacesedan/castflow/internal/schema"
)

// ErrUnknownReactionType marks a reaction code outside the fixed taxonomy.
// Coercing an unknown code to a guessed label would corrupt the edge
// taxonomy, so the whole batch fails instead.
var ErrUnknownReactionType = errors.New("unknown reaction type")

var reactionTypeMap = map[int]string{
	1: schema.EdgeTypeLike,
	2: schema.EdgeTypeShare,
}

// BuildPostCommentInteractions emits a post edge for every cast and an
// additional comment edge for every cast that replies to a parent.
func BuildPostCommentInteractions(casts []models.Cast) []models.Interaction {
	interactions := make([]models.Interaction, 0, len(casts))
	for _, c := range casts {
		interactions = append(interactions, models.Interaction{
			UserID:    strconv.FormatInt(c.Fid, 10),
			ItemID:    schema.ItemIDPrefix + c.Hash,
			Timestamp: c.Timestamp.UTC(),
			Protocol:  schema.ProtocolFarcaster,
			EdgeType:  schema.EdgeTypePost,
		})
	}
	for _, c := range casts {
		if c.ParentHash == nil {
			continue
		}
		interactions = append(interactions, models.Interaction{
			UserID:    strconv.FormatInt(c.Fid, 10),
			ItemID:    schema.ItemIDPrefix + *c.ParentHash,
			Timestamp: c.Timestamp.UTC(),
			Protocol:  schema.ProtocolFarcaster,
			EdgeType:  schema.EdgeTypeComment,
		})
	}
	return interactions
}

// BuildReactionInteractions projects raw reactions into typed edges.
// Reactions without a target are dropped before projection; an unmapped
// reaction code is a hard error.
func BuildReactionInteractions(reactions []models.Reaction) ([]models.Interaction, error) {
	interactions := make([]models.Interaction, 0, len(reactions))
	for _, r := range reactions {
		if r.TargetHash == nil {
			continue
		}
		edgeType, ok := reactionTypeMap[r.ReactionType]
		if !ok {
			return nil, fmt.Errorf("[Transform] %w: %d (fid %d)", ErrUnknownReactionType, r.ReactionType, r.Fid)
		}
		interactions = append(interactions, models.Interaction{
			UserID:    strconv.FormatInt(r.Fid, 10),
			ItemID:    schema.ItemIDPrefix + *r.TargetHash,
			Timestamp: r.Timestamp.UTC(),
			Protocol:  schema.ProtocolFarcaster,
			EdgeType:  edgeType,
		})
	}
	return interactions, nil
}
