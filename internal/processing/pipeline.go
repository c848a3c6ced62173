package processing

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spacesedan/castflow/internal/langdetect"
	"github.com/spacesedan/castflow/internal/models"
	"github.com/spacesedan/castflow/internal/schema"
	"github.com/spacesedan/castflow/internal/sentiment"
	"github.com/spacesedan/castflow/internal/transform"
)

// Pipeline ties the transform core together and enforces the schema contract
// at batch boundaries. Every Process* call is a pure re-runnable function of
// its input batch: a failed batch is simply reprocessed from raw records.
type Pipeline struct {
	Enricher transform.URLEnricher
	Detector langdetect.Detector
	Labels   schema.LabelTaxonomy
}

// CastBatchResult is everything one raw cast batch normalizes into.
type CastBatchResult struct {
	Items        []models.Item
	ItemLabels   []models.ItemLabels
	Interactions []models.Interaction
}

// ProcessCasts runs the full item projection plus the post/comment edge
// mapping over one raw cast batch and validates every output against the
// canonical contract.
func (p *Pipeline) ProcessCasts(ctx context.Context, casts []models.Cast) (*CastBatchResult, error) {
	start := time.Now()

	items, err := transform.BuildItems(ctx, casts, p.Enricher, p.Detector)
	if err != nil {
		return nil, fmt.Errorf("[Pipeline] item projection failed: %w", err)
	}
	if err := schema.ValidateItems(items); err != nil {
		return nil, err
	}

	labels := sentiment.LabelItems(items)
	if err := p.Labels.ValidateItemLabels(labels); err != nil {
		return nil, err
	}

	interactions := transform.BuildPostCommentInteractions(casts)
	if err := schema.ValidateInteractions(interactions); err != nil {
		return nil, err
	}

	slog.Info("[Pipeline] Processed cast batch",
		slog.Int("casts", len(casts)),
		slog.Int("items", len(items)),
		slog.Int("interactions", len(interactions)),
		slog.Duration("duration", time.Since(start)))

	return &CastBatchResult{Items: items, ItemLabels: labels, Interactions: interactions}, nil
}

// ProcessReactions projects one raw reaction batch into validated edges.
func (p *Pipeline) ProcessReactions(ctx context.Context, reactions []models.Reaction) ([]models.Interaction, error) {
	interactions, err := transform.BuildReactionInteractions(reactions)
	if err != nil {
		return nil, err
	}
	if err := schema.ValidateInteractions(interactions); err != nil {
		return nil, err
	}
	return interactions, nil
}

// ProcessUserUpdates projects one raw profile-update batch into validated
// user rows.
func (p *Pipeline) ProcessUserUpdates(ctx context.Context, updates []models.UserDataUpdate) ([]models.User, error) {
	users := transform.BuildUsers(updates)
	if err := schema.ValidateUsers(users); err != nil {
		return nil, err
	}
	return users, nil
}
