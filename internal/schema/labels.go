package schema

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spacesedan/castflow/internal/models"
)

// LabelTaxonomy is the configured set of label identifiers the labelling
// enrichment must score, each mapped to its output column name.
type LabelTaxonomy map[string]string

type labelConfig struct {
	Labels []struct {
		ID     string `json:"id"`
		Column string `json:"column"`
	} `json:"labels"`
}

// LoadLabelColumns reads the label taxonomy from a JSON config file.
func LoadLabelColumns(path string) (LabelTaxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("[Schema] failed to read label config: %w", err)
	}

	var cfg labelConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("[Schema] failed to parse label config: %w", err)
	}
	if len(cfg.Labels) == 0 {
		return nil, fmt.Errorf("[Schema] label config %q defines no labels", path)
	}

	taxonomy := make(LabelTaxonomy, len(cfg.Labels))
	for _, l := range cfg.Labels {
		if l.ID == "" || l.Column == "" {
			return nil, fmt.Errorf("[Schema] label config %q has an entry with empty id or column", path)
		}
		taxonomy[l.ID] = l.Column
	}
	return taxonomy, nil
}

// Column returns the output column for a label id.
func (t LabelTaxonomy) Column(labelID string) (string, bool) {
	col, ok := t[labelID]
	return col, ok
}

// ValidateItemLabels checks a label batch against the taxonomy: every
// configured label must be scored for every item, and no item may carry a
// label outside the taxonomy.
func (t LabelTaxonomy) ValidateItemLabels(batch []models.ItemLabels) error {
	for i, labels := range batch {
		if labels.ItemID == "" {
			return fmt.Errorf("[Schema] label record %d has no item id", i)
		}
		for id := range t {
			if _, ok := labels.Scores[id]; !ok {
				return fmt.Errorf("[Schema] item %s is missing score for label %q", labels.ItemID, id)
			}
		}
		for id := range labels.Scores {
			if _, ok := t[id]; !ok {
				return fmt.Errorf("[Schema] item %s scored unknown label %q", labels.ItemID, id)
			}
		}
	}
	return nil
}
