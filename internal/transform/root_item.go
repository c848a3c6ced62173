package transform

import (
	"github.com/spacesedan/castflow/internal/models"
	"github.com/spacesedan/castflow/internal/schema"
)

// RootItemID derives the canonical root item id of a cast. Top-of-thread
// casts (no parent) get the literal "root" marker; replies get the prefixed
// root parent hash. This is a single-hop derivation: the hub computes
// root_parent_hash by walking the parent chain, and this pipeline trusts it.
// Consistency of that field (no cycles, no missing ancestors) is an assumed
// invariant of upstream data.
func RootItemID(c models.Cast) string {
	if c.ParentHash == nil {
		return schema.RootItemMarker
	}
	root := ""
	if c.RootParentHash != nil {
		root = *c.RootParentHash
	}
	return schema.ItemIDPrefix + root
}
