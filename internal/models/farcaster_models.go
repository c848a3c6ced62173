package models

import "time"

// CastEmbed is a single entry of a cast's embeds list. Embeds that are not
// links (quoted casts, images by cast reference) carry no URL.
type CastEmbed struct {
	URL *string `json:"url,omitempty"`
}

// Cast is a raw post/comment record as it arrives from the hub change log.
type Cast struct {
	Hash           string      `json:"hash"`
	Fid            int64       `json:"fid"`
	Timestamp      time.Time   `json:"timestamp"`
	Text           string      `json:"text"`
	ParentHash     *string     `json:"parent_hash"`
	RootParentHash *string     `json:"root_parent_hash"`
	RootParentURL  *string     `json:"root_parent_url"`
	Embeds         []CastEmbed `json:"embeds"`
	Mentions       []int64     `json:"mentions"`
}

// Reaction is a raw engagement event. TargetHash is nil for reactions whose
// target could not be resolved upstream; those cannot be attributed to an item.
type Reaction struct {
	Fid          int64     `json:"fid"`
	TargetHash   *string   `json:"target_hash"`
	Timestamp    time.Time `json:"timestamp"`
	ReactionType int       `json:"reaction_type"`
}

// UserDataUpdate is a raw profile-update record. Only bio updates (Type == 3)
// are retained by the pipeline.
type UserDataUpdate struct {
	Fid       int64     `json:"fid"`
	Type      int       `json:"type"`
	CreatedAt time.Time `json:"created_at"`
	Timestamp time.Time `json:"timestamp"`
	Value     string    `json:"value"`
}
