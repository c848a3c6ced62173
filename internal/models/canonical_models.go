package models

import "time"

// ItemText is the structured text payload of a canonical item. Summary equals
// Full until a summarization stage exists downstream.
type ItemText struct {
	Full    string `json:"full" dynamodbav:"full"`
	Summary string `json:"summary" dynamodbav:"summary"`
}

// Item is a normalized post/comment in the canonical schema consumed by the
// recommendation and enrichment pipelines.
type Item struct {
	ItemID          string    `json:"item_id" dynamodbav:"item_id"`
	AuthorID        string    `json:"author_id" dynamodbav:"author_id"`
	Protocol        string    `json:"protocol" dynamodbav:"protocol"`
	CreationTime    time.Time `json:"item_creation_time" dynamodbav:"item_creation_time,unixtime"`
	UpdateTime      time.Time `json:"item_update_time" dynamodbav:"item_update_time,unixtime"`
	Text            ItemText  `json:"item_text" dynamodbav:"item_text"`
	PublicationType string    `json:"publication_type" dynamodbav:"publication_type"`
	RootItemID      string    `json:"root_item_id" dynamodbav:"root_item_id"`
	Lang            string    `json:"lang" dynamodbav:"lang"`
	LangScore       float64   `json:"lang_score" dynamodbav:"lang_score"`
	Lists           []string  `json:"lists" dynamodbav:"lists"`
	EmbedItems      []string  `json:"embed_items" dynamodbav:"embed_items"`
	EmbedUsers      []string  `json:"embed_users" dynamodbav:"embed_users"`
}

// Interaction is a typed user->item edge (post, comment, like, share).
type Interaction struct {
	UserID    string    `json:"user_id" dynamodbav:"user_id"`
	ItemID    string    `json:"item_id" dynamodbav:"item_id"`
	Timestamp time.Time `json:"timestamp" dynamodbav:"timestamp,unixtime"`
	Protocol  string    `json:"protocol" dynamodbav:"protocol"`
	EdgeType  string    `json:"edge_type" dynamodbav:"edge_type"`
}

// User is a normalized profile row; one row per user id, most recent bio wins.
type User struct {
	UserID       string    `json:"user_id" dynamodbav:"user_id"`
	Protocol     string    `json:"protocol" dynamodbav:"protocol"`
	CreationTime time.Time `json:"user_creation_time" dynamodbav:"user_creation_time,unixtime"`
	UpdateTime   time.Time `json:"user_update_time" dynamodbav:"user_update_time,unixtime"`
	Profile      string    `json:"user_profile" dynamodbav:"user_profile"`
}

// ItemLabels carries per-item label scores produced by the labelling
// enrichment, keyed by label id from the configured taxonomy.
type ItemLabels struct {
	ItemID   string             `json:"item_id" dynamodbav:"item_id"`
	Scores   map[string]float64 `json:"scores" dynamodbav:"scores"`
	AILabels []string           `json:"ai_labels" dynamodbav:"ai_labels"`
}
