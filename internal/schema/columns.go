package schema

// Canonical column names shared by the transform output, the batch validator
// and the DynamoDB writers.
const (
	ItemColumn             = "item_id"
	AuthorIDColumn         = "author_id"
	ProtocolColumn         = "protocol"
	ItemCreationTimeColumn = "item_creation_time"
	ItemUpdateTimeColumn   = "item_update_time"
	ItemTextColumn         = "item_text"
	PublicationTypeColumn  = "publication_type"
	RootItemColumn         = "root_item_id"
	LangColumn             = "lang"
	LangScoreColumn        = "lang_score"
	ListColumn             = "lists"
	EmbedItemsColumn       = "embed_items"
	EmbedUsersColumn       = "embed_users"

	UserColumn             = "user_id"
	UserCreationTimeColumn = "user_creation_time"
	UserUpdateTimeColumn   = "user_update_time"
	UserProfileColumn      = "user_profile"

	TimeColumn     = "timestamp"
	EdgeTypeColumn = "edge_type"
)

const (
	ProtocolFarcaster = "farcaster"

	PublicationTypeTextOnly = "text_only"
	PublicationTypeFrame    = "frame"

	EdgeTypePost    = "post"
	EdgeTypeComment = "comment"
	EdgeTypeLike    = "like"
	EdgeTypeShare   = "share"

	// ItemIDPrefix canonicalizes raw content hashes into item ids.
	ItemIDPrefix = "0x"
	// RootItemMarker is the root item id of a top-of-thread cast.
	RootItemMarker = "root"
)
