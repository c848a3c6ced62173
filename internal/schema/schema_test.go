package schema

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacesedan/castflow/internal/models"
)

func validItem() models.Item {
	ts := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	return models.Item{
		ItemID:          "0xabc",
		AuthorID:        "42",
		Protocol:        ProtocolFarcaster,
		CreationTime:    ts,
		UpdateTime:      ts,
		Text:            models.ItemText{Full: "a perfectly fine item text", Summary: "a perfectly fine item text"},
		PublicationType: PublicationTypeTextOnly,
		RootItemID:      RootItemMarker,
		Lang:            "en",
		LangScore:       0.9,
		Lists:           []string{},
		EmbedItems:      []string{},
		EmbedUsers:      []string{},
	}
}

func TestValidateItemsAcceptsValidBatch(t *testing.T) {
	require.NoError(t, ValidateItems([]models.Item{validItem()}))
}

func TestValidateItemsRejectsNonUTCTimestamp(t *testing.T) {
	item := validItem()
	item.CreationTime = item.CreationTime.In(time.FixedZone("PST", -8*3600))

	err := ValidateItems([]models.Item{item})
	require.Error(t, err)
	assert.Contains(t, err.Error(), ItemCreationTimeColumn)
}

func TestValidateItemsRejectsUnknownPublicationType(t *testing.T) {
	item := validItem()
	item.PublicationType = "video"

	err := ValidateItems([]models.Item{item})
	require.Error(t, err)
	assert.Contains(t, err.Error(), PublicationTypeColumn)
}

func TestValidateItemsRejectsMissingLists(t *testing.T) {
	item := validItem()
	item.Lists = nil

	require.Error(t, ValidateItems([]models.Item{item}))
}

func TestValidateInteractionsRejectsUnknownEdgeType(t *testing.T) {
	in := models.Interaction{
		UserID:    "1",
		ItemID:    "0xabc",
		Timestamp: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		Protocol:  ProtocolFarcaster,
		EdgeType:  "upvote",
	}

	err := ValidateInteractions([]models.Interaction{in})
	require.Error(t, err)
	assert.Contains(t, err.Error(), EdgeTypeColumn)
}

func TestValidateUsersRejectsDuplicateIDs(t *testing.T) {
	ts := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	user := models.User{
		UserID:       "7",
		Protocol:     ProtocolFarcaster,
		CreationTime: ts,
		UpdateTime:   ts,
		Profile:      "a bio",
	}

	require.NoError(t, ValidateUsers([]models.User{user}))

	err := ValidateUsers([]models.User{user, user})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate user id")
}
