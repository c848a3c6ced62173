package schema

import (
	"fmt"
	"time"

	"github.com/spacesedan/castflow/internal/models"
)

// ColumnRule is one declarative check applied to every record of a batch.
// Rules are evaluated at batch boundaries, never inside business logic;
// the first violation fails the whole batch.
type ColumnRule[T any] struct {
	Column string
	Check  func(T) error
}

func validateBatch[T any](records []T, rules []ColumnRule[T]) error {
	for i, record := range records {
		for _, rule := range rules {
			if err := rule.Check(record); err != nil {
				return fmt.Errorf("[Schema] column %q, record %d: %w", rule.Column, i, err)
			}
		}
	}
	return nil
}

func nonEmpty(column, value string) error {
	if value == "" {
		return fmt.Errorf("%s must not be empty", column)
	}
	return nil
}

func utcTimestamp(column string, ts time.Time) error {
	if ts.IsZero() {
		return fmt.Errorf("%s must be set", column)
	}
	if ts.Location() != time.UTC {
		return fmt.Errorf("%s must be UTC-aware, got %s", column, ts.Location())
	}
	return nil
}

var itemRules = []ColumnRule[models.Item]{
	{Column: ItemColumn, Check: func(it models.Item) error { return nonEmpty(ItemColumn, it.ItemID) }},
	{Column: AuthorIDColumn, Check: func(it models.Item) error { return nonEmpty(AuthorIDColumn, it.AuthorID) }},
	{Column: ProtocolColumn, Check: func(it models.Item) error {
		if it.Protocol != ProtocolFarcaster {
			return fmt.Errorf("unknown protocol %q", it.Protocol)
		}
		return nil
	}},
	{Column: ItemCreationTimeColumn, Check: func(it models.Item) error { return utcTimestamp(ItemCreationTimeColumn, it.CreationTime) }},
	{Column: ItemUpdateTimeColumn, Check: func(it models.Item) error { return utcTimestamp(ItemUpdateTimeColumn, it.UpdateTime) }},
	{Column: ItemTextColumn, Check: func(it models.Item) error { return nonEmpty(ItemTextColumn, it.Text.Full) }},
	{Column: PublicationTypeColumn, Check: func(it models.Item) error {
		if it.PublicationType != PublicationTypeTextOnly && it.PublicationType != PublicationTypeFrame {
			return fmt.Errorf("unknown publication type %q", it.PublicationType)
		}
		return nil
	}},
	{Column: RootItemColumn, Check: func(it models.Item) error { return nonEmpty(RootItemColumn, it.RootItemID) }},
	{Column: LangColumn, Check: func(it models.Item) error { return nonEmpty(LangColumn, it.Lang) }},
	{Column: ListColumn, Check: func(it models.Item) error {
		if it.Lists == nil {
			return fmt.Errorf("%s must be present (may be empty)", ListColumn)
		}
		return nil
	}},
	{Column: EmbedItemsColumn, Check: func(it models.Item) error {
		if it.EmbedItems == nil {
			return fmt.Errorf("%s must be present (may be empty)", EmbedItemsColumn)
		}
		return nil
	}},
	{Column: EmbedUsersColumn, Check: func(it models.Item) error {
		if it.EmbedUsers == nil {
			return fmt.Errorf("%s must be present (may be empty)", EmbedUsersColumn)
		}
		return nil
	}},
}

var interactionRules = []ColumnRule[models.Interaction]{
	{Column: UserColumn, Check: func(in models.Interaction) error { return nonEmpty(UserColumn, in.UserID) }},
	{Column: ItemColumn, Check: func(in models.Interaction) error { return nonEmpty(ItemColumn, in.ItemID) }},
	{Column: TimeColumn, Check: func(in models.Interaction) error { return utcTimestamp(TimeColumn, in.Timestamp) }},
	{Column: ProtocolColumn, Check: func(in models.Interaction) error {
		if in.Protocol != ProtocolFarcaster {
			return fmt.Errorf("unknown protocol %q", in.Protocol)
		}
		return nil
	}},
	{Column: EdgeTypeColumn, Check: func(in models.Interaction) error {
		switch in.EdgeType {
		case EdgeTypePost, EdgeTypeComment, EdgeTypeLike, EdgeTypeShare:
			return nil
		}
		return fmt.Errorf("unknown edge type %q", in.EdgeType)
	}},
}

var userRules = []ColumnRule[models.User]{
	{Column: UserColumn, Check: func(u models.User) error { return nonEmpty(UserColumn, u.UserID) }},
	{Column: ProtocolColumn, Check: func(u models.User) error {
		if u.Protocol != ProtocolFarcaster {
			return fmt.Errorf("unknown protocol %q", u.Protocol)
		}
		return nil
	}},
	{Column: UserCreationTimeColumn, Check: func(u models.User) error { return utcTimestamp(UserCreationTimeColumn, u.CreationTime) }},
	{Column: UserUpdateTimeColumn, Check: func(u models.User) error { return utcTimestamp(UserUpdateTimeColumn, u.UpdateTime) }},
}

// ValidateItems enforces the item contract on a whole batch.
func ValidateItems(items []models.Item) error {
	return validateBatch(items, itemRules)
}

// ValidateInteractions enforces the edge contract on a whole batch.
func ValidateInteractions(interactions []models.Interaction) error {
	return validateBatch(interactions, interactionRules)
}

// ValidateUsers enforces the user contract on a whole batch. User ids must
// additionally be unique within the batch.
func ValidateUsers(users []models.User) error {
	if err := validateBatch(users, userRules); err != nil {
		return err
	}
	seen := make(map[string]struct{}, len(users))
	for _, u := range users {
		if _, ok := seen[u.UserID]; ok {
			return fmt.Errorf("[Schema] column %q: duplicate user id %q", UserColumn, u.UserID)
		}
		seen[u.UserID] = struct{}{}
	}
	return nil
}
