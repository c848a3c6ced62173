package transform

import (
	"strconv"
	"time"

	"github.com/spacesedan/castflow/internal/models"
	"github.com/spacesedan/castflow/internal/schema"
)

// UserBioType is the raw user-data discriminator for bio updates; all other
// update types are out of scope for the canonical user table.
const UserBioType = 3

// BuildUsers projects raw profile updates into canonical user rows, keeping
// only bio updates and collapsing each user to the most recently updated bio.
func BuildUsers(updates []models.UserDataUpdate) []models.User {
	users := make([]models.User, 0, len(updates))
	for _, u := range updates {
		if u.Type != UserBioType {
			continue
		}
		users = append(users, models.User{
			UserID:       strconv.FormatInt(u.Fid, 10),
			Protocol:     schema.ProtocolFarcaster,
			CreationTime: u.CreatedAt.UTC(),
			UpdateTime:   u.Timestamp.UTC(),
			Profile:      u.Value,
		})
	}

	return MostRecentByKey(users,
		func(u models.User) string { return u.UserID },
		func(u models.User) time.Time { return u.UpdateTime },
		SortAscKeepLast)
}
