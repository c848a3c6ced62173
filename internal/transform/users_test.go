package transform

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacesedan/castflow/internal/models"
	"github.com/spacesedan/castflow/internal/schema"
)

func TestBuildUsersMostRecentBioWins(t *testing.T) {
	t1 := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)
	created := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

	updates := []models.UserDataUpdate{
		{Fid: 7, Type: UserBioType, CreatedAt: created, Timestamp: t1, Value: "A"},
		{Fid: 7, Type: UserBioType, CreatedAt: created, Timestamp: t2, Value: "B"},
	}

	users := BuildUsers(updates)
	require.Len(t, users, 1)

	assert.Equal(t, "7", users[0].UserID)
	assert.Equal(t, "B", users[0].Profile)
	assert.Equal(t, t2, users[0].UpdateTime)
	assert.Equal(t, created, users[0].CreationTime)
	assert.Equal(t, schema.ProtocolFarcaster, users[0].Protocol)
}

func TestBuildUsersFiltersNonBioUpdates(t *testing.T) {
	ts := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	updates := []models.UserDataUpdate{
		{Fid: 1, Type: 1, Timestamp: ts, Value: "pfp"},
		{Fid: 2, Type: 2, Timestamp: ts, Value: "display"},
		{Fid: 3, Type: UserBioType, CreatedAt: ts, Timestamp: ts, Value: "a bio"},
	}

	users := BuildUsers(updates)
	require.Len(t, users, 1)
	assert.Equal(t, "3", users[0].UserID)
}

func TestBuildUsersTieKeepsLastInput(t *testing.T) {
	ts := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	updates := []models.UserDataUpdate{
		{Fid: 9, Type: UserBioType, CreatedAt: ts, Timestamp: ts, Value: "first"},
		{Fid: 9, Type: UserBioType, CreatedAt: ts, Timestamp: ts, Value: "second"},
	}

	users := BuildUsers(updates)
	require.Len(t, users, 1)
	assert.Equal(t, "second", users[0].Profile)
}
