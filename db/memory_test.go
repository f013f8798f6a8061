package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreCRUD(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	inserted, err := store.Insert(ctx, TableHomeProfiles, Row{
		"address":           "12 Birch Rd",
		"construction_year": 1972,
		"user_id":           "u1",
		"images":            []string{"front.jpg"},
	})
	require.NoError(t, err)
	id, _ := inserted["id"].(string)
	require.NotEmpty(t, id)
	assert.NotEmpty(t, inserted["created_at"])

	rows, err := store.Select(ctx, TableHomeProfiles, Eq("id", id))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "12 Birch Rd", rows[0]["address"])

	updated, err := store.Update(ctx, TableHomeProfiles, Eq("id", id), Row{"address": "14 Birch Rd", "id": "hijack"})
	require.NoError(t, err)
	require.Len(t, updated, 1)
	assert.Equal(t, "14 Birch Rd", updated[0]["address"])
	assert.Equal(t, id, updated[0]["id"])

	deleted, err := store.Delete(ctx, TableHomeProfiles, Eq("id", id))
	require.NoError(t, err)
	assert.Len(t, deleted, 1)

	rows, err = store.Select(ctx, TableHomeProfiles, Eq("id", id))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestMemoryStoreInFilter(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	for _, hp := range []string{"p1", "p2", "p3"} {
		_, err := store.Insert(ctx, TableAppliances, Row{"name": "fridge", "home_profile_id": hp})
		require.NoError(t, err)
	}

	rows, err := store.Select(ctx, TableAppliances, In("home_profile_id", []string{"p1", "p3"}))
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	rows, err = store.Select(ctx, TableAppliances, In("home_profile_id", nil))
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestMemoryStoreCopiesRows(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	images := []string{"a.jpg"}
	inserted, err := store.Insert(ctx, TableHomeProfiles, Row{"user_id": "u1", "images": images})
	require.NoError(t, err)

	images[0] = "mutated.jpg"
	inserted["user_id"] = "u2"

	rows, err := store.Select(ctx, TableHomeProfiles, Eq("user_id", "u1"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"a.jpg"}, rows[0]["images"])
}

func TestColumn(t *testing.T) {
	rows := []Row{{"id": "a"}, {"id": ""}, {"name": "x"}, {"id": "b"}}
	assert.Equal(t, []string{"a", "b"}, Column(rows, "id"))
}
