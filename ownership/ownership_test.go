package ownership

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sidhant-sriv/home-maintenance-api/apperr"
	"github.com/sidhant-sriv/home-maintenance-api/db"
)

// countingStore records the tables every Select call touched.
type countingStore struct {
	db.Store
	selects []string
	fail    error
}

func (s *countingStore) Select(ctx context.Context, table string, f db.Filter) ([]db.Row, error) {
	s.selects = append(s.selects, table)
	if s.fail != nil {
		return nil, s.fail
	}
	return s.Store.Select(ctx, table, f)
}

type tree struct {
	profile, appliance, record, reminder string
}

func seed(t *testing.T, store db.Store, userID string) tree {
	t.Helper()
	ctx := context.Background()
	insert := func(table string, row db.Row) string {
		out, err := store.Insert(ctx, table, row)
		require.NoError(t, err)
		return out["id"].(string)
	}
	var tr tree
	tr.profile = insert(db.TableHomeProfiles, db.Row{"user_id": userID, "address": "1 Elm St"})
	tr.appliance = insert(db.TableAppliances, db.Row{"home_profile_id": tr.profile, "name": "Boiler"})
	tr.record = insert(db.TableServiceRecords, db.Row{"appliance_id": tr.appliance, "cost": 149.99})
	tr.reminder = insert(db.TableReminders, db.Row{"appliance_id": tr.appliance, "title": "Bleed radiators"})
	return tr
}

func TestResolveWalksToOwner(t *testing.T) {
	mem := db.NewMemoryStore()
	tr := seed(t, mem, "alice")
	store := &countingStore{Store: mem}
	r := NewResolver(store)
	ctx := context.Background()

	cases := []struct {
		chain Chain
		id    string
		hops  []string
	}{
		{HomeProfiles, tr.profile, []string{db.TableHomeProfiles}},
		{Appliances, tr.appliance, []string{db.TableAppliances, db.TableHomeProfiles}},
		{ServiceRecords, tr.record, []string{db.TableServiceRecords, db.TableAppliances, db.TableHomeProfiles}},
		{Reminders, tr.reminder, []string{db.TableReminders, db.TableAppliances, db.TableHomeProfiles}},
	}
	for _, tc := range cases {
		store.selects = nil
		owner, row, err := r.Resolve(ctx, tc.chain, tc.id)
		require.NoError(t, err, tc.chain.Kind())
		assert.Equal(t, "alice", owner)
		assert.Equal(t, tc.id, row["id"])
		assert.Equal(t, tc.hops, store.selects)
	}
}

func TestResolveMissingAncestorIsNotFoundForRecord(t *testing.T) {
	ctx := context.Background()
	store := db.NewMemoryStore()
	tr := seed(t, store, "alice")
	_, err := store.Delete(ctx, db.TableAppliances, db.Eq("id", tr.appliance))
	require.NoError(t, err)

	_, _, err = NewResolver(store).Resolve(ctx, ServiceRecords, tr.record)
	require.Error(t, err)
	assert.Equal(t, apperr.CodeNotFound, apperr.CodeOf(err))
	assert.Equal(t, "Service record not found", apperr.MessageOf(err))
}

func TestAuthorize(t *testing.T) {
	ctx := context.Background()
	store := db.NewMemoryStore()
	tr := seed(t, store, "alice")
	r := NewResolver(store)

	row, err := r.Authorize(ctx, Reminders, tr.reminder, "alice")
	require.NoError(t, err)
	assert.Equal(t, "Bleed radiators", row["title"])

	_, err = r.Authorize(ctx, Reminders, tr.reminder, "bob")
	assert.Equal(t, apperr.CodeForbidden, apperr.CodeOf(err))
	assert.Equal(t, "Not authorized to access this reminder", apperr.MessageOf(err))

	_, err = r.Authorize(ctx, Appliances, "missing", "alice")
	assert.Equal(t, apperr.CodeNotFound, apperr.CodeOf(err))
}

func TestResolvePropagatesStoreFailure(t *testing.T) {
	boom := apperr.Upstream(errors.New("timeout"), "failed to get appliances")
	r := NewResolver(&countingStore{Store: db.NewMemoryStore(), fail: boom})

	_, _, err := r.Resolve(context.Background(), Appliances, "a1")
	assert.Equal(t, apperr.CodeUpstreamFailure, apperr.CodeOf(err))
}

func TestListOwned(t *testing.T) {
	ctx := context.Background()
	mem := db.NewMemoryStore()
	alice := seed(t, mem, "alice")
	seed(t, mem, "bob")
	r := NewResolver(mem)

	rows, err := r.ListOwned(ctx, ServiceRecords, "alice")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, alice.record, rows[0]["id"])

	rows, err = r.ListOwned(ctx, HomeProfiles, "bob")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestListOwnedShortCircuits(t *testing.T) {
	ctx := context.Background()
	mem := db.NewMemoryStore()
	store := &countingStore{Store: mem}
	r := NewResolver(store)

	for _, chain := range []Chain{Appliances, ServiceRecords, Reminders} {
		store.selects = nil
		rows, err := r.ListOwned(ctx, chain, "nobody")
		require.NoError(t, err)
		assert.NotNil(t, rows)
		assert.Empty(t, rows)
		assert.Equal(t, []string{db.TableHomeProfiles}, store.selects, chain.Kind())
	}

	// A profile without appliances stops after the appliance lookup.
	_, err := mem.Insert(ctx, db.TableHomeProfiles, db.Row{"user_id": "carol"})
	require.NoError(t, err)
	store.selects = nil
	rows, err := r.ListOwned(ctx, Reminders, "carol")
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.Equal(t, []string{db.TableHomeProfiles, db.TableAppliances}, store.selects)
}
