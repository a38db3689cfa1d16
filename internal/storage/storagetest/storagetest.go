// Package storagetest provides a conformance suite for storage.Store
// implementations. Each backend's tests call Run with a constructor.
package storagetest

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/grocer/internal/models"
	"github.com/mmynk/grocer/internal/storage"
)

// Factory returns a fresh, empty store. The store is closed by the suite.
type Factory func(t *testing.T) storage.Store

// Run executes the full conformance suite against stores built by newStore.
func Run(t *testing.T, newStore Factory) {
	tests := []struct {
		name string
		fn   func(t *testing.T, s storage.Store)
	}{
		{"AccountLifecycle", testAccountLifecycle},
		{"ListSequence", testListSequence},
		{"ItemDefaults", testItemDefaults},
		{"UpdateIsIdempotent", testUpdateIsIdempotent},
		{"UpdateMissingRow", testUpdateMissingRow},
		{"OwnerIntegrityOnCreate", testOwnerIntegrityOnCreate},
		{"OwnerIntegrityOnUpdate", testOwnerIntegrityOnUpdate},
		{"DeleteAccountCascades", testDeleteAccountCascades},
		{"DeleteListCascades", testDeleteListCascades},
		{"DeleteMissing", testDeleteMissing},
		{"IdentitiesNeverReused", testIdentitiesNeverReused},
		{"ConcurrentCreates", testConcurrentCreates},
		{"CascadeRacesChildCreate", testCascadeRacesChildCreate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStore(t)
			t.Cleanup(func() { s.Close() })
			tt.fn(t, s)
		})
	}
}

func ptr(v int64) *int64 { return &v }

// seed creates account -> list -> item and returns all three.
func seed(t *testing.T, s storage.Store) (*models.Account, *models.List, *models.Item) {
	t.Helper()
	ctx := context.Background()

	account := &models.Account{Username: "amy", Email: "a@x.com", Password: "p"}
	require.NoError(t, s.CreateAccount(ctx, account))

	list := &models.List{Name: "Groceries", OwnerID: ptr(account.ID)}
	require.NoError(t, s.CreateList(ctx, list))

	item := &models.Item{Name: "Milk", Price: 2.5, OwnerID: ptr(list.ID)}
	require.NoError(t, s.CreateItem(ctx, item))

	return account, list, item
}

func testAccountLifecycle(t *testing.T, s storage.Store) {
	ctx := context.Background()

	amy := &models.Account{Username: "amy", Email: "a@x.com", Password: "p"}
	require.NoError(t, s.CreateAccount(ctx, amy))
	assert.Equal(t, int64(1), amy.ID)

	bob := &models.Account{Username: "bob"}
	require.NoError(t, s.CreateAccount(ctx, bob))
	assert.Greater(t, bob.ID, amy.ID)

	got, err := s.GetAccount(ctx, amy.ID)
	require.NoError(t, err)
	assert.Equal(t, amy, got)

	amy.Email = "amy@x.com"
	require.NoError(t, s.UpdateAccount(ctx, amy))

	got, err = s.GetAccount(ctx, amy.ID)
	require.NoError(t, err)
	assert.Equal(t, "amy@x.com", got.Email)

	all, err := s.ListAccounts(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, amy.ID, all[0].ID)
	assert.Equal(t, bob.ID, all[1].ID)

	_, err = s.GetAccount(ctx, 999)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func testListSequence(t *testing.T, s storage.Store) {
	ctx := context.Background()

	var lists []*models.List
	for _, name := range []string{"Groceries", "Party", "Hardware"} {
		list := &models.List{Name: name}
		require.NoError(t, s.CreateList(ctx, list))
		lists = append(lists, list)
	}
	for i, list := range lists {
		assert.Equal(t, int64(i+1), list.Sequence, "list %q", list.Name)
		assert.Nil(t, list.OwnerID)
	}

	// Updates never touch the sequence.
	renamed := &models.List{ID: lists[0].ID, Name: "Weekly", Sequence: 42}
	require.NoError(t, s.UpdateList(ctx, renamed))
	assert.Equal(t, int64(1), renamed.Sequence)

	got, err := s.GetList(ctx, lists[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Weekly", got.Name)
	assert.Equal(t, int64(1), got.Sequence)

	// Deleting the newest list does not free its rank.
	_, err = s.DeleteList(ctx, lists[2].ID)
	require.NoError(t, err)

	next := &models.List{Name: "Pharmacy"}
	require.NoError(t, s.CreateList(ctx, next))
	assert.Equal(t, int64(4), next.Sequence)

	// Item ranks are counted separately from list ranks.
	item := &models.Item{Name: "Milk"}
	require.NoError(t, s.CreateItem(ctx, item))
	assert.Equal(t, int64(1), item.Sequence)
}

func testItemDefaults(t *testing.T, s storage.Store) {
	ctx := context.Background()

	item := &models.Item{}
	require.NoError(t, s.CreateItem(ctx, item))

	got, err := s.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "", got.Name)
	assert.Equal(t, 0.0, got.Price)
	assert.Nil(t, got.OwnerID)
}

func testUpdateIsIdempotent(t *testing.T, s storage.Store) {
	ctx := context.Background()
	account, list, _ := seed(t, s)

	update := func() *models.List {
		l := &models.List{ID: list.ID, Name: "Milk", OwnerID: ptr(account.ID)}
		require.NoError(t, s.UpdateList(ctx, l))
		got, err := s.GetList(ctx, list.ID)
		require.NoError(t, err)
		return got
	}

	first := update()
	second := update()
	assert.Equal(t, first, second)
	assert.Equal(t, list.Sequence, second.Sequence)
}

func testUpdateMissingRow(t *testing.T, s storage.Store) {
	ctx := context.Background()

	err := s.UpdateAccount(ctx, &models.Account{ID: 7, Username: "ghost"})
	assert.ErrorIs(t, err, storage.ErrNotFound)

	err = s.UpdateList(ctx, &models.List{ID: 7, Name: "ghost"})
	assert.ErrorIs(t, err, storage.ErrNotFound)

	err = s.UpdateItem(ctx, &models.Item{ID: 7, Name: "ghost"})
	assert.ErrorIs(t, err, storage.ErrNotFound)

	accounts, err := s.ListAccounts(ctx)
	require.NoError(t, err)
	assert.Empty(t, accounts)
}

func testOwnerIntegrityOnCreate(t *testing.T, s storage.Store) {
	ctx := context.Background()

	err := s.CreateList(ctx, &models.List{Name: "Orphan", OwnerID: ptr(404)})
	require.ErrorIs(t, err, storage.ErrOwnerNotFound)

	err = s.CreateItem(ctx, &models.Item{Name: "Orphan", OwnerID: ptr(404)})
	require.ErrorIs(t, err, storage.ErrOwnerNotFound)

	lists, err := s.ListLists(ctx)
	require.NoError(t, err)
	assert.Empty(t, lists)

	items, err := s.ListItems(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	// Failed creates do not consume a rank.
	list := &models.List{Name: "Groceries"}
	require.NoError(t, s.CreateList(ctx, list))
	assert.Equal(t, int64(1), list.Sequence)
}

func testOwnerIntegrityOnUpdate(t *testing.T, s storage.Store) {
	ctx := context.Background()
	account, list, item := seed(t, s)

	err := s.UpdateList(ctx, &models.List{ID: list.ID, Name: "Moved", OwnerID: ptr(account.ID + 100)})
	require.ErrorIs(t, err, storage.ErrOwnerNotFound)

	err = s.UpdateItem(ctx, &models.Item{ID: item.ID, Name: "Moved", OwnerID: ptr(list.ID + 100)})
	require.ErrorIs(t, err, storage.ErrOwnerNotFound)

	gotList, err := s.GetList(ctx, list.ID)
	require.NoError(t, err)
	assert.Equal(t, list, gotList)

	gotItem, err := s.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, item, gotItem)

	// Clearing the owner is always allowed.
	require.NoError(t, s.UpdateItem(ctx, &models.Item{ID: item.ID, Name: "Loose"}))
	gotItem, err = s.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Nil(t, gotItem.OwnerID)
}

func testDeleteAccountCascades(t *testing.T, s storage.Store) {
	ctx := context.Background()
	account, list, item := seed(t, s)

	second := &models.List{Name: "Party", OwnerID: ptr(account.ID)}
	require.NoError(t, s.CreateList(ctx, second))
	for _, name := range []string{"Chips", "Soda"} {
		require.NoError(t, s.CreateItem(ctx, &models.Item{Name: name, OwnerID: ptr(second.ID)}))
	}

	// Rows of another account must survive.
	other := &models.Account{Username: "bob"}
	require.NoError(t, s.CreateAccount(ctx, other))
	otherList := &models.List{Name: "Bob's", OwnerID: ptr(other.ID)}
	require.NoError(t, s.CreateList(ctx, otherList))
	otherItem := &models.Item{Name: "Bread", OwnerID: ptr(otherList.ID)}
	require.NoError(t, s.CreateItem(ctx, otherItem))
	unowned := &models.Item{Name: "Loose"}
	require.NoError(t, s.CreateItem(ctx, unowned))

	removed, err := s.DeleteAccount(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, storage.Cascade{Accounts: 1, Lists: 2, Items: 3}, removed)

	_, err = s.GetItem(ctx, item.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = s.GetList(ctx, list.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = s.GetList(ctx, second.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = s.GetAccount(ctx, account.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	for _, id := range []int64{otherItem.ID, unowned.ID} {
		_, err = s.GetItem(ctx, id)
		assert.NoError(t, err, "item %d", id)
	}
	_, err = s.GetList(ctx, otherList.ID)
	assert.NoError(t, err)
	_, err = s.GetAccount(ctx, other.ID)
	assert.NoError(t, err)
}

func testDeleteListCascades(t *testing.T, s storage.Store) {
	ctx := context.Background()
	account, list, item := seed(t, s)

	removed, err := s.DeleteList(ctx, list.ID)
	require.NoError(t, err)
	assert.Equal(t, storage.Cascade{Lists: 1, Items: 1}, removed)

	_, err = s.GetItem(ctx, item.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = s.GetList(ctx, list.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = s.GetAccount(ctx, account.ID)
	assert.NoError(t, err)
}

func testDeleteMissing(t *testing.T, s storage.Store) {
	ctx := context.Background()
	_, _, item := seed(t, s)

	_, err := s.DeleteAccount(ctx, 999)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = s.DeleteList(ctx, 999)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = s.DeleteItem(ctx, 999)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	removed, err := s.DeleteItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, storage.Cascade{Items: 1}, removed)

	_, err = s.DeleteItem(ctx, item.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func testIdentitiesNeverReused(t *testing.T, s storage.Store) {
	ctx := context.Background()
	account, list, item := seed(t, s)

	_, err := s.DeleteAccount(ctx, account.ID)
	require.NoError(t, err)

	_, list2, item2 := seed(t, s)
	account2, err := s.ListAccounts(ctx)
	require.NoError(t, err)
	require.Len(t, account2, 1)

	assert.Greater(t, account2[0].ID, account.ID)
	assert.Greater(t, list2.ID, list.ID)
	assert.Greater(t, item2.ID, item.ID)
	assert.Greater(t, list2.Sequence, list.Sequence)
	assert.Greater(t, item2.Sequence, item.Sequence)
}

func testConcurrentCreates(t *testing.T, s storage.Store) {
	ctx := context.Background()
	const n = 20

	lists := make([]*models.List, n)
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			lists[i] = &models.List{Name: "concurrent"}
			errs[i] = s.CreateList(ctx, lists[i])
		}(i)
	}
	wg.Wait()

	ids := make(map[int64]bool)
	seqs := make(map[int64]bool)
	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		ids[lists[i].ID] = true
		seqs[lists[i].Sequence] = true
	}
	assert.Len(t, ids, n, "identities collided")
	assert.Len(t, seqs, n, "sequences collided")
	for seq := int64(1); seq <= n; seq++ {
		assert.True(t, seqs[seq], "missing sequence %d", seq)
	}
}

// testCascadeRacesChildCreate deletes an account while lists are being
// created under it. Every create must either be swept up by the cascade or
// fail its owner check; nothing may survive pointing at the deleted account.
func testCascadeRacesChildCreate(t *testing.T, s storage.Store) {
	ctx := context.Background()
	account := &models.Account{Username: "amy"}
	require.NoError(t, s.CreateAccount(ctx, account))

	const n = 10
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = s.CreateList(ctx, &models.List{Name: "racing", OwnerID: ptr(account.ID)})
		}(i)
	}
	wg.Add(1)
	var deleteErr error
	go func() {
		defer wg.Done()
		_, deleteErr = s.DeleteAccount(ctx, account.ID)
	}()
	wg.Wait()

	require.NoError(t, deleteErr)
	for _, err := range errs {
		if err != nil && !errors.Is(err, storage.ErrOwnerNotFound) {
			t.Errorf("unexpected create error: %v", err)
		}
	}

	lists, err := s.ListLists(ctx)
	require.NoError(t, err)
	for _, list := range lists {
		if list.OwnerID != nil && *list.OwnerID == account.ID {
			t.Errorf("list %d survived cascade of account %d", list.ID, account.ID)
		}
	}
}
