package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"connectrpc.com/connect"

	"github.com/mmynk/grocer/internal/middleware"
	"github.com/mmynk/grocer/internal/models"
	"github.com/mmynk/grocer/internal/storage/sqlite"
	"github.com/mmynk/grocer/pkg/api"
	"github.com/mmynk/grocer/pkg/api/grocerconnect"
)

type testClients struct {
	accounts grocerconnect.AccountServiceClient
	lists    grocerconnect.ListServiceClient
	items    grocerconnect.ItemServiceClient
}

// setupTestServer starts an httptest server with all three services over a
// fresh SQLite database.
func setupTestServer(t *testing.T) *testClients {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	opts := connect.WithInterceptors(middleware.LoggingInterceptor())
	mux := http.NewServeMux()
	mux.Handle(grocerconnect.NewAccountServiceHandler(NewAccountService(store), opts))
	mux.Handle(grocerconnect.NewListServiceHandler(NewListService(store), opts))
	mux.Handle(grocerconnect.NewItemServiceHandler(NewItemService(store), opts))

	server := httptest.NewServer(mux)
	t.Cleanup(func() {
		server.Close()
		store.Close()
	})

	return &testClients{
		accounts: grocerconnect.NewAccountServiceClient(http.DefaultClient, server.URL),
		lists:    grocerconnect.NewListServiceClient(http.DefaultClient, server.URL),
		items:    grocerconnect.NewItemServiceClient(http.DefaultClient, server.URL),
	}
}

func ptr(v int64) *int64 { return &v }

func (c *testClients) createAccount(t *testing.T, username string) *api.Account {
	t.Helper()
	resp, err := c.accounts.UpsertAccount(context.Background(), connect.NewRequest(&api.UpsertAccountRequest{
		Username: username,
		Email:    username + "@x.com",
		Password: "p",
	}))
	if err != nil {
		t.Fatalf("UpsertAccount failed: %v", err)
	}
	return resp.Msg.Row
}

func (c *testClients) createList(t *testing.T, name string, owner *int64) *api.List {
	t.Helper()
	resp, err := c.lists.UpsertList(context.Background(), connect.NewRequest(&api.UpsertListRequest{
		Name:    name,
		OwnerID: owner,
	}))
	if err != nil {
		t.Fatalf("UpsertList failed: %v", err)
	}
	return resp.Msg.Row
}

func (c *testClients) createItem(t *testing.T, name string, price float64, owner *int64) *api.Item {
	t.Helper()
	resp, err := c.items.UpsertItem(context.Background(), connect.NewRequest(&api.UpsertItemRequest{
		Name:    name,
		Price:   price,
		OwnerID: owner,
	}))
	if err != nil {
		t.Fatalf("UpsertItem failed: %v", err)
	}
	return resp.Msg.Row
}

func TestUpsertAccount_Create(t *testing.T) {
	c := setupTestServer(t)

	resp, err := c.accounts.UpsertAccount(context.Background(), connect.NewRequest(&api.UpsertAccountRequest{
		Username: "amy",
		Email:    "a@x.com",
		Password: "p",
	}))
	if err != nil {
		t.Fatalf("UpsertAccount failed: %v", err)
	}

	if resp.Msg.StatusCode != models.StatusOK {
		t.Errorf("status code: expected 1, got %d", resp.Msg.StatusCode)
	}
	if resp.Msg.StatusMessage != "Account has been created" {
		t.Errorf("status message: got %q", resp.Msg.StatusMessage)
	}
	if resp.Msg.Row == nil {
		t.Fatal("expected row in response")
	}
	if resp.Msg.Row.ID != 1 {
		t.Errorf("id: expected 1, got %d", resp.Msg.Row.ID)
	}
	if resp.Msg.Row.Username != "amy" || resp.Msg.Row.Email != "a@x.com" {
		t.Errorf("unexpected row: %+v", resp.Msg.Row)
	}
	if resp.Header().Get(middleware.RequestIDHeader) == "" {
		t.Error("expected request ID header on response")
	}
}

func TestUpsertAccount_Update(t *testing.T) {
	c := setupTestServer(t)
	account := c.createAccount(t, "amy")

	resp, err := c.accounts.UpsertAccount(context.Background(), connect.NewRequest(&api.UpsertAccountRequest{
		ID:       account.ID,
		Username: "amy",
		Email:    "amy@example.com",
		Password: "p2",
	}))
	if err != nil {
		t.Fatalf("UpsertAccount failed: %v", err)
	}

	if resp.Msg.StatusCode != models.StatusOK || resp.Msg.StatusMessage != "Updated profile" {
		t.Errorf("unexpected status: %d %q", resp.Msg.StatusCode, resp.Msg.StatusMessage)
	}
	if resp.Msg.Row.ID != account.ID {
		t.Errorf("id: expected %d, got %d", account.ID, resp.Msg.Row.ID)
	}
	if resp.Msg.Row.Email != "amy@example.com" {
		t.Errorf("email: expected 'amy@example.com', got %q", resp.Msg.Row.Email)
	}
}

func TestUpsertAccount_UpdateMissing(t *testing.T) {
	c := setupTestServer(t)

	resp, err := c.accounts.UpsertAccount(context.Background(), connect.NewRequest(&api.UpsertAccountRequest{
		ID:       42,
		Username: "ghost",
	}))
	if err != nil {
		t.Fatalf("UpsertAccount failed: %v", err)
	}

	if resp.Msg.StatusCode != models.StatusNotFound {
		t.Errorf("status code: expected 0, got %d", resp.Msg.StatusCode)
	}
	if resp.Msg.StatusMessage != "User does not exist" {
		t.Errorf("status message: got %q", resp.Msg.StatusMessage)
	}
	if resp.Msg.Row != nil {
		t.Errorf("expected no row, got %+v", resp.Msg.Row)
	}

	get, err := c.accounts.GetAccount(context.Background(), connect.NewRequest(&api.GetAccountRequest{}))
	if err != nil {
		t.Fatalf("GetAccount failed: %v", err)
	}
	if len(get.Msg.Rows) != 0 {
		t.Errorf("expected no accounts, got %d", len(get.Msg.Rows))
	}
}

func TestUpsertList_Create(t *testing.T) {
	c := setupTestServer(t)
	account := c.createAccount(t, "amy")

	resp, err := c.lists.UpsertList(context.Background(), connect.NewRequest(&api.UpsertListRequest{
		Name:    "Groceries",
		OwnerID: ptr(account.ID),
	}))
	if err != nil {
		t.Fatalf("UpsertList failed: %v", err)
	}

	if resp.Msg.StatusCode != models.StatusOK || resp.Msg.StatusMessage != "Created list" {
		t.Errorf("unexpected status: %d %q", resp.Msg.StatusCode, resp.Msg.StatusMessage)
	}
	row := resp.Msg.Row
	if row.Sequence != 1 {
		t.Errorf("sequence: expected 1, got %d", row.Sequence)
	}
	if row.OwnerID == nil || *row.OwnerID != account.ID {
		t.Errorf("owner: expected %d, got %v", account.ID, row.OwnerID)
	}

	second := c.createList(t, "Party", nil)
	if second.Sequence <= row.Sequence {
		t.Errorf("sequence not increasing: %d after %d", second.Sequence, row.Sequence)
	}
	if second.OwnerID != nil {
		t.Errorf("expected unowned list, got owner %d", *second.OwnerID)
	}
}

func TestUpsertList_MissingOwner(t *testing.T) {
	c := setupTestServer(t)

	_, err := c.lists.UpsertList(context.Background(), connect.NewRequest(&api.UpsertListRequest{
		Name:    "Orphan",
		OwnerID: ptr(404),
	}))
	if err == nil {
		t.Fatal("expected error for missing owner")
	}

	var connectErr *connect.Error
	if !errors.As(err, &connectErr) {
		t.Fatalf("expected connect.Error, got %T", err)
	}
	if connectErr.Code() != connect.CodeFailedPrecondition {
		t.Errorf("expected CodeFailedPrecondition, got %v", connectErr.Code())
	}

	get, err := c.lists.GetList(context.Background(), connect.NewRequest(&api.GetListRequest{}))
	if err != nil {
		t.Fatalf("GetList failed: %v", err)
	}
	if len(get.Msg.Rows) != 0 {
		t.Errorf("expected no lists persisted, got %d", len(get.Msg.Rows))
	}
}

func TestUpsertList_UpdateIsIdempotent(t *testing.T) {
	c := setupTestServer(t)
	account := c.createAccount(t, "amy")
	list := c.createList(t, "Groceries", ptr(account.ID))

	var rows []*api.List
	for i := 0; i < 2; i++ {
		resp, err := c.lists.UpsertList(context.Background(), connect.NewRequest(&api.UpsertListRequest{
			ID:      list.ID,
			Name:    "Milk",
			OwnerID: ptr(account.ID),
		}))
		if err != nil {
			t.Fatalf("UpsertList failed: %v", err)
		}
		if resp.Msg.StatusMessage != "Updated list" {
			t.Errorf("status message: got %q", resp.Msg.StatusMessage)
		}
		rows = append(rows, resp.Msg.Row)
	}

	if *rows[0].OwnerID != *rows[1].OwnerID || rows[0].Name != rows[1].Name || rows[0].Sequence != rows[1].Sequence {
		t.Errorf("repeated update changed state: %+v vs %+v", rows[0], rows[1])
	}
	if rows[1].Sequence != list.Sequence {
		t.Errorf("sequence reassigned on update: %d -> %d", list.Sequence, rows[1].Sequence)
	}
}

func TestUpsertList_UpdateMissing(t *testing.T) {
	c := setupTestServer(t)

	resp, err := c.lists.UpsertList(context.Background(), connect.NewRequest(&api.UpsertListRequest{ID: 5, Name: "Milk"}))
	if err != nil {
		t.Fatalf("UpsertList failed: %v", err)
	}
	if resp.Msg.StatusCode != models.StatusNotFound || resp.Msg.StatusMessage != "List does not exist" {
		t.Errorf("unexpected status: %d %q", resp.Msg.StatusCode, resp.Msg.StatusMessage)
	}
}

func TestUpsertItem(t *testing.T) {
	c := setupTestServer(t)
	list := c.createList(t, "Groceries", nil)

	resp, err := c.items.UpsertItem(context.Background(), connect.NewRequest(&api.UpsertItemRequest{
		Name:    "Milk",
		OwnerID: ptr(list.ID),
	}))
	if err != nil {
		t.Fatalf("UpsertItem failed: %v", err)
	}
	if resp.Msg.StatusCode != models.StatusOK || resp.Msg.StatusMessage != "Added item to list" {
		t.Errorf("unexpected status: %d %q", resp.Msg.StatusCode, resp.Msg.StatusMessage)
	}
	if resp.Msg.Row.Price != 0 {
		t.Errorf("price: expected default 0, got %v", resp.Msg.Row.Price)
	}
	if resp.Msg.Row.Sequence != 1 {
		t.Errorf("sequence: expected 1, got %d", resp.Msg.Row.Sequence)
	}

	update, err := c.items.UpsertItem(context.Background(), connect.NewRequest(&api.UpsertItemRequest{
		ID:      resp.Msg.Row.ID,
		Name:    "Oat milk",
		Price:   3.25,
		OwnerID: ptr(list.ID),
	}))
	if err != nil {
		t.Fatalf("UpsertItem failed: %v", err)
	}
	if update.Msg.StatusMessage != "Updated item" {
		t.Errorf("status message: got %q", update.Msg.StatusMessage)
	}
	if update.Msg.Row.Price != 3.25 || update.Msg.Row.Name != "Oat milk" {
		t.Errorf("unexpected row: %+v", update.Msg.Row)
	}

	_, err = c.items.UpsertItem(context.Background(), connect.NewRequest(&api.UpsertItemRequest{
		Name:    "Orphan",
		OwnerID: ptr(999),
	}))
	if connect.CodeOf(err) != connect.CodeFailedPrecondition {
		t.Errorf("expected CodeFailedPrecondition for missing list, got %v", err)
	}

	missing, err := c.items.UpsertItem(context.Background(), connect.NewRequest(&api.UpsertItemRequest{ID: 999}))
	if err != nil {
		t.Fatalf("UpsertItem failed: %v", err)
	}
	if missing.Msg.StatusCode != models.StatusNotFound || missing.Msg.StatusMessage != "Item does not exist" {
		t.Errorf("unexpected status: %d %q", missing.Msg.StatusCode, missing.Msg.StatusMessage)
	}
}

func TestGet(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()
	c.createAccount(t, "amy")
	bob := c.createAccount(t, "bob")

	all, err := c.accounts.GetAccount(ctx, connect.NewRequest(&api.GetAccountRequest{}))
	if err != nil {
		t.Fatalf("GetAccount failed: %v", err)
	}
	if len(all.Msg.Rows) != 2 {
		t.Fatalf("expected 2 accounts, got %d", len(all.Msg.Rows))
	}

	one, err := c.accounts.GetAccount(ctx, connect.NewRequest(&api.GetAccountRequest{ID: bob.ID}))
	if err != nil {
		t.Fatalf("GetAccount failed: %v", err)
	}
	if len(one.Msg.Rows) != 1 || one.Msg.Rows[0].Username != "bob" {
		t.Errorf("unexpected rows: %+v", one.Msg.Rows)
	}

	none, err := c.items.GetItem(ctx, connect.NewRequest(&api.GetItemRequest{ID: 77}))
	if err != nil {
		t.Fatalf("GetItem failed: %v", err)
	}
	if len(none.Msg.Rows) != 0 {
		t.Errorf("expected empty result, got %d rows", len(none.Msg.Rows))
	}
}

func TestDeleteAccount_Cascades(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()

	account := c.createAccount(t, "amy")
	list := c.createList(t, "Groceries", ptr(account.ID))
	item := c.createItem(t, "Milk", 1.99, ptr(list.ID))

	resp, err := c.accounts.DeleteAccount(ctx, connect.NewRequest(&api.DeleteAccountRequest{ID: account.ID}))
	if err != nil {
		t.Fatalf("DeleteAccount failed: %v", err)
	}
	if resp.Msg.StatusCode != models.StatusOK || resp.Msg.StatusMessage != "Deleted account" {
		t.Errorf("unexpected status: %d %q", resp.Msg.StatusCode, resp.Msg.StatusMessage)
	}

	items, err := c.items.GetItem(ctx, connect.NewRequest(&api.GetItemRequest{ID: item.ID}))
	if err != nil {
		t.Fatalf("GetItem failed: %v", err)
	}
	lists, err := c.lists.GetList(ctx, connect.NewRequest(&api.GetListRequest{ID: list.ID}))
	if err != nil {
		t.Fatalf("GetList failed: %v", err)
	}
	accounts, err := c.accounts.GetAccount(ctx, connect.NewRequest(&api.GetAccountRequest{ID: account.ID}))
	if err != nil {
		t.Fatalf("GetAccount failed: %v", err)
	}
	if len(items.Msg.Rows)+len(lists.Msg.Rows)+len(accounts.Msg.Rows) != 0 {
		t.Errorf("cascade left rows behind: items=%d lists=%d accounts=%d",
			len(items.Msg.Rows), len(lists.Msg.Rows), len(accounts.Msg.Rows))
	}

	again, err := c.accounts.DeleteAccount(ctx, connect.NewRequest(&api.DeleteAccountRequest{ID: account.ID}))
	if err != nil {
		t.Fatalf("DeleteAccount failed: %v", err)
	}
	if again.Msg.StatusCode != models.StatusNotFound || again.Msg.StatusMessage != "User does not exist" {
		t.Errorf("unexpected status: %d %q", again.Msg.StatusCode, again.Msg.StatusMessage)
	}
}

func TestDeleteList(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()

	resp, err := c.lists.DeleteList(ctx, connect.NewRequest(&api.DeleteListRequest{ID: 999}))
	if err != nil {
		t.Fatalf("DeleteList failed: %v", err)
	}
	if resp.Msg.StatusCode != models.StatusNotFound || resp.Msg.StatusMessage != "List does not exist" {
		t.Errorf("unexpected status: %d %q", resp.Msg.StatusCode, resp.Msg.StatusMessage)
	}

	list := c.createList(t, "Groceries", nil)
	item := c.createItem(t, "Eggs", 4, ptr(list.ID))

	resp, err = c.lists.DeleteList(ctx, connect.NewRequest(&api.DeleteListRequest{ID: list.ID}))
	if err != nil {
		t.Fatalf("DeleteList failed: %v", err)
	}
	if resp.Msg.StatusCode != models.StatusOK || resp.Msg.StatusMessage != "Deleted list" {
		t.Errorf("unexpected status: %d %q", resp.Msg.StatusCode, resp.Msg.StatusMessage)
	}

	items, err := c.items.GetItem(ctx, connect.NewRequest(&api.GetItemRequest{ID: item.ID}))
	if err != nil {
		t.Fatalf("GetItem failed: %v", err)
	}
	if len(items.Msg.Rows) != 0 {
		t.Error("expected item to be removed with its list")
	}
}

func TestDeleteItem(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()
	list := c.createList(t, "Groceries", nil)
	item := c.createItem(t, "Bread", 2, ptr(list.ID))

	resp, err := c.items.DeleteItem(ctx, connect.NewRequest(&api.DeleteItemRequest{ID: item.ID}))
	if err != nil {
		t.Fatalf("DeleteItem failed: %v", err)
	}
	if resp.Msg.StatusCode != models.StatusOK || resp.Msg.StatusMessage != "Removed item from list" {
		t.Errorf("unexpected status: %d %q", resp.Msg.StatusCode, resp.Msg.StatusMessage)
	}

	resp, err = c.items.DeleteItem(ctx, connect.NewRequest(&api.DeleteItemRequest{ID: item.ID}))
	if err != nil {
		t.Fatalf("DeleteItem failed: %v", err)
	}
	if resp.Msg.StatusCode != models.StatusNotFound || resp.Msg.StatusMessage != "Item does not exist" {
		t.Errorf("unexpected status: %d %q", resp.Msg.StatusCode, resp.Msg.StatusMessage)
	}

	lists, err := c.lists.GetList(ctx, connect.NewRequest(&api.GetListRequest{ID: list.ID}))
	if err != nil {
		t.Fatalf("GetList failed: %v", err)
	}
	if len(lists.Msg.Rows) != 1 {
		t.Error("deleting an item must not touch its list")
	}
}
