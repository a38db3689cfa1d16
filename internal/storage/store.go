// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/grocer/internal/models"
)

var (
	// ErrNotFound is returned when the requested row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrOwnerNotFound is returned when a write references a parent that does
	// not exist. The write is rolled back in full.
	ErrOwnerNotFound = errors.New("owner does not exist")
)

// Sequence kinds. Each kind has its own order-rank counter.
const (
	SequenceList = "list"
	SequenceItem = "item"
)

// Cascade reports how many rows a top-level delete removed, per kind.
type Cascade struct {
	Accounts int64
	Lists    int64
	Items    int64
}

// Add accumulates the counts of another cascade step.
func (c *Cascade) Add(o Cascade) {
	c.Accounts += o.Accounts
	c.Lists += o.Lists
	c.Items += o.Items
}

// Store defines the interface for account, list and item storage.
// This abstraction allows swapping storage backends (SQLite, in-memory)
// without changing the service layer.
//
// Every method that writes runs as a single transaction: either all of its
// effects are visible to other callers or none are.
type Store interface {
	// CreateAccount persists a new account and populates account.ID.
	CreateAccount(ctx context.Context, account *models.Account) error

	// UpdateAccount replaces the mutable fields of an existing account.
	// Returns ErrNotFound if the account does not exist.
	UpdateAccount(ctx context.Context, account *models.Account) error

	// GetAccount retrieves an account by ID.
	// Returns ErrNotFound if the account does not exist.
	GetAccount(ctx context.Context, id int64) (*models.Account, error)

	// ListAccounts retrieves all accounts in ID order.
	ListAccounts(ctx context.Context) ([]*models.Account, error)

	// DeleteAccount removes an account together with its lists and their items.
	// Returns ErrNotFound (and removes nothing) if the account does not exist.
	DeleteAccount(ctx context.Context, id int64) (Cascade, error)

	// CreateList persists a new list, populating list.ID and list.Sequence.
	// Returns ErrOwnerNotFound if list.OwnerID references a missing account.
	CreateList(ctx context.Context, list *models.List) error

	// UpdateList replaces the name and owner of an existing list.
	// The sequence is never changed and is refreshed from storage.
	// Returns ErrNotFound or ErrOwnerNotFound.
	UpdateList(ctx context.Context, list *models.List) error

	// GetList retrieves a list by ID.
	// Returns ErrNotFound if the list does not exist.
	GetList(ctx context.Context, id int64) (*models.List, error)

	// ListLists retrieves all lists in ID order.
	ListLists(ctx context.Context) ([]*models.List, error)

	// DeleteList removes a list together with its items.
	// Returns ErrNotFound (and removes nothing) if the list does not exist.
	DeleteList(ctx context.Context, id int64) (Cascade, error)

	// CreateItem persists a new item, populating item.ID and item.Sequence.
	// Returns ErrOwnerNotFound if item.OwnerID references a missing list.
	CreateItem(ctx context.Context, item *models.Item) error

	// UpdateItem replaces the name, price and owner of an existing item.
	// Returns ErrNotFound or ErrOwnerNotFound.
	UpdateItem(ctx context.Context, item *models.Item) error

	// GetItem retrieves an item by ID.
	// Returns ErrNotFound if the item does not exist.
	GetItem(ctx context.Context, id int64) (*models.Item, error)

	// ListItems retrieves all items in ID order.
	ListItems(ctx context.Context) ([]*models.Item, error)

	// DeleteItem removes a single item.
	// Returns ErrNotFound if the item does not exist.
	DeleteItem(ctx context.Context, id int64) (Cascade, error)

	// Close releases any resources held by the store.
	Close() error
}
