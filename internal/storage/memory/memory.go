// Package memory provides an in-memory implementation of storage.Store.
// This file contains the store and its per-kind CRUD; cascade.go holds the
// deletion protocol.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/mmynk/grocer/internal/models"
	"github.com/mmynk/grocer/internal/storage"
)

var _ storage.Store = (*Store)(nil)

// Store is an in-memory implementation of storage.Store.
// A single mutex serializes writers, which gives every operation the same
// all-or-nothing visibility as a database transaction. Rows are copied on the
// way in and out so callers never share state with the store.
type Store struct {
	mu       sync.RWMutex
	accounts map[int64]*models.Account
	lists    map[int64]*models.List
	items    map[int64]*models.Item

	// Identity counters. Never decremented, so IDs are never reused.
	nextAccountID int64
	nextListID    int64
	nextItemID    int64

	// Order-rank counters, keyed by storage.SequenceList / SequenceItem.
	sequences map[string]int64
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		accounts: make(map[int64]*models.Account),
		lists:    make(map[int64]*models.List),
		items:    make(map[int64]*models.Item),
		sequences: map[string]int64{
			storage.SequenceList: 0,
			storage.SequenceItem: 0,
		},
	}
}

// Close is a no-op for Store.
func (s *Store) Close() error {
	return nil
}

// nextSequence draws the next order rank. The caller must hold s.mu and must
// only call it once the create is certain to succeed.
func (s *Store) nextSequence(kind string) int64 {
	s.sequences[kind]++
	return s.sequences[kind]
}

// =============================================================================
// Accounts
// =============================================================================

func (s *Store) CreateAccount(_ context.Context, account *models.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextAccountID++
	account.ID = s.nextAccountID
	row := *account
	s.accounts[row.ID] = &row
	return nil
}

func (s *Store) UpdateAccount(_ context.Context, account *models.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[account.ID]; !ok {
		return fmt.Errorf("account %d: %w", account.ID, storage.ErrNotFound)
	}
	row := *account
	s.accounts[row.ID] = &row
	return nil
}

func (s *Store) GetAccount(_ context.Context, id int64) (*models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.accounts[id]
	if !ok {
		return nil, fmt.Errorf("account %d: %w", id, storage.ErrNotFound)
	}
	account := *row
	return &account, nil
}

func (s *Store) ListAccounts(_ context.Context) ([]*models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	accounts := make([]*models.Account, 0, len(s.accounts))
	for _, id := range sortedKeys(s.accounts) {
		account := *s.accounts[id]
		accounts = append(accounts, &account)
	}
	return accounts, nil
}

func (s *Store) DeleteAccount(_ context.Context, id int64) (storage.Cascade, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[id]; !ok {
		return storage.Cascade{}, fmt.Errorf("account %d: %w", id, storage.ErrNotFound)
	}
	return s.cascadeAccount(id), nil
}

// =============================================================================
// Lists
// =============================================================================

func (s *Store) CreateList(_ context.Context, list *models.List) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkAccount(list.OwnerID); err != nil {
		return err
	}

	s.nextListID++
	list.ID = s.nextListID
	list.Sequence = s.nextSequence(storage.SequenceList)
	s.lists[list.ID] = copyList(list)
	return nil
}

func (s *Store) UpdateList(_ context.Context, list *models.List) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkAccount(list.OwnerID); err != nil {
		return err
	}
	existing, ok := s.lists[list.ID]
	if !ok {
		return fmt.Errorf("list %d: %w", list.ID, storage.ErrNotFound)
	}

	list.Sequence = existing.Sequence
	s.lists[list.ID] = copyList(list)
	return nil
}

func (s *Store) GetList(_ context.Context, id int64) (*models.List, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.lists[id]
	if !ok {
		return nil, fmt.Errorf("list %d: %w", id, storage.ErrNotFound)
	}
	return copyList(row), nil
}

func (s *Store) ListLists(_ context.Context) ([]*models.List, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lists := make([]*models.List, 0, len(s.lists))
	for _, id := range sortedKeys(s.lists) {
		lists = append(lists, copyList(s.lists[id]))
	}
	return lists, nil
}

func (s *Store) DeleteList(_ context.Context, id int64) (storage.Cascade, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.lists[id]; !ok {
		return storage.Cascade{}, fmt.Errorf("list %d: %w", id, storage.ErrNotFound)
	}
	return s.cascadeList(id), nil
}

// =============================================================================
// Items
// =============================================================================

func (s *Store) CreateItem(_ context.Context, item *models.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkList(item.OwnerID); err != nil {
		return err
	}

	s.nextItemID++
	item.ID = s.nextItemID
	item.Sequence = s.nextSequence(storage.SequenceItem)
	s.items[item.ID] = copyItem(item)
	return nil
}

func (s *Store) UpdateItem(_ context.Context, item *models.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkList(item.OwnerID); err != nil {
		return err
	}
	existing, ok := s.items[item.ID]
	if !ok {
		return fmt.Errorf("item %d: %w", item.ID, storage.ErrNotFound)
	}

	item.Sequence = existing.Sequence
	s.items[item.ID] = copyItem(item)
	return nil
}

func (s *Store) GetItem(_ context.Context, id int64) (*models.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.items[id]
	if !ok {
		return nil, fmt.Errorf("item %d: %w", id, storage.ErrNotFound)
	}
	return copyItem(row), nil
}

func (s *Store) ListItems(_ context.Context) ([]*models.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]*models.Item, 0, len(s.items))
	for _, id := range sortedKeys(s.items) {
		items = append(items, copyItem(s.items[id]))
	}
	return items, nil
}

func (s *Store) DeleteItem(_ context.Context, id int64) (storage.Cascade, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return storage.Cascade{}, fmt.Errorf("item %d: %w", id, storage.ErrNotFound)
	}
	delete(s.items, id)
	return storage.Cascade{Items: 1}, nil
}

// =============================================================================
// Helpers
// =============================================================================

func (s *Store) checkAccount(ownerID *int64) error {
	if ownerID == nil {
		return nil
	}
	if _, ok := s.accounts[*ownerID]; !ok {
		return fmt.Errorf("accounts %d: %w", *ownerID, storage.ErrOwnerNotFound)
	}
	return nil
}

func (s *Store) checkList(ownerID *int64) error {
	if ownerID == nil {
		return nil
	}
	if _, ok := s.lists[*ownerID]; !ok {
		return fmt.Errorf("lists %d: %w", *ownerID, storage.ErrOwnerNotFound)
	}
	return nil
}

func copyID(id *int64) *int64 {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}

func copyList(list *models.List) *models.List {
	c := *list
	c.OwnerID = copyID(list.OwnerID)
	return &c
}

func copyItem(item *models.Item) *models.Item {
	c := *item
	c.OwnerID = copyID(item.OwnerID)
	return &c
}

func sortedKeys[V any](m map[int64]V) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
