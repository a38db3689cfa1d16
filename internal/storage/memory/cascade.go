package memory

import "github.com/mmynk/grocer/internal/storage"

// cascadeAccount removes the account's lists (items first, via cascadeList)
// and then the account. The caller must hold s.mu for writing.
func (s *Store) cascadeAccount(accountID int64) storage.Cascade {
	var removed storage.Cascade
	for _, listID := range sortedKeys(s.lists) {
		owner := s.lists[listID].OwnerID
		if owner != nil && *owner == accountID {
			removed.Add(s.cascadeList(listID))
		}
	}
	if _, ok := s.accounts[accountID]; ok {
		delete(s.accounts, accountID)
		removed.Accounts = 1
	}
	return removed
}

// cascadeList removes the list's items and then the list.
// The caller must hold s.mu for writing.
func (s *Store) cascadeList(listID int64) storage.Cascade {
	var removed storage.Cascade
	for id, item := range s.items {
		if item.OwnerID != nil && *item.OwnerID == listID {
			delete(s.items, id)
			removed.Items++
		}
	}
	if _, ok := s.lists[listID]; ok {
		delete(s.lists, listID)
		removed.Lists = 1
	}
	return removed
}
