package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mmynk/grocer/internal/models"
	"github.com/mmynk/grocer/internal/storage"
)

const selectList = `SELECT id, name, sequence, account_id FROM lists`

// CreateList persists a new list with a freshly drawn sequence.
func (s *SQLiteStore) CreateList(ctx context.Context, list *models.List) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if err := checkOwner(ctx, tx, "accounts", list.OwnerID); err != nil {
			return err
		}

		seq, err := nextSequence(ctx, tx, storage.SequenceList)
		if err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx,
			"INSERT INTO lists (name, sequence, account_id) VALUES (?, ?, ?)",
			list.Name, seq, list.OwnerID,
		)
		if err != nil {
			return fmt.Errorf("failed to insert list: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to read list ID: %w", err)
		}

		list.ID = id
		list.Sequence = seq
		return nil
	})
}

// UpdateList replaces the name and owner of an existing list.
func (s *SQLiteStore) UpdateList(ctx context.Context, list *models.List) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if err := checkOwner(ctx, tx, "accounts", list.OwnerID); err != nil {
			return err
		}

		err := tx.QueryRowContext(ctx,
			"UPDATE lists SET name = ?, account_id = ? WHERE id = ? RETURNING sequence",
			list.Name, list.OwnerID, list.ID,
		).Scan(&list.Sequence)
		if err == sql.ErrNoRows {
			return fmt.Errorf("list %d: %w", list.ID, storage.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to update list: %w", err)
		}
		return nil
	})
}

// GetList retrieves a list by its ID.
func (s *SQLiteStore) GetList(ctx context.Context, id int64) (*models.List, error) {
	list, err := scanList(s.db.QueryRowContext(ctx, selectList+" WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("list %d: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get list: %w", err)
	}
	return list, nil
}

// ListLists retrieves all lists ordered by ID.
func (s *SQLiteStore) ListLists(ctx context.Context) ([]*models.List, error) {
	rows, err := s.db.QueryContext(ctx, selectList+" ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to list lists: %w", err)
	}
	defer rows.Close()

	var lists []*models.List
	for rows.Next() {
		list, err := scanList(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan list: %w", err)
		}
		lists = append(lists, list)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating lists: %w", err)
	}

	return lists, nil
}

// DeleteList removes a list and its items in one transaction.
func (s *SQLiteStore) DeleteList(ctx context.Context, id int64) (storage.Cascade, error) {
	var removed storage.Cascade
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		ok, err := exists(ctx, tx, "lists", id)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("list %d: %w", id, storage.ErrNotFound)
		}
		removed, err = cascadeList(ctx, tx, id)
		return err
	})
	if err != nil {
		return storage.Cascade{}, err
	}
	return removed, nil
}

func scanList(row rowScanner) (*models.List, error) {
	list := &models.List{}
	var owner sql.NullInt64
	if err := row.Scan(&list.ID, &list.Name, &list.Sequence, &owner); err != nil {
		return nil, err
	}
	list.OwnerID = nullableID(owner)
	return list, nil
}
