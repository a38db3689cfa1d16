package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mmynk/grocer/internal/models"
	"github.com/mmynk/grocer/internal/storage"
)

const selectItem = `SELECT id, name, price, sequence, list_id FROM items`

// CreateItem persists a new item with a freshly drawn sequence.
func (s *SQLiteStore) CreateItem(ctx context.Context, item *models.Item) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if err := checkOwner(ctx, tx, "lists", item.OwnerID); err != nil {
			return err
		}

		seq, err := nextSequence(ctx, tx, storage.SequenceItem)
		if err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx,
			"INSERT INTO items (name, price, sequence, list_id) VALUES (?, ?, ?, ?)",
			item.Name, item.Price, seq, item.OwnerID,
		)
		if err != nil {
			return fmt.Errorf("failed to insert item: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to read item ID: %w", err)
		}

		item.ID = id
		item.Sequence = seq
		return nil
	})
}

// UpdateItem replaces the name, price and owner of an existing item.
func (s *SQLiteStore) UpdateItem(ctx context.Context, item *models.Item) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if err := checkOwner(ctx, tx, "lists", item.OwnerID); err != nil {
			return err
		}

		err := tx.QueryRowContext(ctx,
			"UPDATE items SET name = ?, price = ?, list_id = ? WHERE id = ? RETURNING sequence",
			item.Name, item.Price, item.OwnerID, item.ID,
		).Scan(&item.Sequence)
		if err == sql.ErrNoRows {
			return fmt.Errorf("item %d: %w", item.ID, storage.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to update item: %w", err)
		}
		return nil
	})
}

// GetItem retrieves an item by its ID.
func (s *SQLiteStore) GetItem(ctx context.Context, id int64) (*models.Item, error) {
	item, err := scanItem(s.db.QueryRowContext(ctx, selectItem+" WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("item %d: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return item, nil
}

// ListItems retrieves all items ordered by ID.
func (s *SQLiteStore) ListItems(ctx context.Context) ([]*models.Item, error) {
	rows, err := s.db.QueryContext(ctx, selectItem+" ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	var items []*models.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}

	return items, nil
}

// DeleteItem removes a single item. Items have no children.
func (s *SQLiteStore) DeleteItem(ctx context.Context, id int64) (storage.Cascade, error) {
	var removed storage.Cascade
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		n, err := deleteRow(ctx, tx, "items", id)
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("item %d: %w", id, storage.ErrNotFound)
		}
		removed.Items = n
		return nil
	})
	if err != nil {
		return storage.Cascade{}, err
	}
	return removed, nil
}

func scanItem(row rowScanner) (*models.Item, error) {
	item := &models.Item{}
	var owner sql.NullInt64
	if err := row.Scan(&item.ID, &item.Name, &item.Price, &item.Sequence, &owner); err != nil {
		return nil, err
	}
	item.OwnerID = nullableID(owner)
	return item, nil
}
