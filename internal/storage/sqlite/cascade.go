package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mmynk/grocer/internal/storage"
)

// cascadeAccount deletes every list owned by the account (each through
// cascadeList), then the account row. Descendants go first so no row is ever
// left pointing at a deleted parent. A missing account affects zero rows.
func cascadeAccount(ctx context.Context, tx *sql.Tx, accountID int64) (storage.Cascade, error) {
	var removed storage.Cascade

	listIDs, err := childIDs(ctx, tx, "SELECT id FROM lists WHERE account_id = ? ORDER BY id", accountID)
	if err != nil {
		return removed, fmt.Errorf("failed to find lists of account %d: %w", accountID, err)
	}

	for _, listID := range listIDs {
		step, err := cascadeList(ctx, tx, listID)
		if err != nil {
			return removed, err
		}
		removed.Add(step)
	}

	n, err := deleteRow(ctx, tx, "accounts", accountID)
	if err != nil {
		return removed, err
	}
	removed.Accounts = n
	return removed, nil
}

// cascadeList deletes every item on the list, then the list row.
// A missing list affects zero rows.
func cascadeList(ctx context.Context, tx *sql.Tx, listID int64) (storage.Cascade, error) {
	var removed storage.Cascade

	res, err := tx.ExecContext(ctx, "DELETE FROM items WHERE list_id = ?", listID)
	if err != nil {
		return removed, fmt.Errorf("failed to delete items of list %d: %w", listID, err)
	}
	if removed.Items, err = res.RowsAffected(); err != nil {
		return removed, fmt.Errorf("failed to delete items of list %d: %w", listID, err)
	}

	if removed.Lists, err = deleteRow(ctx, tx, "lists", listID); err != nil {
		return removed, err
	}
	return removed, nil
}

// deleteRow removes exactly one row by ID and reports how many rows went.
// Only the cascade functions and DeleteItem may call it.
func deleteRow(ctx context.Context, tx *sql.Tx, table string, id int64) (int64, error) {
	res, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE id = ?", id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete from %s: %w", table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to delete from %s: %w", table, err)
	}
	return n, nil
}

func childIDs(ctx context.Context, tx *sql.Tx, query string, parentID int64) ([]int64, error) {
	rows, err := tx.QueryContext(ctx, query, parentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
