package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

// nextSequence draws the next order rank for kind inside tx.
// The counter row is updated in place, so the draw is rolled back together
// with a failed create and two transactions can never read the same value.
func nextSequence(ctx context.Context, tx *sql.Tx, kind string) (int64, error) {
	var value int64
	err := tx.QueryRowContext(ctx,
		"UPDATE sequences SET value = value + 1 WHERE kind = ? RETURNING value",
		kind,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("unknown sequence kind: %s", kind)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to allocate %s sequence: %w", kind, err)
	}
	return value, nil
}
