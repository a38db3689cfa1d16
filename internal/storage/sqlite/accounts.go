package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mmynk/grocer/internal/models"
	"github.com/mmynk/grocer/internal/storage"
)

const selectAccount = `SELECT id, username, email, password FROM accounts`

// CreateAccount inserts a new account into the database.
func (s *SQLiteStore) CreateAccount(ctx context.Context, account *models.Account) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			"INSERT INTO accounts (username, email, password) VALUES (?, ?, ?)",
			account.Username, account.Email, account.Password,
		)
		if err != nil {
			return fmt.Errorf("failed to create account: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to read account ID: %w", err)
		}
		account.ID = id
		return nil
	})
}

// UpdateAccount replaces the profile fields of an existing account.
func (s *SQLiteStore) UpdateAccount(ctx context.Context, account *models.Account) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			"UPDATE accounts SET username = ?, email = ?, password = ? WHERE id = ?",
			account.Username, account.Email, account.Password, account.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to update account: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to update account: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("account %d: %w", account.ID, storage.ErrNotFound)
		}
		return nil
	})
}

// GetAccount retrieves an account by its ID.
func (s *SQLiteStore) GetAccount(ctx context.Context, id int64) (*models.Account, error) {
	account, err := scanAccount(s.db.QueryRowContext(ctx, selectAccount+" WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("account %d: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return account, nil
}

// ListAccounts retrieves all accounts ordered by ID.
func (s *SQLiteStore) ListAccounts(ctx context.Context) ([]*models.Account, error) {
	rows, err := s.db.QueryContext(ctx, selectAccount+" ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*models.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating accounts: %w", err)
	}

	return accounts, nil
}

// DeleteAccount removes an account, its lists and their items in one transaction.
func (s *SQLiteStore) DeleteAccount(ctx context.Context, id int64) (storage.Cascade, error) {
	var removed storage.Cascade
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		ok, err := exists(ctx, tx, "accounts", id)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("account %d: %w", id, storage.ErrNotFound)
		}
		removed, err = cascadeAccount(ctx, tx, id)
		return err
	})
	if err != nil {
		return storage.Cascade{}, err
	}
	return removed, nil
}

func scanAccount(row rowScanner) (*models.Account, error) {
	account := &models.Account{}
	if err := row.Scan(
		&account.ID,
		&account.Username,
		&account.Email,
		&account.Password,
	); err != nil {
		return nil, err
	}
	return account, nil
}
