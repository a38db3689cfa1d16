package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/mmynk/grocer/internal/models"
	"github.com/mmynk/grocer/internal/storage"
	"github.com/mmynk/grocer/internal/storage/storagetest"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	return store
}

func TestSQLiteStore(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.Store {
		return newTestStore(t)
	})
}

func TestCountersSurviveRestart(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "nested", "grocer.db")

	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	first := &models.List{Name: "Groceries"}
	if err := store.CreateList(ctx, first); err != nil {
		t.Fatalf("CreateList failed: %v", err)
	}
	if _, err := store.DeleteList(ctx, first.ID); err != nil {
		t.Fatalf("DeleteList failed: %v", err)
	}
	store.Close()

	reopened, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to reopen store: %v", err)
	}
	defer reopened.Close()

	second := &models.List{Name: "Party"}
	if err := reopened.CreateList(ctx, second); err != nil {
		t.Fatalf("CreateList failed: %v", err)
	}
	if second.ID <= first.ID {
		t.Errorf("ID reused after restart: got %d, first was %d", second.ID, first.ID)
	}
	if second.Sequence != 2 {
		t.Errorf("Sequence after restart: got %d, want 2", second.Sequence)
	}
}

func TestForeignKeysBlockDirectParentDelete(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	defer store.Close()

	account := &models.Account{Username: "amy"}
	if err := store.CreateAccount(ctx, account); err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}
	if err := store.CreateList(ctx, &models.List{Name: "Groceries", OwnerID: &account.ID}); err != nil {
		t.Fatalf("CreateList failed: %v", err)
	}

	// Bypassing the cascade must be rejected by the schema.
	if _, err := store.db.ExecContext(ctx, "DELETE FROM accounts WHERE id = ?", account.ID); err == nil {
		t.Fatal("Expected foreign key violation deleting a parent with children")
	}
}

func TestNextSequenceUnknownKind(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	defer store.Close()

	err := store.withTx(ctx, func(tx *sql.Tx) error {
		_, err := nextSequence(ctx, tx, "account")
		return err
	})
	if err == nil {
		t.Fatal("Expected error for unknown sequence kind")
	}
}

func TestCascadeOnMissingParentIsNoop(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	defer store.Close()

	err := store.withTx(ctx, func(tx *sql.Tx) error {
		removed, err := cascadeAccount(ctx, tx, 12345)
		if err != nil {
			return err
		}
		if removed != (storage.Cascade{}) {
			t.Errorf("Expected no rows removed, got %+v", removed)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("cascadeAccount failed: %v", err)
	}
}
