package sqlite

import "database/sql"

// schema contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist.
//
// Foreign keys carry no ON DELETE action: removing a parent that still has
// children fails, so the cascade in cascade.go is the only way to delete
// accounts and lists. AUTOINCREMENT keeps identities from being reused.
const schema = `
CREATE TABLE IF NOT EXISTS accounts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    username TEXT NOT NULL DEFAULT '',
    email TEXT NOT NULL DEFAULT '',
    password TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS lists (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL DEFAULT '',
    sequence INTEGER NOT NULL UNIQUE,
    account_id INTEGER,
    FOREIGN KEY (account_id) REFERENCES accounts(id)
);

CREATE TABLE IF NOT EXISTS items (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL DEFAULT '',
    price REAL NOT NULL DEFAULT 0,
    sequence INTEGER NOT NULL UNIQUE,
    list_id INTEGER,
    FOREIGN KEY (list_id) REFERENCES lists(id)
);

CREATE TABLE IF NOT EXISTS sequences (
    kind TEXT PRIMARY KEY,
    value INTEGER NOT NULL
);

INSERT OR IGNORE INTO sequences (kind, value) VALUES ('list', 0), ('item', 0);

CREATE INDEX IF NOT EXISTS idx_lists_account_id ON lists(account_id);
CREATE INDEX IF NOT EXISTS idx_items_list_id ON items(list_id);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
