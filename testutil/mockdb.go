package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

// chatDataKey mirrors the ItemTable key the extractor reads
const chatDataKey = "workbench.panel.aichat.view.aichat.chatdata"

// CreateInMemoryDB creates an in-memory SQLite database with an empty
// ItemTable for testing
func CreateInMemoryDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to create in-memory database: %v", err)
	}

	createTableSQL := `
	CREATE TABLE IF NOT EXISTS ItemTable (
		key TEXT PRIMARY KEY,
		value TEXT
	)`
	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		t.Fatalf("Failed to create ItemTable: %v", err)
	}

	return db
}

// InsertItem inserts a key-value row into the ItemTable
func InsertItem(t *testing.T, db *sql.DB, key, value string) {
	t.Helper()
	if _, err := db.Exec("INSERT INTO ItemTable (key, value) VALUES (?, ?)", key, value); err != nil {
		t.Fatalf("Failed to insert item: %v", err)
	}
}

// InsertChatData inserts chat history JSON under the chat data key
func InsertChatData(t *testing.T, db *sql.DB, chatJSON string) {
	t.Helper()
	InsertItem(t, db, chatDataKey, chatJSON)
}

// InsertNullChatData inserts a NULL value under the chat data key
func InsertNullChatData(t *testing.T, db *sql.DB) {
	t.Helper()
	if _, err := db.Exec("INSERT INTO ItemTable (key, value) VALUES (?, NULL)", chatDataKey); err != nil {
		t.Fatalf("Failed to insert null item: %v", err)
	}
}
