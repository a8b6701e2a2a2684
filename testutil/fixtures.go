package testutil

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

// SampleChatJSON is a two-tab chat history in the stored format: one tab
// with plain text and a code block, one with an embedded image payload
// ("aGVsbG8=" is base64 for "hello").
const SampleChatJSON = `{
	"tabs": [
		{
			"timestamp": 1000,
			"bubbles": [
				{"type": "user", "text": "How do I reverse a string in Go?"},
				{"type": "ai", "modelType": "gpt-4", "text": "Use a rune slice:", "codeBlocks": [{"language": "go", "content": "func reverse(s string) string {\n\treturn s\n}"}]}
			]
		},
		{
			"timestamp": 2000,
			"bubbles": [
				{"type": "user", "text": "Here is a screenshot", "image": {"data": "aGVsbG8="}},
				{"type": "ai", "text": "I see it."}
			]
		}
	]
}`

// CreateStateDB creates an on-disk state.vscdb at dbPath holding chatJSON
// under the chat data key. An empty chatJSON leaves the key absent.
func CreateStateDB(t *testing.T, dbPath, chatJSON string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		t.Fatalf("Failed to create fixture directory: %v", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer func() { _ = db.Close() }()

	createTableSQL := `
	CREATE TABLE IF NOT EXISTS ItemTable (
		key TEXT PRIMARY KEY,
		value TEXT
	)`
	if _, err := db.Exec(createTableSQL); err != nil {
		t.Fatalf("Failed to create ItemTable: %v", err)
	}

	if chatJSON != "" {
		if _, err := db.Exec("INSERT INTO ItemTable (key, value) VALUES (?, ?)", chatDataKey, chatJSON); err != nil {
			t.Fatalf("Failed to insert chat data: %v", err)
		}
	}
}

// CreateWorkspaceDB creates <basePath>/<workspaceID>/state.vscdb holding
// chatJSON and returns the database path.
func CreateWorkspaceDB(t *testing.T, basePath, workspaceID, chatJSON string) string {
	t.Helper()
	dbPath := filepath.Join(basePath, workspaceID, "state.vscdb")
	CreateStateDB(t, dbPath, chatJSON)
	return dbPath
}

// SetMtime sets the modification time of a path, for tests that depend on
// recency ordering.
func SetMtime(t *testing.T, path string, mtime time.Time) {
	t.Helper()
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatalf("Failed to set mtime on %s: %v", path, err)
	}
}
