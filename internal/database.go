package internal

import (
	"database/sql"
	"errors"
	"os"

	_ "modernc.org/sqlite"
)

// ChatDataKey is the ItemTable key under which Cursor stores the AI chat
// history for a workspace.
const ChatDataKey = "workbench.panel.aichat.view.aichat.chatdata"

// ErrNoChatData indicates the database is readable but holds no chat history.
// Callers in scan contexts treat this as "no data", not as a failure.
var ErrNoChatData = errors.New("no chat data found")

// OpenDatabase opens a state.vscdb SQLite database in read-only mode
func OpenDatabase(path string) (*sql.DB, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, &StorageError{Path: path, Op: "open", Err: err}
	}

	db, err := sql.Open("sqlite", path+"?mode=ro")
	if err != nil {
		return nil, &StorageError{Path: path, Op: "open", Err: err}
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, &StorageError{Path: path, Op: "open", Err: err}
	}

	return db, nil
}

// QueryChatData retrieves the raw chat history JSON from the ItemTable.
// Returns ErrNoChatData when the key is absent or its value is NULL.
func QueryChatData(db *sql.DB) (string, error) {
	var value sql.NullString
	row := db.QueryRow("SELECT value FROM ItemTable WHERE key = ?", ChatDataKey)
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNoChatData
		}
		return "", &StorageError{Op: "query", Err: err}
	}
	if !value.Valid || value.String == "" {
		return "", ErrNoChatData
	}
	return value.String, nil
}

// ReadChatData opens the database at path, queries the chat history and
// closes the database again, holding it open only for the single query.
func ReadChatData(path string) (string, error) {
	db, err := OpenDatabase(path)
	if err != nil {
		return "", err
	}
	defer db.Close()

	raw, err := QueryChatData(db)
	if err != nil {
		var se *StorageError
		if errors.As(err, &se) && se.Path == "" {
			se.Path = path
		}
		return "", err
	}
	return raw, nil
}
