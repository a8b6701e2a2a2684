package internal

import (
	"errors"
	"strings"
	"testing"
)

func TestStorageError(t *testing.T) {
	originalErr := errors.New("permission denied")
	err := &StorageError{
		Path: "/test/state.vscdb",
		Op:   "open",
		Err:  originalErr,
	}

	errorMsg := err.Error()
	if !strings.Contains(errorMsg, "storage error") {
		t.Errorf("StorageError.Error() should contain 'storage error', got: %q", errorMsg)
	}
	if !strings.Contains(errorMsg, "/test/state.vscdb") {
		t.Errorf("StorageError.Error() should contain path, got: %q", errorMsg)
	}

	if !errors.Is(err, originalErr) {
		t.Error("StorageError.Unwrap() should return original error")
	}
}

func TestParseErrorType(t *testing.T) {
	originalErr := errors.New("invalid JSON")
	err := &ParseError{
		Source: "chatdata",
		Err:    originalErr,
	}

	errorMsg := err.Error()
	if !strings.Contains(errorMsg, "parse error") {
		t.Errorf("ParseError.Error() should contain 'parse error', got: %q", errorMsg)
	}
	if !strings.Contains(errorMsg, "chatdata") {
		t.Errorf("ParseError.Error() should contain source, got: %q", errorMsg)
	}

	if !errors.Is(err, originalErr) {
		t.Error("ParseError.Unwrap() should return original error")
	}
}

func TestSchemaErrorType(t *testing.T) {
	err := &SchemaError{Field: "tabs", Reason: "is missing"}

	errorMsg := err.Error()
	if !strings.Contains(errorMsg, "tabs") {
		t.Errorf("SchemaError.Error() should name the field, got: %q", errorMsg)
	}
	if !strings.Contains(errorMsg, "is missing") {
		t.Errorf("SchemaError.Error() should contain the reason, got: %q", errorMsg)
	}
}

func TestSelectionErrorType(t *testing.T) {
	originalErr := errors.New("out of range")
	err := &SelectionError{Input: "99", Err: originalErr}

	errorMsg := err.Error()
	if !strings.Contains(errorMsg, "99") {
		t.Errorf("SelectionError.Error() should contain the input, got: %q", errorMsg)
	}

	if !errors.Is(err, originalErr) {
		t.Error("SelectionError.Unwrap() should return original error")
	}
}

func TestExportErrorType(t *testing.T) {
	originalErr := errors.New("write failed")
	err := &ExportError{Path: "/output/tab_1.md", Err: originalErr}

	errorMsg := err.Error()
	if !strings.Contains(errorMsg, "export error") {
		t.Errorf("ExportError.Error() should contain 'export error', got: %q", errorMsg)
	}
	if !strings.Contains(errorMsg, "/output/tab_1.md") {
		t.Errorf("ExportError.Error() should contain path, got: %q", errorMsg)
	}

	if !errors.Is(err, originalErr) {
		t.Error("ExportError.Unwrap() should return original error")
	}
}
