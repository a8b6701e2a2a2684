package internal

import "fmt"

// StorageError represents errors accessing storage files
type StorageError struct {
	Path string
	Op   string // "open", "query", "locate"
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// ParseError represents errors decoding chat data
type ParseError struct {
	Source string // "chatdata", "config"
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error [%s]: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// SchemaError indicates chat data that decoded but lacks the expected shape
type SchemaError struct {
	Field  string
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("unexpected chat data structure: field %q %s", e.Field, e.Reason)
}

// SelectionError represents an invalid tab selection
type SelectionError struct {
	Input string // the offending tab id or id list
	Err   error
}

func (e *SelectionError) Error() string {
	return fmt.Sprintf("invalid tab selection %q: %v", e.Input, e.Err)
}

func (e *SelectionError) Unwrap() error {
	return e.Err
}

// ExportError represents errors during export
type ExportError struct {
	Path string
	Err  error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export error %s: %v", e.Path, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}
