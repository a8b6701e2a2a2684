package internal

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultDiscoverLimit returns the scan limit to use when the caller gave
// none: breadth over recency while searching, ten newest otherwise.
func DefaultDiscoverLimit(searchText string) int {
	if searchText != "" {
		return -1
	}
	return 10
}

// ScanResult is one discovered database with its bounded chat preview
type ScanResult struct {
	Path    string
	Preview string
}

// previewLines bounds the per-tab preview emitted by Discover
const previewLines = 10

// Discover walks rootDir for state.vscdb files, newest first, and returns
// a bounded preview per rendered tab. limit truncates the number of
// databases processed (-1 means unlimited). When searchText is non-empty,
// only tabs with a line containing it case-insensitively produce a
// preview; the preview itself is the unfiltered head of the rendering.
// Failures on individual databases are logged and skipped.
func Discover(rootDir string, limit int, searchText string) ([]ScanResult, error) {
	stateFiles, err := findStateDBs(rootDir)
	if err != nil {
		return nil, err
	}

	// Newest first; this ordering is part of the contract
	sort.SliceStable(stateFiles, func(i, j int) bool {
		return stateFiles[i].mtime > stateFiles[j].mtime
	})
	// Any negative limit means unlimited
	if limit >= 0 && len(stateFiles) > limit {
		stateFiles = stateFiles[:limit]
	}

	needle := strings.ToLower(searchText)

	var results []ScanResult
	for _, sf := range stateFiles {
		rendered, ok := renderForPreview(sf.path)
		if !ok {
			continue
		}

		matched := false
		for _, rt := range rendered {
			if needle != "" && !containsLine(rt.Content, needle) {
				continue
			}
			matched = true
			results = append(results, ScanResult{Path: sf.path, Preview: previewOf(rt.Content)})
		}
		if needle != "" && !matched {
			LogDebug("No chat entries containing %q found in %s", searchText, sf.path)
		}
	}

	return results, nil
}

type stateFile struct {
	path  string
	mtime int64
}

func findStateDBs(rootDir string) ([]stateFile, error) {
	if _, err := os.Stat(rootDir); err != nil {
		return nil, &StorageError{Op: "locate", Path: rootDir, Err: err}
	}

	var stateFiles []stateFile
	err := filepath.WalkDir(rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			LogDebug("Skipping unreadable path %s: %v", path, err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || d.Name() != StateDBName {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			LogDebug("Skipping %s: %v", path, err)
			return nil
		}
		stateFiles = append(stateFiles, stateFile{path: path, mtime: info.ModTime().UnixNano()})
		return nil
	})
	if err != nil {
		return nil, &StorageError{Op: "locate", Path: rootDir, Err: err}
	}
	return stateFiles, nil
}

// renderForPreview runs the read-parse-format pipeline for one database.
// Any failure is non-fatal here: the file is skipped so one bad database
// never blocks the rest of the scan.
func renderForPreview(dbPath string) ([]RenderedTab, bool) {
	raw, err := ReadChatData(dbPath)
	if err != nil {
		if errors.Is(err, ErrNoChatData) {
			LogDebug("No chat data found in %s", dbPath)
		} else {
			LogError("Error querying chat data from %s: %v", dbPath, err)
		}
		return nil, false
	}

	record, err := ParseChatRecord(raw)
	if err != nil {
		LogError("Error parsing chat data from %s: %v", dbPath, err)
		return nil, false
	}

	rendered, err := FormatChatRecord(record, "", TabSelection{})
	if err != nil {
		LogError("Error formatting chat data from %s: %v", dbPath, err)
		return nil, false
	}
	if len(rendered) == 0 {
		return nil, false
	}
	return rendered, true
}

func containsLine(content, lowerNeedle string) bool {
	for _, line := range strings.Split(content, "\n") {
		if strings.Contains(strings.ToLower(line), lowerNeedle) {
			return true
		}
	}
	return false
}

func previewOf(content string) string {
	lines := strings.Split(content, "\n")
	if len(lines) > previewLines {
		lines = lines[:previewLines]
	}
	return strings.Join(lines, "\n") + "\n..."
}
