package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// StateDBName is the per-workspace database filename
const StateDBName = "state.vscdb"

// Config holds the per-OS workspace storage locations, loaded from the
// YAML configuration file. Keys follow the config file convention
// ("Windows", "Darwin", "Linux").
type Config struct {
	DefaultDBDirPaths map[string]string `yaml:"default_vscdb_dir_paths"`
}

// LoadConfig reads and parses the YAML configuration file
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, &StorageError{Path: path, Op: "open", Err: err}
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, &ParseError{Source: "config", Err: err}
	}
	return cfg, nil
}

// Locator resolves Cursor workspace storage locations. The configuration
// is injected at construction so tests can point it at fake directories.
type Locator struct {
	cfg  Config
	goos string
}

// NewLocator creates a Locator for the current operating system
func NewLocator(cfg Config) *Locator {
	return NewLocatorForOS(cfg, runtime.GOOS)
}

// NewLocatorForOS creates a Locator for an explicit GOOS value
func NewLocatorForOS(cfg Config, goos string) *Locator {
	return &Locator{cfg: cfg, goos: goos}
}

// goosToConfigKey maps runtime.GOOS values to config file keys
func goosToConfigKey(goos string) string {
	switch goos {
	case "darwin":
		return "Darwin"
	case "linux":
		return "Linux"
	case "windows":
		return "Windows"
	default:
		return ""
	}
}

// WorkspaceRoot resolves the configured workspace storage directory for
// the locator's operating system, expanding env vars and a leading ~.
func (l *Locator) WorkspaceRoot() (string, error) {
	key := goosToConfigKey(l.goos)
	if key == "" {
		return "", &StorageError{Op: "locate", Path: l.goos,
			Err: fmt.Errorf("unsupported operating system")}
	}

	template, ok := l.cfg.DefaultDBDirPaths[key]
	if !ok {
		return "", &StorageError{Op: "locate", Path: key,
			Err: fmt.Errorf("no workspace directory configured for this operating system")}
	}

	root, err := expandPath(template)
	if err != nil {
		return "", &StorageError{Op: "locate", Path: template, Err: err}
	}

	info, err := os.Stat(root)
	if err != nil {
		return "", &StorageError{Op: "locate", Path: root, Err: err}
	}
	if !info.IsDir() {
		return "", &StorageError{Op: "locate", Path: root,
			Err: fmt.Errorf("not a directory")}
	}

	LogDebug("Resolved workspace storage directory: %s", root)
	return root, nil
}

// LatestWorkspaceDB returns the state.vscdb of the most-recently-modified
// workspace under the configured root.
func (l *Locator) LatestWorkspaceDB() (string, error) {
	root, err := l.WorkspaceRoot()
	if err != nil {
		return "", err
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return "", &StorageError{Op: "locate", Path: root, Err: err}
	}

	var latest string
	var latestMtime int64
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if latest == "" || info.ModTime().UnixNano() > latestMtime {
			latest = entry.Name()
			latestMtime = info.ModTime().UnixNano()
		}
	}
	if latest == "" {
		return "", &StorageError{Op: "locate", Path: root,
			Err: fmt.Errorf("no workspace directories found")}
	}

	dbPath := filepath.Join(root, latest, StateDBName)
	if _, err := os.Stat(dbPath); err != nil {
		return "", &StorageError{Op: "locate", Path: dbPath, Err: err}
	}
	return dbPath, nil
}

// AllWorkspaceDBs lists every <root>/<workspace>/state.vscdb, sorted by
// workspace id for stable iteration order.
func AllWorkspaceDBs(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, &StorageError{Op: "locate", Path: root, Err: err}
	}

	var dbPaths []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dbPath := filepath.Join(root, entry.Name(), StateDBName)
		if _, err := os.Stat(dbPath); err == nil {
			dbPaths = append(dbPaths, dbPath)
		}
	}
	sort.Strings(dbPaths)
	return dbPaths, nil
}

// expandPath expands $VARS and a leading ~ in a configured path template.
// Only a bare "~" or a "~/" prefix refers to the current user's home;
// "~otheruser" forms are left untouched.
func expandPath(p string) (string, error) {
	p = os.ExpandEnv(p)
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		p = filepath.Join(home, p[1:])
	}
	return filepath.Clean(p), nil
}
