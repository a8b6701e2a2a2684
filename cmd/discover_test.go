package cmd

import (
	"strings"
	"testing"

	"github.com/iksnae/cursor-chat-export/testutil"
)

func resetDiscoverFlags() {
	discoverLimit = 0
	discoverSearchText = ""
}

func TestDiscoverCommand(t *testing.T) {
	defer resetDiscoverFlags()

	root := t.TempDir()
	dbPath := testutil.CreateWorkspaceDB(t, root, "ws-1", testutil.SampleChatJSON)

	out, err := runCommand(t, "discover", root)
	if err != nil {
		t.Fatalf("discover error = %v", err)
	}
	if !strings.Contains(out, "DATABASE:") {
		t.Errorf("output should contain a DATABASE header, got %q", out)
	}
	if !strings.Contains(out, dbPath) {
		t.Errorf("output should name the database path, got %q", out)
	}
}

func TestDiscoverCommand_NoResults(t *testing.T) {
	defer resetDiscoverFlags()

	root := t.TempDir()
	testutil.CreateWorkspaceDB(t, root, "ws-1", testutil.SampleChatJSON)

	out, err := runCommand(t, "discover", root, "--search-text", "no-such-phrase-anywhere")
	if err != nil {
		t.Fatalf("discover error = %v", err)
	}
	if !strings.Contains(out, "No results found.") {
		t.Errorf("output should report no results, got %q", out)
	}
}

func TestDiscoverCommand_SearchHit(t *testing.T) {
	defer resetDiscoverFlags()

	root := t.TempDir()
	testutil.CreateWorkspaceDB(t, root, "ws-1", testutil.SampleChatJSON)

	// SampleChatJSON contains "reverse a string"; match case-insensitively
	out, err := runCommand(t, "discover", root, "--search-text", "REVERSE a string")
	if err != nil {
		t.Fatalf("discover error = %v", err)
	}
	if !strings.Contains(out, "DATABASE:") {
		t.Errorf("case-insensitive search should match, got %q", out)
	}
}

func TestDiscoverCommand_MissingDirectory(t *testing.T) {
	defer resetDiscoverFlags()

	_, err := runCommand(t, "discover", "/definitely/not/a/real/path")
	if err == nil {
		t.Error("discover should fail for a missing search root")
	}
}
