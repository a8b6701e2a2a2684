package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iksnae/cursor-chat-export/internal"
	"github.com/iksnae/cursor-chat-export/testutil"
)

func resetExportFlags() {
	exportOutputDir = ""
	exportLatestTab = false
	exportTabIDs = ""
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	rootCmd.SetArgs(args)
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	err := rootCmd.Execute()
	return stdout.String(), err
}

func TestExportCommand_ToFiles(t *testing.T) {
	defer resetExportFlags()

	dbPath := filepath.Join(t.TempDir(), "state.vscdb")
	testutil.CreateStateDB(t, dbPath, testutil.SampleChatJSON)
	outputDir := filepath.Join(t.TempDir(), "out")

	_, err := runCommand(t, "export", dbPath, "--output-dir", outputDir)
	if err != nil {
		t.Fatalf("export error = %v", err)
	}

	for _, name := range []string{"tab_1.md", "tab_2.md"} {
		if _, err := os.Stat(filepath.Join(outputDir, name)); err != nil {
			t.Errorf("expected %s to exist: %v", name, err)
		}
	}

	// SampleChatJSON's second tab carries an image payload
	if _, err := os.Stat(filepath.Join(outputDir, "images", "tab_2_bubble_1.png")); err != nil {
		t.Errorf("expected extracted image: %v", err)
	}
}

func TestExportCommand_LatestTab(t *testing.T) {
	defer resetExportFlags()

	dbPath := filepath.Join(t.TempDir(), "state.vscdb")
	testutil.CreateStateDB(t, dbPath, testutil.SampleChatJSON)
	outputDir := filepath.Join(t.TempDir(), "out")

	_, err := runCommand(t, "export", dbPath, "--output-dir", outputDir, "--latest-tab")
	if err != nil {
		t.Fatalf("export error = %v", err)
	}

	// Tab 2 has the higher timestamp
	if _, err := os.Stat(filepath.Join(outputDir, "tab_2.md")); err != nil {
		t.Errorf("expected tab_2.md: %v", err)
	}
	if _, err := os.Stat(filepath.Join(outputDir, "tab_1.md")); !os.IsNotExist(err) {
		t.Error("tab_1.md should not be exported with --latest-tab")
	}
}

func TestExportCommand_OutOfRangeTabIDs(t *testing.T) {
	defer resetExportFlags()

	dbPath := filepath.Join(t.TempDir(), "state.vscdb")
	testutil.CreateStateDB(t, dbPath, testutil.SampleChatJSON)
	outputDir := filepath.Join(t.TempDir(), "out")

	_, err := runCommand(t, "export", dbPath, "--output-dir", outputDir, "--tab-ids", "1,99")
	if err == nil {
		t.Fatal("export should fail for out-of-range tab ids")
	}
	if _, statErr := os.Stat(filepath.Join(outputDir, "tab_1.md")); !os.IsNotExist(statErr) {
		t.Error("no tabs should be exported when the id list is invalid")
	}
}

func TestExportCommand_MissingDatabase(t *testing.T) {
	defer resetExportFlags()

	_, err := runCommand(t, "export", filepath.Join(t.TempDir(), "absent.vscdb"))
	if err == nil {
		t.Error("export should fail for a missing database file")
	}
}

func TestTabSelection_Precedence(t *testing.T) {
	// latest-tab wins over tab-ids when both are given
	sel, err := tabSelection(true, "1,2")
	if err != nil {
		t.Fatalf("tabSelection() error = %v", err)
	}
	if !sel.Latest || sel.Indices != nil {
		t.Errorf("tabSelection(true, ids) = %+v, want Latest only", sel)
	}

	sel, err = tabSelection(false, "2,1")
	if err != nil {
		t.Fatalf("tabSelection() error = %v", err)
	}
	if sel.Latest || len(sel.Indices) != 2 || sel.Indices[0] != 1 || sel.Indices[1] != 0 {
		t.Errorf("tabSelection(false, \"2,1\") = %+v, want indices [1 0]", sel)
	}

	if _, err := tabSelection(false, "a,b"); err == nil {
		t.Error("tabSelection() should fail for a malformed id list")
	}
}

func TestRenderMarkdown(t *testing.T) {
	// The shared renderer must survive repeated use and never lose content
	for i := 0; i < 2; i++ {
		out := renderMarkdown("# Heading\n\nbody text\n")
		if !strings.Contains(out, "body text") {
			t.Errorf("renderMarkdown() output missing content on call %d: %q", i+1, out)
		}
	}
}

func TestRecordHasImages(t *testing.T) {
	withImage := &internal.ChatRecord{Tabs: []internal.Tab{{Bubbles: []internal.Bubble{
		{Kind: "user", Parts: []internal.BubblePart{internal.ImagePart{Data: []byte{1}}}},
	}}}}
	if !recordHasImages(withImage) {
		t.Error("recordHasImages() = false, want true")
	}

	without := &internal.ChatRecord{Tabs: []internal.Tab{{Bubbles: []internal.Bubble{
		{Kind: "user", Parts: []internal.BubblePart{internal.TextPart{Text: "hi"}}},
	}}}}
	if recordHasImages(without) {
		t.Error("recordHasImages() = true, want false")
	}
}
