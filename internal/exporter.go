package internal

import (
	"fmt"
	"os"
	"path/filepath"
)

// TabFileName returns the deterministic per-tab output filename, so
// repeated exports overwrite the same files.
func TabFileName(tabIndex int) string {
	return fmt.Sprintf("tab_%d.md", tabIndex+1)
}

// ExportChatRecord renders the selected tabs and writes one Markdown file
// per tab into outputDir, extracting embedded images into imageDir when it
// is non-empty. Existing directories are reused; prior exports are
// overwritten, never cleared. A single image write failure is logged and
// leaves that one reference dangling; everything else propagates.
func ExportChatRecord(record *ChatRecord, outputDir, imageDir string, sel TabSelection) error {
	rendered, err := FormatChatRecord(record, imageDir, sel)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return &ExportError{Path: outputDir, Err: err}
	}

	selected, err := selectTabs(record, sel)
	if err != nil {
		return err
	}

	if imageDir != "" && hasImages(selected) {
		if err := os.MkdirAll(imageDir, 0755); err != nil {
			return &ExportError{Path: imageDir, Err: err}
		}
	}

	for _, rt := range rendered {
		tabPath := filepath.Join(outputDir, TabFileName(rt.TabIndex))
		if err := os.WriteFile(tabPath, []byte(rt.Content), 0644); err != nil {
			return &ExportError{Path: tabPath, Err: err}
		}
		LogDebug("Wrote %s", tabPath)
	}

	if imageDir != "" {
		writeImages(selected, imageDir)
	}

	return nil
}

func hasImages(selected []selectedTab) bool {
	for _, st := range selected {
		for i := range st.tab.Bubbles {
			if _, ok := st.tab.Bubbles[i].Image(); ok {
				return true
			}
		}
	}
	return false
}

// writeImages extracts every image payload among the selected tabs. One
// failed write must not abort the remaining images or tabs.
func writeImages(selected []selectedTab, imageDir string) {
	for _, st := range selected {
		for bubbleIndex := range st.tab.Bubbles {
			img, ok := st.tab.Bubbles[bubbleIndex].Image()
			if !ok {
				continue
			}
			imagePath := filepath.Join(imageDir, ImageFileName(st.index, bubbleIndex))
			if err := os.WriteFile(imagePath, img.Data, 0644); err != nil {
				LogWarn("Failed to write image %s, reference will dangle: %v", imagePath, err)
				continue
			}
			LogDebug("Wrote %s", imagePath)
		}
	}
}
