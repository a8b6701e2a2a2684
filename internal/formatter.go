package internal

import (
	"fmt"
	"path"
	"path/filepath"
	"strconv"
	"strings"
)

// TabSelection controls which tabs are rendered. Latest wins over Indices;
// an empty selection means every tab in stored order.
type TabSelection struct {
	Latest  bool
	Indices []int // 0-based, already converted from external 1-based ids
}

// RenderedTab is one tab rendered to a self-contained Markdown fragment
type RenderedTab struct {
	TabIndex int // 0-based stored position
	Content  string
}

// ParseTabIDs converts a comma-separated list of 1-based tab ids into
// 0-based indices.
func ParseTabIDs(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	indices := make([]int, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, &SelectionError{Input: s, Err: err}
		}
		if id < 1 {
			return nil, &SelectionError{Input: s, Err: fmt.Errorf("tab ids are 1-based, got %d", id)}
		}
		indices = append(indices, id-1)
	}
	return indices, nil
}

// ImageFileName returns the deterministic filename for an extracted image,
// derived from the tab and bubble positions so repeated runs agree.
func ImageFileName(tabIndex, bubbleIndex int) string {
	return fmt.Sprintf("tab_%d_bubble_%d.png", tabIndex+1, bubbleIndex+1)
}

// FormatChatRecord renders the selected tabs to Markdown, one fragment per
// tab in selection order. When imageDir is empty, image parts are omitted
// from the output; binary data never appears in the rendered text.
func FormatChatRecord(record *ChatRecord, imageDir string, sel TabSelection) ([]RenderedTab, error) {
	selected, err := selectTabs(record, sel)
	if err != nil {
		return nil, err
	}

	rendered := make([]RenderedTab, 0, len(selected))
	for _, st := range selected {
		rendered = append(rendered, RenderedTab{
			TabIndex: st.index,
			Content:  formatTab(st.tab, st.index, imageDir),
		})
	}
	return rendered, nil
}

type selectedTab struct {
	index int
	tab   *Tab
}

func selectTabs(record *ChatRecord, sel TabSelection) ([]selectedTab, error) {
	if sel.Latest {
		if len(record.Tabs) == 0 {
			return nil, nil
		}
		// First maximal timestamp wins; absent timestamps are 0
		latest := 0
		for i, tab := range record.Tabs {
			if tab.Timestamp > record.Tabs[latest].Timestamp {
				latest = i
			}
		}
		return []selectedTab{{index: latest, tab: &record.Tabs[latest]}}, nil
	}

	if sel.Indices != nil {
		selected := make([]selectedTab, 0, len(sel.Indices))
		for _, idx := range sel.Indices {
			if idx < 0 || idx >= len(record.Tabs) {
				return nil, &SelectionError{
					Input: strconv.Itoa(idx + 1),
					Err:   fmt.Errorf("tab id out of range, record has %d tab(s)", len(record.Tabs)),
				}
			}
			selected = append(selected, selectedTab{index: idx, tab: &record.Tabs[idx]})
		}
		return selected, nil
	}

	selected := make([]selectedTab, 0, len(record.Tabs))
	for i := range record.Tabs {
		selected = append(selected, selectedTab{index: i, tab: &record.Tabs[i]})
	}
	return selected, nil
}

func formatTab(tab *Tab, tabIndex int, imageDir string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Chat Transcript - Tab %d\n", tabIndex+1)

	for bubbleIndex := range tab.Bubbles {
		bubble := &tab.Bubbles[bubbleIndex]
		if bubble.IsEmpty() {
			continue
		}

		b.WriteString("\n")
		if bubble.Kind == "user" {
			b.WriteString("## User:\n")
		} else if bubble.ModelType != "" {
			fmt.Fprintf(&b, "## AI (%s):\n", bubble.ModelType)
		} else {
			b.WriteString("## AI:\n")
		}

		for _, part := range bubble.Parts {
			switch p := part.(type) {
			case TextPart:
				b.WriteString("\n")
				b.WriteString(strings.TrimRight(p.Text, "\n"))
				b.WriteString("\n")
			case CodePart:
				b.WriteString("\n```")
				b.WriteString(p.Language)
				b.WriteString("\n")
				b.WriteString(strings.TrimRight(p.Content, "\n"))
				b.WriteString("\n```\n")
			case ImagePart:
				if imageDir != "" {
					link := path.Join(filepath.ToSlash(imageDir), ImageFileName(tabIndex, bubbleIndex))
					fmt.Fprintf(&b, "\n![image](%s)\n", link)
				}
			}
		}
	}

	return b.String()
}
