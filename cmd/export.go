package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/glamour"
	"github.com/iksnae/cursor-chat-export/internal"
	"github.com/spf13/cobra"
)

var (
	exportOutputDir string
	exportLatestTab bool
	exportTabIDs    string
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export [db_path]",
	Short: "Export chat history from a workspace database",
	Long: `Export chat history from a state.vscdb database to Markdown.

Without a db_path argument the most recently modified workspace under the
configured Cursor storage directory is used. Without --output-dir the
rendered Markdown is printed to the terminal instead of written to files.

--latest-tab and --tab-ids select which tabs to export; --latest-tab wins
when both are given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath := ""
		if len(args) > 0 {
			dbPath = args[0]
		}
		if dbPath == "" {
			locator, err := newLocator()
			if err != nil {
				return err
			}
			dbPath, err = locator.LatestWorkspaceDB()
			if err != nil {
				return fmt.Errorf("failed to locate latest workspace database: %w", err)
			}
			internal.LogInfo("Using latest workspace database: %s", dbPath)
		}

		sel, err := tabSelection(exportLatestTab, exportTabIDs)
		if err != nil {
			return err
		}

		raw, err := internal.ReadChatData(dbPath)
		if err != nil {
			return fmt.Errorf("failed to query chat data: %w", err)
		}

		record, err := internal.ParseChatRecord(raw)
		if err != nil {
			return err
		}

		if exportOutputDir != "" {
			imageDir := ""
			if recordHasImages(record) {
				imageDir = filepath.Join(exportOutputDir, "images")
			}
			if err := internal.ExportChatRecord(record, exportOutputDir, imageDir, sel); err != nil {
				return err
			}
			internal.LogInfo("Chat data has been successfully exported to %s", exportOutputDir)
			return nil
		}

		rendered, err := internal.FormatChatRecord(record, "", sel)
		if err != nil {
			return err
		}
		for _, rt := range rendered {
			fmt.Fprint(cmd.OutOrStdout(), renderMarkdown(rt.Content))
			fmt.Fprintln(cmd.OutOrStdout())
		}
		internal.LogInfo("Chat data has been successfully printed to the command line")
		return nil
	},
}

// tabSelection maps the selection flags to a TabSelection. Latest-tab
// takes precedence when both flags are given.
func tabSelection(latestTab bool, tabIDs string) (internal.TabSelection, error) {
	if latestTab {
		return internal.TabSelection{Latest: true}, nil
	}
	if tabIDs != "" {
		indices, err := internal.ParseTabIDs(tabIDs)
		if err != nil {
			return internal.TabSelection{}, err
		}
		return internal.TabSelection{Indices: indices}, nil
	}
	return internal.TabSelection{}, nil
}

func recordHasImages(record *internal.ChatRecord) bool {
	for i := range record.Tabs {
		for j := range record.Tabs[i].Bubbles {
			if _, ok := record.Tabs[i].Bubbles[j].Image(); ok {
				return true
			}
		}
	}
	return false
}

// markdownRenderer is the shared glamour renderer for terminal output
var markdownRenderer *glamour.TermRenderer

func init() {
	var err error
	markdownRenderer, err = glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(0),
	)
	if err != nil {
		markdownRenderer = nil
	}
}

// renderMarkdown renders Markdown for terminal display, falling back to
// the raw text when the renderer is unavailable.
func renderMarkdown(content string) string {
	if markdownRenderer == nil {
		return content
	}
	rendered, err := markdownRenderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportOutputDir, "output-dir", "o", "", "Directory for the output Markdown files (prints to terminal when unset)")
	exportCmd.Flags().BoolVar(&exportLatestTab, "latest-tab", false, "Export only the tab with the latest activity")
	exportCmd.Flags().StringVar(&exportTabIDs, "tab-ids", "", "Comma-separated list of 1-based tab IDs to export, e.g. '1,2,3'")
}
