package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/iksnae/cursor-chat-export/internal"
	"github.com/spf13/cobra"
)

var (
	exportAllOutputDir     string
	exportAllWorkspacePath string
)

// exportAllCmd represents the export-all command
var exportAllCmd = &cobra.Command{
	Use:   "export-all",
	Short: "Export chats from every workspace database",
	Long: `Export the chat history of every workspace under the Cursor storage
directory, one subdirectory per workspace.

A failure exporting one workspace is logged and the remaining workspaces
are still processed; a summary count is reported at the end.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		workspaceRoot := exportAllWorkspacePath
		if workspaceRoot == "" {
			locator, err := newLocator()
			if err != nil {
				return err
			}
			workspaceRoot, err = locator.WorkspaceRoot()
			if err != nil {
				return fmt.Errorf("failed to resolve workspace storage directory: %w", err)
			}
		}

		dbPaths, err := internal.AllWorkspaceDBs(workspaceRoot)
		if err != nil {
			return err
		}
		if len(dbPaths) == 0 {
			internal.LogWarn("No %s files found in %s", internal.StateDBName, workspaceRoot)
			return nil
		}

		successCount := 0
		for _, dbPath := range dbPaths {
			workspaceID := filepath.Base(filepath.Dir(dbPath))
			outputPath := filepath.Join(exportAllOutputDir, workspaceID)

			internal.LogInfo("Exporting %s...", dbPath)
			if err := exportWorkspace(dbPath, outputPath); err != nil {
				internal.LogError("Failed to export %s: %v", workspaceID, err)
				continue
			}
			successCount++
			internal.LogInfo("Successfully exported %s", workspaceID)
		}

		internal.LogInfo("Export completed: %d/%d workspaces processed successfully", successCount, len(dbPaths))
		return nil
	},
}

// exportWorkspace exports every tab of one workspace database. A database
// without chat data counts as a failure here so the summary reflects how
// many workspaces actually produced output.
func exportWorkspace(dbPath, outputDir string) error {
	raw, err := internal.ReadChatData(dbPath)
	if err != nil {
		return err
	}

	record, err := internal.ParseChatRecord(raw)
	if err != nil {
		return err
	}

	imageDir := ""
	if recordHasImages(record) {
		imageDir = filepath.Join(outputDir, "images")
	}
	return internal.ExportChatRecord(record, outputDir, imageDir, internal.TabSelection{})
}

func init() {
	rootCmd.AddCommand(exportAllCmd)
	exportAllCmd.Flags().StringVarP(&exportAllOutputDir, "output-dir", "o", "out", "Base directory for the exported Markdown files")
	exportAllCmd.Flags().StringVar(&exportAllWorkspacePath, "cursor-workspace-path", "", "Path to the Cursor workspace storage directory (resolved from configuration when unset)")
}
