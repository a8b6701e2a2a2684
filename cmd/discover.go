package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/cursor-chat-export/internal"
	"github.com/spf13/cobra"
)

var (
	discoverLimit      int
	discoverSearchText string
)

var (
	// Styles for discover output
	databaseStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62"))

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")).
			Italic(true)
)

// discoverCmd represents the discover command
var discoverCmd = &cobra.Command{
	Use:   "discover [directory]",
	Short: "Discover workspace databases and preview their chats",
	Long: `Discover all state.vscdb files under a directory tree and print a
short preview of each chat, newest database first.

Without a directory argument the configured Cursor workspace storage
directory is used. With --search-text only chats containing the text
(case-insensitive) are shown, and the limit defaults to unlimited.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		directory := ""
		if len(args) > 0 {
			directory = args[0]
		}
		if directory == "" {
			locator, err := newLocator()
			if err != nil {
				return err
			}
			directory, err = locator.WorkspaceRoot()
			if err != nil {
				return fmt.Errorf("failed to resolve workspace storage directory: %w", err)
			}
		}

		limit := discoverLimit
		if limit == 0 {
			limit = internal.DefaultDiscoverLimit(discoverSearchText)
		}

		results, err := internal.Discover(directory, limit, discoverSearchText)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(results) == 0 {
			fmt.Fprintln(out, emptyStyle.Render("No results found."))
			return nil
		}

		for _, result := range results {
			fmt.Fprintln(out, separatorStyle.Render("────────────────────────────────────────"))
			fmt.Fprintf(out, "%s %s\n\n", databaseStyle.Render("DATABASE:"), result.Path)
			fmt.Fprint(out, renderMarkdown(result.Preview))
			fmt.Fprintln(out)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(discoverCmd)
	discoverCmd.Flags().IntVar(&discoverLimit, "limit", 0, "Maximum number of databases to process (-1 for unlimited; defaults to 10, or unlimited with --search-text)")
	discoverCmd.Flags().StringVar(&discoverSearchText, "search-text", "", "Only show chats containing this text (case-insensitive)")
}
