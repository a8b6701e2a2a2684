package cmd

import (
	"fmt"
	"os"

	"github.com/iksnae/cursor-chat-export/internal"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configPath string
	version    string = "dev"
	commit     string = "unknown"
	date       string = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "cursor-chat-export",
	Short: "Export Cursor IDE AI chat history to Markdown",
	Long: `A CLI tool to extract AI chat history from Cursor IDE workspace
databases and render it as Markdown.

Cursor stores each workspace's chat history as a single JSON document
inside a state.vscdb SQLite database. This tool reads that document,
reconstructs the tab/bubble structure and renders it to Markdown files
or to the terminal.

Quick Start:
  cursor-chat-export export                   # Print the latest workspace's chats
  cursor-chat-export export --output-dir out  # Write one Markdown file per tab
  cursor-chat-export discover --search-text refactor
  cursor-chat-export export-all --output-dir out`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		internal.SetVerbose(verbose)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.yml", "Path to the configuration file")

	// Set version template to ensure --version flag works
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}

// newLocator loads the configuration file and builds a workspace locator.
// Shared by the commands that need to resolve default paths.
func newLocator() (*internal.Locator, error) {
	cfg, err := internal.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return internal.NewLocator(cfg), nil
}
