// Package cli provides the Cobra command structure for livemark.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/livemark/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root livemark command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var color string

	rootCmd := &cobra.Command{
		Use:   "livemark",
		Short: "Live-preview decoration engine for Markdown",
		Long: `livemark computes live-preview decorations for Markdown documents.

Markup that the selection does not touch is hidden or replaced with
rendered widgets; markup on the edited line stays visible so the source
remains editable in place. The preview command prints a terminal
approximation of the result.`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
			cmd.SetContext(logging.WithLogger(cmd.Context(), logging.Default()))
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	// Add subcommands.
	rootCmd.AddCommand(newPreviewCommand())
	rootCmd.AddCommand(newNormalizeCommand())
	rootCmd.AddCommand(newDecorationsCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
