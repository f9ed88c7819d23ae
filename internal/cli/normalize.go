package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/livemark/pkg/fsutil"
	"github.com/yaklabco/livemark/pkg/htmlmin"
	"github.com/yaklabco/livemark/pkg/sanitize"
)

func newNormalizeCommand() *cobra.Command {
	var sanitizeOutput bool

	cmd := &cobra.Command{
		Use:   "normalize [file]",
		Short: "Run the HTML normalizer over a file or stdin",
		Long: `Minify an HTML fragment the way the preview does before rendering:
comments stripped, inter-tag and attribute whitespace collapsed, style
blocks and attributes compacted. The result is stable under repetition.

Examples:
  livemark normalize fragment.html
  cat fragment.html | livemark normalize
  livemark normalize fragment.html --sanitize`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNormalize(cmd, args, sanitizeOutput)
		},
	}

	cmd.Flags().BoolVar(&sanitizeOutput, "sanitize", false,
		"additionally sanitize the minified fragment")

	return cmd
}

func runNormalize(cmd *cobra.Command, args []string, sanitizeOutput bool) error {
	var input []byte
	if len(args) == 1 {
		content, _, err := fsutil.ReadFile(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		input = content
	} else {
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		input = content
	}

	out := htmlmin.Minify(string(input))
	if sanitizeOutput {
		out = sanitize.NewPolicy().Sanitize(out)
	}

	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}
