package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/livemark/internal/logging"
	"github.com/yaklabco/livemark/internal/ui/termrender"
	"github.com/yaklabco/livemark/pkg/preview"
	"github.com/yaklabco/livemark/pkg/style"
)

type previewFlags struct {
	selectionFlags
	width     int
	styleFile string
}

func newPreviewCommand() *cobra.Command {
	flags := &previewFlags{}

	cmd := &cobra.Command{
		Use:   "preview <file>",
		Short: "Render the live-preview approximation of a Markdown file",
		Long: `Render a Markdown file the way the live preview would show it for a
given cursor position: markup away from the cursor is hidden or replaced
with widgets, markup on the cursor's line stays visible.

Examples:
  livemark preview README.md                  # cursor at offset 0
  livemark preview README.md --cursor 120     # cursor mid-document
  livemark preview README.md --from 0 --to 500  # limit the viewport`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreview(cmd, args[0], flags)
		},
	}

	addSelectionFlags(cmd, &flags.selectionFlags)
	cmd.Flags().IntVar(&flags.width, "width", 0, "wrap output at this column (0 = terminal width)")
	cmd.Flags().StringVar(&flags.styleFile, "style", "", "path to a YAML style sheet overlay")

	return cmd
}

func addSelectionFlags(cmd *cobra.Command, flags *selectionFlags) {
	cmd.Flags().IntVar(&flags.cursor, "cursor", 0, "cursor offset in bytes")
	cmd.Flags().IntVar(&flags.anchor, "anchor", -1, "selection anchor offset (default: cursor)")
	cmd.Flags().IntVar(&flags.from, "from", -1, "viewport start offset (default: document start)")
	cmd.Flags().IntVar(&flags.to, "to", -1, "viewport end offset (default: document end)")
}

func runPreview(cmd *cobra.Command, path string, flags *previewFlags) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	snap, tree, err := loadDocument(ctx, path)
	if err != nil {
		return err
	}
	logger.Debug("loaded document",
		logging.FieldPath, path,
		logging.FieldCursor, flags.cursor,
	)

	sheet, err := loadSheet(ctx, flags.styleFile)
	if err != nil {
		return err
	}

	controller := preview.NewController(preview.NewBuilder(), preview.WithLogger(logger))
	decorations := controller.Apply(preview.Update{
		Snapshot:   snap,
		Tree:       tree,
		Selection:  flags.selection(snap),
		Visible:    flags.visible(snap),
		DocChanged: true,
	})

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		return fmt.Errorf("get color flag: %w", err)
	}
	colorEnabled := termrender.IsColorEnabled(colorMode, cmd.OutOrStdout())

	width := flags.width
	if width <= 0 {
		if w, _, sizeErr := term.GetSize(int(os.Stdout.Fd())); sizeErr == nil {
			width = w
		}
	}

	renderer := termrender.New(style.NewTheme(sheet, colorEnabled), termrender.WithWidth(width))
	fmt.Fprintln(cmd.OutOrStdout(), renderer.Render(snap, tree, decorations))
	return nil
}
