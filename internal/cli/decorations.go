package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/livemark/internal/logging"
	"github.com/yaklabco/livemark/pkg/preview"
	"github.com/yaklabco/livemark/pkg/widget"
)

func newDecorationsCommand() *cobra.Command {
	flags := &selectionFlags{}

	cmd := &cobra.Command{
		Use:   "decorations <file>",
		Short: "Dump the computed decoration set for a Markdown file",
		Long: `Print every decoration the preview would apply for the given cursor
position, one per line: the hidden byte range and the widget (if any)
substituted for it.

Examples:
  livemark decorations README.md
  livemark decorations README.md --cursor 42`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecorations(cmd, args[0], flags)
		},
	}

	addSelectionFlags(cmd, flags)

	return cmd
}

func runDecorations(cmd *cobra.Command, path string, flags *selectionFlags) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	snap, tree, err := loadDocument(ctx, path)
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

	for _, deco := range decorations {
		fmt.Fprintf(cmd.OutOrStdout(), "[%d,%d) %s\n", deco.Span.From, deco.Span.To, describeWidget(deco.Widget))
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d decorations\n", len(decorations))
	return nil
}

func describeWidget(w widget.Widget) string {
	switch v := w.(type) {
	case nil:
		return "delete"
	case widget.Bullet:
		return "bullet"
	case widget.Image:
		return fmt.Sprintf("image src=%s", v.URL)
	case widget.Text:
		return fmt.Sprintf("text %q", v.Content)
	case widget.HTML:
		return fmt.Sprintf("html %q", v.Markup)
	default:
		return "widget"
	}
}
