package preview

import (
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/livemark/internal/logging"
	"github.com/yaklabco/livemark/pkg/doc"
	"github.com/yaklabco/livemark/pkg/syntax"
)

// Update carries the host editor state for one update cycle, plus the
// change flags that tell the controller whether a rebuild is needed.
type Update struct {
	Snapshot  *doc.Snapshot
	Tree      syntax.Tree
	Selection doc.Selection
	Visible   []doc.Span

	// Change flags. Any one of them invalidates the current decoration
	// set; when all are false the previous set is kept as-is.
	DocChanged       bool
	ViewportChanged  bool
	SelectionChanged bool
}

// needsRebuild reports whether any trigger fired.
func (u Update) needsRebuild() bool {
	return u.DocChanged || u.ViewportChanged || u.SelectionChanged
}

// cause names the triggers that fired, for debug logging. Multiple
// simultaneous triggers are joined, e.g. "document+selection".
func (u Update) cause() string {
	var causes []string
	if u.DocChanged {
		causes = append(causes, "document")
	}
	if u.ViewportChanged {
		causes = append(causes, "viewport")
	}
	if u.SelectionChanged {
		causes = append(causes, "selection")
	}
	if len(causes) == 0 {
		return "none"
	}
	return strings.Join(causes, "+")
}

// Controller wires a Builder to the host editor's update lifecycle. Each
// Apply call runs synchronously; the freshly built decoration set replaces
// the previous one in a single atomic write, so concurrent readers in a
// multi-threaded host always observe a complete set.
type Controller struct {
	builder *Builder
	logger  *log.Logger

	decorations atomic.Pointer[[]Decoration]
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithLogger overrides the controller's logger.
func WithLogger(logger *log.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

// NewController creates a Controller around the given builder. A nil
// builder selects the default Builder configuration.
func NewController(builder *Builder, opts ...ControllerOption) *Controller {
	if builder == nil {
		builder = NewBuilder()
	}
	c := &Controller{
		builder: builder,
		logger:  logging.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	empty := []Decoration{}
	c.decorations.Store(&empty)
	return c
}

// Apply processes one host update. When a trigger fired, the decoration
// set is rebuilt from scratch over the visible ranges and published;
// otherwise the current set is returned unchanged. The old set is only
// discarded after the new one is fully built.
func (c *Controller) Apply(update Update) []Decoration {
	if !update.needsRebuild() {
		return c.Decorations()
	}

	decorations := c.builder.Build(
		update.Snapshot,
		update.Tree,
		update.Selection,
		update.Visible,
	)
	c.decorations.Store(&decorations)

	c.logger.Debug("rebuilt decorations",
		logging.FieldCause, update.cause(),
		logging.FieldEntries, len(decorations),
		logging.FieldWindows, len(update.Visible),
	)

	return decorations
}

// Decorations returns the most recently published decoration set.
func (c *Controller) Decorations() []Decoration {
	return *c.decorations.Load()
}
