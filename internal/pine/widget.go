package pine

import (
	"fmt"
	"log/slog"
	"slices"
	"strconv"
)

// Element is the host document's view of one rendered element.
type Element interface {
	Parent() Element
	HasClass(class string) bool
	AddClass(class string)
	RemoveClass(class string)
	Attr(name string) (string, bool)
	SetAttr(name, value string)
	RemoveAttr(name string)
}

// Host is the content region a widget renders into. Find returns the first
// element carrying class, or nil.
type Host interface {
	SetContent(markup string) error
	Find(class string) Element
}

// Region is the semantic part of a node that a click landed on.
type Region int

const (
	RegionNone Region = iota
	RegionIcon
	RegionLabel
	RegionConnector
)

func (r Region) String() string {
	switch r {
	case RegionIcon:
		return "icon"
	case RegionLabel:
		return "label"
	case RegionConnector:
		return "connector"
	default:
		return "none"
	}
}

// Classify resolves which region el belongs to.
func (c ClassNames) Classify(el Element) Region {
	switch {
	case el == nil:
		return RegionNone
	case el.HasClass(c.Icon):
		return RegionIcon
	case el.HasClass(c.Name):
		return RegionLabel
	case el.HasClass(c.HLine), el.HasClass(c.VLine):
		return RegionConnector
	}
	return RegionNone
}

// Option configures a Widget.
type Option func(*Widget)

// WithPrefix sets the class name prefix.
func WithPrefix(prefix string) Option {
	return func(w *Widget) { w.prefix = prefix }
}

// WithIndent sets the indentation width of the rendered markup.
func WithIndent(width int) Option {
	return func(w *Widget) { w.indent = width }
}

// WithMaxDepth rejects trees nested more than depth levels below the root.
// Zero means no limit.
func WithMaxDepth(depth int) Option {
	return func(w *Widget) { w.maxDepth = depth }
}

// WithLogger sets the logger used for interaction events.
func WithLogger(log *slog.Logger) Option {
	return func(w *Widget) { w.log = log }
}

// Widget is a collapsible tree rendered into a Host. It owns the tree built
// at construction and the fold and selection state of that one instance.
//
// A Widget is not safe for concurrent use; owners deliver clicks one at a
// time, the way a browser event loop does.
type Widget struct {
	host     Host
	root     *Node
	nodes    map[int64]*Node
	renderer *Renderer
	markup   string

	folded       map[int64]bool
	selected     int64
	hasSelection bool

	prefix   string
	indent   int
	maxDepth int
	log      *slog.Logger
}

// New builds the tree from records, renders it into host and returns the
// widget. Build errors are returned before host is touched.
func New(host Host, records []Record, opts ...Option) (*Widget, error) {
	w := &Widget{
		host:   host,
		prefix: DefaultPrefix,
		indent: DefaultIndentWidth,
		log:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(w)
	}

	renderer, err := NewRenderer(w.prefix, w.indent)
	if err != nil {
		return nil, err
	}
	root, err := Build(records)
	if err != nil {
		return nil, err
	}
	if w.maxDepth > 0 {
		if err := CheckDepth(root, w.maxDepth); err != nil {
			return nil, err
		}
	}
	w.root = root
	w.nodes = make(map[int64]*Node, len(records)+1)
	w.folded = make(map[int64]bool)
	root.Walk(func(n *Node) bool {
		w.nodes[n.ID] = n
		if startsFolded(n) {
			w.folded[n.ID] = true
		}
		return true
	})

	w.renderer = renderer
	w.markup = w.renderer.Render(root)
	if err := host.SetContent(w.markup); err != nil {
		return nil, fmt.Errorf("install markup: %w", err)
	}
	return w, nil
}

// HandleClick is the delegated click listener. It classifies target and
// dispatches to the fold toggle or the selection handler; anything else is
// ignored. It returns the region the click was classified as.
func (w *Widget) HandleClick(target Element) Region {
	region := w.renderer.Classes.Classify(target)
	switch region {
	case RegionIcon:
		w.onIconClick(target)
	case RegionLabel:
		w.onLabelClick(target)
	}
	return region
}

func (w *Widget) onIconClick(icon Element) {
	c := w.renderer.Classes
	container := icon.Parent()
	if container == nil || !container.HasClass(c.WithChildren) {
		return
	}
	id, ok := elementID(container)
	if !ok {
		return
	}
	folded, foldable := w.folded[id]
	if !foldable {
		return
	}

	folded = !folded
	w.folded[id] = folded
	if folded {
		container.SetAttr(AttrFolded, "true")
		container.RemoveClass(c.Unfolded)
		container.AddClass(c.Folded)
	} else {
		container.RemoveAttr(AttrFolded)
		container.RemoveClass(c.Folded)
		container.AddClass(c.Unfolded)
	}
	w.log.Debug("fold toggled", "node_id", id, "folded", folded)
}

func (w *Widget) onLabelClick(label Element) {
	c := w.renderer.Classes
	container := label.Parent()
	if container == nil {
		return
	}
	id, ok := elementID(container)
	if !ok {
		return
	}

	if prev := w.host.Find(c.Selected); prev != nil {
		prev.RemoveClass(c.Selected)
	}
	label.AddClass(c.Selected)

	w.selected = id
	w.hasSelection = true
	w.log.Debug("node selected", "node_id", id)
}

func elementID(el Element) (int64, bool) {
	v, ok := el.Attr(AttrID)
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// SelectedItemID returns the most recently selected node id. ok is false
// until the first label click.
func (w *Widget) SelectedItemID() (id int64, ok bool) {
	return w.selected, w.hasSelection
}

// Folded reports the fold state of node id. ok is false for leaves, the
// root, and unknown ids, which have no fold state.
func (w *Widget) Folded(id int64) (folded, ok bool) {
	folded, ok = w.folded[id]
	return folded, ok
}

// FoldedIDs returns the ids of all currently folded nodes, ascending.
func (w *Widget) FoldedIDs() []int64 {
	ids := make([]int64, 0, len(w.folded))
	for id, folded := range w.folded {
		if folded {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}

// Root returns the synthetic root of the widget's tree.
func (w *Widget) Root() *Node {
	return w.root
}

// Node returns the node with the given id.
func (w *Widget) Node(id int64) (*Node, bool) {
	n, ok := w.nodes[id]
	return n, ok
}

// Len returns the number of nodes, root included.
func (w *Widget) Len() int {
	return len(w.nodes)
}

// Classes returns the class vocabulary of the rendered markup.
func (w *Widget) Classes() ClassNames {
	return w.renderer.Classes
}

// Markup returns the markup installed at construction.
func (w *Widget) Markup() string {
	return w.markup
}
