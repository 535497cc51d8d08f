package pine

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// DefaultIndentWidth is the number of spaces per indentation level.
const DefaultIndentWidth = 4

// Renderer serializes a tree into indented, nested markup.
type Renderer struct {
	Classes     ClassNames
	IndentWidth int
}

// NewRenderer returns a renderer using prefix for class names. A
// non-positive indent falls back to DefaultIndentWidth. The prefix must pass
// ValidatePrefix.
func NewRenderer(prefix string, indent int) (*Renderer, error) {
	if err := ValidatePrefix(prefix); err != nil {
		return nil, err
	}
	if indent <= 0 {
		indent = DefaultIndentWidth
	}
	return &Renderer{
		Classes:     NewClassNames(prefix),
		IndentWidth: indent,
	}, nil
}

// Render returns the markup for n and all its descendants. Output depends
// only on the tree, so rendering an unchanged tree twice gives equal strings.
func (r *Renderer) Render(n *Node) string {
	var b strings.Builder
	r.render(&b, n, 0)
	return b.String()
}

func (r *Renderer) render(b *strings.Builder, n *Node, lvl int) {
	c := r.Classes

	// Open node's container.
	r.indent(b, lvl)
	b.WriteString(`<div class="`)
	b.WriteString(strings.Join(c.nodeClasses(n), " "))
	b.WriteString(`" `)
	b.WriteString(AttrID)
	b.WriteString(`="`)
	b.WriteString(strconv.FormatInt(n.ID, 10))
	b.WriteByte('"')
	if startsFolded(n) {
		b.WriteString(" ")
		b.WriteString(AttrFolded)
		b.WriteString(`="true"`)
	}
	b.WriteString(">\n")

	if !n.IsRoot() {
		r.line(b, lvl+1, `<div class="`+c.Icon+`"></div>`)
	}
	r.line(b, lvl+1, `<div class="`+c.HLine+`"></div>`)
	if n.HasChildren() {
		r.line(b, lvl+1, `<div class="`+c.VLine+`"></div>`)
	}
	r.line(b, lvl+1, `<span class="`+c.Name+`">`+html.EscapeString(n.Name)+`</span>`)

	if n.HasChildren() {
		r.line(b, lvl+1, `<div class="`+c.Children+`">`)
		for _, child := range n.Children {
			r.render(b, child, lvl+2)
		}
		r.line(b, lvl+1, `</div>`)
	}

	r.line(b, lvl, `</div>`)
}

func (r *Renderer) line(b *strings.Builder, lvl int, s string) {
	r.indent(b, lvl)
	b.WriteString(s)
	b.WriteByte('\n')
}

func (r *Renderer) indent(b *strings.Builder, lvl int) {
	b.WriteString(strings.Repeat(" ", r.IndentWidth*lvl))
}
