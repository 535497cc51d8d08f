package records

import (
	"bytes"
	"io"
	"strings"

	"github.com/dgallion1/pinetree/internal/pine"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownLoader turns nested bullet lists into records using goldmark. Each
// list item becomes a record; ids follow document order and parents follow
// list nesting. Content outside lists is ignored.
type MarkdownLoader struct{}

func (l *MarkdownLoader) Load(r io.Reader, filename string) ([]pine.Record, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	var seq sequence
	var walkList func(list ast.Node, parent int64)
	walkList = func(list ast.Node, parent int64) {
		for item := list.FirstChild(); item != nil; item = item.NextSibling() {
			if _, ok := item.(*ast.ListItem); !ok {
				continue
			}

			name := ""
			var nested []ast.Node
			for c := item.FirstChild(); c != nil; c = c.NextSibling() {
				if _, ok := c.(*ast.List); ok {
					nested = append(nested, c)
				} else if name == "" {
					name = inlineText(c, src)
				}
			}

			id := seq.add(parent, name)
			for _, sub := range nested {
				walkList(sub, id)
			}
		}
	}

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if _, ok := n.(*ast.List); ok {
			walkList(n, pine.RootID)
		}
	}
	return seq.records, nil
}

// inlineText concatenates the inline text under a goldmark node.
func inlineText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			buf.Write(t.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(t.Value)
		default:
			// Recurse for nested inlines.
			buf.WriteString(inlineText(c, src))
		}
	}
	return strings.TrimSpace(buf.String())
}
